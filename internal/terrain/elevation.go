package terrain

import (
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

const (
	elevationStep   = 0.01
	elevationJitter = 0.01
)

// AssignElevation floods inward from the frame. Border corners stay at
// exactly 0; every other corner is rescaled so the interior spans [0,1].
// Centers take the mean of their corners.
func AssignElevation(m *mesh.Mesh, src *rng.Source) {
	visited := make([]bool, len(m.Corners))
	queue := make([]int, 0, len(m.Corners))
	for i := range m.Corners {
		m.Corners[i].Elevation = 0
		if m.Corners[i].Border {
			visited[i] = true
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		q := queue[head]
		for _, a := range m.Corners[q].Adjacent {
			if visited[a] {
				continue
			}
			visited[a] = true
			m.Corners[a].Elevation = m.Corners[q].Elevation + elevationStep + src.Float64()*elevationJitter
			queue = append(queue, a)
		}
	}

	lo, hi := 0.0, 0.0
	first := true
	for i := range m.Corners {
		q := &m.Corners[i]
		if q.Border || !visited[i] {
			continue
		}
		if first {
			lo, hi = q.Elevation, q.Elevation
			first = false
			continue
		}
		lo = min(lo, q.Elevation)
		hi = max(hi, q.Elevation)
	}
	for i := range m.Corners {
		q := &m.Corners[i]
		switch {
		case q.Border:
			q.Elevation = 0
		case !visited[i] || hi <= lo:
			q.Elevation = 1
		default:
			q.Elevation = (q.Elevation - lo) / (hi - lo)
		}
	}

	for i := range m.Centers {
		c := &m.Centers[i]
		c.Elevation = cornerMean(m, c.Corners, func(q *mesh.Corner) float64 { return q.Elevation })
	}
}

func cornerMean(m *mesh.Mesh, ids []int, value func(*mesh.Corner) float64) float64 {
	if len(ids) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range ids {
		sum += value(&m.Corners[q])
	}
	return sum / float64(len(ids))
}
