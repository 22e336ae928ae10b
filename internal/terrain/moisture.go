package terrain

import (
	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/mesh"
)

const (
	moistureDecay      = 0.9
	riverMoistureBonus = 0.2
	inlandDryFactor    = 0.8
)

// AssignMoisture spreads moisture out from water corners. A corner is
// re-queued whenever it is reached with a wetter value than it holds.
// River endpoints get a bonus, then dry land is scaled down and centers take
// the mean of their corners.
func AssignMoisture(m *mesh.Mesh) {
	queue := make([]int, 0, len(m.Corners))
	for i := range m.Corners {
		q := &m.Corners[i]
		q.Moisture = 0
		if q.Water {
			q.Moisture = 1
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		q := queue[head]
		next := m.Corners[q].Moisture * moistureDecay
		for _, a := range m.Corners[q].Adjacent {
			if next > m.Corners[a].Moisture {
				m.Corners[a].Moisture = next
				queue = append(queue, a)
			}
		}
	}

	for _, e := range m.RiverEdges() {
		edge := m.Edges[e]
		for _, q := range []int{edge.V0, edge.V1} {
			m.Corners[q].Moisture = geom.Clamp(m.Corners[q].Moisture+riverMoistureBonus, 0, 1)
		}
	}
	for i := range m.Corners {
		if !m.Corners[i].Water {
			m.Corners[i].Moisture *= inlandDryFactor
		}
	}

	for i := range m.Centers {
		c := &m.Centers[i]
		c.Moisture = cornerMean(m, c.Corners, func(q *mesh.Corner) float64 { return q.Moisture })
	}
}
