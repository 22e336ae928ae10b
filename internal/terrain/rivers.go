package terrain

import (
	"sort"

	"github.com/appengine-ltd/worldforge/internal/mesh"
)

const maxRiverWidth = 5

// River is the corner trail of one traced river, source first.
type River struct {
	Corners []int `json:"corners"`
	Edges   []int `json:"edges"`
}

// AssignRivers traces up to count rivers from the highest inland corners.
// Each step moves to the lowest strictly lower neighbour that is not yet on
// a river, so every trail descends and never revisits a corner. A trail ends
// when it reaches the ocean or has nowhere lower to go.
func AssignRivers(m *mesh.Mesh, count int) []River {
	candidates := make([]int, 0, len(m.Corners))
	for i := range m.Corners {
		q := &m.Corners[i]
		q.River = 0
		if !q.Ocean && !q.Border {
			candidates = append(candidates, i)
		}
	}
	for i := range m.Edges {
		m.Edges[i].River = 0
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return m.Corners[candidates[i]].Elevation > m.Corners[candidates[j]].Elevation
	})
	if count > len(candidates) {
		count = len(candidates)
	}

	var rivers []River
	for _, source := range candidates[:max(0, count)] {
		if m.Corners[source].River > 0 {
			continue
		}
		r := River{Corners: []int{source}}
		cur := source
		for step := 0; ; step++ {
			next := lowestDownhill(m, cur)
			if next == mesh.NoID {
				break
			}
			e, ok := m.EdgeBetween(cur, next)
			if !ok {
				break
			}
			m.Edges[e].River = min(maxRiverWidth, 1+step/4)
			if step == 0 {
				m.Corners[source].River++
			}
			m.Corners[next].River++
			r.Corners = append(r.Corners, next)
			r.Edges = append(r.Edges, e)
			cur = next
			if m.Corners[cur].Ocean {
				break
			}
		}
		if len(r.Edges) > 0 {
			rivers = append(rivers, r)
		}
	}
	return rivers
}

// lowestDownhill picks the lowest neighbour strictly below q that is not
// already a river corner. Ocean corners are accepted as mouths even when
// another river already ends there.
func lowestDownhill(m *mesh.Mesh, q int) int {
	best := mesh.NoID
	bestElev := m.Corners[q].Elevation
	for _, a := range m.Corners[q].Adjacent {
		n := &m.Corners[a]
		if n.Elevation >= bestElev {
			continue
		}
		if n.River > 0 && !n.Ocean {
			continue
		}
		best, bestElev = a, n.Elevation
	}
	return best
}
