package mesh

import "github.com/appengine-ltd/worldforge/internal/geom"

// NoID marks an absent reference, e.g. the missing second center of an edge
// that runs along the map frame.
const NoID = -1

// Center is one Voronoi cell.
type Center struct {
	ID        int        `json:"id"`
	Point     geom.Point `json:"point"`
	Ocean     bool       `json:"ocean,omitempty"`
	Water     bool       `json:"water,omitempty"`
	Coast     bool       `json:"coast,omitempty"`
	Border    bool       `json:"border,omitempty"`
	Elevation float64    `json:"elevation"`
	Moisture  float64    `json:"moisture"`
	Biome     string     `json:"biome,omitempty"`

	// Corners are listed in polygon order.
	Corners   []int `json:"corners"`
	Borders   []int `json:"borders"`
	Neighbors []int `json:"neighbors"`
}

// Corner is one Voronoi vertex, shared by every cell that meets there.
type Corner struct {
	ID        int        `json:"id"`
	Point     geom.Point `json:"point"`
	Ocean     bool       `json:"ocean,omitempty"`
	Water     bool       `json:"water,omitempty"`
	Coast     bool       `json:"coast,omitempty"`
	Border    bool       `json:"border,omitempty"`
	Elevation float64    `json:"elevation"`
	Moisture  float64    `json:"moisture"`
	River     int        `json:"river,omitempty"`

	Touches   []int `json:"touches"`
	Protrudes []int `json:"protrudes"`
	Adjacent  []int `json:"adjacent"`
}

// Edge joins two corners and separates (up to) two centers.
type Edge struct {
	ID       int        `json:"id"`
	D0       int        `json:"d0"`
	D1       int        `json:"d1"`
	V0       int        `json:"v0"`
	V1       int        `json:"v1"`
	Midpoint geom.Point `json:"midpoint"`
	River    int        `json:"river,omitempty"`
}

// Mesh holds the dual graph as parallel arenas indexed by id.
type Mesh struct {
	Bounds  geom.Rect `json:"bounds"`
	Centers []Center  `json:"centers"`
	Corners []Corner  `json:"corners"`
	Edges   []Edge    `json:"edges"`
}

func (m *Mesh) Center(id int) *Center {
	if id < 0 || id >= len(m.Centers) {
		return nil
	}
	return &m.Centers[id]
}

func (m *Mesh) Corner(id int) *Corner {
	if id < 0 || id >= len(m.Corners) {
		return nil
	}
	return &m.Corners[id]
}

func (m *Mesh) Edge(id int) *Edge {
	if id < 0 || id >= len(m.Edges) {
		return nil
	}
	return &m.Edges[id]
}

// Polygon resolves a center's corner ids into points.
func (m *Mesh) Polygon(centerID int) []geom.Point {
	c := m.Center(centerID)
	if c == nil {
		return nil
	}
	out := make([]geom.Point, 0, len(c.Corners))
	for _, q := range c.Corners {
		out = append(out, m.Corners[q].Point)
	}
	return out
}

// EdgeBetween returns the edge joining two adjacent corners.
func (m *Mesh) EdgeBetween(a, b int) (int, bool) {
	q := m.Corner(a)
	if q == nil {
		return NoID, false
	}
	for _, e := range q.Protrudes {
		edge := m.Edges[e]
		if (edge.V0 == a && edge.V1 == b) || (edge.V0 == b && edge.V1 == a) {
			return e, true
		}
	}
	return NoID, false
}

// OtherCorner returns the endpoint of edge e that is not q.
func (m *Mesh) OtherCorner(e, q int) int {
	edge := m.Edges[e]
	if edge.V0 == q {
		return edge.V1
	}
	return edge.V0
}

func (m *Mesh) RiverEdges() []int {
	var out []int
	for i := range m.Edges {
		if m.Edges[i].River > 0 {
			out = append(out, i)
		}
	}
	return out
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []int, id int) []int {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}
