package mesh

import (
	"math"

	"github.com/appengine-ltd/worldforge/internal/geom"
)

// Build turns sites into a cross-linked Voronoi mesh clipped to bounds.
// There is one Center per input point, in input order. Cells that collapse
// to fewer than 3 corners keep their Center but own no corners or edges.
func Build(points []geom.Point, bounds geom.Rect) (*Mesh, error) {
	d, err := computeDiagram(points, bounds)
	if err != nil {
		return nil, err
	}
	b := newBuilder(bounds)
	m := &Mesh{
		Bounds:  bounds,
		Centers: make([]Center, len(points)),
	}
	for i, p := range points {
		m.Centers[i] = Center{ID: i, Point: p}
	}

	for i, cell := range d.cells {
		if cell == nil {
			continue
		}
		ids := make([]int, 0, len(cell))
		for _, p := range cell {
			q := b.corner(m, p)
			if len(ids) > 0 && ids[len(ids)-1] == q {
				continue
			}
			if containsID(ids, q) {
				continue
			}
			ids = append(ids, q)
		}
		if len(ids) > 1 && ids[0] == ids[len(ids)-1] {
			ids = ids[:len(ids)-1]
		}
		if len(ids) < 3 {
			continue
		}
		m.Centers[i].Corners = ids
		for _, q := range ids {
			m.Corners[q].Touches = appendUnique(m.Corners[q].Touches, i)
		}
	}

	seen := make(map[[2]int]bool)
	for a, ns := range d.neighbors {
		for _, c := range ns {
			if c <= a {
				continue
			}
			shared := sharedCorners(m.Centers[a].Corners, m.Centers[c].Corners)
			if len(shared) != 2 {
				continue
			}
			addEdge(m, seen, a, c, shared[0], shared[1])
		}
	}

	// Cell sides lying on the frame have no second center.
	for i := range m.Centers {
		ids := m.Centers[i].Corners
		for k := range ids {
			v0, v1 := ids[k], ids[(k+1)%len(ids)]
			s0 := bounds.Side(m.Corners[v0].Point, b.eps)
			s1 := bounds.Side(m.Corners[v1].Point, b.eps)
			if s0&s1 == 0 {
				continue
			}
			addEdge(m, seen, i, NoID, v0, v1)
		}
	}

	for q := range m.Corners {
		if m.Corners[q].Border {
			for _, c := range m.Corners[q].Touches {
				m.Centers[c].Border = true
			}
		}
	}
	return m, nil
}

func addEdge(m *Mesh, seen map[[2]int]bool, d0, d1, v0, v1 int) {
	key := [2]int{min(v0, v1), max(v0, v1)}
	if seen[key] {
		return
	}
	seen[key] = true
	id := len(m.Edges)
	m.Edges = append(m.Edges, Edge{
		ID:       id,
		D0:       d0,
		D1:       d1,
		V0:       v0,
		V1:       v1,
		Midpoint: geom.Midpoint(m.Corners[v0].Point, m.Corners[v1].Point),
	})
	m.Centers[d0].Borders = append(m.Centers[d0].Borders, id)
	if d1 != NoID {
		m.Centers[d1].Borders = append(m.Centers[d1].Borders, id)
		m.Centers[d0].Neighbors = appendUnique(m.Centers[d0].Neighbors, d1)
		m.Centers[d1].Neighbors = appendUnique(m.Centers[d1].Neighbors, d0)
	}
	m.Corners[v0].Protrudes = append(m.Corners[v0].Protrudes, id)
	m.Corners[v1].Protrudes = append(m.Corners[v1].Protrudes, id)
	m.Corners[v0].Adjacent = appendUnique(m.Corners[v0].Adjacent, v1)
	m.Corners[v1].Adjacent = appendUnique(m.Corners[v1].Adjacent, v0)
}

func sharedCorners(a, b []int) []int {
	var out []int
	for _, q := range a {
		if containsID(b, q) {
			out = append(out, q)
		}
	}
	return out
}

// builder deduplicates corners through a spatial hash with bucket size eps,
// probing the 3x3 bucket neighbourhood so points straddling a bucket line
// still collapse.
type builder struct {
	bounds  geom.Rect
	eps     float64
	buckets map[[2]int64][]int
}

func newBuilder(bounds geom.Rect) *builder {
	eps := epsilonFor(bounds)
	if eps <= 0 {
		eps = 1e-9
	}
	return &builder{bounds: bounds, eps: eps, buckets: make(map[[2]int64][]int)}
}

func (b *builder) key(p geom.Point) [2]int64 {
	return [2]int64{int64(math.Floor(p.X / b.eps)), int64(math.Floor(p.Y / b.eps))}
}

func (b *builder) corner(m *Mesh, p geom.Point) int {
	k := b.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, q := range b.buckets[[2]int64{k[0] + dx, k[1] + dy}] {
				if m.Corners[q].Point.Dist(p) <= b.eps {
					return q
				}
			}
		}
	}
	id := len(m.Corners)
	m.Corners = append(m.Corners, Corner{
		ID:     id,
		Point:  p,
		Border: b.bounds.OnBoundary(p, b.eps),
	})
	b.buckets[k] = append(b.buckets[k], id)
	return id
}
