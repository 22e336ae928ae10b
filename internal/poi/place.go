package poi

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

type PlaceOptions struct {
	Counts map[LocationType]int
	// Initial names the type of the starting POI; empty means none.
	Initial     LocationType
	MinDistance float64
	// Rules overrides DefaultRules per type.
	Rules map[LocationType]Rule
}

// Report records how many POIs of each type were asked for and placed.
type Report struct {
	Requested map[LocationType]int `json:"requested"`
	Placed    map[LocationType]int `json:"placed"`
	InitialID int                  `json:"initial_id"`
}

// Shortfalls lists the types that placed fewer POIs than requested, in
// placement order.
func (r Report) Shortfalls() []LocationType {
	var out []LocationType
	for _, t := range orderedTypes(r.Requested) {
		if r.Placed[t] < r.Requested[t] {
			out = append(out, t)
		}
	}
	return out
}

type placer struct {
	m        *mesh.Mesh
	src      *rng.Source
	opts     PlaceOptions
	g        *Graph
	occupied mapset.Set[int]
}

// Place selects POI sites on a classified mesh. The initial POI goes first
// and counts toward its type. Types are then placed in LocationTypes order,
// each greedily from its best scoring cells, skipping occupied cells and
// cells too close to a POI of the same type. Unknown types never place.
func Place(m *mesh.Mesh, src *rng.Source, opts PlaceOptions) (*Graph, Report) {
	p := &placer{m: m, src: src, opts: opts, g: &Graph{}, occupied: mapset.New[int]()}
	report := Report{
		Requested: make(map[LocationType]int),
		Placed:    make(map[LocationType]int),
		InitialID: mesh.NoID,
	}
	for t, n := range opts.Counts {
		if n > 0 {
			report.Requested[t] = n
		}
	}
	if opts.Initial != "" && report.Requested[opts.Initial] < 1 {
		report.Requested[opts.Initial] = 1
	}

	if opts.Initial != "" {
		if id, ok := p.placeInitial(opts.Initial); ok {
			report.InitialID = id
			report.Placed[opts.Initial]++
		}
	}
	for _, t := range orderedTypes(report.Requested) {
		want := report.Requested[t] - report.Placed[t]
		if want <= 0 {
			continue
		}
		report.Placed[t] += p.placeType(t, want)
	}
	return p.g, report
}

func orderedTypes(counts map[LocationType]int) []LocationType {
	out := make([]LocationType, 0, len(counts))
	known := mapset.New[LocationType]()
	for _, t := range LocationTypes {
		known.Put(t)
		if _, ok := counts[t]; ok {
			out = append(out, t)
		}
	}
	var extra []LocationType
	for t := range counts {
		if !known.Has(t) {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func (p *placer) rule(t LocationType) (Rule, bool) {
	if r, ok := p.opts.Rules[t]; ok {
		return r, true
	}
	r, ok := DefaultRules[t]
	return r, ok
}

func (p *placer) minDistance(t LocationType) float64 {
	r, ok := p.rule(t)
	if !ok || r.MinDistanceFactor <= 0 {
		return p.opts.MinDistance
	}
	return p.opts.MinDistance * r.MinDistanceFactor
}

func (p *placer) tooClose(t LocationType, pos geom.Point) bool {
	limit := p.minDistance(t)
	for _, n := range p.g.Nodes {
		if n.Type == t && n.Position.Dist(pos) < limit {
			return true
		}
	}
	return false
}

func (p *placer) add(t LocationType, center int) int {
	id := len(p.g.Nodes)
	p.g.Nodes = append(p.g.Nodes, POI{
		ID:       id,
		Type:     t,
		Position: p.m.Centers[center].Point,
		Center:   center,
	})
	p.occupied.Put(center)
	return id
}

type candidate struct {
	center int
	score  float64
}

func (p *placer) candidates(t LocationType) []candidate {
	if t == Lake {
		var out []candidate
		for i := range p.m.Centers {
			c := &p.m.Centers[i]
			if c.Water && !c.Ocean {
				out = append(out, candidate{center: i, score: 1})
			}
		}
		p.src.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rule, ok := p.rule(t)
	if !ok {
		return nil
	}
	var out []candidate
	for i := range p.m.Centers {
		s := rule.Score(&p.m.Centers[i])
		if s <= 0 {
			continue
		}
		out = append(out, candidate{center: i, score: s * p.src.Range(0.8, 1.2)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

func (p *placer) placeType(t LocationType, want int) int {
	placed := 0
	for _, c := range p.candidates(t) {
		if placed >= want {
			break
		}
		if p.occupied.Has(c.center) || p.tooClose(t, p.m.Centers[c.center].Point) {
			continue
		}
		p.add(t, c.center)
		placed++
	}
	return placed
}

// placeInitial uses the type's own scoring. When nothing qualifies a known
// land type falls back to the dry cell nearest the map centre, so a start
// exists on any map with land.
func (p *placer) placeInitial(t LocationType) (int, bool) {
	if cands := p.candidates(t); len(cands) > 0 {
		id := p.add(t, cands[0].center)
		p.g.Nodes[id].IsInitial = true
		return id, true
	}
	if _, known := p.rule(t); !known || t == Lake {
		return mesh.NoID, false
	}
	mid := p.m.Bounds.Center()
	best, bestDist := mesh.NoID, 0.0
	for i := range p.m.Centers {
		c := &p.m.Centers[i]
		if c.Water {
			continue
		}
		d := c.Point.Dist(mid)
		if best == mesh.NoID || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == mesh.NoID {
		return mesh.NoID, false
	}
	id := p.add(t, best)
	p.g.Nodes[id].IsInitial = true
	return id, true
}
