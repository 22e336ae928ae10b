package viewer

import (
	"math"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/poi"
)

const (
	minZoom = 0.25
	maxZoom = 12
)

// Viewport maps world coordinates onto the screen: screen = world*Zoom + Offset.
type Viewport struct {
	Offset geom.Point
	Zoom   float64
}

// FitViewport centres bounds in a screen area, keeping the aspect ratio.
func FitViewport(bounds geom.Rect, area geom.Rect, padding float64) (Viewport, bool) {
	w := area.Width() - padding*2
	h := area.Height() - padding*2
	if w <= 1 || h <= 1 || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return Viewport{}, false
	}
	zoom := math.Min(w/bounds.Width(), h/bounds.Height())
	drawW := bounds.Width() * zoom
	drawH := bounds.Height() * zoom
	origin := geom.Pt(area.Min.X+(area.Width()-drawW)/2, area.Min.Y+(area.Height()-drawH)/2)
	return Viewport{Offset: origin.Sub(bounds.Min.Scale(zoom)), Zoom: zoom}, true
}

func (v Viewport) ToScreen(p geom.Point) geom.Point {
	return p.Scale(v.Zoom).Add(v.Offset)
}

func (v Viewport) ToWorld(p geom.Point) geom.Point {
	return p.Sub(v.Offset).Scale(1 / v.Zoom)
}

// ZoomAt scales around a screen anchor so the world point under it stays put.
func (v Viewport) ZoomAt(factor float64, anchor geom.Point) Viewport {
	zoom := geom.Clamp(v.Zoom*factor, minZoom, maxZoom)
	world := v.ToWorld(anchor)
	return Viewport{Offset: anchor.Sub(world.Scale(zoom)), Zoom: zoom}
}

func (v Viewport) Pan(dx, dy float64) Viewport {
	v.Offset = v.Offset.Add(geom.Pt(dx, dy))
	return v
}

// fanTriangles splits a convex polygon into a triangle fan wound
// counter-clockwise on a y-down screen.
func fanTriangles(poly []geom.Point) [][3]geom.Point {
	if len(poly) < 3 {
		return nil
	}
	out := make([][3]geom.Point, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tri := [3]geom.Point{poly[0], poly[i], poly[i+1]}
		if geom.SignedArea(tri[:]) > 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		out = append(out, tri)
	}
	return out
}

// nearestPOI returns the node closest to p within radius world units.
func nearestPOI(g *poi.Graph, p geom.Point, radius float64) (int, bool) {
	if g == nil {
		return 0, false
	}
	best, bestDist := -1, radius
	for i, n := range g.Nodes {
		if d := n.Position.Dist(p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// selection tracks up to two picked POIs and the route between them.
type selection struct {
	from, to int
	path     []int
	length   float64
}

func newSelection() selection {
	return selection{from: -1, to: -1}
}

// pick adds a POI. A third pick starts a new selection.
func (s selection) pick(g *poi.Graph, id int) selection {
	switch {
	case s.from < 0 || s.to >= 0:
		return selection{from: id, to: -1}
	case id == s.from:
		return newSelection()
	}
	s.to = id
	s.path = poi.FindPath(g, s.from, s.to)
	s.length, _ = poi.PathLength(g, s.path)
	return s
}

func (s selection) onPath(a, b int) bool {
	for i := 0; i+1 < len(s.path); i++ {
		if (s.path[i] == a && s.path[i+1] == b) || (s.path[i] == b && s.path[i+1] == a) {
			return true
		}
	}
	return false
}
