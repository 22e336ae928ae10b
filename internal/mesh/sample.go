package mesh

import (
	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

// SamplePoints scatters n uniform sites inside bounds.
func SamplePoints(src *rng.Source, n int, bounds geom.Rect) []geom.Point {
	if n < 0 {
		n = 0
	}
	out := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, geom.Point{
			X: src.Range(bounds.Min.X, bounds.Max.X),
			Y: src.Range(bounds.Min.Y, bounds.Max.Y),
		})
	}
	return out
}

// Relax runs Lloyd relaxation: every iteration moves each site to the
// centroid of its clipped Voronoi cell, computed over the current sites.
// Sites whose cell cannot be computed stay where they are for that
// iteration; a failed triangulation ends relaxation early.
func Relax(points []geom.Point, bounds geom.Rect, iterations int) []geom.Point {
	out := append([]geom.Point(nil), points...)
	for it := 0; it < iterations; it++ {
		d, err := computeDiagram(out, bounds)
		if err != nil {
			return out
		}
		next := append([]geom.Point(nil), out...)
		for i, cell := range d.cells {
			c, ok := geom.Centroid(cell)
			if !ok {
				continue
			}
			next[i] = c
		}
		out = next
	}
	return out
}
