package mesh

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/delaunay"

	"github.com/appengine-ltd/worldforge/internal/geom"
)

var ErrTooFewPoints = errors.New("at least 3 points are required")

// diagram is the Voronoi dual of a Delaunay triangulation, with every cell
// clipped to the map rectangle. A nil cell marks a site whose region could
// not be computed.
type diagram struct {
	neighbors [][]int
	cells     [][]geom.Point
}

func epsilonFor(bounds geom.Rect) float64 {
	return 1e-6 * math.Max(bounds.Width(), bounds.Height())
}

func computeDiagram(points []geom.Point, bounds geom.Rect) (*diagram, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	pts := make([]delaunay.Point, 0, len(points))
	for _, p := range points {
		pts = append(pts, delaunay.Point{X: p.X, Y: p.Y})
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d points: %w", len(points), err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("triangulate %d points: no triangles", len(points))
	}

	d := &diagram{
		neighbors: delaunayNeighbors(len(points), tri.Triangles),
		cells:     make([][]geom.Point, len(points)),
	}
	eps := epsilonFor(bounds)
	frame := bounds.Polygon()
	for i, site := range points {
		if len(d.neighbors[i]) == 0 {
			continue
		}
		poly := append([]geom.Point(nil), frame...)
		for _, j := range d.neighbors[i] {
			poly = geom.ClipToBisector(poly, site, points[j])
			if len(poly) == 0 {
				break
			}
		}
		poly = geom.DedupeRing(poly, eps)
		if len(poly) < 3 {
			continue
		}
		d.cells[i] = poly
	}
	return d, nil
}

// delaunayNeighbors lists, per site, the sites sharing a triangle edge with it.
func delaunayNeighbors(n int, triangles []int) [][]int {
	sets := make([]map[int]struct{}, n)
	link := func(a, b int) {
		if a == b || a < 0 || b < 0 || a >= n || b >= n {
			return
		}
		if sets[a] == nil {
			sets[a] = make(map[int]struct{}, 6)
		}
		if sets[b] == nil {
			sets[b] = make(map[int]struct{}, 6)
		}
		sets[a][b] = struct{}{}
		sets[b][a] = struct{}{}
	}
	for t := 0; t+2 < len(triangles); t += 3 {
		a, b, c := triangles[t], triangles[t+1], triangles[t+2]
		link(a, b)
		link(b, c)
		link(c, a)
	}
	out := make([][]int, n)
	for i, set := range sets {
		for j := range set {
			out[i] = append(out[i], j)
		}
		sort.Ints(out[i])
	}
	return out
}
