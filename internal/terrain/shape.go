package terrain

import (
	"math"
	"sort"
	"strings"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/noise"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

// Shape decides which sites lie in the open ocean before lakes and closure
// are applied.
type Shape interface {
	IsOcean(p geom.Point) bool
}

type ShapeParams struct {
	IslandFactor          float64
	IslandCount           int
	NoiseSeed             int64
	NoiseScale            float64
	NoiseIntensity        float64
	CoastalNoiseFrequency float64
}

type ShapeFactory func(bounds geom.Rect, params ShapeParams, src *rng.Source) Shape

const (
	ShapeRadial  = "radial"
	ShapeComplex = "complex"
)

var Shapes = map[string]ShapeFactory{
	ShapeRadial:  NewRadialShape,
	ShapeComplex: NewComplexShape,
}

func ShapeNames() []string {
	out := make([]string, 0, len(Shapes))
	for name := range Shapes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewShape resolves name through Shapes. Unknown names fall back to the
// radial model and report ok=false.
func NewShape(name string, bounds geom.Rect, params ShapeParams, src *rng.Source) (Shape, bool) {
	factory, ok := Shapes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return NewRadialShape(bounds, params, src), false
	}
	return factory(bounds, params, src), true
}

// normalizedDistance measures distance from the map centre with each axis
// scaled by its half extent, so the inscribed ellipse sits at 1.
func normalizedDistance(bounds geom.Rect, p geom.Point) (float64, float64, float64) {
	c := bounds.Center()
	hw, hh := bounds.Width()/2, bounds.Height()/2
	if hw <= 0 || hh <= 0 {
		return 0, 0, 0
	}
	nx := (p.X - c.X) / hw
	ny := (p.Y - c.Y) / hh
	return nx, ny, math.Hypot(nx, ny)
}

type radialShape struct {
	bounds    geom.Rect
	threshold float64
}

func NewRadialShape(bounds geom.Rect, params ShapeParams, _ *rng.Source) Shape {
	return radialShape{bounds: bounds, threshold: 1 - 1/params.IslandFactor}
}

func (s radialShape) IsOcean(p geom.Point) bool {
	_, _, d := normalizedDistance(s.bounds, p)
	return d > s.threshold
}

type peninsula struct {
	x, y, radius float64
}

type complexShape struct {
	bounds      geom.Rect
	r0          float64
	peninsulas  []peninsula
	broad       noise.Field
	coastal     noise.Field
	scale       float64
	intensity   float64
	coastalFreq float64
}

// NewComplexShape blends a primary radial falloff with randomly placed
// peninsula falloffs, a broad simplex term and a Perlin coastal term whose
// weight peaks on the 0.5 coastline.
func NewComplexShape(bounds geom.Rect, params ShapeParams, src *rng.Source) Shape {
	r0 := max(0.15, 1-1/params.IslandFactor)
	s := &complexShape{
		bounds:      bounds,
		r0:          r0,
		broad:       noise.NewSimplex(2, 0.5, params.NoiseSeed),
		coastal:     noise.NewPerlin(params.NoiseSeed + 1),
		scale:       params.NoiseScale,
		intensity:   params.NoiseIntensity,
		coastalFreq: params.CoastalNoiseFrequency,
	}
	for i := 0; i < params.IslandCount; i++ {
		angle := src.Range(0, 2*math.Pi)
		offset := src.Range(0.3, 1.0) * r0
		s.peninsulas = append(s.peninsulas, peninsula{
			x:      math.Cos(angle) * offset,
			y:      math.Sin(angle) * offset,
			radius: src.Range(0.25, 0.5) * r0,
		})
	}
	return s
}

func (s *complexShape) value(p geom.Point) float64 {
	nx, ny, d := normalizedDistance(s.bounds, p)
	shape := 1 - 0.5*d/s.r0
	for _, pen := range s.peninsulas {
		dp := math.Hypot(nx-pen.x, ny-pen.y)
		shape = max(shape, 1-0.5*dp/pen.radius)
	}
	v := shape + 0.5*s.intensity*noise.Signed(s.broad.Eval2(p.X*s.scale, p.Y*s.scale))
	near := max(0, 1-2*math.Abs(shape-0.5))
	v += 0.25 * s.intensity * near * near * s.coastal.Eval2(p.X*s.coastalFreq, p.Y*s.coastalFreq)
	return v
}

func (s *complexShape) IsOcean(p geom.Point) bool {
	return s.value(p) < 0.5
}
