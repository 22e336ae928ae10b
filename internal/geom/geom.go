package geom

import "math"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func Midpoint(a, b Point) Point { return Lerp(a, b, 0.5) }

// Rect is an axis-aligned rectangle anchored at the origin corner Min.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func NewRect(width, height float64) Rect {
	return Rect{Max: Point{X: width, Y: height}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// OnBoundary reports whether p lies within eps of any side of r.
func (r Rect) OnBoundary(p Point, eps float64) bool {
	return math.Abs(p.X-r.Min.X) <= eps ||
		math.Abs(p.X-r.Max.X) <= eps ||
		math.Abs(p.Y-r.Min.Y) <= eps ||
		math.Abs(p.Y-r.Max.Y) <= eps
}

// Side returns a bitmask of the rectangle sides p touches (left=1, right=2, top=4, bottom=8).
func (r Rect) Side(p Point, eps float64) uint8 {
	var s uint8
	if math.Abs(p.X-r.Min.X) <= eps {
		s |= 1
	}
	if math.Abs(p.X-r.Max.X) <= eps {
		s |= 2
	}
	if math.Abs(p.Y-r.Min.Y) <= eps {
		s |= 4
	}
	if math.Abs(p.Y-r.Max.Y) <= eps {
		s |= 8
	}
	return s
}

func (r Rect) Polygon() []Point {
	return []Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
