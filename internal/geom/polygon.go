package geom

import "math"

// SignedArea returns the shoelace area; positive for counter-clockwise winding
// in a y-up frame.
func SignedArea(poly []Point) float64 {
	if len(poly) < 3 {
		return 0
	}
	a := 0.0
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}

// Centroid returns the area centroid of a simple polygon. ok is false for
// polygons with fewer than 3 vertices or (near) zero area.
func Centroid(poly []Point) (Point, bool) {
	if len(poly) < 3 {
		return Point{}, false
	}
	area := SignedArea(poly)
	if math.Abs(area) < 1e-12 {
		return Point{}, false
	}
	var cx, cy float64
	for i := range poly {
		j := (i + 1) % len(poly)
		cross := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		cx += (poly[i].X + poly[j].X) * cross
		cy += (poly[i].Y + poly[j].Y) * cross
	}
	f := 1 / (6 * area)
	return Point{X: cx * f, Y: cy * f}, true
}

// ClipHalfPlane keeps the part of poly on the side of the line through origin
// with the given normal where dot(p-origin, normal) <= 0 (Sutherland–Hodgman).
func ClipHalfPlane(poly []Point, origin, normal Point) []Point {
	if len(poly) == 0 {
		return poly
	}
	side := func(p Point) float64 {
		return (p.X-origin.X)*normal.X + (p.Y-origin.Y)*normal.Y
	}
	out := make([]Point, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevSide := side(prev)
	for _, cur := range poly {
		curSide := side(cur)
		switch {
		case curSide <= 0 && prevSide <= 0:
			out = append(out, cur)
		case curSide <= 0 && prevSide > 0:
			out = append(out, Lerp(prev, cur, prevSide/(prevSide-curSide)), cur)
		case curSide > 0 && prevSide <= 0:
			out = append(out, Lerp(prev, cur, prevSide/(prevSide-curSide)))
		}
		prev, prevSide = cur, curSide
	}
	return out
}

// ClipToBisector keeps the part of poly closer to site than to other.
func ClipToBisector(poly []Point, site, other Point) []Point {
	return ClipHalfPlane(poly, Midpoint(site, other), other.Sub(site))
}

// DedupeRing drops consecutive vertices closer than eps, including the
// wrap-around pair.
func DedupeRing(poly []Point, eps float64) []Point {
	if len(poly) == 0 {
		return poly
	}
	out := make([]Point, 0, len(poly))
	for _, p := range poly {
		if len(out) > 0 && out[len(out)-1].Dist(p) <= eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Dist(out[len(out)-1]) <= eps {
		out = out[:len(out)-1]
	}
	return out
}
