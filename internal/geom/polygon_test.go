package geom

import (
	"math"
	"testing"
)

func TestCentroidOfRectangle(t *testing.T) {
	c, ok := Centroid(NewRect(800, 600).Polygon())
	if !ok {
		t.Fatalf("expected centroid for rectangle")
	}
	if math.Abs(c.X-400) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Fatalf("expected centroid 400,300 got %.4f,%.4f", c.X, c.Y)
	}
}

func TestCentroidRejectsDegenerate(t *testing.T) {
	if _, ok := Centroid([]Point{{0, 0}, {1, 1}}); ok {
		t.Fatalf("expected two-vertex polygon to be rejected")
	}
	if _, ok := Centroid([]Point{{0, 0}, {1, 1}, {2, 2}}); ok {
		t.Fatalf("expected collinear polygon to be rejected")
	}
}

func TestClipToBisectorHalvesSquare(t *testing.T) {
	square := NewRect(10, 10).Polygon()
	left := ClipToBisector(square, Pt(2, 5), Pt(8, 5))
	area := math.Abs(SignedArea(left))
	if math.Abs(area-50) > 1e-9 {
		t.Fatalf("expected clipped area 50, got %.6f", area)
	}
	for _, p := range left {
		if p.X > 5+1e-9 {
			t.Fatalf("expected every vertex left of the bisector, got %+v", p)
		}
	}
}

func TestRectSideMask(t *testing.T) {
	r := NewRect(10, 10)
	if got := r.Side(Pt(0, 0), 1e-9); got != 1|4 {
		t.Fatalf("expected left|top mask for origin, got %d", got)
	}
	if got := r.Side(Pt(5, 5), 1e-9); got != 0 {
		t.Fatalf("expected no sides for interior point, got %d", got)
	}
	if !r.OnBoundary(Pt(10, 3), 1e-9) {
		t.Fatalf("expected right side point on boundary")
	}
}

func TestDedupeRingDropsWrapAround(t *testing.T) {
	ring := []Point{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {0, 1e-12}}
	got := DedupeRing(ring, 1e-9)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique vertices, got %d (%v)", len(got), got)
	}
}
