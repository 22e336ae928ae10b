package noise

import "testing"

func TestSimplexDeterministicAndNormalized(t *testing.T) {
	a := NewSimplex(3, 0.5, 42)
	b := NewSimplex(3, 0.5, 42)
	for i := 0; i < 50; i++ {
		x := float64(i) * 0.173
		y := float64(i) * 0.291
		va := a.Eval2(x, y)
		vb := b.Eval2(x, y)
		if va != vb {
			t.Fatalf("expected same value for same seed at %d: %f vs %f", i, va, vb)
		}
		if va < 0 || va > 1 {
			t.Fatalf("expected normalized value in [0,1], got %f", va)
		}
	}
}

func TestPerlinDeterministic(t *testing.T) {
	a := NewPerlin(9)
	b := NewPerlin(9)
	for i := 0; i < 20; i++ {
		x := float64(i) * 0.37
		if a.Eval2(x, 1.3) != b.Eval2(x, 1.3) {
			t.Fatalf("expected deterministic perlin values at %d", i)
		}
	}
}

func TestSigned(t *testing.T) {
	if Signed(0) != -1 || Signed(1) != 1 || Signed(0.5) != 0 {
		t.Fatalf("expected [0,1] to map onto [-1,1]")
	}
}
