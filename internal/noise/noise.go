package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Field is a deterministic 2D scalar field.
type Field interface {
	Eval2(x, y float64) float64
}

// Simplex is an octave sum of normalized opensimplex noise, initialized with
// a given seed, persistence, and number of octaves. Values are in [0,1].
type Simplex struct {
	Octaves     int
	Persistence float64
	Amplitudes  []float64
	Seed        int64
	OS          opensimplex.Noise
}

func NewSimplex(octaves int, persistence float64, seed int64) *Simplex {
	if octaves < 1 {
		octaves = 1
	}
	n := &Simplex{
		Octaves:     octaves,
		Persistence: persistence,
		Amplitudes:  make([]float64, octaves),
		Seed:        seed,
		OS:          opensimplex.NewNormalized(seed),
	}
	for i := range n.Amplitudes {
		n.Amplitudes[i] = math.Pow(persistence, float64(i))
	}
	return n
}

func (n *Simplex) Eval2(x, y float64) float64 {
	var sum, sumOfAmplitudes float64
	for octave := 0; octave < n.Octaves; octave++ {
		fFreq := float64(int(1) << octave)
		sum += n.Amplitudes[octave] * n.OS.Eval2(x*fFreq, y*fFreq)
		sumOfAmplitudes += n.Amplitudes[octave]
	}
	return sum / sumOfAmplitudes
}

// Perlin wraps go-perlin; values are roughly in [-1,1].
type Perlin struct {
	p *perlin.Perlin
}

func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (n *Perlin) Eval2(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// Signed maps a [0,1] field value to [-1,1].
func Signed(v float64) float64 {
	return v*2 - 1
}
