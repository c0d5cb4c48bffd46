package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// FBM is a deterministic fractal Brownian motion field over an
// opensimplex basis. Given the same seed and parameters it returns the
// identical value for every (x, z), which is what lets the terrain be
// built once and queried forever after.
type FBM struct {
	noise      opensimplex.Noise
	octaves    int
	gain       float32
	lacunarity float32
	scale      float32
	amplitude  float32
}

// NewFBM creates a fractal noise field.
func NewFBM(seed int64, octaves int, gain, lacunarity, scale, amplitude float32) *FBM {
	if octaves < 1 {
		octaves = 1
	}
	return &FBM{
		noise:      opensimplex.New(seed),
		octaves:    octaves,
		gain:       gain,
		lacunarity: lacunarity,
		scale:      scale,
		amplitude:  amplitude,
	}
}

// Sample returns the fBm value at (x, z). Pure function of its inputs.
func (f *FBM) Sample(x, z float32) float32 {
	var sum float32
	amp := f.amplitude
	freq := f.scale
	for i := 0; i < f.octaves; i++ {
		sum += amp * float32(f.noise.Eval2(float64(x*freq), float64(z*freq)))
		amp *= f.gain
		freq *= f.lacunarity
	}
	return sum
}
