package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
	"github.com/hollowbrook/vista/mathx"
)

// Terrain is the procedural heightfield with a flat road corridor
// carved along the travel path. Heights are deterministic; the field
// is never regenerated.
type Terrain struct {
	fbm        *FBM
	road       []mgl32.Vec3 // arc-length-uniform path samples
	roadWidth  float32
	blendWidth float32
	roadHeight float32
	extent     float32
	gridStep   float32
}

// NewTerrain builds the heightfield around the given path.
func NewTerrain(cfg config.TerrainConfig, path curve.Path) *Terrain {
	samples := cfg.PathSamples
	if samples < 2 {
		samples = 64
	}
	return &Terrain{
		fbm:        NewFBM(cfg.Seed, cfg.Octaves, cfg.Gain, cfg.Lacunarity, cfg.Scale, cfg.Amplitude),
		road:       path.SpacedPoints(samples),
		roadWidth:  cfg.RoadWidth,
		blendWidth: cfg.BlendWidth,
		roadHeight: cfg.RoadHeight,
		extent:     cfg.Extent,
		gridStep:   cfg.GridStep,
	}
}

// Height returns the terrain height at (x, z): fractal noise blended
// toward the flat road height near the path. Within roadWidth of the
// nearest path sample the result is exactly roadHeight.
func (t *Terrain) Height(x, z float32) float32 {
	noise := t.roadHeight + t.fbm.Sample(x, z)

	d := t.RoadDistance(x, z)
	blend := mathx.Smoothstep(t.roadWidth, t.roadWidth+t.blendWidth, d)

	return mathx.Lerp(t.roadHeight, noise, blend)
}

// RoadDistance returns the lateral (XZ-plane) distance from (x, z) to
// the nearest road sample.
func (t *Terrain) RoadDistance(x, z float32) float32 {
	best := float32(mgl32.MaxValue)
	for _, p := range t.road {
		dx := p.X() - x
		dz := p.Z() - z
		d := dx*dx + dz*dz
		if d < best {
			best = d
		}
	}
	return sqrt32(best)
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// RoadSamples returns the arc-length-uniform road centerline, used for
// ribbon geometry and placement sampling.
func (t *Terrain) RoadSamples() []mgl32.Vec3 { return t.road }

// RoadWidth returns the flat corridor half-width.
func (t *Terrain) RoadWidth() float32 { return t.roadWidth }

// RoadHeight returns the flat corridor height.
func (t *Terrain) RoadHeight() float32 { return t.roadHeight }

// Extent returns the half-size of the terrain patch.
func (t *Terrain) Extent() float32 { return t.extent }

// GridStep returns the mesh sampling step.
func (t *Terrain) GridStep() float32 { return t.gridStep }

// HeightGrid samples the heightfield on a regular grid covering
// [-extent, extent]^2 at gridStep spacing. Built once by the renderer.
func (t *Terrain) HeightGrid() (heights [][]float32, origin mgl32.Vec3, step float32) {
	n := int(2*t.extent/t.gridStep) + 1
	heights = make([][]float32, n)
	for i := 0; i < n; i++ {
		heights[i] = make([]float32, n)
		z := -t.extent + float32(i)*t.gridStep
		for j := 0; j < n; j++ {
			x := -t.extent + float32(j)*t.gridStep
			heights[i][j] = t.Height(x, z)
		}
	}
	return heights, mgl32.Vec3{-t.extent, 0, -t.extent}, t.gridStep
}
