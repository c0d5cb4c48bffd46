// Package curve provides the parametric travel path the camera follows.
// Paths are immutable after construction and serve pure geometry
// queries; all smoothing happens at build time.
package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/interp"

	"github.com/hollowbrook/vista/mathx"
)

// Path is a smooth parametric 3D curve queried by normalized t.
type Path interface {
	// PointAt returns the interpolated position at t. t is clamped to
	// [0, MaxParam] for open paths and wrapped for closed ones.
	PointAt(t float32) mgl32.Vec3

	// TangentAt returns the unit forward direction at t.
	TangentAt(t float32) mgl32.Vec3

	// SpacedPoints returns n approximately arc-length-uniform samples.
	SpacedPoints(n int) []mgl32.Vec3

	// Closed reports whether the path wraps around.
	Closed() bool
}

// MaxParam is the largest usable parameter on open paths. Queries at
// exactly 1.0 would need a tangent sample past the endpoint.
const MaxParam = 0.999

// tangentEps is the finite-difference step for tangent queries.
const tangentEps = 1e-3

// arcTable inverts the t -> arc-length mapping so SpacedPoints can
// sample uniformly by distance instead of by parameter.
type arcTable struct {
	inv    interp.PiecewiseLinear
	length float64
}

// buildArcTable samples the path densely, accumulates segment lengths
// and fits a piecewise-linear s -> t inverse.
func buildArcTable(p Path, samples int) *arcTable {
	ts := make([]float64, 0, samples+1)
	ss := make([]float64, 0, samples+1)

	prev := p.PointAt(0)
	total := 0.0
	ts = append(ts, 0)
	ss = append(ss, 0)

	for i := 1; i <= samples; i++ {
		t := float32(i) / float32(samples) * MaxParam
		pt := p.PointAt(t)
		total += float64(pt.Sub(prev).Len())
		prev = pt

		// PiecewiseLinear needs strictly increasing abscissae; drop
		// zero-length steps from duplicate control points.
		if total > ss[len(ss)-1] {
			ts = append(ts, float64(t))
			ss = append(ss, total)
		}
	}

	tab := &arcTable{length: total}
	if total <= 0 || len(ss) < 2 {
		return tab
	}
	for i := range ss {
		ss[i] /= total
	}
	if err := tab.inv.Fit(ss, ts); err != nil {
		// Fall back to uniform-parameter sampling.
		return &arcTable{}
	}
	return tab
}

// paramAtFraction returns the parameter t whose arc length is the
// given fraction of the total.
func (a *arcTable) paramAtFraction(frac float64) float32 {
	if a.length <= 0 {
		return float32(frac) * MaxParam
	}
	return float32(a.inv.Predict(mathx.ClampF64(frac, 0, 1)))
}

// spacedPoints is the shared SpacedPoints implementation.
func spacedPoints(p Path, tab *arcTable, n int) []mgl32.Vec3 {
	if n < 2 {
		n = 2
	}
	out := make([]mgl32.Vec3, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		out[i] = p.PointAt(tab.paramAtFraction(frac))
	}
	return out
}

// finiteTangent computes a unit tangent by central difference, falling
// back to +Z when the samples collapse onto each other.
func finiteTangent(p Path, t float32) mgl32.Vec3 {
	lo := t - tangentEps
	hi := t + tangentEps
	if !p.Closed() {
		lo = mathx.Clamp(lo, 0, MaxParam)
		hi = mathx.Clamp(hi, 0, MaxParam)
	}
	d := p.PointAt(hi).Sub(p.PointAt(lo))
	return mathx.SafeNormalize(d, mgl32.Vec3{0, 0, 1})
}

// wrap01 wraps t into [0, 1).
func wrap01(t float32) float32 {
	r := float32(math.Mod(float64(t), 1))
	if r < 0 {
		r += 1
	}
	return r
}
