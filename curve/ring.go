package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ring is a closed planar ring of radius R with a sinusoidal
// out-of-plane wobble, parametrized by angle. It is the travel path
// for the globe variant of the tour.
type Ring struct {
	radius     float32
	wobbleAmp  float32
	wobbleFreq float32 // whole waves per revolution
	arc        *arcTable
}

// NewRing builds a ring path. wobbleFreq should be an integer so the
// curve closes smoothly; it is rounded to the nearest whole wave.
func NewRing(radius, wobbleAmp, wobbleFreq float32) *Ring {
	r := &Ring{
		radius:     radius,
		wobbleAmp:  wobbleAmp,
		wobbleFreq: float32(math.Round(float64(wobbleFreq))),
	}
	r.arc = buildArcTable(r, 512)
	return r
}

// PointAt returns the ring position at t. t wraps, the ring is closed.
func (r *Ring) PointAt(t float32) mgl32.Vec3 {
	theta := float64(wrap01(t)) * 2 * math.Pi
	return mgl32.Vec3{
		r.radius * float32(math.Cos(theta)),
		r.wobbleAmp * float32(math.Sin(float64(r.wobbleFreq)*theta)),
		r.radius * float32(math.Sin(theta)),
	}
}

// TangentAt returns the unit forward direction at t, from the analytic
// derivative of the ring equation.
func (r *Ring) TangentAt(t float32) mgl32.Vec3 {
	theta := float64(wrap01(t)) * 2 * math.Pi
	d := mgl32.Vec3{
		-r.radius * float32(math.Sin(theta)),
		r.wobbleAmp * r.wobbleFreq * float32(math.Cos(float64(r.wobbleFreq)*theta)),
		r.radius * float32(math.Cos(theta)),
	}
	return d.Normalize()
}

// SpacedPoints returns n approximately arc-length-uniform samples.
func (r *Ring) SpacedPoints(n int) []mgl32.Vec3 {
	return spacedPoints(r, r.arc, n)
}

// Closed reports whether the path wraps; rings always do.
func (r *Ring) Closed() bool { return true }

// Radius returns the ring radius.
func (r *Ring) Radius() float32 { return r.radius }
