// Package mathx provides small math helpers shared by the curve, world,
// cam and overlay packages.
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Damp moves current toward target with frame-rate-independent
// exponential smoothing. rate is the convergence rate in 1/seconds.
//
// The 1-exp(-rate*dt) form converges identically regardless of frame
// rate; the naive current += (target-current)*rate*dt does not.
func Damp(current, target, rate, dt float32) float32 {
	return current + (target-current)*(1-float32(math.Exp(float64(-rate*dt))))
}

// DampVec3 is Damp applied componentwise.
func DampVec3(current, target mgl32.Vec3, rate, dt float32) mgl32.Vec3 {
	k := 1 - float32(math.Exp(float64(-rate*dt)))
	return current.Add(target.Sub(current).Mul(k))
}

// Smoothstep returns the cubic Hermite interpolant of x between edge0
// and edge1, clamped to [0, 1].
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp restricts v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampF64 is Clamp for float64.
func ClampF64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SafeNormalize returns v normalized, or fallback when v is too short
// to normalize without blowing up.
func SafeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	const eps = 1e-6
	l := v.Len()
	if l < eps {
		return fallback
	}
	return v.Mul(1 / l)
}

// Absf returns the absolute value of a float32.
func Absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
