package curve

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/mathx"
)

// Spline is an open Catmull-Rom spline through ordered control points.
// The curve passes through every control point with a continuous first
// derivative, so camera motion along it never kinks.
type Spline struct {
	points []mgl32.Vec3 // with duplicated end points for the CR window
	segs   int
	arc    *arcTable
}

// NewSpline builds a spline from at least two control points.
// Fewer than two points yields a degenerate spline pinned at the
// single (or zero) given position.
func NewSpline(controls []mgl32.Vec3) *Spline {
	s := &Spline{}
	switch len(controls) {
	case 0:
		s.points = []mgl32.Vec3{{}, {}, {}, {}}
	case 1:
		p := controls[0]
		s.points = []mgl32.Vec3{p, p, p, p}
	default:
		// Duplicate the end points so the Catmull-Rom window is defined
		// on the first and last segments.
		s.points = make([]mgl32.Vec3, 0, len(controls)+2)
		s.points = append(s.points, controls[0])
		s.points = append(s.points, controls...)
		s.points = append(s.points, controls[len(controls)-1])
	}
	s.segs = len(s.points) - 3
	if s.segs < 1 {
		s.segs = 1
	}
	s.arc = buildArcTable(s, 512)
	return s
}

// PointAt returns the spline position at t, clamped to [0, MaxParam].
func (s *Spline) PointAt(t float32) mgl32.Vec3 {
	t = mathx.Clamp(t, 0, MaxParam)

	ft := t * float32(s.segs)
	seg := int(ft)
	if seg >= s.segs {
		seg = s.segs - 1
	}
	u := ft - float32(seg)

	p0 := s.points[seg]
	p1 := s.points[seg+1]
	p2 := s.points[seg+2]
	p3 := s.points[seg+3]

	return catmullRom(p0, p1, p2, p3, u)
}

// TangentAt returns the unit forward direction at t.
func (s *Spline) TangentAt(t float32) mgl32.Vec3 {
	return finiteTangent(s, t)
}

// SpacedPoints returns n approximately arc-length-uniform samples.
func (s *Spline) SpacedPoints(n int) []mgl32.Vec3 {
	return spacedPoints(s, s.arc, n)
}

// Closed reports whether the path wraps; splines are open.
func (s *Spline) Closed() bool { return false }

// Length returns the approximate total arc length.
func (s *Spline) Length() float32 { return float32(s.arc.length) }

// catmullRom evaluates the uniform Catmull-Rom basis at u in [0,1] for
// the segment between p1 and p2.
func catmullRom(p0, p1, p2, p3 mgl32.Vec3, u float32) mgl32.Vec3 {
	u2 := u * u
	u3 := u2 * u

	c0 := -0.5*u3 + u2 - 0.5*u
	c1 := 1.5*u3 - 2.5*u2 + 1
	c2 := -1.5*u3 + 2*u2 + 0.5*u
	c3 := 0.5*u3 - 0.5*u2

	return p0.Mul(c0).Add(p1.Mul(c1)).Add(p2.Mul(c2)).Add(p3.Mul(c3))
}
