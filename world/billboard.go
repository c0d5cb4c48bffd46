package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/mathx"
)

// Variant selects the themed decoration built around a billboard.
// The set is closed; unknown config strings map to VariantDefault.
type Variant int

const (
	VariantDefault Variant = iota
	VariantHero
	VariantDirecting
	VariantNetwork
	VariantUGC
	VariantClientele
	VariantProjects
	VariantSocial
	VariantResume
	VariantContact
)

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) Variant {
	switch s {
	case "hero":
		return VariantHero
	case "directing":
		return VariantDirecting
	case "network":
		return VariantNetwork
	case "ugc":
		return VariantUGC
	case "clientele":
		return VariantClientele
	case "projects":
		return VariantProjects
	case "social":
		return VariantSocial
	case "resume":
		return VariantResume
	case "contact":
		return VariantContact
	default:
		return VariantDefault
	}
}

// RGB is an 8-bit accent color.
type RGB struct{ R, G, B uint8 }

// ParseHexColor parses "#rrggbb"; malformed input falls back to gray.
func ParseHexColor(s string) RGB {
	if len(s) != 7 || s[0] != '#' {
		return RGB{128, 128, 128}
	}
	hex := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hex(s[1+i*2])
		lo, ok2 := hex(s[2+i*2])
		if !ok1 || !ok2 {
			return RGB{128, 128, 128}
		}
		out[i] = hi<<4 | lo
	}
	return RGB{out[0], out[1], out[2]}
}

// Box is an axis-aligned block in billboard-local space.
type Box struct {
	Offset mgl32.Vec3 // center, local
	Size   mgl32.Vec3
	Color  RGB
}

// Post is a vertical support cylinder in billboard-local space.
type Post struct {
	Offset mgl32.Vec3 // base, local
	Height float32
	Radius float32
	Color  RGB
}

// Orb is a decorative sphere in billboard-local space.
type Orb struct {
	Offset mgl32.Vec3
	Radius float32
	Color  RGB
}

// MeshDescriptor is the pure-data shape of a landmark: support posts,
// the panel itself, its frame, an accent band, a light, and
// per-variant extras. The renderer draws it; nothing else inspects it.
type MeshDescriptor struct {
	Posts  []Post
	Panel  Box
	Frame  Box
	Accent Box
	Light  Orb
	Extras []Box
}

// Billboard face dimensions and animation tuning.
const (
	faceWidth      = 10.0
	faceHeight     = 6.0
	faceAltitude   = 5.0 // face center height above the anchor
	flattenRate    = 6.0 // exponential smoothing, 1/s
	inactiveSquash = 0.2 // vertical scale when fully inactive
	wobbleAmp      = 0.06
	wobbleSpeed    = 0.4
)

// Billboard is a themed landmark anchored at a section's curve
// position. Built once; only its active flag and minor pose mutate.
type Billboard struct {
	SectionID string
	Variant   Variant
	Accent    RGB
	Mesh      MeshDescriptor

	// Static basis, orthonormal: right x up x normal.
	Anchor mgl32.Vec3
	Right  mgl32.Vec3
	Up     mgl32.Vec3
	Normal mgl32.Vec3 // faces incoming travel

	Active bool

	// Animated pose state, exponentially smoothed every frame.
	flatten float32 // inactiveSquash..1 vertical scale
	opacity float32
	wobble  float32 // micro yaw, radians
	phase   float32
}

// newBillboard builds a landmark at the given path pose.
func newBillboard(sectionID string, variant Variant, accent RGB, anchor, tangent, up mgl32.Vec3, phase float32) *Billboard {
	normal := mathx.SafeNormalize(tangent.Mul(-1), mgl32.Vec3{0, 0, -1})
	up = mathx.SafeNormalize(up, mgl32.Vec3{0, 1, 0})

	// Re-orthogonalize: project the travel normal off the up axis so
	// the face is exactly perpendicular to local gravity.
	normal = mathx.SafeNormalize(normal.Sub(up.Mul(normal.Dot(up))), mgl32.Vec3{0, 0, -1})
	right := up.Cross(normal)

	return &Billboard{
		SectionID: sectionID,
		Variant:   variant,
		Accent:    accent,
		Mesh:      BuildThemedMesh(variant, accent),
		Anchor:    anchor,
		Right:     right,
		Up:        up,
		Normal:    normal,
		flatten:   inactiveSquash,
		opacity:   0.6,
		phase:     phase,
	}
}

// update advances the flatten/opacity/wobble animation.
func (b *Billboard) update(dt, clock float32) {
	targetFlatten := float32(inactiveSquash)
	targetOpacity := float32(0.6)
	if b.Active {
		targetFlatten = 1
		targetOpacity = 1
	}
	b.flatten = mathx.Damp(b.flatten, targetFlatten, flattenRate, dt)
	b.opacity = mathx.Damp(b.opacity, targetOpacity, flattenRate, dt)

	// Idle micro-rotation, suppressed while active so the docked face
	// holds perfectly still.
	idle := wobbleAmp * float32(math.Sin(float64(clock*wobbleSpeed+b.phase)))
	target := idle * (1 - b.flattenProgress())
	b.wobble = mathx.Damp(b.wobble, target, flattenRate, dt)
}

// flattenProgress maps flatten back to a 0..1 activation.
func (b *Billboard) flattenProgress() float32 {
	return mathx.Clamp01((b.flatten - inactiveSquash) / (1 - inactiveSquash))
}

// Opacity returns the current panel opacity.
func (b *Billboard) Opacity() float32 { return b.opacity }

// Flatten returns the current vertical squash scale.
func (b *Billboard) Flatten() float32 { return b.flatten }

// currentBasis returns the animated face basis: the static basis
// rotated by the micro yaw around the local up axis.
func (b *Billboard) currentBasis() (right, up, normal mgl32.Vec3) {
	if b.wobble == 0 {
		return b.Right, b.Up, b.Normal
	}
	rot := mgl32.HomogRotate3D(b.wobble, b.Up).Mat3()
	return rot.Mul3x1(b.Right), b.Up, rot.Mul3x1(b.Normal)
}

// FaceInfo returns the current world-space face center, normal and up,
// accounting for the animated transform.
func (b *Billboard) FaceInfo() components.FaceInfo {
	_, up, normal := b.currentBasis()
	center := b.Anchor.Add(b.Up.Mul(faceAltitude * b.flatten))
	return components.FaceInfo{Center: center, Normal: normal, Up: up}
}

// Corners returns the 4 world-space face corners in counterclockwise
// order seen from the front: bottom-left, bottom-right, top-right,
// top-left. The animated squash and wobble are applied.
func (b *Billboard) Corners() [4]mgl32.Vec3 {
	right, up, _ := b.currentBasis()
	center := b.Anchor.Add(b.Up.Mul(faceAltitude * b.flatten))

	hw := right.Mul(faceWidth / 2)
	hh := up.Mul(faceHeight / 2 * b.flatten)

	return [4]mgl32.Vec3{
		center.Sub(hw).Sub(hh),
		center.Add(hw).Sub(hh),
		center.Add(hw).Add(hh),
		center.Sub(hw).Add(hh),
	}
}

// BuildThemedMesh assembles the decorative shape for a variant. Pure:
// same variant and color always yield the same descriptor.
func BuildThemedMesh(variant Variant, accent RGB) MeshDescriptor {
	steel := RGB{70, 74, 82}
	dark := RGB{28, 30, 36}

	m := MeshDescriptor{
		Posts: []Post{
			{Offset: mgl32.Vec3{-faceWidth / 2 * 0.8, 0, 0}, Height: faceAltitude, Radius: 0.25, Color: steel},
			{Offset: mgl32.Vec3{faceWidth / 2 * 0.8, 0, 0}, Height: faceAltitude, Radius: 0.25, Color: steel},
		},
		Panel:  Box{Offset: mgl32.Vec3{0, faceAltitude, 0}, Size: mgl32.Vec3{faceWidth, faceHeight, 0.3}, Color: dark},
		Frame:  Box{Offset: mgl32.Vec3{0, faceAltitude, -0.05}, Size: mgl32.Vec3{faceWidth + 0.6, faceHeight + 0.6, 0.2}, Color: steel},
		Accent: Box{Offset: mgl32.Vec3{0, faceAltitude - faceHeight/2 - 0.5, 0}, Size: mgl32.Vec3{faceWidth, 0.4, 0.35}, Color: accent},
		Light:  Orb{Offset: mgl32.Vec3{0, faceAltitude + faceHeight/2 + 0.8, 0}, Radius: 0.35, Color: accent},
	}

	switch variant {
	case VariantHero:
		// Tall marquee pylons either side of the entrance board.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{-faceWidth/2 - 1.2, 4, 0}, Size: mgl32.Vec3{0.8, 8, 0.8}, Color: accent},
			{Offset: mgl32.Vec3{faceWidth/2 + 1.2, 4, 0}, Size: mgl32.Vec3{0.8, 8, 0.8}, Color: accent},
		}
	case VariantDirecting:
		// Clapperboard wedge over the panel.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{0, faceAltitude + faceHeight/2 + 0.4, 0}, Size: mgl32.Vec3{faceWidth * 0.6, 0.5, 0.5}, Color: dark},
			{Offset: mgl32.Vec3{-faceWidth * 0.2, faceAltitude + faceHeight/2 + 0.9, 0}, Size: mgl32.Vec3{faceWidth * 0.55, 0.5, 0.5}, Color: accent},
		}
	case VariantNetwork:
		// Relay masts behind the board.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{-2, faceAltitude + 4, 1.2}, Size: mgl32.Vec3{0.3, 5, 0.3}, Color: steel},
			{Offset: mgl32.Vec3{2.5, faceAltitude + 3, 1.2}, Size: mgl32.Vec3{0.3, 4, 0.3}, Color: steel},
		}
	case VariantUGC:
		// Stacked tiles, a content wall.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{-faceWidth/2 - 1.4, 2, 0.5}, Size: mgl32.Vec3{1.4, 1.4, 1.4}, Color: accent},
			{Offset: mgl32.Vec3{-faceWidth/2 - 1.4, 3.6, 0.5}, Size: mgl32.Vec3{1.1, 1.1, 1.1}, Color: steel},
			{Offset: mgl32.Vec3{-faceWidth/2 - 1.4, 4.9, 0.5}, Size: mgl32.Vec3{0.8, 0.8, 0.8}, Color: accent},
		}
	case VariantClientele:
		// Podium steps in front.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{0, 0.4, -2.2}, Size: mgl32.Vec3{6, 0.8, 1.4}, Color: steel},
			{Offset: mgl32.Vec3{0, 1.0, -1.2}, Size: mgl32.Vec3{4.4, 2.0, 1.0}, Color: accent},
		}
	case VariantProjects:
		// Crane arm over the board.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{faceWidth/2 + 1.6, 5, 0}, Size: mgl32.Vec3{0.5, 10, 0.5}, Color: accent},
			{Offset: mgl32.Vec3{faceWidth / 4, 9.8, 0}, Size: mgl32.Vec3{faceWidth * 0.8, 0.5, 0.5}, Color: steel},
		}
	case VariantSocial:
		// Orbiting satellite dishes as side blocks.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{-faceWidth/2 - 1.0, faceAltitude + 1, 0}, Size: mgl32.Vec3{1, 1, 0.4}, Color: accent},
			{Offset: mgl32.Vec3{faceWidth/2 + 1.0, faceAltitude - 1, 0}, Size: mgl32.Vec3{1, 1, 0.4}, Color: accent},
		}
	case VariantResume:
		// A stack of plates, paper tray.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{faceWidth/2 + 1.5, 0.6, 0}, Size: mgl32.Vec3{2.4, 0.25, 3.2}, Color: steel},
			{Offset: mgl32.Vec3{faceWidth/2 + 1.5, 1.0, 0}, Size: mgl32.Vec3{2.2, 0.25, 3.0}, Color: accent},
		}
	case VariantContact:
		// Beacon column.
		m.Extras = []Box{
			{Offset: mgl32.Vec3{0, faceAltitude + faceHeight/2 + 2.2, 0}, Size: mgl32.Vec3{0.6, 2.4, 0.6}, Color: accent},
		}
	case VariantDefault:
		// Bare board, no extras.
	}

	return m
}
