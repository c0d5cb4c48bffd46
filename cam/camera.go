// Package cam implements the camera controller: the state machine that
// converts scroll progress and explicit navigation into a camera pose,
// blending continuously between free travel along the path and a
// locked, zero-pitch, zero-roll framing of a billboard face.
package cam

import (
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
	"github.com/hollowbrook/vista/mathx"
)

// Section is a navigable stop on the path, built once from config.
type Section struct {
	ID    string
	Name  string
	T     float32
	Color string
	Index int
}

// Controller owns all mutable camera state. It is written once per
// frame by Update and read by everyone else through Snapshot.
type Controller struct {
	// cfg is shared with the debug tuning panel; reads see live edits.
	cfg      *config.CameraConfig
	path     curve.Path
	sections []Section // sorted by T

	current float32 // curve parameter, eased toward target
	target  float32

	// Idle parallax: raw pointer input and the damped sway it drives.
	pointerX, pointerY float32
	swayX, swayY       float32

	// Explicit-navigation windows, in seconds remaining.
	snapLeft     float32
	cooldownLeft float32

	lockT  float32
	active *Section

	pos  mgl32.Vec3
	up   mgl32.Vec3
	look mgl32.Vec3

	viewportW, viewportH float32
	proj                 mgl32.Mat4
}

// New builds a controller for the given path and section list.
func New(cfg *config.Config, path curve.Path) *Controller {
	c := &Controller{
		cfg:       &cfg.Camera,
		path:      path,
		up:        mgl32.Vec3{0, 1, 0},
		viewportW: cfg.Derived.ScreenW32,
		viewportH: cfg.Derived.ScreenH32,
	}

	c.sections = make([]Section, 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		c.sections = append(c.sections, Section{
			ID:    s.ID,
			Name:  s.Name,
			T:     mathx.Clamp(s.T, 0, curve.MaxParam),
			Color: s.Color,
		})
	}
	sort.Slice(c.sections, func(i, j int) bool { return c.sections[i].T < c.sections[j].T })
	for i := range c.sections {
		c.sections[i].Index = i
	}

	c.rebuildProjection()
	return c
}

// Sections returns the ordered section list.
func (c *Controller) Sections() []Section { return c.sections }

// SetTargetProgress sets the desired curve parameter from a scroll
// fraction. Ignored while an explicit jump is in flight so scroll
// events cannot fight the transition.
func (c *Controller) SetTargetProgress(t float32) {
	if c.Transitioning() {
		return
	}
	c.target = c.clampParam(t)
}

// SetPointer feeds normalized pointer coordinates in [-1, 1] for the
// idle parallax sway.
func (c *Controller) SetPointer(nx, ny float32) {
	c.pointerX = mathx.Clamp(nx, -1, 1)
	c.pointerY = mathx.Clamp(ny, -1, 1)
}

// GoToSection jumps to a section by id. Returns false for unknown ids
// or while the navigation cooldown is running.
func (c *Controller) GoToSection(id string) bool {
	for i := range c.sections {
		if c.sections[i].ID == id {
			return c.navigateTo(i)
		}
	}
	return false
}

// GoToNext advances one section. At the last section it is a no-op and
// returns that section unchanged.
func (c *Controller) GoToNext() *Section {
	idx := c.nearestToTarget()
	if idx < len(c.sections)-1 && c.navigateTo(idx+1) {
		return &c.sections[idx+1]
	}
	return &c.sections[idx]
}

// GoToPrev steps back one section. At the first section it is a no-op.
func (c *Controller) GoToPrev() *Section {
	idx := c.nearestToTarget()
	if idx > 0 && c.navigateTo(idx-1) {
		return &c.sections[idx-1]
	}
	return &c.sections[idx]
}

// HasNext reports whether a later section exists.
func (c *Controller) HasNext() bool {
	return c.nearestToTarget() < len(c.sections)-1
}

// HasPrev reports whether an earlier section exists.
func (c *Controller) HasPrev() bool {
	return c.nearestToTarget() > 0
}

// Transitioning reports whether an explicit jump is still suppressing
// scroll-driven progress updates.
func (c *Controller) Transitioning() bool { return c.snapLeft > 0 }

// navigateTo starts an explicit jump, honoring the command cooldown.
func (c *Controller) navigateTo(idx int) bool {
	if c.cooldownLeft > 0 {
		return false
	}
	c.target = c.sections[idx].T
	c.snapLeft = c.cfg.SnapDuration
	c.cooldownLeft = float32(time.Duration(c.cfg.NavCooldownMS)*time.Millisecond) / float32(time.Second)
	return true
}

// nearestToTarget returns the section index closest to the target
// parameter. The target, not the eased current value, is what explicit
// navigation steps from; mid-flight GoToNext must not re-count the
// section it is leaving.
func (c *Controller) nearestToTarget() int {
	idx, _ := c.nearest(c.target)
	return idx
}

// nearest returns the section index closest to t and its parameter
// distance, wrap-aware on closed paths.
func (c *Controller) nearest(t float32) (int, float32) {
	best := 0
	bestD := float32(mgl32.MaxValue)
	for i := range c.sections {
		d := c.paramDistance(t, c.sections[i].T)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, bestD
}

// paramDistance is |a-b| on open paths, shortest way around on rings.
func (c *Controller) paramDistance(a, b float32) float32 {
	d := mathx.Absf(a - b)
	if c.path.Closed() && d > 0.5 {
		d = 1 - d
	}
	return d
}

// clampParam keeps the parameter in the usable range: wrapped on
// closed paths, clamped to [0, MaxParam] on open ones so tangent
// queries never degenerate at the endpoint.
func (c *Controller) clampParam(t float32) float32 {
	if c.path.Closed() {
		r := float32(math.Mod(float64(t), 1))
		if r < 0 {
			r += 1
		}
		return r
	}
	return mathx.Clamp(t, 0, curve.MaxParam)
}

// Update advances the camera one frame and returns the active section,
// or nil while traveling. face is the active billboard's current face
// geometry, nil when no section is near.
func (c *Controller) Update(dt float32, face *components.FaceInfo) *Section {
	if c.snapLeft > 0 {
		c.snapLeft -= dt
	}
	if c.cooldownLeft > 0 {
		c.cooldownLeft -= dt
	}

	// Frame-rate-independent ease toward the target parameter.
	c.current = c.clampParam(mathx.Damp(c.current, c.target, c.cfg.EaseRate, dt))

	// Lock factor: smoothstep of distance to the nearest section.
	// Continuous, 1 at the section, 0 at and beyond the snap window.
	idx, dist := c.nearest(c.current)
	c.lockT = 1 - mathx.Smoothstep(0, c.cfg.SnapWindow, dist)

	if dist <= c.cfg.SnapWindow {
		c.active = &c.sections[idx]
	} else {
		c.active = nil
	}

	travelUp := c.travelUp()

	// Parallax sway eases toward the pointer, and to zero as the lock
	// engages. Any residual sway while docked would tilt the framing.
	gain := (1 - c.lockT) * c.cfg.ParallaxAmp
	c.swayX = mathx.Damp(c.swayX, c.pointerX*gain, c.cfg.ParallaxRate, dt)
	c.swayY = mathx.Damp(c.swayY, c.pointerY*gain, c.cfg.ParallaxRate, dt)

	// Travel pose: ride the path with a look-ahead target.
	pathPos := c.path.PointAt(c.current)
	tangent := c.path.TangentAt(c.current)
	right := mathx.SafeNormalize(travelUp.Cross(tangent), mgl32.Vec3{1, 0, 0})

	travelPos := pathPos.
		Add(travelUp.Mul(c.cfg.Height)).
		Add(right.Mul(c.swayX)).
		Add(travelUp.Mul(c.swayY))

	aheadPos := c.path.PointAt(c.clampParam(c.current + c.cfg.LookAhead))
	travelLook := aheadPos.Add(travelUp.Mul(c.cfg.Height * 0.85))

	pos := travelPos
	up := travelUp
	look := travelLook

	if face != nil && c.lockT > 0 {
		// Dock pose: offset straight out along the face normal, then
		// force the camera's coordinate along the billboard's up axis
		// to equal the face center's. The forward vector's component
		// along that axis is then exactly zero: zero pitch by
		// construction, not by damping.
		dockPos := face.Center.Add(face.Normal.Mul(c.cfg.DockDistance))
		dockPos = dockPos.Add(face.Up.Mul(face.Up.Dot(face.Center.Sub(dockPos))))

		// Blending the up vector toward the billboard's own up kills
		// the residual roll that lateral offset geometry introduces.
		pos = travelPos.Add(dockPos.Sub(travelPos).Mul(c.lockT))
		up = mathx.SafeNormalize(
			travelUp.Add(face.Up.Sub(travelUp).Mul(c.lockT)),
			mgl32.Vec3{0, 1, 0},
		)
		look = travelLook.Add(face.Center.Sub(travelLook).Mul(c.lockT))
	}

	c.pos = pos
	c.up = up
	c.look = look

	return c.active
}

// travelUp is the camera up while traveling: radial-outward on ring
// worlds, world Y on flat ones. Epsilon-guarded near the ring center.
func (c *Controller) travelUp() mgl32.Vec3 {
	if c.path.Closed() {
		p := c.path.PointAt(c.current)
		return mathx.SafeNormalize(mgl32.Vec3{p.X(), 0, p.Z()}, mgl32.Vec3{0, 1, 0})
	}
	return mgl32.Vec3{0, 1, 0}
}

// Snapshot returns the immutable per-frame state consumed by the
// world, overlay and renderer.
func (c *Controller) Snapshot() components.FrameState {
	activeID := ""
	if c.active != nil {
		activeID = c.active.ID
	}
	return components.FrameState{
		Pos:      c.pos,
		Up:       c.up,
		Look:     c.look,
		Param:    c.current,
		LockT:    c.lockT,
		ActiveID: activeID,
	}
}

// Param returns the current curve parameter.
func (c *Controller) Param() float32 { return c.current }

// Target returns the target curve parameter.
func (c *Controller) Target() float32 { return c.target }

// LockFactor returns the current travel-vs-docked blend.
func (c *Controller) LockFactor() float32 { return c.lockT }

// ActiveSection returns the active section or nil.
func (c *Controller) ActiveSection() *Section { return c.active }

// View returns the view matrix for the current pose.
func (c *Controller) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.pos, c.look, c.up)
}

// ViewProjection returns projection * view for point projection.
func (c *Controller) ViewProjection() mgl32.Mat4 {
	return c.proj.Mul4(c.View())
}

// Viewport returns the current viewport size in pixels.
func (c *Controller) Viewport() (w, h float32) { return c.viewportW, c.viewportH }

// Resize updates the viewport and rebuilds the projection matrix.
func (c *Controller) Resize(w, h float32) {
	if w <= 0 || h <= 0 || (w == c.viewportW && h == c.viewportH) {
		return
	}
	c.viewportW = w
	c.viewportH = h
	c.rebuildProjection()
}

func (c *Controller) rebuildProjection() {
	aspect := float32(16.0 / 9.0)
	if c.viewportH > 0 {
		aspect = c.viewportW / c.viewportH
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
}
