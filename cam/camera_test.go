package cam

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
)

const dt = float32(1.0 / 60.0)

func testCfg(sections []config.SectionConfig) *config.Config {
	cfg := &config.Config{
		Screen: config.ScreenConfig{Width: 1280, Height: 720},
		Camera: config.CameraConfig{
			EaseRate:      4.0,
			SnapWindow:    0.05,
			DockDistance:  16,
			LookAhead:     0.03,
			Height:        5,
			ParallaxAmp:   2,
			ParallaxRate:  5,
			FOV:           55,
			Near:          0.5,
			Far:           1000,
			SnapDuration:  1.5,
			NavCooldownMS: 600,
		},
		Sections: sections,
	}
	cfg.Derived.ScreenW32 = 1280
	cfg.Derived.ScreenH32 = 720
	cfg.Derived.Aspect = 1280.0 / 720.0
	return cfg
}

func threeSections() []config.SectionConfig {
	return []config.SectionConfig{
		{ID: "a", Name: "A", T: 0},
		{ID: "b", Name: "B", T: 0.5},
		{ID: "c", Name: "C", T: 1},
	}
}

func straightPath() curve.Path {
	return curve.NewSpline([]mgl32.Vec3{{0, 0, 0}, {0, 0, 1000}})
}

// settle runs updates until the eased parameter stops moving.
func settle(c *Controller, face *components.FaceInfo, frames int) {
	for i := 0; i < frames; i++ {
		c.Update(dt, face)
	}
}

func TestNearestSectionSelection(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.SetTargetProgress(0.52)
	settle(c, nil, 300)

	sec := c.ActiveSection()
	if sec == nil {
		t.Fatal("expected an active section near 0.5")
	}
	if sec.ID != "b" {
		t.Errorf("active section = %q, want b", sec.ID)
	}
}

func TestActiveSectionUniquenessAndNull(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	// Far from every section: no active section.
	c.SetTargetProgress(0.25)
	settle(c, nil, 300)
	if sec := c.ActiveSection(); sec != nil {
		t.Errorf("expected no active section at 0.25, got %q", sec.ID)
	}
	if c.LockFactor() != 0 {
		t.Errorf("lock factor should be 0 outside snap window, got %f", c.LockFactor())
	}
}

func TestLockFactorMonotone(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	// Walk toward section b; lock factor must rise monotonically as
	// the parameter distance shrinks.
	prev := float32(-1)
	for _, p := range []float32{0.40, 0.46, 0.47, 0.48, 0.49, 0.50} {
		c.target = p
		c.current = p
		c.Update(0, nil)
		if c.LockFactor() < prev {
			t.Errorf("lock factor not monotone at t=%f: %f < %f", p, c.LockFactor(), prev)
		}
		prev = c.LockFactor()
	}
	if math.Abs(float64(prev-1)) > 1e-5 {
		t.Errorf("lock factor at zero distance = %f, want 1", prev)
	}
}

func TestGoToNextBounds(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	// Advance from index 0 to 1.
	sec := c.GoToNext()
	if sec.Index != 1 {
		t.Fatalf("first GoToNext: index %d, want 1", sec.Index)
	}

	// Burn the nav cooldown between commands.
	settle(c, nil, 120)
	sec = c.GoToNext()
	if sec.Index != 2 {
		t.Fatalf("second GoToNext: index %d, want 2", sec.Index)
	}

	// At the last section GoToNext is a no-op.
	settle(c, nil, 120)
	sec = c.GoToNext()
	if sec.Index != 2 {
		t.Errorf("GoToNext at end: index %d, want 2 (no overflow)", sec.Index)
	}

	settle(c, nil, 120)
	sec = c.GoToPrev()
	if sec.Index != 1 {
		t.Errorf("GoToPrev: index %d, want 1", sec.Index)
	}
}

func TestGoToPrevUnderflow(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	sec := c.GoToPrev()
	if sec.Index != 0 {
		t.Errorf("GoToPrev at start: index %d, want 0 (no underflow)", sec.Index)
	}
}

func TestNavCooldownSwallowsCommands(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.GoToNext()
	// Immediate second command falls in the cooldown window.
	sec := c.GoToNext()
	if sec.Index != 1 {
		t.Errorf("command during cooldown moved to index %d, want 1", sec.Index)
	}
}

func TestTransitioningSuppressesScroll(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.GoToSection("c")
	if !c.Transitioning() {
		t.Fatal("expected transitioning after explicit nav")
	}

	c.SetTargetProgress(0.1)
	if math.Abs(float64(c.Target()-c.sections[2].T)) > 1e-6 {
		t.Errorf("scroll during transition changed target to %f", c.Target())
	}

	// After the snap window passes, scroll works again.
	settle(c, nil, 120)
	c.SetTargetProgress(0.1)
	if math.Abs(float64(c.Target()-0.1)) > 1e-6 {
		t.Errorf("scroll after transition ignored, target=%f", c.Target())
	}
}

func TestZeroPitchDocking(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	// Sit exactly on section b: lock factor 1.
	c.target = 0.5
	c.current = 0.5

	face := &components.FaceInfo{
		Center: mgl32.Vec3{10, 5, 0},
		Normal: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.Update(dt, face)

	if math.Abs(float64(c.LockFactor()-1)) > 1e-5 {
		t.Fatalf("lock factor = %f, want 1", c.LockFactor())
	}
	snap := c.Snapshot()
	if math.Abs(float64(snap.Pos.Y()-5)) > 1e-3 {
		t.Errorf("docked camera Y = %f, want 5", snap.Pos.Y())
	}

	// Forward vector has exactly zero vertical component.
	fwd := snap.Look.Sub(snap.Pos)
	if math.Abs(float64(fwd.Y())) > 1e-3 {
		t.Errorf("look vector has pitch: Y component %f", fwd.Y())
	}
}

func TestZeroPitchWithTiltedNormal(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())
	c.target = 0.5
	c.current = 0.5

	// Even a face normal with a vertical component must not pitch the
	// camera: the up-axis coordinate match is exact, not approximate.
	face := &components.FaceInfo{
		Center: mgl32.Vec3{3, 7, 40},
		Normal: mgl32.Vec3{0.1, 0.3, -0.9}.Normalize(),
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.Update(dt, face)

	snap := c.Snapshot()
	if math.Abs(float64(snap.Pos.Y()-7)) > 1e-3 {
		t.Errorf("docked camera Y = %f, want 7", snap.Pos.Y())
	}
}

func TestDockedUpMatchesBillboard(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())
	c.target = 0.5
	c.current = 0.5

	bbUp := mgl32.Vec3{0.05, 1, 0}.Normalize()
	face := &components.FaceInfo{
		Center: mgl32.Vec3{0, 5, 500},
		Normal: mgl32.Vec3{0, 0, -1},
		Up:     bbUp,
	}
	c.Update(dt, face)

	snap := c.Snapshot()
	if snap.Up.Sub(bbUp).Len() > 1e-3 {
		t.Errorf("docked up %v, want billboard up %v (zero roll)", snap.Up, bbUp)
	}
}

func TestParallaxSuppressedWhenDocked(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	face := &components.FaceInfo{
		Center: mgl32.Vec3{0, 5, 500},
		Normal: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}

	// Hold full pointer deflection while docked.
	c.SetPointer(1, 1)
	c.target = 0.5
	c.current = 0.5
	settle(c, face, 600)

	if math.Abs(float64(c.swayX)) > 1e-3 || math.Abs(float64(c.swayY)) > 1e-3 {
		t.Errorf("parallax not suppressed when docked: sway=(%f, %f)", c.swayX, c.swayY)
	}
}

func TestParallaxActiveWhileTraveling(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.SetPointer(1, 0)
	c.target = 0.25
	c.current = 0.25
	settle(c, nil, 600)

	if c.swayX < 1 {
		t.Errorf("expected sway toward pointer while traveling, got %f", c.swayX)
	}
}

func TestParamClamped(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.SetTargetProgress(4.2)
	settle(c, nil, 600)
	if c.Param() > curve.MaxParam {
		t.Errorf("param %f beyond MaxParam", c.Param())
	}

	c.SetTargetProgress(-3)
	settle(c, nil, 600)
	if c.Param() < 0 {
		t.Errorf("param %f below zero", c.Param())
	}
}

func TestEaseConverges(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())

	c.SetTargetProgress(0.7)
	settle(c, nil, 600)
	if math.Abs(float64(c.Param()-0.7)) > 1e-3 {
		t.Errorf("param %f did not converge to 0.7", c.Param())
	}
}

func TestRingWrapsParameter(t *testing.T) {
	cfg := testCfg([]config.SectionConfig{
		{ID: "a", Name: "A", T: 0.02},
		{ID: "b", Name: "B", T: 0.98},
	})
	ring := curve.NewRing(200, 0, 0)
	c := New(cfg, ring)

	// Across the wrap seam the two sections are 0.04 apart.
	if d := c.paramDistance(0.02, 0.98); math.Abs(float64(d-0.04)) > 1e-5 {
		t.Errorf("wrap distance = %f, want 0.04", d)
	}
}

func TestSnapshotMatchesState(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())
	c.SetTargetProgress(0.5)
	settle(c, nil, 300)

	snap := c.Snapshot()
	if snap.Param != c.Param() {
		t.Error("snapshot param mismatch")
	}
	if snap.LockT != c.LockFactor() {
		t.Error("snapshot lock factor mismatch")
	}
	if snap.ActiveID != "b" {
		t.Errorf("snapshot active id %q, want b", snap.ActiveID)
	}
}

func TestViewProjectionProjectsForwardPoint(t *testing.T) {
	c := New(testCfg(threeSections()), straightPath())
	c.Update(dt, nil)

	snap := c.Snapshot()
	// A point straight ahead of the camera lands near NDC center.
	ahead := snap.Pos.Add(snap.Look.Sub(snap.Pos).Normalize().Mul(50))
	clip := c.ViewProjection().Mul4x1(ahead.Vec4(1))
	if clip.W() <= 0 {
		t.Fatal("point ahead of camera has non-positive w")
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math.Abs(float64(ndc.X())) > 0.05 || math.Abs(float64(ndc.Y())) > 0.05 {
		t.Errorf("forward point projects to (%f, %f), want near origin", ndc.X(), ndc.Y())
	}
}
