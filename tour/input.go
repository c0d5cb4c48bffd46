package tour

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/mathx"
	"github.com/hollowbrook/vista/telemetry"
	"github.com/hollowbrook/vista/ui"
)

// wheelPxPerNotch converts one wheel notch into virtual scroll pixels.
const wheelPxPerNotch = 120.0

// Update runs one graphical frame: input, simulation, telemetry.
func (t *Tour) Update() {
	t.perf.StartFrame()
	t.perf.StartPhase(telemetry.PhaseInput)
	t.handleInput()
	t.step(rl.GetFrameTime())
}

// handleInput processes wheel, pointer and keyboard input.
func (t *Tour) handleInput() {
	t.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Wheel events are coalesced into one target update per frame so a
	// fast wheel burst moves the target once, not once per event.
	t.wheelPending += rl.GetMouseWheelMove()
	if t.wheelPending != 0 {
		h := t.cfg.Derived.ScreenH32
		total := h * t.cfg.Overlay.ScrollPageFactor
		t.scrollPx = mathx.Clamp(t.scrollPx-t.wheelPending*wheelPxPerNotch, 0, total)
		t.controller.SetTargetProgress(t.overlay.ProgressForScroll(t.scrollPx, h))
		t.wheelPending = 0
	}

	// Pointer position, normalized to [-1, 1] around screen center,
	// drives the idle parallax.
	mouse := rl.GetMousePosition()
	w, h := t.controller.Viewport()
	if w > 0 && h > 0 {
		t.controller.SetPointer(mouse.X/w*2-1, mouse.Y/h*2-1)
	}

	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyPageDown) {
		t.controller.GoToNext()
		t.syncScroll()
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyPageUp) {
		t.controller.GoToPrev()
		t.syncScroll()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		t.jumpToSection(t.controller.Sections()[0].ID)
	}
	if rl.IsKeyPressed(rl.KeyEnd) {
		secs := t.controller.Sections()
		t.jumpToSection(secs[len(secs)-1].ID)
	}

	// Number row jumps straight to section 1..9.
	for i, sec := range t.controller.Sections() {
		if i >= 9 {
			break
		}
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			t.jumpToSection(sec.ID)
		}
	}

	if rl.IsKeyPressed(rl.KeyD) {
		t.debug.Toggle()
	}
}

// handleResize propagates window size changes.
func (t *Tour) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	t.controller.Resize(w, h)
}

// Draw renders the frame and closes out telemetry.
func (t *Tour) Draw() {
	t.perf.StartPhase(telemetry.PhaseDraw)

	t.renderer.Draw(t.world, t.controller.Snapshot())

	snap := t.controller.Snapshot()
	if t.debug.Visible() {
		t.hud.Draw(ui.HUDData{
			Param:    snap.Param,
			Target:   t.controller.Target(),
			LockT:    snap.LockT,
			ActiveID: snap.ActiveID,
			Tier:     t.governor.Tier(),
			Stats:    t.perf.Stats(),
			CloudsOn: int(t.governor.Tier().Settings().CloudFraction * float32(t.world.CloudCount())),
		})
	}
	if id := t.debug.Draw(&t.cfg.Camera, t.controller); id != "" {
		t.jumpToSection(id)
	}

	t.renderer.Present()

	t.perf.EndFrame()
	t.finishFrame()
}
