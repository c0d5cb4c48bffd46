// Package ui renders the debug HUD and the live tuning panel. Both are
// development tools, hidden by default and toggled at runtime; the
// tour itself draws nothing through this package.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/cam"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/telemetry"
)

const (
	panelWidth  = 300
	panelMargin = 12
	sliderH     = 20
	rowGap      = 36
)

// DebugPanel is the live camera-tuning panel with section jump
// buttons. It writes straight into the shared camera config so changes
// take effect the same frame.
type DebugPanel struct {
	visible bool
}

// NewDebugPanel creates the panel, hidden.
func NewDebugPanel() *DebugPanel {
	return &DebugPanel{}
}

// Toggle flips visibility and returns the new state.
func (p *DebugPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the panel is shown.
func (p *DebugPanel) Visible() bool { return p.visible }

// Draw renders the panel and applies slider edits. Returns the id of a
// section jump request, empty when none.
func (p *DebugPanel) Draw(cfg *config.CameraConfig, controller *cam.Controller) string {
	if !p.visible {
		return ""
	}

	x := float32(panelMargin)
	y := float32(panelMargin + 50)

	rl.DrawRectangle(int32(x)-8, int32(y)-8, panelWidth+16, 420, rl.Color{R: 12, G: 14, B: 20, A: 220})
	rl.DrawText("Camera Tuning", int32(x), int32(y), 20, rl.RayWhite)
	y += 32

	cfg.EaseRate = slider(x, &y, "Ease rate (1/s)", cfg.EaseRate, 0.5, 10)
	cfg.SnapWindow = slider(x, &y, "Snap window (param)", cfg.SnapWindow, 0.005, 0.15)
	cfg.DockDistance = slider(x, &y, "Dock distance", cfg.DockDistance, 4, 40)
	cfg.LookAhead = slider(x, &y, "Look ahead (param)", cfg.LookAhead, 0.005, 0.1)
	cfg.ParallaxAmp = slider(x, &y, "Parallax amplitude", cfg.ParallaxAmp, 0, 6)

	rl.DrawText("Sections", int32(x), int32(y), 16, rl.LightGray)
	y += 24

	jump := ""
	bx := x
	for _, sec := range controller.Sections() {
		w := float32(88)
		if bx+w > x+panelWidth {
			bx = x
			y += 34
		}
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: w, Height: 28}, sec.Name) {
			jump = sec.ID
		}
		bx += w + 6
	}

	return jump
}

// slider draws one labeled slider row and advances the layout cursor.
func slider(x float32, y *float32, label string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	out := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 70, Height: sliderH},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.3f", out), int32(x+panelWidth-60), int32(*y+2), 14, rl.LightGray)
	*y += rowGap - 18
	return out
}

// HUDData is everything the debug HUD prints.
type HUDData struct {
	Param    float32
	Target   float32
	LockT    float32
	ActiveID string
	Tier     telemetry.Tier
	Stats    telemetry.PerfStats
	CloudsOn int
}

// HUD is the one-line debug readout along the top of the window.
type HUD struct{}

// NewHUD creates the HUD.
func NewHUD() *HUD { return &HUD{} }

// Draw renders the readout.
func (h *HUD) Draw(data HUDData) {
	active := data.ActiveID
	if active == "" {
		active = "-"
	}
	line := fmt.Sprintf(
		"t=%.3f -> %.3f  lock=%.2f  section=%s  tier=%s  %.1fms (%d fps)  clouds=%d",
		data.Param, data.Target, data.LockT, active,
		data.Tier.String(), data.Stats.AvgFrameMS(), int(data.Stats.FPS), data.CloudsOn,
	)
	rl.DrawText(line, 12, 12, 16, rl.Color{R: 180, G: 255, B: 190, A: 255})
}
