// Package tour wires the path, world, camera, overlay and telemetry
// into the running experience. It owns the frame loop; everything else
// only sees its own slice of state.
package tour

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/cam"
	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
	"github.com/hollowbrook/vista/overlay"
	"github.com/hollowbrook/vista/renderer"
	"github.com/hollowbrook/vista/telemetry"
	"github.com/hollowbrook/vista/ui"
	"github.com/hollowbrook/vista/world"
)

// Options configures a tour instance.
type Options struct {
	Headless  bool
	OutputDir string

	// PanelHost overrides the panel output port. Defaults to the
	// renderer's panel layer in graphical mode and a no-op in headless
	// mode; tests inject a recorder.
	PanelHost overlay.PanelHost
}

// Tour is the assembled experience.
type Tour struct {
	cfg  *config.Config
	path curve.Path

	world      *world.World
	controller *cam.Controller
	overlay    *overlay.Manager

	perf     *telemetry.PerfCollector
	governor *telemetry.QualityGovernor
	output   *telemetry.OutputManager

	renderer *renderer.Renderer
	debug    *ui.DebugPanel
	hud      *ui.HUD

	// scrollPx is the virtual page scroll the wheel drives; kept in
	// sync with explicit navigation so the two never fight.
	scrollPx     float32
	wheelPending float32

	lastActiveID string
	frame        int64
	headless     bool
}

// New assembles a tour from a loaded config. In graphical mode the
// raylib window must already exist.
func New(cfg *config.Config, opts Options) (*Tour, error) {
	path, err := BuildPath(cfg.Path)
	if err != nil {
		return nil, err
	}

	t := &Tour{
		cfg:        cfg,
		path:       path,
		world:      world.New(cfg, path),
		controller: cam.New(cfg, path),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.WindowFrames),
		governor:   telemetry.NewQualityGovernor(cfg.Quality),
		headless:   opts.Headless,
	}

	t.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := t.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	host := opts.PanelHost
	if !opts.Headless {
		t.renderer = renderer.New(cfg, t.world)
		t.debug = ui.NewDebugPanel()
		t.hud = ui.NewHUD()
		if host == nil {
			host = t.renderer.Panels()
		}
	}
	if host == nil {
		host = noopHost{}
	}
	t.overlay = overlay.NewManager(host, cfg.Overlay)

	slog.Info("tour assembled",
		"sections", len(cfg.Sections),
		"path_kind", cfg.Path.Kind,
		"clouds", t.world.CloudCount(),
		"headless", opts.Headless,
	)
	return t, nil
}

// BuildPath constructs the travel curve described by the config.
func BuildPath(cfg config.PathConfig) (curve.Path, error) {
	switch cfg.Kind {
	case "ring":
		return curve.NewRing(cfg.RingRadius, cfg.WobbleAmp, cfg.WobbleFreq), nil
	case "spline", "":
		if len(cfg.Controls) < 2 {
			return nil, fmt.Errorf("path: spline needs at least 2 control points, got %d", len(cfg.Controls))
		}
		controls := make([]mgl32.Vec3, 0, len(cfg.Controls))
		for i, c := range cfg.Controls {
			if len(c) != 3 {
				return nil, fmt.Errorf("path: control point %d has %d components, want 3", i, len(c))
			}
			controls = append(controls, mgl32.Vec3{c[0], c[1], c[2]})
		}
		return curve.NewSpline(controls), nil
	default:
		return nil, fmt.Errorf("path: unknown kind %q", cfg.Kind)
	}
}

// Controller exposes the camera controller for input and tooling.
func (t *Tour) Controller() *cam.Controller { return t.controller }

// World exposes the generated world.
func (t *Tour) World() *world.World { return t.world }

// Overlay exposes the overlay manager.
func (t *Tour) Overlay() *overlay.Manager { return t.overlay }

// Frame returns the number of completed frames.
func (t *Tour) Frame() int64 { return t.frame }

// SetScroll feeds an absolute virtual scroll offset in pixels, the
// headless equivalent of the wheel.
func (t *Tour) SetScroll(px float32) {
	t.scrollPx = px
	h := t.cfg.Derived.ScreenH32
	t.controller.SetTargetProgress(t.overlay.ProgressForScroll(px, h))
}

// UpdateHeadless advances one frame without raylib.
func (t *Tour) UpdateHeadless(dt float32) {
	t.perf.StartFrame()
	t.step(dt)
	t.perf.EndFrame()
	t.finishFrame()
}

// step is the simulation core shared by both modes: camera, world,
// overlay, in that order.
func (t *Tour) step(dt float32) {
	t.perf.StartPhase(telemetry.PhaseCamera)

	// The dock pose needs the active face. The previous frame's active
	// section supplies it; on the frame the lock first engages the
	// blend factor is still near zero, so the lag is invisible.
	var face *components.FaceInfo
	if t.lastActiveID != "" {
		if fi, ok := t.world.FaceInfo(t.lastActiveID); ok {
			face = &fi
		}
	}
	sec := t.controller.Update(dt, face)

	activeID := ""
	if sec != nil {
		activeID = sec.ID
	}

	t.perf.StartPhase(telemetry.PhaseWorld)
	t.world.SetActiveSection(activeID)
	t.world.Update(dt, t.controller.Snapshot())

	t.perf.StartPhase(telemetry.PhaseOverlay)
	if activeID != t.lastActiveID {
		nav := overlay.NavInfo{
			HasPrev: t.controller.HasPrev(),
			HasNext: t.controller.HasNext(),
		}
		if sec != nil {
			nav.Heading = sec.Name
		}
		t.overlay.SetActiveSection(activeID, nav)
	}
	t.overlay.Tick()

	if activeID != "" {
		if corners, ok := t.world.Corners(activeID); ok {
			w, h := t.controller.Viewport()
			t.overlay.Project(corners, t.controller.ViewProjection(), w, h)
		}
	}

	t.lastActiveID = activeID
}

// finishFrame runs the per-frame telemetry bookkeeping.
func (t *Tour) finishFrame() {
	t.frame++

	windowFull := t.perf.SampleCount() >= t.cfg.Telemetry.WindowFrames
	if t.governor.Observe(t.perf.Stats(), windowFull) {
		t.applyQuality()
	}

	if t.output != nil && t.cfg.Telemetry.WindowFrames > 0 &&
		t.frame%int64(t.cfg.Telemetry.WindowFrames) == 0 {
		if err := t.output.WritePerf(t.perf.Stats(), t.frame); err != nil {
			slog.Error("telemetry write failed", "error", err)
		}
	}
}

// applyQuality pushes the governor's tier into the world and renderer.
func (t *Tour) applyQuality() {
	s := t.governor.Tier().Settings()
	t.world.SetCloudBudget(int(s.CloudFraction * float32(t.world.CloudCount())))
	if t.renderer != nil {
		t.renderer.ApplyQuality(s)
	}
}

// jumpToSection is explicit navigation from UI buttons; the virtual
// scroll follows so wheel input resumes from the same place.
func (t *Tour) jumpToSection(id string) {
	if !t.controller.GoToSection(id) {
		return
	}
	t.syncScroll()
}

// syncScroll re-derives the virtual scroll from the controller target.
func (t *Tour) syncScroll() {
	h := t.cfg.Derived.ScreenH32
	t.scrollPx = t.overlay.SyncScrollToSection(t.controller.Target(), h)
}

// Close releases everything the tour owns.
func (t *Tour) Close() {
	if t.renderer != nil {
		t.renderer.Close()
	}
	if err := t.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}

// noopHost is the headless panel sink.
type noopHost struct{}

func (noopHost) HasPanel(string) bool                            { return false }
func (noopHost) ShowPanel(string)                                {}
func (noopHost) HidePanel(string)                                {}
func (noopHost) SetPanelQuad(string, overlay.Rect, overlay.Quad) {}
func (noopHost) ResetPanel(string)                               {}
func (noopHost) SetHeading(string)                               {}
func (noopHost) SetNavState(bool, bool)                          {}
