package tour

import (
	"math"
	"testing"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/overlay"
)

const dt = float32(1.0 / 60.0)

// recordingHost captures overlay output for headless assertions.
type recordingHost struct {
	panels map[string]bool
	shown  []string
	hidden []string
	bounds map[string]overlay.Rect
	resets int
}

func newRecordingHost(ids ...string) *recordingHost {
	h := &recordingHost{
		panels: make(map[string]bool),
		bounds: make(map[string]overlay.Rect),
	}
	for _, id := range ids {
		h.panels[id] = true
	}
	return h
}

func (h *recordingHost) HasPanel(id string) bool { return h.panels[id] }
func (h *recordingHost) ShowPanel(id string)     { h.shown = append(h.shown, id) }
func (h *recordingHost) HidePanel(id string)     { h.hidden = append(h.hidden, id) }
func (h *recordingHost) SetPanelQuad(id string, bounds overlay.Rect, _ overlay.Quad) {
	h.bounds[id] = bounds
}
func (h *recordingHost) ResetPanel(id string) {
	h.resets++
	delete(h.bounds, id)
}
func (h *recordingHost) SetHeading(string)      {}
func (h *recordingHost) SetNavState(bool, bool) {}

var _ overlay.PanelHost = (*recordingHost)(nil)

func headlessTour(t *testing.T) (*Tour, *recordingHost) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	ids := make([]string, 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		ids = append(ids, s.ID)
	}
	host := newRecordingHost(ids...)

	tr, err := New(cfg, Options{Headless: true, PanelHost: host})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tr.Close)
	return tr, host
}

func run(tr *Tour, frames int) {
	for i := 0; i < frames; i++ {
		tr.UpdateHeadless(dt)
	}
}

func TestTourStartsDockedAtFirstSection(t *testing.T) {
	tr, host := headlessTour(t)

	run(tr, 120)

	first := tr.Controller().Sections()[0]
	if got := tr.Controller().ActiveSection(); got == nil || got.ID != first.ID {
		t.Fatalf("active section = %v, want %q", got, first.ID)
	}
	if len(host.shown) == 0 || host.shown[0] != first.ID {
		t.Errorf("shown panels = %v, want %q first", host.shown, first.ID)
	}

	// The docked face projects large enough to pin the panel.
	if _, ok := host.bounds[first.ID]; !ok {
		t.Errorf("no projected quad for the docked section (%d resets)", host.resets)
	}
}

func TestScrollTravelsToMidSection(t *testing.T) {
	tr, host := headlessTour(t)

	// Scroll to the middle of the page: the section at t=0.5.
	total := tr.cfg.Derived.ScreenH32 * tr.cfg.Overlay.ScrollPageFactor
	tr.SetScroll(0.5 * total)
	run(tr, 900)

	sec := tr.Controller().ActiveSection()
	if sec == nil {
		t.Fatalf("no active section after scrolling to mid-page, param=%f", tr.Controller().Param())
	}
	if math.Abs(float64(sec.T-0.5)) > 1e-3 {
		t.Errorf("active section %q at t=%f, want the t=0.5 stop", sec.ID, sec.T)
	}

	// The first section's panel was hidden on the way out.
	first := tr.Controller().Sections()[0]
	found := false
	for _, id := range host.hidden {
		if id == first.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("first panel never hidden: hidden=%v", host.hidden)
	}
}

func TestScrollBetweenSectionsShowsNoPanel(t *testing.T) {
	tr, _ := headlessTour(t)

	// Park halfway between the t=0 and t=0.12 stops.
	total := tr.cfg.Derived.ScreenH32 * tr.cfg.Overlay.ScrollPageFactor
	tr.SetScroll(0.06 * total)
	run(tr, 900)

	if sec := tr.Controller().ActiveSection(); sec != nil {
		t.Errorf("active section %q between stops, want none", sec.ID)
	}
	if id := tr.Overlay().ActiveID(); id != "" {
		t.Errorf("overlay active %q between stops, want none", id)
	}
}

func TestJumpSyncsVirtualScroll(t *testing.T) {
	tr, _ := headlessTour(t)
	run(tr, 60)

	tr.jumpToSection("projects")
	if !tr.Controller().Transitioning() {
		t.Fatal("jump did not start a transition")
	}

	h := tr.cfg.Derived.ScreenH32
	want := tr.Overlay().SyncScrollToSection(tr.Controller().Target(), h)
	if math.Abs(float64(tr.scrollPx-want)) > 1e-3 {
		t.Errorf("virtual scroll %f not synced to %f after jump", tr.scrollPx, want)
	}

	// The jump eventually docks at the requested section.
	run(tr, 1200)
	if sec := tr.Controller().ActiveSection(); sec == nil || sec.ID != "projects" {
		t.Errorf("active section after jump = %v, want projects", sec)
	}
}

func TestFrameCountAdvances(t *testing.T) {
	tr, _ := headlessTour(t)
	run(tr, 10)
	if tr.Frame() != 10 {
		t.Errorf("frame count %d, want 10", tr.Frame())
	}
}

func TestBuildPathVariants(t *testing.T) {
	if _, err := BuildPath(config.PathConfig{Kind: "ring", RingRadius: 100}); err != nil {
		t.Errorf("ring path: %v", err)
	}
	if _, err := BuildPath(config.PathConfig{Kind: "spline", Controls: [][]float32{{0, 0, 0}, {0, 0, 10}}}); err != nil {
		t.Errorf("spline path: %v", err)
	}
	if _, err := BuildPath(config.PathConfig{Kind: "mobius"}); err == nil {
		t.Error("unknown path kind should fail")
	}
	if _, err := BuildPath(config.PathConfig{Kind: "spline", Controls: [][]float32{{0, 0, 0}}}); err == nil {
		t.Error("one-point spline should fail")
	}
	if _, err := BuildPath(config.PathConfig{Kind: "spline", Controls: [][]float32{{0, 0}, {1, 1}}}); err == nil {
		t.Error("2-component control point should fail")
	}
}
