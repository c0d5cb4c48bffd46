// Package overlay keeps content panels synchronized with camera and
// world state. It owns no 3D logic beyond projecting billboard corners
// into screen space; all panel output goes through the PanelHost port
// so the core stays testable without a window.
package overlay

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/mathx"
)

// Rect is a pixel-space rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Quad is a projected four-corner polygon in pixel space, in the same
// order as the billboard corners: bottom-left, bottom-right,
// top-right, top-left.
type Quad [4][2]float32

// ClipPath renders the quad as a CSS-style clip-path polygon string,
// with coordinates relative to the bounding rect in percent.
func (q Quad) ClipPath(bounds Rect) string {
	pct := func(v, origin, size float32) float32 {
		if size <= 0 {
			return 0
		}
		return mathx.Clamp((v-origin)/size*100, 0, 100)
	}
	return fmt.Sprintf("polygon(%.1f%% %.1f%%, %.1f%% %.1f%%, %.1f%% %.1f%%, %.1f%% %.1f%%)",
		pct(q[3][0], bounds.X, bounds.W), pct(q[3][1], bounds.Y, bounds.H),
		pct(q[2][0], bounds.X, bounds.W), pct(q[2][1], bounds.Y, bounds.H),
		pct(q[1][0], bounds.X, bounds.W), pct(q[1][1], bounds.Y, bounds.H),
		pct(q[0][0], bounds.X, bounds.W), pct(q[0][1], bounds.Y, bounds.H),
	)
}

// PanelHost is the output port for panel placement. The raylib
// renderer implements it for the window; tests use a recording fake.
// Implementations must treat unknown panel ids as silent no-ops.
type PanelHost interface {
	HasPanel(id string) bool
	ShowPanel(id string)
	HidePanel(id string)
	// SetPanelQuad pins a panel to an exact projected quadrilateral.
	SetPanelQuad(id string, bounds Rect, clip Quad)
	// ResetPanel clears any projection override, returning the panel
	// to its default centered layout.
	ResetPanel(id string)
	SetHeading(text string)
	SetNavState(hasPrev, hasNext bool)
}

// NavInfo carries the controller's has-next/has-prev answers into the
// overlay without coupling it to the camera package.
type NavInfo struct {
	HasPrev bool
	HasNext bool
	Heading string
}

// Manager maps active-section state to panel visibility and position.
type Manager struct {
	host PanelHost
	cfg  config.OverlayConfig

	activeID string

	// pendingCleanup panels are hidden but still animating out; their
	// overrides are cleared once the transition duration passes.
	pendingCleanup map[string]time.Time
	now            func() time.Time
}

// NewManager creates an overlay manager writing to the given host.
func NewManager(host PanelHost, cfg config.OverlayConfig) *Manager {
	return &Manager{
		host:           host,
		cfg:            cfg,
		pendingCleanup: make(map[string]time.Time),
		now:            time.Now,
	}
}

// ActiveID returns the currently shown panel id, empty when none.
func (m *Manager) ActiveID() string { return m.activeID }

// SetActiveSection shows the panel for the given section id (empty
// hides everything) and updates heading and nav arrows. Missing panels
// no-op; optional UI elements may not exist.
func (m *Manager) SetActiveSection(id string, nav NavInfo) {
	if id != m.activeID {
		if m.activeID != "" && m.host.HasPanel(m.activeID) {
			m.host.HidePanel(m.activeID)
			// The hide animation still needs the override; clear it
			// after the transition has played out.
			deadline := m.now().Add(time.Duration(m.cfg.TransitionMS) * time.Millisecond)
			m.pendingCleanup[m.activeID] = deadline
		}
		if id != "" && m.host.HasPanel(id) {
			delete(m.pendingCleanup, id)
			m.host.ShowPanel(id)
		}
		m.activeID = id
	}

	m.host.SetHeading(nav.Heading)
	m.host.SetNavState(nav.HasPrev, nav.HasNext)
}

// Tick flushes transition cleanups whose deadline has passed.
func (m *Manager) Tick() {
	now := m.now()
	for id, deadline := range m.pendingCleanup {
		if now.After(deadline) {
			m.host.ResetPanel(id)
			delete(m.pendingCleanup, id)
		}
	}
}

// SyncScrollToSection maps a curve parameter back to a page scroll
// offset in pixels, the inverse of the scroll-to-progress mapping, so
// click navigation leaves the scrollbar consistent.
func (m *Manager) SyncScrollToSection(t, viewportH float32) float32 {
	total := viewportH * m.cfg.ScrollPageFactor
	return mathx.Clamp01(t) * total
}

// ProgressForScroll is the forward scroll-to-progress mapping.
func (m *Manager) ProgressForScroll(scrollPx, viewportH float32) float32 {
	total := viewportH * m.cfg.ScrollPageFactor
	if total <= 0 {
		return 0
	}
	return mathx.Clamp01(scrollPx / total)
}

// Project positions the active panel over the projected billboard
// face. The four world-space corners are pushed through the camera's
// view-projection transform; the panel gets the bounding rect plus the
// exact projected quadrilateral as its clip polygon. Reverts to the
// default centered layout when any corner is behind the camera or the
// projection is too small to be usable.
func (m *Manager) Project(corners [4]mgl32.Vec3, viewProj mgl32.Mat4, viewportW, viewportH float32) {
	if m.activeID == "" || !m.host.HasPanel(m.activeID) {
		return
	}

	var quad Quad
	for i, c := range corners {
		clip := viewProj.Mul4x1(c.Vec4(1))
		w := clip.W()
		if w <= 1e-6 {
			m.host.ResetPanel(m.activeID)
			return
		}
		ndc := clip.Vec3().Mul(1 / w)
		if ndc.Z() > 1 {
			m.host.ResetPanel(m.activeID)
			return
		}
		quad[i][0] = (ndc.X()*0.5 + 0.5) * viewportW
		quad[i][1] = (1 - (ndc.Y()*0.5 + 0.5)) * viewportH
	}

	minX, minY := quad[0][0], quad[0][1]
	maxX, maxY := minX, minY
	for _, p := range quad[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	// Clamp the rect to the viewport; the clip polygon keeps the true
	// projected shape inside it.
	minX = mathx.Clamp(minX, 0, viewportW)
	maxX = mathx.Clamp(maxX, 0, viewportW)
	minY = mathx.Clamp(minY, 0, viewportH)
	maxY = mathx.Clamp(maxY, 0, viewportH)

	bounds := Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	if bounds.W < m.cfg.MinPanelPx || bounds.H < m.cfg.MinPanelPx {
		m.host.ResetPanel(m.activeID)
		return
	}

	m.host.SetPanelQuad(m.activeID, bounds, quad)
}
