package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/mathx"
	"github.com/hollowbrook/vista/overlay"
	"github.com/hollowbrook/vista/world"
)

const panelFadeRate = 8.0 // alpha smoothing, 1/s

// panel is one section's 2D content card.
type panel struct {
	id     string
	title  string
	accent world.RGB

	visible bool
	alpha   float32

	// Projection override from the overlay manager; zero bounds means
	// the default centered layout.
	pinned bool
	bounds overlay.Rect
	clip   overlay.Quad
}

// PanelRenderer draws the 2D content cards over the scene. It is the
// overlay manager's PanelHost.
type PanelRenderer struct {
	width, height int32
	panels        map[string]*panel
	order         []string

	heading string
	hasPrev bool
	hasNext bool
}

var _ overlay.PanelHost = (*PanelRenderer)(nil)

// NewPanelRenderer builds one card per configured section.
func NewPanelRenderer(width, height int32, sections []config.SectionConfig) *PanelRenderer {
	r := &PanelRenderer{
		width:  width,
		height: height,
		panels: make(map[string]*panel, len(sections)),
	}
	for _, s := range sections {
		r.panels[s.ID] = &panel{
			id:     s.ID,
			title:  s.Name,
			accent: world.ParseHexColor(s.Color),
		}
		r.order = append(r.order, s.ID)
	}
	return r
}

// HasPanel reports whether a card exists for the section.
func (r *PanelRenderer) HasPanel(id string) bool {
	_, ok := r.panels[id]
	return ok
}

// ShowPanel fades a card in.
func (r *PanelRenderer) ShowPanel(id string) {
	if p, ok := r.panels[id]; ok {
		p.visible = true
	}
}

// HidePanel fades a card out.
func (r *PanelRenderer) HidePanel(id string) {
	if p, ok := r.panels[id]; ok {
		p.visible = false
	}
}

// SetPanelQuad pins a card to the projected billboard face.
func (r *PanelRenderer) SetPanelQuad(id string, bounds overlay.Rect, clip overlay.Quad) {
	if p, ok := r.panels[id]; ok {
		p.pinned = true
		p.bounds = bounds
		p.clip = clip
	}
}

// ResetPanel returns a card to the default centered layout.
func (r *PanelRenderer) ResetPanel(id string) {
	if p, ok := r.panels[id]; ok {
		p.pinned = false
	}
}

// SetHeading sets the persistent page heading.
func (r *PanelRenderer) SetHeading(text string) { r.heading = text }

// SetNavState toggles the prev/next arrows.
func (r *PanelRenderer) SetNavState(hasPrev, hasNext bool) {
	r.hasPrev = hasPrev
	r.hasNext = hasNext
}

// Draw renders the heading, nav arrows and every fading card. Called
// between the 3D scene and the debug UI.
func (r *PanelRenderer) Draw() {
	dt := rl.GetFrameTime()

	for _, id := range r.order {
		p := r.panels[id]
		target := float32(0)
		if p.visible {
			target = 1
		}
		p.alpha = mathx.Damp(p.alpha, target, panelFadeRate, dt)
		if p.alpha > 0.01 {
			r.drawPanel(p)
		}
	}

	if r.heading != "" {
		rl.DrawText(r.heading, 24, 18, 28, rl.RayWhite)
	}
	arrowColor := func(on bool) rl.Color {
		if on {
			return rl.RayWhite
		}
		return rl.Color{R: 255, G: 255, B: 255, A: 60}
	}
	rl.DrawText("<", r.width/2-40, r.height-48, 32, arrowColor(r.hasPrev))
	rl.DrawText(">", r.width/2+20, r.height-48, 32, arrowColor(r.hasNext))
}

// drawPanel draws one card, pinned to its projected quad when the
// overlay manager set one, centered otherwise.
func (r *PanelRenderer) drawPanel(p *panel) {
	a := p.alpha

	bounds := p.bounds
	if !p.pinned {
		w := float32(r.width) * 0.4
		h := float32(r.height) * 0.35
		bounds = overlay.Rect{
			X: (float32(r.width) - w) / 2,
			Y: (float32(r.height) - h) / 2,
			W: w,
			H: h,
		}
	}

	bg := rl.Color{R: 16, G: 18, B: 26, A: uint8(a * 225)}
	accent := rl.Color{R: p.accent.R, G: p.accent.G, B: p.accent.B, A: uint8(a * 255)}

	if p.pinned {
		// Fill the exact projected quadrilateral, fan from the top-left
		// corner.
		pts := []rl.Vector2{
			{X: p.clip[3][0], Y: p.clip[3][1]},
			{X: p.clip[0][0], Y: p.clip[0][1]},
			{X: p.clip[1][0], Y: p.clip[1][1]},
			{X: p.clip[2][0], Y: p.clip[2][1]},
		}
		rl.DrawTriangleFan(pts, bg)
	} else {
		rl.DrawRectangleRounded(rl.Rectangle{X: bounds.X, Y: bounds.Y, Width: bounds.W, Height: bounds.H}, 0.08, 8, bg)
	}

	rl.DrawRectangle(int32(bounds.X), int32(bounds.Y), int32(bounds.W), 4, accent)
	rl.DrawText(p.title, int32(bounds.X)+16, int32(bounds.Y)+18, 24, rl.RayWhite)
}
