// Package renderer draws the tour with raylib. It owns the raylib
// camera, the scaled render texture the quality governor resizes, and
// one sub-renderer per scene layer. Nothing in here mutates world or
// camera state.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/telemetry"
	"github.com/hollowbrook/vista/world"
)

// Renderer composes the scene layers and presents the frame.
type Renderer struct {
	screenW, screenH int32

	sky        *SkyRenderer
	terrain    *TerrainRenderer
	billboards *BillboardRenderer
	clouds     *CloudRenderer
	props      *PropRenderer
	panels     *PanelRenderer

	// Scene is drawn into target and blitted up to the window, so the
	// quality governor can trade resolution for frame time.
	target      rl.RenderTexture2D
	targetScale float32

	camera rl.Camera3D
}

// New creates the renderer. Must be called after the raylib window.
func New(cfg *config.Config, w *world.World) *Renderer {
	r := &Renderer{
		screenW:     int32(cfg.Screen.Width),
		screenH:     int32(cfg.Screen.Height),
		sky:         NewSkyRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height)),
		terrain:     NewTerrainRenderer(w.Terrain()),
		billboards:  NewBillboardRenderer(),
		clouds:      NewCloudRenderer(),
		props:       NewPropRenderer(),
		panels:      NewPanelRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Sections),
		targetScale: 1,
	}
	r.target = rl.LoadRenderTexture(r.screenW, r.screenH)

	r.camera = rl.Camera3D{
		Fovy:       cfg.Camera.FOV,
		Projection: rl.CameraPerspective,
	}
	return r
}

// Panels returns the panel layer, the overlay manager's output port.
func (r *Renderer) Panels() *PanelRenderer { return r.panels }

// ApplyQuality resizes the render target and toggles layers for the
// given tier settings.
func (r *Renderer) ApplyQuality(s telemetry.TierSettings) {
	if s.RenderScale != r.targetScale {
		rl.UnloadRenderTexture(r.target)
		w := int32(float32(r.screenW) * s.RenderScale)
		h := int32(float32(r.screenH) * s.RenderScale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		r.target = rl.LoadRenderTexture(w, h)
		r.targetScale = s.RenderScale
	}
	r.sky.enabled = s.DrawSky
	r.clouds.enabled = s.DrawClouds
}

// Draw renders one frame from the camera snapshot.
func (r *Renderer) Draw(w *world.World, frame components.FrameState) {
	r.camera.Position = rl.Vector3{X: frame.Pos.X(), Y: frame.Pos.Y(), Z: frame.Pos.Z()}
	r.camera.Target = rl.Vector3{X: frame.Look.X(), Y: frame.Look.Y(), Z: frame.Look.Z()}
	r.camera.Up = rl.Vector3{X: frame.Up.X(), Y: frame.Up.Y(), Z: frame.Up.Z()}

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

	r.sky.Draw(w.Clock())

	rl.BeginMode3D(r.camera)
	r.terrain.Draw()
	r.sky.DrawSun(w.SunPosition())
	r.clouds.Draw(w)
	r.props.Draw(w)
	r.billboards.Draw(w)
	rl.EndMode3D()

	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are y-flipped; blit with a negative source height.
	src := rl.Rectangle{
		Width:  float32(r.target.Texture.Width),
		Height: -float32(r.target.Texture.Height),
	}
	dst := rl.Rectangle{Width: float32(r.screenW), Height: float32(r.screenH)}
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)

	r.panels.Draw()
}

// Present closes the frame started by Draw. Split so the debug UI can
// draw between the scene and EndDrawing.
func (r *Renderer) Present() {
	rl.EndDrawing()
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.terrain.Close()
	r.props.Close()
	rl.UnloadRenderTexture(r.target)
}
