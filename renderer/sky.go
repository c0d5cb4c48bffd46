package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"
)

// SkyRenderer draws the 2D background gradient and the 3D sun glow.
type SkyRenderer struct {
	width, height int32
	enabled       bool
}

// NewSkyRenderer creates the sky layer.
func NewSkyRenderer(width, height int32) *SkyRenderer {
	return &SkyRenderer{width: width, height: height, enabled: true}
}

// Draw paints the gradient backdrop, slowly breathing with the clock.
func (r *SkyRenderer) Draw(clock float32) {
	if !r.enabled {
		return
	}

	pulse := float32(math.Sin(float64(clock*0.05))) * 0.5
	top := rl.Color{R: uint8(18 + pulse*4), G: 22, B: 48, A: 255}
	bottom := rl.Color{R: 64, G: 36, B: 72, A: 255}
	rl.DrawRectangleGradientV(0, 0, r.width, r.height, top, bottom)
}

// DrawSun renders the sun sphere with a layered glow. Called inside
// 3D mode.
func (r *SkyRenderer) DrawSun(pos mgl32.Vec3) {
	if !r.enabled {
		return
	}

	center := rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
	for i := 3; i >= 1; i-- {
		alpha := uint8(30 * i)
		radius := 8 + float32(3-i)*6
		rl.DrawSphere(center, radius, rl.Color{R: 255, G: 214, B: 170, A: alpha})
	}
	rl.DrawSphere(center, 8, rl.Color{R: 255, G: 236, B: 200, A: 255})
}
