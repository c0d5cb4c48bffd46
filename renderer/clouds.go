package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/world"
)

// CloudRenderer draws the decorative cloud layer as soft sphere
// clusters. The world's cloud budget already caps the iteration.
type CloudRenderer struct {
	enabled bool
}

// NewCloudRenderer creates the cloud layer.
func NewCloudRenderer() *CloudRenderer {
	return &CloudRenderer{enabled: true}
}

// Draw renders every budgeted cloud. Called inside 3D mode.
func (r *CloudRenderer) Draw(w *world.World) {
	if !r.enabled {
		return
	}

	tint := rl.Color{R: 236, G: 238, B: 246, A: 110}
	w.EachCloud(func(pos mgl32.Vec3, scale float32) {
		center := rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
		rl.DrawSphere(center, scale, tint)
		rl.DrawSphere(rl.Vector3{X: center.X + scale*0.7, Y: center.Y - scale*0.15, Z: center.Z}, scale*0.7, tint)
		rl.DrawSphere(rl.Vector3{X: center.X - scale*0.6, Y: center.Y - scale*0.1, Z: center.Z + scale*0.2}, scale*0.6, tint)
	})
}
