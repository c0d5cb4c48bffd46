package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/world"
)

// PropRenderer draws the spinning scatter props. One shared cube mesh,
// drawn per prop with its own rotation about the up axis.
type PropRenderer struct {
	model  rl.Model
	loaded bool
}

// NewPropRenderer creates the scatter layer.
func NewPropRenderer() *PropRenderer {
	return &PropRenderer{}
}

// Draw renders every prop. Called inside 3D mode.
func (r *PropRenderer) Draw(w *world.World) {
	if !r.loaded {
		r.model = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
		r.loaded = true
	}

	tint := rl.Color{R: 96, G: 104, B: 118, A: 255}
	up := rl.Vector3{Y: 1}
	w.EachProp(func(pos mgl32.Vec3, scale, angle float32) {
		rl.DrawModelEx(
			r.model,
			rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
			up,
			angle*180/rl.Pi,
			rl.Vector3{X: scale, Y: scale, Z: scale},
			tint,
		)
	})
}

// Close releases the shared mesh.
func (r *PropRenderer) Close() {
	if r.loaded {
		rl.UnloadModel(r.model)
		r.loaded = false
	}
}
