package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/world"
)

// BillboardRenderer draws the themed landmark meshes. Each descriptor
// is pure data in billboard-local space; the local basis maps it into
// the world here.
type BillboardRenderer struct{}

// NewBillboardRenderer creates the landmark layer.
func NewBillboardRenderer() *BillboardRenderer {
	return &BillboardRenderer{}
}

// Draw renders every landmark. Called inside 3D mode.
func (r *BillboardRenderer) Draw(w *world.World) {
	for _, bb := range w.Billboards() {
		r.drawOne(bb)
	}
}

func (r *BillboardRenderer) drawOne(bb *world.Billboard) {
	mesh := bb.Mesh
	opacity := bb.Opacity()

	for _, post := range mesh.Posts {
		base := localToWorld(bb, post.Offset)
		top := localToWorld(bb, post.Offset.Add(mgl32.Vec3{0, post.Height, 0}))
		rl.DrawCylinderEx(toRl(base), toRl(top), post.Radius, post.Radius, 8, toColor(post.Color, 1))
	}

	// The panel face uses the animated corners so its squash and wobble
	// match what the overlay projects.
	corners := bb.Corners()
	face := toColor(bb.Accent, opacity*0.35)
	rl.DrawTriangle3D(toRl(corners[0]), toRl(corners[1]), toRl(corners[2]), face)
	rl.DrawTriangle3D(toRl(corners[0]), toRl(corners[2]), toRl(corners[3]), face)

	drawBox(bb, mesh.Frame, opacity)
	drawBox(bb, mesh.Accent, opacity)
	for _, extra := range mesh.Extras {
		drawBox(bb, extra, opacity)
	}

	light := localToWorld(bb, mesh.Light.Offset)
	rl.DrawSphere(toRl(light), mesh.Light.Radius, toColor(mesh.Light.Color, opacity))
}

// drawBox renders one descriptor box in the billboard's frame. Boxes
// stay axis-aligned to their local offset; the micro wobble is small
// enough that only the face itself needs the rotated basis.
func drawBox(bb *world.Billboard, box world.Box, opacity float32) {
	center := localToWorld(bb, box.Offset)
	rl.DrawCubeV(toRl(center), rl.Vector3{X: box.Size.X(), Y: box.Size.Y(), Z: box.Size.Z()}, toColor(box.Color, opacity))
}

// localToWorld maps a billboard-local offset (right, up, normal axes)
// into world space.
func localToWorld(bb *world.Billboard, local mgl32.Vec3) mgl32.Vec3 {
	return bb.Anchor.
		Add(bb.Right.Mul(local.X())).
		Add(bb.Up.Mul(local.Y())).
		Add(bb.Normal.Mul(local.Z()))
}

func toRl(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func toColor(c world.RGB, opacity float32) rl.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(opacity * 255)}
}
