// Package components provides the plain data types shared between the
// camera, world, overlay and renderer layers, plus the ECS components
// for decorative entities.
package components

import "github.com/go-gl/mathgl/mgl32"

// Transform is the world pose of a decorative entity.
type Transform struct {
	Pos   mgl32.Vec3
	Scale float32
}

// Drift parametrizes a cloud's slow orbit around a fixed center.
type Drift struct {
	Center   mgl32.Vec3
	Radius   float32
	Speed    float32 // radians per second
	Phase    float32
	Altitude float32
}

// Spin is the micro-rotation of a scatter prop.
type Spin struct {
	Rate  float32 // radians per second
	Angle float32
}

// FaceInfo is the world-space front face of a billboard: the docking
// target for the camera and the projection source for the overlay.
type FaceInfo struct {
	Center mgl32.Vec3
	Normal mgl32.Vec3 // unit, pointing out of the face
	Up     mgl32.Vec3 // the billboard's own local up, unit
}

// FrameState is the immutable per-frame snapshot the camera controller
// hands to the world and overlay layers. Consumers never reach into
// controller internals.
type FrameState struct {
	Pos   mgl32.Vec3 // camera position
	Up    mgl32.Vec3 // camera up vector
	Look  mgl32.Vec3 // look-at target
	Param float32    // current curve parameter
	LockT float32    // travel(0) .. docked(1) blend
	// ActiveID is the active section id, empty while traveling.
	ActiveID string
}
