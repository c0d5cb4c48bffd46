// Package world builds and owns all static tour geometry: the terrain
// heightfield, the road ribbon samples, the themed landmark billboards
// and the decorative cloud layer. Geometry is built once; Update only
// advances decorative animation.
package world

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
	"github.com/hollowbrook/vista/mathx"
)

// World holds the generated scene and serves the geometry queries used
// by the camera controller and overlay manager.
type World struct {
	path    curve.Path
	terrain *Terrain

	billboards []*Billboard
	byID       map[string]*Billboard
	activeID   string

	// Decorative entities live in an ECS world; only the drift/spin
	// systems below ever touch them.
	ecs         *ecs.World
	cloudMapper *ecs.Map2[components.Transform, components.Drift]
	cloudFilter *ecs.Filter2[components.Transform, components.Drift]
	propMapper  *ecs.Map2[components.Transform, components.Spin]
	propFilter  *ecs.Filter2[components.Transform, components.Spin]
	cloudBudget int
	cloudTotal  int
	propTotal   int

	clock     float32
	sunAnchor mgl32.Vec3
}

// New generates the world for the given path and config. Billboards
// are anchored at each section's curve position, facing incoming
// travel.
func New(cfg *config.Config, path curve.Path) *World {
	entities := ecs.NewWorld()

	w := &World{
		path:    path,
		terrain: NewTerrain(cfg.Terrain, path),
		byID:    make(map[string]*Billboard, len(cfg.Sections)),
		ecs:     entities,
	}
	w.cloudMapper = ecs.NewMap2[components.Transform, components.Drift](entities)
	w.cloudFilter = ecs.NewFilter2[components.Transform, components.Drift](entities)
	w.propMapper = ecs.NewMap2[components.Transform, components.Spin](entities)
	w.propFilter = ecs.NewFilter2[components.Transform, components.Spin](entities)

	rng := rand.New(rand.NewSource(cfg.Terrain.Seed))

	for i, sec := range cfg.Sections {
		t := mathx.Clamp(sec.T, 0, curve.MaxParam)
		anchor := path.PointAt(t)
		tangent := path.TangentAt(t)
		up := w.upAt(anchor)

		// Stand the board at the road edge, alternating sides, still
		// inside the exactly-flat corridor.
		right := mathx.SafeNormalize(up.Cross(tangent), mgl32.Vec3{1, 0, 0})
		side := float32(1)
		if i%2 == 1 {
			side = -1
		}
		anchor = anchor.Add(right.Mul(side * w.terrain.RoadWidth() * 0.6))

		// Ground the anchor on the road surface.
		anchor[1] = w.terrain.RoadHeight()

		bb := newBillboard(
			sec.ID,
			ParseVariant(sec.Variant),
			ParseHexColor(sec.Color),
			anchor, tangent, up,
			float32(i)*1.7,
		)
		w.billboards = append(w.billboards, bb)
		w.byID[sec.ID] = bb
	}

	w.spawnClouds(cfg.Clouds, rng)
	w.cloudBudget = w.cloudTotal
	w.spawnProps(cfg.Scatter, rng)

	return w
}

// spawnProps scatters slowly spinning props across the off-road
// terrain. Placement is rejection-sampled so nothing sits on the road.
func (w *World) spawnProps(cfg config.ScatterConfig, rng *rand.Rand) {
	clear := w.terrain.RoadWidth() + 4
	for i := 0; i < cfg.Count; i++ {
		var x, z float32
		placed := false
		for try := 0; try < 16; try++ {
			x = (rng.Float32()*2 - 1) * cfg.Spread
			z = (rng.Float32()*2 - 1) * cfg.Spread
			if w.terrain.RoadDistance(x, z) > clear {
				placed = true
				break
			}
		}
		if !placed {
			continue
		}

		scale := mathx.Lerp(cfg.MinScale, cfg.MaxScale, rng.Float32())
		tr := components.Transform{
			Pos:   mgl32.Vec3{x, w.terrain.Height(x, z) + scale*0.5, z},
			Scale: scale,
		}
		spin := components.Spin{
			Rate:  cfg.SpinSpeed * (0.3 + rng.Float32()),
			Angle: rng.Float32() * 2 * math.Pi,
		}
		w.propMapper.NewEntity(&tr, &spin)
		w.propTotal++
	}
}

// spawnClouds creates the decorative cloud entities.
func (w *World) spawnClouds(cfg config.CloudsConfig, rng *rand.Rand) {
	for i := 0; i < cfg.Count; i++ {
		drift := components.Drift{
			Center:   mgl32.Vec3{0, 0, 0},
			Radius:   cfg.OrbitRadius * (0.4 + 0.6*rng.Float32()),
			Speed:    cfg.DriftSpeed * (0.5 + rng.Float32()) * 0.01,
			Phase:    rng.Float32() * 2 * math.Pi,
			Altitude: mathx.Lerp(cfg.MinAltitude, cfg.MaxAltitude, rng.Float32()),
		}
		tr := components.Transform{
			Pos:   cloudPos(drift, 0),
			Scale: 6 + rng.Float32()*10,
		}
		w.cloudMapper.NewEntity(&tr, &drift)
		w.cloudTotal++
	}
}

// cloudPos evaluates a cloud's orbit at the given clock.
func cloudPos(d components.Drift, clock float32) mgl32.Vec3 {
	a := float64(d.Phase + d.Speed*clock)
	return d.Center.Add(mgl32.Vec3{
		d.Radius * float32(math.Cos(a)),
		d.Altitude,
		d.Radius * float32(math.Sin(a)),
	})
}

// upAt returns the local up direction: radial-outward for closed ring
// worlds, world Y for the flat road. Epsilon-guarded at the center.
func (w *World) upAt(p mgl32.Vec3) mgl32.Vec3 {
	if w.path.Closed() {
		return mathx.SafeNormalize(mgl32.Vec3{p.X(), 0, p.Z()}, mgl32.Vec3{0, 1, 0})
	}
	return mgl32.Vec3{0, 1, 0}
}

// Height is the terrain height query. Deterministic.
func (w *World) Height(x, z float32) float32 { return w.terrain.Height(x, z) }

// Terrain exposes the heightfield to the renderer.
func (w *World) Terrain() *Terrain { return w.terrain }

// Billboards returns all landmarks, in section order.
func (w *World) Billboards() []*Billboard { return w.billboards }

// FaceInfo returns the current face geometry of a section's billboard.
func (w *World) FaceInfo(sectionID string) (components.FaceInfo, bool) {
	bb, ok := w.byID[sectionID]
	if !ok {
		return components.FaceInfo{}, false
	}
	return bb.FaceInfo(), true
}

// Corners returns the 4 world-space face corners of a section's
// billboard under its current animated transform.
func (w *World) Corners(sectionID string) ([4]mgl32.Vec3, bool) {
	bb, ok := w.byID[sectionID]
	if !ok {
		return [4]mgl32.Vec3{}, false
	}
	return bb.Corners(), true
}

// SetActiveSection toggles billboard active flags. An empty id
// deactivates everything. The pose animation itself runs in Update.
func (w *World) SetActiveSection(id string) {
	if id == w.activeID {
		return
	}
	w.activeID = id
	for _, bb := range w.billboards {
		bb.Active = bb.SectionID == id
	}
}

// SetCloudBudget caps how many clouds the renderer iterates, used by
// the quality governor. Entities are kept; extras are just skipped.
func (w *World) SetCloudBudget(n int) {
	if n < 0 {
		n = 0
	}
	if n > w.cloudTotal {
		n = w.cloudTotal
	}
	w.cloudBudget = n
}

// CloudCount returns the total number of cloud entities.
func (w *World) CloudCount() int { return w.cloudTotal }

// EachCloud calls fn for every cloud within the current budget.
func (w *World) EachCloud(fn func(pos mgl32.Vec3, scale float32)) {
	n := 0
	query := w.cloudFilter.Query()
	for query.Next() {
		if n >= w.cloudBudget {
			continue
		}
		tr, _ := query.Get()
		fn(tr.Pos, tr.Scale)
		n++
	}
}

// PropCount returns the number of scatter props placed.
func (w *World) PropCount() int { return w.propTotal }

// EachProp calls fn for every scatter prop.
func (w *World) EachProp(fn func(pos mgl32.Vec3, scale, angle float32)) {
	query := w.propFilter.Query()
	for query.Next() {
		tr, spin := query.Get()
		fn(tr.Pos, tr.Scale, spin.Angle)
	}
}

// Clock returns the decorative animation time, fed to shaders.
func (w *World) Clock() float32 { return w.clock }

// SunPosition returns the sky anchor that follows the camera.
func (w *World) SunPosition() mgl32.Vec3 { return w.sunAnchor }

// Update advances decorative animation: cloud drift, billboard
// flatten/wobble, the shader clock and the camera-following sun. It
// never touches anything outside the world's own objects.
func (w *World) Update(dt float32, frame components.FrameState) {
	w.clock += dt

	for _, bb := range w.billboards {
		bb.update(dt, w.clock)
	}

	query := w.cloudFilter.Query()
	for query.Next() {
		tr, drift := query.Get()
		tr.Pos = cloudPos(*drift, w.clock)
	}

	props := w.propFilter.Query()
	for props.Next() {
		_, spin := props.Get()
		spin.Angle += spin.Rate * dt
	}

	// The sun tracks the camera so the backdrop never runs out from
	// under the view.
	w.sunAnchor = frame.Pos.Add(mgl32.Vec3{120, 180, -200})
}
