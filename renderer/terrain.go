package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/world"
)

// TerrainRenderer draws the heightfield and the road ribbon. The
// terrain mesh is triangulated once at startup; only the draw call
// runs per frame.
type TerrainRenderer struct {
	terrain *world.Terrain
	model   rl.Model
	loaded  bool
}

// NewTerrainRenderer creates the terrain layer.
func NewTerrainRenderer(t *world.Terrain) *TerrainRenderer {
	return &TerrainRenderer{terrain: t}
}

// Draw renders the terrain mesh and the road. Lazily builds the mesh
// on first use so construction needs no GL context.
func (r *TerrainRenderer) Draw() {
	if !r.loaded {
		r.model = rl.LoadModelFromMesh(r.buildMesh())
		r.loaded = true
	}

	rl.DrawModel(r.model, rl.Vector3{}, 1, rl.Color{R: 52, G: 84, B: 58, A: 255})
	r.drawRoad()
}

// buildMesh triangulates the height grid into a single static mesh.
func (r *TerrainRenderer) buildMesh() rl.Mesh {
	heights, origin, step := r.terrain.HeightGrid()
	n := len(heights)

	quads := (n - 1) * (n - 1)
	mesh := rl.Mesh{
		VertexCount:   int32(quads * 6),
		TriangleCount: int32(quads * 2),
	}

	verts := make([]float32, 0, quads*6*3)
	normals := make([]float32, 0, quads*6*3)

	at := func(i, j int) (x, y, z float32) {
		return origin.X() + float32(j)*step, heights[i][j], origin.Z() + float32(i)*step
	}
	push := func(i, j int) {
		x, y, z := at(i, j)
		verts = append(verts, x, y, z)
		// Cheap per-vertex normal from central differences.
		var hl, hr, hd, hu float32 = y, y, y, y
		if j > 0 {
			hl = heights[i][j-1]
		}
		if j < n-1 {
			hr = heights[i][j+1]
		}
		if i > 0 {
			hd = heights[i-1][j]
		}
		if i < n-1 {
			hu = heights[i+1][j]
		}
		nv := rl.Vector3Normalize(rl.Vector3{X: hl - hr, Y: 2 * step, Z: hd - hu})
		normals = append(normals, nv.X, nv.Y, nv.Z)
	}

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			push(i, j)
			push(i+1, j)
			push(i+1, j+1)
			push(i, j)
			push(i+1, j+1)
			push(i, j+1)
		}
	}

	mesh.Vertices = &verts[0]
	mesh.Normals = &normals[0]
	rl.UploadMesh(&mesh, false)
	return mesh
}

// drawRoad lays flat slabs along the arc-length-uniform centerline.
func (r *TerrainRenderer) drawRoad() {
	samples := r.terrain.RoadSamples()
	width := r.terrain.RoadWidth() * 2
	y := r.terrain.RoadHeight() + 0.02

	for _, p := range samples {
		rl.DrawCube(
			rl.Vector3{X: p.X(), Y: y, Z: p.Z()},
			width, 0.04, width,
			rl.Color{R: 34, G: 36, B: 42, A: 255},
		)
	}
}

// Close releases the terrain mesh.
func (r *TerrainRenderer) Close() {
	if r.loaded {
		rl.UnloadModel(r.model)
		r.loaded = false
	}
}
