// Terrain preview tool - interactive top-down heightfield visualization
// with sliders for the noise and road parameters.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
	"github.com/hollowbrook/vista/tour"
	"github.com/hollowbrook/vista/world"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	config.MustInit("")
	cfg := config.Cfg()
	params := cfg.Terrain

	path, err := tour.BuildPath(cfg.Path)
	if err != nil {
		panic(err)
	}

	heights := make([]float32, gridSize*gridSize)
	road := make([]bool, gridSize*gridSize)

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			generate(heights, road, params, path)
			updateTexture(texture, heights, road)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRegen = sliderRow(panelX, &panelY, "Scale (base frequency)", &params.Scale, 0.002, 0.05) || needsRegen
		octaves := float32(params.Octaves)
		if sliderRow(panelX, &panelY, "Octaves", &octaves, 1, 8) {
			params.Octaves = int(octaves)
			needsRegen = true
		}
		needsRegen = sliderRow(panelX, &panelY, "Lacunarity", &params.Lacunarity, 1.5, 4) || needsRegen
		needsRegen = sliderRow(panelX, &panelY, "Gain", &params.Gain, 0.2, 0.9) || needsRegen
		needsRegen = sliderRow(panelX, &panelY, "Amplitude", &params.Amplitude, 2, 40) || needsRegen
		needsRegen = sliderRow(panelX, &panelY, "Road width", &params.RoadWidth, 2, 30) || needsRegen
		needsRegen = sliderRow(panelX, &panelY, "Blend width", &params.BlendWidth, 2, 40) || needsRegen

		seed := float32(params.Seed)
		if sliderRow(panelX, &panelY, "Seed", &seed, 1, 9999) {
			params.Seed = int64(seed)
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = cfg.Terrain
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// sliderRow draws one labeled slider; reports whether the value moved.
func sliderRow(x float32, y *float32, label string, value *float32, min, max float32) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	out := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		*value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.3f", *value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35

	if out != *value {
		*value = out
		return true
	}
	return false
}

func yamlLines(p config.TerrainConfig) []string {
	return []string{
		"terrain:",
		fmt.Sprintf("  seed: %d", p.Seed),
		fmt.Sprintf("  octaves: %d", p.Octaves),
		fmt.Sprintf("  gain: %.2f", p.Gain),
		fmt.Sprintf("  lacunarity: %.2f", p.Lacunarity),
		fmt.Sprintf("  scale: %.4f", p.Scale),
		fmt.Sprintf("  amplitude: %.1f", p.Amplitude),
		fmt.Sprintf("  road_width: %.1f", p.RoadWidth),
		fmt.Sprintf("  blend_width: %.1f", p.BlendWidth),
	}
}

// generate samples the heightfield over the terrain extent into the
// preview grid, flagging the flat road corridor.
func generate(heights []float32, road []bool, params config.TerrainConfig, path curve.Path) {
	terrain := world.NewTerrain(params, path)
	extent := params.Extent

	for gy := 0; gy < gridSize; gy++ {
		z := -extent + 2*extent*float32(gy)/float32(gridSize-1)
		for gx := 0; gx < gridSize; gx++ {
			x := -extent + 2*extent*float32(gx)/float32(gridSize-1)
			i := gy*gridSize + gx
			heights[i] = terrain.Height(x, z)
			road[i] = terrain.RoadDistance(x, z) < params.RoadWidth
		}
	}
}

// updateTexture maps heights to a green-brown ramp, road cells to dark
// asphalt.
func updateTexture(texture rl.Texture2D, heights []float32, road []bool) {
	var min, max float32
	for i, h := range heights {
		if i == 0 || h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	span := max - min
	if span <= 0 {
		span = 1
	}

	pixels := make([]color.RGBA, len(heights))
	for i, h := range heights {
		if road[i] {
			pixels[i] = color.RGBA{R: 34, G: 36, B: 42, A: 255}
			continue
		}
		t := (h - min) / span
		pixels[i] = color.RGBA{
			R: uint8(60 + t*150),
			G: uint8(90 + t*120),
			B: uint8(50 + t*60),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
