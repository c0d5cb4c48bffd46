package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hollowbrook/vista/components"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/curve"
)

func testConfig() *config.Config {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

func testWorld() (*World, curve.Path) {
	cfg := testConfig()
	controls := make([]mgl32.Vec3, 0, len(cfg.Path.Controls))
	for _, c := range cfg.Path.Controls {
		controls = append(controls, mgl32.Vec3{c[0], c[1], c[2]})
	}
	path := curve.NewSpline(controls)
	return New(cfg, path), path
}

func TestTerrainDeterminism(t *testing.T) {
	w, _ := testWorld()

	points := [][2]float32{{0, 0}, {37.5, -81.25}, {-200, 310}, {5.001, 5.001}}
	for _, p := range points {
		a := w.Height(p[0], p[1])
		b := w.Height(p[0], p[1])
		if a != b {
			t.Errorf("Height(%v, %v) not idempotent: %v vs %v", p[0], p[1], a, b)
		}
	}

	// Two independently built worlds agree for the same seed.
	w2, _ := testWorld()
	for _, p := range points {
		if w.Height(p[0], p[1]) != w2.Height(p[0], p[1]) {
			t.Errorf("Height(%v, %v) differs across identical builds", p[0], p[1])
		}
	}
}

func TestRoadCorridorIsFlat(t *testing.T) {
	w, _ := testWorld()
	terrain := w.Terrain()
	roadHeight := terrain.RoadHeight()

	// Every point on the road centerline and slightly off it must be
	// at exactly the flat road height.
	for _, p := range terrain.RoadSamples() {
		for _, off := range []float32{0, 2, -4, terrain.RoadWidth() * 0.9} {
			h := w.Height(p.X()+off, p.Z())
			if terrain.RoadDistance(p.X()+off, p.Z()) < terrain.RoadWidth() {
				if math.Abs(float64(h-roadHeight)) > 1e-5 {
					t.Fatalf("road not flat at (%v, %v): h=%v want %v", p.X()+off, p.Z(), h, roadHeight)
				}
			}
		}
	}
}

func TestTerrainVariesOffRoad(t *testing.T) {
	w, _ := testWorld()
	terrain := w.Terrain()

	// Far from the road the noise field should not be constant.
	var min, max float32 = math.MaxFloat32, -math.MaxFloat32
	for i := 0; i < 32; i++ {
		x := 250 + float32(i)*4
		h := w.Height(x, -300)
		if terrain.RoadDistance(x, -300) < terrain.RoadWidth()+terrain.GridStep() {
			continue
		}
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	if max-min < 0.5 {
		t.Errorf("off-road terrain suspiciously flat: spread %f", max-min)
	}
}

func TestBillboardPerSection(t *testing.T) {
	cfg := testConfig()
	w, _ := testWorld()

	if len(w.Billboards()) != len(cfg.Sections) {
		t.Fatalf("got %d billboards, want %d", len(w.Billboards()), len(cfg.Sections))
	}
	for _, sec := range cfg.Sections {
		if _, ok := w.FaceInfo(sec.ID); !ok {
			t.Errorf("no billboard for section %q", sec.ID)
		}
	}
	if _, ok := w.FaceInfo("nope"); ok {
		t.Error("FaceInfo for unknown section should report absence")
	}
}

func TestFaceBasisOrthonormal(t *testing.T) {
	w, _ := testWorld()

	for _, bb := range w.Billboards() {
		face := bb.FaceInfo()
		if d := math.Abs(float64(face.Normal.Len() - 1)); d > 1e-4 {
			t.Errorf("%s: normal not unit: %v", bb.SectionID, face.Normal)
		}
		if d := math.Abs(float64(face.Up.Len() - 1)); d > 1e-4 {
			t.Errorf("%s: up not unit: %v", bb.SectionID, face.Up)
		}
		if d := math.Abs(float64(face.Normal.Dot(face.Up))); d > 1e-4 {
			t.Errorf("%s: normal not orthogonal to up: dot=%v", bb.SectionID, d)
		}
	}
}

func TestCornersMatchFace(t *testing.T) {
	w, _ := testWorld()
	w.SetActiveSection("hero")

	// Settle the flatten animation so the face is fully upright.
	frame := components.FrameState{Pos: mgl32.Vec3{0, 5, -10}}
	for i := 0; i < 300; i++ {
		w.Update(1.0/60.0, frame)
	}

	corners, ok := w.Corners("hero")
	if !ok {
		t.Fatal("no corners for hero")
	}
	face, _ := w.FaceInfo("hero")

	// Corner centroid is the face center.
	var centroid mgl32.Vec3
	for _, c := range corners {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Mul(0.25)
	if centroid.Sub(face.Center).Len() > 1e-3 {
		t.Errorf("corner centroid %v != face center %v", centroid, face.Center)
	}

	// All corners lie in the face plane.
	for i, c := range corners {
		if d := math.Abs(float64(c.Sub(face.Center).Dot(face.Normal))); d > 1e-3 {
			t.Errorf("corner %d off the face plane by %v", i, d)
		}
	}

	// Active face is fully unflattened: full height.
	height := corners[3].Sub(corners[0]).Len()
	if math.Abs(float64(height-faceHeight)) > 0.05 {
		t.Errorf("active face height %v, want %v", height, float32(faceHeight))
	}
}

func TestSetActiveSectionTogglesFlags(t *testing.T) {
	w, _ := testWorld()

	w.SetActiveSection("network")
	for _, bb := range w.Billboards() {
		want := bb.SectionID == "network"
		if bb.Active != want {
			t.Errorf("%s: active=%v want %v", bb.SectionID, bb.Active, want)
		}
	}

	w.SetActiveSection("")
	for _, bb := range w.Billboards() {
		if bb.Active {
			t.Errorf("%s still active after clear", bb.SectionID)
		}
	}
}

func TestFlattenAnimationConverges(t *testing.T) {
	w, _ := testWorld()
	bb := w.Billboards()[0]
	frame := components.FrameState{}

	w.SetActiveSection(bb.SectionID)
	for i := 0; i < 600; i++ {
		w.Update(1.0/60.0, frame)
	}
	if math.Abs(float64(bb.Flatten()-1)) > 0.01 {
		t.Errorf("active flatten = %v, want ~1", bb.Flatten())
	}
	if math.Abs(float64(bb.Opacity()-1)) > 0.01 {
		t.Errorf("active opacity = %v, want ~1", bb.Opacity())
	}

	w.SetActiveSection("")
	for i := 0; i < 600; i++ {
		w.Update(1.0/60.0, frame)
	}
	if bb.Flatten() > inactiveSquash+0.01 {
		t.Errorf("inactive flatten = %v, want ~%v", bb.Flatten(), float32(inactiveSquash))
	}
}

func TestCloudBudget(t *testing.T) {
	w, _ := testWorld()
	total := w.CloudCount()
	if total == 0 {
		t.Fatal("expected clouds")
	}

	count := func() int {
		n := 0
		w.EachCloud(func(mgl32.Vec3, float32) { n++ })
		return n
	}

	if count() != total {
		t.Errorf("default budget should cover all clouds: %d vs %d", count(), total)
	}

	w.SetCloudBudget(3)
	if count() != 3 {
		t.Errorf("budgeted cloud count = %d, want 3", count())
	}

	w.SetCloudBudget(10000)
	if count() != total {
		t.Errorf("over-budget clamps to total: %d vs %d", count(), total)
	}
}

func TestCloudsDrift(t *testing.T) {
	w, _ := testWorld()

	var before []mgl32.Vec3
	w.EachCloud(func(p mgl32.Vec3, _ float32) { before = append(before, p) })

	frame := components.FrameState{}
	for i := 0; i < 120; i++ {
		w.Update(1.0/60.0, frame)
	}

	moved := false
	i := 0
	w.EachCloud(func(p mgl32.Vec3, _ float32) {
		if i < len(before) && p.Sub(before[i]).Len() > 1e-4 {
			moved = true
		}
		i++
	})
	if !moved {
		t.Error("clouds did not drift")
	}
}

func TestScatterPropsStayOffRoad(t *testing.T) {
	w, _ := testWorld()
	terrain := w.Terrain()

	if w.PropCount() == 0 {
		t.Fatal("expected scatter props")
	}

	n := 0
	w.EachProp(func(pos mgl32.Vec3, scale, _ float32) {
		if d := terrain.RoadDistance(pos.X(), pos.Z()); d <= terrain.RoadWidth() {
			t.Errorf("prop at (%v, %v) on the road: distance %v", pos.X(), pos.Z(), d)
		}
		// Base sits on the terrain surface.
		want := w.Height(pos.X(), pos.Z()) + scale*0.5
		if math.Abs(float64(pos.Y()-want)) > 1e-4 {
			t.Errorf("prop at (%v, %v) floats: y=%v want %v", pos.X(), pos.Z(), pos.Y(), want)
		}
		n++
	})
	if n != w.PropCount() {
		t.Errorf("EachProp visited %d props, PropCount says %d", n, w.PropCount())
	}
}

func TestScatterPropsSpin(t *testing.T) {
	w, _ := testWorld()

	var before []float32
	w.EachProp(func(_ mgl32.Vec3, _, angle float32) { before = append(before, angle) })

	frame := components.FrameState{}
	for i := 0; i < 60; i++ {
		w.Update(1.0/60.0, frame)
	}

	i := 0
	w.EachProp(func(_ mgl32.Vec3, _, angle float32) {
		if i < len(before) && angle <= before[i] {
			t.Errorf("prop %d did not spin: %v -> %v", i, before[i], angle)
		}
		i++
	})
}

func TestBuildThemedMeshPure(t *testing.T) {
	variants := []Variant{
		VariantHero, VariantDirecting, VariantNetwork, VariantUGC,
		VariantClientele, VariantProjects, VariantSocial, VariantResume,
		VariantContact, VariantDefault,
	}
	accent := RGB{10, 200, 30}

	for _, v := range variants {
		a := BuildThemedMesh(v, accent)
		b := BuildThemedMesh(v, accent)
		if len(a.Posts) != len(b.Posts) || len(a.Extras) != len(b.Extras) {
			t.Errorf("variant %v not deterministic", v)
		}
		if a.Accent.Color != accent {
			t.Errorf("variant %v accent band lost the accent color", v)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#ff0000", RGB{255, 0, 0}},
		{"#29b6f6", RGB{0x29, 0xb6, 0xf6}},
		{"#FFFFFF", RGB{255, 255, 255}},
		{"oops", RGB{128, 128, 128}},
		{"#zzzzzz", RGB{128, 128, 128}},
		{"", RGB{128, 128, 128}},
	}
	for _, tt := range tests {
		if got := ParseHexColor(tt.in); got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
