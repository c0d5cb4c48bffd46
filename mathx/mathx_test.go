package mathx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDampFrameRateIndependence(t *testing.T) {
	// One 1s step and sixty 1/60s steps must land on the same value.
	coarse := Damp(0, 10, 3.0, 1.0)

	fine := float32(0)
	for i := 0; i < 60; i++ {
		fine = Damp(fine, 10, 3.0, 1.0/60.0)
	}

	if math.Abs(float64(coarse-fine)) > 0.01 {
		t.Errorf("damp is frame-rate dependent: coarse=%f fine=%f", coarse, fine)
	}
}

func TestDampConverges(t *testing.T) {
	v := float32(0)
	for i := 0; i < 600; i++ {
		v = Damp(v, 5, 4.0, 1.0/60.0)
	}
	if math.Abs(float64(v-5)) > 0.001 {
		t.Errorf("damp did not converge: got %f, want 5", v)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		name            string
		edge0, edge1, x float32
		want            float32
	}{
		{"below edge0", 0, 1, -0.5, 0},
		{"at edge0", 0, 1, 0, 0},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"at edge1", 0, 1, 1, 1},
		{"above edge1", 0, 1, 2, 1},
		{"inverted range low", 1, 0, 1.5, 0},
		{"degenerate edges below", 2, 2, 1, 0},
		{"degenerate edges above", 2, 2, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smoothstep(tt.edge0, tt.edge1, tt.x)
			if math.Abs(float64(got-tt.want)) > 0.001 {
				t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.edge0, tt.edge1, tt.x, got, tt.want)
			}
		})
	}
}

func TestSmoothstepMonotone(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		x := float32(i) / 100
		v := Smoothstep(0, 1, x)
		if v < prev {
			t.Fatalf("smoothstep not monotone at x=%f: %f < %f", x, v, prev)
		}
		prev = v
	}
}

func TestSafeNormalize(t *testing.T) {
	fallback := mgl32.Vec3{0, 1, 0}

	// Zero vector falls back
	got := SafeNormalize(mgl32.Vec3{}, fallback)
	if got != fallback {
		t.Errorf("zero vector: got %v, want fallback %v", got, fallback)
	}

	// Regular vector normalizes to unit length
	got = SafeNormalize(mgl32.Vec3{3, 0, 4}, fallback)
	if math.Abs(float64(got.Len()-1)) > 1e-5 {
		t.Errorf("expected unit length, got %f", got.Len())
	}
	if math.Abs(float64(got.X()-0.6)) > 1e-5 || math.Abs(float64(got.Z()-0.8)) > 1e-5 {
		t.Errorf("wrong direction: %v", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 {
		t.Error("expected clamp to max")
	}
	if Clamp(-2, 0, 3) != 0 {
		t.Error("expected clamp to min")
	}
	if Clamp(1.5, 0, 3) != 1.5 {
		t.Error("expected passthrough")
	}
}
