package telemetry

import (
	"testing"
	"time"

	"github.com/hollowbrook/vista/config"
)

func governorCfg() config.QualityConfig {
	return config.QualityConfig{
		FrameBudgetMS:   16.6,
		UpgradeMarginMS: 4,
		HoldFrames:      30,
	}
}

func statsWithAvg(ms float64) PerfStats {
	return PerfStats{AvgFrameDuration: time.Duration(ms * float64(time.Millisecond))}
}

// feed pushes n frames of the same stats through the governor and
// returns how many tier changes fired.
func feed(g *QualityGovernor, stats PerfStats, n int) int {
	changes := 0
	for i := 0; i < n; i++ {
		if g.Observe(stats, true) {
			changes++
		}
	}
	return changes
}

func TestGovernorStartsHigh(t *testing.T) {
	g := NewQualityGovernor(governorCfg())
	if g.Tier() != TierHigh {
		t.Errorf("initial tier %v, want high", g.Tier())
	}
}

func TestGovernorDowngradesOverBudget(t *testing.T) {
	g := NewQualityGovernor(governorCfg())

	feed(g, statsWithAvg(25), 31)
	if g.Tier() != TierMedium {
		t.Fatalf("tier %v after sustained over-budget, want medium", g.Tier())
	}

	feed(g, statsWithAvg(25), 31)
	if g.Tier() != TierLow {
		t.Fatalf("tier %v after further over-budget, want low", g.Tier())
	}

	// Low is the floor.
	feed(g, statsWithAvg(50), 62)
	if g.Tier() != TierLow {
		t.Errorf("tier %v, want low (no underflow)", g.Tier())
	}
}

func TestGovernorUpgradesWithHeadroom(t *testing.T) {
	g := NewQualityGovernor(governorCfg())
	feed(g, statsWithAvg(25), 31) // drop to medium

	// Comfortably under budget minus margin.
	feed(g, statsWithAvg(8), 31)
	if g.Tier() != TierHigh {
		t.Errorf("tier %v after headroom, want high", g.Tier())
	}
}

func TestGovernorHysteresisBand(t *testing.T) {
	g := NewQualityGovernor(governorCfg())
	feed(g, statsWithAvg(25), 31) // drop to medium

	// In the dead band: under budget but inside the upgrade margin.
	if n := feed(g, statsWithAvg(14), 120); n != 0 {
		t.Errorf("%d tier changes inside hysteresis band, want 0", n)
	}
	if g.Tier() != TierMedium {
		t.Errorf("tier %v, want medium", g.Tier())
	}
}

func TestGovernorHoldFrames(t *testing.T) {
	g := NewQualityGovernor(governorCfg())

	// A burst shorter than the hold window changes the tier at most once.
	if n := feed(g, statsWithAvg(40), 45); n != 1 {
		t.Errorf("%d tier changes in one hold window, want 1", n)
	}
}

func TestGovernorIgnoresPartialWindow(t *testing.T) {
	g := NewQualityGovernor(governorCfg())

	for i := 0; i < 200; i++ {
		if g.Observe(statsWithAvg(40), false) {
			t.Fatal("tier changed on a partial window")
		}
	}
	if g.Tier() != TierHigh {
		t.Errorf("tier %v, want high", g.Tier())
	}
}

func TestTierSettingsMonotone(t *testing.T) {
	low := TierLow.Settings()
	med := TierMedium.Settings()
	high := TierHigh.Settings()

	if !(low.RenderScale < med.RenderScale && med.RenderScale < high.RenderScale) {
		t.Error("render scale should rise with tier")
	}
	if !(low.CloudFraction <= med.CloudFraction && med.CloudFraction <= high.CloudFraction) {
		t.Error("cloud fraction should rise with tier")
	}
	if low.DrawClouds {
		t.Error("low tier should not draw clouds")
	}
	if !high.DrawSky {
		t.Error("high tier should draw sky")
	}
}
