package telemetry

import (
	"log/slog"

	"github.com/hollowbrook/vista/config"
)

// Tier is a render quality level. Higher tiers draw more.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	default:
		return "high"
	}
}

// TierSettings are the knobs a tier turns on the renderer and world.
type TierSettings struct {
	RenderScale   float32 // render-texture scale relative to the window
	CloudFraction float32 // share of the cloud population to draw
	DrawClouds    bool
	DrawSky       bool
}

// Settings returns the render knobs for a tier.
func (t Tier) Settings() TierSettings {
	switch t {
	case TierLow:
		return TierSettings{RenderScale: 0.6, CloudFraction: 0, DrawClouds: false, DrawSky: false}
	case TierMedium:
		return TierSettings{RenderScale: 0.8, CloudFraction: 0.5, DrawClouds: true, DrawSky: true}
	default:
		return TierSettings{RenderScale: 1, CloudFraction: 1, DrawClouds: true, DrawSky: true}
	}
}

// QualityGovernor moves the render tier up and down based on the
// rolling frame time, with hysteresis so a single slow frame never
// flaps the tier.
type QualityGovernor struct {
	cfg  config.QualityConfig
	tier Tier

	// Frames since the last tier change; changes are held back until
	// this reaches cfg.HoldFrames.
	framesSinceChange int
}

// NewQualityGovernor starts at the highest tier.
func NewQualityGovernor(cfg config.QualityConfig) *QualityGovernor {
	return &QualityGovernor{cfg: cfg, tier: TierHigh}
}

// Tier returns the current quality tier.
func (g *QualityGovernor) Tier() Tier { return g.tier }

// Observe feeds one frame's rolling stats. Returns true when the tier
// changed this frame. windowFull must be false until the collector's
// window has filled once; partial windows are too noisy to act on.
func (g *QualityGovernor) Observe(stats PerfStats, windowFull bool) bool {
	g.framesSinceChange++
	if !windowFull || g.framesSinceChange < g.cfg.HoldFrames {
		return false
	}

	avgMS := stats.AvgFrameMS()
	switch {
	case avgMS > g.cfg.FrameBudgetMS && g.tier > TierLow:
		g.tier--
	case avgMS < g.cfg.FrameBudgetMS-g.cfg.UpgradeMarginMS && g.tier < TierHigh:
		g.tier++
	default:
		return false
	}

	g.framesSinceChange = 0
	slog.Info("quality tier changed", "tier", g.tier.String(), "avg_frame_ms", avgMS)
	return true
}
