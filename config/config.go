// Package config provides configuration loading and access for the tour.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tour configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Path      PathConfig      `yaml:"path"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Clouds    CloudsConfig    `yaml:"clouds"`
	Scatter   ScatterConfig   `yaml:"scatter"`
	Camera    CameraConfig    `yaml:"camera"`
	Overlay   OverlayConfig   `yaml:"overlay"`
	Quality   QualityConfig   `yaml:"quality"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Sections  []SectionConfig `yaml:"sections"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PathConfig describes the travel route. Kind selects the open spline
// road or the closed ring variant.
type PathConfig struct {
	Kind       string      `yaml:"kind"` // "spline" or "ring"
	Controls   [][]float32 `yaml:"controls"`
	RingRadius float32     `yaml:"ring_radius"`
	WobbleAmp  float32     `yaml:"wobble_amp"`
	WobbleFreq float32     `yaml:"wobble_freq"`
}

// TerrainConfig holds the procedural heightfield parameters.
type TerrainConfig struct {
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Gain        float32 `yaml:"gain"`
	Lacunarity  float32 `yaml:"lacunarity"`
	Scale       float32 `yaml:"scale"`     // base noise frequency
	Amplitude   float32 `yaml:"amplitude"` // height of the first octave
	RoadWidth   float32 `yaml:"road_width"`
	BlendWidth  float32 `yaml:"blend_width"`
	RoadHeight  float32 `yaml:"road_height"`
	Extent      float32 `yaml:"extent"`    // half-size of the terrain patch
	GridStep    float32 `yaml:"grid_step"` // sampling step for the mesh
	PathSamples int     `yaml:"path_samples"`
}

// CloudsConfig holds decorative cloud parameters.
type CloudsConfig struct {
	Count       int     `yaml:"count"`
	MinAltitude float32 `yaml:"min_altitude"`
	MaxAltitude float32 `yaml:"max_altitude"`
	DriftSpeed  float32 `yaml:"drift_speed"`
	OrbitRadius float32 `yaml:"orbit_radius"`
}

// ScatterConfig holds decorative off-road prop parameters.
type ScatterConfig struct {
	Count     int     `yaml:"count"`
	Spread    float32 `yaml:"spread"` // half-size of the placement square
	MinScale  float32 `yaml:"min_scale"`
	MaxScale  float32 `yaml:"max_scale"`
	SpinSpeed float32 `yaml:"spin_speed"` // radians per second
}

// CameraConfig holds camera controller tuning.
type CameraConfig struct {
	EaseRate      float32 `yaml:"ease_rate"`     // progress damping, 1/s
	SnapWindow    float32 `yaml:"snap_window"`   // curve-param half-width for docking
	DockDistance  float32 `yaml:"dock_distance"` // camera offset along the face normal
	LookAhead     float32 `yaml:"look_ahead"`    // curve-param look-ahead while traveling
	Height        float32 `yaml:"height"`        // camera height above the path
	ParallaxAmp   float32 `yaml:"parallax_amp"`  // idle sway amplitude, world units
	ParallaxRate  float32 `yaml:"parallax_rate"` // sway damping, 1/s
	FOV           float32 `yaml:"fov"`           // vertical field of view, degrees
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
	SnapDuration  float32 `yaml:"snap_duration"`   // explicit-nav scroll suppression, seconds
	NavCooldownMS int     `yaml:"nav_cooldown_ms"` // between explicit nav commands
}

// OverlayConfig holds panel projection settings.
type OverlayConfig struct {
	MinPanelPx       float32 `yaml:"min_panel_px"`       // reject projections smaller than this
	TransitionMS     int     `yaml:"transition_ms"`      // hide animation length before cleanup
	ScrollPageFactor float32 `yaml:"scroll_page_factor"` // scroll pages spanning the whole path
}

// QualityConfig holds adaptive render quality thresholds.
type QualityConfig struct {
	FrameBudgetMS   float64 `yaml:"frame_budget_ms"`   // downgrade above this rolling average
	UpgradeMarginMS float64 `yaml:"upgrade_margin_ms"` // upgrade below budget minus margin
	HoldFrames      int     `yaml:"hold_frames"`       // minimum frames between tier changes
}

// TelemetryConfig holds frame telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
}

// SectionConfig is a named waypoint on the path. The section list
// partitions the curve into navigable stops; immutable after startup.
type SectionConfig struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	T       float32 `yaml:"t"`
	Color   string  `yaml:"color"` // accent, #rrggbb
	Variant string  `yaml:"variant"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	Aspect    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	if c.Screen.Height > 0 {
		c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
	} else {
		c.Derived.Aspect = 16.0 / 9.0
	}
}

// validate rejects configs the tour cannot run with.
func (c *Config) validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("config: at least one section is required")
	}
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("config: section with empty id")
		}
		if seen[s.ID] {
			return fmt.Errorf("config: duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		if s.T < 0 || s.T > 1 {
			return fmt.Errorf("config: section %q parameter %v outside [0,1]", s.ID, s.T)
		}
	}
	if c.Camera.SnapWindow <= 0 {
		return fmt.Errorf("config: camera snap_window must be positive")
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
