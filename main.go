package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/tour"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := tour.Options{
		Headless:  *headless,
		OutputDir: *outputDir,
	}

	if *headless {
		t, err := tour.New(cfg, opts)
		if err != nil {
			slog.Error("failed to assemble tour", "error", err)
			os.Exit(1)
		}
		defer t.Close()

		frames := *maxFrames
		if frames <= 0 {
			frames = 3600
		}
		slog.Info("starting headless run", "frames", frames)

		// Sweep the virtual scroll across the whole page so the run
		// exercises every section, not just the first dock.
		total := cfg.Derived.ScreenH32 * cfg.Overlay.ScrollPageFactor
		dt := float32(1.0 / 60.0)
		for int(t.Frame()) < frames {
			t.SetScroll(total * float32(t.Frame()) / float32(frames))
			t.UpdateHeadless(dt)
		}
		slog.Info("headless run complete", "frame", t.Frame())
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Vista")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	t, err := tour.New(cfg, opts)
	if err != nil {
		slog.Error("failed to assemble tour", "error", err)
		os.Exit(1)
	}
	defer t.Close()

	for !rl.WindowShouldClose() {
		t.Update()
		t.Draw()

		if *maxFrames > 0 && int(t.Frame()) >= *maxFrames {
			break
		}
	}
}
