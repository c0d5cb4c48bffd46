// Damping fit tool - searches for camera ease parameters that settle
// quickly without lock-factor flicker, by simulating the controller
// against a scripted scroll session.
//
// Usage: go run ./cmd/dampfit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/optimize"

	"github.com/hollowbrook/vista/cam"
	"github.com/hollowbrook/vista/config"
	"github.com/hollowbrook/vista/tour"
)

const dt = 1.0 / 60.0

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	sessionSec := flag.Float64("session", 45, "Simulated session length in seconds")
	outPath := flag.String("out", "", "Write the tuned config YAML here (empty = print only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluate(baseCfg, float32(x[0]), float32(x[1]), *sessionSec)
		},
	}

	// Start from the configured values.
	initX := []float64{
		float64(baseCfg.Camera.EaseRate),
		float64(baseCfg.Camera.SnapWindow),
	}

	result, err := optimize.Minimize(problem, initX, nil, &optimize.NelderMead{})
	if err != nil {
		log.Fatalf("optimization failed: %v", err)
	}

	easeRate := float32(result.X[0])
	snapWindow := float32(result.X[1])

	fmt.Printf("best cost: %.4f (evals: %d)\n", result.F, result.Stats.FuncEvaluations)
	fmt.Printf("camera:\n  ease_rate: %.3f\n  snap_window: %.4f\n", easeRate, snapWindow)

	if *outPath != "" {
		baseCfg.Camera.EaseRate = easeRate
		baseCfg.Camera.SnapWindow = snapWindow
		if err := baseCfg.WriteYAML(*outPath); err != nil {
			log.Fatalf("writing tuned config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *outPath)
	}
}

// evaluate runs one scripted session and scores it. Lower is better:
// time spent away from the target plus a heavy penalty for active
// section flicker and a penalty for sluggish settling.
func evaluate(base *config.Config, easeRate, snapWindow float32, sessionSec float64) float64 {
	// Out-of-range parameters: reject without simulating.
	if easeRate < 0.2 || easeRate > 20 || snapWindow < 0.002 || snapWindow > 0.3 {
		return 1e6
	}

	cfg := *base
	cfg.Camera.EaseRate = easeRate
	cfg.Camera.SnapWindow = snapWindow

	path, err := tour.BuildPath(cfg.Path)
	if err != nil {
		log.Fatalf("building path: %v", err)
	}
	c := cam.New(&cfg, path)
	sections := c.Sections()

	var lag float64
	flickers := 0
	lastActive := ""

	frames := int(sessionSec / dt)
	for f := 0; f < frames; f++ {
		// Scripted scroll: hop to the next section every 5 seconds.
		hop := (f / (5 * 60)) % len(sections)
		c.SetTargetProgress(sections[hop].T)

		sec := c.Update(dt, nil)

		active := ""
		if sec != nil {
			active = sec.ID
		}
		if active != lastActive {
			flickers++
		}
		lastActive = active

		d := float64(c.Target() - c.Param())
		lag += d * d * dt
	}

	// Each hop legitimately changes the active section twice: leaving
	// the old stop, entering the new one. Anything beyond is flicker.
	hops := frames / (5 * 60)
	excess := flickers - 2*hops
	if excess < 0 {
		excess = 0
	}

	return lag + 5*float64(excess)
}
