package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"

	"planetsynth/internal/app"
	"planetsynth/internal/surface"
	"planetsynth/pkg/params"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width = 96
	cfg.Height = 48
	cfg.Workers = runtime.NumCPU()
	cfg.Bind(flag.CommandLine)
	ocean := flag.Float64("ocean", 0.7, "target ocean fraction (negative ignores it)")
	ice := flag.Float64("ice", -1, "target ice fraction (negative ignores it)")
	passes := flag.Int("passes", 5, "coordinate-descent passes to execute")
	flag.Parse()

	editor, err := cfg.Editor()
	if err != nil {
		log.Fatal(err)
	}
	base := editor.Vector()
	target := surface.Target{Ocean: *ocean, Ice: *ice}

	best, stats, trace, err := surface.TuneCoverage(context.Background(), base, target, surface.TuneOptions{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Passes:  *passes,
		Workers: cfg.Workers,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, rec := range trace {
		if rec.Parameter == "baseline" {
			fmt.Printf("Baseline: ocean %.1f%%, ice %.1f%% (score %.4f)\n", 100*rec.Stats.Ocean, 100*rec.Stats.Ice, rec.Score)
			continue
		}
		fmt.Printf("Pass %d: %s=%s -> ocean %.1f%%, ice %.1f%% (score %.4f)\n",
			rec.Pass, rec.Parameter, rec.Value, 100*rec.Stats.Ocean, 100*rec.Stats.Ice, rec.Score)
	}

	fmt.Printf("\nBest found: ocean %.1f%%, ice %.1f%% (score %.4f)\n", 100*stats.Ocean, 100*stats.Ice, target.Score(stats))
	fmt.Printf("  -set %s=%.4f -set %s=%.4f\n",
		params.KeyWaterLevel, best.Float(params.KeyWaterLevel),
		params.KeyIceCapExtent, best.Float(params.KeyIceCapExtent))
}
