package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"planetsynth/internal/app"
	"planetsynth/internal/render"
	"planetsynth/internal/surface"
)

func main() {
	cfg := app.NewConfig()
	cfg.Scale = 1
	cfg.Bind(flag.CommandLine)
	out := flag.String("out", "planet.png", "output PNG path")
	globe := flag.Bool("globe", false, "render an orthographic globe instead of the map")
	spin := flag.Float64("angle", 0, "globe spin angle in degrees")
	clouds := flag.Bool("clouds", true, "draw the cloud layer")
	stats := flag.Bool("stats", true, "print coverage statistics")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	view, _ := render.ParseView(cfg.View)
	editor, err := cfg.Editor()
	if err != nil {
		log.Fatal(err)
	}
	if len(cfg.Set) > 0 {
		log.Printf("overrides: %s", strings.Join(cfg.Set.Keys(), ", "))
	}

	ctx := context.Background()
	planet := editor.Planet()
	start := time.Now()

	var img image.Image
	smooth := view != render.ViewBiome
	if *globe {
		cam := render.DefaultCamera()
		cam.Spin = *spin * math.Pi / 180
		g, err := render.Globe(ctx, planet, cfg.Height, cam, render.GlobeOptions{
			Clouds:     *clouds,
			Atmosphere: true,
			Aurora:     true,
			Workers:    cfg.Workers,
		})
		if err != nil {
			log.Fatal(err)
		}
		img = g
	} else {
		f, err := surface.Evaluate(ctx, planet, cfg.Width, cfg.Height, cfg.Workers)
		if err != nil {
			log.Fatal(err)
		}
		if *stats {
			printStats(f.Stats())
		}
		img = render.MapImage(f, view, render.MapOptions{Hillshade: 1, Clouds: *clouds && view == render.ViewColor})
	}
	img = render.Upscale(img, cfg.Scale, smooth)

	if err := writePNG(*out, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%s, seed %.2f) in %s\n", *out, editor.Name(), planet.Seed, time.Since(start).Round(time.Millisecond))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func printStats(s surface.Stats) {
	fmt.Printf("ocean %.1f%%  ice %.1f%%  emissive %.1f%%  clouds %.1f%%  elevation [%.3f, %.3f]\n",
		100*s.Ocean, 100*s.Ice, 100*s.Emissive, 100*s.Cloud, s.MinElevation, s.MaxElevation)
}
