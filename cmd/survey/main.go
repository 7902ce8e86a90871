package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"planetsynth/internal/surface"
	"planetsynth/pkg/biome"
	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

type presetResult struct {
	name   string
	exotic bool
	seed   float64
	stats  surface.Stats
	err    error
}

func main() {
	width := flag.Int("width", 192, "map width per preset")
	height := flag.Int("height", 96, "map height per preset")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1, "seed for the preset seeds")
	samples := flag.Int("samples", 1, "seeds evaluated per preset")
	flag.Parse()
	*workers = workerCount(*workers)

	type job struct {
		name string
		seed float64
	}
	rng := core.NewRNG(*seed)
	var jobs []job
	for _, name := range params.PresetNames() {
		for i := 0; i < *samples; i++ {
			jobs = append(jobs, job{name: name, seed: rng.Seed()})
		}
	}

	fmt.Printf("Surveying %d planets (%d workers, %dx%d)\n", len(jobs), *workers, *width, *height)

	queue := make(chan job)
	results := make(chan presetResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results <- survey(j.name, j.seed, *width, *height)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, j := range jobs {
			queue <- j
		}
		close(queue)
	}()

	start := time.Now()
	var all []presetResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.name, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].stats.Ocean != all[j].stats.Ocean {
			return all[i].stats.Ocean > all[j].stats.Ocean
		}
		return all[i].name < all[j].name
	})

	fmt.Printf("\n%-14s %8s %7s %6s %8s %7s %9s  %s\n", "preset", "seed", "ocean", "ice", "emissive", "clouds", "albedo", "dominant land")
	for _, r := range all {
		tag := ""
		if r.exotic {
			tag = "*"
		}
		fmt.Printf("%-14s %8.2f %6.1f%% %5.1f%% %7.1f%% %6.1f%% %9.3f  %s\n",
			r.name+tag, r.seed, 100*r.stats.Ocean, 100*r.stats.Ice, 100*r.stats.Emissive, 100*r.stats.Cloud, r.stats.MeanAlbedo, dominantLand(r.stats))
	}
	fmt.Printf("\nSurvey finished in %s (* marks exotic presets)\n", time.Since(start).Round(time.Millisecond))
}

func survey(name string, seed float64, w, h int) presetResult {
	preset, ok := params.LookupPreset(name)
	if !ok {
		return presetResult{name: name, err: fmt.Errorf("preset vanished")}
	}
	v := params.Merge(params.Defaults(), preset.Params)
	v.Set(params.KeySeed, seed)
	f, err := surface.Evaluate(context.Background(), params.Resolve(v), w, h, 1)
	if err != nil {
		return presetResult{name: name, err: err}
	}
	return presetResult{
		name:   name,
		exotic: preset.Exotic,
		seed:   seed,
		stats:  f.Stats(),
	}
}

func dominantLand(s surface.Stats) string {
	best, bestFrac := "none", 0.0
	for _, b := range []biome.Band{biome.BandSand, biome.BandGrass, biome.BandRock, biome.BandSnow, biome.BandIce} {
		if f := s.Bands[b]; f > bestFrac {
			best, bestFrac = b.String(), f
		}
	}
	return best
}

// workerCount keeps at least one worker so the job feeder can drain.
func workerCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
