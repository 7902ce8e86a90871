package surface

import (
	"context"
	"math"
	"strconv"
	"sync"

	"planetsynth/pkg/params"
)

// Target is the coverage a tuning run aims for. Negative fields are ignored.
type Target struct {
	Ocean float64
	Ice   float64
}

// TuneOptions controls the evaluation resolution and search effort.
type TuneOptions struct {
	Width   int
	Height  int
	Passes  int
	Workers int
}

// SweepRecord documents an improvement found while searching.
type SweepRecord struct {
	Pass      int
	Parameter string
	Value     string
	Stats     Stats
	Score     float64
	Params    params.Vector
}

type floatSpec struct {
	key  string
	step float64
	use  func(Target) bool
}

// Score is the L1 distance between s and the target coverage.
func (t Target) Score(s Stats) float64 {
	var d float64
	if t.Ocean >= 0 {
		d += math.Abs(s.Ocean - t.Ocean)
	}
	if t.Ice >= 0 {
		d += math.Abs(s.Ice - t.Ice)
	}
	return d
}

// TuneCoverage runs a coordinate descent over waterLevel and iceCapExtent
// until the evaluated coverage stops improving. Each pass halves the probe
// step. It returns the best vector, its stats and the improvement trace.
func TuneCoverage(ctx context.Context, base params.Vector, target Target, opts TuneOptions) (params.Vector, Stats, []SweepRecord, error) {
	if opts.Width <= 0 {
		opts.Width = 96
	}
	if opts.Height <= 0 {
		opts.Height = opts.Width / 2
	}
	if opts.Passes <= 0 {
		opts.Passes = 4
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	measure := func(v params.Vector) (Stats, error) {
		f, err := Evaluate(ctx, params.Resolve(v), opts.Width, opts.Height, 1)
		if err != nil {
			return Stats{}, err
		}
		return f.Stats(), nil
	}

	current := params.Validate(base)
	currentStats, err := measure(current)
	if err != nil {
		return nil, Stats{}, nil, err
	}
	currentScore := target.Score(currentStats)
	records := []SweepRecord{{
		Pass:      0,
		Parameter: "baseline",
		Stats:     currentStats,
		Score:     currentScore,
		Params:    current,
	}}

	specs := []floatSpec{
		{key: params.KeyWaterLevel, step: 0.2, use: func(t Target) bool { return t.Ocean >= 0 }},
		{key: params.KeyIceCapExtent, step: 0.2, use: func(t Target) bool { return t.Ice >= 0 }},
	}

	for pass := 1; pass <= opts.Passes; pass++ {
		improved := false
		for i := range specs {
			spec := &specs[i]
			if !spec.use(target) {
				continue
			}
			best, stats, score, ok, err := evaluateFloatSpec(ctx, current, *spec, target, currentScore, opts.Workers, measure)
			if err != nil {
				return current, currentStats, records, err
			}
			if ok {
				current, currentStats, currentScore = best, stats, score
				improved = true
				records = append(records, SweepRecord{
					Pass:      pass,
					Parameter: spec.key,
					Value:     strconv.FormatFloat(best.Float(spec.key), 'f', 4, 64),
					Stats:     stats,
					Score:     score,
					Params:    best,
				})
			}
			spec.step /= 2
		}
		if !improved && pass > 1 {
			break
		}
	}
	return current, currentStats, records, nil
}

func evaluateFloatSpec(ctx context.Context, vec params.Vector, spec floatSpec, target Target, baseline float64, workers int, measure func(params.Vector) (Stats, error)) (params.Vector, Stats, float64, bool, error) {
	type candidate struct {
		vec   params.Vector
		stats Stats
		err   error
		valid bool
	}

	cur := vec.Float(spec.key)
	offsets := []float64{-2, -1, 1, 2}
	candidates := make([]candidate, len(offsets))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, k := range offsets {
		next := params.Merge(vec, params.Vector{spec.key: params.Number(cur + k*spec.step)})
		if almostEqual(next.Float(spec.key), cur) {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v params.Vector) {
			defer wg.Done()
			s, err := measure(v)
			candidates[i] = candidate{vec: v, stats: s, err: err, valid: true}
			<-sem
		}(idx, next)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, 0, false, err
	}

	var (
		best      params.Vector
		bestStats Stats
		bestScore = baseline
		changed   bool
	)
	for _, c := range candidates {
		if !c.valid {
			continue
		}
		if c.err != nil {
			return nil, Stats{}, 0, false, c.err
		}
		if sc := target.Score(c.stats); sc < bestScore-1e-9 {
			best, bestStats, bestScore, changed = c.vec, c.stats, sc, true
		}
	}
	return best, bestStats, bestScore, changed, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}
