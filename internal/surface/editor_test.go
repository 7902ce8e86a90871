package surface

import (
	"context"
	"sync"
	"testing"

	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

func newEditor() *Editor {
	return NewEditor(nil, core.NewRNG(42), nil)
}

func TestEditorGenerationAndClamp(t *testing.T) {
	e := newEditor()
	if e.Generation() != 0 {
		t.Fatalf("fresh editor generation = %d", e.Generation())
	}
	if !e.SetFloatParameter(params.KeyWaterLevel, 5) {
		t.Fatal("waterLevel rejected")
	}
	if got := e.Vector().Float(params.KeyWaterLevel); got != 1 {
		t.Fatalf("waterLevel = %f, want clamped 1", got)
	}
	if e.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", e.Generation())
	}
	if e.SetFloatParameter("nope", 1) || e.SetFloatParameter(params.KeyRockColor, 1) {
		t.Fatal("unknown or color key accepted as float")
	}
	if e.Generation() != 1 {
		t.Fatal("rejected edit bumped generation")
	}
	if !e.SetIntParameter(params.KeyOctaves, 99) || e.Planet().Octaves != 10 {
		t.Fatalf("octaves = %f, want 10", e.Planet().Octaves)
	}
	if !e.Nudge(params.KeyTemperatureRange, -5000) || e.Planet().Temperature != -273 {
		t.Fatalf("temperature = %f, want -273", e.Planet().Temperature)
	}
}

func TestEditorSnapshotIsolation(t *testing.T) {
	e := newEditor()
	v := e.Vector()
	v.Set(params.KeyWaterLevel, 0.99)
	if e.Vector().Float(params.KeyWaterLevel) == 0.99 {
		t.Fatal("mutating a returned vector leaked into the editor")
	}
	p, gen := e.Snapshot()
	e.SetFloatParameter(params.KeyWaterLevel, 0.1)
	if p.WaterLevel == 0.1 || gen == e.Generation() {
		t.Fatal("snapshot changed after a later edit")
	}
}

func TestEditorPresetsAndPrompts(t *testing.T) {
	e := newEditor()
	seed := e.Planet().Seed
	if e.ApplyPreset("noSuchWorld") {
		t.Fatal("unknown preset applied")
	}
	if e.Generation() != 0 || e.Name() != "custom" {
		t.Fatal("unknown preset changed state")
	}
	if !e.ApplyPreset("lavaWorld") {
		t.Fatal("lavaWorld not applied")
	}
	if e.Name() != "lavaWorld" || e.Planet().Seed == seed {
		t.Fatalf("preset name %q seed %f", e.Name(), e.Planet().Seed)
	}

	matched := e.ApplyPrompt("a tropical lava planet")
	if len(matched) != 2 {
		t.Fatalf("matched = %v", matched)
	}
	p := e.Planet()
	if p.Temperature != 600 || p.LavaFlows != 1 {
		t.Fatalf("prompt not applied: temp %f lava %f", p.Temperature, p.LavaFlows)
	}
	if e.Name() != "custom" {
		t.Fatalf("prompt kept preset name %q", e.Name())
	}

	before := e.Planet().Seed
	if after := e.Reseed(); after == before || e.Planet().Seed != after {
		t.Fatalf("reseed %f -> %f", before, after)
	}

	e.SetFloatParameter(params.KeyCloudCoverage, 0.9)
	e.Reset()
	if e.Planet().CloudCoverage != 0.3 {
		t.Fatalf("reset cloudCoverage = %f", e.Planet().CloudCoverage)
	}
}

func TestEditorWatchSeesLatest(t *testing.T) {
	e := newEditor()
	ch, stop := e.Watch()
	for i := 0; i < 5; i++ {
		e.SetFloatParameter(params.KeyWaterLevel, float64(i)/10)
	}
	if got := <-ch; got != 5 {
		t.Fatalf("watch delivered %d, want 5", got)
	}
	stop()
	stop()
	if _, ok := <-ch; ok {
		t.Fatal("channel not closed after stop")
	}
	e.SetFloatParameter(params.KeyWaterLevel, 0.2)
}

func TestEditorConcurrentAccess(t *testing.T) {
	e := newEditor()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				e.SetFloatParameter(params.KeyWaterLevel, float64(j%10)/10)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p, _ := e.Snapshot()
				if p.WaterLevel < 0 || p.WaterLevel > 1 {
					t.Errorf("torn waterLevel %f", p.WaterLevel)
					return
				}
			}
		}()
	}
	wg.Wait()
	if e.Generation() != 400 {
		t.Fatalf("generation = %d, want 400", e.Generation())
	}
}

func TestEditorPromptAndReseedShareRNG(t *testing.T) {
	e := newEditor()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				e.ApplyPrompt("lava ocean")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				e.Reseed()
			}
		}()
	}
	wg.Wait()
	if e.Generation() != 200 {
		t.Fatalf("generation = %d, want 200", e.Generation())
	}
	if s := e.Planet().Seed; s < 0 || s >= 1000 {
		t.Fatalf("seed %f outside [0,1000)", s)
	}
}

func TestParameterControlsAndSnapshot(t *testing.T) {
	e := newEditor()
	controls := e.ParameterControls()
	if len(controls) == 0 {
		t.Fatal("no controls")
	}
	for _, c := range controls {
		if c.Key == params.KeySeed {
			t.Fatal("unbounded seed exposed as a control")
		}
		if !c.HasMin || !c.HasMax || c.Min >= c.Max {
			t.Fatalf("control %s has bad bounds", c.Key)
		}
		if c.Key == params.KeyOctaves && c.Type != "int" {
			t.Fatalf("octaves control type %s", c.Type)
		}
	}

	snap := e.Parameters()
	if len(snap.Groups) != len(params.Groups()) {
		t.Fatalf("groups = %d", len(snap.Groups))
	}
	if p, ok := snap.Lookup(params.KeyWaterColor); !ok || p.Value != "#006994" {
		t.Fatalf("waterColor param = %+v", p)
	}
	if p, ok := snap.Lookup(params.KeyWaterLevel); !ok || p.Value != "0.5" {
		t.Fatalf("waterLevel param = %+v", p)
	}
}

func TestTuneCoverageImproves(t *testing.T) {
	base := params.DefaultsWith(core.NewRNG(7)).Set(params.KeyWaterLevel, 0.9)
	target := Target{Ocean: 0.3, Ice: -1}
	best, stats, records, err := TuneCoverage(context.Background(), base, target, TuneOptions{Width: 32, Height: 16, Passes: 3, Workers: 2})
	if err != nil {
		t.Fatalf("tune: %v", err)
	}
	if len(records) == 0 || records[0].Parameter != "baseline" {
		t.Fatalf("records = %+v", records)
	}
	if target.Score(stats) > records[0].Score {
		t.Fatalf("tuned score %f worse than baseline %f", target.Score(stats), records[0].Score)
	}
	if best.Float(params.KeyWaterLevel) >= 0.9 && len(records) > 1 {
		t.Fatalf("improvement recorded but waterLevel stayed %f", best.Float(params.KeyWaterLevel))
	}
	if best.Float(params.KeyIceCapExtent) != base.Float(params.KeyIceCapExtent) {
		t.Fatal("ignored target field was tuned")
	}
}

func TestTuneCoverageCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, _, err := TuneCoverage(ctx, params.Defaults(), Target{Ocean: 0.5, Ice: 0.1}, TuneOptions{Width: 8}); err == nil {
		t.Fatal("expected cancellation error")
	}
}
