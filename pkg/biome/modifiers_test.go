package biome

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/params"
)

// plainLand has no overlays, no ice and unjittered band edges. With
// vegetation at 0.5 the beach edge sits at exactly BeachOffset.
func plainLand() params.Planet {
	p := resolve(nil)
	p.Erosion, p.Tectonics, p.Craters = 0, 0, 0
	p.IceCaps = 0
	p.Vegetation, p.Desert, p.BiomeComplexity = 0.5, 0, 0
	p.Haze, p.AcidRain, p.Crystals, p.LavaFlows, p.Emission = 0, 0, 0, 0, 0
	return p
}

// grassPoint is pure grass on plainLand.
var grassPoint = mgl64.Vec3{1, 0, 0}

const grassHeight = 0.07

// bandRank is the expected band index over sand, grass, rock and snow. It
// never decreases as the classification height rises.
func bandRank(w BandWeights) float64 {
	return w.Grass + 2*w.Rock + 3*w.Snow
}

func colorDistance(a, b params.RGB) float64 {
	return math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B)
}

func TestPlainLandGrassPoint(t *testing.T) {
	p := plainLand()
	w := Weights(grassPoint, p.WaterLevel+grassHeight, p)
	if math.Abs(w.Grass-1) > eps {
		t.Fatalf("grass weight %f at the reference point, want 1 (%+v)", w.Grass, w)
	}
}

func TestErosionWidensTransitions(t *testing.T) {
	crisp := plainLand()
	eroded := plainLand()
	eroded.Erosion = 1

	if w := Weights(grassPoint, crisp.WaterLevel+grassHeight, eroded); w.Sand <= 0 {
		t.Fatalf("eroded beach edge does not reach h=%f: %+v", grassHeight, w)
	}

	mixed := func(p params.Planet) int {
		n := 0
		for h := 0.0; h <= 0.8; h += 0.002 {
			w := Weights(grassPoint, p.WaterLevel+h, p)
			top := math.Max(math.Max(w.Sand, w.Grass), math.Max(w.Rock, w.Snow))
			if top < 1-1e-6 {
				n++
			}
		}
		return n
	}
	if c, e := mixed(crisp), mixed(eroded); e <= c {
		t.Fatalf("eroded planet has %d blended samples, crisp has %d", e, c)
	}
}

func TestCratersOnlyLowerBands(t *testing.T) {
	smooth := plainLand()
	cratered := plainLand()
	cratered.Craters = 1

	rng := rand.New(rand.NewSource(21))
	lowered := 0
	for i := 0; i < 4000; i++ {
		pos := randomUnit(rng)
		e := smooth.WaterLevel + rng.Float64()*0.7
		a := bandRank(Weights(pos, e, smooth))
		b := bandRank(Weights(pos, e, cratered))
		if b > a+eps {
			t.Fatalf("crater raised the band rank at %v: %f > %f", pos, b, a)
		}
		if b < a-eps {
			lowered++
		}
	}
	if lowered == 0 {
		t.Fatal("craters never notched the terrain")
	}
}

func TestDesertificationPullsGrassTowardSand(t *testing.T) {
	wet := plainLand()
	dry := plainLand()
	dry.Desert = 1

	e := wet.WaterLevel + grassHeight
	a := colorDistance(Shade(grassPoint, e, wet).Color, wet.SandColor)
	b := colorDistance(Shade(grassPoint, e, dry).Color, dry.SandColor)
	if b >= a {
		t.Fatalf("desert grass is %f from sand, lush grass %f", b, a)
	}
}

func TestHazeAndAcidRainTintAndDampVegetation(t *testing.T) {
	sky := plainLand()
	sky.AtmosphereTint = params.RGB{B: 1}
	e := sky.WaterLevel + grassHeight
	base := colorDistance(Shade(grassPoint, e, sky).Color, sky.AtmosphereTint)

	for _, tc := range []struct {
		name string
		set  func(*params.Planet)
	}{
		{"organicHaze", func(p *params.Planet) { p.Haze = 1 }},
		{"acidRain", func(p *params.Planet) { p.AcidRain = 1 }},
	} {
		p := sky
		tc.set(&p)
		if d := colorDistance(Shade(grassPoint, e, p).Color, p.AtmosphereTint); d >= base {
			t.Errorf("%s: color %f from tint, clear sky %f", tc.name, d, base)
		}
		if v, v0 := effectiveVegetation(p), effectiveVegetation(sky); v >= v0 {
			t.Errorf("%s: effective vegetation %f not below %f", tc.name, v, v0)
		}
		// Less vegetation moves the beach edge up, so sand reaches higher.
		h := BeachOffset + 0.03
		if s, s0 := Weights(grassPoint, p.WaterLevel+h, p).Sand, Weights(grassPoint, sky.WaterLevel+h, sky).Sand; s <= s0 {
			t.Errorf("%s: sand weight %f at the beach edge, clear sky %f", tc.name, s, s0)
		}
	}
}

func TestCrystalsLowerRoughness(t *testing.T) {
	plain := plainLand()
	crystal := plainLand()
	crystal.Crystals = 1

	rng := rand.New(rand.NewSource(22))
	smoother := 0
	for i := 0; i < 4000; i++ {
		pos := randomUnit(rng)
		e := plain.WaterLevel + rng.Float64()*0.7
		a := Shade(pos, e, plain).Roughness
		b := Shade(pos, e, crystal).Roughness
		if b > a+eps {
			t.Fatalf("crystals roughened %v: %f > %f", pos, b, a)
		}
		if b < a-eps {
			smoother++
		}
	}
	if smoother == 0 {
		t.Fatal("crystals never lowered roughness")
	}
}
