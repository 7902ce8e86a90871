package biome

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

const eps = 1e-9

func resolve(over params.Vector) params.Planet {
	return params.Resolve(params.Merge(params.DefaultsWith(core.NewRNG(1)), over))
}

func randomPlanet(rng *rand.Rand) params.Planet {
	v := params.Vector{}
	for _, s := range params.Schema() {
		if s.Kind != params.KindNumber || !s.Bounded() {
			continue
		}
		v[s.Key] = params.Number(s.Min + rng.Float64()*(s.Max-s.Min))
	}
	v[params.KeySeed] = params.Number(rng.Float64() * 1000)
	return resolve(v)
}

func randomUnit(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		if l := v.Len(); l > 0.1 && l <= 1 {
			return v.Mul(1 / l)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3000; i++ {
		p := randomPlanet(rng)
		pos := randomUnit(rng)
		e := p.WaterLevel + (rng.Float64()*2-1)*1.2
		w := Weights(pos, e, p)
		if s := w.Sum(); math.Abs(s-1) > eps {
			t.Fatalf("weights sum to %f at e=%f: %+v", s, e, w)
		}
		for _, x := range []float64{w.Shallow, w.Deep, w.Sand, w.Grass, w.Rock, w.Snow, w.Ice} {
			if x < -eps || x > 1+eps {
				t.Fatalf("weight %f outside [0,1]: %+v", x, w)
			}
		}
	}
}

func onSegment(c, a, b params.RGB) bool {
	d := b.Add(a.Scale(-1))
	var tt float64
	switch {
	case math.Abs(d.R) >= math.Abs(d.G) && math.Abs(d.R) >= math.Abs(d.B) && d.R != 0:
		tt = (c.R - a.R) / d.R
	case math.Abs(d.G) >= math.Abs(d.B) && d.G != 0:
		tt = (c.G - a.G) / d.G
	case d.B != 0:
		tt = (c.B - a.B) / d.B
	default:
		return math.Abs(c.R-a.R) < 1e-9 && math.Abs(c.G-a.G) < 1e-9 && math.Abs(c.B-a.B) < 1e-9
	}
	if tt < -1e-9 || tt > 1+1e-9 {
		return false
	}
	want := a.Mix(b, tt)
	return math.Abs(want.R-c.R) < 1e-9 && math.Abs(want.G-c.G) < 1e-9 && math.Abs(want.B-c.B) < 1e-9
}

func TestWaterStaysOnShallowDeepSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		p := randomPlanet(rng)
		if p.WaterLevel == 0 {
			continue
		}
		pos := randomUnit(rng)
		e := p.WaterLevel - rng.Float64()*0.6 - 1e-6
		m := Shade(pos, e, p)
		if !onSegment(m.Color, p.WaterColor, p.WaterDeepColor) {
			t.Fatalf("water color %+v not between %+v and %+v", m.Color, p.WaterColor, p.WaterDeepColor)
		}
	}
}

func TestDeepWaterSaturates(t *testing.T) {
	p := resolve(nil)
	m := Shade(mgl64.Vec3{1, 0, 0}, p.WaterLevel-DeepWaterDepth-0.01, p)
	if m.Color.Hex() != p.WaterDeepColor.Hex() {
		t.Fatalf("deep water = %s, want %s", m.Color.Hex(), p.WaterDeepColor.Hex())
	}
	m = Shade(mgl64.Vec3{1, 0, 0}, p.WaterLevel-1e-9, p)
	if m.Color.Hex() != p.WaterColor.Hex() {
		t.Fatalf("shoreline water = %s, want %s", m.Color.Hex(), p.WaterColor.Hex())
	}
}

func TestLandIgnoresWaterColors(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		p := randomPlanet(rng)
		pos := randomUnit(rng)
		e := p.WaterLevel + rng.Float64()*0.8
		w := Weights(pos, e, p)
		if w.Shallow != 0 || w.Deep != 0 {
			t.Fatalf("land point carries water weight: %+v", w)
		}
		a := Shade(pos, e, p)
		q := p
		q.WaterColor = params.RGB{R: 1}
		q.WaterDeepColor = params.RGB{G: 1}
		if b := Shade(pos, e, q); a != b {
			t.Fatalf("land material depends on water colors: %+v vs %+v", a, b)
		}
	}
}

func TestLandColorInsideHull(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 2000; i++ {
		p := randomPlanet(rng)
		p.Haze, p.AcidRain, p.LavaFlows, p.Emission, p.Crystals = 0, 0, 0, 0, 0
		pos := randomUnit(rng)
		e := p.WaterLevel + rng.Float64()
		c := Shade(pos, e, p).Color
		inputs := []params.RGB{p.SandColor, p.VegetationColor, p.RockColor, p.SnowColor}
		lo, hi := inputs[0], inputs[0]
		for _, in := range inputs[1:] {
			lo = params.RGB{R: math.Min(lo.R, in.R), G: math.Min(lo.G, in.G), B: math.Min(lo.B, in.B)}
			hi = params.RGB{R: math.Max(hi.R, in.R), G: math.Max(hi.G, in.G), B: math.Max(hi.B, in.B)}
		}
		if c.R < lo.R-eps || c.G < lo.G-eps || c.B < lo.B-eps || c.R > hi.R+eps || c.G > hi.G+eps || c.B > hi.B+eps {
			t.Fatalf("land color %+v outside hull [%+v, %+v]", c, lo, hi)
		}
	}
}

func TestIceCapsArePolar(t *testing.T) {
	p := resolve(params.Vector{params.KeyIceCapExtent: params.Number(0.3), params.KeyTemperatureRange: params.Number(15)})
	for _, e := range []float64{p.WaterLevel, p.WaterLevel + 0.1, p.WaterLevel + 0.9} {
		pole := Weights(mgl64.Vec3{0, 1, 0}, e, p)
		if math.Abs(pole.Ice-1) > eps {
			t.Fatalf("pole at e=%f has ice %f, want 1", e, pole.Ice)
		}
		if got := Shade(mgl64.Vec3{0, -1, 0}, e, p).Color; got.Hex() != p.SnowColor.Hex() {
			t.Fatalf("south pole color %s, want snow %s", got.Hex(), p.SnowColor.Hex())
		}
		if eq := Weights(mgl64.Vec3{1, 0, 0}, e, p); eq.Ice != 0 {
			t.Fatalf("equator carries ice %f", eq.Ice)
		}
	}

	none := resolve(params.Vector{params.KeyIceCapExtent: params.Number(0)})
	if w := Weights(mgl64.Vec3{0, 1, 0}, none.WaterLevel+0.05, none); w.Ice != 0 {
		t.Fatalf("zero extent still produced ice %f", w.Ice)
	}
}

func TestTemperatureShrinksSnowAndIce(t *testing.T) {
	cold := resolve(params.Vector{params.KeyTemperatureRange: params.Number(-60), params.KeyIceCapExtent: params.Number(0.3)})
	hot := resolve(params.Vector{params.KeyTemperatureRange: params.Number(120), params.KeyIceCapExtent: params.Number(0.3)})
	hot.Seed, cold.Seed = 0, 0

	eq := mgl64.Vec3{1, 0, 0}
	e := cold.WaterLevel + 0.5
	if c, h := Weights(eq, e, cold).Snow, Weights(eq, e, hot).Snow; h >= c {
		t.Fatalf("hot snow weight %f not below cold %f", h, c)
	}
	mid := mgl64.Vec3{0, 0.75, 0.66}
	if c, h := Weights(mid, cold.WaterLevel+0.05, cold).Ice, Weights(mid, hot.WaterLevel+0.05, hot).Ice; h >= c {
		t.Fatalf("hot ice %f not below cold %f", h, c)
	}
}

func TestVegetationWidensGrass(t *testing.T) {
	lush := resolve(params.Vector{params.KeyVegetationCoverage: params.Number(0.95), params.KeyIceCapExtent: params.Number(0)})
	bare := resolve(params.Vector{params.KeyVegetationCoverage: params.Number(0.05), params.KeyIceCapExtent: params.Number(0)})
	lush.Seed, bare.Seed = 0, 0
	pos := mgl64.Vec3{1, 0, 0}
	for _, h := range []float64{0.03, 0.3, 0.38} {
		l := Weights(pos, lush.WaterLevel+h, lush).Grass
		b := Weights(pos, bare.WaterLevel+h, bare).Grass
		if l < b {
			t.Fatalf("h=%f: lush grass %f below bare %f", h, l, b)
		}
	}
}

func TestLavaEmits(t *testing.T) {
	lava, _ := params.ApplyPresetWith(core.NewRNG(9), nil, "lavaWorld")
	p := params.Resolve(lava)
	calm := resolve(nil)

	rng := rand.New(rand.NewSource(5))
	hot := 0
	for i := 0; i < 4000; i++ {
		pos := randomUnit(rng)
		e := 0.1
		m := Shade(pos, e, p)
		if m.Emission > 0.5 {
			hot++
		}
		if m.Emission < 0 || m.Emission > 1 {
			t.Fatalf("emission %f outside [0,1]", m.Emission)
		}
		if m.EmissionColor != p.VolcanoColor {
			t.Fatalf("emission color %+v, want volcano color", m.EmissionColor)
		}
		if c := Shade(pos, e, calm); c.Emission != 0 {
			t.Fatalf("calm planet emits %f", c.Emission)
		}
	}
	if hot == 0 {
		t.Fatal("lava world produced no molten channels")
	}
}

func TestRoughnessBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 2000; i++ {
		p := randomPlanet(rng)
		pos := randomUnit(rng)
		m := Shade(pos, p.WaterLevel+(rng.Float64()*2-1), p)
		if m.Roughness < 0 || m.Roughness > 1 {
			t.Fatalf("roughness %f outside [0,1]", m.Roughness)
		}
	}
}

func TestShadeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := randomPlanet(rng)
	for i := 0; i < 200; i++ {
		pos := randomUnit(rng)
		e := p.WaterLevel + (rng.Float64()*2-1)*0.5
		if a, b := Shade(pos, e, p), Shade(pos, e, p); a != b {
			t.Fatalf("shade not deterministic at %v", pos)
		}
	}
}

func TestDominantBand(t *testing.T) {
	cases := []struct {
		w    BandWeights
		want Band
	}{
		{BandWeights{Shallow: 0.6, Deep: 0.4}, BandShallow},
		{BandWeights{Shallow: 0.2, Deep: 0.8}, BandDeep},
		{BandWeights{Sand: 0.1, Grass: 0.5, Rock: 0.4}, BandGrass},
		{BandWeights{Snow: 0.3, Ice: 0.7}, BandIce},
		{BandWeights{Sand: 0.5, Grass: 0.5}, BandSand},
	}
	for _, c := range cases {
		if got := c.w.Dominant(); got != c.want {
			t.Errorf("Dominant(%+v) = %s, want %s", c.w, got, c.want)
		}
	}
	if BandIce.String() != "ice" || Band(42).String() != "unknown" {
		t.Fatal("band names wrong")
	}
	if len(Bands()) != 7 {
		t.Fatalf("Bands() = %d entries", len(Bands()))
	}
}
