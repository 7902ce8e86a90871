// Package biome turns an elevation value and the planet parameters into a
// surface material.
//
// Land is classified by height above the water line into sand, grass, rock
// and snow bands. Every band boundary is a smoothstep, and the band weights
// are built as sequential products so they always sum to one. Ice caps are a
// latitude override layered over the bands. Water blends between the shallow
// and deep colors by depth and is never touched by a land overlay.
package biome

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planetsynth/pkg/noise"
	"planetsynth/pkg/params"
)

// Band offsets above the water level.
const (
	BeachOffset = 0.02
	GrassOffset = 0.2
	RockOffset  = 0.35
	SnowOffset  = 0.5
)

// DeepWaterDepth is the depth below the water level at which the deep color
// fully takes over.
const DeepWaterDepth = 0.25

// Secondary-field frequencies relative to noiseScale, and the seed shifts
// that keep each layer independent.
const (
	craterFreq  = 4.0
	lavaFreq    = 6.0
	crystalFreq = 12.0
	edgeFreq    = 3.0
	iceFreq     = 8.0

	craterShift  = 101.7
	lavaShift    = 233.1
	crystalShift = 377.9
	edgeShift    = 419.3
	iceShift     = 587.5
)

const (
	baseHalfWidth  = 0.03
	craterDepth    = 0.15
	craterFloor    = 0.35
	tectonicDrop   = 0.08
	vegetationLift = 0.1
	snowShift      = 0.2
	edgeJitter     = 0.004
	iceEdge        = 0.05
	minSnowSpan    = 0.05
)

// BandWeights holds the per-band blend weights at one point. Water points
// only carry Shallow and Deep; land points only carry the other five.
type BandWeights struct {
	Shallow float64
	Deep    float64
	Sand    float64
	Grass   float64
	Rock    float64
	Snow    float64
	Ice     float64
}

// Sum adds every weight.
func (w BandWeights) Sum() float64 {
	return w.Shallow + w.Deep + w.Sand + w.Grass + w.Rock + w.Snow + w.Ice
}

// Water reports whether the point is classified as liquid.
func (w BandWeights) Water() bool { return w.Shallow+w.Deep > 0 }

// Band names the dominant material class at a point.
type Band uint8

const (
	// BandShallow is water near the shoreline.
	BandShallow Band = iota
	// BandDeep is water at or beyond the saturation depth.
	BandDeep
	// BandSand covers beaches and deserts just above sea level.
	BandSand
	// BandGrass is the vegetated lowland band.
	BandGrass
	// BandRock is exposed highland rock.
	BandRock
	// BandSnow caps the highest terrain.
	BandSnow
	// BandIce is the polar cap, independent of elevation.
	BandIce
	bandCount
)

var bandNames = [...]string{"shallow", "deep", "sand", "grass", "rock", "snow", "ice"}

func (b Band) String() string {
	if b < bandCount {
		return bandNames[b]
	}
	return "unknown"
}

// Bands lists every band in declaration order.
func Bands() []Band {
	out := make([]Band, bandCount)
	for i := range out {
		out[i] = Band(i)
	}
	return out
}

// Dominant returns the band with the largest weight. Ties go to the band
// declared first.
func (w BandWeights) Dominant() Band {
	vals := [...]float64{w.Shallow, w.Deep, w.Sand, w.Grass, w.Rock, w.Snow, w.Ice}
	best := BandShallow
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[best] {
			best = Band(i)
		}
	}
	return best
}

// Material is the shading response at one surface point.
type Material struct {
	Color         params.RGB
	Emission      float64
	EmissionColor params.RGB
	Roughness     float64
}

// Weights classifies the point at position with the given elevation.
func Weights(position mgl64.Vec3, elevation float64, p params.Planet) BandWeights {
	n := unit(position)
	if elevation < p.WaterLevel {
		t := smoothstep(0, DeepWaterDepth, p.WaterLevel-elevation)
		return BandWeights{Shallow: 1 - t, Deep: t}
	}

	h := elevation - p.WaterLevel
	if p.Craters > 0 {
		c := noise.Detail(n.Mul(p.NoiseScale*craterFreq), p.Seed+craterShift)
		h -= p.Craters * craterDepth * math.Max(0, c-craterFloor) / (1 - craterFloor)
	}

	veg := effectiveVegetation(p)
	heat := math.Tanh((p.Temperature - 15) / 60)
	half := baseHalfWidth * (1 + 3*p.Erosion)
	jit := 0.0
	if p.BiomeComplexity > 0 {
		jit = edgeJitter * p.BiomeComplexity * noise.Detail(n.Mul(p.NoiseScale*edgeFreq), p.Seed+edgeShift)
	}

	beach := BeachOffset*(1.5-veg) + jit
	lift := vegetationLift*veg - tectonicDrop*p.Tectonics + jit
	grass := GrassOffset + lift
	rock := RockOffset + lift
	snow := math.Max(SnowOffset+snowShift*heat+jit, rock+minSnowSpan)

	s1 := smoothstep(beach-half, beach+half, h)
	s2 := smoothstep(grass-half, rock+half, h)
	s3 := smoothstep(rock-half, snow+half, h)

	w := BandWeights{
		Sand:  1 - s1,
		Grass: s1 * (1 - s2),
		Rock:  s1 * s2 * (1 - s3),
		Snow:  s1 * s2 * s3,
	}

	ice := iceWeight(n, p, heat)
	if ice > 0 {
		keep := 1 - ice
		w.Sand *= keep
		w.Grass *= keep
		w.Rock *= keep
		w.Snow *= keep
		w.Ice = ice
	}
	return w
}

// Shade computes the material at position. It never fails: malformed colors
// were already replaced when the Planet was resolved.
func Shade(position mgl64.Vec3, elevation float64, p params.Planet) Material {
	n := unit(position)
	w := Weights(n, elevation, p)

	lava := lavaStrength(n, p)
	m := Material{
		EmissionColor: p.VolcanoColor,
		Emission:      clamp01(lava*(0.5*p.LavaFlows+0.5*p.Emission) + 0.15*p.Emission),
	}

	if w.Water() {
		m.Color = p.WaterColor.Mix(p.WaterDeepColor, w.Deep)
		m.Roughness = clamp01(0.1 * (0.5 + p.Roughness))
		return m
	}

	veg := effectiveVegetation(p)
	grass := p.VegetationColor.Mix(p.SandColor, p.Desert*(1-0.5*veg))
	c := p.SandColor.Scale(w.Sand).
		Add(grass.Scale(w.Grass)).
		Add(p.RockColor.Scale(w.Rock)).
		Add(p.SnowColor.Scale(w.Snow + w.Ice))
	rough := 0.9*w.Sand + 0.8*w.Grass + 0.7*w.Rock + 0.4*(w.Snow+w.Ice)

	if tint := clampRange(0.35*p.Haze+0.25*p.AcidRain, 0, 0.6); tint > 0 {
		c = c.Mix(p.AtmosphereTint, tint)
	}
	if lava > 0 && p.LavaFlows > 0 {
		c = c.Mix(p.VolcanoColor, lava*p.LavaFlows*0.8)
	}
	if p.Crystals > 0 {
		d := noise.Detail(n.Mul(p.NoiseScale*crystalFreq), p.Seed+crystalShift)
		sparkle := p.Crystals * smoothstep(0.55, 0.8, d)
		c = c.Mix(params.RGB{R: 1, G: 1, B: 1}, 0.5*sparkle)
		rough *= 1 - 0.6*sparkle
	}

	rough *= 0.5 + p.Roughness
	rough *= 1 - 0.3*p.Erosion
	m.Color = c
	m.Roughness = clamp01(rough)
	return m
}

// effectiveVegetation damps vegetation under haze and acid rain.
func effectiveVegetation(p params.Planet) float64 {
	return clamp01(p.Vegetation * (1 - 0.6*p.Haze) * (1 - 0.5*p.AcidRain))
}

// lavaStrength is the fraction of a molten channel at n. The density of
// channels follows the stronger of lavaFlows and surfaceEmission.
func lavaStrength(n mgl64.Vec3, p params.Planet) float64 {
	density := math.Max(p.LavaFlows, p.Emission)
	if density <= 0 {
		return 0
	}
	d := noise.Detail(n.Mul(p.NoiseScale*lavaFreq), p.Seed+lavaShift)
	thr := 1 - 0.6*density
	return smoothstep(thr, thr+0.15, d)
}

// iceWeight is the polar cap coverage from the |y| latitude proxy. Warm
// planets shrink the caps, cold ones grow them.
func iceWeight(n mgl64.Vec3, p params.Planet, heat float64) float64 {
	extent := clamp01(p.IceCaps * (1 - 0.5*heat))
	if extent <= 0 {
		return 0
	}
	lat := math.Abs(n[1]) + iceEdge*noise.Detail(n.Mul(iceFreq), p.Seed+iceShift)
	edge := 1 - extent
	return smoothstep(edge-iceEdge, edge+iceEdge, lat) * smoothstep(0, iceEdge, extent)
}

// smoothstep is the cubic Hermite step between e0 and e1. Degenerate edges
// collapse to a hard step at e0.
func smoothstep(e0, e1, x float64) float64 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 { return clampRange(v, 0, 1) }

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unit(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}
