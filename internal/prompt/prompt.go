// Package prompt turns free-text planet descriptions into partial parameter
// vectors. The core never reads text; it only sees the vector a Translator
// produces.
package prompt

import (
	"math"
	"strings"

	"planetsynth/pkg/core"
	"planetsynth/pkg/params"
)

// Translator maps a description to a partial parameter vector.
type Translator interface {
	Translate(text string) params.Vector
}

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(text string) params.Vector

// Translate calls f.
func (f TranslatorFunc) Translate(text string) params.Vector { return f(text) }

type rule struct {
	keyword string
	set     params.Vector
}

func n(v float64) params.Value { return params.Number(v) }
func c(hex string) params.Value { return params.Text(hex) }

// rules are applied in order; a later match overwrites fields set by an
// earlier one.
var rules = []rule{
	{"ancient", params.Vector{params.KeyAge: n(8), params.KeyErosionFactor: n(0.8), params.KeyOctaves: n(3), params.KeyCraterDensity: n(0.5)}},
	{"old", params.Vector{params.KeyAge: n(6), params.KeyErosionFactor: n(0.6), params.KeyOctaves: n(4)}},
	{"young", params.Vector{params.KeyAge: n(1), params.KeyErosionFactor: n(0.1), params.KeyTectonicActivity: n(0.8), params.KeyOctaves: n(7)}},
	{"primordial", params.Vector{params.KeyAge: n(0.5), params.KeyTectonicActivity: n(0.9), params.KeyVolcanoColor: c("#FF6347")}},

	{"mountainous", params.Vector{params.KeyStrength: n(0.6), params.KeyOctaves: n(7), params.KeyTectonicActivity: n(0.7)}},
	{"flat", params.Vector{params.KeyStrength: n(0.1), params.KeyOctaves: n(2), params.KeyErosionFactor: n(0.9)}},
	{"rugged", params.Vector{params.KeyStrength: n(0.5), params.KeyPersistence: n(0.7), params.KeySurfaceRoughness: n(0.8)}},
	{"smooth", params.Vector{params.KeyStrength: n(0.2), params.KeyPersistence: n(0.3), params.KeySurfaceRoughness: n(0.2)}},
	{"canyon", params.Vector{params.KeyStrength: n(0.4), params.KeyNoiseScale: n(15), params.KeyLacunarity: n(2.5)}},

	{"ocean", params.Vector{params.KeyWaterLevel: n(0.8), params.KeyWaterColor: c("#006994")}},
	{"sea", params.Vector{params.KeyWaterLevel: n(0.7), params.KeyWaterColor: c("#4682B4")}},
	{"lake", params.Vector{params.KeyWaterLevel: n(0.4)}},
	{"dry", params.Vector{params.KeyWaterLevel: n(0.1), params.KeyDesertification: n(0.8)}},
	{"arid", params.Vector{params.KeyWaterLevel: n(0.15), params.KeyDesertification: n(0.7), params.KeyCloudCoverage: n(0.1)}},
	{"archipelago", params.Vector{params.KeyWaterLevel: n(0.75), params.KeyNoiseScale: n(12)}},

	{"frozen", params.Vector{params.KeyTemperatureRange: n(-50), params.KeyIceCapExtent: n(0.7), params.KeySnowColor: c("#F0FFFF")}},
	{"ice", params.Vector{params.KeyTemperatureRange: n(-30), params.KeyIceCapExtent: n(0.5), params.KeyWaterColor: c("#B0E0E6")}},
	{"cold", params.Vector{params.KeyTemperatureRange: n(-10), params.KeyIceCapExtent: n(0.3)}},
	{"hot", params.Vector{params.KeyTemperatureRange: n(40), params.KeyDesertification: n(0.6), params.KeyVegetationCoverage: n(0.2)}},
	{"temperate", params.Vector{params.KeyTemperatureRange: n(15), params.KeyVegetationCoverage: n(0.6)}},
	{"tropical", params.Vector{params.KeyTemperatureRange: n(25), params.KeyVegetationCoverage: n(0.8), params.KeyCloudCoverage: n(0.6)}},

	{"toxic", params.Vector{params.KeyAcidRain: n(0.8), params.KeyAtmosphereTint: c("#ADFF2F"), params.KeyWaterColor: c("#ADFF2F"), params.KeyVegetationCoverage: n(0.1)}},
	{"thick", params.Vector{params.KeyAtmosphereDensity: n(0.9), params.KeyCloudCoverage: n(0.7)}},
	{"thin", params.Vector{params.KeyAtmosphereDensity: n(0.2), params.KeyCloudCoverage: n(0.1)}},
	{"clear", params.Vector{params.KeyCloudCoverage: n(0.1), params.KeyAtmosphereDensity: n(0.3)}},
	{"cloudy", params.Vector{params.KeyCloudCoverage: n(0.8)}},
	{"stormy", params.Vector{params.KeyCloudCoverage: n(0.9), params.KeyAtmosphereDensity: n(0.8)}},

	{"desert", params.Vector{params.KeyDesertification: n(0.9), params.KeySandColor: c("#DEB887"), params.KeyVegetationCoverage: n(0.05)}},
	{"sand", params.Vector{params.KeySandColor: c("#F4A460"), params.KeyDesertification: n(0.7)}},
	{"rock", params.Vector{params.KeyRockColor: c("#708090"), params.KeyDesertification: n(0.5)}},
	{"volcanic", params.Vector{params.KeyVolcanoColor: c("#DC143C"), params.KeyTectonicActivity: n(0.8), params.KeyTemperatureRange: n(50)}},
	{"lava", params.Vector{params.KeyTemperatureRange: n(600), params.KeySurfaceEmission: n(0.8), params.KeyLavaFlows: n(1), params.KeyVolcanoColor: c("#FF0000"), params.KeyRockColor: c("#2F2F2F")}},
	{"forest", params.Vector{params.KeyVegetationCoverage: n(0.8), params.KeyVegetationColor: c("#228B22")}},
	{"jungle", params.Vector{params.KeyVegetationCoverage: n(0.9), params.KeyVegetationColor: c("#006400"), params.KeyCloudCoverage: n(0.7)}},

	{"red", params.Vector{params.KeyRockColor: c("#CD5C5C"), params.KeySandColor: c("#E9967A")}},
	{"blue", params.Vector{params.KeyWaterColor: c("#4169E1"), params.KeyAtmosphereTint: c("#87CEEB")}},
	{"green", params.Vector{params.KeyVegetationColor: c("#32CD32"), params.KeyVegetationCoverage: n(0.6)}},
	{"purple", params.Vector{params.KeyAtmosphereTint: c("#9370DB"), params.KeyRockColor: c("#8B7D8B")}},
	{"rust", params.Vector{params.KeyRockColor: c("#B22222"), params.KeySandColor: c("#A0522D")}},
	{"golden", params.Vector{params.KeySandColor: c("#FFD700"), params.KeyRockColor: c("#DAA520")}},

	{"large", params.Vector{params.KeySize: n(1.5), params.KeyNoiseScale: n(8)}},
	{"small", params.Vector{params.KeySize: n(0.7), params.KeyNoiseScale: n(4)}},
	{"massive", params.Vector{params.KeySize: n(2), params.KeyNoiseScale: n(10)}},
	{"tiny", params.Vector{params.KeySize: n(0.5), params.KeyNoiseScale: n(3)}},

	{"molten", params.Vector{params.KeyTemperatureRange: n(800), params.KeySurfaceEmission: n(1), params.KeyLavaFlows: n(1), params.KeyTectonicActivity: n(1)}},
	{"crystal", params.Vector{params.KeyCrystallineFormations: n(1), params.KeyRockColor: c("#9370DB"), params.KeySurfaceRoughness: n(0.2)}},
	{"crystalline", params.Vector{params.KeyCrystallineFormations: n(0.8), params.KeyRockColor: c("#8A2BE2"), params.KeyAtmosphereTint: c("#DA70D6")}},
	{"acid", params.Vector{params.KeyAcidRain: n(1), params.KeyWaterColor: c("#ADFF2F"), params.KeyErosionFactor: n(0.8)}},
	{"tholin", params.Vector{params.KeyOrganicHaze: n(1), params.KeyAtmosphereTint: c("#D2691E"), params.KeyCloudCoverage: n(0.9), params.KeyTemperatureRange: n(-180)}},
	{"organic", params.Vector{params.KeyOrganicHaze: n(0.6), params.KeyAtmosphereTint: c("#DEB887"), params.KeyCloudCoverage: n(0.7)}},
	{"diamond", params.Vector{params.KeyCrystallineFormations: n(0.9), params.KeyRockColor: c("#E0E0E0"), params.KeySurfaceRoughness: n(0.1)}},
	{"carbon", params.Vector{params.KeyRockColor: c("#2F2F2F"), params.KeySandColor: c("#404040"), params.KeyTemperatureRange: n(200)}},
	{"tidally", params.Vector{params.KeyTectonicActivity: n(0.9), params.KeyTemperatureRange: n(-120), params.KeyErosionFactor: n(0.3)}},
	{"locked", params.Vector{params.KeyTectonicActivity: n(0.9), params.KeyTemperatureRange: n(-120)}},
	{"moon", params.Vector{params.KeySize: n(0.6), params.KeyCraterDensity: n(0.7), params.KeyAtmosphereDensity: n(0.1)}},
	{"hellish", params.Vector{params.KeyTemperatureRange: n(500), params.KeySurfaceEmission: n(0.7), params.KeyAcidRain: n(0.5), params.KeyAtmosphereTint: c("#FF6600")}},
	{"paradise", params.Vector{params.KeyTemperatureRange: n(22), params.KeyVegetationCoverage: n(0.9), params.KeyWaterLevel: n(0.6), params.KeyCloudCoverage: n(0.5)}},
	{"barren", params.Vector{params.KeyWaterLevel: n(0), params.KeyVegetationCoverage: n(0), params.KeyCraterDensity: n(0.8), params.KeyErosionFactor: n(0.9)}},
	{"lifeless", params.Vector{params.KeyVegetationCoverage: n(0), params.KeyAtmosphereDensity: n(0.1), params.KeyCraterDensity: n(0.6)}},
}

// Keywords is the substring-matching translator. Matching is
// case-insensitive and deliberately loose: "ice" also fires inside "price".
type Keywords struct {
	// RNG draws the seed and the natural-variation jitter. Nil uses the
	// global source.
	RNG *core.RNG
	// NoJitter disables the random scaling of noiseScale and fbmStrength.
	NoJitter bool
}

// NewKeywords returns a translator drawing randomness from rng.
func NewKeywords(rng *core.RNG) *Keywords {
	return &Keywords{RNG: rng}
}

// Matches lists the keywords found in text, in application order.
func Matches(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, r := range rules {
		if strings.Contains(lower, r.keyword) {
			out = append(out, r.keyword)
		}
	}
	return out
}

// Translate applies every matching keyword, then the combination rules, then
// draws a seed and jitters the terrain scale. The result is partial: fields
// no rule touched are absent.
func (k *Keywords) Translate(text string) params.Vector {
	lower := strings.ToLower(text)
	out := params.Vector{}
	for _, r := range rules {
		if !strings.Contains(lower, r.keyword) {
			continue
		}
		for key, val := range r.set {
			out[key] = val
		}
	}

	if containsAny(lower, "earth-like", "habitable") {
		out.Set(params.KeyWaterLevel, 0.5)
		out.Set(params.KeyVegetationCoverage, 0.6)
		out.Set(params.KeyTemperatureRange, 15)
		out.Set(params.KeyAtmosphereDensity, 0.7)
		out.Set(params.KeyCloudCoverage, 0.4)
	}
	if containsAny(lower, "mars-like", "martian") {
		out.SetText(params.KeyRockColor, "#CD853F")
		out.SetText(params.KeySandColor, "#D2691E")
		out.SetText(params.KeyAtmosphereTint, "#FFE4B5")
		out.Set(params.KeyAtmosphereDensity, 0.1)
		out.Set(params.KeyWaterLevel, 0.05)
		out.Set(params.KeyIceCapExtent, 0.2)
	}
	if containsAny(lower, "detailed", "complex") {
		out.Set(params.KeyOctaves, math.Min(out.Float(params.KeyOctaves)+2, 10))
		out.Set(params.KeyDetailLevel, 8)
	}
	if containsAny(lower, "simple", "minimal") {
		out.Set(params.KeyOctaves, math.Max(out.Float(params.KeyOctaves)-2, 2))
		out.Set(params.KeyDetailLevel, 3)
	}

	rng := (*core.RNG)(nil)
	if k != nil {
		rng = k.RNG
	}
	out.Set(params.KeySeed, rng.Seed())
	if k == nil || !k.NoJitter {
		out.Set(params.KeyNoiseScale, rng.Jitter(out.Float(params.KeyNoiseScale), 0.2))
		out.Set(params.KeyStrength, rng.Jitter(out.Float(params.KeyStrength), 0.1))
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
