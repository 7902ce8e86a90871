package params

import (
	"sort"

	"planetsynth/pkg/core"
)

// Preset is a named override bundle merged over the schema defaults.
type Preset struct {
	Name        string
	Title       string
	Description string
	// Exotic marks the alien-world bundles as opposed to the classic
	// Earth-derived ones.
	Exotic bool
	Params Vector
}

var presets = map[string]Preset{}

// RegisterPreset adds p to the registry, replacing any bundle with the same
// name. Empty names are ignored.
func RegisterPreset(p Preset) {
	if p.Name == "" {
		return
	}
	p.Params = p.Params.Clone()
	presets[p.Name] = p
}

// LookupPreset returns the bundle registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	p.Params = p.Params.Clone()
	return p, true
}

// PresetNames lists registered bundles in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset merges the named bundle over fresh defaults with a new seed and
// records the name under KeyWorldType. An unknown name returns current
// unchanged and false.
func ApplyPreset(current Vector, name string) (Vector, bool) {
	return ApplyPresetWith(nil, current, name)
}

// ApplyPresetWith is ApplyPreset drawing the new seed from rng.
func ApplyPresetWith(rng *core.RNG, current Vector, name string) (Vector, bool) {
	p, ok := presets[name]
	if !ok {
		return current, false
	}
	out := Merge(DefaultsWith(rng), p.Params)
	prev, hadSeed := current[KeySeed]
	for i := 0; i < 8 && hadSeed && out[KeySeed] == prev; i++ {
		out[KeySeed] = Number(rng.Seed())
	}
	out[KeyWorldType] = Text(name)
	return out, true
}

// DetectWorldType classifies a vector into the closest exotic family.
func DetectWorldType(v Vector) string {
	switch {
	case v.Float(KeyTemperatureRange) > 500:
		return "lavaWorld"
	case v.Float(KeyTemperatureRange) < -50 && v.Float(KeyIceCapExtent) > 0.7:
		return "iceWorld"
	case v.Float(KeyWaterLevel) > 0.8:
		return "waterWorld"
	case v.Float(KeyDesertification) > 0.8:
		return "desertWorld"
	case v.Float(KeyAtmosphereDensity) > 0.9 && v.Float(KeyCloudCoverage) > 0.8:
		return "tholinWorld"
	}
	return "earthLike"
}

func init() {
	RegisterPreset(Preset{
		Name: "earthLike", Title: "Earth-like", Description: "Temperate oceans and continents",
		Params: Vector{
			KeyNoiseScale: Number(3.5), KeyWaterLevel: Number(0.5), KeyOctaves: Number(5),
			KeyStrength: Number(0.3), KeyVegetationCoverage: Number(0.7), KeyCloudCoverage: Number(0.4),
			KeyAtmosphereDensity: Number(0.8), KeyTemperatureRange: Number(15),
		},
	})
	RegisterPreset(Preset{
		Name: "desert", Title: "Desert", Description: "Arid dunes and bare rock",
		Params: Vector{
			KeyNoiseScale: Number(8), KeyWaterLevel: Number(0.1), KeyOctaves: Number(6),
			KeyStrength: Number(0.4), KeyPersistence: Number(0.6), KeyDesertification: Number(0.9),
			KeyVegetationCoverage: Number(0.05), KeyCloudCoverage: Number(0.1),
			KeySandColor: Text("#D2691E"), KeyRockColor: Text("#8B4513"),
		},
	})
	RegisterPreset(Preset{
		Name: "ocean", Title: "Ocean", Description: "Mostly water with scattered islands",
		Params: Vector{
			KeyNoiseScale: Number(12), KeyWaterLevel: Number(0.85), KeyOctaves: Number(4),
			KeyStrength: Number(0.2), KeyWaterColor: Text("#001F3F"), KeyCloudCoverage: Number(0.6),
			KeyAtmosphereDensity: Number(0.9),
		},
	})
	RegisterPreset(Preset{
		Name: "volcanic", Title: "Volcanic", Description: "Young crust with active tectonics",
		Params: Vector{
			KeyNoiseScale: Number(5), KeyOctaves: Number(7), KeyStrength: Number(0.5),
			KeyLacunarity: Number(2.5), KeyTectonicActivity: Number(0.9), KeyWaterLevel: Number(0.2),
			KeyVolcanoColor: Text("#FF4500"), KeyRockColor: Text("#2F4F4F"),
			KeyTemperatureRange: Number(60), KeyAge: Number(0.5),
		},
	})
	RegisterPreset(Preset{
		Name: "ice", Title: "Ice", Description: "Frozen seas and wide polar caps",
		Params: Vector{
			KeyNoiseScale: Number(6), KeyWaterLevel: Number(0.3), KeyStrength: Number(0.25),
			KeyIceCapExtent: Number(0.8), KeySnowColor: Text("#F0F8FF"), KeyWaterColor: Text("#4682B4"),
			KeyTemperatureRange: Number(-40), KeyCloudCoverage: Number(0.7),
		},
	})
	RegisterPreset(Preset{
		Name: "ancient", Title: "Ancient", Description: "Old, eroded and cratered",
		Params: Vector{
			KeyNoiseScale: Number(10), KeyOctaves: Number(3), KeyStrength: Number(0.15),
			KeyPersistence: Number(0.3), KeyErosionFactor: Number(0.8), KeyAge: Number(8),
			KeyCraterDensity: Number(0.6), KeyVegetationCoverage: Number(0.1), KeyDesertification: Number(0.7),
		},
	})

	RegisterPreset(Preset{
		Name: "lavaWorld", Title: "Lava World", Description: "Molten surface with rivers of lava", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0), KeyTemperatureRange: Number(800), KeyTectonicActivity: Number(1),
			KeyVolcanoColor: Text("#FF0000"), KeyRockColor: Text("#2F2F2F"), KeySandColor: Text("#1A1A1A"),
			KeyWaterColor: Text("#FF4500"), KeyWaterDeepColor: Text("#8B0000"), KeySnowColor: Text("#696969"),
			KeyVegetationColor: Text("#000000"), KeyAtmosphereTint: Text("#FF6600"),
			KeyAtmosphereDensity: Number(0.3), KeyStrength: Number(0.4), KeyOctaves: Number(8),
			KeyNoiseScale: Number(6), KeyCloudCoverage: Number(0.1), KeyErosionFactor: Number(0.2),
			KeySurfaceEmission: Number(0.8), KeyLavaFlows: Number(1), "thermalVents": Number(1),
		},
	})
	RegisterPreset(Preset{
		Name: "iceWorld", Title: "Ice World", Description: "Frozen wasteland with subsurface oceans", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.3), KeyTemperatureRange: Number(-80), KeyIceCapExtent: Number(0.9),
			KeyWaterColor: Text("#4682B4"), KeyWaterDeepColor: Text("#191970"), KeyRockColor: Text("#708090"),
			KeySandColor: Text("#F0F8FF"), KeySnowColor: Text("#FFFFFF"), KeyVegetationColor: Text("#2F4F4F"),
			KeyVolcanoColor: Text("#4169E1"), KeyAtmosphereTint: Text("#B0E0E6"),
			KeyAtmosphereDensity: Number(0.6), KeyStrength: Number(0.25), KeyNoiseScale: Number(8),
			KeyCloudCoverage: Number(0.7), KeyErosionFactor: Number(0.6),
			"glacialFlow": Number(1), "cryovolcanism": Number(0.3),
		},
	})
	RegisterPreset(Preset{
		Name: "tholinWorld", Title: "Tholin World", Description: "Orange haze and hydrocarbon lakes", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.4), KeyTemperatureRange: Number(-180),
			KeyWaterColor: Text("#8B4513"), KeyWaterDeepColor: Text("#654321"), KeyRockColor: Text("#D2691E"),
			KeySandColor: Text("#DEB887"), KeySnowColor: Text("#F5DEB3"), KeyVegetationColor: Text("#B8860B"),
			KeyVolcanoColor: Text("#A0522D"), KeyAtmosphereTint: Text("#D2691E"),
			KeyAtmosphereDensity: Number(1), KeyStrength: Number(0.2), KeyNoiseScale: Number(12),
			KeyCloudCoverage: Number(0.9), KeyErosionFactor: Number(0.4),
			KeyOrganicHaze: Number(1), "hydrocarbonLakes": Number(1),
		},
	})
	RegisterPreset(Preset{
		Name: "gasGiantMoon", Title: "Gas Giant Moon", Description: "Tidally heated moon of a giant planet", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.1), KeyTemperatureRange: Number(-120), KeyTectonicActivity: Number(0.9),
			KeyWaterColor: Text("#483D8B"), KeyWaterDeepColor: Text("#2F2F4F"), KeyRockColor: Text("#696969"),
			KeySandColor: Text("#A9A9A9"), KeySnowColor: Text("#F5F5F5"), KeyVegetationColor: Text("#4B0082"),
			KeyVolcanoColor: Text("#FF69B4"), KeyAtmosphereTint: Text("#9932CC"),
			KeyAtmosphereDensity: Number(0.1), KeyStrength: Number(0.6), KeyOctaves: Number(10),
			KeyNoiseScale: Number(4), KeyErosionFactor: Number(0.3),
			"tidalHeating": Number(1), "radiationExposure": Number(0.8),
		},
	})
	RegisterPreset(Preset{
		Name: "desertWorld", Title: "Desert World", Description: "Endless dunes under dust storms", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.05), KeyTemperatureRange: Number(45), KeyDesertification: Number(1),
			KeyVegetationCoverage: Number(0),
			KeyWaterColor: Text("#CD853F"), KeyWaterDeepColor: Text("#8B7355"), KeyRockColor: Text("#D2691E"),
			KeySandColor: Text("#F4A460"), KeySnowColor: Text("#F5DEB3"), KeyVegetationColor: Text("#8B4513"),
			KeyVolcanoColor: Text("#B22222"), KeyAtmosphereTint: Text("#DEB887"),
			KeyAtmosphereDensity: Number(0.4), KeyStrength: Number(0.3), KeyNoiseScale: Number(15),
			KeyCloudCoverage: Number(0.1), KeyErosionFactor: Number(0.8),
			"sandDunes": Number(1), "dustStorms": Number(0.7),
		},
	})
	RegisterPreset(Preset{
		Name: "carbonWorld", Title: "Carbon World", Description: "Graphite plains and diamond peaks", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0), KeyTemperatureRange: Number(200),
			KeyWaterColor: Text("#2F2F2F"), KeyWaterDeepColor: Text("#000000"), KeyRockColor: Text("#1C1C1C"),
			KeySandColor: Text("#404040"), KeySnowColor: Text("#C0C0C0"), KeyVegetationColor: Text("#2F4F2F"),
			KeyVolcanoColor: Text("#4169E1"), KeyAtmosphereTint: Text("#696969"),
			KeyAtmosphereDensity: Number(0.2), KeyStrength: Number(0.5), KeyNoiseScale: Number(8),
			KeyTectonicActivity: Number(0.4), KeyErosionFactor: Number(0.1),
			"carbonDeposits": Number(1), "diamondFormations": Number(0.6),
		},
	})
	RegisterPreset(Preset{
		Name: "waterWorld", Title: "Water World", Description: "A single global ocean", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.9), KeyTemperatureRange: Number(25), KeyVegetationCoverage: Number(0.8),
			KeyWaterColor: Text("#006994"), KeyWaterDeepColor: Text("#001F3F"), KeyRockColor: Text("#20B2AA"),
			KeySandColor: Text("#F0E68C"), KeySnowColor: Text("#F0FFFF"), KeyVegetationColor: Text("#00FA9A"),
			KeyVolcanoColor: Text("#FF4500"), KeyAtmosphereTint: Text("#87CEEB"),
			KeyAtmosphereDensity: Number(0.9), KeyStrength: Number(0.2), KeyNoiseScale: Number(20),
			KeyCloudCoverage: Number(0.6), KeyErosionFactor: Number(0.9),
			"oceanCurrents": Number(1), "coralReefs": Number(0.8),
		},
	})
	RegisterPreset(Preset{
		Name: "crystalWorld", Title: "Crystal World", Description: "Crystalline spires and mineral fields", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.2), KeyTemperatureRange: Number(-40),
			KeyWaterColor: Text("#40E0D0"), KeyWaterDeepColor: Text("#008B8B"), KeyRockColor: Text("#9370DB"),
			KeySandColor: Text("#DDA0DD"), KeySnowColor: Text("#E6E6FA"), KeyVegetationColor: Text("#8A2BE2"),
			KeyVolcanoColor: Text("#FF1493"), KeyAtmosphereTint: Text("#DA70D6"),
			KeyAtmosphereDensity: Number(0.5), KeyStrength: Number(0.4), KeyNoiseScale: Number(6),
			KeyTectonicActivity: Number(0.3), KeyErosionFactor: Number(0.2),
			KeyCrystallineFormations: Number(1), "mineralDeposits": Number(0.9),
		},
	})
	RegisterPreset(Preset{
		Name: "toxicWorld", Title: "Toxic World", Description: "Acid seas under a poisonous sky", Exotic: true,
		Params: Vector{
			KeyWaterLevel: Number(0.3), KeyTemperatureRange: Number(90), KeyVegetationCoverage: Number(0.1),
			KeyWaterColor: Text("#ADFF2F"), KeyWaterDeepColor: Text("#8FBC8F"), KeyRockColor: Text("#556B2F"),
			KeySandColor: Text("#9ACD32"), KeySnowColor: Text("#F5FFFA"), KeyVegetationColor: Text("#6B8E23"),
			KeyVolcanoColor: Text("#FF8C00"), KeyAtmosphereTint: Text("#ADFF2F"),
			KeyAtmosphereDensity: Number(1), KeyStrength: Number(0.3), KeyNoiseScale: Number(10),
			KeyCloudCoverage: Number(0.8), KeyErosionFactor: Number(0.7),
			KeyAcidRain: Number(1), "toxicGases": Number(0.9),
		},
	})
}
