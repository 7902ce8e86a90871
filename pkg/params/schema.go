package params

import "math"

// Group names used to cluster the schema for presentation.
const (
	GroupTerrain   = "terrain"
	GroupHydrology = "hydrology"
	GroupBiome     = "biome"
	GroupSurface   = "surface"
	GroupPlanetary = "planetary"
	GroupStyle     = "style"
)

// Parameter keys.
const (
	KeySeed                  = "seed"
	KeyNoiseScale            = "noiseScale"
	KeyOctaves               = "fbmOctaves"
	KeyInitialAmplitude      = "fbmInitialAmplitude"
	KeyLacunarity            = "fbmLacunarity"
	KeyPersistence           = "fbmPersistence"
	KeyStrength              = "fbmStrength"
	KeyErosionFactor         = "erosionFactor"
	KeyTectonicActivity      = "tectonicActivity"
	KeyCraterDensity         = "craterDensity"
	KeyWaterLevel            = "waterLevel"
	KeyWaterColor            = "waterColor"
	KeyWaterDeepColor        = "waterDeepColor"
	KeyIceCapExtent          = "iceCapExtent"
	KeyCloudCoverage         = "cloudCoverage"
	KeyAtmosphereDensity     = "atmosphereDensity"
	KeyAtmosphereTint        = "atmosphereTint"
	KeyVegetationCoverage    = "vegetationCoverage"
	KeyDesertification      = "desertification"
	KeyTemperatureRange      = "temperatureRange"
	KeyBiomeComplexity       = "biomeComplexity"
	KeyRockColor             = "rockColor"
	KeySandColor             = "sandColor"
	KeyVegetationColor       = "vegetationColor"
	KeySnowColor             = "snowColor"
	KeyVolcanoColor          = "volcanoColor"
	KeySurfaceRoughness      = "surfaceRoughness"
	KeySurfaceEmission       = "surfaceEmission"
	KeyLavaFlows             = "lavaFlows"
	KeyOrganicHaze           = "organicHaze"
	KeyCrystallineFormations = "crystallineFormations"
	KeyAcidRain              = "acidRain"
	KeyAge                   = "age"
	KeySize                  = "size"
	KeyRotationSpeed         = "rotationSpeed"
	KeyAxialTilt             = "axialTilt"
	KeyMagneticField         = "magneticField"
	KeyRealism               = "realism"
	KeyColorSaturation       = "colorSaturation"
	KeyDetailLevel           = "detailLevel"

	// KeyWorldType is free text recorded by preset application. It is not
	// part of the schema and therefore passes through validation untouched.
	KeyWorldType = "worldType"
)

// Spec describes one schema entry.
type Spec struct {
	Key         string
	Label       string
	Group       string
	Kind        Kind
	Min         float64
	Max         float64
	Default     float64
	Integer     bool
	Step        float64
	Color       string
	Description string
}

// Bounded reports whether the entry carries a finite [Min, Max] range.
func (s Spec) Bounded() bool {
	return s.Kind == KindNumber && !math.IsInf(s.Min, -1) && !math.IsInf(s.Max, 1)
}

// Clamp limits v to the declared range. NaN, and infinities on an unbounded
// entry, map to the default.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) || (!s.Bounded() && math.IsInf(v, 0)) {
		return s.Default
	}
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

func num(key, label, group string, min, max, def, step float64, desc string) Spec {
	return Spec{Key: key, Label: label, Group: group, Kind: KindNumber, Min: min, Max: max, Default: def, Step: step, Description: desc}
}

func integer(key, label, group string, min, max, def float64, desc string) Spec {
	s := num(key, label, group, min, max, def, 1, desc)
	s.Integer = true
	return s
}

func color(key, label, group, hex, desc string) Spec {
	return Spec{Key: key, Label: label, Group: group, Kind: KindString, Color: hex, Description: desc}
}

var schema = []Spec{
	{Key: KeySeed, Label: "Seed", Group: GroupTerrain, Kind: KindNumber, Min: math.Inf(-1), Max: math.Inf(1), Step: 1, Description: "Noise sampling offset"},
	num(KeyNoiseScale, "Noise scale", GroupTerrain, 0.1, 20, 3.5, 0.5, "Base frequency of terrain features"),
	integer(KeyOctaves, "FBM octaves", GroupTerrain, 0, 10, 5, "Detail levels in terrain"),
	num(KeyInitialAmplitude, "FBM amplitude", GroupTerrain, 0.1, 2.0, 0.5, 0.05, "Starting amplitude for terrain"),
	num(KeyLacunarity, "FBM lacunarity", GroupTerrain, 1.5, 4.0, 2.0, 0.1, "Frequency multiplier between octaves"),
	num(KeyPersistence, "FBM persistence", GroupTerrain, 0.1, 0.9, 0.5, 0.05, "Amplitude decay between octaves"),
	num(KeyStrength, "FBM strength", GroupTerrain, 0.05, 1.0, 0.3, 0.05, "Overall terrain displacement strength"),
	num(KeyErosionFactor, "Erosion", GroupTerrain, 0, 1, 0, 0.05, "Softens band transitions"),
	num(KeyTectonicActivity, "Tectonics", GroupTerrain, 0, 1, 0.3, 0.05, "Exposed rock and ridge roughness"),
	num(KeyCraterDensity, "Craters", GroupTerrain, 0, 1, 0, 0.05, "Impact crater frequency"),

	num(KeyWaterLevel, "Water level", GroupHydrology, 0, 1, 0.5, 0.02, "Sea level height"),
	color(KeyWaterColor, "Water color", GroupHydrology, "#006994", "Shallow ocean color"),
	color(KeyWaterDeepColor, "Deep water color", GroupHydrology, "#001F3F", "Deep ocean color"),
	num(KeyIceCapExtent, "Ice caps", GroupHydrology, 0, 1, 0.1, 0.05, "Polar ice coverage"),
	num(KeyCloudCoverage, "Clouds", GroupHydrology, 0, 1, 0.3, 0.05, "Cloud density"),
	num(KeyAtmosphereDensity, "Atmosphere", GroupHydrology, 0, 1, 0.5, 0.05, "Atmospheric thickness"),
	color(KeyAtmosphereTint, "Atmosphere tint", GroupHydrology, "#87CEEB", "Sky color tint"),

	num(KeyVegetationCoverage, "Vegetation", GroupBiome, 0, 1, 0.4, 0.05, "Plant life extent"),
	num(KeyDesertification, "Desert", GroupBiome, 0, 1, 0.2, 0.05, "Arid region extent"),
	num(KeyTemperatureRange, "Temperature", GroupBiome, -273, 1000, 15, 5, "Average surface temperature (C)"),
	integer(KeyBiomeComplexity, "Biome complexity", GroupBiome, 1, 10, 5, "Band edge irregularity"),

	color(KeyRockColor, "Rock color", GroupSurface, "#8B7355", "Base rock color"),
	color(KeySandColor, "Sand color", GroupSurface, "#C19A6B", "Desert/beach color"),
	color(KeyVegetationColor, "Vegetation color", GroupSurface, "#228B22", "Plant life color"),
	color(KeySnowColor, "Snow color", GroupSurface, "#FFFFFF", "Snow/ice color"),
	color(KeyVolcanoColor, "Volcano color", GroupSurface, "#8B0000", "Volcanic/lava color"),
	num(KeySurfaceRoughness, "Roughness", GroupSurface, 0, 1, 0.5, 0.05, "Surface texture detail"),
	num(KeySurfaceEmission, "Emission", GroupSurface, 0, 1, 0, 0.05, "Self-illumination of hot terrain"),
	num(KeyLavaFlows, "Lava flows", GroupSurface, 0, 1, 0, 0.05, "Molten channel density"),
	num(KeyOrganicHaze, "Organic haze", GroupSurface, 0, 1, 0, 0.05, "Tholin haze tint"),
	num(KeyCrystallineFormations, "Crystals", GroupSurface, 0, 1, 0, 0.05, "Crystal sparkle"),
	num(KeyAcidRain, "Acid rain", GroupSurface, 0, 1, 0, 0.05, "Corrosive tint"),

	num(KeyAge, "Age", GroupPlanetary, 0.1, 10, 4.5, 0.1, "Planet age in billion years"),
	num(KeySize, "Size", GroupPlanetary, 0.5, 2, 1, 0.05, "Planet scale multiplier"),
	num(KeyRotationSpeed, "Rotation", GroupPlanetary, 0, 2, 1, 0.1, "Day/night cycle speed"),
	num(KeyAxialTilt, "Axial tilt", GroupPlanetary, 0, 45, 23.5, 0.5, "Axial tilt in degrees"),
	num(KeyMagneticField, "Magnetic field", GroupPlanetary, 0, 1, 0.5, 0.05, "Magnetic field strength"),

	num(KeyRealism, "Realism", GroupStyle, 0, 1, 0.7, 0.05, "Realistic vs stylized"),
	num(KeyColorSaturation, "Saturation", GroupStyle, 0, 2, 1, 0.05, "Color intensity"),
	integer(KeyDetailLevel, "Detail", GroupStyle, 1, 10, 5, "Overall detail quality"),
}

var specIndex = func() map[string]int {
	idx := make(map[string]int, len(schema))
	for i, s := range schema {
		idx[s.Key] = i
	}
	return idx
}()

// Schema returns a copy of every schema entry in declaration order.
func Schema() []Spec {
	out := make([]Spec, len(schema))
	copy(out, schema)
	return out
}

// Lookup returns the schema entry for key.
func Lookup(key string) (Spec, bool) {
	i, ok := specIndex[key]
	if !ok {
		return Spec{}, false
	}
	return schema[i], true
}

// Groups lists the group names in presentation order.
func Groups() []string {
	return []string{GroupTerrain, GroupHydrology, GroupBiome, GroupSurface, GroupPlanetary, GroupStyle}
}
