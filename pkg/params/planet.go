package params

import "math"

// Planet is the typed, read-only snapshot every evaluation function works
// from. It is a plain value: copying it freezes the parameters for a pass.
type Planet struct {
	Seed float64

	NoiseScale       float64
	Octaves          float64
	InitialAmplitude float64
	Lacunarity       float64
	Persistence      float64
	Strength         float64
	Erosion          float64
	Tectonics        float64
	Craters          float64

	WaterLevel        float64
	IceCaps           float64
	CloudCoverage     float64
	AtmosphereDensity float64

	Vegetation      float64
	Desert          float64
	Temperature     float64
	BiomeComplexity float64

	Roughness float64
	Emission  float64
	LavaFlows float64
	Haze      float64
	Crystals  float64
	AcidRain  float64

	Age           float64
	Size          float64
	RotationSpeed float64
	AxialTilt     float64
	Magnetic      float64

	Realism    float64
	Saturation float64
	Detail     float64

	WaterColor      RGB
	WaterDeepColor  RGB
	SandColor       RGB
	RockColor       RGB
	VegetationColor RGB
	SnowColor       RGB
	VolcanoColor    RGB
	AtmosphereTint  RGB
}

// Resolve validates v and reads it into a Planet.
func Resolve(v Vector) Planet {
	v = Validate(v)
	return Planet{
		Seed: v.Float(KeySeed),

		NoiseScale:       v.Float(KeyNoiseScale),
		Octaves:          v.Float(KeyOctaves),
		InitialAmplitude: v.Float(KeyInitialAmplitude),
		Lacunarity:       v.Float(KeyLacunarity),
		Persistence:      v.Float(KeyPersistence),
		Strength:         v.Float(KeyStrength),
		Erosion:          v.Float(KeyErosionFactor),
		Tectonics:        v.Float(KeyTectonicActivity),
		Craters:          v.Float(KeyCraterDensity),

		WaterLevel:        v.Float(KeyWaterLevel),
		IceCaps:           v.Float(KeyIceCapExtent),
		CloudCoverage:     v.Float(KeyCloudCoverage),
		AtmosphereDensity: v.Float(KeyAtmosphereDensity),

		Vegetation:      v.Float(KeyVegetationCoverage),
		Desert:          v.Float(KeyDesertification),
		Temperature:     v.Float(KeyTemperatureRange),
		BiomeComplexity: v.Float(KeyBiomeComplexity),

		Roughness: v.Float(KeySurfaceRoughness),
		Emission:  v.Float(KeySurfaceEmission),
		LavaFlows: v.Float(KeyLavaFlows),
		Haze:      v.Float(KeyOrganicHaze),
		Crystals:  v.Float(KeyCrystallineFormations),
		AcidRain:  v.Float(KeyAcidRain),

		Age:           v.Float(KeyAge),
		Size:          v.Float(KeySize),
		RotationSpeed: v.Float(KeyRotationSpeed),
		AxialTilt:     v.Float(KeyAxialTilt),
		Magnetic:      v.Float(KeyMagneticField),

		Realism:    v.Float(KeyRealism),
		Saturation: v.Float(KeyColorSaturation),
		Detail:     v.Float(KeyDetailLevel),

		WaterColor:      v.Color(KeyWaterColor),
		WaterDeepColor:  v.Color(KeyWaterDeepColor),
		SandColor:       v.Color(KeySandColor),
		RockColor:       v.Color(KeyRockColor),
		VegetationColor: v.Color(KeyVegetationColor),
		SnowColor:       v.Color(KeySnowColor),
		VolcanoColor:    v.Color(KeyVolcanoColor),
		AtmosphereTint:  v.Color(KeyAtmosphereTint),
	}
}

// OctaveCount truncates Octaves toward zero. Negative and NaN counts give 0.
func (p Planet) OctaveCount() int {
	if !(p.Octaves > 0) {
		return 0
	}
	return int(math.Trunc(p.Octaves))
}
