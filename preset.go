package planetgen

import (
	"math/rand"

	"github.com/akmonengine/planetgen/colour"
	"github.com/akmonengine/planetgen/noise"
	"github.com/akmonengine/planetgen/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// ScalarRange is a uniform range rolled once per generation.
type ScalarRange struct {
	Start, End float64
}

// Fixed returns a range that always rolls v.
func Fixed(v float64) ScalarRange {
	return ScalarRange{Start: v, End: v}
}

func (r ScalarRange) Value(rng *rand.Rand) float64 {
	return r.Start + rng.Float64()*(r.End-r.Start)
}

// VectorRange rolls each component independently.
type VectorRange struct {
	Start, End mgl64.Vec3
}

// FixedVector returns a range that always rolls v.
func FixedVector(v mgl64.Vec3) VectorRange {
	return VectorRange{Start: v, End: v}
}

func (r VectorRange) Value(rng *rand.Rand) mgl64.Vec3 {
	var v mgl64.Vec3
	for i := range 3 {
		v[i] = ScalarRange{Start: r.Start[i], End: r.End[i]}.Value(rng)
	}
	return v
}

// BoolRange is either a fixed switch or a coin flip.
type BoolRange struct {
	Enabled bool
	Random  bool
}

var (
	MakeRandom   = BoolRange{Enabled: true, Random: true}
	MakeEnabled  = BoolRange{Enabled: true}
	MakeDisabled = BoolRange{}
)

func (r BoolRange) Value(rng *rand.Rand) bool {
	if r.Random {
		return rng.Intn(2) == 1
	}
	return r.Enabled
}

// NoiseRanges bound the terrain height field parameters.
type NoiseRanges struct {
	Scale           ScalarRange
	Height          ScalarRange
	Persistence     ScalarRange
	OceanDepth      ScalarRange
	GenerateHeights bool
}

// LandFeatures holds the surface colours and feature counts. Land colours
// are RGB, WaterColour is HSL.
type LandFeatures struct {
	BeachColour    VectorRange
	LandColour     VectorRange
	MountainColour VectorRange
	WaterColour    VectorRange
	NumForests     ScalarRange
	NumMountains   ScalarRange
}

// Preset describes a family of planets.
type Preset struct {
	Name             string
	HasTerrain       BoolRange
	HasWater         BoolRange
	HasAtmosphere    BoolRange
	TerrainNoise     NoiseRanges
	LandFeatures     LandFeatures
	AtmosphereColour VectorRange
}

// RockyPreset is an earth like planet with oceans and an atmosphere.
func RockyPreset() Preset {
	return Preset{
		Name:             "Rocky",
		HasTerrain:       MakeEnabled,
		HasWater:         MakeEnabled,
		HasAtmosphere:    MakeEnabled,
		AtmosphereColour: VectorRange{Start: mgl64.Vec3{0, 0, 0}, End: mgl64.Vec3{1, 1, 1}},
		TerrainNoise: NoiseRanges{
			Scale:           ScalarRange{0.5, 4},
			Height:          ScalarRange{10, 70},
			Persistence:     ScalarRange{0.2, 0.4},
			OceanDepth:      ScalarRange{2, 7},
			GenerateHeights: true,
		},
		LandFeatures: LandFeatures{
			BeachColour:    FixedVector(mgl64.Vec3{0.88, 0.31, 0.10}),
			LandColour:     FixedVector(mgl64.Vec3{0.01, 0.16, 0.00}),
			MountainColour: FixedVector(mgl64.Vec3{0.01, 0.10, 0.10}),
			WaterColour:    VectorRange{Start: mgl64.Vec3{0, 100, 60}, End: mgl64.Vec3{360, 100, 60}},
			NumForests:     ScalarRange{0, 20},
			NumMountains:   ScalarRange{0, 12},
		},
	}
}

// BarrenPreset is a dry, airless rock.
func BarrenPreset() Preset {
	return Preset{
		Name:             "Barren",
		HasTerrain:       MakeEnabled,
		HasWater:         MakeDisabled,
		HasAtmosphere:    MakeRandom,
		AtmosphereColour: VectorRange{Start: mgl64.Vec3{0.5, 0.3, 0.2}, End: mgl64.Vec3{0.9, 0.6, 0.4}},
		TerrainNoise: NoiseRanges{
			Scale:           ScalarRange{1, 6},
			Height:          ScalarRange{20, 90},
			Persistence:     ScalarRange{0.3, 0.5},
			OceanDepth:      Fixed(1),
			GenerateHeights: true,
		},
		LandFeatures: LandFeatures{
			BeachColour:    FixedVector(mgl64.Vec3{0.45, 0.40, 0.35}),
			LandColour:     FixedVector(mgl64.Vec3{0.55, 0.50, 0.45}),
			MountainColour: FixedVector(mgl64.Vec3{0.30, 0.28, 0.26}),
			NumMountains:   ScalarRange{4, 24},
		},
	}
}

// Presets returns the built in presets by name.
func Presets() map[string]Preset {
	return map[string]Preset{
		"Rocky":  RockyPreset(),
		"Barren": BarrenPreset(),
	}
}

// Palette holds the rolled shell colours, all in RGB.
type Palette struct {
	Beach      mgl64.Vec3
	Land       mgl64.Vec3
	Mountain   mgl64.Vec3
	Water      colour.Water
	Atmosphere mgl64.Vec3
}

// Traits are the concrete values rolled from a preset for one planet.
type Traits struct {
	HasTerrain    bool
	HasWater      bool
	HasAtmosphere bool

	GenerateHeights bool
	Terrain         terrain.Params
	Palette         Palette

	Forests   int
	Mountains int
}

// Roll draws the planet traits. The same preset and seed always give the
// same traits.
func (pr Preset) Roll(seed int64) Traits {
	rng := rand.New(rand.NewSource(seed))
	var t Traits

	if t.HasTerrain = pr.HasTerrain.Value(rng); t.HasTerrain {
		t.GenerateHeights = pr.TerrainNoise.GenerateHeights
		t.Terrain = terrain.Params{
			Scale:       pr.TerrainNoise.Scale.Value(rng),
			Height:      pr.TerrainNoise.Height.Value(rng),
			Persistence: pr.TerrainNoise.Persistence.Value(rng),
			OceanDepth:  pr.TerrainNoise.OceanDepth.Value(rng),
			Octaves:     noise.DefaultOctaves,
			Seed:        seed,
		}
		t.Palette.Beach = pr.LandFeatures.BeachColour.Value(rng)
		t.Palette.Land = pr.LandFeatures.LandColour.Value(rng)
		t.Palette.Mountain = pr.LandFeatures.MountainColour.Value(rng)
	}

	if t.HasWater = pr.HasWater.Value(rng); t.HasWater {
		t.Palette.Water = colour.WaterPalette(pr.LandFeatures.WaterColour.Value(rng))
	}

	if t.HasAtmosphere = pr.HasAtmosphere.Value(rng); t.HasAtmosphere {
		t.Palette.Atmosphere = pr.AtmosphereColour.Value(rng)
	}

	if t.HasTerrain {
		t.Forests = int(pr.LandFeatures.NumForests.Value(rng))
		t.Mountains = int(pr.LandFeatures.NumMountains.Value(rng))
	}

	return t
}
