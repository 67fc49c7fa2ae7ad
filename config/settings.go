// Package config loads generation settings from a JSON file layered over
// defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/akmonengine/planetgen/mesh"
)

type Settings struct {
	Planet  PlanetSettings  `json:"planet"`
	Scatter ScatterSettings `json:"scatter"`
	Graph   GraphSettings   `json:"graph"`
	Preview PreviewSettings `json:"preview"`
}

type PlanetSettings struct {
	Preset  string  `json:"preset"`
	Radius  float64 `json:"radius"`
	Depth   int     `json:"depth"`
	Seed    int64   `json:"seed"`
	Workers int     `json:"workers"`
}

type ScatterSettings struct {
	DiscRadius     float64 `json:"discRadius"`
	RegionSize     float64 `json:"regionSize"`
	MaxAttempts    int     `json:"maxAttempts"`
	NoiseThreshold float64 `json:"noiseThreshold"`
	NoiseFrequency float64 `json:"noiseFrequency"`
}

type GraphSettings struct {
	WeldSeams      bool    `json:"weldSeams"`
	HeuristicScale float64 `json:"heuristicScale"`
	MaxExpansions  int     `json:"maxExpansions"`
}

type PreviewSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Output string `json:"output"`
}

// Default returns the settings used when no file overrides them.
func Default() Settings {
	return Settings{
		Planet: PlanetSettings{
			Preset:  "Rocky",
			Radius:  3000,
			Depth:   5,
			Seed:    1,
			Workers: 1,
		},
		Scatter: ScatterSettings{
			DiscRadius:     20,
			RegionSize:     1000,
			MaxAttempts:    30,
			NoiseThreshold: 0.2,
			NoiseFrequency: 0.005,
		},
		Graph: GraphSettings{
			WeldSeams:      true,
			HeuristicScale: 1,
		},
		Preview: PreviewSettings{
			Width:  1024,
			Height: 512,
			Output: "planet.png",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned and loaded is false.
func Load(path string) (settings Settings, loaded bool, err error) {
	settings = Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, false, nil
		}
		return settings, false, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return Default(), false, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return Default(), false, fmt.Errorf("%s: %w", path, err)
	}

	return settings, true, nil
}

// Validate rejects settings no generator would accept.
func (s Settings) Validate() error {
	switch {
	case s.Planet.Radius <= 0:
		return fmt.Errorf("planet radius must be positive, got %v", s.Planet.Radius)
	case s.Planet.Depth < 0 || s.Planet.Depth > mesh.MaxDepth:
		return fmt.Errorf("planet depth must be in [0,%d], got %d", mesh.MaxDepth, s.Planet.Depth)
	case s.Planet.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", s.Planet.Workers)
	case s.Preview.Width <= 0 || s.Preview.Height <= 0:
		return fmt.Errorf("preview size must be positive, got %dx%d", s.Preview.Width, s.Preview.Height)
	}
	return nil
}

// Save writes the settings as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
