// Package poisson scatters blue noise points over a square region with
// Bridson's algorithm, then thins them to a disc and by a density field.
package poisson

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is returned for a non-positive radius or region size.
var ErrInvalidParameter = errors.New("poisson: invalid parameter")

// DefaultMaxAttempts is the number of candidates tried around an active point
// before it is retired.
const DefaultMaxAttempts = 30

// Config configures a sampling run.
type Config struct {
	Radius         float64 // minimum distance between two points
	RegionSize     float64 // side of the square region [0, RegionSize)²
	MaxAttempts    int     // 0 means DefaultMaxAttempts
	NoiseThreshold float64 // points whose density sample is above are dropped
}

// DefaultConfig returns a config for the given disc radius and region.
func DefaultConfig(radius, regionSize float64) Config {
	return Config{
		Radius:         radius,
		RegionSize:     regionSize,
		MaxAttempts:    DefaultMaxAttempts,
		NoiseThreshold: 1,
	}
}

// Validate checks the config before sampling.
func (c Config) Validate() error {
	switch {
	case c.Radius <= 0 || math.IsNaN(c.Radius):
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidParameter, c.Radius)
	case c.RegionSize <= 0 || math.IsNaN(c.RegionSize):
		return fmt.Errorf("%w: region size must be positive, got %v", ErrInvalidParameter, c.RegionSize)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: negative attempt count %d", ErrInvalidParameter, c.MaxAttempts)
	}
	return nil
}

// DensityField is sampled at every surviving point; noise.Density satisfies it.
type DensityField interface {
	Eval2(x, y float64) float64
}

// Sample runs Bridson over the square region then keeps the points inside the
// inscribed disc whose density is at most cfg.NoiseThreshold. A nil field
// skips the density test.
func Sample(cfg Config, rng *rand.Rand, field DensityField) ([]mgl64.Vec2, error) {
	points, err := Bridson(cfg, rng)
	if err != nil {
		return nil, err
	}
	return Filter(points, cfg, field), nil
}

// Bridson fills [0, RegionSize)² with points at least Radius apart, starting
// from the centre of the region. The centre is the first point returned.
func Bridson(cfg Config, rng *rand.Rand) ([]mgl64.Vec2, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}

	grid := NewSampleGrid(cfg.RegionSize, cfg.Radius/math.Sqrt2)
	centre := mgl64.Vec2{cfg.RegionSize / 2, cfg.RegionSize / 2}

	points := []mgl64.Vec2{centre}
	active := []int{0}
	grid.Set(centre, 0)

	for len(active) > 0 {
		ai := rng.Intn(len(active))
		spawn := points[active[ai]]

		accepted := false
		for range attempts {
			angle := rng.Float64() * 2 * math.Pi
			dist := cfg.Radius + rng.Float64()*cfg.Radius
			candidate := spawn.Add(mgl64.Vec2{math.Sin(angle), math.Cos(angle)}.Mul(dist))

			if grid.Accepts(candidate, points, cfg.Radius) {
				grid.Set(candidate, len(points))
				active = append(active, len(points))
				points = append(points, candidate)
				accepted = true
				break
			}
		}

		if !accepted {
			// Swap remove, order of the active list does not matter
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	return points, nil
}

// Filter drops the points farther than RegionSize/2 from the centre of the
// region, then those whose density sample exceeds NoiseThreshold. Order is
// preserved.
func Filter(points []mgl64.Vec2, cfg Config, field DensityField) []mgl64.Vec2 {
	centre := mgl64.Vec2{cfg.RegionSize / 2, cfg.RegionSize / 2}
	maxDist := cfg.RegionSize / 2

	kept := make([]mgl64.Vec2, 0, len(points))
	for _, p := range points {
		if p.Sub(centre).LenSqr() > maxDist*maxDist {
			continue
		}
		if field != nil && field.Eval2(p.X(), p.Y()) > cfg.NoiseThreshold {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
