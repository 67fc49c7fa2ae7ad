// Package terrain raises a sphere mesh into a planet surface and derives the
// per vertex traversal cost used by the navigation graph.
package terrain

import (
	"errors"
	"fmt"

	"github.com/akmonengine/planetgen/mesh"
	"github.com/akmonengine/planetgen/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is returned for out of range noise parameters.
var ErrInvalidParameter = errors.New("terrain: invalid parameter")

const (
	// BaselineCost is the cost of walking over dry land.
	BaselineCost = 1
	// WaterCost is the cost of a vertex below sea level.
	WaterCost = 4
)

// Params configures the height field.
type Params struct {
	Scale       float64 // frequency of the first octave, on the unit sphere
	Height      float64 // amplitude of the first octave, in world units
	Persistence float64 // amplitude multiplier per octave
	OceanDepth  float64 // multiplier applied to negative heights
	Octaves     int     // 0 means noise.DefaultOctaves
	Seed        int64
}

// DefaultParams returns the mid range of the rocky planet preset.
func DefaultParams() Params {
	return Params{
		Scale:       2,
		Height:      40,
		Persistence: 0.3,
		OceanDepth:  4,
		Octaves:     noise.DefaultOctaves,
	}
}

// Validate checks the parameters before any vertex is touched.
func (p Params) Validate() error {
	switch {
	case p.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidParameter, p.Scale)
	case p.Height < 0:
		return fmt.Errorf("%w: height must not be negative, got %v", ErrInvalidParameter, p.Height)
	case p.Persistence < 0:
		return fmt.Errorf("%w: persistence must not be negative, got %v", ErrInvalidParameter, p.Persistence)
	case p.OceanDepth < 0:
		return fmt.Errorf("%w: ocean depth must not be negative, got %v", ErrInvalidParameter, p.OceanDepth)
	case p.Octaves < 0:
		return fmt.Errorf("%w: negative octave count %d", ErrInvalidParameter, p.Octaves)
	}
	return nil
}

// Displacer moves vertices along their normal by a fractal noise height.
type Displacer struct {
	Params Params
	field  *noise.Fractal
}

// NewDisplacer validates p and seeds the noise field.
func NewDisplacer(p Params) (*Displacer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Octaves == 0 {
		p.Octaves = noise.DefaultOctaves
	}

	return &Displacer{
		Params: p,
		field:  noise.NewFractal(p.Seed, p.Octaves, p.Scale, p.Height, p.Persistence),
	}, nil
}

// Height returns the elevation for a unit normal. Depressions are deepened
// by OceanDepth.
func (d *Displacer) Height(normal mgl64.Vec3) float64 {
	h := d.field.Eval3(normal)
	if h < 0 {
		h *= d.Params.OceanDepth
	}
	return h
}

// ApplyRange displaces the vertices in [start, end) and fills heights and
// costs for them. Disjoint ranges may run concurrently.
func (d *Displacer) ApplyRange(m *mesh.Mesh, heights []float64, costs []int, start, end int) {
	for i := start; i < end; i++ {
		v := &m.Vertices[i]
		h := d.Height(v.Normal)
		v.Position = v.Position.Add(v.Normal.Mul(h))
		heights[i] = h
		costs[i] = Classify(h)
	}
}

// Result holds the per vertex buffers produced by a displacement.
type Result struct {
	Heights []float64
	Costs   []int
}

// Displace applies the height field to every vertex of m.
func Displace(m *mesh.Mesh, p Params) (Result, error) {
	d, err := NewDisplacer(p)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Heights: make([]float64, len(m.Vertices)),
		Costs:   make([]int, len(m.Vertices)),
	}
	d.ApplyRange(m, res.Heights, res.Costs, 0, len(m.Vertices))

	return res, nil
}

// Classify maps a height to a traversal cost.
func Classify(height float64) int {
	if height < 0 {
		return WaterCost
	}
	return BaselineCost
}

// FlatCosts returns n baseline costs, used when heights are disabled.
func FlatCosts(n int) []int {
	costs := make([]int, n)
	for i := range costs {
		costs[i] = BaselineCost
	}
	return costs
}
