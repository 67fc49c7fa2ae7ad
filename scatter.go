package planetgen

import (
	"fmt"

	"github.com/akmonengine/planetgen/actor"
	"github.com/akmonengine/planetgen/mesh"
	"github.com/akmonengine/planetgen/navgraph"
	"github.com/akmonengine/planetgen/noise"
	"github.com/akmonengine/planetgen/poisson"
	"github.com/go-gl/mathgl/mgl64"
)

// ScatterOptions places one class of surface feature.
type ScatterOptions struct {
	Class   actor.Class
	Count   int // maximum number of features, 0 means no limit
	Poisson poisson.Config
	// NoiseFrequency of the density field thinning the samples. Zero
	// disables density shaping.
	NoiseFrequency float64
}

// Scatter spreads features over dry land. Poisson samples over the texture
// square are lifted to the sphere through the inverse UV projection, then
// snapped to the nearest passable terrain vertex above sea level. Two samples
// never share a vertex. The features become obstacles of the next
// BuildGraph.
func (p *Planet) Scatter(opts ScatterOptions) ([]*actor.Actor, error) {
	defer p.Events.flush()
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.generated {
		return nil, ErrNotGenerated
	}
	shell, ok := p.shells[Terrain]
	if !ok {
		return nil, ErrNoTerrain
	}

	var field poisson.DensityField
	if opts.NoiseFrequency > 0 {
		field = noise.NewDensity(p.Seed, opts.NoiseFrequency)
	}
	samples, err := poisson.Sample(opts.Poisson, p.rng, field)
	if err != nil {
		return nil, fmt.Errorf("scatter %s: %w", opts.Class, err)
	}

	index, err := navgraph.NewGraph(shell.Mesh.Positions(), shell.Costs)
	if err != nil {
		return nil, err
	}
	dryLand := func(n navgraph.GraphNode) bool {
		return n.Passable() && shell.Heights[n.ID] >= 0
	}

	used := make(map[int]bool)
	var placed []*actor.Actor
	for _, s := range samples {
		if opts.Count > 0 && len(placed) >= opts.Count {
			break
		}

		target := surfacePoint(s.Mul(1/opts.Poisson.RegionSize), p.Radius)
		id, err := index.NearestFunc(target, dryLand)
		if err != nil {
			// No dry land left
			break
		}
		// Duplicates of a seam vertex share its position
		origin := shell.Mesh.Origin[id]
		if used[origin] {
			continue
		}
		used[origin] = true

		node := index.Nodes[id]
		a := &actor.Actor{
			Transform: actor.SurfaceTransform(node.Position, node.Position.Len()),
			Class:     opts.Class,
		}
		a.ComputeAABB()
		placed = append(placed, a)
	}

	p.obstacles = append(p.obstacles, placed...)
	p.Events.emit(FeaturesScatteredEvent{Class: opts.Class, Placed: len(placed)})

	return placed, nil
}

// PopulateFeatures scatters the forests and mountains rolled from the preset.
func (p *Planet) PopulateFeatures(cfg poisson.Config, noiseFrequency float64) ([]*actor.Actor, error) {
	traits, err := p.Traits()
	if err != nil {
		return nil, err
	}
	if !traits.HasTerrain {
		return nil, ErrNoTerrain
	}

	var all []*actor.Actor
	for _, f := range []struct {
		class actor.Class
		count int
	}{
		{actor.ClassForest, traits.Forests},
		{actor.ClassMountain, traits.Mountains},
	} {
		if f.count == 0 {
			continue
		}
		placed, err := p.Scatter(ScatterOptions{
			Class:          f.class,
			Count:          f.count,
			Poisson:        cfg,
			NoiseFrequency: noiseFrequency,
		})
		if err != nil {
			return all, err
		}
		all = append(all, placed...)
	}
	return all, nil
}

// surfacePoint returns the terrain position under a texture coordinate.
func surfacePoint(uv mgl64.Vec2, radius float64) mgl64.Vec3 {
	return mesh.DirectionFromUV(uv).Mul(radius)
}
