package navgraph

import (
	"fmt"
	"math"

	"github.com/akmonengine/planetgen/actor"
	"github.com/akmonengine/planetgen/mesh"
)

// TerrainRule overrides the cost of every node whose normalized elevation is
// on the chosen side of Threshold.
type TerrainRule struct {
	Threshold float64 // normalized elevation in [0,1]
	Cost      int
	LessThan  bool // match elevation < Threshold instead of > Threshold
}

// Matches reports whether the rule applies at the given normalized elevation.
func (r TerrainRule) Matches(elevation float64) bool {
	if r.LessThan {
		return elevation < r.Threshold
	}
	return elevation > r.Threshold
}

// Options configures Build.
type Options struct {
	// Rules are applied in order; a later match overrides an earlier one.
	Rules []TerrainRule
	// Obstacles make every node inside their exclusion sphere impassable.
	Obstacles []*actor.Actor
	// Classes resolves the exclusion radius of obstacles without one.
	// Nil uses actor.DefaultClasses. The obstacles themselves are not
	// modified.
	Classes actor.Classes
	// WeldSeams links every seam or pole duplicate to the vertex it was
	// copied from, so the graph does not split along texture seams.
	WeldSeams bool
	// CellSize of the spatial index. Zero derives it from the mesh edges.
	CellSize float64
}

// Build creates one node per mesh vertex and links the corners of every
// triangle. costs holds one traversal cost per vertex and may be nil.
func Build(m *mesh.Mesh, costs []int, opts Options) (*Graph, error) {
	if m == nil || len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return nil, ErrGraphEmpty
	}
	if m.Origin != nil && len(m.Origin) != len(m.Vertices) {
		return nil, fmt.Errorf("%w: %d origins for %d vertices", ErrInvalidParameter, len(m.Origin), len(m.Vertices))
	}

	g, err := NewGraph(m.Positions(), costs)
	if err != nil {
		return nil, err
	}
	for i, n := range m.Normals() {
		g.Nodes[i].Normal = n
	}

	for _, t := range m.Triangles {
		for corner := range 3 {
			a := int(t[corner])
			b := int(t[(corner+1)%3])
			if err := g.Connect(a, b); err != nil {
				return nil, fmt.Errorf("triangle %v: %w", t, err)
			}
		}
	}

	if opts.WeldSeams && m.Origin != nil {
		for i, origin := range m.Origin {
			if origin != i {
				if err := g.Connect(i, origin); err != nil {
					return nil, err
				}
			}
		}
	}

	cellSize := opts.CellSize
	if cellSize <= 0 {
		cellSize = 2 * g.meanEdgeLength()
	}
	g.Index(cellSize)

	g.ApplyRules(opts.Rules)

	classes := opts.Classes
	if classes == nil {
		classes = actor.DefaultClasses()
	}
	g.Block(classes.Resolve(opts.Obstacles))

	return g, nil
}

func (g *Graph) meanEdgeLength() float64 {
	var total float64
	var count int
	for i := range g.Nodes {
		for _, nb := range g.Nodes[i].Neighbors {
			if nb > i {
				total += g.Nodes[i].Position.Sub(g.Nodes[nb].Position).Len()
				count++
			}
		}
	}
	if count == 0 || total == 0 {
		return 0.5
	}
	return total / float64(count)
}

// flatTolerance is the relative spread of node radii below which the
// surface counts as flat.
const flatTolerance = 1e-9

// ApplyRules sets node costs from the ordered rule list. Elevation is the
// distance to the planet centre normalized over the graph: 0 at the lowest
// node, 1 at the highest, 0 everywhere on a flat sphere.
func (g *Graph) ApplyRules(rules []TerrainRule) {
	if len(rules) == 0 {
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range g.Nodes {
		l := g.Nodes[i].Position.Len()
		lo = math.Min(lo, l)
		hi = math.Max(hi, l)
	}

	flat := hi-lo <= flatTolerance*hi
	for i := range g.Nodes {
		var elevation float64
		if !flat {
			elevation = (g.Nodes[i].Position.Len() - lo) / (hi - lo)
		}
		for _, r := range rules {
			if r.Matches(elevation) {
				g.Nodes[i].Cost = r.Cost
			}
		}
	}
}

// Block makes every node inside an obstacle's exclusion sphere impassable.
// It returns the number of obstacles that reached the graph.
func (g *Graph) Block(obstacles []*actor.Actor) int {
	touched := 0
	for _, a := range obstacles {
		if a.Radius <= 0 {
			continue
		}
		aabb := a.GetAABB()
		if !aabb.Overlaps(g.bounds) {
			continue
		}
		touched++
		g.grid.Query(a.Transform.Position, a.Radius, func(i int) {
			p := g.Nodes[i].Position
			if aabb.ContainsPoint(p) && a.Blocks(p) {
				g.Nodes[i].Cost = 0
			}
		})
	}
	return touched
}
