// Package navgraph turns a planet mesh into a cost weighted navigation graph
// and searches it.
//
// Nodes live in a single arena slice and refer to each other by index. A node
// with a cost <= 0 is impassable. The graph is read-only once built, so any
// number of searches may run concurrently against it.
package navgraph

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/planetgen/actor"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidParameter = errors.New("navgraph: invalid parameter")
	ErrGraphEmpty       = errors.New("navgraph: graph is empty")
	ErrNoPathFound      = errors.New("navgraph: no path found")
	ErrSearchLimit      = errors.New("navgraph: search expansion limit reached")
	ErrNoMatch          = errors.New("navgraph: no matching node")
)

// BaselineCost is the cost given to nodes when no cost buffer is supplied.
const BaselineCost = 1

// GraphNode is one walkable point of the planet surface, one per mesh vertex.
type GraphNode struct {
	ID        int
	Position  mgl64.Vec3
	Normal    mgl64.Vec3
	Cost      int
	Neighbors []int // sorted, no duplicates
}

// Passable reports whether a path may go through the node.
func (n GraphNode) Passable() bool {
	return n.Cost > 0
}

// Graph is an arena of nodes plus a spatial index over their positions.
type Graph struct {
	Nodes []GraphNode

	grid      *SpatialGrid
	bounds    actor.AABB
	maxRadius float64
}

// NewGraph creates one unconnected node per position. costs may be nil, in
// which case every node gets BaselineCost.
func NewGraph(positions []mgl64.Vec3, costs []int) (*Graph, error) {
	if len(positions) == 0 {
		return nil, ErrGraphEmpty
	}
	if costs != nil && len(costs) != len(positions) {
		return nil, fmt.Errorf("%w: %d costs for %d nodes", ErrInvalidParameter, len(costs), len(positions))
	}

	g := &Graph{Nodes: make([]GraphNode, len(positions))}
	for i, p := range positions {
		cost := BaselineCost
		if costs != nil {
			cost = costs[i]
		}
		var normal mgl64.Vec3
		if l := p.Len(); l > 0 {
			normal = p.Mul(1 / l)
			g.maxRadius = math.Max(g.maxRadius, l)
		}
		g.Nodes[i] = GraphNode{ID: i, Position: p, Normal: normal, Cost: cost}
	}
	g.bounds = boundsOf(positions)
	g.Index(defaultCellSize(g.bounds, len(positions)))

	return g, nil
}

func boundsOf(positions []mgl64.Vec3) actor.AABB {
	box := actor.PointAABB(positions[0])
	for _, p := range positions[1:] {
		for k := range 3 {
			box.Min[k] = math.Min(box.Min[k], p[k])
			box.Max[k] = math.Max(box.Max[k], p[k])
		}
	}
	return box
}

// defaultCellSize spreads the bounding box over roughly one cell per node
// along each axis.
func defaultCellSize(bounds actor.AABB, n int) float64 {
	extent := bounds.Max.Sub(bounds.Min)
	side := math.Max(extent.X(), math.Max(extent.Y(), extent.Z()))
	if side <= 0 {
		return 1
	}
	return side / math.Cbrt(float64(n))
}

// Bounds returns the box enclosing every node.
func (g *Graph) Bounds() actor.AABB {
	return g.bounds
}

// Index rebuilds the spatial index with the given cell size. The bucket
// table is reused when the node count allows it.
func (g *Graph) Index(cellSize float64) {
	if g.grid != nil && len(g.grid.cells) == nextPowerOfTwo(len(g.Nodes)) && cellSize > 0 {
		g.grid.Clear()
		g.grid.cellSize = cellSize
	} else {
		g.grid = NewSpatialGrid(cellSize, len(g.Nodes))
	}
	for i := range g.Nodes {
		g.grid.Insert(i, g.Nodes[i].Position)
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Node returns a copy of node id.
func (g *Graph) Node(id int) (GraphNode, error) {
	if err := g.check(id); err != nil {
		return GraphNode{}, err
	}
	return g.Nodes[id], nil
}

func (g *Graph) check(id int) error {
	if g == nil || len(g.Nodes) == 0 {
		return ErrGraphEmpty
	}
	if id < 0 || id >= len(g.Nodes) {
		return fmt.Errorf("%w: node %d out of range [0,%d)", ErrInvalidParameter, id, len(g.Nodes))
	}
	return nil
}

// Connect links a and b in both directions. Self links are ignored.
func (g *Graph) Connect(a, b int) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	g.Nodes[a].Neighbors = insertSorted(g.Nodes[a].Neighbors, b)
	g.Nodes[b].Neighbors = insertSorted(g.Nodes[b].Neighbors, a)
	return nil
}

func insertSorted(ids []int, id int) []int {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(ids, i, id)
}

// NodesWithin returns the ids of every node within dist of pos, ascending.
func (g *Graph) NodesWithin(pos mgl64.Vec3, dist float64) []int {
	if g == nil || g.grid == nil || dist < 0 {
		return nil
	}

	var ids []int
	g.grid.Query(pos, dist, func(i int) {
		if g.Nodes[i].Position.Sub(pos).LenSqr() <= dist*dist {
			ids = append(ids, i)
		}
	})
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Nearest returns the node closest to pos. Ties go to the lowest id.
func (g *Graph) Nearest(pos mgl64.Vec3) (int, error) {
	return g.NearestFunc(pos, nil)
}

// NearestFunc returns the node closest to pos among those accepted by keep.
// A nil keep accepts every node.
func (g *Graph) NearestFunc(pos mgl64.Vec3, keep func(GraphNode) bool) (int, error) {
	if g == nil || len(g.Nodes) == 0 {
		return -1, ErrGraphEmpty
	}

	limit := 2 * (g.maxRadius + pos.Len())
	for r := g.grid.cellSize; r <= limit; r *= 2 {
		if id := g.closest(pos, g.NodesWithin(pos, r), keep); id >= 0 {
			return id, nil
		}
	}

	all := make([]int, len(g.Nodes))
	for i := range all {
		all[i] = i
	}
	if id := g.closest(pos, all, keep); id >= 0 {
		return id, nil
	}
	return -1, fmt.Errorf("%w near %v", ErrNoMatch, pos)
}

func (g *Graph) closest(pos mgl64.Vec3, ids []int, keep func(GraphNode) bool) int {
	best, bestDist := -1, math.Inf(1)
	for _, id := range ids {
		if keep != nil && !keep(g.Nodes[id]) {
			continue
		}
		if d := g.Nodes[id].Position.Sub(pos).LenSqr(); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}
