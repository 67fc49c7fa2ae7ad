package navgraph

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/s2"
)

// SearchOptions tunes the A* search.
type SearchOptions struct {
	// HeuristicScale multiplies the great-circle angle (radians) between a
	// node and the goal. Costs are integers per node while the angle is
	// well below 1 between neighbours, so any positive scale keeps the
	// search goal directed but it is not guaranteed admissible: a scale
	// large enough to matter can return a costlier path than the optimum.
	// Zero turns the search into Dijkstra.
	HeuristicScale float64
	// MaxExpansions stops the search with ErrSearchLimit after that many
	// nodes were closed. Zero means no limit.
	MaxExpansions int
}

// DefaultSearchOptions returns a unit heuristic scale and no expansion limit.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{HeuristicScale: 1}
}

// Path is an ordered list of node ids from start to end. Cost is the sum of
// the costs of every node left along the way, so the end node is not counted.
type Path struct {
	Nodes []int
	Cost  int
}

// Hops returns the number of edges walked.
func (p Path) Hops() int {
	return max(len(p.Nodes)-1, 0)
}

// Result is the outcome of a search. Closed lists, ascending, every node
// the search finalized; on failure it covers the region reachable from start.
type Result struct {
	Path     Path
	Closed   []int
	Expanded int
}

// FindPath runs Search with DefaultSearchOptions.
func (g *Graph) FindPath(start, end int) (Path, error) {
	res, err := g.Search(start, end, DefaultSearchOptions())
	return res.Path, err
}

// Search runs A* from start to end. The open set is ordered by f, then by
// the lowest node id, so equal inputs always return the same path. An
// impassable end is never entered, so the search fails after closing the
// whole region reachable from start.
func (g *Graph) Search(start, end int, opts SearchOptions) (Result, error) {
	if err := g.check(start); err != nil {
		return Result{}, err
	}
	if err := g.check(end); err != nil {
		return Result{}, err
	}
	if opts.HeuristicScale < 0 || opts.MaxExpansions < 0 {
		return Result{}, fmt.Errorf("%w: negative search option %+v", ErrInvalidParameter, opts)
	}
	if !g.Nodes[start].Passable() {
		return Result{}, fmt.Errorf("%w: start %d is impassable", ErrNoPathFound, start)
	}

	n := len(g.Nodes)
	goal := s2.PointFromCoords(g.Nodes[end].Position.X(), g.Nodes[end].Position.Y(), g.Nodes[end].Position.Z())
	heuristic := func(id int) float64 {
		if opts.HeuristicScale == 0 {
			return 0
		}
		p := g.Nodes[id].Position
		return s2.PointFromCoords(p.X(), p.Y(), p.Z()).Distance(goal).Radians() * opts.HeuristicScale
	}

	gScore := make([]float64, n)
	fScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		fScore[i] = math.Inf(1)
	}
	cameFrom := make([]int, n)
	closed := make([]bool, n)

	gScore[start] = 0
	fScore[start] = heuristic(start)
	open := &openSet{{id: start, f: fScore[start]}}

	var res Result
	for open.Len() > 0 {
		current := heap.Pop(open).(openEntry)
		if closed[current.id] || current.f > fScore[current.id] {
			continue // stale entry
		}
		closed[current.id] = true
		res.Expanded++

		if current.id == end {
			res.Path = g.reconstruct(cameFrom, start, end)
			res.Closed = collectClosed(closed)
			return res, nil
		}
		if opts.MaxExpansions > 0 && res.Expanded >= opts.MaxExpansions {
			res.Closed = collectClosed(closed)
			return res, fmt.Errorf("%w: %d expansions", ErrSearchLimit, res.Expanded)
		}

		node := &g.Nodes[current.id]
		tentative := gScore[current.id] + float64(node.Cost)
		for _, nb := range node.Neighbors {
			if !g.Nodes[nb].Passable() || closed[nb] {
				continue
			}
			if tentative >= gScore[nb] {
				continue
			}
			cameFrom[nb] = current.id
			gScore[nb] = tentative
			fScore[nb] = tentative + heuristic(nb)
			heap.Push(open, openEntry{id: nb, f: fScore[nb]})
		}
	}

	res.Closed = collectClosed(closed)
	return res, fmt.Errorf("%w: %d -> %d", ErrNoPathFound, start, end)
}

func (g *Graph) reconstruct(cameFrom []int, start, end int) Path {
	nodes := []int{end}
	for id := end; id != start; {
		id = cameFrom[id]
		nodes = append(nodes, id)
	}
	slices.Reverse(nodes)
	return Path{Nodes: nodes, Cost: g.pathCost(nodes)}
}

func (g *Graph) pathCost(nodes []int) int {
	var cost int
	for _, id := range nodes[:max(len(nodes)-1, 0)] {
		cost += g.Nodes[id].Cost
	}
	return cost
}

func collectClosed(closed []bool) []int {
	var ids []int
	for id, c := range closed {
		if c {
			ids = append(ids, id)
		}
	}
	return ids
}

type openEntry struct {
	id int
	f  float64
}

// openSet is a min-heap on (f, id).
type openSet []openEntry

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].id < o[j].id
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(openEntry)) }

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}
