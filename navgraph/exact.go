package navgraph

import (
	"fmt"
	"slices"

	goastar "github.com/beefsack/go-astar"
)

// exactTile adapts a graph node to goastar.Pather for one search.
type exactTile struct {
	tiles []exactTile
	graph *Graph
	id    int
}

// PathNeighbors returns the passable neighbours of the tile.
func (t *exactTile) PathNeighbors() []goastar.Pather {
	nbs := make([]goastar.Pather, 0, len(t.graph.Nodes[t.id].Neighbors))
	for _, nb := range t.graph.Nodes[t.id].Neighbors {
		if t.graph.Nodes[nb].Passable() {
			nbs = append(nbs, &t.tiles[nb])
		}
	}
	return nbs
}

// PathNeighborCost charges the cost of the node being left.
func (t *exactTile) PathNeighborCost(to goastar.Pather) float64 {
	return float64(t.graph.Nodes[t.id].Cost)
}

// PathEstimatedCost is zero, which makes the search an exact Dijkstra.
func (t *exactTile) PathEstimatedCost(to goastar.Pather) float64 {
	return 0
}

// ShortestPath returns a minimum cost path using the go-astar solver with a
// zero heuristic. It is slower than Search and serves as a reference for the
// heuristic search.
func (g *Graph) ShortestPath(start, end int) (Path, error) {
	if err := g.check(start); err != nil {
		return Path{}, err
	}
	if err := g.check(end); err != nil {
		return Path{}, err
	}
	if !g.Nodes[start].Passable() || !g.Nodes[end].Passable() {
		return Path{}, fmt.Errorf("%w: %d -> %d has an impassable end", ErrNoPathFound, start, end)
	}

	tiles := make([]exactTile, len(g.Nodes))
	for i := range tiles {
		tiles[i] = exactTile{tiles: tiles, graph: g, id: i}
	}

	path, _, found := goastar.Path(&tiles[start], &tiles[end])
	if !found {
		return Path{}, fmt.Errorf("%w: %d -> %d", ErrNoPathFound, start, end)
	}

	// go-astar walks back from the goal
	nodes := make([]int, len(path))
	for i, p := range path {
		nodes[i] = p.(*exactTile).id
	}
	slices.Reverse(nodes)

	return Path{Nodes: nodes, Cost: g.pathCost(nodes)}, nil
}
