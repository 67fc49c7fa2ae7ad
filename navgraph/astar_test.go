package navgraph

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/akmonengine/planetgen/mesh"
	"github.com/akmonengine/planetgen/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSearchLineGraph(t *testing.T) {
	for _, n := range []int{1, 2, 5, 40} {
		g := lineGraph(t, n)
		res, err := g.Search(0, n-1, SearchOptions{})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if res.Path.Hops() != n-1 {
			t.Errorf("n=%d: %d hops, want %d", n, res.Path.Hops(), n-1)
		}
		if res.Path.Cost != n-1 {
			t.Errorf("n=%d: cost %d, want %d", n, res.Path.Cost, n-1)
		}
		if res.Path.Nodes[0] != 0 || res.Path.Nodes[len(res.Path.Nodes)-1] != n-1 {
			t.Errorf("n=%d: path %v does not run start to end", n, res.Path.Nodes)
		}
	}
}

func TestSearchGrid2x2(t *testing.T) {
	// 0 - 1
	// |   |
	// 2 - 3
	g, err := NewGraph([]mgl64.Vec3{
		{-1, 1, 10},
		{1, 1, 10},
		{-1, -1, 10},
		{1, -1, 10},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}} {
		if err := g.Connect(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}

	path, err := g.FindPath(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if path.Hops() != 2 || path.Cost != 2 {
		t.Errorf("path = %+v, want 2 hops at cost 2", path)
	}

	// 1 and 2 tie; the lowest id is expanded first
	res, err := g.Search(0, 3, SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 3}; !slices.Equal(res.Path.Nodes, want) {
		t.Errorf("path = %v, want %v", res.Path.Nodes, want)
	}
}

func TestSearchSameNode(t *testing.T) {
	g := lineGraph(t, 3)
	path, err := g.FindPath(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(path.Nodes, []int{1}) || path.Cost != 0 {
		t.Errorf("path = %+v, want [1] at cost 0", path)
	}
}

func TestSearchDisconnected(t *testing.T) {
	g := lineGraph(t, 6)
	g.Nodes[3].Cost = 0

	res, err := g.Search(0, 5, DefaultSearchOptions())
	if !errors.Is(err, ErrNoPathFound) {
		t.Fatalf("Search = %v, want ErrNoPathFound", err)
	}
	if want := []int{0, 1, 2}; !slices.Equal(res.Closed, want) {
		t.Errorf("closed = %v, want %v", res.Closed, want)
	}
	if len(res.Path.Nodes) != 0 {
		t.Errorf("path = %v, want empty", res.Path.Nodes)
	}
}

func TestSearchImpassableEnds(t *testing.T) {
	g := lineGraph(t, 4)
	g.Nodes[0].Cost = 0
	if _, err := g.FindPath(0, 3); !errors.Is(err, ErrNoPathFound) {
		t.Errorf("impassable start = %v, want ErrNoPathFound", err)
	}
	res, err := g.Search(3, 0, DefaultSearchOptions())
	if !errors.Is(err, ErrNoPathFound) {
		t.Errorf("impassable end = %v, want ErrNoPathFound", err)
	}
	if want := []int{1, 2, 3}; !slices.Equal(res.Closed, want) {
		t.Errorf("impassable end closed = %v, want the reachable region %v", res.Closed, want)
	}
}

func TestSearchInvalid(t *testing.T) {
	g := lineGraph(t, 4)

	tests := []struct {
		name       string
		start, end int
		opts       SearchOptions
		wantErr    error
	}{
		{"start out of range", -1, 2, DefaultSearchOptions(), ErrInvalidParameter},
		{"end out of range", 0, 4, DefaultSearchOptions(), ErrInvalidParameter},
		{"negative scale", 0, 3, SearchOptions{HeuristicScale: -1}, ErrInvalidParameter},
		{"negative limit", 0, 3, SearchOptions{MaxExpansions: -1}, ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Search(tt.start, tt.end, tt.opts); !errors.Is(err, tt.wantErr) {
				t.Errorf("Search = %v, want %v", err, tt.wantErr)
			}
		})
	}

	var empty *Graph
	if _, err := empty.FindPath(0, 0); !errors.Is(err, ErrGraphEmpty) {
		t.Errorf("nil graph = %v, want ErrGraphEmpty", err)
	}
}

func TestSearchLimit(t *testing.T) {
	g := lineGraph(t, 20)
	res, err := g.Search(0, 19, SearchOptions{HeuristicScale: 1, MaxExpansions: 3})
	if !errors.Is(err, ErrSearchLimit) {
		t.Fatalf("Search = %v, want ErrSearchLimit", err)
	}
	if res.Expanded != 3 || len(res.Closed) != 3 {
		t.Errorf("expanded %d, closed %v, want 3", res.Expanded, res.Closed)
	}
}

// displacedSphere builds a terrain mesh with water costs and a few rules so
// that costs vary across the graph.
func displacedSphere(t testing.TB, depth int) *Graph {
	t.Helper()
	m, err := mesh.NewSphere(1000, depth)
	if err != nil {
		t.Fatal(err)
	}
	p := terrain.DefaultParams()
	p.Seed = 2024
	res, err := terrain.Displace(m, p)
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(m, res.Costs, Options{
		WeldSeams: true,
		Rules: []TerrainRule{
			{Threshold: 0.8, Cost: 3},
			{Threshold: 0.95, Cost: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSearchAgainstExact(t *testing.T) {
	g := displacedSphere(t, 3)
	rng := rand.New(rand.NewSource(1))

	for range 40 {
		start, end := rng.Intn(g.Len()), rng.Intn(g.Len())

		exact, exactErr := g.ShortestPath(start, end)
		for _, opts := range []SearchOptions{{}, DefaultSearchOptions(), {HeuristicScale: 50}} {
			res, err := g.Search(start, end, opts)
			if errors.Is(exactErr, ErrNoPathFound) {
				if !errors.Is(err, ErrNoPathFound) {
					t.Fatalf("%d -> %d: exact found no path, search returned %v", start, end, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("%d -> %d: %v", start, end, err)
			}

			if res.Path.Cost < exact.Cost {
				t.Fatalf("%d -> %d scale %v: cost %d below exact %d", start, end, opts.HeuristicScale, res.Path.Cost, exact.Cost)
			}
			if opts.HeuristicScale == 0 && res.Path.Cost != exact.Cost {
				t.Fatalf("%d -> %d: Dijkstra cost %d, exact %d", start, end, res.Path.Cost, exact.Cost)
			}
			for _, id := range res.Path.Nodes {
				if !g.Nodes[id].Passable() {
					t.Fatalf("%d -> %d: path crosses impassable node %d", start, end, id)
				}
			}
			for i := 1; i < len(res.Path.Nodes); i++ {
				if !slices.Contains(g.Nodes[res.Path.Nodes[i-1]].Neighbors, res.Path.Nodes[i]) {
					t.Fatalf("%d -> %d: %d and %d are not neighbors", start, end, res.Path.Nodes[i-1], res.Path.Nodes[i])
				}
			}
		}
	}
}

func TestShortestPathOrder(t *testing.T) {
	g := lineGraph(t, 5)
	path, err := g.ShortestPath(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(path.Nodes, want) {
		t.Errorf("path = %v, want %v", path.Nodes, want)
	}
	if path.Cost != 4 {
		t.Errorf("cost = %d, want 4", path.Cost)
	}
}

func TestSearchDeterministic(t *testing.T) {
	g := displacedSphere(t, 3)
	first, err := g.FindPath(0, g.Len()/2)
	if err != nil {
		t.Skip("no path on this seed")
	}
	for range 5 {
		again, err := g.FindPath(0, g.Len()/2)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(first.Nodes, again.Nodes) {
			t.Fatalf("path changed between runs: %v vs %v", first.Nodes, again.Nodes)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	g := displacedSphere(b, 5)
	rng := rand.New(rand.NewSource(3))
	pairs := make([][2]int, 64)
	for i := range pairs {
		pairs[i] = [2]int{rng.Intn(g.Len()), rng.Intn(g.Len())}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := pairs[i%len(pairs)]
		_, _ = g.FindPath(p[0], p[1])
	}
}

func BenchmarkShortestPath(b *testing.B) {
	g := displacedSphere(b, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.ShortestPath(0, g.Len()-1)
	}
}
