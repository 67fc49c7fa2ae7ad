// Package planetgen generates planets: a displaced terrain sphere with water
// and atmosphere shells, a navigation graph over the terrain, and scattered
// surface features.
//
// A Planet is the generation context. Generate replaces every shell, the
// graph and the features at once; queries may run concurrently with each
// other but wait for a running regeneration.
package planetgen

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/akmonengine/planetgen/actor"
	"github.com/akmonengine/planetgen/mesh"
	"github.com/akmonengine/planetgen/navgraph"
	"github.com/akmonengine/planetgen/terrain"
)

const DEFAULT_WORKERS = 1

// AtmosphereScale is the atmosphere radius relative to the planet radius.
const AtmosphereScale = 1.08

var (
	ErrNotGenerated = errors.New("planetgen: planet not generated")
	ErrNoTerrain    = errors.New("planetgen: planet has no terrain")
)

type ShellKind uint8

const (
	Terrain ShellKind = iota
	Water
	Atmosphere
)

func (k ShellKind) String() string {
	switch k {
	case Terrain:
		return "terrain"
	case Water:
		return "water"
	case Atmosphere:
		return "atmosphere"
	}
	return fmt.Sprintf("ShellKind(%d)", uint8(k))
}

// Shell is one renderable sphere of the planet.
type Shell struct {
	Kind       ShellKind
	Mesh       *mesh.Mesh
	Heights    []float64 // per vertex, zero on flat shells
	Costs      []int     // per vertex traversal cost
	Collidable bool
	Degenerate int // triangles left with a zero tangent
}

type Planet struct {
	Radius  float64
	Depth   int
	Seed    int64
	Preset  Preset
	Workers int

	Events *Events

	mu        sync.RWMutex
	generated bool
	traits    Traits
	shells    map[ShellKind]*Shell
	graph     *navgraph.Graph
	obstacles []*actor.Actor
	rng       *rand.Rand
}

// NewPlanet creates an ungenerated planet.
func NewPlanet(radius float64, depth int, seed int64, preset Preset) *Planet {
	return &Planet{
		Radius:  radius,
		Depth:   depth,
		Seed:    seed,
		Preset:  preset,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// Generate rolls the preset and rebuilds every shell. Prior shells, graph
// and obstacles are discarded, even on error. Events are delivered once the
// planet is unlocked.
func (p *Planet) Generate() error {
	defer p.Events.flush()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Workers = max(DEFAULT_WORKERS, p.Workers)
	p.generated = false
	p.shells = make(map[ShellKind]*Shell, 3)
	p.graph = nil
	p.obstacles = nil

	traits := p.Preset.Roll(p.Seed)
	// Features draw from their own stream so rolling stays independent of
	// how many points a scatter consumed
	p.rng = rand.New(rand.NewSource(p.Seed + 1))

	if traits.HasTerrain {
		var params *terrain.Params
		if traits.GenerateHeights {
			params = &traits.Terrain
		}
		shell, err := p.buildShell(Terrain, p.Radius, params)
		if err != nil {
			return fmt.Errorf("terrain shell: %w", err)
		}
		shell.Collidable = true
		p.shells[Terrain] = shell
	}

	if traits.HasWater {
		shell, err := p.buildShell(Water, p.Radius, nil)
		if err != nil {
			return fmt.Errorf("water shell: %w", err)
		}
		shell.Collidable = true
		p.shells[Water] = shell
	}

	if traits.HasAtmosphere {
		shell, err := p.buildShell(Atmosphere, p.Radius*AtmosphereScale, nil)
		if err != nil {
			return fmt.Errorf("atmosphere shell: %w", err)
		}
		p.shells[Atmosphere] = shell
	}

	p.traits = traits
	p.generated = true

	return nil
}

// buildShell runs the sphere pipeline for one shell. A nil params leaves
// the sphere flat with baseline costs.
func (p *Planet) buildShell(kind ShellKind, radius float64, params *terrain.Params) (*Shell, error) {
	var displacer *terrain.Displacer
	if params != nil {
		var err error
		if displacer, err = terrain.NewDisplacer(*params); err != nil {
			return nil, err
		}
	}

	m, err := mesh.Subdivide(radius, p.Depth)
	if err != nil {
		return nil, err
	}

	task(p.Workers, spans(len(m.Vertices), p.Workers), func(s span) {
		mesh.ProjectUVRange(m, s.start, s.end)
	})
	mesh.FixSeam(m)
	mesh.FixPoles(m, mesh.NorthPole, mesh.SouthPole)

	shell := &Shell{
		Kind:    kind,
		Mesh:    m,
		Heights: make([]float64, len(m.Vertices)),
	}
	if displacer != nil {
		shell.Costs = make([]int, len(m.Vertices))
		task(p.Workers, spans(len(m.Vertices), p.Workers), func(s span) {
			displacer.ApplyRange(m, shell.Heights, shell.Costs, s.start, s.end)
		})
	} else {
		shell.Costs = terrain.FlatCosts(len(m.Vertices))
	}

	if kind == Atmosphere {
		// Seen from inside
		m.ReverseWinding()
	}
	shell.Degenerate = mesh.ComputeTangents(m)

	p.Events.emit(ShellGeneratedEvent{
		Kind:       kind,
		Vertices:   len(m.Vertices),
		Triangles:  len(m.Triangles),
		Degenerate: shell.Degenerate,
	})

	return shell, nil
}

// Traits returns the values rolled by the last Generate.
func (p *Planet) Traits() (Traits, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.generated {
		return Traits{}, ErrNotGenerated
	}
	return p.traits, nil
}

// Shell returns the shell of the given kind, if the planet has one.
func (p *Planet) Shell(kind ShellKind) (*Shell, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.shells[kind]
	return s, ok
}

// AddObstacle registers an actor the next BuildGraph routes around.
func (p *Planet) AddObstacle(a *actor.Actor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.obstacles = append(p.obstacles, a)
}

// Obstacles returns the registered obstacles, scattered features included.
func (p *Planet) Obstacles() []*actor.Actor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*actor.Actor(nil), p.obstacles...)
}

// BuildGraph builds the navigation graph over the terrain shell. The
// planet's obstacles are added to opts.Obstacles.
func (p *Planet) BuildGraph(opts navgraph.Options) error {
	defer p.Events.flush()
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.generated {
		return ErrNotGenerated
	}
	shell, ok := p.shells[Terrain]
	if !ok {
		return ErrNoTerrain
	}

	opts.Obstacles = append(append([]*actor.Actor(nil), opts.Obstacles...), p.obstacles...)
	g, err := navgraph.Build(shell.Mesh, shell.Costs, opts)
	if err != nil {
		return err
	}
	p.graph = g

	blocked := 0
	for _, n := range g.Nodes {
		if !n.Passable() {
			blocked++
		}
	}
	p.Events.emit(GraphBuiltEvent{Nodes: g.Len(), Blocked: blocked})

	return nil
}

// Graph returns the last built graph, or nil.
func (p *Planet) Graph() *navgraph.Graph {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.graph
}

// FindPath searches the navigation graph. Failures are reported to the
// caller and as a PathNotFoundEvent.
func (p *Planet) FindPath(start, end int, opts navgraph.SearchOptions) (navgraph.Result, error) {
	defer p.Events.flush()
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.graph == nil {
		return navgraph.Result{}, navgraph.ErrGraphEmpty
	}

	res, err := p.graph.Search(start, end, opts)
	if errors.Is(err, navgraph.ErrNoPathFound) || errors.Is(err, navgraph.ErrSearchLimit) {
		p.Events.emit(PathNotFoundEvent{Start: start, End: end, Closed: len(res.Closed), Err: err})
	}
	return res, err
}
