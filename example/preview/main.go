package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"runtime/pprof"

	"github.com/akmonengine/planetgen"
	"github.com/akmonengine/planetgen/actor"
	"github.com/akmonengine/planetgen/colour"
	"github.com/akmonengine/planetgen/config"
	"github.com/akmonengine/planetgen/mesh"
	"github.com/akmonengine/planetgen/navgraph"
	"github.com/akmonengine/planetgen/poisson"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/mazznoer/colorgrad"
)

var settingsPath = flag.String("config", "planet.json", "settings file, defaults are used when missing")
var writeDefaults = flag.Bool("write-config", false, "write the effective settings to -config and exit")
var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	settings, loaded, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	if !loaded {
		log.Printf("no settings at %s, using defaults", *settingsPath)
	}
	if *writeDefaults {
		if err := settings.Save(*settingsPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	preset, ok := planetgen.Presets()[settings.Planet.Preset]
	if !ok {
		log.Fatalf("unknown preset %q", settings.Planet.Preset)
	}

	p := planetgen.NewPlanet(settings.Planet.Radius, settings.Planet.Depth, settings.Planet.Seed, preset)
	p.Workers = settings.Planet.Workers
	p.Events.Subscribe(planetgen.SHELL_GENERATED, func(e planetgen.Event) {
		ev := e.(planetgen.ShellGeneratedEvent)
		log.Printf("%s shell: %d vertices, %d triangles, %d degenerate", ev.Kind, ev.Vertices, ev.Triangles, ev.Degenerate)
	})
	p.Events.Subscribe(planetgen.FEATURES_SCATTERED, func(e planetgen.Event) {
		ev := e.(planetgen.FeaturesScatteredEvent)
		log.Printf("placed %d %s", ev.Placed, ev.Class)
	})
	p.Events.Subscribe(planetgen.PATH_NOT_FOUND, func(e planetgen.Event) {
		ev := e.(planetgen.PathNotFoundEvent)
		log.Printf("no path %d -> %d after closing %d nodes: %v", ev.Start, ev.End, ev.Closed, ev.Err)
	})

	if err := p.Generate(); err != nil {
		log.Fatal(err)
	}
	traits, err := p.Traits()
	if err != nil {
		log.Fatal(err)
	}

	var features []*actor.Actor
	var route []int
	if traits.HasTerrain {
		scatter := settings.Scatter
		cfg := poisson.Config{
			Radius:         scatter.DiscRadius,
			RegionSize:     scatter.RegionSize,
			MaxAttempts:    scatter.MaxAttempts,
			NoiseThreshold: scatter.NoiseThreshold,
		}
		features, err = p.PopulateFeatures(cfg, scatter.NoiseFrequency)
		if err != nil {
			log.Fatal(err)
		}

		if err := p.BuildGraph(navgraph.Options{WeldSeams: settings.Graph.WeldSeams}); err != nil {
			log.Fatal(err)
		}
		route = findRoute(p, settings.Graph)
	}

	img := render(p, traits, settings.Preview.Width, settings.Preview.Height)
	overlay(img, p, features, route)

	if err := draw2dimg.SaveToPngFile(settings.Preview.Output, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", settings.Preview.Output, settings.Preview.Width, settings.Preview.Height)
}

// findRoute walks from the dry node closest to the north pole to the one
// closest to the south pole.
func findRoute(p *planetgen.Planet, gs config.GraphSettings) []int {
	g := p.Graph()
	dry := func(n navgraph.GraphNode) bool { return n.Passable() }

	start, err := g.NearestFunc(mgl64.Vec3{0, p.Radius, 0}, dry)
	if err != nil {
		log.Printf("no start node: %v", err)
		return nil
	}
	end, err := g.NearestFunc(mgl64.Vec3{0, -p.Radius, 0}, dry)
	if err != nil {
		log.Printf("no end node: %v", err)
		return nil
	}

	res, err := p.FindPath(start, end, navgraph.SearchOptions{
		HeuristicScale: gs.HeuristicScale,
		MaxExpansions:  gs.MaxExpansions,
	})
	if err != nil {
		return nil
	}
	log.Printf("path %d -> %d: %d hops, cost %d, %d expanded", start, end, res.Path.Hops(), res.Path.Cost, res.Expanded)
	return res.Path.Nodes
}

// render paints an equirectangular map of the terrain shell. Planets
// without terrain are filled with their water or atmosphere colour.
func render(p *planetgen.Planet, traits planetgen.Traits, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	shell, ok := p.Shell(planetgen.Terrain)
	if !ok {
		fill := traits.Palette.Atmosphere
		if _, ok := p.Shell(planetgen.Water); ok {
			fill = traits.Palette.Water.Shallow
		}
		c := colour.RGBA(fill)
		for y := range height {
			for x := range width {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}

	lookup, err := navgraph.NewGraph(shell.Mesh.Positions(), shell.Costs)
	if err != nil {
		log.Fatal(err)
	}

	land, err := colorgrad.NewGradient().Colors(
		colour.RGBA(traits.Palette.Beach),
		colour.RGBA(traits.Palette.Land),
		colour.RGBA(traits.Palette.Mountain),
	).Build()
	if err != nil {
		log.Fatal(err)
	}
	water := traits.Palette.Water
	sea, err := colorgrad.NewGradient().Colors(
		colour.RGBA(water.Shore),
		colour.RGBA(water.Shallow),
		colour.RGBA(water.Deep),
	).Build()
	if err != nil {
		log.Fatal(err)
	}

	lowest, highest := 0.0, 0.0
	for _, h := range shell.Heights {
		lowest = math.Min(lowest, h)
		highest = math.Max(highest, h)
	}

	for y := range height {
		for x := range width {
			uv := mgl64.Vec2{(float64(x) + 0.5) / float64(width), (float64(y) + 0.5) / float64(height)}
			id, err := lookup.Nearest(mesh.DirectionFromUV(uv).Mul(p.Radius))
			if err != nil {
				continue
			}
			h := shell.Heights[id]

			var c color.Color
			switch {
			case h < 0 && traits.HasWater:
				c = sea.At(h / lowest)
			case highest > 0:
				c = land.At(math.Max(h, 0) / highest)
			default:
				c = land.At(0)
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// overlay draws the scattered features and the route on top of the map.
func overlay(img *image.RGBA, p *planetgen.Planet, features []*actor.Actor, route []int) {
	bounds := img.Bounds()
	toPixel := func(pos mgl64.Vec3) (float64, float64) {
		uv := mesh.SphericalUV(pos.Normalize())
		return uv.X() * float64(bounds.Dx()), uv.Y() * float64(bounds.Dy())
	}

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineWidth(1)

	for _, f := range features {
		x, y := toPixel(f.Transform.Position)
		switch f.Class {
		case actor.ClassForest:
			gc.SetFillColor(color.RGBA{20, 90, 30, 255})
		default:
			gc.SetFillColor(color.RGBA{90, 80, 70, 255})
		}
		gc.BeginPath()
		draw2dkit.Circle(gc, x, y, 2)
		gc.Fill()
	}

	if len(route) < 2 {
		return
	}
	g := p.Graph()
	gc.SetStrokeColor(color.RGBA{255, 40, 40, 255})
	gc.SetLineWidth(2)
	gc.BeginPath()
	var lastX float64
	for i, id := range route {
		n, err := g.Node(id)
		if err != nil {
			continue
		}
		x, y := toPixel(n.Position)
		// Break the line where it wraps around the map edge.
		if i == 0 || math.Abs(x-lastX) > float64(bounds.Dx())/2 {
			gc.MoveTo(x, y)
		} else {
			gc.LineTo(x, y)
		}
		lastX = x
	}
	gc.Stroke()
}
