// Package actor describes the things standing on a planet that the
// navigation graph must route around: buildings, forests, rocks. Each actor
// blocks every graph node inside its exclusion sphere.
package actor

import "github.com/go-gl/mathgl/mgl64"

// Class groups actors sharing an exclusion radius
type Class string

const (
	ClassBuilding Class = "building"
	ClassForest   Class = "forest"
	ClassMountain Class = "mountain"
)

// Classes maps an actor class to its exclusion radius
type Classes map[Class]float64

// DefaultClasses returns the exclusion radii used when a caller does not
// provide its own table
func DefaultClasses() Classes {
	return Classes{
		ClassBuilding: 25,
		ClassForest:   60,
		ClassMountain: 150,
	}
}

// Actor is an obstacle on the planet surface
type Actor struct {
	Transform Transform
	Class     Class
	// Radius overrides the class exclusion radius when positive
	Radius float64

	aabb AABB
}

// NewActor creates an actor at position
func NewActor(position mgl64.Vec3, class Class, radius float64) *Actor {
	a := &Actor{
		Transform: NewTransform(),
		Class:     class,
		Radius:    radius,
	}
	a.Transform.Position = position
	a.ComputeAABB()
	return a
}

// Resolve returns copies of actors with Radius filled from the class table
// where no explicit radius is set. The input actors are left untouched, so
// the same obstacles can be resolved against several tables. Unknown
// classes keep a zero radius and block nothing.
func (c Classes) Resolve(actors []*Actor) []*Actor {
	resolved := make([]*Actor, len(actors))
	for i, a := range actors {
		r := *a
		if r.Radius <= 0 {
			r.Radius = c[r.Class]
		}
		r.ComputeAABB()
		resolved[i] = &r
	}
	return resolved
}

// ComputeAABB refreshes the bounding box of the exclusion sphere
func (a *Actor) ComputeAABB() {
	a.aabb = SphereAABB(a.Transform.Position, a.Radius)
}

// GetAABB returns the last computed bounding box
func (a *Actor) GetAABB() AABB {
	return a.aabb
}

// Blocks reports whether point lies inside the exclusion sphere
func (a *Actor) Blocks(point mgl64.Vec3) bool {
	if a.Radius <= 0 {
		return false
	}
	return point.Sub(a.Transform.Position).LenSqr() <= a.Radius*a.Radius
}
