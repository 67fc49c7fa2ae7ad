package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places an actor on or above the planet surface
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat // rotates the actor's local +Y onto the surface normal
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// SurfaceTransform stands an actor upright at the point where direction
// meets a sphere of the given radius
func SurfaceTransform(direction mgl64.Vec3, radius float64) Transform {
	up := direction.Normalize()
	return Transform{
		Position: up.Mul(radius),
		Rotation: mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, up),
	}
}

// Up returns the actor's local +Y in world space
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}
