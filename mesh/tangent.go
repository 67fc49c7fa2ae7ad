package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DegenerateDeterminant is the smallest UV determinant TriangleTangent
// will invert.
const DegenerateDeterminant = 1e-12

// TriangleTangent solves the UV derivative system of one triangle:
//
//	e1 = Δu1·T + Δv1·B
//	e2 = Δu2·T + Δv2·B
//
// and returns the normalized tangent T. When the UV determinant is close to
// zero it returns a zero vector and ok = false.
func TriangleTangent(p0, p1, p2 mgl64.Vec3, uv0, uv1, uv2 mgl64.Vec2) (tangent mgl64.Vec3, ok bool) {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	deltaUV1 := uv1.Sub(uv0)
	deltaUV2 := uv2.Sub(uv0)

	det := deltaUV1.X()*deltaUV2.Y() - deltaUV2.X()*deltaUV1.Y()
	if math.Abs(det) < DegenerateDeterminant {
		return mgl64.Vec3{}, false
	}

	f := 1.0 / det
	tangent = edge1.Mul(deltaUV2.Y()).Sub(edge2.Mul(deltaUV1.Y())).Mul(f)
	if tangent.Len() == 0 {
		return mgl64.Vec3{}, false
	}

	return tangent.Normalize(), true
}

// ComputeTangents writes each triangle's tangent to its three corners. Shared
// vertices keep the tangent of the last triangle processed; there is no
// smoothing across neighbours. Degenerate triangles write a zero tangent and
// are counted in the returned value instead of failing the whole mesh.
func ComputeTangents(m *Mesh) (degenerate int) {
	for _, t := range m.Triangles {
		v0, v1, v2 := &m.Vertices[t[0]], &m.Vertices[t[1]], &m.Vertices[t[2]]

		tangent, ok := TriangleTangent(v0.Position, v1.Position, v2.Position, v0.UV, v1.UV, v2.UV)
		if !ok {
			degenerate++
		}

		v0.Tangent = tangent
		v1.Tangent = tangent
		v2.Tangent = tangent
	}

	return degenerate
}
