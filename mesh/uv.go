package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphericalUV maps a unit normal to its longitude/latitude texture coordinate.
// Longitude is measured with atan2(x, -z) so the front of the sphere
// (0,0,-1) sits in the middle of the texture and the wraparound seam runs
// along the back meridian (x = 0, z > 0).
func SphericalUV(normal mgl64.Vec3) mgl64.Vec2 {
	longitude := math.Atan2(normal.X(), -normal.Z())
	latitude := math.Acos(mgl64.Clamp(normal.Y(), -1, 1))

	u := longitude/(2*math.Pi) + 0.5
	v := latitude / math.Pi

	return mgl64.Vec2{1 - u, v}
}

// DirectionFromUV is the inverse of SphericalUV, returning a unit vector.
func DirectionFromUV(uv mgl64.Vec2) mgl64.Vec3 {
	longitude := (1 - uv.X() - 0.5) * 2 * math.Pi
	latitude := uv.Y() * math.Pi

	sinLat := math.Sin(latitude)
	return mgl64.Vec3{
		sinLat * math.Sin(longitude),
		math.Cos(latitude),
		-sinLat * math.Cos(longitude),
	}
}

// ProjectUV assigns SphericalUV to every vertex from its normal.
func ProjectUV(m *Mesh) {
	ProjectUVRange(m, 0, len(m.Vertices))
}

// ProjectUVRange projects the vertices in [start, end). Ranges are
// independent so disjoint ranges may run concurrently.
func ProjectUVRange(m *Mesh, start, end int) {
	for i := start; i < end; i++ {
		m.Vertices[i].UV = SphericalUV(m.Vertices[i].Normal)
	}
}
