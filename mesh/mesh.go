// Package mesh builds the geodesic sphere used for planet shells.
//
// A sphere is produced in stages, each exposed on its own so callers can stop
// early or inspect intermediate buffers:
//  1. Subdivide: octahedron seed, recursive 1:4 split, projection to radius
//  2. ProjectUV: spherical longitude/latitude texture coordinates
//  3. FixSeam: duplicate prime meridian vertices so no triangle wraps 0/1
//  4. FixPoles: per triangle pole vertices with a local texture-x
//  5. ComputeTangents: per triangle tangent from UV derivatives
//
// Fixups only ever append vertices; Origin records where a duplicate came from.
package mesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is returned when a generation parameter is out of range.
var ErrInvalidParameter = errors.New("mesh: invalid parameter")

// Vertex is a single renderable vertex.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3 // unit length
	UV       mgl64.Vec2 // both components in [0,1]
	Tangent  mgl64.Vec3
}

// Triangle holds three indices into Mesh.Vertices. Winding order is preserved
// through subdivision.
type Triangle [3]uint32

// EdgeKey is an undirected edge, Max first.
type EdgeKey struct {
	Max uint32
	Min uint32
}

// MakeEdgeKey returns the same key for (a, b) and (b, a).
func MakeEdgeKey(a, b uint32) EdgeKey {
	if a < b {
		a, b = b, a
	}
	return EdgeKey{Max: a, Min: b}
}

// Mesh is a vertex buffer plus triangle index buffer.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	// Origin maps every vertex to the vertex it was duplicated from.
	// Vertices that are not duplicates map to themselves.
	Origin []int
	Radius float64
}

// appendDuplicate copies vertex i to the end of the buffer and returns its index.
func (m *Mesh) appendDuplicate(i int, v Vertex) uint32 {
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v)
	m.Origin = append(m.Origin, m.Origin[i])
	return idx
}

// Indices flattens the triangles into a render index buffer.
func (m *Mesh) Indices() []uint32 {
	indices := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		indices = append(indices, t[0], t[1], t[2])
	}
	return indices
}

// Positions returns a copy of every vertex position.
func (m *Mesh) Positions() []mgl64.Vec3 {
	positions := make([]mgl64.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}
	return positions
}

// Normals returns a copy of every vertex normal.
func (m *Mesh) Normals() []mgl64.Vec3 {
	normals := make([]mgl64.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		normals[i] = v.Normal
	}
	return normals
}

// ReverseWinding swaps the last two corners of every triangle, turning the
// shell inside out for back face rendering.
func (m *Mesh) ReverseWinding() {
	for i := range m.Triangles {
		m.Triangles[i][1], m.Triangles[i][2] = m.Triangles[i][2], m.Triangles[i][1]
	}
}

// NewSphere builds a complete textured sphere: subdivision, UV projection,
// seam and pole fixups. Tangents are left to the caller since heights usually
// move the vertices first.
func NewSphere(radius float64, depth int) (*Mesh, error) {
	m, err := Subdivide(radius, depth)
	if err != nil {
		return nil, err
	}

	ProjectUV(m)
	FixSeam(m)
	FixPoles(m, NorthPole, SouthPole)

	return m, nil
}
