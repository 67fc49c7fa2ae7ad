package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// NorthPole is the index of the top octahedron vertex.
	NorthPole uint32 = 0
	// SouthPole is the index of the bottom octahedron vertex.
	SouthPole uint32 = 5
)

// MaxDepth is the deepest subdivision whose vertices, seam and pole
// duplicates included, still fit the uint32 indices of Triangle.
const MaxDepth = 14

// Octahedron vertices, looking down the negative z axis.
var octahedronVertices = [6]mgl64.Vec3{
	{0, 1, 0},  // top
	{0, 0, -1}, // front
	{1, 0, 0},  // right
	{0, 0, 1},  // back
	{-1, 0, 0}, // left
	{0, -1, 0}, // bottom
}

var octahedronTriangles = [8]Triangle{
	{0, 1, 2}, // top front-right
	{0, 2, 3}, // top back-right
	{0, 3, 4}, // top back-left
	{0, 4, 1}, // top front-left
	{5, 1, 4}, // bottom front-left
	{5, 4, 3}, // bottom back-left
	{5, 3, 2}, // bottom back-right
	{5, 2, 1}, // bottom front-right
}

// TriangleCount returns the number of triangles after depth passes: 8·4^depth.
func TriangleCount(depth int) int {
	return 8 << (2 * depth)
}

// VertexCount returns the number of shared vertices after depth passes,
// before any seam or pole duplicate: 4·4^depth + 2.
func VertexCount(depth int) int {
	return 4<<(2*depth) + 2
}

// Subdivide builds an octahedron and splits every triangle into four, depth
// times. Each edge gets exactly one midpoint per pass. The resulting
// positions lie at radius from the origin, normals are unit length and UVs
// are left at zero.
func Subdivide(radius float64, depth int) (*Mesh, error) {
	if depth < 0 || depth > MaxDepth {
		return nil, fmt.Errorf("%w: subdivision depth %d outside [0,%d]", ErrInvalidParameter, depth, MaxDepth)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidParameter, radius)
	}

	positions := make([]mgl64.Vec3, 0, VertexCount(depth))
	positions = append(positions, octahedronVertices[:]...)
	triangles := make([]Triangle, 0, TriangleCount(depth))
	triangles = append(triangles, octahedronTriangles[:]...)

	for range depth {
		positions, triangles = subdividePass(positions, triangles)
	}

	m := &Mesh{
		Vertices:  make([]Vertex, len(positions)),
		Triangles: triangles,
		Origin:    make([]int, len(positions)),
		Radius:    radius,
	}
	for i, p := range positions {
		normal := p.Normalize()
		m.Vertices[i] = Vertex{
			Position: normal.Mul(radius),
			Normal:   normal,
		}
		m.Origin[i] = i
	}

	return m, nil
}

// subdividePass performs a single 1:4 split. The edge map lives for this pass
// only: keys from an earlier pass must never be reused.
func subdividePass(positions []mgl64.Vec3, triangles []Triangle) ([]mgl64.Vec3, []Triangle) {
	midpoints := make(map[EdgeKey]uint32, len(triangles)*3/2)
	next := make([]Triangle, 0, len(triangles)*4)

	divideEdge := func(i0, i1 uint32) uint32 {
		edge := MakeEdgeKey(i0, i1)
		if idx, ok := midpoints[edge]; ok {
			return idx
		}

		mid := positions[i0].Add(positions[i1]).Mul(0.5).Normalize()
		idx := uint32(len(positions))
		positions = append(positions, mid)
		midpoints[edge] = idx
		return idx
	}

	for _, t := range triangles {
		iv0, iv1, iv2 := t[0], t[1], t[2]

		iv01 := divideEdge(iv0, iv1)
		iv12 := divideEdge(iv1, iv2)
		iv20 := divideEdge(iv0, iv2)

		next = append(next,
			Triangle{iv0, iv01, iv20},
			Triangle{iv20, iv12, iv2},
			Triangle{iv20, iv01, iv12},
			Triangle{iv01, iv1, iv12},
		)
	}

	return positions, next
}
