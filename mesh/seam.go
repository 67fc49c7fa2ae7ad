package mesh

import "math"

// SeamEpsilon is the tolerance used to detect prime meridian vertices.
const SeamEpsilon = 1.192092896e-7

// wrapThreshold is the texture-x distance beyond which two corners of a
// triangle are considered to wrap around the seam.
const wrapThreshold = 0.5

// isOnPrimeMeridian reports whether a vertex sits on the texture seam: its
// texture-x and position-x are both zero.
func isOnPrimeMeridian(v Vertex) bool {
	return math.Abs(v.Position.X()) <= SeamEpsilon && math.Abs(v.UV.X()) <= SeamEpsilon
}

// FixSeam duplicates every seam vertex with texture-x = 1 and points the
// triangles that wrap around the seam at the duplicate. It returns the number
// of duplicates appended.
func FixSeam(m *Mesh) int {
	preFixupCount := len(m.Vertices)
	created := 0

	for i := 0; i < preFixupCount; i++ {
		if !isOnPrimeMeridian(m.Vertices[i]) {
			continue
		}

		duplicate := m.Vertices[i]
		duplicate.UV[0] = 1
		newIndex := m.appendDuplicate(i, duplicate)
		created++

		for t := range m.Triangles {
			tri := &m.Triangles[t]

			// Rotate so that corner c holds the seam vertex.
			c := -1
			for k := range 3 {
				if tri[k] == uint32(i) {
					c = k
					break
				}
			}
			if c == -1 {
				continue
			}

			u0 := m.Vertices[tri[c]].UV.X()
			u1 := m.Vertices[tri[(c+1)%3]].UV.X()
			u2 := m.Vertices[tri[(c+2)%3]].UV.X()

			if math.Abs(u0-u1) > wrapThreshold || math.Abs(u0-u2) > wrapThreshold {
				tri[c] = newIndex
			}
		}
	}

	return created
}
