package mesh

// FixPoles gives every triangle touching a pole its own pole vertex whose
// texture-x is the average of the triangle's two other corners. The first
// incident triangle reuses the shared pole vertex; later ones get duplicates.
// It returns the number of duplicates appended.
func FixPoles(m *Mesh, poles ...uint32) int {
	created := 0
	for _, pole := range poles {
		created += fixPole(m, pole)
	}
	return created
}

func fixPole(m *Mesh, poleIndex uint32) int {
	if int(poleIndex) >= len(m.Vertices) {
		return 0
	}

	poleVertex := m.Vertices[poleIndex]
	overwritten := false
	created := 0

	for t := range m.Triangles {
		tri := &m.Triangles[t]

		var pole, other0, other1 int
		switch poleIndex {
		case tri[0]:
			pole, other0, other1 = 0, 1, 2
		case tri[1]:
			pole, other0, other1 = 1, 2, 0
		case tri[2]:
			pole, other0, other1 = 2, 0, 1
		default:
			continue
		}

		newPole := poleVertex
		newPole.UV[0] = (m.Vertices[tri[other0]].UV.X() + m.Vertices[tri[other1]].UV.X()) / 2
		newPole.UV[1] = poleVertex.UV.Y()

		if !overwritten {
			m.Vertices[poleIndex] = newPole
			overwritten = true
			continue
		}

		tri[pole] = m.appendDuplicate(int(poleIndex), newPole)
		created++
	}

	return created
}
