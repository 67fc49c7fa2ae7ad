package navgraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordinates of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell - Node indices bucketed in a cell
type Cell struct {
	nodeIndices []int
}

// SpatialGrid - Uniform grid with hashed buckets, indexing node positions
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - Creates a grid with at least numCells buckets
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].nodeIndices = make([]int, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo - Rounds up to the next power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

// Insert - Adds a node to the cell holding its position
func (sg *SpatialGrid) Insert(nodeIndex int, pos mgl64.Vec3) {
	cellIdx := sg.hashCell(sg.worldToCell(pos))
	sg.cells[cellIdx].nodeIndices = append(sg.cells[cellIdx].nodeIndices, nodeIndex)
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].nodeIndices = sg.cells[i].nodeIndices[:0]
	}
}

// Query - Calls fn for every node in the cells overlapped by the box of
// half size radius around center. Buckets are shared between cells, so fn
// sees candidates only: it may be called for nodes outside the box, and
// several times for the same node.
func (sg *SpatialGrid) Query(center mgl64.Vec3, radius float64, fn func(nodeIndex int)) {
	extent := mgl64.Vec3{radius, radius, radius}
	minCell := sg.worldToCell(center.Sub(extent))
	maxCell := sg.worldToCell(center.Add(extent))

	// Wider than the table: every bucket would be visited anyway
	span := float64(maxCell.X-minCell.X+1) * float64(maxCell.Y-minCell.Y+1) * float64(maxCell.Z-minCell.Z+1)
	if span >= float64(len(sg.cells)) {
		for i := range sg.cells {
			for _, nodeIdx := range sg.cells[i].nodeIndices {
				fn(nodeIdx)
			}
		}
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				for _, nodeIdx := range sg.cells[cellIdx].nodeIndices {
					fn(nodeIdx)
				}
			}
		}
	}
}

// worldToCell - Converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell - Hashes a cell to an index in the bucket array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
