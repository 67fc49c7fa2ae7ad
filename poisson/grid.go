package poisson

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleGrid is the background grid of a sampling run: a dense row major
// array of point indices, -1 for an empty cell. With a cell size of
// radius/√2 a cell holds at most one accepted point.
type SampleGrid struct {
	CellSize   float64
	RegionSize float64
	Width      int
	cells      []int
}

// NewSampleGrid allocates an empty grid covering [0, regionSize)².
func NewSampleGrid(regionSize, cellSize float64) *SampleGrid {
	width := max(int(math.Ceil(regionSize/cellSize)), 1)
	cells := make([]int, width*width)
	for i := range cells {
		cells[i] = -1
	}
	return &SampleGrid{
		CellSize:   cellSize,
		RegionSize: regionSize,
		Width:      width,
		cells:      cells,
	}
}

// Cell returns the cell coordinates of p, clamped to the grid.
func (g *SampleGrid) Cell(p mgl64.Vec2) (int, int) {
	cx := int(p.X() / g.CellSize)
	cy := int(p.Y() / g.CellSize)
	return min(max(cx, 0), g.Width-1), min(max(cy, 0), g.Width-1)
}

// At returns the point index stored in cell (x, y), or -1.
func (g *SampleGrid) At(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Width {
		return -1
	}
	return g.cells[y*g.Width+x]
}

// Set records point index i in the cell holding p.
func (g *SampleGrid) Set(p mgl64.Vec2, i int) {
	x, y := g.Cell(p)
	g.cells[y*g.Width+x] = i
}

// Accepts reports whether candidate lies in the region and is at least
// radius away from every point registered in the surrounding 5x5 cells.
func (g *SampleGrid) Accepts(candidate mgl64.Vec2, points []mgl64.Vec2, radius float64) bool {
	if candidate.X() < 0 || candidate.X() >= g.RegionSize || candidate.Y() < 0 || candidate.Y() >= g.RegionSize {
		return false
	}

	cx, cy := g.Cell(candidate)
	r2 := radius * radius
	for y := cy - 2; y <= cy+2; y++ {
		for x := cx - 2; x <= cx+2; x++ {
			if i := g.At(x, y); i >= 0 && candidate.Sub(points[i]).LenSqr() < r2 {
				return false
			}
		}
	}
	return true
}
