package navgraph

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(2.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{3, 4.5, 7.9}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-0.5, -2, -4.1}, CellKey{-1, -1, -3}},
		{"large", mgl64.Vec3{201.4, -400.6, 100.2}, CellKey{100, -201, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := grid.worldToCell(tt.position); result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCellInRange(t *testing.T) {
	grid := NewSpatialGrid(1.0, 100)
	if len(grid.cells) != 128 {
		t.Fatalf("len(cells) = %d, want 128", len(grid.cells))
	}

	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			for z := -20; z <= 20; z++ {
				if h := grid.hashCell(CellKey{x, y, z}); h < 0 || h >= len(grid.cells) {
					t.Fatalf("hashCell(%d,%d,%d) = %d out of range", x, y, z, h)
				}
			}
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSpatialGridQuery(t *testing.T) {
	grid := NewSpatialGrid(1.0, 64)
	points := []mgl64.Vec3{
		{0.5, 0.5, 0.5},
		{1.5, 0.5, 0.5},
		{5.5, 5.5, 5.5},
		{-3.5, 0.5, 0.5},
	}
	for i, p := range points {
		grid.Insert(i, p)
	}

	var got []int
	grid.Query(mgl64.Vec3{1, 0.5, 0.5}, 0.6, func(i int) { got = append(got, i) })
	slices.Sort(got)
	got = slices.Compact(got)

	// Candidates may include hash collisions, never miss a real hit
	for _, want := range []int{0, 1} {
		if !slices.Contains(got, want) {
			t.Errorf("Query missed node %d, got %v", want, got)
		}
	}

	grid.Clear()
	calls := 0
	grid.Query(mgl64.Vec3{}, 100, func(int) { calls++ })
	if calls != 0 {
		t.Errorf("Query after Clear visited %d nodes", calls)
	}
}
