package noise

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFractalDeterministic(t *testing.T) {
	a := NewFractal(42, DefaultOctaves, 1.5, 30, 0.3)
	b := NewFractal(42, DefaultOctaves, 1.5, 30, 0.3)

	points := []mgl64.Vec3{
		{0, 1, 0},
		{0.3, -0.2, 0.9},
		{-0.7, 0.1, 0.7},
	}
	for _, p := range points {
		if a.Eval3(p) != b.Eval3(p) {
			t.Errorf("Eval3(%v) differs between two fields with the same seed", p)
		}
	}
}

func TestFractalSeedChangesField(t *testing.T) {
	a := NewFractal(1, DefaultOctaves, 1.5, 30, 0.3)
	b := NewFractal(2, DefaultOctaves, 1.5, 30, 0.3)

	differ := false
	for i := range 16 {
		p := mgl64.Vec3{float64(i) * 0.37, 0.5, float64(i) * -0.21}
		if a.Eval3(p) != b.Eval3(p) {
			differ = true
			break
		}
	}
	if !differ {
		t.Errorf("different seeds produced the same field")
	}
}

func TestFractalAmplitudeBound(t *testing.T) {
	tests := []struct {
		name        string
		amplitude   float64
		persistence float64
	}{
		{"low persistence", 10, 0.2},
		{"half persistence", 50, 0.5},
		{"rocky", 70, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFractal(7, DefaultOctaves, 2, tt.amplitude, tt.persistence)

			// Geometric series bound: Σ amplitude·persistence^i.
			var bound float64
			amplitude := tt.amplitude
			for range DefaultOctaves {
				bound += amplitude
				amplitude *= tt.persistence
			}

			for i := range 200 {
				theta := float64(i) * 0.1
				p := mgl64.Vec3{math.Cos(theta), math.Sin(theta*0.7), math.Sin(theta)}.Normalize()
				if h := f.Eval3(p); math.Abs(h) > bound*1.01 {
					t.Fatalf("Eval3(%v) = %v exceeds bound %v", p, h, bound)
				}
			}
		})
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	f := NewFractal(3, 0, 1, 10, 0.5)
	if h := f.Eval3(mgl64.Vec3{1, 0, 0}); h != 0 {
		t.Errorf("Eval3 with no octaves = %v, want 0", h)
	}
}

func TestDensityRange(t *testing.T) {
	d := NewDensity(11, 0.05)
	for x := 0.0; x < 100; x += 3.3 {
		for y := 0.0; y < 100; y += 3.3 {
			v := d.Eval2(x, y)
			if v < -0.76 || v > 0.76 {
				t.Fatalf("Eval2(%v, %v) = %v outside [-0.75, 0.75]", x, y, v)
			}
		}
	}
}

func TestDensityDeterministic(t *testing.T) {
	a := NewDensity(5, 0.1)
	b := NewDensity(5, 0.1)
	if a.Eval2(12.5, 40.25) != b.Eval2(12.5, 40.25) {
		t.Errorf("same seed produced different density")
	}
}
