// Package noise wraps opensimplex into the seeded coherent noise fields the
// generators consume. Fields are pure functions of their inputs once built,
// so the same seed always produces the same terrain and scatter.
package noise

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// DefaultOctaves is the number of octaves summed for terrain heights.
const DefaultOctaves = 8

// Fractal sums octaves of signed simplex noise. Every octave doubles the
// frequency and scales the amplitude by Persistence. Unlike a normalized
// fBm, the sum is not divided by the total amplitude: Amplitude is the
// height of the first octave in world units.
type Fractal struct {
	Octaves     int
	Frequency   float64
	Amplitude   float64
	Persistence float64
	Seed        int64
	os          opensimplex.Noise
}

// NewFractal returns a Fractal seeded with seed.
func NewFractal(seed int64, octaves int, frequency, amplitude, persistence float64) *Fractal {
	return &Fractal{
		Octaves:     octaves,
		Frequency:   frequency,
		Amplitude:   amplitude,
		Persistence: persistence,
		Seed:        seed,
		os:          opensimplex.New(seed),
	}
}

// Eval3 returns the accumulated noise at point p.
func (f *Fractal) Eval3(p mgl64.Vec3) float64 {
	var sum float64
	frequency := f.Frequency
	amplitude := f.Amplitude
	for range f.Octaves {
		q := p.Mul(frequency)
		sum += f.os.Eval3(q.X(), q.Y(), q.Z()) * amplitude
		frequency *= 2
		amplitude *= f.Persistence
	}
	return sum
}

// Density is the two octave 2D field used to thin scattered points:
// (n(f·p) + 0.5·n(2f·p)) / 2, in [-0.75, 0.75].
type Density struct {
	Frequency float64
	Seed      int64
	os        opensimplex.Noise
}

// NewDensity returns a Density field seeded with seed.
func NewDensity(seed int64, frequency float64) *Density {
	return &Density{
		Frequency: frequency,
		Seed:      seed,
		os:        opensimplex.New(seed),
	}
}

// Eval2 samples the field at (x, y).
func (d *Density) Eval2(x, y float64) float64 {
	f := d.Frequency
	value := d.os.Eval2(x*f, y*f)
	value += d.os.Eval2(x*f*2, y*f*2) * 0.5
	return value / 2
}
