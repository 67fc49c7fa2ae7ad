package colour

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3ApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps && math.Abs(a.Z()-b.Z()) < eps
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  mgl64.Vec3
		want mgl64.Vec3
	}{
		{"black", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0}},
		{"white", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0, 100}},
		{"grey", mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0, 50}},
		{"red", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 100, 50}},
		{"green", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{120, 100, 50}},
		{"blue", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{240, 100, 50}},
		{"dark cyan", mgl64.Vec3{0, 0.5, 0.5}, mgl64.Vec3{180, 100, 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHSL(tt.rgb); !vec3ApproxEqual(got, tt.want, 1e-9) {
				t.Errorf("RGBToHSL(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name string
		hsl  mgl64.Vec3
		want mgl64.Vec3
	}{
		{"red", mgl64.Vec3{0, 100, 50}, mgl64.Vec3{1, 0, 0}},
		{"yellow", mgl64.Vec3{60, 100, 50}, mgl64.Vec3{1, 1, 0}},
		{"light blue", mgl64.Vec3{240, 100, 75}, mgl64.Vec3{0.5, 0.5, 1}},
		{"unsaturated", mgl64.Vec3{200, 0, 30}, mgl64.Vec3{0.3, 0.3, 0.3}},
		{"lightness above range", mgl64.Vec3{90, 50, 130}, mgl64.Vec3{1, 1, 1}},
		{"lightness below range", mgl64.Vec3{90, 50, -10}, mgl64.Vec3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToRGB(tt.hsl); !vec3ApproxEqual(got, tt.want, 1e-9) {
				t.Errorf("HSLToRGB(%v) = %v, want %v", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	colours := []mgl64.Vec3{
		{0.88, 0.31, 0.10},
		{0.01, 0.16, 0.00},
		{0.01, 0.10, 0.10},
		{0.2, 0.4, 0.9},
	}
	for _, c := range colours {
		if got := HSLToRGB(RGBToHSL(c)); !vec3ApproxEqual(got, c, 1e-9) {
			t.Errorf("round trip of %v = %v", c, got)
		}
	}
}

func TestWaterPalette(t *testing.T) {
	shallow := mgl64.Vec3{210, 100, 60}
	w := WaterPalette(shallow)

	if l := RGBToHSL(w.Deep).Z(); math.Abs(l-50) > 1e-9 {
		t.Errorf("deep lightness = %v, want 50", l)
	}
	if l := RGBToHSL(w.Shore).Z(); math.Abs(l-90) > 1e-9 {
		t.Errorf("shore lightness = %v, want 90", l)
	}
	if h := RGBToHSL(w.Shallow).X(); math.Abs(h-210) > 1e-9 {
		t.Errorf("shallow hue = %v, want 210", h)
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA(mgl64.Vec3{1, 0, 2}); got != (color.RGBA{255, 0, 255, 255}) {
		t.Errorf("RGBA clamps to %v", got)
	}
}
