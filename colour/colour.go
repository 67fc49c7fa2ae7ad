// Package colour converts shell colours between RGB and HSL. RGB components
// are in [0,1]; HSL is hue in degrees [0,360), saturation and lightness in
// percent [0,100], the scale palettes are authored in.
package colour

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBToHSL converts an RGB triple to HSL.
func RGBToHSL(rgb mgl64.Vec3) mgl64.Vec3 {
	h, s, l := colorful.Color{R: rgb.X(), G: rgb.Y(), B: rgb.Z()}.Hsl()
	return mgl64.Vec3{h, s * 100, l * 100}
}

// HSLToRGB converts an HSL triple to RGB. Lightness is clamped to [0,100].
func HSLToRGB(hsl mgl64.Vec3) mgl64.Vec3 {
	l := mgl64.Clamp(hsl.Z(), 0, 100)
	c := colorful.Hsl(hsl.X(), hsl.Y()/100, l/100)
	return mgl64.Vec3{c.R, c.G, c.B}
}

// RGBA converts an RGB triple to an opaque 8 bit colour, clamping out of
// gamut components.
func RGBA(rgb mgl64.Vec3) color.RGBA {
	r, g, b := colorful.Color{R: rgb.X(), G: rgb.Y(), B: rgb.Z()}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Lightness offsets of the water palette relative to shallow water.
const (
	DeepWaterOffset = -10
	ShoreOffset     = 30
)

// Water is the three colour water palette, in RGB.
type Water struct {
	Shallow mgl64.Vec3
	Deep    mgl64.Vec3
	Shore   mgl64.Vec3
}

// WaterPalette derives deep water and shore from a shallow water HSL colour
// by shifting its lightness.
func WaterPalette(shallow mgl64.Vec3) Water {
	return Water{
		Shallow: HSLToRGB(shallow),
		Deep:    HSLToRGB(shallow.Add(mgl64.Vec3{0, 0, DeepWaterOffset})),
		Shore:   HSLToRGB(shallow.Add(mgl64.Vec3{0, 0, ShoreOffset})),
	}
}
