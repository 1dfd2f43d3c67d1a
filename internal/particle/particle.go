// Package particle holds the particle records of the four backdrop layers and
// the initializers that populate them.
//
// Records are plain data. Behaviour lives in package anim, which owns one
// collection per layer and is its only mutator.
package particle

// RGB is an opaque colour.
type RGB struct{ R, G, B uint8 }

// palette is shared by the nebula and interactive layers.
var palette = [...]RGB{
	{120, 80, 255},
	{80, 180, 255},
	{150, 50, 200},
	{110, 231, 183},
	{255, 107, 180},
}

// Swatch references one palette entry. Particles keep the reference, never a
// copy, so the palette stays the single source of truth.
type Swatch uint8

// PaletteSize is the number of palette entries.
const PaletteSize = len(palette)

// RGB resolves the swatch. Out of range swatches resolve to the first entry.
func (s Swatch) RGB() RGB {
	if int(s) >= len(palette) {
		return palette[0]
	}
	return palette[s]
}

// Device is the device class resolved once at startup.
type Device int

const (
	Desktop Device = iota
	Mobile
)

func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// Bounds is the drawing surface size in surface units.
type Bounds struct{ W, H float64 }

// Contains reports whether (x, y) lies in [0,W]x[0,H].
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.W && y >= 0 && y <= b.H
}

// Star is a white point that bounces inside the viewport and twinkles.
type Star struct {
	X, Y    float64
	R       float64 // [0.5, 2.0)
	Alpha   float64 // (0, 1]
	DX, DY  float64
	Twinkle float64 // phase, kept in [0, 2π)
}

// Nebula is a soft coloured glow that wraps around the viewport.
type Nebula struct {
	X, Y   float64
	Size   float64
	Color  Swatch
	Alpha  float64
	DX, DY float64
	Pulse  float64
}

// Cloud drifts rightwards and breathes around its base size.
type Cloud struct {
	X, Y         float64
	BaseW, BaseH float64
	W, H         float64 // base size scaled by the breathing factor
	DX           float64 // > 0
	Alpha        float64
	Breath       float64
}

// Interactive orbits a home point and is pushed away by the cursor.
type Interactive struct {
	X, Y         float64
	HomeX, HomeY float64
	Size         float64
	Color        Swatch
	Alpha        float64
	Angle        float64
	Speed        float64
}
