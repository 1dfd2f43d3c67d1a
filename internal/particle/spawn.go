package particle

import (
	"math"
	"math/rand"
)

// Counts is the population of every layer for one device class.
type Counts struct {
	Stars       int `toml:"stars"`
	Nebula      int `toml:"nebula"`
	Clouds      int `toml:"clouds"`
	Interactive int `toml:"interactive"`
}

var (
	DesktopCounts = Counts{Stars: 400, Nebula: 600, Clouds: 25, Interactive: 50}
	MobileCounts  = Counts{Stars: 150, Nebula: 200, Clouds: 25, Interactive: 20}
)

// DefaultCounts returns the built-in population for d.
func DefaultCounts(d Device) Counts {
	if d == Mobile {
		return MobileCounts
	}
	return DesktopCounts
}

const (
	// CloudBand is the fraction of the surface height clouds may occupy.
	CloudBand = 0.6
	// BreathAmplitude is the relative size swing of a breathing cloud.
	BreathAmplitude = 0.05
)

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func phase(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// velocity is uniform in [-scale/2, scale/2).
func velocity(rng *rand.Rand, scale float64) float64 {
	return (rng.Float64() - 0.5) * scale
}

// SpawnStars returns n stars spread uniformly over b.
func SpawnStars(rng *rand.Rand, b Bounds, d Device, n int) []Star {
	speed := 0.2
	if d == Mobile {
		speed = 0.1
	}
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64() * b.W,
			Y:       rng.Float64() * b.H,
			R:       between(rng, 0.5, 2.0),
			Alpha:   between(rng, 0.2, 1.0),
			DX:      velocity(rng, speed),
			DY:      velocity(rng, speed),
			Twinkle: phase(rng),
		}
	}
	return stars
}

// SpawnNebula returns n glows spread uniformly over b.
func SpawnNebula(rng *rand.Rand, b Bounds, d Device, n int) []Nebula {
	speed := 0.05
	if d == Mobile {
		speed = 0.02
	}
	nebula := make([]Nebula, n)
	for i := range nebula {
		nebula[i] = Nebula{
			X:     rng.Float64() * b.W,
			Y:     rng.Float64() * b.H,
			Size:  between(rng, 0.5, 3.5),
			Color: Swatch(rng.Intn(PaletteSize)),
			Alpha: between(rng, 0.1, 0.5),
			DX:    velocity(rng, speed),
			DY:    velocity(rng, speed),
			Pulse: phase(rng),
		}
	}
	return nebula
}

// SpawnClouds returns n clouds in the upper band of b.
func SpawnClouds(rng *rand.Rand, b Bounds, n int) []Cloud {
	clouds := make([]Cloud, n)
	for i := range clouds {
		c := &clouds[i]
		c.reseed(rng, b)
		c.X = rng.Float64() * b.W
		c.Breath = phase(rng)
	}
	return clouds
}

// reseed draws a fresh shape, speed, opacity and height.
func (c *Cloud) reseed(rng *rand.Rand, b Bounds) {
	c.BaseW = between(rng, 80, 200)
	c.BaseH = between(rng, 30, 80)
	c.W, c.H = c.BaseW, c.BaseH
	c.DX = between(rng, 0.05, 0.2)
	c.Alpha = between(rng, 0.1, 0.3)
	c.Y = rng.Float64() * b.H * CloudBand
}

// RespawnCloud reuses c as a new cloud entering just off the left edge.
// The breathing phase carries over.
func RespawnCloud(rng *rand.Rand, c *Cloud, b Bounds) {
	c.reseed(rng, b)
	c.X = -c.W
}

// Breathe recomputes the current size from the base size and phase.
func (c *Cloud) Breathe() {
	scale := 1 + math.Sin(c.Breath)*BreathAmplitude
	c.W = c.BaseW * scale
	c.H = c.BaseH * scale
}

// SpawnInteractive returns n particles whose home is their start position.
func SpawnInteractive(rng *rand.Rand, b Bounds, n int) []Interactive {
	ps := make([]Interactive, n)
	for i := range ps {
		x, y := rng.Float64()*b.W, rng.Float64()*b.H
		ps[i] = Interactive{
			X:     x,
			Y:     y,
			HomeX: x,
			HomeY: y,
			Size:  between(rng, 1, 3),
			Color: Swatch(rng.Intn(PaletteSize)),
			Alpha: between(rng, 0.2, 0.7),
			Angle: phase(rng),
			Speed: between(rng, 0.01, 0.03),
		}
	}
	return ps
}
