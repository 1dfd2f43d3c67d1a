package anim

import (
	"skyscape/internal/particle"
	"skyscape/internal/surface"
)

const (
	breathStep   = 0.01
	shadowAlpha  = 0.1
	shadowOffset = 5
)

// lobes lay out one cloud as overlapping puffs. Offsets scale with the
// current width (dx, r) and height (dy).
var lobes = [...]struct{ dx, dy, r float64 }{
	{0, 0, 0.5},
	{0.3, -0.2, 0.4},
	{0.6, 0, 0.45},
	{0.9, -0.15, 0.35},
	{-0.2, 0.1, 0.3},
}

// Clouds drifts breathing clouds rightwards during daytime. At night the
// layer is blank and the clouds hold still.
type Clouds struct{ base }

func (a *Clouds) Step(f Frame) Signal {
	if !f.Daytime() {
		a.surf.Clear()
		return Continue
	}
	a.move(f.Bounds)
	a.Paint(f)
	return Continue
}

// move drifts and breathes every cloud and respawns those whose right edge
// has left the viewport.
func (a *Clouds) move(b particle.Bounds) {
	for i := range a.store.Clouds {
		c := &a.store.Clouds[i]
		c.X += c.DX
		c.Breath = advance(c.Breath, breathStep)
		c.Breathe()
		if c.X+c.W > b.W {
			particle.RespawnCloud(a.rng, c, b)
		}
	}
}

func (a *Clouds) Paint(f Frame) {
	a.surf.Clear()
	if !f.Daytime() {
		return
	}
	for _, c := range a.store.Clouds {
		for _, l := range lobes {
			a.surf.Puff(c.X+l.dx*c.W, c.Y+l.dy*c.H, l.r*c.W, surface.White(c.Alpha))
		}
		a.surf.Ellipse(c.X+shadowOffset, c.Y+c.H*0.3, c.W*0.8, c.H*0.3, surface.Black(c.Alpha*shadowAlpha))
	}
}
