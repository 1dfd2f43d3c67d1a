package anim

import (
	"skyscape/internal/particle"
	"skyscape/internal/surface"
)

const (
	pulseStep  = 0.01
	glowRadius = 3
)

// Nebula drifts coloured glows that wrap around the viewport edges.
type Nebula struct{ base }

func (a *Nebula) Step(f Frame) Signal {
	a.move(f.Bounds)
	a.Paint(f)
	return Continue
}

// move teleports a glow to the opposite edge once it leaves [0,W]x[0,H].
func (a *Nebula) move(b particle.Bounds) {
	for i := range a.store.Nebula {
		n := &a.store.Nebula[i]
		n.X += n.DX
		n.Y += n.DY
		n.Pulse = advance(n.Pulse, pulseStep)

		if n.X < 0 {
			n.X = b.W
		} else if n.X > b.W {
			n.X = 0
		}
		if n.Y < 0 {
			n.Y = b.H
		} else if n.Y > b.H {
			n.Y = 0
		}
	}
}

func (a *Nebula) Paint(Frame) {
	a.surf.Clear()
	for _, n := range a.store.Nebula {
		a.surf.Glow(n.X, n.Y, n.Size*glowRadius, surface.PaintOf(n.Color.RGB(), NebulaAlpha(n)))
	}
}

// NebulaAlpha is the base alpha of n modulated into [0.7,1] of itself by the
// pulse phase.
func NebulaAlpha(n particle.Nebula) float64 {
	return n.Alpha * oscillate(n.Pulse, 0.7, 1)
}
