package anim

import (
	"math"

	"skyscape/internal/particle"
	"skyscape/internal/surface"
)

const (
	repelRadius = 100
	repelForce  = 2
	homeEasing  = 0.02
	orbitRadius = 20
	linkRadius  = 80
	linkAlpha   = 0.1
	linkWidth   = 0.5
	nudgeRadius = 200
	nudgeJitter = 50
)

// Interactive orbits particles around drifting home points, pushes them away
// from the cursor and links close neighbours. It is a desktop-only layer: on
// mobile every method is inert.
type Interactive struct{ base }

func (a *Interactive) Step(f Frame) Signal {
	if a.device == particle.Mobile {
		return Halt
	}
	a.move(f)
	a.Paint(f)
	return Continue
}

func (a *Interactive) move(f Frame) {
	for i := range a.store.Interactive {
		p := &a.store.Interactive[i]
		p.Angle += p.Speed
		if f.CursorValid && repel(p, f.Cursor) {
			continue
		}
		p.X += (p.HomeX - p.X) * homeEasing
		p.Y += (p.HomeY - p.Y) * homeEasing
	}
}

// repel pushes p away from the cursor when it is within repelRadius. The
// push grows linearly as the distance shrinks. It reports whether p was
// pushed.
func repel(p *particle.Interactive, cursor Point) bool {
	dx, dy := cursor.X-p.X, cursor.Y-p.Y
	d := math.Hypot(dx, dy)
	if d >= repelRadius {
		return false
	}
	if d == 0 {
		// No direction to flee along; use the orbit heading instead.
		dx, dy, d = -math.Cos(p.Angle), -math.Sin(p.Angle), 1
	}
	force := (repelRadius - d) / repelRadius
	p.X -= dx / d * force * repelForce
	p.Y -= dy / d * force * repelForce
	return true
}

func (a *Interactive) Paint(Frame) {
	if a.device == particle.Mobile {
		return
	}
	a.surf.Clear()
	ps := a.store.Interactive
	for i := range ps {
		p := &ps[i]
		ox, oy := Orbit(*p)
		a.surf.Circle(ox, oy, p.Size, surface.PaintOf(p.Color.RGB(), p.Alpha))
		for j := i + 1; j < len(ps); j++ {
			q := &ps[j]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d < linkRadius {
				alpha := linkAlpha * (1 - d/linkRadius)
				a.surf.Line(p.X, p.Y, q.X, q.Y, linkWidth, surface.PaintOf(p.Color.RGB(), alpha))
			}
		}
	}
}

// Orbit returns where p is drawn: its position offset along a circle of
// orbitRadius by its angle.
func Orbit(p particle.Interactive) (x, y float64) {
	return p.X + math.Cos(p.Angle)*orbitRadius, p.Y + math.Sin(p.Angle)*orbitRadius
}

// Nudge moves the home of every particle within nudgeRadius of the cursor
// to a jittered point around it, so the layer drifts towards recent hover
// activity.
func (a *Interactive) Nudge(cursor Point) {
	if a.device == particle.Mobile || a.rng == nil {
		return
	}
	for i := range a.store.Interactive {
		p := &a.store.Interactive[i]
		if math.Hypot(cursor.X-p.X, cursor.Y-p.Y) >= nudgeRadius {
			continue
		}
		p.HomeX = cursor.X + (a.rng.Float64()-0.5)*2*nudgeJitter
		p.HomeY = cursor.Y + (a.rng.Float64()-0.5)*2*nudgeJitter
	}
}
