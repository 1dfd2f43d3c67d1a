package anim

import (
	"math"

	"skyscape/internal/particle"
	"skyscape/internal/surface"
)

const (
	twinkleStep = 0.02
	daylightDim = 0.3
	haloAlpha   = 0.2
)

// Stars bounces white points around the viewport.
type Stars struct{ base }

func (a *Stars) Step(f Frame) Signal {
	a.move(f.Bounds)
	a.Paint(f)
	return Continue
}

// move reflects a velocity component once its coordinate leaves the
// viewport. The coordinate itself is not clamped, so a star may overshoot by
// up to one frame of travel.
func (a *Stars) move(b particle.Bounds) {
	for i := range a.store.Stars {
		s := &a.store.Stars[i]
		s.X += s.DX
		s.Y += s.DY
		s.Twinkle = advance(s.Twinkle, twinkleStep)

		if s.X < 0 {
			s.DX = math.Abs(s.DX)
		} else if s.X > b.W {
			s.DX = -math.Abs(s.DX)
		}
		if s.Y < 0 {
			s.DY = math.Abs(s.DY)
		} else if s.Y > b.H {
			s.DY = -math.Abs(s.DY)
		}
	}
}

func (a *Stars) Paint(f Frame) {
	a.surf.Clear()
	day := f.Daytime()
	for _, s := range a.store.Stars {
		alpha := StarAlpha(s, day)
		a.surf.Circle(s.X, s.Y, s.R, surface.White(alpha))
		if s.R > 1 {
			a.surf.Circle(s.X, s.Y, s.R*2, surface.White(alpha*haloAlpha))
		}
	}
}

// StarAlpha is the rendered opacity of s: dimmed during daytime and
// modulated by the twinkle phase into [0.5,1] of its base alpha.
func StarAlpha(s particle.Star, daytime bool) float64 {
	alpha := s.Alpha
	if daytime {
		alpha *= daylightDim
	}
	return alpha * oscillate(s.Twinkle, 0.5, 1)
}
