// Package surface defines the drawing surfaces the particle layers render to
// and the manager that keeps them sized to the viewport.
package surface

import (
	"image/color"

	"skyscape/internal/particle"
)

// Paint is a straight (non-premultiplied) colour with fractional opacity.
type Paint struct {
	R, G, B uint8
	A       float64
}

// PaintOf combines a palette colour with an opacity.
func PaintOf(c particle.RGB, a float64) Paint {
	return Paint{R: c.R, G: c.G, B: c.B, A: a}
}

// White and Black are the star, cloud and cloud-shadow colours.
func White(a float64) Paint { return Paint{R: 255, G: 255, B: 255, A: a} }
func Black(a float64) Paint { return Paint{A: a} }

// NRGBA converts p for APIs that take an image/color value.
func (p Paint) NRGBA() color.NRGBA {
	a := p.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: uint8(a*255 + 0.5)}
}

// Surface receives the draw commands of one layer. Coordinates are in
// surface units with the origin at the top left.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	// Circle fills a disc.
	Circle(x, y, r float64, p Paint)
	// Glow fills a radial gradient: p.A at the centre, half of it at r/2,
	// transparent at r.
	Glow(x, y, r float64, p Paint)
	// Puff fills a cloud lobe: p.A at the centre, 60% of it at 0.7r,
	// transparent at r.
	Puff(x, y, r float64, p Paint)
	Ellipse(x, y, rx, ry float64, p Paint)
	Line(x0, y0, x1, y1, width float64, p Paint)
}

// Manager owns the surfaces of the stacked layers.
type Manager struct {
	layers [len(particle.Kinds)]Surface
	w, h   int
}

// NewManager returns a manager with no surfaces attached.
func NewManager() *Manager { return &Manager{} }

// Attach registers s as the surface of layer k and sizes it to the current
// viewport when one is known.
func (m *Manager) Attach(k particle.Kind, s Surface) {
	m.layers[k] = s
	if s != nil && m.w > 0 && m.h > 0 {
		s.Resize(m.w, m.h)
	}
}

// Layer returns the surface of k. ok is false when none is attached.
func (m *Manager) Layer(k particle.Kind) (s Surface, ok bool) {
	s = m.layers[k]
	return s, s != nil
}

// Layers returns the attached layers back to front.
func (m *Manager) Layers() []particle.Kind {
	var ks []particle.Kind
	for _, k := range particle.Kinds {
		if m.layers[k] != nil {
			ks = append(ks, k)
		}
	}
	return ks
}

// Resize sets every attached surface to w x h. Particle positions computed
// for the old size are stale afterwards.
func (m *Manager) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.w, m.h = w, h
	for _, s := range m.layers {
		if s != nil {
			s.Resize(w, h)
		}
	}
}

// Size returns the viewport size last passed to Resize.
func (m *Manager) Size() (w, h int) { return m.w, m.h }

// Bounds returns Size as particle bounds.
func (m *Manager) Bounds() particle.Bounds {
	return particle.Bounds{W: float64(m.w), H: float64(m.h)}
}
