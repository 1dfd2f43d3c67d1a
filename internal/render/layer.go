// Package render draws the sky layers onto Ebiten offscreen images.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"skyscape/internal/surface"
)

// Layer is a surface.Surface backed by an offscreen image the size of the
// window.
type Layer struct {
	img     *ebiten.Image
	w, h    int
	sprites *Sprites
}

// NewLayer returns a layer with no image yet. The first Resize creates it.
func NewLayer(sp *Sprites) *Layer {
	return &Layer{sprites: sp}
}

func (l *Layer) Size() (int, int) { return l.w, l.h }

// Resize replaces the backing image when the size changes. The contents
// are lost.
func (l *Layer) Resize(w, h int) {
	if w == l.w && h == l.h && l.img != nil {
		return
	}
	if l.img != nil {
		l.img.Deallocate()
	}
	l.w, l.h = w, h
	l.img = ebiten.NewImage(w, h)
}

func (l *Layer) Clear() {
	if l.img != nil {
		l.img.Clear()
	}
}

func (l *Layer) Circle(x, y, r float64, p surface.Paint) {
	if l.img == nil {
		return
	}
	vector.DrawFilledCircle(l.img, float32(x), float32(y), float32(r), p.NRGBA(), true)
}

func (l *Layer) Glow(x, y, r float64, p surface.Paint) {
	l.sprite(l.sprites.glow, x, y, r, r, p)
}

func (l *Layer) Puff(x, y, r float64, p surface.Paint) {
	l.sprite(l.sprites.puff, x, y, r, r, p)
}

func (l *Layer) Ellipse(x, y, rx, ry float64, p surface.Paint) {
	l.sprite(l.sprites.ellipse, x, y, rx, ry, p)
}

func (l *Layer) Line(x0, y0, x1, y1, width float64, p surface.Paint) {
	if l.img == nil {
		return
	}
	vector.StrokeLine(l.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.NRGBA(), true)
}

// sprite stretches a mask over the box of radii rx, ry around x, y and
// tints it with p.
func (l *Layer) sprite(src *ebiten.Image, x, y, rx, ry float64, p surface.Paint) {
	if l.img == nil || rx <= 0 || ry <= 0 {
		return
	}
	c := p.NRGBA()
	a := float32(c.A) / 255
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
	op.GeoM.Scale(2*rx/spriteSize, 2*ry/spriteSize)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R)/255*a, float32(c.G)/255*a, float32(c.B)/255*a, a)
	op.Filter = ebiten.FilterLinear
	l.img.DrawImage(src, op)
}

// Image is the layer's backing image, nil before the first Resize.
func (l *Layer) Image() *ebiten.Image { return l.img }
