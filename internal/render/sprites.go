package render

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"

	"skyscape/internal/surface"
)

// spriteSize is the edge of every gradient sprite in pixels. Sprites are
// scaled to the requested radius with linear filtering.
const spriteSize = 64

// Sprites are white alpha masks for the gradient shapes. They are tinted
// per draw through the colour scale.
type Sprites struct {
	glow    *ebiten.Image
	puff    *ebiten.Image
	ellipse *ebiten.Image
}

// NewSprites renders the masks. seed picks the noise that roughens the
// cloud lobe edges.
func NewSprites(seed int64) *Sprites {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	return &Sprites{
		glow: mask(func(dx, dy, d float64) float64 {
			return surface.Falloff(surface.GlowStops, d)
		}),
		puff: mask(func(dx, dy, d float64) float64 {
			a := surface.Falloff(surface.PuffStops, d)
			n := noise.Noise2D(dx*3, dy*3)
			return clamp01(a * (1 + 0.2*n))
		}),
		ellipse: mask(func(dx, dy, d float64) float64 {
			// one pixel of edge softening
			edge := 1 - (d-1)*spriteSize/2
			return clamp01(edge)
		}),
	}
}

// mask fills a premultiplied white sprite from alpha(dx, dy, d), where dx
// and dy run over [-1, 1] and d is the distance from the centre.
func mask(alpha func(dx, dy, d float64) float64) *ebiten.Image {
	pix := make([]byte, spriteSize*spriteSize*4)
	half := float64(spriteSize) / 2
	for y := 0; y < spriteSize; y++ {
		for x := 0; x < spriteSize; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			v := byte(alpha(dx, dy, math.Hypot(dx, dy))*255 + 0.5)
			i := (y*spriteSize + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, v
		}
	}
	img := ebiten.NewImage(spriteSize, spriteSize)
	img.WritePixels(pix)
	return img
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
