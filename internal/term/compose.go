package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"skyscape/internal/config"
)

// ramp maps total coverage to a glyph, faintest first.
var ramp = []rune(" .:-=+*#%@")

var (
	darkSky  = mustHex("#080a18")
	lightSky = mustHex("#7896c4")
	darkInk  = mustHex("#141830")
	lightInk = mustHex("#ebeeff")
)

// mustHex parses a built-in colour and panics on a malformed literal.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func palette(t config.Theme) (bg, ink colorful.Color) {
	if t == config.ThemeLight {
		return lightSky, darkInk
	}
	return darkSky, lightInk
}

// Compose writes the layers back to front over bg. The glyph shows how
// much of the cell the layers cover; its colour is the blended result.
func Compose(screen tcell.Screen, layers []*Canvas, bg colorful.Color) {
	cols, rows := screen.Size()
	base := tcell.StyleDefault.Background(tcellColor(bg))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c, rest := bg, 1.0
			for _, l := range layers {
				lc, a := l.At(col, row)
				if a <= 0 {
					continue
				}
				c = c.BlendRgb(lc, a)
				rest *= 1 - a
			}
			screen.SetContent(col, row, glyph(1-rest), nil, base.Foreground(tcellColor(c)))
		}
	}
}

func glyph(coverage float64) rune {
	i := int(coverage*float64(len(ramp)-1) + 0.5)
	return ramp[max(0, min(i, len(ramp)-1))]
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
