// Package term is the terminal frontend. Each sky layer is rasterised into
// a grid of colour cells and the grids are composited onto a tcell screen.
package term

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"skyscape/internal/surface"
)

// One terminal cell covers CellW x CellH surface units, so distances such
// as the repulsion radius keep their meaning on a character grid.
const (
	CellW = 8
	CellH = 16
)

type cell struct {
	c colorful.Color
	a float64
}

// Canvas is a surface.Surface over terminal cells. Every cell carries a
// straight colour and its accumulated coverage.
type Canvas struct {
	cols, rows int
	cells      []cell
}

func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) Size() (int, int) { return c.cols * CellW, c.rows * CellH }

// Resize fits the grid to w x h units, rounding up to whole cells.
func (c *Canvas) Resize(w, h int) {
	cols := (w + CellW - 1) / CellW
	rows := (h + CellH - 1) / CellH
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	c.cells = make([]cell, cols*rows)
}

// Grid returns the size in cells.
func (c *Canvas) Grid() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Clear() { clear(c.cells) }

// At returns the colour and coverage of a cell.
func (c *Canvas) At(col, row int) (colorful.Color, float64) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return colorful.Color{}, 0
	}
	cl := c.cells[row*c.cols+col]
	return cl.c, cl.a
}

func solid(d float64) float64 {
	if d <= 1 {
		return 1
	}
	return 0
}

func (c *Canvas) Circle(x, y, r float64, p surface.Paint) { c.fill(x, y, r, r, p, solid) }

func (c *Canvas) Glow(x, y, r float64, p surface.Paint) {
	c.fill(x, y, r, r, p, func(d float64) float64 { return surface.Falloff(surface.GlowStops, d) })
}

func (c *Canvas) Puff(x, y, r float64, p surface.Paint) {
	c.fill(x, y, r, r, p, func(d float64) float64 { return surface.Falloff(surface.PuffStops, d) })
}

func (c *Canvas) Ellipse(x, y, rx, ry float64, p surface.Paint) { c.fill(x, y, rx, ry, p, solid) }

// Line marks every cell the segment passes through once.
func (c *Canvas) Line(x0, y0, x1, y1, width float64, p surface.Paint) {
	a := p.A * math.Min(1, width)
	n := int(math.Hypot(x1-x0, y1-y0)/(CellW/2)) + 1
	last := -1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		idx, ok := c.index(x0+t*(x1-x0), y0+t*(y1-y0))
		if !ok || idx == last {
			continue
		}
		last = idx
		c.blend(idx, paintColor(p), a)
	}
}

// fill rasterises an elliptical shape. shape maps the normalised distance
// from the centre to the nearest point of each cell onto an opacity factor.
// Shapes smaller than a cell are dimmed by their size.
func (c *Canvas) fill(x, y, rx, ry float64, p surface.Paint, shape func(d float64) float64) {
	if rx <= 0 || ry <= 0 || p.A <= 0 {
		return
	}
	scale := math.Min(1, 2*math.Min(rx, ry)/CellW)
	col0, col1 := clampRange(int(math.Floor((x-rx)/CellW)), int(math.Floor((x+rx)/CellW)), c.cols)
	row0, row1 := clampRange(int(math.Floor((y-ry)/CellH)), int(math.Floor((y+ry)/CellH)), c.rows)
	col := paintColor(p)
	for row := row0; row <= row1; row++ {
		ny := nearest(y, float64(row*CellH), CellH)
		for cl := col0; cl <= col1; cl++ {
			nx := nearest(x, float64(cl*CellW), CellW)
			d := math.Hypot((nx-x)/rx, (ny-y)/ry)
			c.blend(row*c.cols+cl, col, p.A*scale*shape(d))
		}
	}
}

// blend composites a straight colour over the cell (source over).
func (c *Canvas) blend(i int, col colorful.Color, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	dst := &c.cells[i]
	out := a + dst.a*(1-a)
	dst.c = dst.c.BlendRgb(col, a/out)
	dst.a = out
}

func (c *Canvas) index(x, y float64) (int, bool) {
	col := int(math.Floor(x / CellW))
	row := int(math.Floor(y / CellH))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

// nearest clamps v into the cell [lo, lo+size).
func nearest(v, lo, size float64) float64 {
	return math.Max(lo, math.Min(lo+size, v))
}

func clampRange(lo, hi, n int) (int, int) {
	return max(lo, 0), min(hi, n-1)
}

func paintColor(p surface.Paint) colorful.Color {
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}
