// Package app is the windowed frontend: an Ebiten game that composites the
// sky layers under a splash screen and the typing line.
package app

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"skyscape/internal/config"
	"skyscape/internal/render"
	"skyscape/internal/sky"
	"skyscape/internal/surface"
	"skyscape/internal/typing"
)

var (
	darkSky  = color.RGBA{8, 10, 24, 255}
	lightSky = color.RGBA{120, 150, 196, 255}
	darkInk  = color.RGBA{20, 24, 48, 255}
	lightInk = color.RGBA{235, 238, 255, 255}

	face = text.NewGoXFace(basicfont.Face7x13)
)

const lineHeight = 20.0

var splashLines = []string{
	"Skyscape",
	"Move the pointer through the sky.",
	"M/Space: Music, T: Theme, F: Maximize, Esc: Restore",
	"Click or press Enter to begin",
}

// Game implements ebiten.Game.
type Game struct {
	cfg    config.Config
	sky    *sky.Sky
	layers []*render.Layer
	writer *typing.Writer
	music  *music
	theme  config.Theme
	clock  func() time.Time
	logger *log.Logger

	w, h        int
	splash      bool
	maximized   bool
	cx, cy      int
	cursorValid bool
}

// New builds the game and its layer images for the enabled layers.
func New(cfg config.Config, opts sky.Options) (*Game, error) {
	kinds, err := cfg.LayerKinds()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	sprites := render.NewSprites(opts.Clock().UnixNano())
	mgr := surface.NewManager()
	g := &Game{
		cfg:    cfg,
		writer: typing.New(cfg.Typing.Options()),
		theme:  config.LoadTheme(cfg.ThemeFile),
		clock:  opts.Clock,
		logger: opts.Logger,
		splash: true,
	}
	for _, k := range kinds {
		l := render.NewLayer(sprites)
		mgr.Attach(k, l)
		g.layers = append(g.layers, l)
	}
	g.sky = sky.New(opts, mgr)
	if opts.ReducedMotion {
		g.writer.Freeze()
	}

	g.music, err = newMusic()
	if err != nil {
		g.logger.Warn("audio unavailable", "err", err)
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle("Skyscape")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	g.windowKeys()

	hidden := !ebiten.IsFocused()
	if g.music != nil {
		g.music.SetHidden(hidden)
	}
	g.pointer()

	if g.splash {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.splash = false
			if g.music != nil {
				g.music.Play()
			}
		}
	} else if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.music != nil {
			g.music.Toggle()
			g.logger.Debug("music toggled", "playing", g.music.Playing())
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme = g.theme.Toggle()
		if err := config.SaveTheme(g.cfg.ThemeFile, g.theme); err != nil {
			g.logger.Warn("theme not saved", "path", g.cfg.ThemeFile, "err", err)
		}
	}

	if g.sky.Started() {
		g.sky.Frame(hidden)
	}
	g.writer.Advance(g.clock())
	return nil
}

// windowKeys maximizes with F and restores with Esc.
func (g *Game) windowKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.maximized = !g.maximized
		if g.maximized {
			ebiten.MaximizeWindow()
		} else {
			g.restore()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.maximized {
		g.maximized = false
		g.restore()
	}
}

func (g *Game) restore() {
	ebiten.RestoreWindow()
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
}

// pointer forwards cursor moves inside the window and reports when the
// cursor leaves it.
func (g *Game) pointer() {
	x, y := ebiten.CursorPosition()
	inside := x >= 0 && y >= 0 && x < g.w && y < g.h
	switch {
	case !inside && g.cursorValid:
		g.cursorValid = false
		g.sky.PointerLeft()
	case inside && (!g.cursorValid || x != g.cx || y != g.cy):
		g.cx, g.cy, g.cursorValid = x, y, true
		g.sky.PointerMoved(float64(x), float64(y))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg, ink := darkSky, lightInk
	if g.theme == config.ThemeLight {
		bg, ink = lightSky, darkInk
	}
	screen.Fill(bg)
	for _, l := range g.layers {
		if img := l.Image(); img != nil {
			screen.DrawImage(img, nil)
		}
	}

	if g.splash {
		top := (float64(g.h) - float64(len(splashLines))*lineHeight) / 2
		for i, line := range splashLines {
			g.centered(screen, line, top+float64(i)*lineHeight, ink)
		}
		return
	}
	line := g.writer.Text()
	if g.clock().UnixMilli()/500%2 == 0 {
		line += "_"
	}
	g.centered(screen, line, float64(g.h)-3*lineHeight, ink)
}

func (g *Game) centered(screen *ebiten.Image, s string, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(g.w)-text.Advance(s, face))/2, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Layout keeps the screen 1:1 with the window. The first known size starts
// the sky; later changes go through the resize debouncer.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.maximized = ebiten.IsWindowMaximized()
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		if !g.sky.Started() {
			g.sky.Start(g.w, g.h)
		} else {
			g.sky.Resize(g.w, g.h)
		}
	}
	return outsideWidth, outsideHeight
}
