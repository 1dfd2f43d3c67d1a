package term

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"skyscape/internal/config"
	"skyscape/internal/sky"
	"skyscape/internal/surface"
	"skyscape/internal/typing"
)

// App runs the sky on a tcell screen.
type App struct {
	screen   tcell.Screen
	cfg      config.Config
	canvases []*Canvas
	sky      *sky.Sky
	writer   *typing.Writer
	theme    config.Theme
	hidden   bool
	clock    func() time.Time
	logger   *log.Logger
}

// New attaches one canvas per enabled layer. The screen must already be
// initialized.
func New(screen tcell.Screen, cfg config.Config, opts sky.Options) (*App, error) {
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
	a := &App{
		screen: screen,
		cfg:    cfg,
		writer: typing.New(cfg.Typing.Options()),
		theme:  config.LoadTheme(cfg.ThemeFile),
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	mgr := surface.NewManager()
	for _, k := range kinds {
		c := NewCanvas()
		mgr.Attach(k, c)
		a.canvases = append(a.canvases, c)
	}
	a.sky = sky.New(opts, mgr)
	if opts.ReducedMotion {
		a.writer.Freeze()
	}
	return a, nil
}

// Start sizes the sky to the screen, runs the first frame and draws it.
func (a *App) Start() {
	cols, rows := a.screen.Size()
	a.sky.Start(cols*CellW, rows*CellH)
	a.sky.Frame(a.hidden)
	a.Draw()
}

// Run drives frames at the configured rate until ctx is cancelled or the
// user quits.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	if !a.sky.Started() {
		a.Start()
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.FPS))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// HandleEvent applies one input event and reports whether to quit.
func (a *App) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		cols, rows := ev.Size()
		a.sky.Resize(cols*CellW, rows*CellH)
	case *tcell.EventFocus:
		a.hidden = !ev.Focused
		a.logger.Debug("focus changed", "hidden", a.hidden)
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.sky.PointerMoved((float64(x)+0.5)*CellW, (float64(y)+0.5)*CellH)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'c':
				return ev.Modifiers()&tcell.ModCtrl != 0
			case 't', 'T':
				a.theme = a.theme.Toggle()
				if err := config.SaveTheme(a.cfg.ThemeFile, a.theme); err != nil {
					a.logger.Warn("theme not saved", "path", a.cfg.ThemeFile, "err", err)
				}
				a.Draw()
			}
		}
	}
	return false
}

// Frame advances the sky and the typing line and redraws.
func (a *App) Frame() {
	a.sky.Frame(a.hidden)
	a.writer.Advance(a.clock())
	a.Draw()
}

// Draw composites the layers and the typing line onto the screen.
func (a *App) Draw() {
	bg, ink := palette(a.theme)
	Compose(a.screen, a.canvases, bg)

	cols, rows := a.screen.Size()
	line := a.writer.Text()
	x := (cols - a.writer.Width()) / 2
	style := tcell.StyleDefault.Background(tcellColor(bg)).Foreground(tcellColor(ink)).Bold(true)
	for _, r := range line {
		a.screen.SetContent(x, rows-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	a.screen.Show()
}

// Theme is the active backdrop theme.
func (a *App) Theme() config.Theme { return a.theme }

// Sky exposes the core for status reporting.
func (a *App) Sky() *sky.Sky { return a.sky }
