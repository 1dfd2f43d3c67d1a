package term

import (
	"io"
	"math"
	"math/rand"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"skyscape/internal/config"
	"skyscape/internal/particle"
	"skyscape/internal/sky"
	"skyscape/internal/surface"
)

func TestCanvasResizeRoundsUp(t *testing.T) {
	c := NewCanvas()
	c.Resize(81, 17)
	if cols, rows := c.Grid(); cols != 11 || rows != 2 {
		t.Fatalf("Grid() = %dx%d, want 11x2", cols, rows)
	}
	if w, h := c.Size(); w != 88 || h != 32 {
		t.Errorf("Size() = %dx%d, want 88x32", w, h)
	}
}

func TestCanvasSmallCircleMarksOneCell(t *testing.T) {
	c := NewCanvas()
	c.Resize(10*CellW, 3*CellH)
	c.Circle(12, 20, 1, surface.White(1))

	for row := 0; row < 3; row++ {
		for col := 0; col < 10; col++ {
			_, a := c.At(col, row)
			if col == 1 && row == 1 {
				if a <= 0 || a >= 1 {
					t.Errorf("centre cell coverage = %v, want dimmed but visible", a)
				}
			} else if a != 0 {
				t.Errorf("cell (%d,%d) coverage = %v, want 0", col, row, a)
			}
		}
	}

	c.Clear()
	if _, a := c.At(1, 1); a != 0 {
		t.Errorf("coverage after Clear = %v", a)
	}
}

func TestCanvasSourceOver(t *testing.T) {
	c := NewCanvas()
	c.Resize(CellW, CellH)
	c.Ellipse(4, 8, 20, 20, surface.PaintOf(particle.RGB{R: 255}, 0.5))
	c.Ellipse(4, 8, 20, 20, surface.PaintOf(particle.RGB{B: 255}, 0.5))

	col, a := c.At(0, 0)
	if math.Abs(a-0.75) > 1e-9 {
		t.Errorf("coverage = %v, want 0.75", a)
	}
	// red contributes 0.25 of 0.75, blue 0.5 of it
	if math.Abs(col.R-1.0/3) > 1e-9 || math.Abs(col.B-2.0/3) > 1e-9 {
		t.Errorf("colour = %+v, want 1/3 red, 2/3 blue", col)
	}
}

func TestCanvasGlowFallsOff(t *testing.T) {
	c := NewCanvas()
	c.Resize(20*CellW, 3*CellH)
	c.Glow(84, 24, 40, surface.White(0.8))

	_, centre := c.At(10, 1)
	_, edge := c.At(14, 1)
	_, outside := c.At(16, 1)
	if math.Abs(centre-0.8) > 1e-9 {
		t.Errorf("centre = %v, want 0.8", centre)
	}
	if edge <= 0 || edge >= centre {
		t.Errorf("edge = %v, want between 0 and %v", edge, centre)
	}
	if outside != 0 {
		t.Errorf("outside = %v, want 0", outside)
	}
}

func TestCanvasLineMarksCellsOnce(t *testing.T) {
	c := NewCanvas()
	c.Resize(5*CellW, CellH)
	c.Line(1, 8, 4*CellW+4, 8, 1, surface.White(0.5))
	for col := 0; col < 5; col++ {
		if _, a := c.At(col, 0); math.Abs(a-0.5) > 1e-9 {
			t.Errorf("cell %d coverage = %v, want 0.5", col, a)
		}
	}
}

func TestGlyphRamp(t *testing.T) {
	if glyph(0) != ' ' {
		t.Errorf("glyph(0) = %q", glyph(0))
	}
	if glyph(1) != '@' || glyph(2) != '@' {
		t.Errorf("full coverage glyph = %q", glyph(1))
	}
	if g := glyph(0.5); g == ' ' || g == '@' {
		t.Errorf("glyph(0.5) = %q, want a middle step", g)
	}
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatal(err)
	}
	ss.SetSize(80, 24)
	t.Cleanup(ss.Fini)
	return ss
}

func newApp(t *testing.T, ss tcell.Screen, clock *testClock, opts ...func(*config.Config, *sky.Options)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.ThemeFile = filepath.Join(t.TempDir(), "theme.json")
	cfg.Typing.Lines = []string{"Hi"}
	so := sky.Options{
		Device: particle.Desktop,
		Counts: cfg.CountsFor(particle.Desktop),
		Rand:   rand.New(rand.NewSource(7)),
		Clock:  clock.Now,
		Logger: log.New(io.Discard),
	}
	for _, o := range opts {
		o(&cfg, &so)
	}
	a, err := New(ss, cfg, so)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func noon() *testClock {
	return &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)}
}

func TestAppStartDrawsSky(t *testing.T) {
	ss := newSimScreen(t)
	a := newApp(t, ss, noon())
	a.Start()

	want := particle.Counts{Stars: 400, Nebula: 600, Clouds: 25, Interactive: 50}
	if got := a.Sky().Counts(); got != want {
		t.Fatalf("Counts() = %+v, want %+v", got, want)
	}
	if lit := litCells(ss); lit == 0 {
		t.Error("no cell was drawn")
	}
	if n := a.Sky().Frames(); n != 1 {
		t.Errorf("Frames() after Start = %d, want 1", n)
	}
}

func litCells(ss tcell.SimulationScreen) int {
	cols, rows := ss.Size()
	lit := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if r, _, _, _ := ss.GetContent(col, row); r != ' ' {
				lit++
			}
		}
	}
	return lit
}

func TestAppReducedMotionSurvivesResize(t *testing.T) {
	ss := newSimScreen(t)
	clock := noon()
	a := newApp(t, ss, clock, func(_ *config.Config, o *sky.Options) { o.ReducedMotion = true })
	a.Start()
	if litCells(ss) == 0 {
		t.Fatal("static sky not drawn at start")
	}

	a.HandleEvent(tcell.NewEventResize(100, 30))
	clock.now = clock.now.Add(300 * time.Millisecond)
	a.Frame()
	if cols, _ := a.canvases[0].Grid(); cols != 100 {
		t.Fatalf("resize not applied, grid cols = %d", cols)
	}
	if litCells(ss) == 0 {
		t.Error("sky blank after resize under reduced motion")
	}
	for _, st := range a.Sky().Stats() {
		if st.Steps != 0 {
			t.Errorf("%s stepped %d times under reduced motion", st.Layer, st.Steps)
		}
	}
}

func TestPaletteColours(t *testing.T) {
	tests := []struct {
		theme   config.Theme
		r, g, b uint8
	}{
		{config.ThemeDark, 8, 10, 24},
		{config.ThemeLight, 120, 150, 196},
	}
	for _, tt := range tests {
		bg, _ := palette(tt.theme)
		if r, g, b := bg.RGB255(); r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%s background = %d,%d,%d, want %d,%d,%d", tt.theme, r, g, b, tt.r, tt.g, tt.b)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("mustHex accepted a malformed colour")
		}
	}()
	mustHex("#zz0000")
}

func TestAppQuitKeys(t *testing.T) {
	ss := newSimScreen(t)
	a := newApp(t, ss, noon())
	a.Start()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.HandleEvent(tt.ev); got != tt.quit {
				t.Errorf("HandleEvent() = %v, want %v", got, tt.quit)
			}
		})
	}
	if a.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)) {
		t.Error("mouse move quit the app")
	}
}

func TestAppThemeToggleIsSaved(t *testing.T) {
	ss := newSimScreen(t)
	a := newApp(t, ss, noon())
	a.Start()
	if a.Theme() != config.ThemeDark {
		t.Fatalf("initial theme = %q", a.Theme())
	}
	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	if a.Theme() != config.ThemeLight {
		t.Errorf("theme = %q, want light", a.Theme())
	}
	if got := config.LoadTheme(a.cfg.ThemeFile); got != config.ThemeLight {
		t.Errorf("saved theme = %q, want light", got)
	}
}

func TestAppResizeIsDebounced(t *testing.T) {
	ss := newSimScreen(t)
	clock := noon()
	a := newApp(t, ss, clock)
	a.Start()

	a.HandleEvent(tcell.NewEventResize(100, 30))
	a.Frame()
	if cols, rows := a.canvases[0].Grid(); cols != 80 || rows != 24 {
		t.Fatalf("grid resized early to %dx%d", cols, rows)
	}

	clock.now = clock.now.Add(300 * time.Millisecond)
	a.Frame()
	for _, c := range a.canvases {
		if cols, rows := c.Grid(); cols != 100 || rows != 30 {
			t.Errorf("grid = %dx%d, want 100x30", cols, rows)
		}
	}
}

func TestAppUnfocusedFreezesStars(t *testing.T) {
	ss := newSimScreen(t)
	a := newApp(t, ss, noon())
	a.Start()

	a.HandleEvent(tcell.NewEventFocus(false))
	before := slices.Clone(a.Sky().Store().Stars)
	a.Frame()
	if !slices.Equal(before, a.Sky().Store().Stars) {
		t.Error("stars moved while unfocused")
	}

	a.HandleEvent(tcell.NewEventFocus(true))
	a.Frame()
	if slices.Equal(before, a.Sky().Store().Stars) {
		t.Error("stars did not resume after focus returned")
	}
}

func TestAppTypingLineOnBottomRow(t *testing.T) {
	ss := newSimScreen(t)
	clock := noon()
	a := newApp(t, ss, clock)
	a.Start()

	a.Frame()
	clock.now = clock.now.Add(time.Second)
	a.Frame()
	if r, _, _, _ := ss.GetContent(39, 23); r != 'H' {
		t.Errorf("bottom row centre = %q, want H", r)
	}
	clock.now = clock.now.Add(60 * time.Millisecond)
	a.Frame()
	if r, _, _, _ := ss.GetContent(40, 23); r != 'i' {
		t.Errorf("second rune = %q, want i", r)
	}
}

func TestAppTypingLineCentresWideRunes(t *testing.T) {
	ss := newSimScreen(t)
	clock := noon()
	a := newApp(t, ss, clock, func(c *config.Config, _ *sky.Options) { c.Typing.Lines = []string{"音楽"} })
	a.Start()

	a.Frame()
	clock.now = clock.now.Add(time.Second)
	a.Frame()
	// one wide rune, two columns: starts at (80-2)/2
	if r, _, _, _ := ss.GetContent(39, 23); r != '音' {
		t.Errorf("column 39 = %q, want 音", r)
	}
	clock.now = clock.now.Add(60 * time.Millisecond)
	a.Frame()
	if r, _, _, _ := ss.GetContent(38, 23); r != '音' {
		t.Errorf("column 38 = %q, want 音", r)
	}
	if r, _, _, _ := ss.GetContent(40, 23); r != '楽' {
		t.Errorf("column 40 = %q, want 楽", r)
	}
}
