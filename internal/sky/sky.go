// Package sky assembles the animated backdrop: one particle store, one
// animator per attached layer surface, the frame scheduler and the resize
// debouncer. Frontends feed it viewport sizes, pointer moves and a
// visibility flag, and call Frame once per display frame.
package sky

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"skyscape/internal/anim"
	"skyscape/internal/particle"
	"skyscape/internal/scheduler"
	"skyscape/internal/surface"
)

// Options are the startup parameters of a Sky. They are resolved once and
// never re-queried. Counts is used as given: zero counts leave the layers
// empty.
type Options struct {
	Device        particle.Device
	ReducedMotion bool
	Counts        particle.Counts
	HiddenPolicy  scheduler.HiddenPolicy
	// Debounce is the resize quiet window. Zero means scheduler.DefaultQuiet.
	Debounce time.Duration
	Rand     *rand.Rand
	Clock    func() time.Time
	Logger   *log.Logger
}

// Sky is the backdrop core. It is driven from a single goroutine.
type Sky struct {
	opts        Options
	store       particle.Store
	mgr         *surface.Manager
	animators   []anim.Animator
	interactive *anim.Interactive
	sched       *scheduler.Scheduler
	debounce    *scheduler.Debouncer
	logger      *log.Logger

	seq         uint64
	cursor      anim.Point
	cursorValid bool
}

// New builds a Sky over the surfaces attached to mgr. A layer without a
// surface gets no animator.
func New(opts Options, mgr *surface.Manager) *Sky {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = scheduler.DefaultQuiet
	}

	s := &Sky{
		opts:     opts,
		mgr:      mgr,
		sched:    scheduler.New(opts.ReducedMotion, opts.Logger),
		debounce: scheduler.NewDebouncer(opts.Debounce),
		logger:   opts.Logger,
	}
	for _, k := range particle.Kinds {
		surf, ok := mgr.Layer(k)
		if !ok {
			s.logger.Debug("no surface for layer, animator not started", "layer", k)
			continue
		}
		a := anim.New(k, &s.store, surf, opts.Device, opts.Counts)
		if ia, ok := a.(*anim.Interactive); ok {
			s.interactive = ia
		}
		s.animators = append(s.animators, a)
		s.sched.Add(scheduler.Task{Animator: a, PauseWhenHidden: opts.HiddenPolicy.Suspends(k)})
	}
	return s
}

// Start sizes the surfaces to w x h, populates every layer and starts the
// frame loop. With reduced motion it paints once and later paints only
// follow a reinitialization.
func (s *Sky) Start(w, h int) {
	s.Reinit(w, h)
	s.sched.Start(s.frame(false))
	s.logger.Debug("sky started",
		"size", [2]int{w, h},
		"device", s.opts.Device,
		"reduced_motion", s.opts.ReducedMotion,
		"hidden_policy", s.opts.HiddenPolicy,
	)
}

// Started reports whether Start has run.
func (s *Sky) Started() bool { return s.sched.Started() }

// Resize schedules a reinitialization at w x h once resizing has been quiet
// for the debounce window.
func (s *Sky) Resize(w, h int) {
	s.debounce.Trigger(s.opts.Clock(), w, h)
}

// Reinit resizes every surface to w x h and rebuilds every collection
// immediately. Running animators pick up the new collections on their next
// step.
func (s *Sky) Reinit(w, h int) {
	s.mgr.Resize(w, h)
	b := s.mgr.Bounds()
	for _, a := range s.animators {
		a.Init(s.opts.Rand, b)
	}
	s.logger.Debug("layers reinitialized", "width", b.W, "height", b.H)
	if s.opts.ReducedMotion && s.sched.Started() {
		s.sched.Repaint(s.frame(false))
	}
}

// PointerMoved records the live cursor and drifts nearby interactive homes
// towards it. Ignored on mobile.
func (s *Sky) PointerMoved(x, y float64) {
	if s.opts.Device == particle.Mobile {
		return
	}
	s.cursor = anim.Point{X: x, Y: y}
	s.cursorValid = true
	if s.interactive != nil {
		s.interactive.Nudge(s.cursor)
	}
}

// PointerLeft forgets the cursor, so no particle is repelled.
func (s *Sky) PointerLeft() { s.cursorValid = false }

// Frame runs one frame: a due resize is applied first, then every scheduled
// animator steps against the same snapshot.
func (s *Sky) Frame(hidden bool) {
	if w, h, ok := s.debounce.Poll(s.opts.Clock()); ok {
		s.Reinit(w, h)
	}
	s.seq++
	s.sched.Tick(s.frame(hidden))
}

func (s *Sky) frame(hidden bool) anim.Frame {
	return anim.Frame{
		Seq:         s.seq,
		Now:         s.opts.Clock(),
		Bounds:      s.mgr.Bounds(),
		Cursor:      s.cursor,
		CursorValid: s.cursorValid,
		Hidden:      hidden,
	}
}

// Store exposes the particle collections for inspection.
func (s *Sky) Store() *particle.Store { return &s.store }

// Counts reports the current population of every layer.
func (s *Sky) Counts() particle.Counts { return s.store.Counts() }

// Stats reports the scheduler state of every animator.
func (s *Sky) Stats() []scheduler.TaskStats { return s.sched.Stats() }

// Frames returns how many frames have been run.
func (s *Sky) Frames() uint64 { return s.seq }
