// Package scheduler drives the layer animators on a shared frame clock.
//
// Every animator is a cooperative task that runs once per frame and reports
// whether it wants to continue. The scheduler owns the lifecycle of each
// task (Idle, Running, Suspended), so reduced motion and page visibility are
// explicit state transitions rather than early returns inside animators.
// Everything runs on the caller's goroutine; nothing here is safe for
// concurrent use.
package scheduler

import (
	"fmt"

	"github.com/charmbracelet/log"

	"skyscape/internal/anim"
	"skyscape/internal/particle"
)

// State is the lifecycle state of one task.
type State int

const (
	// Idle tasks are not scheduled: not yet started, halted, or frozen by
	// reduced motion after the static first paint.
	Idle State = iota
	Running
	// Suspended tasks keep their slot but skip physics and drawing.
	Suspended
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	}
	return "idle"
}

// HiddenPolicy selects which tasks are suspended while the page is hidden.
type HiddenPolicy int

const (
	// HideStars suspends only the starfield; the other layers keep running.
	HideStars HiddenPolicy = iota
	// HideAll suspends every layer.
	HideAll
)

// Suspends reports whether layer k pauses while hidden under p.
func (p HiddenPolicy) Suspends(k particle.Kind) bool {
	return p == HideAll || k == particle.KindStar
}

func (p HiddenPolicy) String() string {
	if p == HideAll {
		return "all"
	}
	return "stars"
}

// Task is an animator plus its scheduling policy.
type Task struct {
	Animator        anim.Animator
	PauseWhenHidden bool
}

// TaskStats is a snapshot of one task for reporting.
type TaskStats struct {
	Layer     particle.Kind
	State     State
	Steps     uint64
	Faults    uint64
	LastFault string
}

type entry struct {
	task      Task
	state     State
	steps     uint64
	faults    uint64
	lastFault string
}

// faultLogEvery throttles logging of a fault that repeats every frame.
const faultLogEvery = 300

// Scheduler runs tasks once per Tick.
type Scheduler struct {
	entries       []*entry
	reducedMotion bool
	started       bool
	logger        *log.Logger
}

// New returns a scheduler. With reducedMotion, Start paints every task once
// and no task is ever stepped.
func New(reducedMotion bool, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{reducedMotion: reducedMotion, logger: logger}
}

// Add registers t in the Idle state. Tasks added after Start stay idle.
func (s *Scheduler) Add(t Task) {
	s.entries = append(s.entries, &entry{task: t})
}

// Start moves every task to Running, or performs the static first paint
// when reduced motion is set. Only the first call has an effect.
func (s *Scheduler) Start(f anim.Frame) {
	if s.started {
		return
	}
	s.started = true

	if s.reducedMotion {
		s.Repaint(f)
		s.logger.Debug("reduced motion: painted static frame", "tasks", len(s.entries))
		return
	}

	for _, e := range s.entries {
		e.state = Running
	}
	s.logger.Debug("scheduler started", "tasks", len(s.entries))
}

// Repaint renders every task's current state once without stepping it.
// Surfaces lose their contents on resize, so a reduced-motion sky is
// repainted after each reinitialization.
func (s *Scheduler) Repaint(f anim.Frame) {
	for _, e := range s.entries {
		s.guard(e, func() anim.Signal {
			e.task.Animator.Paint(f)
			return anim.Continue
		})
	}
}

// Started reports whether Start has been called.
func (s *Scheduler) Started() bool { return s.started }

// Tick runs one frame of every scheduled task.
func (s *Scheduler) Tick(f anim.Frame) {
	if !s.started {
		return
	}
	for _, e := range s.entries {
		switch e.state {
		case Idle:
			continue
		case Running:
			if f.Hidden && e.task.PauseWhenHidden {
				e.state = Suspended
				s.logger.Debug("task suspended", "layer", e.layer())
				continue
			}
		case Suspended:
			if f.Hidden {
				continue
			}
			e.state = Running
			s.logger.Debug("task resumed", "layer", e.layer())
		}

		e.steps++
		if s.guard(e, func() anim.Signal { return e.task.Animator.Step(f) }) == anim.Halt {
			e.state = Idle
			s.logger.Debug("task halted", "layer", e.layer())
		}
	}
}

// guard runs fn and turns a panic into a logged fault so that one bad frame
// never stops a layer.
func (s *Scheduler) guard(e *entry, fn func() anim.Signal) (sig anim.Signal) {
	defer func() {
		if r := recover(); r != nil {
			e.faults++
			e.lastFault = fmt.Sprint(r)
			if e.faults%faultLogEvery == 1 {
				s.logger.Error("frame fault", "layer", e.layer(), "err", r, "faults", e.faults)
			}
			sig = anim.Continue
		}
	}()
	return fn()
}

// Stats reports every task in registration order.
func (s *Scheduler) Stats() []TaskStats {
	out := make([]TaskStats, len(s.entries))
	for i, e := range s.entries {
		out[i] = TaskStats{
			Layer:     e.layer(),
			State:     e.state,
			Steps:     e.steps,
			Faults:    e.faults,
			LastFault: e.lastFault,
		}
	}
	return out
}

func (e *entry) layer() particle.Kind { return e.task.Animator.Kind() }
