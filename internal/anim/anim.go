// Package anim implements the per-frame update and render rules of the four
// backdrop layers.
//
// Each animator owns one collection of a shared particle.Store and one
// drawing surface, and is the only code that mutates either. Animators never
// read ambient state: everything they need for a frame arrives in a Frame.
package anim

import (
	"math"
	"math/rand"
	"time"

	"skyscape/internal/particle"
	"skyscape/internal/surface"
)

// Signal is what a step asks of the scheduler.
type Signal int

const (
	// Continue reschedules the animator for the next frame.
	Continue Signal = iota
	// Halt takes the animator out of the frame loop for good.
	Halt
)

func (s Signal) String() string {
	if s == Halt {
		return "halt"
	}
	return "continue"
}

// Point is a position in surface units.
type Point struct{ X, Y float64 }

// Frame is the immutable input snapshot of one frame tick.
type Frame struct {
	Seq         uint64
	Now         time.Time
	Bounds      particle.Bounds
	Cursor      Point
	CursorValid bool
	Hidden      bool
}

// Daytime reports whether the local hour of the frame is in [6,18).
func (f Frame) Daytime() bool {
	h := f.Now.Hour()
	return h >= 6 && h < 18
}

// Animator advances and renders one particle system.
type Animator interface {
	Kind() particle.Kind
	// Init rebuilds the collection for b. rng is kept for later respawns.
	Init(rng *rand.Rand, b particle.Bounds)
	// Step runs one frame of physics followed by one render pass.
	Step(f Frame) Signal
	// Paint renders the current state without advancing it.
	Paint(f Frame)
}

// New returns the animator for k.
func New(k particle.Kind, store *particle.Store, s surface.Surface, d particle.Device, c particle.Counts) Animator {
	b := base{kind: k, store: store, surf: s, device: d, counts: c}
	switch k {
	case particle.KindStar:
		return &Stars{b}
	case particle.KindNebula:
		return &Nebula{b}
	case particle.KindCloud:
		return &Clouds{b}
	default:
		return &Interactive{b}
	}
}

type base struct {
	kind   particle.Kind
	store  *particle.Store
	surf   surface.Surface
	device particle.Device
	counts particle.Counts
	rng    *rand.Rand
}

func (b *base) Kind() particle.Kind { return b.kind }

func (b *base) Init(rng *rand.Rand, bounds particle.Bounds) {
	b.rng = rng
	b.store.ResetKind(b.kind, rng, bounds, b.device, b.counts)
}

// advance adds step to a phase and keeps it in [0, 2π).
func advance(phase, step float64) float64 {
	return math.Mod(phase+step, 2*math.Pi)
}

// oscillate maps sin(phase) from [-1,1] onto [lo,hi].
func oscillate(phase, lo, hi float64) float64 {
	return lo + (math.Sin(phase)+1)/2*(hi-lo)
}
