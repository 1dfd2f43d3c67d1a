package scheduler

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"skyscape/internal/anim"
	"skyscape/internal/particle"
)

type fakeAnimator struct {
	kind    particle.Kind
	steps   int
	paints  int
	panicAt int // step number that panics, 0 for never
	haltAt  int // step number that halts, 0 for never
}

func (f *fakeAnimator) Kind() particle.Kind { return f.kind }

func (f *fakeAnimator) Init(*rand.Rand, particle.Bounds) {}

func (f *fakeAnimator) Paint(anim.Frame) { f.paints++ }

func (f *fakeAnimator) Step(anim.Frame) anim.Signal {
	f.steps++
	if f.steps == f.panicAt {
		panic("draw failed")
	}
	if f.steps == f.haltAt {
		return anim.Halt
	}
	return anim.Continue
}

func quiet() *log.Logger { return log.New(io.Discard) }

func newScheduler(reduced bool, policy HiddenPolicy) (*Scheduler, []*fakeAnimator) {
	s := New(reduced, quiet())
	var fakes []*fakeAnimator
	for _, k := range particle.Kinds {
		f := &fakeAnimator{kind: k}
		fakes = append(fakes, f)
		s.Add(Task{Animator: f, PauseWhenHidden: policy.Suspends(k)})
	}
	return s, fakes
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	s, fakes := newScheduler(false, HideStars)
	s.Tick(anim.Frame{})
	for _, f := range fakes {
		if f.steps != 0 {
			t.Fatalf("%s stepped before Start", f.kind)
		}
	}
	for _, st := range s.Stats() {
		if st.State != Idle {
			t.Errorf("%s state = %s, want idle", st.Layer, st.State)
		}
	}
}

func TestStartRunsEveryTask(t *testing.T) {
	s, fakes := newScheduler(false, HideStars)
	s.Start(anim.Frame{})
	s.Start(anim.Frame{}) // second call ignored
	for i := 0; i < 3; i++ {
		s.Tick(anim.Frame{Seq: uint64(i)})
	}
	for _, f := range fakes {
		if f.steps != 3 {
			t.Errorf("%s steps = %d, want 3", f.kind, f.steps)
		}
		if f.paints != 0 {
			t.Errorf("%s static paints = %d, want 0", f.kind, f.paints)
		}
	}
}

func TestReducedMotionPaintsOnce(t *testing.T) {
	s, fakes := newScheduler(true, HideStars)
	s.Start(anim.Frame{})
	for i := 0; i < 100; i++ {
		s.Tick(anim.Frame{})
	}
	for _, f := range fakes {
		if f.paints+f.steps != 1 {
			t.Errorf("%s render passes = %d, want exactly 1", f.kind, f.paints+f.steps)
		}
	}
	for _, st := range s.Stats() {
		if st.State != Idle {
			t.Errorf("%s state = %s, want idle", st.Layer, st.State)
		}
	}
}

func TestRepaintPaintsWithoutStepping(t *testing.T) {
	s, fakes := newScheduler(true, HideStars)
	s.Start(anim.Frame{})
	s.Repaint(anim.Frame{Seq: 1})
	s.Tick(anim.Frame{Seq: 2})
	for _, f := range fakes {
		if f.paints != 2 {
			t.Errorf("%s paints = %d, want 2", f.kind, f.paints)
		}
		if f.steps != 0 {
			t.Errorf("%s steps = %d, want 0", f.kind, f.steps)
		}
	}
}

func TestHiddenSuspendsOnlyStarsByDefault(t *testing.T) {
	s, fakes := newScheduler(false, HideStars)
	s.Start(anim.Frame{})

	s.Tick(anim.Frame{Hidden: true})
	s.Tick(anim.Frame{Hidden: true})

	for _, f := range fakes {
		want := 2
		if f.kind == particle.KindStar {
			want = 0
		}
		if f.steps != want {
			t.Errorf("%s steps while hidden = %d, want %d", f.kind, f.steps, want)
		}
	}
	if st := s.Stats()[0]; st.State != Suspended {
		t.Fatalf("star state = %s, want suspended", st.State)
	}

	s.Tick(anim.Frame{})
	if st := s.Stats()[0]; st.State != Running {
		t.Errorf("star state after visible = %s, want running", st.State)
	}
	if fakes[0].steps != 1 {
		t.Errorf("star steps after resume = %d, want 1", fakes[0].steps)
	}
}

func TestHideAllSuspendsEveryTask(t *testing.T) {
	s, fakes := newScheduler(false, HideAll)
	s.Start(anim.Frame{})
	s.Tick(anim.Frame{Hidden: true})
	for _, f := range fakes {
		if f.steps != 0 {
			t.Errorf("%s stepped while hidden", f.kind)
		}
	}
}

func TestHaltMovesTaskToIdle(t *testing.T) {
	s := New(false, quiet())
	f := &fakeAnimator{kind: particle.KindInteractive, haltAt: 1}
	s.Add(Task{Animator: f})
	s.Start(anim.Frame{})
	for i := 0; i < 5; i++ {
		s.Tick(anim.Frame{})
	}
	if f.steps != 1 {
		t.Errorf("steps = %d, want 1", f.steps)
	}
	if st := s.Stats()[0]; st.State != Idle {
		t.Errorf("state = %s, want idle", st.State)
	}
}

func TestFaultDoesNotStopLoop(t *testing.T) {
	var buf bytes.Buffer
	s := New(false, log.New(&buf))
	f := &fakeAnimator{kind: particle.KindNebula, panicAt: 2}
	s.Add(Task{Animator: f})
	s.Start(anim.Frame{})
	for i := 0; i < 4; i++ {
		s.Tick(anim.Frame{})
	}

	if f.steps != 4 {
		t.Errorf("steps = %d, want 4", f.steps)
	}
	st := s.Stats()[0]
	if st.State != Running || st.Faults != 1 || st.LastFault != "draw failed" {
		t.Errorf("stats = %+v", st)
	}
	if !strings.Contains(buf.String(), "frame fault") {
		t.Errorf("fault not logged: %q", buf.String())
	}
}

func TestHiddenPolicySuspends(t *testing.T) {
	for _, k := range particle.Kinds {
		if got, want := HideStars.Suspends(k), k == particle.KindStar; got != want {
			t.Errorf("HideStars.Suspends(%s) = %v", k, got)
		}
		if !HideAll.Suspends(k) {
			t.Errorf("HideAll.Suspends(%s) = false", k)
		}
	}
}

func TestDebouncerFiresAfterQuietWindow(t *testing.T) {
	d := NewDebouncer(DefaultQuiet)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, _, ok := d.Poll(t0); ok {
		t.Fatal("fired with nothing pending")
	}

	// A drag produces a storm of events; only the last size survives.
	for i := 0; i < 10; i++ {
		d.Trigger(t0.Add(time.Duration(i)*50*time.Millisecond), 800+i, 600+i)
	}
	last := t0.Add(450 * time.Millisecond)

	if _, _, ok := d.Poll(last.Add(249 * time.Millisecond)); ok {
		t.Fatal("fired inside the quiet window")
	}
	w, h, ok := d.Poll(last.Add(250 * time.Millisecond))
	if !ok || w != 809 || h != 609 {
		t.Fatalf("Poll() = %d,%d,%v, want 809,609,true", w, h, ok)
	}
	if _, _, ok := d.Poll(last.Add(time.Second)); ok {
		t.Error("fired twice for one burst")
	}
	if d.Pending() {
		t.Error("still pending after firing")
	}
}
