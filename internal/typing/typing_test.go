package typing

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newWriter(lines ...string) *Writer {
	return New(Options{
		Lines:       lines,
		Start:       time.Second,
		TypeDelay:   60 * time.Millisecond,
		DeleteDelay: 40 * time.Millisecond,
		Hold:        2 * time.Second,
		Gap:         500 * time.Millisecond,
	})
}

func TestTypesAfterStartDelay(t *testing.T) {
	w := newWriter("abc", "xy")
	w.Advance(t0)
	w.Advance(t0.Add(999 * time.Millisecond))
	if got := w.Text(); got != "" {
		t.Fatalf("typed %q before the start delay", got)
	}

	steps := []struct {
		at   time.Duration
		want string
	}{
		{1000, "a"},
		{1059, "a"},
		{1060, "ab"},
		{1120, "abc"},
		{3119, "abc"}, // holding
		{3120, "ab"},
		{3160, "a"},
		{3200, ""},
		{3699, ""}, // gap
		{3700, "x"},
	}
	for _, s := range steps {
		w.Advance(t0.Add(s.at * time.Millisecond))
		if got := w.Text(); got != s.want {
			t.Fatalf("at %dms Text() = %q, want %q", s.at, got, s.want)
		}
	}
}

func TestCyclesBackToFirstLine(t *testing.T) {
	w := newWriter("a", "b")
	w.Advance(t0)
	seen := map[string]bool{}
	for ms := 0; ms < 20000; ms += 10 {
		w.Advance(t0.Add(time.Duration(ms) * time.Millisecond))
		seen[w.Text()] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("lines seen = %v, want both", seen)
	}
}

func TestFreezeShowsFirstLine(t *testing.T) {
	w := newWriter("hello", "world")
	w.Freeze()
	w.Advance(t0)
	w.Advance(t0.Add(time.Hour))
	if got := w.Text(); got != "hello" {
		t.Errorf("Text() = %q, want hello", got)
	}
}

func TestWidthCountsWideRunes(t *testing.T) {
	w := newWriter("音楽")
	w.Freeze()
	if got := w.Width(); got != 4 {
		t.Errorf("Width() = %d, want 4", got)
	}
}

func TestNoLines(t *testing.T) {
	w := newWriter("", "")
	w.Advance(t0)
	w.Advance(t0.Add(time.Minute))
	if w.Text() != "" || w.Width() != 0 {
		t.Errorf("expected empty output")
	}
}

func TestStallDoesNotReplayBacklog(t *testing.T) {
	w := newWriter("abcdef")
	w.Advance(t0)
	w.Advance(t0.Add(time.Second))
	w.Advance(t0.Add(time.Hour))
	if got := w.Text(); got != "ab" {
		t.Errorf("Text() after stall = %q, want one more rune", got)
	}
}
