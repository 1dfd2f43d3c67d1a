// Package typing implements the typewriter line under the portfolio title:
// each line is typed out, held, deleted, and followed by the next one.
package typing

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// Options controls pacing.
type Options struct {
	Lines       []string
	Start       time.Duration // delay before the first rune
	TypeDelay   time.Duration
	DeleteDelay time.Duration
	Hold        time.Duration // full line shown before deleting
	Gap         time.Duration // empty line shown before the next one
}

// maxLag bounds catch-up after the frame clock stalls.
const maxLag = time.Second

// Writer is driven by the frame clock through Advance.
type Writer struct {
	opts     Options
	lines    [][]rune
	line     int
	shown    int
	deleting bool
	frozen   bool
	next     time.Time
}

// New returns a writer over opts.Lines. Empty lines are skipped.
func New(opts Options) *Writer {
	w := &Writer{opts: opts}
	for _, l := range opts.Lines {
		if l != "" {
			w.lines = append(w.lines, []rune(l))
		}
	}
	return w
}

// Freeze shows the first line in full and stops all further typing.
func (w *Writer) Freeze() {
	w.frozen = true
	w.line = 0
	w.deleting = false
	if len(w.lines) > 0 {
		w.shown = len(w.lines[0])
	}
}

// Advance applies every step that is due at now.
func (w *Writer) Advance(now time.Time) {
	if w.frozen || len(w.lines) == 0 {
		return
	}
	if w.next.IsZero() {
		w.next = now.Add(w.opts.Start)
		return
	}
	if now.Sub(w.next) > maxLag {
		w.next = now
	}
	for !now.Before(w.next) {
		w.next = w.next.Add(w.step())
	}
}

// step makes one edit and returns the delay until the next one.
func (w *Writer) step() time.Duration {
	cur := w.lines[w.line]
	if w.deleting {
		w.shown--
		if w.shown <= 0 {
			w.shown = 0
			w.deleting = false
			w.line = (w.line + 1) % len(w.lines)
			return nonZero(w.opts.Gap)
		}
		return nonZero(w.opts.DeleteDelay)
	}
	w.shown++
	if w.shown >= len(cur) {
		w.shown = len(cur)
		w.deleting = true
		return nonZero(w.opts.Hold)
	}
	return nonZero(w.opts.TypeDelay)
}

func nonZero(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Millisecond
	}
	return d
}

// Text is the part of the current line on display.
func (w *Writer) Text() string {
	if len(w.lines) == 0 {
		return ""
	}
	return string(w.lines[w.line][:w.shown])
}

// Width is the display width of Text in terminal columns.
func (w *Writer) Width() int {
	return runewidth.StringWidth(w.Text())
}
