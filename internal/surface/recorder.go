package surface

// Op names a draw command.
type Op int

const (
	OpClear Op = iota
	OpCircle
	OpGlow
	OpPuff
	OpEllipse
	OpLine
	numOps
)

var opNames = [numOps]string{"clear", "circle", "glow", "puff", "ellipse", "line"}

func (o Op) String() string {
	if o < 0 || o >= numOps {
		return "unknown"
	}
	return opNames[o]
}

// Call is one recorded draw command. Args holds the geometry in the order
// of the Surface method parameters.
type Call struct {
	Op    Op
	Args  []float64
	Paint Paint
}

// Recorder is a Surface that records draw commands instead of drawing.
// The calls since the last Clear are kept; totals span the whole lifetime.
type Recorder struct {
	w, h   int
	calls  []Call
	totals [numOps]int
}

// NewRecorder returns a recorder of size w x h.
func NewRecorder(w, h int) *Recorder { return &Recorder{w: w, h: h} }

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) Resize(w, h int) { r.w, r.h = w, h }

func (r *Recorder) Clear() {
	r.calls = r.calls[:0]
	r.totals[OpClear]++
}

func (r *Recorder) add(op Op, p Paint, args ...float64) {
	r.calls = append(r.calls, Call{Op: op, Args: args, Paint: p})
	r.totals[op]++
}

func (r *Recorder) Circle(x, y, rad float64, p Paint) { r.add(OpCircle, p, x, y, rad) }

func (r *Recorder) Glow(x, y, rad float64, p Paint) { r.add(OpGlow, p, x, y, rad) }

func (r *Recorder) Puff(x, y, rad float64, p Paint) { r.add(OpPuff, p, x, y, rad) }

func (r *Recorder) Ellipse(x, y, rx, ry float64, p Paint) { r.add(OpEllipse, p, x, y, rx, ry) }

func (r *Recorder) Line(x0, y0, x1, y1, width float64, p Paint) {
	r.add(OpLine, p, x0, y0, x1, y1, width)
}

// Calls returns the commands recorded since the last Clear.
func (r *Recorder) Calls() []Call { return r.calls }

// Count returns how many times op was issued over the recorder's lifetime.
func (r *Recorder) Count(op Op) int { return r.totals[op] }

// Draws returns the lifetime number of draw commands, clears excluded.
func (r *Recorder) Draws() int {
	n := 0
	for op := OpCircle; op < numOps; op++ {
		n += r.totals[op]
	}
	return n
}
