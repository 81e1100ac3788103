package starfield

import (
	"math"
	"testing"

	"github.com/iburimskiy/starfield/internal/config"
)

type drawCall struct {
	op    string
	x, y  float64
	r     float64
	color RGB
	alpha float64
	width float64
	stops []ColorStop
}

// recordingSurface captures every primitive and checks alpha bounds.
type recordingSurface struct {
	t      *testing.T
	clears int
	calls  []drawCall
}

func newRecordingSurface(t *testing.T) *recordingSurface {
	return &recordingSurface{t: t}
}

func (r *recordingSurface) checkAlpha(op string, a float64) {
	r.t.Helper()
	if math.IsNaN(a) || a < 0 || a > 1 {
		r.t.Fatalf("%s received alpha %v outside [0,1]", op, a)
	}
}

func (r *recordingSurface) checkCoord(op string, vs ...float64) {
	r.t.Helper()
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			r.t.Fatalf("%s received non-finite value %v", op, v)
		}
	}
}

func (r *recordingSurface) Clear() {
	r.clears++
	r.calls = r.calls[:0]
}

func (r *recordingSurface) FillCircle(x, y, rad float64, c RGB, alpha float64) {
	r.checkAlpha("FillCircle", alpha)
	r.checkCoord("FillCircle", x, y, rad)
	r.calls = append(r.calls, drawCall{op: "circle", x: x, y: y, r: rad, color: c, alpha: alpha})
}

func (r *recordingSurface) StrokeLine(x1, y1, x2, y2 float64, c RGB, alpha, width float64) {
	r.checkAlpha("StrokeLine", alpha)
	r.checkCoord("StrokeLine", x1, y1, x2, y2, width)
	r.calls = append(r.calls, drawCall{op: "line", x: x1, y: y1, color: c, alpha: alpha, width: width})
}

func (r *recordingSurface) RadialGradient(cx, cy, rad float64, stops []ColorStop) {
	r.checkCoord("RadialGradient", cx, cy, rad)
	for _, s := range stops {
		r.checkAlpha("RadialGradient", s.Alpha)
	}
	r.calls = append(r.calls, drawCall{op: "radial", x: cx, y: cy, r: rad, stops: stops})
}

func (r *recordingSurface) LinearGradientStroke(x1, y1, x2, y2, width float64, stops []ColorStop) {
	r.checkCoord("LinearGradientStroke", x1, y1, x2, y2, width)
	for _, s := range stops {
		r.checkAlpha("LinearGradientStroke", s.Alpha)
	}
	r.calls = append(r.calls, drawCall{op: "linear", x: x1, y: y1, width: width, stops: stops})
}

func (r *recordingSurface) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// fakeScheduler queues frame callbacks until run is called.
type fakeScheduler struct {
	pending []func()
}

func (f *fakeScheduler) RequestFrame(fn func()) {
	f.pending = append(f.pending, fn)
}

// run executes the callbacks queued so far and returns how many ran.
func (f *fakeScheduler) run() int {
	queued := f.pending
	f.pending = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	return cfg
}

func newTestSim(cfg config.Config) *Simulation {
	return New(cfg, NewRand(cfg.Seed), nil)
}
