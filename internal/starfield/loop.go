package starfield

import "sync/atomic"

// Loop drives a Simulation frame by frame and gives the host a deterministic
// way to stop it. Hosts that own their own update/draw cycle call Update and
// Draw; hosts with a "next repaint" hook call Start.
type Loop struct {
	sim     *Simulation
	stopped atomic.Bool
	frames  atomic.Uint64
}

// NewLoop wraps sim.
func NewLoop(sim *Simulation) *Loop {
	return &Loop{sim: sim}
}

// Simulation returns the driven simulation.
func (l *Loop) Simulation() *Simulation { return l.sim }

// Start registers a self-rescheduling frame callback on sched that draws to
// dst. No callback is registered once Stop has been called.
func (l *Loop) Start(sched Scheduler, dst Surface) {
	l.schedule(sched, dst)
}

func (l *Loop) schedule(sched Scheduler, dst Surface) {
	if l.stopped.Load() {
		return
	}
	sched.RequestFrame(func() {
		if !l.Tick(dst) {
			return
		}
		l.schedule(sched, dst)
	})
}

// Tick runs one full frame. It returns false once the loop is stopped.
func (l *Loop) Tick(dst Surface) bool {
	if !l.Update() {
		return false
	}
	l.Draw(dst)
	return true
}

// Update advances one frame. It returns false once the loop is stopped.
func (l *Loop) Update() bool {
	if l.stopped.Load() {
		return false
	}
	l.sim.Update()
	l.frames.Add(1)
	return true
}

// Draw renders the simulation unless the loop is stopped.
func (l *Loop) Draw(dst Surface) {
	if l.stopped.Load() {
		return
	}
	l.sim.Draw(dst)
}

// Frames returns the number of frames advanced.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool { return l.stopped.Load() }

// Stop ends the loop: pending callbacks become no-ops, nothing is rescheduled,
// and the simulation's overlay resources are released. It is idempotent and
// must be called from the frame context.
func (l *Loop) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		l.sim.Close()
	}
}
