// Package terminal hosts the star field on a character-cell screen.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/logging"
	"github.com/iburimskiy/starfield/internal/starfield"
)

// Options wires a Host.
type Options struct {
	Config  config.Config
	Rand    *starfield.Rand
	Log     *logging.Logger
	OnSpawn func(starfield.ShootingStar)
}

// frameScheduler holds at most one pending frame callback; the run loop
// fires it on each tick.
type frameScheduler struct {
	pending func()
}

func (s *frameScheduler) RequestFrame(fn func()) { s.pending = fn }

func (s *frameScheduler) take() func() {
	fn := s.pending
	s.pending = nil
	return fn
}

// Host drives a Simulation on a tcell screen.
type Host struct {
	log     *logging.Logger
	screen  tcell.Screen
	sim     *starfield.Simulation
	loop    *starfield.Loop
	surface *CellSurface
	sched   frameScheduler
	tps     int
	started bool
}

// New creates a host on an initialised screen.
func New(screen tcell.Screen, opts Options) *Host {
	sim := starfield.New(opts.Config, opts.Rand, opts.Log)
	sim.OnSpawn = opts.OnSpawn

	h := &Host{
		log:     opts.Log.Named("Terminal"),
		screen:  screen,
		sim:     sim,
		loop:    starfield.NewLoop(sim),
		surface: NewCellSurface(0, 0),
		tps:     opts.Config.Window.TPS,
	}
	if h.tps <= 0 {
		h.tps = config.TPS
	}
	h.resize(screen.Size())
	return h
}

func (h *Host) Simulation() *starfield.Simulation { return h.sim }

func (h *Host) Loop() *starfield.Loop { return h.loop }

func (h *Host) resize(cols, rows int) {
	h.surface.Resize(cols, rows)
	w, hh := h.surface.PixelSize()
	h.sim.Resize(w, hh)
	h.log.Debug("screen %dx%d cells", cols, rows)
}

// HandleEvent applies one screen event and reports whether to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0:
			return true
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		h.sim.PointerMove((float64(col)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.sim.PointerLeave()
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.resize(cols, rows)
		h.screen.Sync()
	}
	return false
}

// Frame runs the pending frame callback and shows the result. It returns
// false once the loop has stopped.
func (h *Host) Frame() bool {
	if !h.started {
		h.loop.Start(&h.sched, h.surface)
		h.started = true
	}
	fn := h.sched.take()
	if fn == nil {
		return false
	}
	fn()
	if h.loop.Stopped() {
		return false
	}
	h.surface.Flush(h.screen)
	h.screen.Show()
	return true
}

// Run animates until ctx is done, the user quits, or the loop is stopped.
// The caller still owns the screen and must Fini it.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()
	defer h.loop.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.tps))
	defer ticker.Stop()

	h.log.Info("running at %d TPS", h.tps)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if !h.Frame() {
				return nil
			}
		}
	}
}
