package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/logging"
	"github.com/iburimskiy/starfield/internal/starfield"
)

func newTestHost(t *testing.T, cols, rows int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	cfg := config.Default()
	cfg.Seed = 3
	cfg.Window.TPS = 200
	h := New(screen, Options{
		Config: cfg,
		Rand:   starfield.NewRand(cfg.Seed),
		Log:    logging.Discard(),
	})
	return h, screen
}

func TestNewSizesSimulationFromCells(t *testing.T) {
	h, _ := newTestHost(t, 40, 12)
	st := h.Simulation().Stats()
	if st.Width != 40*CellWidth || st.Height != 12*CellHeight {
		t.Fatalf("simulation %vx%v, want %dx%d", st.Width, st.Height, 40*CellWidth, 12*CellHeight)
	}
	if st.Stars == 0 {
		t.Fatal("no stars generated")
	}
}

func TestHandleEventQuitKeys(t *testing.T) {
	h, _ := newTestHost(t, 20, 5)
	quits := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone),
	}
	for _, ev := range quits {
		if !h.HandleEvent(ev) {
			t.Errorf("%v did not quit", ev.Name())
		}
	}
	if h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("'x' quit")
	}
}

func TestHandleEventMouseMovesPointer(t *testing.T) {
	h, _ := newTestHost(t, 20, 5)
	h.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))

	p := h.Simulation().Pointer()
	if !p.Active || p.X != 3.5*CellWidth || p.Y != 2.5*CellHeight {
		t.Fatalf("pointer = %+v", p)
	}

	h.HandleEvent(tcell.NewEventFocus(false))
	if h.Simulation().Pointer().Active {
		t.Fatal("pointer still active after focus loss")
	}
}

func TestHandleEventResize(t *testing.T) {
	h, screen := newTestHost(t, 20, 5)
	screen.SetSize(30, 10)
	h.HandleEvent(tcell.NewEventResize(30, 10))

	st := h.Simulation().Stats()
	if st.Width != 30*CellWidth || st.Height != 10*CellHeight {
		t.Fatalf("after resize simulation %vx%v", st.Width, st.Height)
	}
	if cols, rows := h.surface.Size(); cols != 30 || rows != 10 {
		t.Fatalf("surface %dx%d", cols, rows)
	}
}

func TestFrameAdvancesAndStops(t *testing.T) {
	h, _ := newTestHost(t, 20, 5)
	for i := 0; i < 3; i++ {
		if !h.Frame() {
			t.Fatalf("frame %d returned false", i)
		}
	}
	if got := h.Loop().Frames(); got != 3 {
		t.Fatalf("frames = %d, want 3", got)
	}

	h.Loop().Stop()
	if h.Frame() {
		t.Fatal("Frame after Stop returned true")
	}
	if h.Frame() {
		t.Fatal("a stopped loop rescheduled itself")
	}
	if got := h.Loop().Frames(); got != 3 {
		t.Fatalf("frames advanced after Stop: %d", got)
	}
}

func runAsync(h *Host, ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx) }()
	return errc
}

func TestRunStopsOnContext(t *testing.T) {
	h, _ := newTestHost(t, 20, 5)
	ctx, cancel := context.WithCancel(context.Background())
	errc := runAsync(h, ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !h.Loop().Stopped() {
		t.Error("loop not stopped after Run")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	h, screen := newTestHost(t, 20, 5)
	errc := runAsync(h, context.Background())

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if !h.Loop().Stopped() {
		t.Error("loop not stopped after quit")
	}
}
