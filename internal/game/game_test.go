package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/logging"
	"github.com/iburimskiy/starfield/internal/prefs"
	"github.com/iburimskiy/starfield/internal/starfield"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 11
	return New(Options{
		Config: cfg,
		Rand:   starfield.NewRand(cfg.Seed),
		Prefs:  prefs.NewManager(nil, logging.Discard()),
		Log:    logging.Discard(),
	})
}

func TestLayoutResizesSimulation(t *testing.T) {
	g := newTestGame(t)

	w, h := g.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Fatalf("Layout returned %dx%d, want 800x600", w, h)
	}
	st := g.Simulation().Stats()
	if st.Width != 800 || st.Height != 600 {
		t.Fatalf("simulation size %vx%v, want 800x600", st.Width, st.Height)
	}
	want := starfield.StarCount(800, 600, starfield.FieldParams{
		Density:     g.cfg.Stars.Density,
		Max:         g.cfg.Stars.Max,
		BrightRatio: g.cfg.Stars.BrightRatio,
	})
	if st.Stars != want {
		t.Errorf("stars = %d, want %d", st.Stars, want)
	}
}

func TestLayoutKeepsFieldWhenSizeUnchanged(t *testing.T) {
	g := newTestGame(t)
	g.Layout(640, 480)
	before := g.Simulation().Stars()[0]

	g.Layout(640, 480)
	if after := g.Simulation().Stars()[0]; after != before {
		t.Error("same-size Layout regenerated the field")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	g := newTestGame(t)
	g.Layout(320, 240)

	g.Close()
	g.Close()
	if !g.loop.Stopped() {
		t.Fatal("loop still running after Close")
	}
	if err := g.Update(); err == nil {
		t.Fatal("Update after Close should terminate")
	}
}

func TestOpenSoundtrackWithoutAudio(t *testing.T) {
	g := newTestGame(t)
	if err := g.OpenSoundtrack("x.wav"); err == nil {
		t.Fatal("expected error with audio disabled")
	}
	if g.prefs.Get().Soundtrack != "" {
		t.Error("failed open should not be remembered")
	}
}

func TestOpenSoundtrackDialogSkippedWithoutAudio(t *testing.T) {
	g := newTestGame(t)
	called := false
	g.pickFile = func() (string, error) {
		called = true
		return "", errors.New("unexpected")
	}
	if err := g.openSoundtrackDialog(); err != nil {
		t.Fatalf("openSoundtrackDialog: %v", err)
	}
	if called {
		t.Error("picker shown with audio disabled")
	}
}

func TestPointerInside(t *testing.T) {
	tests := []struct {
		x, y    int
		focused bool
		want    bool
	}{
		{10, 10, true, true},
		{0, 0, true, true},
		{99, 49, true, true},
		{100, 10, true, false},
		{10, 50, true, false},
		{-1, 10, true, false},
		{10, 10, false, false},
	}
	for _, tt := range tests {
		if got := pointerInside(tt.x, tt.y, 100, 50, tt.focused); got != tt.want {
			t.Errorf("pointerInside(%d,%d,focused=%v) = %v, want %v", tt.x, tt.y, tt.focused, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second + 900*time.Millisecond, "12:05"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	st := starfield.Stats{Width: 800, Height: 600, Stars: 120, Bright: 18, Groups: 3, ShootingStars: 1, CycleFrame: 42, Frame: 99}

	lines := hudLines(st, 500, 60, trackStatus{Disabled: true}, nil)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"stars 120 (bright 18)", "constellations 3", "cycle 42/500", "audio off"} {
		if !strings.Contains(joined, want) {
			t.Errorf("HUD missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "volume") {
		t.Error("volume shown with audio disabled")
	}

	tr := trackStatus{Path: "/music/space.ogg", Pos: 65 * time.Second, Total: 180 * time.Second, Paused: true, Volume: 0.7, Chimes: true}
	joined = strings.Join(hudLines(st, 500, 60, tr, errors.New("boom")), "\n")
	for _, want := range []string{"space.ogg  01:05/03:00", "[paused]", "volume 70%", "chimes on", "error: boom"} {
		if !strings.Contains(joined, want) {
			t.Errorf("HUD missing %q:\n%s", want, joined)
		}
	}

	joined = strings.Join(hudLines(st, 500, 60, trackStatus{}, nil), "\n")
	if !strings.Contains(joined, noTrackLabel) {
		t.Errorf("HUD missing %q:\n%s", noTrackLabel, joined)
	}
}
