// Package game hosts the star field in an ebiten window.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/starfield/internal/audio"
	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/logging"
	"github.com/iburimskiy/starfield/internal/prefs"
	"github.com/iburimskiy/starfield/internal/starfield"
)

const (
	haloBoostPerLevel = 0.5
	volumeStep        = 0.1
)

// Options wires a Game. Soundtrack and Chimes are nil when audio is off.
type Options struct {
	Config     config.Config
	Rand       *starfield.Rand
	Prefs      *prefs.Manager
	Soundtrack *audio.Soundtrack
	Chimes     *audio.Chimes
	Log        *logging.Logger
}

// Game adapts a starfield.Loop to ebiten.Game.
type Game struct {
	log *logging.Logger
	cfg config.Config

	sim     *starfield.Simulation
	loop    *starfield.Loop
	surface screenSurface

	width, height int

	soundtrack *audio.Soundtrack
	chimes     *audio.Chimes
	prefs      *prefs.Manager

	splash  splash
	showHUD bool
	lastErr error
	closed  bool

	// pickFile asks the user for a soundtrack path; "" means cancelled.
	pickFile func() (string, error)
}

func New(opts Options) *Game {
	log := opts.Log.Named("Game")
	sim := starfield.New(opts.Config, opts.Rand, opts.Log)

	g := &Game{
		log:        log,
		cfg:        opts.Config,
		sim:        sim,
		loop:       starfield.NewLoop(sim),
		soundtrack: opts.Soundtrack,
		chimes:     opts.Chimes,
		prefs:      opts.Prefs,
		showHUD:    opts.Prefs.Get().ShowHUD,
		pickFile:   pickSoundtrack,
	}
	if g.chimes != nil {
		sim.OnSpawn = func(ss starfield.ShootingStar) {
			g.chimes.Ring(ss.Speed())
		}
	}
	return g
}

// Simulation exposes the hosted simulation.
func (g *Game) Simulation() *starfield.Simulation { return g.sim }

// OpenSoundtrack starts looping the file at path and remembers it.
func (g *Game) OpenSoundtrack(path string) error {
	if g.soundtrack == nil {
		return errors.New("open soundtrack: audio is disabled")
	}
	if err := g.soundtrack.Open(path); err != nil {
		return fmt.Errorf("open soundtrack: %w", err)
	}
	g.prefs.SetSoundtrack(path)
	return nil
}

func (g *Game) Update() error {
	if g.loop.Stopped() {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if pointerInside(x, y, g.width, g.height, ebiten.IsFocused()) {
		g.sim.PointerMove(float64(x), float64(y))
	} else {
		g.sim.PointerLeave()
	}

	if quit := g.handleKeys(); quit {
		g.Close()
		return ebiten.Termination
	}

	if g.soundtrack != nil {
		g.sim.SetHaloBoost(1 + haloBoostPerLevel*g.soundtrack.Level())
	}

	g.splash.Update()
	if !g.loop.Update() {
		return ebiten.Termination
	}
	return nil
}

// handleKeys applies this frame's key presses and reports whether to quit.
func (g *Game) handleKeys() bool {
	keys := inpututil.AppendJustPressedKeys(nil)
	if len(keys) > 0 && !g.splash.Done() {
		g.splash.Skip()
	}

	for _, k := range keys {
		switch k {
		case ebiten.KeyEscape, ebiten.KeyQ:
			return true
		case ebiten.KeyH:
			g.showHUD = !g.showHUD
			g.prefs.SetShowHUD(g.showHUD)
		case ebiten.KeyO:
			g.setErr(g.openSoundtrackDialog())
		case ebiten.KeySpace:
			g.togglePause()
		case ebiten.KeyM:
			g.toggleMute()
		case ebiten.KeyC:
			g.toggleChimes()
		case ebiten.KeyUp:
			g.changeVolume(volumeStep)
		case ebiten.KeyDown:
			g.changeVolume(-volumeStep)
		}
	}
	return false
}

func (g *Game) setErr(err error) {
	if err != nil {
		g.log.Warn("%v", err)
	}
	g.lastErr = err
}

func (g *Game) openSoundtrackDialog() error {
	if g.soundtrack == nil {
		return nil
	}
	path, err := g.pickFile()
	if err != nil || path == "" {
		return err
	}
	return g.OpenSoundtrack(path)
}

func (g *Game) togglePause() {
	if g.soundtrack == nil {
		return
	}
	paused, err := g.soundtrack.TogglePause()
	if errors.Is(err, audio.ErrNoTrack) {
		return
	}
	g.log.Debug("paused=%v", paused)
}

func (g *Game) toggleMute() {
	if g.soundtrack == nil {
		return
	}
	muted := !g.prefs.Get().Muted
	g.prefs.SetMuted(muted)
	g.soundtrack.SetMuted(muted)
}

func (g *Game) toggleChimes() {
	if g.chimes == nil {
		return
	}
	on := !g.chimes.Enabled()
	g.chimes.SetEnabled(on)
	g.prefs.SetChimes(on)
}

func (g *Game) changeVolume(delta float64) {
	if g.soundtrack == nil {
		return
	}
	g.prefs.SetVolume(g.prefs.Get().Volume + delta)
	v := g.prefs.Get().Volume
	g.soundtrack.SetGain(v)
	if g.chimes != nil {
		g.chimes.SetGain(v)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.loop.Draw(&g.surface)

	if !g.splash.Done() {
		g.splash.Draw(screen)
		return
	}
	if g.showHUD {
		tr := g.trackStatus()
		drawHUD(screen, hudLines(g.sim.Stats(), g.cfg.Constellations.Cycle, ebiten.ActualTPS(), tr, g.lastErr), tr)
	}
}

func (g *Game) trackStatus() trackStatus {
	p := g.prefs.Get()
	tr := trackStatus{
		Disabled: g.soundtrack == nil,
		Muted:    p.Muted,
		Volume:   p.Volume,
		Chimes:   g.chimes != nil && g.chimes.Enabled(),
	}
	if g.soundtrack != nil && g.soundtrack.Loaded() {
		tr.Path = g.soundtrack.Path()
		tr.Paused = g.soundtrack.Paused()
		tr.Pos, tr.Total = g.soundtrack.Position()
	}
	return tr
}

// Layout tracks the window size; any change regenerates the field.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sim.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close stops the loop, releases the soundtrack and saves preferences. It is
// safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.loop.Stop()
	if g.soundtrack != nil {
		g.soundtrack.Close()
	}
	if err := g.prefs.Save(); err != nil {
		g.log.Warn("%v", err)
	}
}

func pickSoundtrack() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select soundtrack: %w", err)
	}
	return filename, nil
}
