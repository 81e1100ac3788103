// Command starfield renders an animated night sky: twinkling stars, slowly
// changing constellations and the occasional shooting star.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/starfield/internal/audio"
	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/game"
	"github.com/iburimskiy/starfield/internal/logging"
	"github.com/iburimskiy/starfield/internal/prefs"
	"github.com/iburimskiy/starfield/internal/starfield"
	"github.com/iburimskiy/starfield/internal/terminal"
)

const appName = "starfield"

type options struct {
	configPath string
	logLevel   string
	logFile    string
	terminal   bool
	seed       int64
	soundtrack string
	noAudio    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (terminal mode discards logs otherwise)")
	flag.BoolVar(&opts.terminal, "terminal", false, "Render in the terminal instead of a window")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 uses the config seed, or the clock)")
	flag.StringVar(&opts.soundtrack, "soundtrack", "", "Audio file (wav, mp3, flac) to loop in the background")
	flag.BoolVar(&opts.noAudio, "no-audio", false, "Disable soundtrack and chimes")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		if !opts.terminal {
			_ = zenity.Error(err.Error(), zenity.Title("Starfield"), zenity.ErrorIcon)
		}
		os.Exit(1)
	}
}

// session holds everything both backends share.
type session struct {
	log        *logging.Logger
	cfg        config.Config
	rng        *starfield.Rand
	prefs      *prefs.Manager
	output     *audio.Output
	soundtrack *audio.Soundtrack
	chimes     *audio.Chimes
	track      string
}

func run(opts options) error {
	logger := logging.New(logging.ParseLevel(opts.logLevel))
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if opts.terminal {
		logger.SetOutput(io.Discard)
	}
	log := logger.Named("Main")

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.noAudio {
		cfg.Audio.Enabled = false
	}

	s := &session{
		log:   logger,
		cfg:   cfg,
		rng:   starfield.NewRand(cfg.Seed),
		track: opts.soundtrack,
	}

	store, err := prefs.Open(appName)
	if err != nil {
		log.Warn("%v (preferences will not persist)", err)
	}
	s.prefs = prefs.NewManager(store, logger)
	if !s.prefs.Saved() {
		s.prefs.SetVolume(cfg.Audio.Volume)
		s.prefs.SetChimes(cfg.Audio.Chimes)
	}

	if cfg.Audio.Enabled {
		s.initAudio()
		defer s.output.Close()
	}

	if opts.terminal {
		return s.runTerminal()
	}
	return s.runWindow()
}

// initAudio sets up the speaker. Failure is logged and leaves audio off.
func (s *session) initAudio() {
	log := s.log.Named("Main")
	s.output = audio.NewOutput(s.log)
	if err := s.output.Init(); err != nil {
		log.Warn("audio disabled: %v", err)
		return
	}

	p := s.prefs.Get()
	s.soundtrack = audio.NewSoundtrack(s.output, p.Volume, s.log)
	s.soundtrack.SetMuted(p.Muted)
	s.chimes = audio.NewChimes(s.output, p.Chimes, p.Volume)

	switch {
	case s.track != "":
	case s.cfg.Audio.Soundtrack != "":
		s.track = s.cfg.Audio.Soundtrack
	default:
		s.track = p.Soundtrack
	}
}

func (s *session) runWindow() error {
	ebiten.SetWindowSize(s.cfg.Window.Width, s.cfg.Window.Height)
	ebiten.SetWindowTitle(s.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(s.cfg.Window.TPS)

	g := game.New(game.Options{
		Config:     s.cfg,
		Rand:       s.rng,
		Prefs:      s.prefs,
		Soundtrack: s.soundtrack,
		Chimes:     s.chimes,
		Log:        s.log,
	})
	defer g.Close()

	if s.soundtrack != nil && s.track != "" {
		if err := g.OpenSoundtrack(s.track); err != nil {
			s.log.Named("Main").Warn("%v", err)
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (s *session) runTerminal() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal screen: %w", err)
	}
	defer screen.Fini()

	var onSpawn func(starfield.ShootingStar)
	if s.chimes != nil {
		onSpawn = func(ss starfield.ShootingStar) { s.chimes.Ring(ss.Speed()) }
	}
	if s.soundtrack != nil {
		if s.track != "" {
			if err := s.soundtrack.Open(s.track); err != nil {
				s.log.Named("Main").Warn("%v", err)
			}
		}
		defer s.soundtrack.Close()
	}

	host := terminal.New(screen, terminal.Options{
		Config:  s.cfg,
		Rand:    s.rng,
		Log:     s.log,
		OnSpawn: onSpawn,
	})
	err = host.Run(ctx)

	if serr := s.prefs.Save(); serr != nil {
		s.log.Named("Main").Warn("%v", serr)
	}
	return err
}
