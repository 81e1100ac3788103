package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Starfield - O: soundtrack, Space: pause, M: mute, H: HUD, Esc/Q: quit"
	TPS          = 60

	// Star field
	StarDensity = 4000 // surface px² per star
	MaxStars    = 350
	BrightRatio = 0.15

	// Constellations
	ConstellationCycle = 500 // frames between rebuilds (~8s at 60 TPS)
	FadeFrames         = 120
	MaxLinkRatio       = 0.28 // of min(width, height)
	MinLinkDistance    = 30

	// Simulation clock and pointer
	ClockStep     = 0.006
	PointerRadius = 150

	// Shooting stars
	FirstShootMin = 80
	FirstShootMax = 200
	ShootMin      = 120
	ShootMax      = 400
	CullMargin    = 200

	// Audio
	DefaultVolume = 0.7
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window holds host window settings.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// Stars holds star field generator tunables.
type Stars struct {
	Density     float64 `yaml:"density"`
	Max         int     `yaml:"max"`
	BrightRatio float64 `yaml:"brightRatio"`
}

// Constellations holds constellation builder tunables.
type Constellations struct {
	Cycle           int     `yaml:"cycle"`
	FadeFrames      int     `yaml:"fadeFrames"`
	MaxLinkRatio    float64 `yaml:"maxLinkRatio"`
	MinLinkDistance float64 `yaml:"minLinkDistance"`
}

// ShootingStars holds spawner tunables, in frames and pixels.
type ShootingStars struct {
	FirstMin   int     `yaml:"firstMin"`
	FirstMax   int     `yaml:"firstMax"`
	IntervalLo int     `yaml:"intervalMin"`
	IntervalHi int     `yaml:"intervalMax"`
	CullMargin float64 `yaml:"cullMargin"`
}

// Audio holds soundtrack and chime settings.
type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	Chimes     bool    `yaml:"chimes"`
	Volume     float64 `yaml:"volume"`
	Soundtrack string  `yaml:"soundtrack"`
}

// Config is the full set of tunables. Zero Seed means runtime randomness.
type Config struct {
	Seed           int64          `yaml:"seed"`
	ClockStep      float64        `yaml:"clockStep"`
	PointerRadius  float64        `yaml:"pointerRadius"`
	PointerGlow    bool           `yaml:"pointerGlow"`
	Window         Window         `yaml:"window"`
	Stars          Stars          `yaml:"stars"`
	Constellations Constellations `yaml:"constellations"`
	ShootingStars  ShootingStars  `yaml:"shootingStars"`
	Audio          Audio          `yaml:"audio"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ClockStep:     ClockStep,
		PointerRadius: PointerRadius,
		PointerGlow:   true,
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
			TPS:    TPS,
		},
		Stars: Stars{
			Density:     StarDensity,
			Max:         MaxStars,
			BrightRatio: BrightRatio,
		},
		Constellations: Constellations{
			Cycle:           ConstellationCycle,
			FadeFrames:      FadeFrames,
			MaxLinkRatio:    MaxLinkRatio,
			MinLinkDistance: MinLinkDistance,
		},
		ShootingStars: ShootingStars{
			FirstMin:   FirstShootMin,
			FirstMax:   FirstShootMax,
			IntervalLo: ShootMin,
			IntervalHi: ShootMax,
			CullMargin: CullMargin,
		},
		Audio: Audio{
			Enabled: true,
			Chimes:  true,
			Volume:  DefaultVolume,
		},
	}
}

// Load reads a YAML file on top of Default. A missing file yields the defaults.
// Unknown keys are rejected so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise break the simulation.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	case c.ClockStep <= 0:
		return fmt.Errorf("%w: clockStep %v", ErrInvalid, c.ClockStep)
	case c.PointerRadius <= 0:
		return fmt.Errorf("%w: pointerRadius %v", ErrInvalid, c.PointerRadius)
	case c.Stars.Density <= 0:
		return fmt.Errorf("%w: stars.density %v", ErrInvalid, c.Stars.Density)
	case c.Stars.Max < 0:
		return fmt.Errorf("%w: stars.max %d", ErrInvalid, c.Stars.Max)
	case c.Stars.BrightRatio < 0 || c.Stars.BrightRatio > 1:
		return fmt.Errorf("%w: stars.brightRatio %v", ErrInvalid, c.Stars.BrightRatio)
	case c.Constellations.FadeFrames <= 0:
		return fmt.Errorf("%w: constellations.fadeFrames %d", ErrInvalid, c.Constellations.FadeFrames)
	case c.Constellations.Cycle <= 0:
		return fmt.Errorf("%w: constellations.cycle %d", ErrInvalid, c.Constellations.Cycle)
	case c.Constellations.MaxLinkRatio <= 0:
		return fmt.Errorf("%w: constellations.maxLinkRatio %v", ErrInvalid, c.Constellations.MaxLinkRatio)
	case c.Constellations.MinLinkDistance < 0:
		return fmt.Errorf("%w: constellations.minLinkDistance %v", ErrInvalid, c.Constellations.MinLinkDistance)
	case c.ShootingStars.FirstMin <= 0 || c.ShootingStars.FirstMax < c.ShootingStars.FirstMin:
		return fmt.Errorf("%w: shootingStars first delay [%d,%d]", ErrInvalid, c.ShootingStars.FirstMin, c.ShootingStars.FirstMax)
	case c.ShootingStars.IntervalLo <= 0 || c.ShootingStars.IntervalHi < c.ShootingStars.IntervalLo:
		return fmt.Errorf("%w: shootingStars interval [%d,%d]", ErrInvalid, c.ShootingStars.IntervalLo, c.ShootingStars.IntervalHi)
	case c.ShootingStars.CullMargin < 0:
		return fmt.Errorf("%w: shootingStars.cullMargin %v", ErrInvalid, c.ShootingStars.CullMargin)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
