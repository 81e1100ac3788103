// Package starfield simulates and renders an ambient star field with fading
// constellations and shooting stars.
package starfield

import (
	"math"

	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/logging"
)

const (
	lineAlpha      = 0.35
	closingFactor  = 0.6
	nodeAlpha      = 0.8
	nodeRadius     = 2.5
	minGroupFade   = 0.01
	glowThreshold  = 0.3
	spikeMinSize   = 2
	spikeWidth     = 0.5
	trailHeadScale = 1.5
)

// Stats is a snapshot for the HUD.
type Stats struct {
	Width, Height float64
	Stars         int
	Bright        int
	Groups        int
	ShootingStars int
	CycleFrame    int
	Frame         uint64
}

// Simulation owns all star field state for one surface. It is not safe for
// concurrent use: resize, pointer and frame calls must come from one context.
type Simulation struct {
	log *logging.Logger
	rng *Rand

	field         FieldParams
	clockStep     float64
	pointerRadius float64
	cullMargin    float64

	width, height float64
	clock         float64
	frame         uint64

	stars          []Star
	constellations Constellations
	spawner        *Spawner
	shooting       []ShootingStar
	pointer        Pointer
	glow           *PointerGlow

	haloBoost float64

	// OnSpawn, when set, is called for every new shooting star.
	OnSpawn func(ShootingStar)
}

// New builds a simulation from cfg. The surface is empty until Resize.
func New(cfg config.Config, rng *Rand, log *logging.Logger) *Simulation {
	if log == nil {
		log = logging.Discard()
	}
	sim := &Simulation{
		log: log.Named("Starfield"),
		rng: rng,
		field: FieldParams{
			Density:     cfg.Stars.Density,
			Max:         cfg.Stars.Max,
			BrightRatio: cfg.Stars.BrightRatio,
		},
		clockStep:     cfg.ClockStep,
		pointerRadius: cfg.PointerRadius,
		cullMargin:    cfg.ShootingStars.CullMargin,
		constellations: Constellations{
			Cycle:      cfg.Constellations.Cycle,
			FadeFrames: cfg.Constellations.FadeFrames,
			Clusterer: GreedyClusterer{
				MaxLinkRatio: cfg.Constellations.MaxLinkRatio,
				MinLink:      cfg.Constellations.MinLinkDistance,
				MinPick:      2,
				MaxPick:      4,
			},
		},
		spawner: NewSpawner(SpawnParams{
			FirstMin:    float64(cfg.ShootingStars.FirstMin),
			FirstMax:    float64(cfg.ShootingStars.FirstMax),
			IntervalMin: float64(cfg.ShootingStars.IntervalLo),
			IntervalMax: float64(cfg.ShootingStars.IntervalHi),
		}, rng),
		pointer:   NoPointer,
		haloBoost: 1,
	}
	if cfg.PointerGlow {
		sim.glow = &PointerGlow{}
	}
	return sim
}

// Resize replaces the star population and regroups constellations for a w×h
// surface. Both happen before returning so no frame sees a mixed state.
func (s *Simulation) Resize(w, h float64) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.width, s.height = w, h
	s.stars = GenerateStars(w, h, s.field, s.rng)
	s.constellations.Rebuild(s.stars, w, h, s.rng)
	s.log.Debug("resized to %.0fx%.0f: %d stars, %d constellations", w, h, len(s.stars), len(s.constellations.Groups))
}

// PointerMove records the pointer position.
func (s *Simulation) PointerMove(x, y float64) {
	s.pointer = Pointer{X: x, Y: y, Active: true}
}

// PointerLeave resets the pointer to the off-surface sentinel.
func (s *Simulation) PointerLeave() {
	s.pointer = NoPointer
}

// Pointer returns the current pointer state.
func (s *Simulation) Pointer() Pointer { return s.pointer }

// SetHaloBoost scales bright-star halos, e.g. with the soundtrack level.
// Values below 1 are raised to 1.
func (s *Simulation) SetHaloBoost(b float64) {
	s.haloBoost = math.Max(1, b)
}

// Stars returns the current population. Callers must not retain it across Resize.
func (s *Simulation) Stars() []Star { return s.stars }

// Groups returns the current constellation groups.
func (s *Simulation) Groups() []Group { return s.constellations.Groups }

// ShootingStars returns the active shooting stars.
func (s *Simulation) ShootingStars() []ShootingStar { return s.shooting }

// Clock returns the simulation phase accumulator.
func (s *Simulation) Clock() float64 { return s.clock }

// Stats returns counters for the HUD.
func (s *Simulation) Stats() Stats {
	bright := 0
	for i := range s.stars {
		if s.stars[i].Bright {
			bright++
		}
	}
	return Stats{
		Width:         s.width,
		Height:        s.height,
		Stars:         len(s.stars),
		Bright:        bright,
		Groups:        len(s.constellations.Groups),
		ShootingStars: len(s.shooting),
		CycleFrame:    s.constellations.Counter,
		Frame:         s.frame,
	}
}

// Update advances every piece of state by one frame.
func (s *Simulation) Update() {
	s.frame++
	s.clock += s.clockStep

	if s.constellations.Advance(s.stars, s.width, s.height, s.rng) {
		s.log.Debug("constellations rebuilt: %d groups", len(s.constellations.Groups))
	}

	if ss, ok := s.spawner.Tick(s.width, s.height, s.rng); ok {
		s.shooting = append(s.shooting, ss)
		if s.OnSpawn != nil {
			s.OnSpawn(ss)
		}
	}

	alive := s.shooting[:0]
	for _, ss := range s.shooting {
		ss.Step()
		if ss.Expired(s.width, s.height, s.cullMargin) {
			continue
		}
		alive = append(alive, ss)
	}
	for i := len(alive); i < len(s.shooting); i++ {
		s.shooting[i] = ShootingStar{}
	}
	s.shooting = alive

	if s.glow != nil {
		s.glow.Follow(s.pointer)
	}
}

// Draw renders the current state. It does not mutate the simulation.
func (s *Simulation) Draw(dst Surface) {
	dst.Clear()
	if s.glow != nil && s.glow.Visible() {
		s.glow.Draw(dst)
	}
	s.drawConstellations(dst)
	s.drawStars(dst)
	s.drawShootingStars(dst)
}

// Frame runs one Update followed by one Draw.
func (s *Simulation) Frame(dst Surface) {
	s.Update()
	s.Draw(dst)
}

// Close releases the pointer glow overlay. The simulation may still be drawn.
func (s *Simulation) Close() {
	s.glow = nil
}

func (s *Simulation) drawConstellations(dst Surface) {
	for _, g := range s.constellations.Groups {
		if g.Fade < minGroupFade {
			continue
		}
		base := Clamp01(g.Fade * lineAlpha)
		for i := 0; i < len(g.Stars)-1; i++ {
			a, b := g.Stars[i], g.Stars[i+1]
			dst.StrokeLine(a.X, a.Y, b.X, b.Y, Accent, base, 1)
		}
		if len(g.Stars) >= 3 {
			first, last := g.Stars[0], g.Stars[len(g.Stars)-1]
			dst.StrokeLine(last.X, last.Y, first.X, first.Y, Accent, base*closingFactor, 1)
		}
		node := Clamp01(g.Fade * nodeAlpha)
		for _, st := range g.Stars {
			dst.FillCircle(st.X, st.Y, nodeRadius, Accent, node)
		}
	}
}

func (s *Simulation) drawStars(dst Surface) {
	for i := range s.stars {
		st := &s.stars[i]
		v := st.View(s.clock, s.pointer, s.pointerRadius)

		if st.Bright && v.Alpha > glowThreshold {
			r := st.GlowSize * v.Alpha * s.haloBoost
			if r > 0 {
				dst.RadialGradient(v.X, v.Y, r, clampStops([]ColorStop{
					{Offset: 0, Color: st.Color, Alpha: v.Alpha * 0.25 * s.haloBoost},
					{Offset: 0.5, Color: st.Color, Alpha: v.Alpha * 0.06 * s.haloBoost},
					{Offset: 1, Color: st.Color, Alpha: 0},
				}))
			}
			if st.Size > spikeMinSize {
				l := st.Size * 3 * v.Alpha
				a := Clamp01(v.Alpha * 0.15)
				dst.StrokeLine(v.X-l, v.Y, v.X+l, v.Y, st.Color, a, spikeWidth)
				dst.StrokeLine(v.X, v.Y-l, v.X, v.Y+l, st.Color, a, spikeWidth)
			}
		}

		dst.FillCircle(v.X, v.Y, st.Size*(0.8+v.Twinkle*0.1), st.Color, v.Alpha)
	}
}

func (s *Simulation) drawShootingStars(dst Surface) {
	for i := range s.shooting {
		ss := &s.shooting[i]
		life := Clamp01(ss.Life)
		if tx, ty, ok := ss.Tail(); ok {
			dst.LinearGradientStroke(ss.X, ss.Y, tx, ty, ss.Width*life, clampStops([]ColorStop{
				{Offset: 0, Color: White, Alpha: life * 0.9},
				{Offset: 0.3, Color: Accent, Alpha: life * 0.4},
				{Offset: 1, Color: Accent, Alpha: 0},
			}))
		}
		dst.FillCircle(ss.X, ss.Y, ss.Width*life*trailHeadScale, White, life)
	}
}
