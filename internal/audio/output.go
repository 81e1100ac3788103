// Package audio plays the optional ambient soundtrack and the shooting star chimes.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/starfield/internal/logging"
)

// SampleRate is the speaker rate. Tracks at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

// mixer is the part of the speaker the players need.
type mixer interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// Output owns the process-wide speaker.
type Output struct {
	log   *logging.Logger
	mu    sync.Mutex
	ready bool
}

// NewOutput returns an uninitialized output; Play is a no-op until Init succeeds.
func NewOutput(log *logging.Logger) *Output {
	return &Output{log: log.Named("Audio")}
}

// Init opens the audio device with a 50ms buffer.
func (o *Output) Init() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	o.ready = true
	o.log.Info("speaker ready at %d Hz", SampleRate)
	return nil
}

// Ready reports whether Init succeeded.
func (o *Output) Ready() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ready
}

// Play mixes s into the speaker output.
func (o *Output) Play(s ...beep.Streamer) {
	if !o.Ready() {
		return
	}
	speaker.Play(s...)
}

// Lock pauses the speaker's mixing so playing streamers can be modified.
func (o *Output) Lock() {
	if o.Ready() {
		speaker.Lock()
	}
}

// Unlock resumes mixing.
func (o *Output) Unlock() {
	if o.Ready() {
		speaker.Unlock()
	}
}

// Close stops everything that is playing.
func (o *Output) Close() {
	if !o.Ready() {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// withVolume applies a linear gain in [0,1] to s.
func withVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(math.Min(gain, 1))
}

// Chimes rings a short tone for every shooting star.
type Chimes struct {
	out     mixer
	mu      sync.Mutex
	enabled bool
	gain    float64
}

// NewChimes returns chimes playing through out.
func NewChimes(out mixer, enabled bool, gain float64) *Chimes {
	return &Chimes{out: out, enabled: enabled, gain: gain}
}

// SetEnabled turns chimes on or off.
func (c *Chimes) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
}

// Enabled reports whether Ring plays anything.
func (c *Chimes) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetGain sets the chime volume in [0,1].
func (c *Chimes) SetGain(g float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gain = g
}

// Ring plays one chime pitched from a shooting star's speed.
func (c *Chimes) Ring(speed float64) {
	c.mu.Lock()
	enabled, gain := c.enabled, c.gain
	c.mu.Unlock()
	if !enabled || gain <= 0 || c.out == nil {
		return
	}
	c.out.Play(withVolume(chime(SampleRate, ChimeFrequency(speed), chimeDuration), gain))
}
