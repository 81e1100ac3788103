package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/starfield/internal/logging"
)

const (
	levelRingSize   = 8192
	levelWindow     = 2048
	smoothingFactor = 0.6
)

var (
	// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoTrack is returned by operations that need an open track.
	ErrNoTrack = errors.New("no soundtrack loaded")
)

// Extensions lists the soundtrack file patterns accepted by Open.
var Extensions = []string{"*.wav", "*.mp3", "*.flac"}

// Soundtrack plays one looping background track.
type Soundtrack struct {
	log *logging.Logger
	out mixer

	mu       sync.Mutex
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	tap      *levelTap
	paused   bool
	gain     float64
	muted    bool
	level    float64
}

// NewSoundtrack returns an idle soundtrack playing through out.
func NewSoundtrack(out mixer, gain float64, log *logging.Logger) *Soundtrack {
	return &Soundtrack{out: out, gain: gain, log: log.Named("Soundtrack")}
}

// decode opens path and picks a decoder from its extension.
func decode(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, format, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, format, err
	}

	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, format, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// Open replaces the current track with the file at path and starts it looping.
func (s *Soundtrack) Open(path string) error {
	f, streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	// streamer -> loop -> resample -> tap -> ctrl -> volume
	var chain beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != SampleRate {
		chain = beep.Resample(4, format.SampleRate, SampleRate, chain)
	}
	tap := newLevelTap(chain, levelRingSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	s.Close()

	s.mu.Lock()
	vol := withVolume(ctrl, s.effectiveGain())
	s.path = path
	s.file = f
	s.streamer = streamer
	s.format = format
	s.ctrl = ctrl
	s.volume = vol
	s.tap = tap
	s.paused = false
	s.mu.Unlock()

	s.out.Play(vol)
	s.log.Info("playing %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return nil
}

// Loaded reports whether a track is open.
func (s *Soundtrack) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl != nil
}

// Path returns the open track's path, or "".
func (s *Soundtrack) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// TogglePause pauses or resumes the track and returns the new paused state.
func (s *Soundtrack) TogglePause() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return false, ErrNoTrack
	}
	s.out.Lock()
	s.paused = !s.paused
	s.ctrl.Paused = s.paused
	s.out.Unlock()
	return s.paused, nil
}

// Paused reports whether the track is paused.
func (s *Soundtrack) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetGain sets the linear volume in [0,1].
func (s *Soundtrack) SetGain(g float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = math.Max(0, math.Min(1, g))
	s.applyGain()
}

// SetMuted silences or restores the track.
func (s *Soundtrack) SetMuted(m bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = m
	s.applyGain()
}

func (s *Soundtrack) effectiveGain() float64 {
	if s.muted {
		return 0
	}
	return s.gain
}

func (s *Soundtrack) applyGain() {
	if s.volume == nil {
		return
	}
	s.out.Lock()
	setGain(s.volume, s.effectiveGain())
	s.out.Unlock()
}

// Level returns the smoothed, compressed loudness in [0,1] of what was played
// most recently. Call it once per frame.
func (s *Soundtrack) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	mag := 0.0
	if s.tap != nil && !s.paused && !s.muted {
		mag = math.Min(1, math.Pow(rms(s.tap.snapshot(levelWindow)), 0.3))
	}
	s.level = smoothingFactor*s.level + (1-smoothingFactor)*mag
	return s.level
}

// Position returns the position inside the current loop and the track length.
func (s *Soundtrack) Position() (pos, total time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return 0, 0
	}
	s.out.Lock()
	p, n := s.streamer.Position(), s.streamer.Len()
	s.out.Unlock()
	return s.format.SampleRate.D(p), s.format.SampleRate.D(n)
}

// Close stops the track and releases the file.
func (s *Soundtrack) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		s.out.Lock()
		s.ctrl.Streamer = nil // the speaker drops a drained streamer
		s.out.Unlock()
	}
	if s.streamer != nil {
		_ = s.streamer.Close()
	}
	if s.file != nil {
		_ = s.file.Close()
	}
	if s.path != "" {
		s.log.Debug("closed %s", filepath.Base(s.path))
	}
	s.path = ""
	s.file = nil
	s.streamer = nil
	s.ctrl = nil
	s.volume = nil
	s.tap = nil
	s.paused = false
}
