package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	splashStepFrames = 36  // one message every 600ms at 60 TPS
	splashFrames     = 132 // the field shows through after 2.2s
	splashHoldFrames = 18  // "ready." lingers while the overlay fades
)

var splashMessages = [...]string{
	"initializing...",
	"loading fragments...",
	"assembling space...",
	"ready.",
}

// splash is the loading overlay shown on top of the first frames.
type splash struct {
	frame int
	done  bool
}

func (s *splash) Update() {
	if s.done {
		return
	}
	s.frame++
	if s.frame >= splashFrames+splashHoldFrames {
		s.done = true
	}
}

// Skip hides the overlay immediately.
func (s *splash) Skip() { s.done = true }

func (s *splash) Done() bool { return s.done }

func (s *splash) Message() string {
	i := s.frame / splashStepFrames
	if i >= len(splashMessages) {
		i = len(splashMessages) - 1
	}
	return splashMessages[i]
}

// Opacity is 1 until the splash completes, then falls to 0 over the hold.
func (s *splash) Opacity() float64 {
	if s.done {
		return 0
	}
	if s.frame <= splashFrames {
		return 1
	}
	return 1 - float64(s.frame-splashFrames)/splashHoldFrames
}

// Progress is the loading bar fill in [0,1].
func (s *splash) Progress() float64 {
	if s.frame >= splashFrames {
		return 1
	}
	return float64(s.frame) / splashFrames
}

func (s *splash) Draw(screen *ebiten.Image) {
	a := s.Opacity()
	if a <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.NRGBA{R: Background.R, G: Background.G, B: Background.B, A: uint8(255 * a)}, false)

	msg := s.Message()
	textX := (w - len(msg)*6) / 2
	textY := h/2 - 16
	ebitenutil.DebugPrintAt(screen, msg, textX, textY)

	barWidth := float32(w) / 4
	barX := (float32(w) - barWidth) / 2
	barY := float32(h/2 + 8)
	vector.StrokeRect(screen, barX, barY, barWidth, 4, 1, color.NRGBA{R: 78, G: 205, B: 196, A: uint8(160 * a)}, false)
	vector.DrawFilledRect(screen, barX, barY, barWidth*float32(s.Progress()), 4, color.NRGBA{R: 78, G: 205, B: 196, A: uint8(220 * a)}, false)
}
