package game

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/starfield"
)

const (
	hudMargin    = 12
	progressH    = 4
	helpLine     = "O: soundtrack  Space: pause  M: mute  C: chimes  Up/Down: volume  H: hud  Esc/Q: quit"
	noTrackLabel = "no soundtrack (O to open)"
)

// trackStatus describes the soundtrack for the HUD.
type trackStatus struct {
	Path     string
	Pos      time.Duration
	Total    time.Duration
	Paused   bool
	Muted    bool
	Volume   float64
	Chimes   bool
	Disabled bool
}

func hudLines(st starfield.Stats, cycle int, tps float64, tr trackStatus, lastErr error) []string {
	lines := []string{
		fmt.Sprintf("%.0fx%.0f  tps %.0f  frame %d", st.Width, st.Height, tps, st.Frame),
		fmt.Sprintf("stars %d (bright %d)  constellations %d  shooting %d", st.Stars, st.Bright, st.Groups, st.ShootingStars),
		fmt.Sprintf("cycle %d/%d", st.CycleFrame, cycle),
	}

	switch {
	case tr.Disabled:
		lines = append(lines, "audio off")
	case tr.Path == "":
		lines = append(lines, noTrackLabel)
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s  %s/%s", filepath.Base(tr.Path), formatDuration(tr.Pos), formatDuration(tr.Total))
		if tr.Paused {
			b.WriteString("  [paused]")
		}
		if tr.Muted {
			b.WriteString("  [muted]")
		}
		lines = append(lines, b.String())
	}
	if !tr.Disabled {
		chimes := "off"
		if tr.Chimes {
			chimes = "on"
		}
		lines = append(lines, fmt.Sprintf("volume %d%%  chimes %s", int(tr.Volume*100+0.5), chimes))
	}

	lines = append(lines, helpLine)
	if lastErr != nil {
		lines = append(lines, "error: "+lastErr.Error())
	}
	return lines
}

func drawHUD(screen *ebiten.Image, lines []string, tr trackStatus) {
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, hudMargin, hudMargin+i*16)
	}
	drawTrackProgress(screen, tr)
}

// drawTrackProgress draws a thin loop-position bar along the bottom edge.
func drawTrackProgress(screen *ebiten.Image, tr trackStatus) {
	if tr.Total <= 0 {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	progress := starfield.Clamp01(float64(tr.Pos) / float64(tr.Total))

	barX := float32(hudMargin)
	barY := float32(h - hudMargin - progressH)
	barWidth := float32(w - 2*hudMargin)

	vector.DrawFilledRect(screen, barX, barY, barWidth, progressH, color.NRGBA{R: 25, G: 30, B: 40, A: 160}, false)
	if progress > 0 {
		fill := starfield.Accent.NRGBA(0.7)
		vector.DrawFilledRect(screen, barX, barY, barWidth*float32(progress), progressH, fill, false)
	}
}
