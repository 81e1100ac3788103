package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	chimeDuration = 450 * time.Millisecond
	chimeLowHz    = 880
	chimeHighHz   = 1320
	chimeGain     = 0.18
)

// chime synthesizes a decaying sine at freq Hz lasting d.
func chime(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	step := 2 * math.Pi * freq / float64(sr)
	decay := 5.0 / float64(max(total, 1)) // ~ -43 dB by the end
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			v := math.Sin(step*float64(pos)) * math.Exp(-decay*float64(pos)) * chimeGain
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}

// ChimeFrequency maps a shooting star speed (8-16 px/frame) onto the chime
// pitch range; faster streaks ring higher.
func ChimeFrequency(speed float64) float64 {
	f := (speed - 8) / 8
	f = math.Max(0, math.Min(1, f))
	return chimeLowHz + f*(chimeHighHz-chimeLowHz)
}
