package starfield

import "math"

// Star is one ambient point light. Everything except the per-frame view is
// fixed at creation.
type Star struct {
	X, Y          float64
	Size          float64
	BaseAlpha     float64
	Bright        bool
	Color         RGB
	TwinkleSpeed  float64
	TwinklePhase  float64
	TwinkleAmount float64
	Drift         float64
	DriftPhase    float64
	GlowSize      float64 // 0 unless Bright
}

// FieldParams configures the star field generator.
type FieldParams struct {
	Density     float64 // surface px² per star
	Max         int
	BrightRatio float64
}

// StarCount returns ceil(min(w*h/density, max)). Non-positive surfaces get 0.
func StarCount(w, h float64, p FieldParams) int {
	if w <= 0 || h <= 0 || p.Density <= 0 {
		return 0
	}
	n := math.Min(w*h/p.Density, float64(p.Max))
	return int(math.Ceil(n))
}

// GenerateStars builds a fresh population for a w×h surface.
func GenerateStars(w, h float64, p FieldParams, rng *Rand) []Star {
	n := StarCount(w, h, p)
	stars := make([]Star, n)
	for i := range stars {
		bright := rng.Chance(p.BrightRatio)
		s := Star{
			X:            rng.Range(0, w),
			Y:            rng.Range(0, h),
			Bright:       bright,
			Color:        Palette[rng.Intn(len(Palette))],
			TwinkleSpeed: rng.Range(0.5, 2.5),
			TwinklePhase: rng.Range(0, 2*math.Pi),
			Drift:        rng.Range(0.01, 0.06),
			DriftPhase:   rng.Range(0, 2*math.Pi),
		}
		if bright {
			s.Size = rng.Range(1.5, 3.2)
			s.BaseAlpha = rng.Range(0.5, 1)
			s.TwinkleAmount = rng.Range(0.2, 0.5)
			s.GlowSize = rng.Range(6, 14)
		} else {
			s.Size = rng.Range(0.4, 1.5)
			s.BaseAlpha = rng.Range(0.1, 0.45)
			s.TwinkleAmount = rng.Range(0.05, 0.2)
		}
		stars[i] = s
	}
	return stars
}

// Pointer is the last known pointer position. Active is false after the
// pointer leaves the surface; X and Y then hold the off-surface sentinel.
type Pointer struct {
	X, Y   float64
	Active bool
}

// PointerSentinel is far enough off-surface that no star is ever in range.
const PointerSentinel = -1e3

// NoPointer is the pointer state before any move and after a leave.
var NoPointer = Pointer{X: PointerSentinel, Y: PointerSentinel}

const (
	minStarAlpha  = 0.02
	pushStrength  = 0.5
	pushDistance  = 8
	pointerBright = 0.4
)

// StarView is a star as drawn in one frame.
type StarView struct {
	X, Y    float64
	Alpha   float64
	Twinkle float64 // sin of the twinkle phase, in [-1,1]
}

// View computes the frame appearance of s at the given clock. Stars within
// radius of the pointer are pushed away from it and brightened.
func (s *Star) View(clock float64, p Pointer, radius float64) StarView {
	twinkle := math.Sin(clock*s.TwinkleSpeed + s.TwinklePhase)
	alpha := Clamp(s.BaseAlpha+twinkle*s.TwinkleAmount, minStarAlpha, 1)

	x := s.X + math.Sin(clock*0.3+s.DriftPhase)*s.Drift
	y := s.Y + math.Cos(clock*0.2+s.DriftPhase*1.3)*s.Drift

	if p.Active && radius > 0 {
		dx, dy := x-p.X, y-p.Y
		dist := hypot(dx, dy)
		if dist < radius {
			force := (radius - dist) / radius * pushStrength
			if dist > epsilon {
				x += dx / dist * force * pushDistance
				y += dy / dist * force * pushDistance
			}
			alpha = math.Min(1, alpha+force*pointerBright)
		}
	}

	return StarView{X: x, Y: y, Alpha: Clamp01(alpha), Twinkle: twinkle}
}
