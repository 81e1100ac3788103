package starfield

// ColorStop is one stop of a gradient. Offset runs from 0 (start or center) to 1.
type ColorStop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// Surface is the 2D drawing target supplied by the host. Coordinates are surface
// pixels; every alpha handed to a Surface has already been clamped into [0,1].
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	FillCircle(x, y, r float64, c RGB, alpha float64)
	StrokeLine(x1, y1, x2, y2 float64, c RGB, alpha, width float64)
	// RadialGradient fills the disc of radius r around (cx, cy).
	RadialGradient(cx, cy, r float64, stops []ColorStop)
	// LinearGradientStroke strokes (x1,y1)-(x2,y2) with a gradient running from
	// the first point (offset 0) to the second (offset 1).
	LinearGradientStroke(x1, y1, x2, y2, width float64, stops []ColorStop)
}

// Scheduler is the host's "run this before the next repaint" primitive.
type Scheduler interface {
	RequestFrame(fn func())
}

// SampleStops interpolates the color and alpha at offset t. Stops must be
// sorted by Offset; values outside the stop range take the nearest stop.
func SampleStops(stops []ColorStop, t float64) (RGB, float64) {
	if len(stops) == 0 {
		return RGB{}, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, Clamp01(stops[0].Alpha)
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span < epsilon {
			return b.Color, Clamp01(b.Alpha)
		}
		f := (t - a.Offset) / span
		c := FromColorful(a.Color.Colorful().BlendRgb(b.Color.Colorful(), f))
		return c, Clamp01(a.Alpha + (b.Alpha-a.Alpha)*f)
	}
	last := stops[len(stops)-1]
	return last.Color, Clamp01(last.Alpha)
}

func clampStops(stops []ColorStop) []ColorStop {
	for i := range stops {
		stops[i].Alpha = Clamp01(stops[i].Alpha)
	}
	return stops
}
