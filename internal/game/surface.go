package game

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/starfield"
)

const gradientSegments = 32

// Background is the deep-space clear color.
var Background = color.NRGBA{R: 5, G: 7, B: 13, A: 255}

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteSource returns a 1x1 white source for vertex-colored triangles.
func whiteSource() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// screenSurface draws starfield primitives onto an ebiten image. Vertex and
// index buffers are reused between calls.
type screenSurface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (s *screenSurface) Clear() {
	s.dst.Fill(Background)
}

func (s *screenSurface) FillCircle(x, y, r float64, c starfield.RGB, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c.NRGBA(alpha), true)
}

func (s *screenSurface) StrokeLine(x1, y1, x2, y2 float64, c starfield.RGB, alpha, width float64) {
	if width <= 0 || alpha <= 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c.NRGBA(alpha), true)
}

func (s *screenSurface) RadialGradient(cx, cy, r float64, stops []starfield.ColorStop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	s.vertices, s.indices = appendRadial(s.vertices[:0], s.indices[:0], cx, cy, r, stops, gradientSegments)
	s.drawTriangles()
}

func (s *screenSurface) LinearGradientStroke(x1, y1, x2, y2, width float64, stops []starfield.ColorStop) {
	if width <= 0 || len(stops) == 0 {
		return
	}
	s.vertices, s.indices = appendLinearStroke(s.vertices[:0], s.indices[:0], x1, y1, x2, y2, width, stops)
	s.drawTriangles()
}

func (s *screenSurface) drawTriangles() {
	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSource(), op)
}

func vertex(x, y float64, c starfield.RGB, alpha float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(starfield.Clamp01(alpha)),
	}
}

// spanStops makes the stops cover offsets 0 through 1 by repeating the end stops.
func spanStops(stops []starfield.ColorStop) []starfield.ColorStop {
	out := make([]starfield.ColorStop, 0, len(stops)+2)
	if stops[0].Offset > 0 {
		first := stops[0]
		first.Offset = 0
		out = append(out, first)
	}
	out = append(out, stops...)
	if last := stops[len(stops)-1]; last.Offset < 1 {
		last.Offset = 1
		out = append(out, last)
	}
	return out
}

// appendRadial builds one ring of quads per pair of adjacent stops.
func appendRadial(vs []ebiten.Vertex, is []uint16, cx, cy, r float64, stops []starfield.ColorStop, segments int) ([]ebiten.Vertex, []uint16) {
	stops = spanStops(stops)
	for k := 1; k < len(stops); k++ {
		in, out := stops[k-1], stops[k]
		base := uint16(len(vs))
		for i := 0; i <= segments; i++ {
			a := 2 * math.Pi * float64(i) / float64(segments)
			cos, sin := math.Cos(a), math.Sin(a)
			vs = append(vs,
				vertex(cx+cos*r*in.Offset, cy+sin*r*in.Offset, in.Color, in.Alpha),
				vertex(cx+cos*r*out.Offset, cy+sin*r*out.Offset, out.Color, out.Alpha),
			)
		}
		for i := 0; i < segments; i++ {
			a := base + uint16(2*i)
			is = append(is, a, a+1, a+2, a+1, a+3, a+2)
		}
	}
	return vs, is
}

// appendLinearStroke builds a quad strip along the segment with one cross
// section per stop. A zero-length segment produces nothing.
func appendLinearStroke(vs []ebiten.Vertex, is []uint16, x1, y1, x2, y2, width float64, stops []starfield.ColorStop) ([]ebiten.Vertex, []uint16) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return vs, is
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	stops = spanStops(stops)
	base := uint16(len(vs))
	for _, st := range stops {
		px, py := x1+dx*st.Offset, y1+dy*st.Offset
		vs = append(vs,
			vertex(px+nx, py+ny, st.Color, st.Alpha),
			vertex(px-nx, py-ny, st.Color, st.Alpha),
		)
	}
	for i := 0; i < len(stops)-1; i++ {
		a := base + uint16(2*i)
		is = append(is, a, a+1, a+2, a+1, a+3, a+2)
	}
	return vs, is
}
