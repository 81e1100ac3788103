package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/starfield/internal/starfield"
)

// One terminal cell stands for a CellWidth×CellHeight block of simulated pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

var background = colorful.Color{R: 5.0 / 255, G: 7.0 / 255, B: 13.0 / 255}

// Glyph ramp by lightness gain over the background (CIE L*, 0..1).
var glyphRamp = []struct {
	min   float64
	glyph rune
}{
	{0.55, '✦'},
	{0.35, '*'},
	{0.20, '+'},
	{0.10, '·'},
	{0.04, '.'},
}

// CellSurface rasterises starfield primitives into a grid of terminal cells.
// Each cell composites everything drawn over it source-over, starting from
// the background, and picks its glyph from the resulting lightness.
type CellSurface struct {
	cols, rows int
	cells      []colorful.Color
	bgL        float64
}

func NewCellSurface(cols, rows int) *CellSurface {
	s := &CellSurface{}
	l, _, _ := background.Lab()
	s.bgL = l
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *CellSurface) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]colorful.Color, cols*rows)
	s.Clear()
}

// Size returns the grid size in cells.
func (s *CellSurface) Size() (cols, rows int) { return s.cols, s.rows }

// PixelSize returns the simulated surface size in pixels.
func (s *CellSurface) PixelSize() (w, h float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *CellSurface) Clear() {
	for i := range s.cells {
		s.cells[i] = background
	}
}

func (s *CellSurface) blend(col, row int, c starfield.RGB, alpha float64) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows || alpha <= 0 {
		return
	}
	i := row*s.cols + col
	s.cells[i] = s.cells[i].BlendRgb(c.Colorful(), starfield.Clamp01(alpha)).Clamped()
}

func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// FillCircle blends every cell the disc touches. Discs much smaller than a
// cell are weakened by their radius so a dust speck does not light a cell
// as much as a bright star.
func (s *CellSurface) FillCircle(x, y, r float64, c starfield.RGB, alpha float64) {
	if r <= 0 {
		return
	}
	a := alpha * math.Min(1, r/2)
	c0, r0 := cellOf(x-r, y-r)
	c1, r1 := cellOf(x+r, y+r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			// nearest point of the cell rectangle to the centre
			nx := starfield.Clamp(x, float64(col*CellWidth), float64((col+1)*CellWidth))
			ny := starfield.Clamp(y, float64(row*CellHeight), float64((row+1)*CellHeight))
			if math.Hypot(nx-x, ny-y) <= r {
				s.blend(col, row, c, a)
			}
		}
	}
}

func (s *CellSurface) StrokeLine(x1, y1, x2, y2 float64, c starfield.RGB, alpha, width float64) {
	a := alpha * math.Min(1, width)
	s.walk(x1, y1, x2, y2, func(col, row int, _ float64) {
		s.blend(col, row, c, a)
	})
}

// RadialGradient blends each cell whose centre lies inside the disc with the
// stop colour sampled at the centre's distance.
func (s *CellSurface) RadialGradient(cx, cy, r float64, stops []starfield.ColorStop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	c0, r0 := cellOf(cx-r, cy-r)
	c1, r1 := cellOf(cx+r, cy+r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			d := math.Hypot(px-cx, py-cy)
			if d > r {
				continue
			}
			c, a := starfield.SampleStops(stops, d/r)
			s.blend(col, row, c, a)
		}
	}
}

func (s *CellSurface) LinearGradientStroke(x1, y1, x2, y2, width float64, stops []starfield.ColorStop) {
	if len(stops) == 0 {
		return
	}
	k := math.Min(1, width)
	s.walk(x1, y1, x2, y2, func(col, row int, t float64) {
		c, a := starfield.SampleStops(stops, t)
		s.blend(col, row, c, a*k)
	})
}

// walk visits each cell along the segment once, passing the offset in [0,1]
// of the sample that entered it.
func (s *CellSurface) walk(x1, y1, x2, y2 float64, visit func(col, row int, t float64)) {
	steps := int(math.Ceil(math.Max(math.Abs(x2-x1)/CellWidth, math.Abs(y2-y1)/CellHeight)*2)) + 1
	lastCol, lastRow := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col, row := cellOf(x1+(x2-x1)*t, y1+(y2-y1)*t)
		if col == lastCol && row == lastRow {
			continue
		}
		lastCol, lastRow = col, row
		visit(col, row, t)
	}
}

// Cell returns the composited colour of a cell.
func (s *CellSurface) Cell(col, row int) colorful.Color {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return background
	}
	return s.cells[row*s.cols+col]
}

// Glyph returns the rune for a cell, ' ' for empty sky.
func (s *CellSurface) Glyph(col, row int) rune {
	l, _, _ := s.Cell(col, row).Lab()
	gain := l - s.bgL
	for _, g := range glyphRamp {
		if gain >= g.min {
			return g.glyph
		}
	}
	return ' '
}

// Flush copies the grid onto screen. It does not call Show.
func (s *CellSurface) Flush(screen tcell.Screen) {
	bg := toTcell(background)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			style := tcell.StyleDefault.Background(bg).Foreground(toTcell(s.Cell(col, row)))
			screen.SetContent(col, row, s.Glyph(col, row), nil, style)
		}
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
