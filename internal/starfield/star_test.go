package starfield

import (
	"math"
	"testing"
)

var defaultField = FieldParams{Density: 4000, Max: 350, BrightRatio: 0.15}

func TestStarCount(t *testing.T) {
	tests := []struct {
		w, h float64
		want int
	}{
		{800, 600, 120},
		{4000, 3000, 350},
		{1920, 1080, 350},
		{400, 300, 30},
		{1, 1, 1},
		{0, 600, 0},
		{800, 0, 0},
	}
	for _, tt := range tests {
		if got := StarCount(tt.w, tt.h, defaultField); got != tt.want {
			t.Errorf("StarCount(%v, %v) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestGenerateStars_Bounds(t *testing.T) {
	rng := NewRand(11)
	sizes := [][2]float64{{800, 600}, {1, 1}, {37, 5000}, {4000, 3000}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		stars := GenerateStars(w, h, defaultField, rng)
		if len(stars) != StarCount(w, h, defaultField) {
			t.Errorf("%vx%v: got %d stars, want %d", w, h, len(stars), StarCount(w, h, defaultField))
		}
		for i, s := range stars {
			if s.X < 0 || s.X >= w || s.Y < 0 || s.Y >= h {
				t.Errorf("%vx%v: star %d at (%v,%v) out of bounds", w, h, i, s.X, s.Y)
			}
		}
	}
}

func TestGenerateStars_Classes(t *testing.T) {
	stars := GenerateStars(4000, 3000, defaultField, NewRand(5))
	bright := 0
	for _, s := range stars {
		if s.Bright {
			bright++
			if s.Size < 1.5 || s.Size >= 3.2 {
				t.Errorf("bright size %v out of [1.5,3.2)", s.Size)
			}
			if s.BaseAlpha < 0.5 || s.BaseAlpha >= 1 {
				t.Errorf("bright base alpha %v out of [0.5,1)", s.BaseAlpha)
			}
			if s.GlowSize < 6 || s.GlowSize >= 14 {
				t.Errorf("glow size %v out of [6,14)", s.GlowSize)
			}
		} else {
			if s.Size < 0.4 || s.Size >= 1.5 {
				t.Errorf("dim size %v out of [0.4,1.5)", s.Size)
			}
			if s.BaseAlpha < 0.1 || s.BaseAlpha >= 0.45 {
				t.Errorf("dim base alpha %v out of [0.1,0.45)", s.BaseAlpha)
			}
			if s.GlowSize != 0 {
				t.Errorf("dim star has glow size %v", s.GlowSize)
			}
		}
	}
	// 350 draws at p=0.15: expect ~52; a wide band keeps this seed-independent
	if bright < 20 || bright > 95 {
		t.Errorf("bright count %d implausible for ratio 0.15", bright)
	}
}

func TestGenerateStars_PaletteOnly(t *testing.T) {
	inPalette := map[RGB]bool{}
	for _, c := range Palette {
		inPalette[c] = true
	}
	for _, s := range GenerateStars(800, 600, defaultField, NewRand(8)) {
		if !inPalette[s.Color] {
			t.Errorf("star color %+v not in palette", s.Color)
		}
	}
}

func TestPalette_Colors(t *testing.T) {
	if Palette[0] != (RGB{255, 255, 255}) {
		t.Errorf("Palette[0] = %+v, want white", Palette[0])
	}
	if Accent != (RGB{78, 205, 196}) {
		t.Errorf("Accent = %+v, want 78,205,196", Accent)
	}
}

func TestHex(t *testing.T) {
	if got := hex("#ffdcb4"); got != (RGB{255, 220, 180}) {
		t.Errorf("hex(#ffdcb4) = %+v", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("hex with a malformed literal did not panic")
		}
	}()
	hex("#zz0000")
}

func TestStarView_AlphaAlwaysInRange(t *testing.T) {
	stars := GenerateStars(800, 600, defaultField, NewRand(21))
	stars = append(stars, Star{X: 10, Y: 10, Size: 3, BaseAlpha: 1, Bright: true, TwinkleAmount: 0.5, TwinkleSpeed: 1})
	stars = append(stars, Star{X: 10, Y: 10, Size: 1, BaseAlpha: 0.1, TwinkleAmount: 0.2, TwinkleSpeed: 2})

	for i := range stars {
		s := &stars[i]
		for step := 0; step < 400; step++ {
			clock := float64(step) * 0.05
			pointers := []Pointer{
				NoPointer,
				{X: s.X, Y: s.Y, Active: true},
				{X: s.X + 20, Y: s.Y - 40, Active: true},
			}
			for _, p := range pointers {
				v := s.View(clock, p, 150)
				if math.IsNaN(v.Alpha) || v.Alpha < 0 || v.Alpha > 1 {
					t.Fatalf("star %d clock %v pointer %+v: alpha %v", i, clock, p, v.Alpha)
				}
				if math.IsNaN(v.X) || math.IsNaN(v.Y) {
					t.Fatalf("star %d: NaN position", i)
				}
			}
		}
	}
}

func TestStarView_MinimumAlpha(t *testing.T) {
	s := Star{BaseAlpha: 0.1, TwinkleAmount: 0.2, TwinkleSpeed: 1, TwinklePhase: -math.Pi / 2}
	v := s.View(0, NoPointer, 150)
	if v.Alpha != minStarAlpha {
		t.Errorf("alpha = %v, want floor %v", v.Alpha, minStarAlpha)
	}
}

func TestStarView_PointerPushesAway(t *testing.T) {
	s := Star{X: 100, Y: 100, BaseAlpha: 0.3}
	far := s.View(0, NoPointer, 150)

	near := s.View(0, Pointer{X: 50, Y: 100, Active: true}, 150)
	if near.X <= far.X {
		t.Errorf("pointer on the left: x = %v, want > %v", near.X, far.X)
	}
	if near.Alpha <= far.Alpha {
		t.Errorf("pointer near: alpha %v, want brighter than %v", near.Alpha, far.Alpha)
	}

	out := s.View(0, Pointer{X: 400, Y: 100, Active: true}, 150)
	if out.X != far.X || out.Alpha != far.Alpha {
		t.Errorf("pointer out of range changed the star: %+v vs %+v", out, far)
	}
}

func TestStarView_PointerOnTopSkipsPush(t *testing.T) {
	s := Star{X: 100, Y: 100, BaseAlpha: 0.3}
	base := s.View(0, NoPointer, 150)
	v := s.View(0, Pointer{X: base.X, Y: base.Y, Active: true}, 150)
	if v.X != base.X || v.Y != base.Y {
		t.Errorf("zero-distance pointer moved the star: (%v,%v) -> (%v,%v)", base.X, base.Y, v.X, v.Y)
	}
	if want := math.Min(1, base.Alpha+0.5*0.4); math.Abs(v.Alpha-want) > 1e-12 {
		t.Errorf("alpha = %v, want %v", v.Alpha, want)
	}
}
