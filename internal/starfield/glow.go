package starfield

const (
	glowRadius    = 150
	glowAlpha     = 0.04
	glowSmoothing = 0.08
)

// PointerGlow is a soft halo that trails the pointer.
type PointerGlow struct {
	X, Y    float64
	visible bool
}

// Follow eases the glow toward the pointer. It hides while the pointer is off
// the surface and snaps to the pointer when it comes back.
func (g *PointerGlow) Follow(p Pointer) {
	if !p.Active {
		g.visible = false
		return
	}
	if !g.visible {
		g.X, g.Y = p.X, p.Y
		g.visible = true
		return
	}
	g.X += (p.X - g.X) * glowSmoothing
	g.Y += (p.Y - g.Y) * glowSmoothing
}

// Visible reports whether Draw would paint anything.
func (g *PointerGlow) Visible() bool { return g.visible }

// Draw paints the halo.
func (g *PointerGlow) Draw(s Surface) {
	if !g.visible {
		return
	}
	s.RadialGradient(g.X, g.Y, glowRadius, []ColorStop{
		{Offset: 0, Color: Accent, Alpha: glowAlpha},
		{Offset: 0.7, Color: Accent, Alpha: 0},
		{Offset: 1, Color: Accent, Alpha: 0},
	})
}
