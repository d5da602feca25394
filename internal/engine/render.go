package engine

import (
	"math"

	"github.com/mvasko/moodmist/internal/draw"
	"github.com/mvasko/moodmist/internal/physics"
)

// Rendering constants. Opacities are design values, not tunables.
const (
	bodyOpacity = 0.6
	glowOpacity = 0.3
	glowScale   = 2.0

	linkDistance = 100.0
	linkOpacity  = 0.2
)

// DrawFrame renders the live set onto the canvas in two passes: faded
// particle bodies with a soft glow, then translucent links between nearby
// pairs. Read-only over the particles; a degenerate surface yields a no-op
// frame.
func DrawFrame(c *draw.Canvas, particles []Particle) {
	for i := range particles {
		p := &particles[i]
		a := fadeAlpha(p.Age, p.Lifespan)
		if a <= 0 {
			continue
		}
		c.FillCircle(p.X, p.Y, p.Radius, p.Color, a*bodyOpacity)
		c.FillCircle(p.X, p.Y, p.Radius*glowScale, p.Color, a*glowOpacity)
	}

	// Pairwise link scan. Quadratic on purpose: the population cap bounds it
	// at 1225 pair checks per frame, so a spatial index would buy nothing.
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			a, b := &particles[i], &particles[j]
			d2 := physics.DistanceSquared(a.X, a.Y, b.X, b.Y)
			if d2 >= linkDistance*linkDistance {
				continue
			}
			alpha := linkAlpha(math.Sqrt(d2))
			c.BlendLine(draw.Point{X: a.X, Y: a.Y}, draw.Point{X: b.X, Y: b.Y}, draw.White, alpha)
		}
	}
}

// linkAlpha is the link opacity for a pair at distance d: linearly stronger
// for closer pairs, zero at the link threshold.
func linkAlpha(d float64) float64 {
	if d >= linkDistance {
		return 0
	}
	return (linkDistance - d) / linkDistance * linkOpacity
}
