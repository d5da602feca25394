package engine

import "math"

// Advance moves and ages every live particle, then drops the expired ones.
// This is the only place particles are mutated or destroyed. The returned
// slice reuses the input's backing array and preserves insertion order minus
// removed entries.
func Advance(particles []Particle, width, height float64) []Particle {
	for i := range particles {
		p := &particles[i]
		p.X = wrap(p.X+p.VX, width)
		p.Y = wrap(p.Y+p.VY, height)
		p.Age++
	}

	kept := particles[:0]
	for _, p := range particles {
		if p.Age <= p.Lifespan {
			kept = append(kept, p)
		}
	}
	return kept
}

// wrap maps v onto [0, bound) toroidally. A coordinate already in range is
// unchanged; leaving one edge re-enters at the opposite edge. Velocity is
// never altered by a wrap.
func wrap(v, bound float64) float64 {
	if bound <= 0 {
		return 0
	}
	v = math.Mod(v, bound)
	if v < 0 {
		v += bound
	}
	return v
}
