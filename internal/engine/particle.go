// Package engine implements the emotion-driven ambient particle simulation:
// a fixed-rate frame loop that spawns particles from a live emotion
// distribution, integrates their motion across a wrapping surface, and
// renders them with age-based fades and proximity links.
package engine

import (
	"sync/atomic"

	"github.com/mvasko/moodmist/internal/draw"
)

// Kinematic sampling ranges. All fields are drawn once at creation and stay
// constant for the particle's lifetime.
const (
	maxSpeed    = 0.5 // Per-frame displacement, symmetric around zero
	minRadius   = 1.0
	maxRadius   = 3.0
	minLifespan = 100 // Frames
	maxLifespan = 300
)

// Particle is a single animated point. Created only by the Spawner, mutated
// only by Advance, removed only when its age exceeds its lifespan.
type Particle struct {
	ID       uint64
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Color    draw.RGB
	Emotion  string // Category that produced this particle; kept for filtering
	Age      int
	Lifespan int
}

// nextParticleID is the process-wide id counter. IDs are never reused.
var nextParticleID atomic.Uint64

// fadeAlpha is the linear age fade: 1 at birth, 0 at end of life.
func fadeAlpha(age, lifespan int) float64 {
	if lifespan <= 0 {
		return 0
	}
	a := 1 - float64(age)/float64(lifespan)
	if a < 0 {
		return 0
	}
	return a
}
