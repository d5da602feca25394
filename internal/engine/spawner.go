package engine

import (
	"math/rand"
)

// Spawning
const (
	// PopulationCap is the maximum number of simultaneously live particles.
	// It is the engine's performance control: the renderer's pairwise link
	// scan is O(n²), so the cap bounds worst-case work per frame.
	PopulationCap = 50

	spawnCoefficient = 0.02
)

// Spawner probabilistically creates particles from the current emotion
// distribution. Each emotion category gets an independent Bernoulli trial per
// frame, so several categories can spawn simultaneously.
type Spawner struct {
	rng     *rand.Rand
	palette Palette
}

// NewSpawner creates a spawner drawing randomness from the given seed.
func NewSpawner(palette Palette, seed int64) *Spawner {
	return &Spawner{
		rng:     rand.New(rand.NewSource(seed)),
		palette: palette,
	}
}

// Spawn returns the particles created this frame. counts is the live emotion
// distribution, intensity the external multiplier, current the live
// population, and width/height the surface bounds for placement.
//
// Each category spawns with probability (count/total) * intensity *
// spawnCoefficient. Spawning stops once the population cap is reached, so
// count(live) + count(spawned) never exceeds PopulationCap. Degenerate inputs
// (empty distribution, all-zero counts, zero intensity) yield no spawns.
func (s *Spawner) Spawn(counts map[string]int, intensity float64, current int, width, height float64) []Particle {
	if current >= PopulationCap {
		return nil
	}

	total := 0
	for _, n := range counts {
		if n > 0 {
			total += n
		}
	}
	if total == 0 || intensity <= 0 {
		return nil
	}

	var spawned []Particle
	for emotion, n := range counts {
		if n <= 0 {
			continue
		}
		if current+len(spawned) >= PopulationCap {
			break
		}
		p := float64(n) / float64(total) * intensity * spawnCoefficient
		if s.rng.Float64() < p {
			spawned = append(spawned, s.newParticle(emotion, width, height))
		}
	}
	return spawned
}

// newParticle samples all kinematic fields uniformly from their fixed ranges.
func (s *Spawner) newParticle(emotion string, width, height float64) Particle {
	return Particle{
		ID:       nextParticleID.Add(1),
		X:        s.rng.Float64() * width,
		Y:        s.rng.Float64() * height,
		VX:       (s.rng.Float64() - 0.5) * 2 * maxSpeed,
		VY:       (s.rng.Float64() - 0.5) * 2 * maxSpeed,
		Radius:   minRadius + s.rng.Float64()*(maxRadius-minRadius),
		Color:    s.palette.Color(emotion),
		Emotion:  emotion,
		Age:      0,
		Lifespan: minLifespan + s.rng.Intn(maxLifespan-minLifespan+1),
	}
}
