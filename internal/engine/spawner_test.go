package engine

import (
	"testing"
)

func TestSpawnNoSignal(t *testing.T) {
	tests := []struct {
		name      string
		counts    map[string]int
		intensity float64
	}{
		{"Nil distribution", nil, 1},
		{"Empty distribution", map[string]int{}, 1},
		{"All zero counts", map[string]int{"joy": 0, "calm": 0}, 5},
		{"Zero intensity", map[string]int{"joy": 10}, 0},
		{"Negative intensity", map[string]int{"joy": 10}, -1},
		{"High intensity no counts", map[string]int{}, 100},
	}

	s := NewSpawner(NewPalette(), 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for frame := 0; frame < 100; frame++ {
				if got := s.Spawn(tt.counts, tt.intensity, 0, 800, 600); len(got) != 0 {
					t.Fatalf("Spawn() produced %d particles, want 0", len(got))
				}
			}
		})
	}
}

func TestSpawnBackpressureAtCap(t *testing.T) {
	s := NewSpawner(NewPalette(), 1)
	counts := map[string]int{"joy": 10, "calm": 10, "sad": 10}

	// At or above the cap, nothing spawns even with absurd intensity
	for _, current := range []int{PopulationCap, PopulationCap + 1, PopulationCap * 2} {
		if got := s.Spawn(counts, 1000, current, 800, 600); len(got) != 0 {
			t.Errorf("Spawn(current=%d) produced %d particles, want 0", current, len(got))
		}
	}

	// One below the cap, at most one slot is filled this frame
	for frame := 0; frame < 200; frame++ {
		got := s.Spawn(counts, 1000, PopulationCap-1, 800, 600)
		if len(got) > 1 {
			t.Fatalf("spawn burst exceeded cap: %d new at population %d", len(got), PopulationCap-1)
		}
	}
}

func TestSpawnCertainProbability(t *testing.T) {
	// With intensity high enough every category's probability reaches 1,
	// so each category spawns exactly one particle per frame.
	s := NewSpawner(NewPalette(), 42)
	counts := map[string]int{"joy": 5, "anxious": 5}

	got := s.Spawn(counts, 1000, 0, 800, 600)
	if len(got) != 2 {
		t.Fatalf("Spawn() = %d particles, want one per category (2)", len(got))
	}
	seen := map[string]bool{}
	for _, p := range got {
		seen[p.Emotion] = true
	}
	if !seen["joy"] || !seen["anxious"] {
		t.Errorf("spawned emotions %v, want both categories", seen)
	}
}

func TestSpawnStatisticalRate(t *testing.T) {
	// {joy: 10}, intensity 1 → p = (10/10) * 1 * 0.02 = 0.02 per frame.
	// Over 1000 frames the spawn count follows Binomial(1000, 0.02):
	// mean 20, stddev ~4.4. Accept mean ± 4 stddev.
	s := NewSpawner(NewPalette(), 7)
	counts := map[string]int{"joy": 10}

	spawnedTotal := 0
	for frame := 0; frame < 1000; frame++ {
		spawnedTotal += len(s.Spawn(counts, 1, 0, 800, 600))
	}
	if spawnedTotal < 3 || spawnedTotal > 38 {
		t.Errorf("1000-frame spawn count = %d, want ≈20 (within 3..38)", spawnedTotal)
	}
}

func TestSpawnedParticleFields(t *testing.T) {
	s := NewSpawner(NewPalette(), 3)
	palette := NewPalette()
	counts := map[string]int{"calm": 1}

	var lastID uint64
	for frame := 0; frame < 500; frame++ {
		for _, p := range s.Spawn(counts, 1000, 0, 800, 600) {
			if p.ID <= lastID {
				t.Fatalf("particle id %d not monotonically increasing after %d", p.ID, lastID)
			}
			lastID = p.ID

			if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
				t.Errorf("position (%v, %v) outside surface", p.X, p.Y)
			}
			if p.VX < -maxSpeed || p.VX > maxSpeed || p.VY < -maxSpeed || p.VY > maxSpeed {
				t.Errorf("velocity (%v, %v) outside ±%v", p.VX, p.VY, maxSpeed)
			}
			if p.Radius < minRadius || p.Radius > maxRadius {
				t.Errorf("radius %v outside [%v, %v]", p.Radius, minRadius, maxRadius)
			}
			if p.Lifespan < minLifespan || p.Lifespan > maxLifespan {
				t.Errorf("lifespan %d outside [%d, %d]", p.Lifespan, minLifespan, maxLifespan)
			}
			if p.Age != 0 {
				t.Errorf("new particle age = %d, want 0", p.Age)
			}
			if p.Emotion != "calm" {
				t.Errorf("emotion = %q, want calm", p.Emotion)
			}
			if p.Color != palette.Color("calm") {
				t.Errorf("color %+v does not match palette", p.Color)
			}
		}
	}
	if lastID == 0 {
		t.Fatal("no particles spawned at certain probability")
	}
}
