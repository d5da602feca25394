package feed

import (
	"time"

	"github.com/mvasko/moodmist/internal/engine"
)

// demoSceneDuration is how long each mood scene plays before rotating.
const demoSceneDuration = 15 * time.Second

// demoScenes cycle through contrasting mood mixes so the viewer has
// something to show without a host application attached.
var demoScenes = []engine.Sample{
	{Counts: map[string]int{"calm": 8, "peaceful": 4, "hopeful": 2}, Intensity: 1.5},
	{Counts: map[string]int{"joy": 10, "excited": 6, "energetic": 4}, Intensity: 3},
	{Counts: map[string]int{"anxious": 7, "stressed": 5, "tired": 3}, Intensity: 2},
	{Counts: map[string]int{"sad": 6, "lonely": 3, "bored": 2}, Intensity: 1},
	{Counts: map[string]int{"focused": 9, "grateful": 4, "relaxed": 3}, Intensity: 2.5},
}

// Demo is a synthetic source that rotates through fixed mood scenes.
type Demo struct {
	start time.Time
	now   func() time.Time
}

// NewDemo creates a demo source starting at the first scene.
func NewDemo() *Demo {
	return &Demo{start: time.Now(), now: time.Now}
}

// Sample returns the scene for the current wall-clock position in the cycle.
func (d *Demo) Sample() engine.Sample {
	elapsed := d.now().Sub(d.start)
	idx := int(elapsed/demoSceneDuration) % len(demoScenes)
	if idx < 0 {
		idx = 0
	}
	return demoScenes[idx]
}

var _ engine.Source = (*Demo)(nil)
