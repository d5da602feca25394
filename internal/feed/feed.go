// Package feed is the engine's input boundary: it carries the live emotion
// distribution and intensity from the host application to the visualization.
// Samples are published whole and swapped atomically, so readers at worst see
// one frame of stale data.
package feed

import (
	"sync/atomic"

	"github.com/mvasko/moodmist/internal/engine"
)

// Feed holds the most recently published sample.
type Feed struct {
	cur atomic.Pointer[engine.Sample]
}

// New creates a feed holding an empty sample (no signal, zero spawns).
func New() *Feed {
	f := &Feed{}
	f.cur.Store(&engine.Sample{})
	return f
}

// Publish replaces the current sample. The counts map is copied, so callers
// may keep mutating theirs. Safe to call from any goroutine.
func (f *Feed) Publish(s engine.Sample) {
	counts := make(map[string]int, len(s.Counts))
	for emotion, n := range s.Counts {
		counts[emotion] = n
	}
	f.cur.Store(&engine.Sample{Counts: counts, Intensity: s.Intensity})
}

// Sample returns the current sample. The returned counts map must be treated
// as read-only.
func (f *Feed) Sample() engine.Sample {
	return *f.cur.Load()
}

// Ensure Feed satisfies the engine's input contract.
var _ engine.Source = (*Feed)(nil)
