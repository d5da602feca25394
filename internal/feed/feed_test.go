package feed

import (
	"sync"
	"testing"
	"time"

	"github.com/mvasko/moodmist/internal/engine"
)

func TestFeedStartsEmpty(t *testing.T) {
	f := New()
	s := f.Sample()
	if len(s.Counts) != 0 || s.Intensity != 0 {
		t.Errorf("fresh feed sample = %+v, want empty", s)
	}
}

func TestFeedPublishSample(t *testing.T) {
	f := New()
	f.Publish(engine.Sample{Counts: map[string]int{"joy": 3}, Intensity: 2})

	s := f.Sample()
	if s.Counts["joy"] != 3 || s.Intensity != 2 {
		t.Errorf("sample = %+v, want joy:3 intensity:2", s)
	}
}

func TestFeedPublishCopiesCounts(t *testing.T) {
	f := New()
	counts := map[string]int{"joy": 3}
	f.Publish(engine.Sample{Counts: counts, Intensity: 1})

	counts["joy"] = 99
	counts["angry"] = 7

	s := f.Sample()
	if s.Counts["joy"] != 3 || len(s.Counts) != 1 {
		t.Errorf("published sample shares caller's map: %+v", s.Counts)
	}
}

func TestFeedConcurrentPublishSample(t *testing.T) {
	f := New()
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				f.Publish(engine.Sample{Counts: map[string]int{"calm": n}, Intensity: float64(n)})
			}
		}(i + 1)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 2000; j++ {
			s := f.Sample()
			// Every observed sample must be internally consistent
			if s.Counts["calm"] != int(s.Intensity) {
				t.Errorf("torn sample: counts=%v intensity=%v", s.Counts, s.Intensity)
				return
			}
		}
	}()
	wg.Wait()
}

func TestDemoCyclesScenes(t *testing.T) {
	d := NewDemo()
	base := time.Now()
	seen := map[string]bool{}

	for i := range demoScenes {
		d.now = func() time.Time {
			return base.Add(time.Duration(i) * demoSceneDuration)
		}
		s := d.Sample()
		if len(s.Counts) == 0 || s.Intensity <= 0 {
			t.Fatalf("scene %d is empty: %+v", i, s)
		}
		for emotion := range s.Counts {
			seen[emotion] = true
		}
	}
	if len(seen) < 10 {
		t.Errorf("demo scenes cover only %d emotions", len(seen))
	}
}
