package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mvasko/moodmist/internal/draw"
)

// DefaultFPS is the frame rate of the ambient loop.
const DefaultFPS = 30

// Sample is one reading of the engine's external inputs: the emotion
// distribution and the intensity multiplier. Counts is treated as read-only
// after the sample is taken.
type Sample struct {
	Counts    map[string]int
	Intensity float64
}

// Source supplies the engine's inputs. Sample is called exactly once per
// frame from the loop goroutine; implementations may swap the underlying
// data at any time, and a torn read only perturbs spawn probabilities for a
// single frame.
type Source interface {
	Sample() Sample
}

// Engine owns the drawable surface and the live particle set, and runs the
// spawn → integrate → render cycle. The particle set is touched only by the
// loop goroutine; nothing outside the engine holds particle references
// across frames.
type Engine struct {
	canvas    *draw.Canvas
	src       Source
	spawner   *Spawner
	particles []Particle
	fps       int

	mu         sync.Mutex // guards pending resize, applied at frame start
	pendingW   int
	pendingH   int
	hasPending bool

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates an engine with a width x height pixel surface reading inputs
// from src. Construction fails when no drawable surface can be acquired;
// every runtime condition after that degrades gracefully instead of erroring.
func New(width, height int, src Source, palette Palette) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: cannot acquire %dx%d drawable surface", width, height)
	}
	if src == nil {
		return nil, fmt.Errorf("engine: nil input source")
	}
	return &Engine{
		canvas:  draw.NewCanvas(width, height),
		src:     src,
		spawner: NewSpawner(palette, time.Now().UnixNano()),
		fps:     DefaultFPS,
		stopCh:  make(chan struct{}),
	}, nil
}

// SetFPS overrides the frame rate. Must be called before Run.
func (e *Engine) SetFPS(fps int) {
	if fps < 1 {
		fps = 1
	}
	if fps > 120 {
		fps = 120
	}
	e.fps = fps
}

// Count returns the live particle count. Loop goroutine only.
func (e *Engine) Count() int {
	return len(e.particles)
}

// Size returns the current surface bounds in pixels. Loop goroutine only.
func (e *Engine) Size() (width, height int) {
	return e.canvas.Width(), e.canvas.Height()
}

// Resize requests new surface bounds. Safe to call from any goroutine; the
// change is applied at the start of the next frame, so a resize mid-frame
// never disturbs the renderer. Degenerate dimensions are clamped by the
// surface, not rejected.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	e.pendingW, e.pendingH = width, height
	e.hasPending = true
	e.mu.Unlock()
}

// applyResize applies a pending resize, if any.
func (e *Engine) applyResize() {
	e.mu.Lock()
	w, h, pending := e.pendingW, e.pendingH, e.hasPending
	e.hasPending = false
	e.mu.Unlock()
	if pending {
		e.canvas.Resize(w, h)
	}
}

// Step executes one frame: spawn, integrate, render, in that order. Exposed
// so hosts and tests can drive the engine without the ticker.
func (e *Engine) Step() {
	e.applyResize()

	w := float64(e.canvas.Width())
	h := float64(e.canvas.Height())

	sample := e.src.Sample()
	e.particles = append(e.particles, e.spawner.Spawn(sample.Counts, sample.Intensity, len(e.particles), w, h)...)
	e.particles = Advance(e.particles, w, h)

	e.canvas.Clear()
	DrawFrame(e.canvas, e.particles)
}

// Run drives the frame loop at the configured rate until Stop is called or
// the context is cancelled. After each completed frame the present callback
// (if any) receives the freshly rendered canvas; a present error stops the
// loop and is returned. Frames are strictly sequential.
func (e *Engine) Run(ctx context.Context, present func(*draw.Canvas) error) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.fps))
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Step()
			if present != nil {
				if err := present(e.canvas); err != nil {
					return err
				}
			}
		}
	}
}

// Stop detaches the loop from the scheduler so no further frames execute.
// Idempotent and safe to call from any goroutine.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
	})
}
