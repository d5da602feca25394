// Package viewer runs an engine instance against an interactive terminal:
// it owns frame presentation, resize tracking, and quit handling for one
// connection, local or SSH.
package viewer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mvasko/moodmist/internal/draw"
	"github.com/mvasko/moodmist/internal/engine"
	"github.com/mvasko/moodmist/internal/input"
)

// Options configures a viewer session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	FPS          int               // Defaults to engine.DefaultFPS
	HUD          bool              // Show the status line
}

// Session couples one engine instance to one terminal.
type Session struct {
	eng      *engine.Engine
	src      engine.Source
	reader   *bufio.Reader
	writer   io.Writer
	cw       *draw.ChunkWriter
	sizeFunc draw.TermSizeFunc
	hud      bool

	lastW, lastH int // Last seen terminal size, in cells
}

// NewSession creates a session rendering src on the terminal behind r/w.
// Fails when the terminal size cannot be determined: without a drawable
// surface the engine cannot run.
func NewSession(src engine.Source, r *bufio.Reader, w io.Writer, opts Options) (*Session, error) {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	cols, rows, err := sizeFunc()
	if err != nil {
		return nil, fmt.Errorf("viewer: no drawable surface: %w", err)
	}

	// Half-block cells give two vertical pixels per terminal row
	eng, err := engine.New(cols, rows*2, src, engine.NewPalette())
	if err != nil {
		return nil, err
	}
	if opts.FPS > 0 {
		eng.SetFPS(opts.FPS)
	}

	return &Session{
		eng:      eng,
		src:      src,
		reader:   r,
		writer:   w,
		cw:       draw.NewChunkWriter(w, 0, 0),
		sizeFunc: sizeFunc,
		hud:      opts.HUD,
		lastW:    cols,
		lastH:    rows,
	}, nil
}

// Stop detaches the session's frame loop. Idempotent.
func (s *Session) Stop() {
	s.eng.Stop()
}

// Run drives the frame loop until the viewer quits, the context is
// cancelled, or the terminal goes away. Always restores the cursor.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer func() {
		draw.ResetStyle(s.writer)
		draw.ShowCursor(s.writer)
	}()
	draw.ClearScreen(s.writer)

	stream := input.StartStream(s.reader)

	err := s.eng.Run(ctx, func(c *draw.Canvas) error {
		if stream.QuitRequested() {
			s.eng.Stop()
			return nil
		}
		s.trackResize()
		return s.present(c)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// trackResize polls the terminal size and forwards changes to the engine.
// Runs on the loop goroutine, so the new bounds apply on the next frame.
func (s *Session) trackResize() {
	cols, rows, err := s.sizeFunc()
	if err != nil {
		return
	}
	if cols != s.lastW || rows != s.lastH {
		s.lastW, s.lastH = cols, rows
		s.eng.Resize(cols, rows*2)
	}
}

// present blits the frame and the optional status line to the terminal.
func (s *Session) present(c *draw.Canvas) error {
	draw.ClearScreen(s.cw)
	c.Render(s.cw)
	if s.hud {
		s.cw.WriteString("\033[0m")
		s.cw.WriteAt(2, 1, s.statusLine())
	}
	return s.cw.Flush()
}

// statusLine summarizes the feed driving the visualization.
func (s *Session) statusLine() string {
	sample := s.src.Sample()
	dominant := "idle"
	best := 0
	for emotion, n := range sample.Counts {
		if n > best {
			dominant = emotion
			best = n
		}
	}
	return fmt.Sprintf(" moodmist · %s · intensity %.1f · %d particles · q to quit ",
		dominant, sample.Intensity, s.eng.Count())
}
