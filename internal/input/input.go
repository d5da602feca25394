// Package input delivers viewer key presses without blocking the frame loop.
package input

import (
	"bufio"
)

// Stream delivers input bytes via a channel so the frame loop can poll
// without blocking on the reader.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when the reader does.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			default:
				// Drop input when the loop is behind
			}
		}
	}()
	return s
}

// QuitRequested drains pending input and reports whether a quit key was
// pressed: q, Q, Esc, or Ctrl-C. Also true when the reader has closed.
func (s *Stream) QuitRequested() bool {
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return true
			}
			switch b {
			case 'q', 'Q', 3, 27:
				return true
			}
		default:
			return false
		}
	}
}
