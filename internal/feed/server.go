package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mvasko/moodmist/internal/engine"
)

// maxIntensity caps the accepted intensity. Values above this do not make
// the visualization meaningfully busier, they just saturate every spawn
// probability at once.
const maxIntensity = 5.0

// samplePayload is the wire form of an emotion sample.
type samplePayload struct {
	Counts    map[string]int `json:"counts"`
	Intensity float64        `json:"intensity"`
}

// toSample validates the payload and converts it to an engine sample.
// Negative counts are rejected; intensity is clamped to [0, maxIntensity].
func (p samplePayload) toSample() (engine.Sample, error) {
	for emotion, n := range p.Counts {
		if n < 0 {
			return engine.Sample{}, fmt.Errorf("negative count %d for %q", n, emotion)
		}
	}
	intensity := p.Intensity
	if intensity < 0 {
		intensity = 0
	}
	if intensity > maxIntensity {
		intensity = maxIntensity
	}
	return engine.Sample{Counts: p.Counts, Intensity: intensity}, nil
}

// Server is the ingest surface where the host application publishes emotion
// samples: a JSON endpoint for one-shot updates and a WebSocket for streams.
type Server struct {
	feed     *Feed
	logger   *log.Logger
	index    []byte
	srv      *http.Server
	upgrader websocket.Upgrader
}

// NewServer creates an ingest server publishing into f. indexHTML, if
// non-empty, is served at the root as a usage page.
func NewServer(addr string, f *Feed, logger *log.Logger, indexHTML []byte) *Server {
	s := &Server{
		feed:   f,
		logger: logger,
		index:  indexHTML,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The host application may post from any origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/emotions", s.handleEmotions)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", s.handleIndex)
	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe blocks serving ingest requests until Shutdown.
func (s *Server) ListenAndServe() error {
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the ingest server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the ingest routes for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if len(s.index) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.index)
}

func (s *Server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		sample := s.feed.Sample()
		payload := samplePayload{Counts: sample.Counts, Intensity: sample.Intensity}
		if payload.Counts == nil {
			payload.Counts = map[string]int{}
		}
		_ = json.NewEncoder(w).Encode(payload)

	case http.MethodPost:
		var payload samplePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		sample, err := payload.toSample()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.feed.Publish(sample)
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWS upgrades the connection and consumes a stream of JSON samples.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	s.logger.Info("feed stream connected", "remote", conn.RemoteAddr())

	defer func() {
		_ = conn.Close()
		s.logger.Info("feed stream closed", "remote", conn.RemoteAddr())
	}()

	for {
		var payload samplePayload
		if err := conn.ReadJSON(&payload); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Error("feed stream error", "err", err)
			}
			return
		}
		sample, err := payload.toSample()
		if err != nil {
			s.logger.Warn("dropping invalid sample", "err", err)
			continue
		}
		s.feed.Publish(sample)
	}
}
