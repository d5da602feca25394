package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/mvasko/moodmist/internal/config"
	"github.com/mvasko/moodmist/internal/engine"
	"github.com/mvasko/moodmist/internal/feed"
	"github.com/mvasko/moodmist/internal/viewer"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultFeedAddr    = "0.0.0.0:8080"
	defaultHostKeyPath = "/app/keys/host_key"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "moodmist-ssh"})

// sharedFeed is the emotion feed every SSH viewer renders. Each session runs
// its own engine; only the feed is shared.
var sharedFeed = feed.New()

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	feedAddr := config.GetEnv("FEED_ADDR", defaultFeedAddr)

	// The ingest server runs in-process so the host application has a single
	// endpoint to publish into.
	ingest := feed.NewServer(feedAddr, sharedFeed, logger, nil)
	go func() {
		logger.Info("starting feed ingest", "addr", feedAddr)
		if err := ingest.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("feed ingest error", "err", err)
		}
	}()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			viewerMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for frame output
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ingest.Shutdown(ctx); err != nil {
		logger.Error("feed ingest shutdown error", "err", err)
	}
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Fatal("shutdown error", "err", err)
	}
}

// viewerMiddleware runs a visualization session for each SSH connection.
func viewerMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("viewer connected",
			"user", sess.User(), "term", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		session, err := viewer.NewSession(sharedFeed, reader, sess, viewer.Options{
			TermSizeFunc: sizeTracker.getSize,
			FPS:          config.GetEnvInt("MOODMIST_FPS", engine.DefaultFPS),
			HUD:          true,
		})
		if err != nil {
			logger.Error("session setup failed", "user", sess.User(), "err", err)
			return
		}

		if err := session.Run(sess.Context()); err != nil {
			logger.Error("session error", "user", sess.User(), "err", err)
		}

		logger.Info("viewer disconnected", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}
