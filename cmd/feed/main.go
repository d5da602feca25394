package main

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mvasko/moodmist/internal/config"
	"github.com/mvasko/moodmist/internal/feed"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var indexPage []byte

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "feed"})

	host := config.GetEnv("FEED_HOST", defaultHost)
	port := config.GetEnv("FEED_PORT", defaultPort)
	addr := net.JoinHostPort(host, port)

	f := feed.New()
	server := feed.NewServer(addr, f, logger, indexPage)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting feed server", "addr", addr)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}
