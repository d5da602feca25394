package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/mvasko/moodmist/internal/config"
	"github.com/mvasko/moodmist/internal/engine"
	"github.com/mvasko/moodmist/internal/feed"
	"github.com/mvasko/moodmist/internal/viewer"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "moodmist"})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// With a feed URL the viewer follows the host application's emotion
	// stream; without one it plays the built-in demo scenes.
	var src engine.Source
	if url := config.GetEnv("MOODMIST_FEED_URL", ""); url != "" {
		f := feed.New()
		go feed.NewClient(url, f, logger).Run(ctx)
		src = f
	} else {
		src = feed.NewDemo()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	session, err := viewer.NewSession(src, reader, os.Stdout, viewer.Options{
		FPS: config.GetEnvInt("MOODMIST_FPS", engine.DefaultFPS),
		HUD: true,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("failed to start viewer", "err", err)
	}

	if err := session.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("viewer error", "err", err)
	}
}
