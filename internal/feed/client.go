package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// redialDelay is how long the client waits before reconnecting after the
// feed stream drops.
const redialDelay = 2 * time.Second

// Client subscribes to a remote feed server's WebSocket stream and
// republishes received samples into a local feed, so viewers can run on a
// different machine than the ingest server.
type Client struct {
	url    string
	feed   *Feed
	logger *log.Logger
}

// NewClient creates a subscriber for the given ws:// URL publishing into f.
func NewClient(url string, f *Feed, logger *log.Logger) *Client {
	return &Client{url: url, feed: f, logger: logger}
}

// Run connects and consumes samples until the context is cancelled,
// redialing on any stream failure. The visualization keeps running on the
// last published sample while the stream is down.
func (c *Client) Run(ctx context.Context) {
	for {
		if err := c.consume(ctx); err != nil && ctx.Err() == nil {
			c.logger.Warn("feed stream lost, redialing", "url", c.url, "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(redialDelay):
		}
	}
}

func (c *Client) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()
	c.logger.Info("subscribed to feed", "url", c.url)

	// Unblock ReadJSON when the context is cancelled
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		var payload samplePayload
		if err := conn.ReadJSON(&payload); err != nil {
			return err
		}
		sample, err := payload.toSample()
		if err != nil {
			c.logger.Warn("dropping invalid sample", "err", err)
			continue
		}
		c.feed.Publish(sample)
	}
}
