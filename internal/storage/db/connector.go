package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/config"
)

// Connector owns the process-wide Client. The pool is created on the first
// call to Client and shared by every later caller.
type Connector struct {
	cfg    config.Postgres
	logger *slog.Logger

	once   sync.Once
	mu     sync.Mutex
	client *Client
	err    error
}

// NewConnector returns a connector that has not dialed the database yet.
func NewConnector(cfg config.Postgres, logger *slog.Logger) *Connector {
	return &Connector{cfg: cfg, logger: logger}
}

// Client returns the shared client, creating the pool on first use.
func (c *Connector) Client(ctx context.Context) (*Client, error) {
	c.once.Do(func() {
		pool, err := NewPgxPool(ctx, c.cfg)
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.err = fmt.Errorf("create pgx pool: %w", err)
			return
		}
		c.client = NewClient(pool, c.logger)
	})

	return c.client, c.err
}

// Close drains and closes the pool if it was ever created.
func (c *Connector) Close() {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client != nil {
		client.Close()
	}
}
