package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row

	// WithTx executes a function in a new transaction.
	WithTx(ctx context.Context, txFunc func(DB) error) error
}

type HealthChecker interface {
	IsHealthy(ctx context.Context) (bool, error)
}

var (
	_ DB            = (*Client)(nil)
	_ HealthChecker = (*Client)(nil)
)

type Client struct {
	*pgxpool.Pool

	logger    *slog.Logger
	closeOnce sync.Once
}

// NewClient creates a new db client.
func NewClient(pool *pgxpool.Pool, logger *slog.Logger) *Client {
	return &Client{
		Pool:   pool,
		logger: logger.With(slog.String("component", "db")),
	}
}

func (p *Client) WithTx(ctx context.Context, txFunc func(DB) error) (err error) {
	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rbErr := tx.Rollback(ctx)
			if !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	txDB := &txWrapper{Tx: tx}
	if err = txFunc(txDB); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("commit transaction: %w", err)
	}

	return err
}

func (p *Client) IsHealthy(ctx context.Context) (bool, error) {
	err := p.Ping(ctx)
	if err != nil {
		return false, fmt.Errorf("ping database: %w", err)
	}
	return true, nil
}

// TestConnection performs a SELECT NOW() round trip. It is meant as a
// startup gate, not for the request path.
func (p *Client) TestConnection(ctx context.Context) bool {
	var now time.Time
	if err := p.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		p.logger.ErrorContext(ctx, "database connection failed", slog.Any("error", err))
		return false
	}

	p.logger.InfoContext(ctx, "database connection successful", slog.Time("db_time", now))
	return true
}

// Close waits for every acquired connection to be released, then closes the
// pool. Calling it more than once is a no-op.
func (p *Client) Close() {
	p.closeOnce.Do(func() {
		p.logger.Info("draining database pool",
			slog.Int("acquired_conns", int(p.Stat().AcquiredConns())))
		p.Pool.Close()
		p.logger.Info("database connections closed")
	})
}

type txWrapper struct {
	pgx.Tx
}

func (t *txWrapper) WithTx(_ context.Context, txFunc func(DB) error) error {
	return txFunc(t)
}
