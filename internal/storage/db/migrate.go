package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(fmt.Errorf("sub migrations fs: %w", err))
	}
	return sub
}

// EnsureSchema applies pending migrations. The DDL is written with IF NOT
// EXISTS so it also succeeds against tables created outside goose; calling
// it on every start is safe.
func (p *Client) EnsureSchema(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(p.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, Migrations())
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, res := range results {
		p.logger.InfoContext(ctx, "applied migration",
			slog.String("source", res.Source.Path),
			slog.Duration("duration", res.Duration))
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	p.logger.InfoContext(ctx, "database schema is up to date", slog.Int64("version", version))

	return nil
}
