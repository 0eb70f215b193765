package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/config"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/log"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	connector := db.NewConnector(cfg.Postgres, logger)
	defer connector.Close()

	dbClient, err := connector.Client(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	if !dbClient.TestConnection(ctx) {
		return errors.New("database is unreachable")
	}

	logger.InfoContext(ctx, "starting database migration")

	if err := dbClient.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	logger.InfoContext(ctx, "database migration completed successfully")

	return nil
}
