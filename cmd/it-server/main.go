package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/config"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/http"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/log"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/repository"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/service"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/telemetry"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/cmdutil"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
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
		HTTP     config.HTTP
		Auth     config.Auth
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	connector := db.NewConnector(cfg.Postgres, logger)
	defer connector.Close()

	dbClient, err := connector.Client(ctx)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	startCtx, cancelStart := context.WithTimeout(ctx, 30*time.Second)
	defer cancelStart()

	// The API still starts without a database; readiness reports it.
	if dbClient.TestConnection(startCtx) {
		if err := dbClient.EnsureSchema(startCtx); err != nil {
			return fmt.Errorf("error ensuring database schema: %w", err)
		}
	} else {
		logger.WarnContext(ctx, "starting without a reachable database")
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	userRepository := repository.NewUserRepository(dbClient)
	inventoryItemRepository := repository.NewInventoryItemRepository(dbClient)

	authService := service.NewAuthService(userRepository, hasher, tokens, v)
	inventoryService := service.NewInventoryService(inventoryItemRepository, v)

	svc := http.New(cfg.HTTP, logger, authService, inventoryService, tokens, dbClient)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}
	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
