package main

import (
	"campuscook/cmd/config"
	migration "campuscook/cmd/database/migrate"
	"campuscook/internal/observability"
	"campuscook/internal/utils"
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	telemetry, err := observability.SetupProviders(ctx, observability.ExportConfig{
		Exporter:    cfg.TelemetryExporter(),
		Endpoint:    cfg.OTelOTLPEndpoint,
		ServiceName: cfg.OTelServiceName,
	})
	if err != nil {
		log.Fatalf("Error setting up telemetry: %v", err)
	}
	telemetry.Install()
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(flushCtx); err != nil {
			log.Errorf("Telemetry shutdown failed: %v", err)
		}
	}()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Error connecting database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error reading database handle: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Errorf("Error closing database: %v", err)
		}
	}()

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	if err := migration.SeedCategories(ctx, db); err != nil {
		log.Fatalf("Error seeding categories: %v", err)
	}

	app, err := config.NewApp(db, cfg)
	if err != nil {
		log.Fatalf("Error creating app: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Errorf("Error starting server: %v", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	log.Info("Server gracefully stopped")
}
