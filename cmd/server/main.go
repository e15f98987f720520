package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/SayMoreX/digame/internal/config"
	"github.com/SayMoreX/digame/internal/importer"
	"github.com/SayMoreX/digame/internal/logging"
	"github.com/SayMoreX/digame/internal/validate"
	"github.com/SayMoreX/digame/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"import_max_file_size", cfg.Import.MaxFileSize,
		"validation_service", cfg.Validation.URL != "",
	)

	mapping, err := loadMapping(cfg)
	if err != nil {
		slog.Error("failed to load import mapping", "error", err)
		os.Exit(1)
	}
	slog.Info("import mapping loaded", "columns", len(mapping))

	var validator *validate.Client
	if cfg.Validation.URL != "" {
		validator = validate.NewClient(cfg.Validation.URL, cfg.Validation.Timeout)
		slog.Info("validation service configured", "url", cfg.Validation.URL)
	}

	server := web.NewServer(cfg, mapping, validator)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadMapping returns the import mapping table: the file named by
// IMPORT_MAPPING_PATH when set, else the built-in LingMetaX table.
func loadMapping(cfg *config.Config) (importer.MappingTable, error) {
	if cfg.Import.MappingPath == "" {
		return importer.DefaultSessionMapping(), nil
	}
	data, err := os.ReadFile(cfg.Import.MappingPath)
	if err != nil {
		return nil, err
	}
	return importer.ParseMapping(data)
}
