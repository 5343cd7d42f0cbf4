package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mesaYaBooking/internal/config"
	"mesaYaBooking/internal/platform/metrics"
	"mesaYaBooking/internal/server"
	"mesaYaBooking/internal/shared/logging"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP, websocket and Kafka services",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logFile, _, err := logging.Setup(logging.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			Directory: cfg.Logging.Directory,
		})
		if err != nil {
			return fmt.Errorf("logging setup: %w", err)
		}
		defer logFile.Close()
		slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
		slog.Info("restaurant configured", slog.String("name", cfg.Restaurant.Name), slog.Int("seats", cfg.Restaurant.TotalSeats), slog.String("storage", cfg.Storage.Driver))
		if !cfg.Security.StaffLoginEnabled() {
			slog.Warn("staff login disabled; set JWT_SECRET, STAFF_USERNAME and STAFF_PASSWORD_HASH to enable staff routes")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.Build(ctx, cfg, metrics.New())
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() { errCh <- app.Start(ctx) }()

		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received")
		case err := <-errCh:
			if err != nil {
				slog.Error("server stopped", slog.Any("error", err))
			}
			stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return errors.Join(err, app.Shutdown(shutdownCtx))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("server exited cleanly")
		return nil
	},
}

// loadConfig reads .env when present, then the process environment.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
