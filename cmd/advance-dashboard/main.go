package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paystream-demos/advance-app/internal/config"
	"github.com/paystream-demos/advance-app/internal/dashboard"
	"github.com/paystream-demos/advance-app/internal/logger"
	"github.com/paystream-demos/advance-app/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "advance-dashboard",
		Short: "Salary advance dashboard",
		Long:  `advance-dashboard serves the web UI for the salary advance API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewDashboardConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("BACKEND_URL", cfg.BackendURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := dashboard.NewServer(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to create dashboard", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("dashboard shutdown complete")
	return nil
}
