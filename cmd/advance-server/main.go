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
	"github.com/paystream-demos/advance-app/internal/logger"
	"github.com/paystream-demos/advance-app/internal/server"
	"github.com/paystream-demos/advance-app/internal/store"
	"github.com/paystream-demos/advance-app/internal/version"
)

//	@title			advance-server
//	@description	advance-server calculates employee salary advances and loan repayment schedules
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Error responses carry a JSON body of the form `{"detail": "..."}`.
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@license.name	MIT

//	@servers.url			http://localhost:8000
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Advance
//	@tag.description	Salary advance and loan endpoints

//	@tag.name			Common
//	@tag.description	Server endpoints (health, readiness, version)

func main() {
	cmd := &cobra.Command{
		Use:   "advance-server",
		Short: "Salary advance API server",
		Long:  `advance-server exposes the salary advance and loan calculation API used by the dashboard and advancectl`,
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
	cfg, err := config.NewServerConfig()
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
		slog.String("STORE", cfg.Store),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var loans store.LoanStore
	switch cfg.Store {
	case "postgres":
		dbCtx, dbCancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
		defer dbCancel()

		pgStore, err := store.NewPostgresStore(dbCtx, cfg, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		loans = pgStore
	default:
		loans = store.NewMemoryStore()
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	srv := server.NewServer(loans, cfg, appLogger)
	defer srv.StoreShutdown()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
