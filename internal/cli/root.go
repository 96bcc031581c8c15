package cli

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/paystream-demos/advance-app/internal/client"
	"github.com/paystream-demos/advance-app/internal/config"
	"github.com/paystream-demos/advance-app/internal/logger"
	"github.com/paystream-demos/advance-app/internal/version"
)

var (
	cfg       *config.ClientEnvironment
	appLogger *slog.Logger
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:               "advancectl",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Salary advance API CLI",
	Long:              `CLI for the salary advance API: calculate advances, inspect amortization schedules and look up recorded loans`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewClientConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		apiClient = client.New(cfg.ServerURL,
			client.WithRetry(cfg.BackendRetryAttempts, cfg.BackendRetryDelay))
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(loanCmd)
}
