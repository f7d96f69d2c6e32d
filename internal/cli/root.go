package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"calcHistory/internal/app"
)

// RootOptions — глобальные флаги и приложение, собранное из конфига перед запуском команды.
type RootOptions struct {
	LogLevel string
	app      *app.App
}

// NewRootCommand создаёт корневую команду calculator. Без подкоманды запускается serve.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "calculator",
		Short:         "Calculator API with persistent history",
		Long:          "HTTP and gRPC calculator that stores every calculation and exports the history as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadCfg()
			if err != nil {
				return err
			}
			if opts.LogLevel != "" {
				cfg.Log.Level = opts.LogLevel
			}
			opts.app = app.New(cfg)
			slog.SetDefault(opts.app.Logger())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides CALCULATOR_LOG_LEVEL")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewAnalyticsCommand(opts))

	return cmd
}

// signalContext отменяется по SIGINT/SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Execute запускает CLI и возвращает код выхода процесса.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("calculator failed", "error", err)
		return 1
	}
	return 0
}
