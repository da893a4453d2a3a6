package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/config"
	logpkg "github.com/kailas-cloud/stylebot/internal/logger"
)

// app carries what every subcommand needs after bootstrap.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "stylebot",
		Short:         "Fashion shopping assistant backed by vector search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if a.env == "" {
				a.env = config.GetEnv()
			}
			cfg, err := config.Load(a.env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", "", "config environment (default: $ENV or local)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newServeCmd(a),
		newIngestCmd(a),
		newWarmUpCmd(a),
		newVersionCmd(),
	)
	return root
}
