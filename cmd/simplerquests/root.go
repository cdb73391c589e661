package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"simplerquests/internal/config"
)

type rootFlags struct {
	ConfigFile string
	Verbose    bool
}

type app struct {
	flags  rootFlags
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "simplerquests",
		Short:         "Quest tracker for tabletop sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags.ConfigFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg

			zc := zap.NewProductionConfig()
			if a.flags.Verbose {
				zc = zap.NewDevelopmentConfig()
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.flags.ConfigFile, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newServeCmd(a),
		newParseCmd(),
		newRenderCmd(),
	)
	return root
}
