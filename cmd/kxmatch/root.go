// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/kxmatch/config"
	"github.com/katalvlaran/kxmatch/engine"
	"github.com/katalvlaran/kxmatch/internal/logging"
	"github.com/katalvlaran/kxmatch/matrix"
	"github.com/katalvlaran/kxmatch/table"
)

// app is the state shared by all subcommands once the root has run.
type app struct {
	configPath string
	logLevel   string
	dev        bool
	timeout    time.Duration

	cfg *config.Config
	log *zap.Logger
	eng *engine.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "kxmatch",
		Short: "Optimal matching over donor/patient compatibility matrices",
		Long: `kxmatch reads a square compatibility matrix and computes either a global
assignment (every donor to a distinct patient) or pairwise exchanges between
the original donor/patient pairs, maximizing the total compatibility score.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "kxmatch.yaml", "Path to the YAML config file (missing file = defaults)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
	pf.BoolVar(&a.dev, "dev", false, "Human-readable development logging")
	pf.DurationVar(&a.timeout, "timeout", 0, "Deadline for one run, e.g. 10s (overrides config; 0 keeps config)")

	rootCmd.AddCommand(
		newSolveCmd(a),
		newCompareCmd(a),
		newGraphCmd(a),
	)

	return rootCmd
}

// setup loads the config, applies persistent flag overrides, and builds the
// logger and engine.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("dev") {
		cfg.Log.Development = a.dev
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.eng = cfg, log, engine.New(log)

	return nil
}

// context returns ctx bounded by the configured timeout.
func (a *app) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}

	return context.WithCancel(ctx)
}

// readMatrix loads a matrix file; "-" reads stdin.
func readMatrix(cmd *cobra.Command, path string) (*matrix.Compatibility, error) {
	if path == "-" {
		return table.ReadMatrix(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening matrix: %w", err)
	}
	defer f.Close()

	m, err := table.ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
