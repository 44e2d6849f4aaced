// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/kxmatch/engine"
	"github.com/katalvlaran/kxmatch/table"
)

type solveOpts struct {
	model           string
	modifiedAverage bool
	dropZeroEdges   bool
	maxCardinality  bool
	out             string
	format          string
}

func newSolveCmd(a *app) *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve <matrix.csv>",
		Short: "Solve one matching model and write the result",
		Long: `Reads the matrix file ("-" for stdin), solves the selected model and writes
one "<left>,<right_or_NONE>,<score>" line per left item (or JSON / text).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, a, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.model, "model", "", "Matching model: assignment or exchange (default from config)")
	f.BoolVar(&opts.modifiedAverage, "modified-average", false, "Exchange: penalize asymmetric pairs by MaxScore-|Δ|")
	f.BoolVar(&opts.dropZeroEdges, "drop-zero-edges", false, "Exchange: omit pairs where either direction scores zero")
	f.BoolVar(&opts.maxCardinality, "max-cardinality", true, "Exchange: maximize the number of pairs first")
	f.StringVarP(&opts.out, "out", "o", "", "Write the result to this file instead of stdout")
	f.StringVar(&opts.format, "format", "", "Output format: csv, json or text (default from config)")

	return cmd
}

// engineConfig merges the config file with the flags the user set.
func (o solveOpts) engineConfig(cmd *cobra.Command, a *app) (engine.Config, error) {
	ec, err := a.cfg.EngineConfig()
	if err != nil {
		return engine.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("model") {
		if ec.Model, err = engine.ParseModel(o.model); err != nil {
			return engine.Config{}, err
		}
	}
	if flags.Changed("modified-average") {
		ec.UseModifiedAverage = o.modifiedAverage
	}
	if flags.Changed("drop-zero-edges") {
		ec.DropAsymmetricZeroEdges = o.dropZeroEdges
	}
	if flags.Changed("max-cardinality") {
		ec.MaxCardinality = o.maxCardinality
	}

	return ec, nil
}

func runSolve(cmd *cobra.Command, a *app, path string, opts solveOpts) error {
	ec, err := opts.engineConfig(cmd, a)
	if err != nil {
		return err
	}
	format := firstNonEmpty(opts.format, a.cfg.Output.Format)

	m, err := readMatrix(cmd, path)
	if err != nil {
		return err
	}

	ctx, cancel := a.context(cmd.Context())
	defer cancel()
	out, err := a.eng.Solve(ctx, m, ec)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
		a.log.Debug("writing result", zap.String("path", opts.out), zap.String("format", format))
	}

	return table.Write(w, format, out.Result)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}

	return ""
}
