// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kxmatch/engine"
)

// compareConfigs lists the assignment model and the four exchange policies.
func compareConfigs(maxCard bool) []engine.Config {
	cfgs := []engine.Config{{Model: engine.Assignment}}
	for _, modified := range []bool{false, true} {
		for _, drop := range []bool{false, true} {
			cfgs = append(cfgs, engine.Config{
				Model:                   engine.Exchange,
				UseModifiedAverage:      modified,
				DropAsymmetricZeroEdges: drop,
				MaxCardinality:          maxCard,
			})
		}
	}

	return cfgs
}

func newCompareCmd(a *app) *cobra.Command {
	var maxCard bool

	cmd := &cobra.Command{
		Use:   "compare <matrix.csv>",
		Short: "Solve every model/policy combination side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.context(cmd.Context())
			defer cancel()

			outs, err := a.eng.SolveAll(ctx, m, compareConfigs(maxCard))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CONFIG\tEDGES\tMATCHED\tUNMATCHED\tTOTAL")
			for _, o := range outs {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n",
					o.Config, o.Edges, o.Result.Matched(), len(o.Result.Unmatched()), o.Result.Total)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&maxCard, "max-cardinality", true, "Exchange: maximize the number of pairs first")

	return cmd
}
