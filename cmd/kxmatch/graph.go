// SPDX-License-Identifier: MIT
package main

import (
	"encoding/csv"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kxmatch/exchange"
)

func newGraphCmd(_ *app) *cobra.Command {
	var modified, drop bool

	cmd := &cobra.Command{
		Use:   "graph <matrix.csv>",
		Short: "Print the exchange graph as i,j,weight lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMatrix(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := exchange.Build(m, exchange.NewPolicy(
				exchange.WithModifiedAverage(modified),
				exchange.WithDropAsymmetricZeroEdges(drop),
			))
			if err != nil {
				return err
			}

			cw := csv.NewWriter(cmd.OutOrStdout())
			for _, e := range g.Edges() {
				if err = cw.Write([]string{
					m.LeftLabel(e.I),
					m.LeftLabel(e.J),
					strconv.FormatFloat(e.Weight, 'f', -1, 64),
				}); err != nil {
					return err
				}
			}
			cw.Flush()

			return cw.Error()
		},
	}
	cmd.Flags().BoolVar(&modified, "modified-average", false, "Penalize asymmetric pairs by MaxScore-|Δ|")
	cmd.Flags().BoolVar(&drop, "drop-zero-edges", false, "Omit pairs where either direction scores zero")

	return cmd
}
