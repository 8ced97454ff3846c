package main

import (
	"fmt"

	"survey-recon/internal/exporter/common"
	"survey-recon/internal/exporter/console"
	"survey-recon/internal/ropes"

	"github.com/spf13/cobra"
)

func newRopesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ropes [csv]",
		Short: "Summarise a member-level seaweed ropes CSV",
		Long: `Reads one row per member with at least a ropes column and prints totals,
per-group and per-gender figures and the ropes-per-member distribution.

Column names are matched loosely ("No. of ropes", "ropes_count", ...) unless
ropes.columns in the configuration names them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.Ropes.File
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no ropes CSV given and ropes.file is not set")
			}

			rs, err := ropes.Run(path, cfg.Ropes.Encoding, cfg.Ropes.Columns, cfg.Ropes.Edges)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, g := range common.RopesGrids(rs) {
				fmt.Fprint(out, console.Render(g))
			}
			return nil
		},
	}
}
