package main

import (
	"fmt"
	"os"
	"path/filepath"

	"survey-recon/internal/logger"
	"survey-recon/internal/sample"

	"github.com/spf13/cobra"
)

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [dir]",
		Short: "Write a sample workbook and ropes CSV that match the built-in layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Dir(cfg.Input.Workbook)
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			wbPath := filepath.Join(dir, "survey.xlsx")
			if err := sample.WriteWorkbook(wbPath); err != nil {
				return err
			}
			csvPath := filepath.Join(dir, "ropes.csv")
			if err := sample.WriteRopesCSV(csvPath); err != nil {
				return err
			}

			logger.Info("Wrote %s and %s", wbPath, csvPath)
			return nil
		},
	}
}
