package main

import (
	"fmt"
	"strings"

	"survey-recon/internal/exporter"
	"survey-recon/internal/logger"
	"survey-recon/internal/report"
	"survey-recon/internal/ui"

	"github.com/spf13/cobra"
)

var (
	layoutPath string
	ropesPath  string
	title      string
	noProgress bool
)

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&layoutPath, "layout", "", "Layout file (defaults to the built-in layout)")
	cmd.Flags().StringVar(&ropesPath, "ropes", "", "Seaweed ropes CSV to include")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Hide progress bars")
}

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [workbook]",
		Short: "Summarise a survey workbook into the configured formats",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	addReportFlags(cmd)
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	printBanner()

	if len(args) == 1 {
		cfg.Input.Workbook = args[0]
	}
	if layoutPath != "" {
		cfg.Layout.File = layoutPath
	}
	if ropesPath != "" {
		cfg.Ropes.File = ropesPath
	}
	if title != "" {
		cfg.Output.Title = title
	}
	if noProgress {
		cfg.Output.Progress = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if verbose {
		cfg.Print()
	}

	exporters, unknown := exporter.GetExporters(cfg.Output.Formats)
	if len(unknown) > 0 {
		logger.Warn("Ignoring unknown formats: %s", strings.Join(unknown, ", "))
	}
	if len(exporters) == 0 {
		return fmt.Errorf("no usable output format in %v", cfg.Output.Formats)
	}

	pipeline := ui.NewPipelineWithOutput(ui.ReportPhases, cmd.OutOrStdout())
	if !cfg.Output.Progress {
		pipeline.Disable()
	}

	logger.Info("Reading %s", cfg.Input.Workbook)
	r, err := report.Generate(cfg, pipeline)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	// console output would tear through the progress bar, so it runs last
	var files, console []exporter.Exporter
	for _, e := range exporters {
		if e.Name() == "console" {
			console = append(console, e)
		} else {
			files = append(files, e)
		}
	}

	var exportErrors []error
	genBar := pipeline.NextPhase(len(files))
	for _, e := range files {
		genBar.Step(e.Name())
		if err := e.Export(r, cfg); err != nil {
			logger.Error("Export %s failed: %v", e.Name(), err)
			exportErrors = append(exportErrors, err)
			continue
		}
		logger.Debug("Export %s done", e.Name())
	}
	pipeline.Finish()
	pipeline.PrintSummary(fmt.Sprintf("\n%d of %d files written to %s", len(files)-len(exportErrors), len(files), cfg.Output.Dir))

	for _, e := range console {
		if err := e.Export(r, cfg); err != nil {
			logger.Error("Export %s failed: %v", e.Name(), err)
			exportErrors = append(exportErrors, err)
		}
	}

	if n := logger.CellWarnings(); n > 0 {
		logger.Warn("%d cell warnings, details in %s", n, logger.GetLogFilePath())
	}

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}

	if n := logger.Count(logger.LevelWarn); n > 0 {
		logger.Info("✅ Report complete, %d warnings logged. Check [%s] directory.", n, cfg.Output.Dir)
		return nil
	}
	logger.Info("✅ Report complete. Check [%s] directory.", cfg.Output.Dir)
	return nil
}
