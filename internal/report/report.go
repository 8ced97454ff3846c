// Package report ties reading, extraction and analysis into the single
// Report value every exporter renders.
package report

import (
	"fmt"
	"strings"
	"time"

	"survey-recon/internal/analysis"
	"survey-recon/internal/config"
	"survey-recon/internal/extract"
	"survey-recon/internal/inspect"
	"survey-recon/internal/layout"
	"survey-recon/internal/logger"
	"survey-recon/internal/model"
	"survey-recon/internal/ropes"
	"survey-recon/internal/ui"
	"survey-recon/internal/workbook"
)

// now is replaced in tests
var now = time.Now

// Build extracts and analyses every layout table. A nil ropes summary
// leaves the ropes section out of the report.
func Build(wb *workbook.Workbook, l *layout.Layout, rs *model.RopesSummary, title string) (*model.Report, error) {
	ds, err := extract.Extract(wb, l, nil)
	if err != nil {
		return nil, err
	}
	return FromDataset(ds, l.Name, rs, title), nil
}

// FromDataset analyses an already extracted dataset
func FromDataset(ds *model.Dataset, layoutName string, rs *model.RopesSummary, title string) *model.Report {
	bands, indicators := analysis.Summarize(ds)

	r := &model.Report{
		Title:       title,
		GeneratedAt: now(),
		Source:      ds.Source,
		Layout:      layoutName,
		Bands:       bands,
		Indicators:  indicators,
		Ropes:       rs,
		Warnings:    ds.Warnings,
	}
	if r.Bands == nil {
		r.Bands = []model.BandSummary{}
	}
	if r.Indicators == nil {
		r.Indicators = []model.IndicatorSummary{}
	}
	if r.Warnings == nil {
		r.Warnings = []model.Warning{}
	}
	return r
}

// LoadLayout returns the configured layout, or the built-in one
func LoadLayout(cfg *config.Config) (*layout.Layout, error) {
	if cfg.Layout.File == "" {
		return layout.Default(), nil
	}
	return layout.Load(cfg.Layout.File)
}

// Generate runs a full report from the configuration, advancing the
// pipeline through its reading, extracting and analyzing phases
func Generate(cfg *config.Config, pipeline *ui.Pipeline) (*model.Report, error) {
	bar := pipeline.NextPhase(2)

	l, err := LoadLayout(cfg)
	if err != nil {
		return nil, err
	}
	wb, err := workbook.Open(cfg.Input.Workbook, cfg.Input.Encoding)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	if missing := inspect.MissingSheets(wb, l); len(missing) > 0 {
		return nil, fmt.Errorf("%s has no sheet %q needed by layout %s",
			wb.Name(), strings.Join(missing, `", "`), l.Name)
	}
	bar.Step(wb.Name())

	var rs *model.RopesSummary
	if cfg.Ropes.File != "" {
		rs, err = ropes.Run(cfg.Ropes.File, cfg.Ropes.Encoding, cfg.Ropes.Columns, cfg.Ropes.Edges)
		if err != nil {
			return nil, fmt.Errorf("ropes: %w", err)
		}
		logger.Debug("Ropes: %d members, %.0f ropes", rs.Members, rs.TotalRopes)
	}
	bar.Step("ropes")

	bar = pipeline.NextPhase(len(l.Tables))
	ds, err := extract.Extract(wb, l, bar.Step)
	if err != nil {
		return nil, err
	}

	bar = pipeline.NextPhase(1)
	r := FromDataset(ds, l.Name, rs, cfg.Output.Title)
	bar.Step("summaries")

	logger.Info("Read %d tables from %s (%d warnings)", len(ds.Tables), wb.Name(), len(ds.Warnings))
	return r, nil
}
