// Package dashboard writes the JSON document the web dashboard loads.
package dashboard

import (
	"encoding/json"
	"fmt"
	"os"

	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/model"
)

// SchemaVersion changes whenever a key is renamed or removed
const SchemaVersion = 1

// Document is the top-level JSON object
type Document struct {
	SchemaVersion int                      `json:"schema_version"`
	Title         string                   `json:"title"`
	GeneratedAt   string                   `json:"generated_at"`
	Date          string                   `json:"date"`
	Source        string                   `json:"source"`
	Layout        string                   `json:"layout"`
	Highlights    []string                 `json:"highlights"`
	Bands         []model.BandSummary      `json:"band_tables"`
	Indicators    []model.IndicatorSummary `json:"indicators"`
	Ropes         *model.RopesSummary      `json:"ropes"`
	Warnings      []model.Warning          `json:"warnings"`
}

// DashboardExporter writes <file_name>.json
type DashboardExporter struct {
	// Stateless
}

func NewDashboardExporter() *DashboardExporter {
	return &DashboardExporter{}
}

func (b *DashboardExporter) Name() string {
	return "json"
}

// Build converts a report into the dashboard document. Slices are never
// nil so the dashboard can iterate without null checks.
func Build(r *model.Report) Document {
	doc := Document{
		SchemaVersion: SchemaVersion,
		Title:         r.Title,
		GeneratedAt:   r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Date:          r.Date(),
		Source:        r.Source,
		Layout:        r.Layout,
		Highlights:    common.Highlights(r),
		Bands:         r.Bands,
		Indicators:    r.Indicators,
		Ropes:         r.Ropes,
		Warnings:      r.Warnings,
	}
	if doc.Highlights == nil {
		doc.Highlights = []string{}
	}
	if doc.Bands == nil {
		doc.Bands = []model.BandSummary{}
	}
	if doc.Indicators == nil {
		doc.Indicators = []model.IndicatorSummary{}
	}
	if doc.Warnings == nil {
		doc.Warnings = []model.Warning{}
	}
	return doc
}

func (b *DashboardExporter) Export(r *model.Report, cfg *config.Config) error {
	outputFile := cfg.GetOutputPath("json")

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputFile, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Build(r))
}
