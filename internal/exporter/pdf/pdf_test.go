package pdf

import (
	"bytes"
	"os"
	"testing"
	"time"

	"survey-recon/internal/config"
	"survey-recon/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Title:       "Quarterly summary",
		GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Source:      "survey.xlsx",
		Layout:      "default",
		Bands: []model.BandSummary{{
			Name:     "group_size",
			Title:    "Members per group",
			Quarters: []string{"Q1", "Q2"},
			Bands: []model.BandRow{
				{Label: "< 15", Counts: []model.Value{model.Num(6), model.Num(5)}, Shares: []float64{60, 50}},
				{Label: "15 - 19", Counts: []model.Value{model.Num(4), model.Num(5)}, Shares: []float64{40, 50}},
			},
			Totals:       []float64{10, 10},
			Dominant:     []string{"< 15", "< 15"},
			Change:       []model.Value{model.Missing(), model.Num(0)},
			ChangePct:    []model.Value{model.Missing(), model.Num(0)},
			MeanEstimate: []model.Value{model.Num(10.9), model.Num(12.25)},
		}},
		Ropes: &model.RopesSummary{
			Members: 2, TotalRopes: 30, Mean: 15,
			Distribution: []model.RopesBin{{Label: "11-25", Members: 2, Share: 100}},
		},
		Warnings: []model.Warning{{Table: "group_size", Sheet: "VSLA", Cell: "C22", Message: "not a number"}},
	}
}

func TestPDFExport(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}

	e := &PDFExporter{compress: false}
	if err := e.Export(testReport(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(cfg.GetOutputPath("pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", content[:8])
	}
	for _, want := range []string{"Members per group", "Seaweed ropes", "Warnings", "Page 1 of"} {
		if !bytes.Contains(content, []byte(want)) {
			t.Errorf("PDF text missing %q", want)
		}
	}
	if !bytes.Contains(content, []byte("/Subtype /Image")) {
		t.Error("expected the band chart to be embedded")
	}
}

func TestColumnWidths(t *testing.T) {
	d := &document{width: 190}

	widths := d.columnWidths(5)
	if widths[0] != 70 || widths[1] != 30 {
		t.Errorf("widths = %v", widths)
	}

	widths = d.columnWidths(7)
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	if sum != 190 {
		t.Errorf("widths sum to %v, want 190", sum)
	}
	if got := d.columnWidths(1); got[0] != 190 {
		t.Errorf("single column = %v", got)
	}
}
