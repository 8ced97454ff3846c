package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"survey-recon/internal/config"
	"survey-recon/internal/layout"
	"survey-recon/internal/model"
	"survey-recon/internal/report"
	"survey-recon/internal/sample"
	"survey-recon/internal/workbook"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	if err := sample.WriteWorkbook(path); err != nil {
		t.Fatal(err)
	}
	wb, err := workbook.Open(path, "")
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	r, err := report.Build(wb, layout.Default(), nil, "Quarterly summary")
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: "test_report",
		},
	}
}

func TestExcelExport(t *testing.T) {
	r := sampleReport(t)
	r.Warnings = append(r.Warnings, model.Warning{Table: "loan_size", Sheet: sample.VSLASheet, Cell: "D14", Message: "not a number"})
	cfg := testConfig(t)

	exporter := NewExcelExporter()
	if err := exporter.Export(r, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	outputFile := cfg.GetOutputPath("xlsx")
	if _, err := os.Stat(outputFile); os.IsNotExist(err) {
		t.Fatal("Output file was not created")
	}

	f, err := excelize.OpenFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	want := []string{"Overview", "Savings per member", "Loan size", "Members per group", "Indicators", "Warnings"}
	if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}

	raw := excelize.Options{RawCellValue: true}
	cells := []struct {
		sheet, cell, want string
	}{
		{"Overview", "A1", "Quarterly summary"},
		{"Savings per member", "A1", "Savings per member (TZS)"},
		{"Savings per member", "B3", "Q1 2023"},
		{"Savings per member", "G3", "Q1 2023 share"},
		{"Savings per member", "A4", "0 - 10,000"},
		{"Savings per member", "B4", "14"},
		{"Savings per member", "A9", "Total"},
		{"Savings per member", "B9", "51"},
		{"Savings per member", "A10", "Change"},
		{"Savings per member", "B10", "-"},
		{"Savings per member", "C10", "1"},
		{"Indicators", "A1", "VSLA indicators"},
		{"Indicators", "A7", "Loans outstanding (TZS)"},
		{"Indicators", "D7", "-"},
		{"Warnings", "C2", "D14"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue(c.sheet, c.cell, raw)
		if err != nil {
			t.Errorf("%s!%s: %v", c.sheet, c.cell, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestExcelExporter_NoDefaultSheet(t *testing.T) {
	r := report.FromDataset(&model.Dataset{Source: "empty.xlsx"}, "custom", nil, "Empty")
	cfg := testConfig(t)

	if err := NewExcelExporter().Export(r, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(cfg.GetOutputPath("xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Overview"}, f.GetSheetList()); diff != "" {
		t.Errorf("an empty report should only carry the overview (-want +got):\n%s", diff)
	}
}

func TestExcelExportRopesSheet(t *testing.T) {
	r := sampleReport(t)
	r.Ropes = &model.RopesSummary{
		Source: "ropes.csv", Members: 2, TotalRopes: 30, Mean: 15,
		Distribution: []model.RopesBin{{Label: "11-25", Members: 2, Share: 100}},
	}
	cfg := testConfig(t)
	if err := NewExcelExporter().Export(r, cfg); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(cfg.GetOutputPath("xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("Ropes", "A1")
	if got != "Seaweed ropes" {
		t.Errorf("Ropes!A1 = %q", got)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"Overview": true}
	tests := []struct {
		title, want string
	}{
		{"Savings per member", "Savings per member"},
		{"Savings per member", "Savings per member (2)"},
		{"Loans: size / value [TZS]", "Loans size value TZS"},
		{"Overview", "Overview (2)"},
		{"", "Table"},
		{"A very long title that goes well past the limit", "A very long title that goes wel"},
	}
	for _, tt := range tests {
		if got := uniqueSheetName(tt.title, used); got != tt.want {
			t.Errorf("uniqueSheetName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestGetExporters(t *testing.T) {
	exporters, unknown := GetExporters([]string{"Excel", "xlsx", " json ", "dashboard", "pdf", "console", "csv", ""})

	var names []string
	for _, e := range exporters {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"excel", "json", "pdf", "console"}, names); diff != "" {
		t.Errorf("exporters mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"csv"}, unknown); diff != "" {
		t.Errorf("unknown mismatch (-want +got):\n%s", diff)
	}
}
