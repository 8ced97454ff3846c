package html

import (
	"os"
	"strings"
	"testing"
	"time"

	"survey-recon/internal/config"
	"survey-recon/internal/model"
)

func testReport() *model.Report {
	return &model.Report{
		Title:       "Quarterly <summary>",
		GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Source:      "survey.xlsx",
		Layout:      "default",
		Bands: []model.BandSummary{{
			Name:     "group_size",
			Title:    "Members per group",
			Quarters: []string{"Q1"},
			Bands: []model.BandRow{
				{Label: "< 15", Counts: []model.Value{model.Num(6)}, Shares: []float64{100}},
			},
			Totals:       []float64{6},
			Dominant:     []string{"< 15"},
			Change:       []model.Value{model.Missing()},
			ChangePct:    []model.Value{model.Missing()},
			MeanEstimate: []model.Value{model.Num(7.5)},
		}},
		Warnings: []model.Warning{{Table: "group_size", Sheet: "VSLA", Cell: "C21", Message: "not a number"}},
	}
}

func TestBuildData(t *testing.T) {
	data, err := BuildData(testReport())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Sections) != 2 {
		t.Fatalf("sections = %d, want band and warnings", len(data.Sections))
	}

	band := data.Sections[0]
	if !strings.HasPrefix(string(band.Chart), "data:image/png;base64,") {
		t.Errorf("band chart = %.40q", band.Chart)
	}
	if !band.NumericCols[1] || band.NumericCols[0] {
		t.Errorf("numeric columns = %v", band.NumericCols)
	}
	if !data.Sections[1].Warning {
		t.Error("last section should be flagged as warnings")
	}
}

func TestHTMLExport(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}
	if err := NewHTMLExporter().Export(testReport(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(cfg.GetOutputPath("html"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(content)

	for _, want := range []string{
		"Quarterly &lt;summary&gt;",
		"<h2>Members per group</h2>",
		`<td class="num">6 (100.0%)</td>`,
		`src="data:image/png;base64,`,
		"not a number",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
