package report

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"survey-recon/internal/config"
	"survey-recon/internal/layout"
	"survey-recon/internal/model"
	"survey-recon/internal/sample"
	"survey-recon/internal/ui"
	"survey-recon/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	now = func() time.Time { return at }
	t.Cleanup(func() { now = time.Now })
	return at
}

func TestBuild(t *testing.T) {
	at := fixedClock(t)
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, sample.WriteWorkbook(path))

	wb, err := workbook.Open(path, "")
	require.NoError(t, err)
	defer wb.Close()

	r, err := Build(wb, layout.Default(), nil, "Quarterly summary")
	require.NoError(t, err)

	assert.Equal(t, "Quarterly summary", r.Title)
	assert.Equal(t, at, r.GeneratedAt)
	assert.Equal(t, "2024-01-15", r.Date())
	assert.Equal(t, "survey.xlsx", r.Source)
	assert.Equal(t, "vsla-forestry-quarterly", r.Layout)
	assert.Nil(t, r.Ropes)
	assert.NotNil(t, r.Warnings)
	assert.Empty(t, r.Warnings)

	require.Len(t, r.Bands, 3)
	savings := r.Bands[0]
	assert.Equal(t, []float64{51, 52, 52, 52}, savings.Totals)
	assert.Equal(t, "10,001 - 25,000", savings.Dominant[0])
	assert.Equal(t, "25,001 - 50,000", savings.Dominant[3])

	require.Len(t, r.Indicators, 2)
	groups := r.Indicators[0].Rows[0]
	assert.Equal(t, "Number of groups", groups.Label)
	assert.Equal(t, model.Num(1), groups.Change)

	assert.Equal(t, "Total savings (TZS)", r.Indicators[0].Rows[3].Label)
	loans := r.Indicators[0].Rows[4]
	assert.Equal(t, 3, loans.Reported)
}

func TestFromDatasetEmpty(t *testing.T) {
	r := FromDataset(&model.Dataset{Source: "empty.csv"}, "custom", nil, "")
	assert.NotNil(t, r.Bands)
	assert.NotNil(t, r.Indicators)
	assert.NotNil(t, r.Warnings)
}

func TestGenerate(t *testing.T) {
	fixedClock(t)
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "survey.xlsx")
	csvPath := filepath.Join(dir, "ropes.csv")
	require.NoError(t, sample.WriteWorkbook(wbPath))
	require.NoError(t, sample.WriteRopesCSV(csvPath))

	cfg := &config.Config{
		Input:  config.InputConfig{Workbook: wbPath},
		Ropes:  config.RopesConfig{File: csvPath},
		Output: config.OutputConfig{Dir: dir, FileName: "report", Title: "Test"},
	}

	pipeline := ui.NewPipelineWithOutput(ui.ReportPhases, io.Discard)
	r, err := Generate(cfg, pipeline)
	require.NoError(t, err)
	assert.Equal(t, ui.PhaseAnalyzing, pipeline.Current())

	require.NotNil(t, r.Ropes)
	assert.Equal(t, 230.0, r.Ropes.TotalRopes)
	assert.Equal(t, 2, r.Ropes.Skipped)
	assert.Len(t, r.Bands, 3)
}

func TestGenerateCustomLayout(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, sample.WriteWorkbook(wbPath))

	layoutPath := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(layoutPath, []byte(`name: forestry-only
tables:
  - name: forestry
    kind: indicator
    sheet: Forestry
    header_row: 3
    label_column: B
    first_column: C
    last_column: F
    first_row: 4
    last_row: 8
`), 0644))

	cfg := &config.Config{
		Input:  config.InputConfig{Workbook: wbPath},
		Layout: config.LayoutConfig{File: layoutPath},
	}
	pipeline := ui.NewPipelineWithOutput(ui.ReportPhases, io.Discard)
	pipeline.Disable()

	r, err := Generate(cfg, pipeline)
	require.NoError(t, err)
	assert.Equal(t, "forestry-only", r.Layout)
	assert.Empty(t, r.Bands)
	require.Len(t, r.Indicators, 1)
	assert.Len(t, r.Indicators[0].Rows, 5)
}

func TestGenerateMissingWorkbook(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Input:  config.InputConfig{Workbook: filepath.Join(dir, "missing.xlsx")},
		Output: config.OutputConfig{Dir: dir},
	}
	pipeline := ui.NewPipelineWithOutput(ui.ReportPhases, io.Discard)
	pipeline.Disable()

	_, err := Generate(cfg, pipeline)
	assert.Error(t, err)
}

func TestGenerateMissingSheets(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, sample.WriteWorkbook(wbPath))

	layoutPath := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(layoutPath, []byte(`name: finance
tables:
  - name: budget
    kind: indicator
    sheet: Finance
    label_column: B
    first_column: C
    last_column: F
    first_row: 4
    last_row: 8
`), 0644))

	cfg := &config.Config{
		Input:  config.InputConfig{Workbook: wbPath},
		Layout: config.LayoutConfig{File: layoutPath},
	}
	pipeline := ui.NewPipelineWithOutput(ui.ReportPhases, io.Discard)
	pipeline.Disable()

	_, err := Generate(cfg, pipeline)
	assert.ErrorContains(t, err, `survey.xlsx has no sheet "Finance" needed by layout finance`)
}
