package exporter

import (
	"fmt"
	"strings"

	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Name identifies the exporter in logs
func (e *ExcelExporter) Name() string {
	return "excel"
}

// Export generates the summary workbook
func (e *ExcelExporter) Export(r *model.Report, cfg *config.Config) error {
	outputFile := cfg.GetOutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	// 1. Overview
	if err := e.writeOverview(f, styler, r); err != nil {
		return err
	}

	// 2. One sheet per band table
	used := map[string]bool{"Overview": true, "Indicators": true, "Ropes": true, "Warnings": true}
	for _, b := range r.Bands {
		if err := e.writeBandSheet(f, styler, uniqueSheetName(b.Title, used), b); err != nil {
			return err
		}
	}

	// 3. Indicators
	if len(r.Indicators) > 0 {
		if err := e.writeIndicators(f, styler, r.Indicators); err != nil {
			return err
		}
	}

	// 4. Ropes
	if r.Ropes != nil {
		if err := e.writeRopes(f, styler, r.Ropes); err != nil {
			return err
		}
	}

	// 5. Warnings
	if len(r.Warnings) > 0 {
		if err := e.writeWarnings(f, styler, r.Warnings); err != nil {
			return err
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	if idx, err := f.GetSheetIndex("Overview"); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFile, err)
	}
	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, r *model.Report) error {
	sheet := "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", r.Title)
	f.SetCellStyle(sheet, "A1", "A1", s.TitleStyle)

	row := 3
	e.writeRow(f, sheet, row, []string{"Item", "Value"}, s.HeaderStyle)
	row++

	items := [][2]string{
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Workbook", r.Source},
		{"Layout", r.Layout},
		{"Band tables", fmt.Sprint(len(r.Bands))},
		{"Indicator tables", fmt.Sprint(len(r.Indicators))},
		{"Warnings", fmt.Sprint(len(r.Warnings))},
	}
	if r.Ropes != nil {
		items = append(items, [2]string{"Ropes file", r.Ropes.Source})
	}
	for _, it := range items {
		e.writeRow(f, sheet, row, it[:], s.LabelStyle)
		row++
	}

	if highlights := common.Highlights(r); len(highlights) > 0 {
		row++
		e.writeRow(f, sheet, row, []string{"Highlights"}, s.HeaderStyle)
		row++
		for _, h := range highlights {
			cell := fmt.Sprintf("A%d", row)
			f.SetCellValue(sheet, cell, h)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 60)
	return nil
}

// --- Band Sheet Logic ---

func (e *ExcelExporter) writeBandSheet(f *excelize.File, s *Styler, sheet string, b model.BandSummary) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	n := len(b.Quarters)

	f.SetCellValue(sheet, "A1", common.WithUnit(b.Title, b.Unit))
	f.SetCellStyle(sheet, "A1", "A1", s.TitleStyle)

	// Counts block, then shares block to the right
	headers := []string{"Band"}
	for _, q := range b.Quarters {
		headers = append(headers, q)
	}
	headers = append(headers, "")
	for _, q := range b.Quarters {
		headers = append(headers, q+" share")
	}
	row := 3
	e.writeRow(f, sheet, row, headers, s.HeaderStyle)
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: fmt.Sprintf("A%d", row+1),
		ActivePane:  "bottomLeft",
	})
	row++

	for _, band := range b.Bands {
		e.setLabel(f, sheet, 1, row, band.Label, s.LabelStyle)
		for q := 0; q < n; q++ {
			e.setValue(f, sheet, q+2, row, band.Counts[q], s.NumberStyle)
			e.setNumber(f, sheet, n+q+3, row, band.Shares[q], s.PercentStyle)
		}
		row++
	}

	e.setLabel(f, sheet, 1, row, "Total", s.TotalStyle)
	for q := 0; q < n; q++ {
		if b.QuarterReported(q) {
			e.setNumber(f, sheet, q+2, row, b.Totals[q], s.TotalStyle)
		} else {
			e.setLabel(f, sheet, q+2, row, common.Missing, s.TotalStyle)
		}
	}
	row++

	e.setLabel(f, sheet, 1, row, "Change", s.LabelStyle)
	for q := 0; q < n; q++ {
		e.setValue(f, sheet, q+2, row, b.Change[q], s.NumberStyle)
	}
	row++

	e.setLabel(f, sheet, 1, row, "Change %", s.LabelStyle)
	for q := 0; q < n; q++ {
		e.setValue(f, sheet, q+2, row, b.ChangePct[q], s.PercentStyle)
	}
	row++

	e.setLabel(f, sheet, 1, row, "Most common", s.LabelStyle)
	for q := 0; q < n; q++ {
		dominant := b.Dominant[q]
		if dominant == "" {
			dominant = common.Missing
		}
		e.setLabel(f, sheet, q+2, row, dominant, s.LabelStyle)
	}
	row++

	e.setLabel(f, sheet, 1, row, "Estimated mean", s.LabelStyle)
	for q := 0; q < n; q++ {
		e.setValue(f, sheet, q+2, row, b.MeanEstimate[q], s.DecimalStyle)
	}

	f.SetColWidth(sheet, "A", "A", 28)
	return nil
}

// --- Indicators Sheet Logic ---

func (e *ExcelExporter) writeIndicators(f *excelize.File, s *Styler, summaries []model.IndicatorSummary) error {
	sheet := "Indicators"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	for _, sum := range summaries {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), common.WithUnit(sum.Title, sum.Unit))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.TitleStyle)
		row++

		headers := append([]string{"Indicator"}, sum.Quarters...)
		headers = append(headers, "Change", "Change %")
		e.writeRow(f, sheet, row, headers, s.HeaderStyle)
		row++

		for _, ind := range sum.Rows {
			e.setLabel(f, sheet, 1, row, ind.Label, s.LabelStyle)
			col := 2
			for _, v := range ind.Values {
				e.setValue(f, sheet, col, row, v, s.DecimalStyle)
				col++
			}
			e.setValue(f, sheet, col, row, ind.Change, s.DecimalStyle)
			e.setValue(f, sheet, col+1, row, ind.ChangePct, s.PercentStyle)
			row++
		}
		row++ // Spacer
	}

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "H", 14)
	return nil
}

// --- Ropes Sheet Logic ---

func (e *ExcelExporter) writeRopes(f *excelize.File, s *Styler, rs *model.RopesSummary) error {
	sheet := "Ropes"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	for _, g := range common.RopesGrids(rs) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.Title)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.TitleStyle)
		row++
		e.writeRow(f, sheet, row, g.Headers, s.HeaderStyle)
		row++
		for _, cells := range g.Rows {
			e.writeRow(f, sheet, row, cells, s.LabelStyle)
			row++
		}
		if g.Note != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.Note)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.WarnStyle)
			row++
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "D", 14)
	return nil
}

// --- Warnings Sheet Logic ---

func (e *ExcelExporter) writeWarnings(f *excelize.File, s *Styler, warnings []model.Warning) error {
	g := common.WarningGrid(warnings)
	sheet := g.Title
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	e.writeRow(f, sheet, 1, g.Headers, s.HeaderStyle)
	for i, cells := range g.Rows {
		e.writeRow(f, sheet, i+2, cells, s.WarnStyle)
	}
	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "D", "D", 70)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		e.setLabel(f, sheet, i+1, row, val, style)
	}
}

func (e *ExcelExporter) setLabel(f *excelize.File, sheet string, col, row int, val string, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheet, cell, val)
	f.SetCellStyle(sheet, cell, cell, style)
}

func (e *ExcelExporter) setNumber(f *excelize.File, sheet string, col, row int, val float64, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheet, cell, val)
	f.SetCellStyle(sheet, cell, cell, style)
}

// setValue writes a number, or the missing marker for an absent value
func (e *ExcelExporter) setValue(f *excelize.File, sheet string, col, row int, v model.Value, style int) {
	if !v.Valid {
		e.setLabel(f, sheet, col, row, common.Missing, style)
		return
	}
	e.setNumber(f, sheet, col, row, v.Amount, style)
}

// uniqueSheetName makes a title usable as a sheet name: no reserved
// characters, at most 31 characters, not already taken
func uniqueSheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return ' '
		}
		return r
	}, title)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = "Table"
	}
	name = truncate(name, maxSheetName)

	candidate := name
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
