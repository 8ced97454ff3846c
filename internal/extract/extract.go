// Package extract reads the fixed-offset survey tables described by a layout.
package extract

import (
	"fmt"
	"math"

	"survey-recon/internal/layout"
	"survey-recon/internal/logger"
	"survey-recon/internal/model"
	"survey-recon/internal/utils"
	"survey-recon/internal/workbook"
)

// totalTolerance is how far a sheet's own total may drift from the column sum
const totalTolerance = 0.5

// Extract reads every table of the layout from the workbook.
// step, when not nil, is called with each table name before it is read.
func Extract(wb *workbook.Workbook, l *layout.Layout, step func(name string)) (*model.Dataset, error) {
	ds := &model.Dataset{Source: wb.Name()}

	for _, spec := range l.Tables {
		if step != nil {
			step(spec.Name)
		}
		table, warnings, err := ReadTable(wb, spec)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", spec.Name, err)
		}
		ds.Tables = append(ds.Tables, table)
		for _, w := range warnings {
			ds.AddWarning(w)
			logger.LogCellWarning(w.Table, w.Sheet, w.Cell, w.Message)
		}
		logger.Debug("Read %s: %d rows x %d quarters", spec.Name, len(table.Rows), len(table.Quarters))
	}

	return ds, nil
}

// ReadTable reads one table. Cell-level problems become warnings;
// only structural problems (missing sheet, bad layout) are errors.
func ReadTable(wb *workbook.Workbook, spec layout.TableSpec) (*model.Table, []model.Warning, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}
	if !wb.HasSheet(spec.Sheet) {
		return nil, nil, fmt.Errorf("sheet %q not found in %s", spec.Sheet, wb.Name())
	}

	r := &reader{wb: wb, spec: spec}
	table := &model.Table{
		Name:  spec.Name,
		Title: spec.Title,
		Kind:  spec.Kind,
		Sheet: spec.Sheet,
		Unit:  spec.Unit,
	}

	quarters, err := r.quarters()
	if err != nil {
		return nil, nil, err
	}
	table.Quarters = quarters

	labelCol, _, _ := spec.Columns()
rows:
	for row := spec.FirstRow; row <= spec.LastRow; row++ {
		label, err := wb.CellAt(spec.Sheet, labelCol, row)
		if err != nil {
			return nil, nil, err
		}

		switch kind := utils.ClassifyLabel(label); {
		case kind == utils.LabelBlank:
			if spec.StopAtBlank {
				break rows
			}
			continue
		case kind == utils.LabelNote:
			continue
		// indicator tables have no total row, a "Total ..." label there is data
		case kind == utils.LabelTotal && spec.Kind == model.KindBand:
			values, err := r.values(row)
			if err != nil {
				return nil, nil, err
			}
			table.ReportedTotals = values
			r.totalRow = row
			continue
		}

		values, err := r.values(row)
		if err != nil {
			return nil, nil, err
		}
		table.Rows = append(table.Rows, model.Row{
			Label:  label,
			Cell:   workbook.Ref{Col: labelCol, Row: row}.String(),
			Values: values,
		})
	}

	if len(table.Rows) == 0 {
		r.warn("", fmt.Sprintf("no data rows between rows %d and %d", spec.FirstRow, spec.LastRow))
	}
	if table.ReportedTotals != nil {
		r.checkTotals(table)
	}

	return table, r.warnings, nil
}

// reader carries the per-table state while reading cells
type reader struct {
	wb       *workbook.Workbook
	spec     layout.TableSpec
	totalRow int
	warnings []model.Warning
}

func (r *reader) warn(cell, message string) {
	r.warnings = append(r.warnings, model.Warning{
		Table:   r.spec.Name,
		Sheet:   r.spec.Sheet,
		Cell:    cell,
		Message: message,
	})
}

// quarters reads the header labels; blank headers fall back to Q<n>
func (r *reader) quarters() ([]string, error) {
	_, first, last := r.spec.Columns()
	out := make([]string, 0, last-first+1)

	for col := first; col <= last; col++ {
		name := ""
		if r.spec.HeaderRow > 0 {
			text, err := r.wb.CellAt(r.spec.Sheet, col, r.spec.HeaderRow)
			if err != nil {
				return nil, err
			}
			name = text
		}
		if name == "" {
			name = fmt.Sprintf("Q%d", col-first+1)
		}
		out = append(out, name)
	}
	return out, nil
}

// values reads the quarter cells of one row
func (r *reader) values(row int) ([]model.Value, error) {
	_, first, last := r.spec.Columns()
	out := make([]model.Value, 0, last-first+1)

	for col := first; col <= last; col++ {
		text, err := r.wb.CellAt(r.spec.Sheet, col, row)
		if err != nil {
			return nil, err
		}

		num, ok, err := workbook.ParseNumber(text)
		if err != nil {
			r.warn(workbook.Ref{Col: col, Row: row}.String(), err.Error())
			out = append(out, model.Missing())
			continue
		}
		if !ok {
			out = append(out, model.Missing())
			continue
		}
		out = append(out, model.Num(num))
	}
	return out, nil
}

// checkTotals compares the sheet's "Total" row with the computed column sums
func (r *reader) checkTotals(table *model.Table) {
	_, first, _ := r.spec.Columns()

	for q, reported := range table.ReportedTotals {
		if !reported.Valid {
			continue
		}
		sum := 0.0
		for _, row := range table.Rows {
			if q < len(row.Values) && row.Values[q].Valid {
				sum += row.Values[q].Amount
			}
		}
		if math.Abs(sum-reported.Amount) > totalTolerance {
			r.warn(workbook.Ref{Col: first + q, Row: r.totalRow}.String(),
				fmt.Sprintf("reported total %.0f for %s differs from column sum %.0f", reported.Amount, table.Quarters[q], sum))
		}
	}
}
