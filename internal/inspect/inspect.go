// Package inspect helps locate survey tables in an unfamiliar workbook:
// listing sheets, dumping cell blocks, searching text and checking a
// layout against the cells it would read.
package inspect

import (
	"fmt"

	"survey-recon/internal/layout"
	"survey-recon/internal/model"
	"survey-recon/internal/utils"
	"survey-recon/internal/workbook"
)

// SheetInfo describes the used area of one sheet
type SheetInfo struct {
	Name      string
	Dimension string
	Rows      int
	Columns   int
	NonEmpty  int
}

// Sheets lists every sheet with its used range
func Sheets(wb *workbook.Workbook) ([]SheetInfo, error) {
	var out []SheetInfo
	for _, name := range wb.SheetNames() {
		dim, err := wb.Dimension(name)
		if err != nil {
			return nil, err
		}
		rows, err := wb.Rows(name)
		if err != nil {
			return nil, err
		}

		info := SheetInfo{
			Name:      name,
			Dimension: dim.String(),
			Rows:      dim.Height(),
			Columns:   dim.Width(),
		}
		for _, row := range rows {
			for _, cell := range row {
				if cell != "" {
					info.NonEmpty++
				}
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// Grid is a block of cells with its row numbers and column letters
type Grid struct {
	Sheet   string
	Range   string
	Columns []string
	Rows    []GridRow
}

// GridRow is one line of a Grid
type GridRow struct {
	Number int
	Cells  []string
}

// Dump returns the cells of rng, or of the whole used range when rng is empty
func Dump(wb *workbook.Workbook, sheet, rng string) (*Grid, error) {
	var r workbook.Range
	var err error
	if rng == "" {
		r, err = wb.Dimension(sheet)
	} else {
		r, err = workbook.ParseRange(rng)
	}
	if err != nil {
		return nil, err
	}

	block, err := wb.Window(sheet, r)
	if err != nil {
		return nil, err
	}

	g := &Grid{Sheet: sheet, Range: r.String()}
	for col := r.FirstCol; col <= r.LastCol; col++ {
		g.Columns = append(g.Columns, workbook.ColumnName(col))
	}
	for i, cells := range block {
		g.Rows = append(g.Rows, GridRow{Number: r.FirstRow + i, Cells: cells})
	}
	return g, nil
}

// Match is a cell whose text contains the searched string
type Match struct {
	Sheet string
	Cell  string
	Text  string
}

// Find searches every sheet, case-insensitively
func Find(wb *workbook.Workbook, text string) ([]Match, error) {
	var out []Match
	for _, sheet := range wb.SheetNames() {
		refs, err := wb.Search(sheet, text)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			val, err := wb.CellAt(sheet, ref.Col, ref.Row)
			if err != nil {
				return nil, err
			}
			out = append(out, Match{Sheet: sheet, Cell: ref.String(), Text: val})
		}
	}
	return out, nil
}

// ProbeLabel is a label cell the layout would read, with how it is classified
type ProbeLabel struct {
	Cell    string
	Text    string
	Kind    string // data, total, note or blank
	Numeric int    // quarter cells holding a number
}

// ProbeResult shows what one layout table would pick up
type ProbeResult struct {
	Table      string
	Sheet      string
	SheetFound bool
	Headers    []string
	Labels     []ProbeLabel
	Problems   []string
}

// MissingSheets lists the layout's sheets that the workbook lacks
func MissingSheets(wb *workbook.Workbook, l *layout.Layout) []string {
	var missing []string
	for _, sheet := range l.Sheets() {
		if !wb.HasSheet(sheet) {
			missing = append(missing, sheet)
		}
	}
	return missing
}

// Probe checks every layout table against the workbook without extracting it.
// A table whose sheet is missing is reported, not returned as an error.
func Probe(wb *workbook.Workbook, l *layout.Layout) ([]ProbeResult, error) {
	var out []ProbeResult
	for _, spec := range l.Tables {
		res := ProbeResult{Table: spec.Name, Sheet: spec.Sheet, SheetFound: wb.HasSheet(spec.Sheet)}
		if !res.SheetFound {
			res.Problems = append(res.Problems, fmt.Sprintf("sheet %q not found", spec.Sheet))
			out = append(out, res)
			continue
		}

		labelCol, first, last := spec.Columns()
		if spec.HeaderRow > 0 {
			for col := first; col <= last; col++ {
				h, err := wb.CellAt(spec.Sheet, col, spec.HeaderRow)
				if err != nil {
					return nil, err
				}
				res.Headers = append(res.Headers, h)
				if h == "" {
					res.Problems = append(res.Problems,
						fmt.Sprintf("header cell %s is blank", workbook.Ref{Col: col, Row: spec.HeaderRow}))
				}
			}
		}

		data := 0
		for row := spec.FirstRow; row <= spec.LastRow; row++ {
			text, err := wb.CellAt(spec.Sheet, labelCol, row)
			if err != nil {
				return nil, err
			}
			kind := utils.ClassifyLabel(text)
			if kind == utils.LabelTotal && spec.Kind != model.KindBand {
				kind = utils.LabelData
			}
			pl := ProbeLabel{
				Cell: workbook.Ref{Col: labelCol, Row: row}.String(),
				Text: text,
				Kind: kindName(kind),
			}
			for col := first; col <= last; col++ {
				v, err := wb.CellAt(spec.Sheet, col, row)
				if err != nil {
					return nil, err
				}
				if _, ok, err := workbook.ParseNumber(v); err == nil && ok {
					pl.Numeric++
				} else if err != nil {
					res.Problems = append(res.Problems,
						fmt.Sprintf("%s holds text %q", workbook.Ref{Col: col, Row: row}, v))
				}
			}
			if pl.Kind == "data" {
				data++
			}
			res.Labels = append(res.Labels, pl)
		}

		if data == 0 {
			res.Problems = append(res.Problems, "no data labels in the row window")
		}
		out = append(out, res)
	}
	return out, nil
}

func kindName(k utils.LabelKind) string {
	switch k {
	case utils.LabelBlank:
		return "blank"
	case utils.LabelTotal:
		return "total"
	case utils.LabelNote:
		return "note"
	default:
		return "data"
	}
}
