package workbook

import (
	"fmt"
	"path/filepath"
	"strings"
)

// source is the per-format backend behind a Workbook
type source interface {
	sheetNames() []string
	rows(sheet string) ([][]string, error)
	close() error
}

// Workbook gives coordinate-based access to an Excel workbook or a CSV file.
// Rows are read once per sheet and cached.
type Workbook struct {
	Path  string
	src   source
	cache map[string][][]string
}

// Open opens an .xlsx/.xlsm/.xltx workbook or a .csv file.
// encoding is only used for CSV input ("" means UTF-8).
func Open(path, encoding string) (*Workbook, error) {
	var (
		src source
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		src, err = openXLSX(path)
	case ".csv", ".txt":
		src, err = openCSV(path, encoding)
	default:
		return nil, fmt.Errorf("unsupported workbook type: %s", path)
	}
	if err != nil {
		return nil, err
	}

	return &Workbook{
		Path:  path,
		src:   src,
		cache: make(map[string][][]string),
	}, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	if w == nil || w.src == nil {
		return nil
	}
	return w.src.close()
}

// Name returns the workbook file name without directory
func (w *Workbook) Name() string {
	return filepath.Base(w.Path)
}

// SheetNames lists the sheets in workbook order
func (w *Workbook) SheetNames() []string {
	return w.src.sheetNames()
}

// HasSheet reports whether the workbook contains the named sheet
func (w *Workbook) HasSheet(sheet string) bool {
	for _, name := range w.SheetNames() {
		if name == sheet {
			return true
		}
	}
	return false
}

// Rows returns every row of a sheet. Trailing empty cells may be absent.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	if rows, ok := w.cache[sheet]; ok {
		return rows, nil
	}
	if !w.HasSheet(sheet) {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, w.Name())
	}

	rows, err := w.src.rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	w.cache[sheet] = rows
	return rows, nil
}

// CellAt returns the text of a cell by 1-based column and row
func (w *Workbook) CellAt(sheet string, col, row int) (string, error) {
	if col < 1 || row < 1 {
		return "", fmt.Errorf("invalid coordinates col=%d row=%d", col, row)
	}
	rows, err := w.Rows(sheet)
	if err != nil {
		return "", err
	}
	if row > len(rows) || col > len(rows[row-1]) {
		return "", nil
	}
	return strings.TrimSpace(rows[row-1][col-1]), nil
}

// Cell returns the text of a cell by reference, e.g. "B7"
func (w *Workbook) Cell(sheet, ref string) (string, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return w.CellAt(sheet, r.Col, r.Row)
}

// Window returns the rectangular block described by rng.
// The result always has rng.Height() rows of rng.Width() cells.
func (w *Workbook) Window(sheet string, rng Range) ([][]string, error) {
	if _, err := w.Rows(sheet); err != nil {
		return nil, err
	}

	block := make([][]string, 0, rng.Height())
	for row := rng.FirstRow; row <= rng.LastRow; row++ {
		line := make([]string, 0, rng.Width())
		for col := rng.FirstCol; col <= rng.LastCol; col++ {
			val, err := w.CellAt(sheet, col, row)
			if err != nil {
				return nil, err
			}
			line = append(line, val)
		}
		block = append(block, line)
	}
	return block, nil
}

// Dimension returns the used range of a sheet (A1:A1 for an empty sheet)
func (w *Workbook) Dimension(sheet string) (Range, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return Range{}, err
	}

	maxCol := 1
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	maxRow := len(rows)
	if maxRow == 0 {
		maxRow = 1
	}
	return Range{FirstCol: 1, FirstRow: 1, LastCol: maxCol, LastRow: maxRow}, nil
}

// Search returns references of cells whose text contains needle (case-insensitive)
func (w *Workbook) Search(sheet, needle string) ([]Ref, error) {
	rows, err := w.Rows(sheet)
	if err != nil {
		return nil, err
	}

	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return nil, nil
	}

	var hits []Ref
	for r, row := range rows {
		for c, val := range row {
			if strings.Contains(strings.ToLower(val), needle) {
				hits = append(hits, Ref{Col: c + 1, Row: r + 1})
			}
		}
	}
	return hits, nil
}
