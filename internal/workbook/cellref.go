package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Ref is a 1-based cell coordinate
type Ref struct {
	Col int
	Row int
}

// String renders the reference in A1 notation
func (r Ref) String() string {
	name, err := excelize.CoordinatesToCellName(r.Col, r.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", r.Row, r.Col)
	}
	return name
}

// ParseRef parses an A1-style reference; absolute markers ($) are ignored
func ParseRef(ref string) (Ref, error) {
	clean := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	col, row, err := excelize.CellNameToCoordinates(clean)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return Ref{Col: col, Row: row}, nil
}

// Range is an inclusive rectangular block of cells
type Range struct {
	FirstCol int
	FirstRow int
	LastCol  int
	LastRow  int
}

// ParseRange parses "B5:F9". A single reference yields a one-cell range.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("invalid range %q", s)
	}

	start, err := ParseRef(parts[0])
	if err != nil {
		return Range{}, err
	}
	end := start
	if len(parts) == 2 {
		if end, err = ParseRef(parts[1]); err != nil {
			return Range{}, err
		}
	}

	rng := Range{FirstCol: start.Col, FirstRow: start.Row, LastCol: end.Col, LastRow: end.Row}
	if rng.LastCol < rng.FirstCol {
		rng.FirstCol, rng.LastCol = rng.LastCol, rng.FirstCol
	}
	if rng.LastRow < rng.FirstRow {
		rng.FirstRow, rng.LastRow = rng.LastRow, rng.FirstRow
	}
	return rng, nil
}

// Width is the number of columns in the range
func (r Range) Width() int { return r.LastCol - r.FirstCol + 1 }

// Height is the number of rows in the range
func (r Range) Height() int { return r.LastRow - r.FirstRow + 1 }

func (r Range) String() string {
	return Ref{Col: r.FirstCol, Row: r.FirstRow}.String() + ":" + Ref{Col: r.LastCol, Row: r.LastRow}.String()
}

// ColumnNumber converts a column letter ("C") to its 1-based index
func ColumnNumber(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(letters))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", letters, err)
	}
	return n, nil
}

// ColumnName converts a 1-based column index to letters
func ColumnName(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "?"
	}
	return name
}
