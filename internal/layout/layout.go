// Package layout describes where survey tables sit inside a workbook.
// Every table is a fixed block: a label column, a run of quarter columns
// and a row window, optionally with a header row holding quarter names.
package layout

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"survey-recon/internal/model"
	"survey-recon/internal/workbook"

	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is a named set of table definitions
type Layout struct {
	Name   string      `yaml:"name"`
	Tables []TableSpec `yaml:"tables"`
}

// TableSpec locates one table by fixed coordinates
type TableSpec struct {
	Name        string          `yaml:"name"`
	Title       string          `yaml:"title"`
	Kind        model.TableKind `yaml:"kind"`
	Sheet       string          `yaml:"sheet"`
	Unit        string          `yaml:"unit"`
	HeaderRow   int             `yaml:"header_row"`    // 0 means no header row
	LabelColumn string          `yaml:"label_column"`  // e.g. "B"
	FirstColumn string          `yaml:"first_column"`  // first quarter column
	LastColumn  string          `yaml:"last_column"`   // last quarter column
	FirstRow    int             `yaml:"first_row"`     // first data row (1-based)
	LastRow     int             `yaml:"last_row"`      // last data row, inclusive
	StopAtBlank bool            `yaml:"stop_at_blank"` // end the table at the first blank label
}

// Default returns the built-in layout of the quarterly VSLA/forestry workbook
func Default() *Layout {
	l, err := Parse(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout is invalid: %v", err))
	}
	return l
}

// Load reads a YAML layout file
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	l.normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) normalize() {
	for i := range l.Tables {
		t := &l.Tables[i]
		t.Kind = model.TableKind(strings.ToLower(strings.TrimSpace(string(t.Kind))))
		t.LabelColumn = strings.ToUpper(strings.TrimSpace(t.LabelColumn))
		t.FirstColumn = strings.ToUpper(strings.TrimSpace(t.FirstColumn))
		t.LastColumn = strings.ToUpper(strings.TrimSpace(t.LastColumn))
		if t.Title == "" {
			t.Title = t.Name
		}
	}
}

// Validate checks every table definition
func (l *Layout) Validate() error {
	if len(l.Tables) == 0 {
		return fmt.Errorf("layout %q has no tables", l.Name)
	}

	seen := make(map[string]bool)
	for _, t := range l.Tables {
		if t.Name == "" {
			return fmt.Errorf("table without a name on sheet %q", t.Sheet)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate table name %q", t.Name)
		}
		seen[t.Name] = true

		if err := t.Validate(); err != nil {
			return fmt.Errorf("table %q: %w", t.Name, err)
		}
	}
	return nil
}

// Validate checks a single table definition
func (t TableSpec) Validate() error {
	switch t.Kind {
	case model.KindBand, model.KindIndicator:
	default:
		return fmt.Errorf("unknown kind %q (expected band or indicator)", t.Kind)
	}

	if t.Sheet == "" {
		return fmt.Errorf("sheet is required")
	}

	label, err := workbook.ColumnNumber(t.LabelColumn)
	if err != nil {
		return fmt.Errorf("label_column: %w", err)
	}
	first, err := workbook.ColumnNumber(t.FirstColumn)
	if err != nil {
		return fmt.Errorf("first_column: %w", err)
	}
	last, err := workbook.ColumnNumber(t.LastColumn)
	if err != nil {
		return fmt.Errorf("last_column: %w", err)
	}
	if last < first {
		return fmt.Errorf("last_column %s is before first_column %s", t.LastColumn, t.FirstColumn)
	}
	if label >= first && label <= last {
		return fmt.Errorf("label_column %s lies inside the value columns", t.LabelColumn)
	}

	if t.FirstRow < 1 {
		return fmt.Errorf("first_row must be at least 1")
	}
	if t.LastRow < t.FirstRow {
		return fmt.Errorf("last_row %d is before first_row %d", t.LastRow, t.FirstRow)
	}
	if t.HeaderRow < 0 || (t.HeaderRow >= t.FirstRow && t.HeaderRow <= t.LastRow) {
		return fmt.Errorf("header_row %d must be outside rows %d-%d", t.HeaderRow, t.FirstRow, t.LastRow)
	}
	return nil
}

// Columns returns the 1-based label column and the quarter column span.
// It assumes the spec has been validated.
func (t TableSpec) Columns() (label, first, last int) {
	label, _ = workbook.ColumnNumber(t.LabelColumn)
	first, _ = workbook.ColumnNumber(t.FirstColumn)
	last, _ = workbook.ColumnNumber(t.LastColumn)
	return label, first, last
}

// ValueRange is the block of quarter values
func (t TableSpec) ValueRange() workbook.Range {
	_, first, last := t.Columns()
	return workbook.Range{FirstCol: first, FirstRow: t.FirstRow, LastCol: last, LastRow: t.LastRow}
}

// Find returns the table with the given name
func (l *Layout) Find(name string) (TableSpec, bool) {
	for _, t := range l.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSpec{}, false
}

// ByKind returns the tables of one kind in layout order
func (l *Layout) ByKind(kind model.TableKind) []TableSpec {
	var out []TableSpec
	for _, t := range l.Tables {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Sheets lists the distinct sheets the layout reads, in first-use order
func (l *Layout) Sheets() []string {
	var sheets []string
	seen := make(map[string]bool)
	for _, t := range l.Tables {
		if !seen[t.Sheet] {
			seen[t.Sheet] = true
			sheets = append(sheets, t.Sheet)
		}
	}
	return sheets
}
