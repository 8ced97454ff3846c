package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TableKind tells how a fixed-offset table is laid out
type TableKind string

const (
	KindBand      TableKind = "band"      // rows are value ranges, columns are quarters
	KindIndicator TableKind = "indicator" // rows are named indicators, columns are quarters
)

// Value is a survey number that may be missing from the sheet
type Value struct {
	Amount float64
	Valid  bool
}

// Num wraps a present value
func Num(v float64) Value {
	return Value{Amount: v, Valid: true}
}

// Missing is the zero Value
func Missing() Value {
	return Value{}
}

// MarshalJSON writes null for missing and non-finite values
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Amount) || math.IsInf(v.Amount, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.Amount)
}

// UnmarshalJSON accepts a number or null
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid value %s: %w", data, err)
	}
	*v = Num(f)
	return nil
}

// Row is one labelled line of a table
type Row struct {
	Label  string  // Text of the label column
	Cell   string  // Reference of the label cell (e.g. "B5")
	Values []Value // One value per quarter
}

// Table is the raw content read from one layout entry
type Table struct {
	Name     string
	Title    string
	Kind     TableKind
	Sheet    string
	Unit     string
	Quarters []string

	Rows []Row

	// ReportedTotals holds the sheet's own "Total" row, nil when the sheet has none
	ReportedTotals []Value
}

// Warning records a cell that could not be read cleanly
type Warning struct {
	Table   string `json:"table"`
	Sheet   string `json:"sheet"`
	Cell    string `json:"cell,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Cell == "" {
		return fmt.Sprintf("[%s] %s: %s", w.Table, w.Sheet, w.Message)
	}
	return fmt.Sprintf("[%s] %s!%s: %s", w.Table, w.Sheet, w.Cell, w.Message)
}

// Dataset is everything extracted from one workbook
type Dataset struct {
	Source   string
	Tables   []*Table
	Warnings []Warning
}

// Table looks up a table by name
func (d *Dataset) Table(name string) *Table {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ByKind returns tables of one kind in layout order
func (d *Dataset) ByKind(kind TableKind) []*Table {
	var out []*Table
	for _, t := range d.Tables {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// AddWarning appends a warning to the dataset
func (d *Dataset) AddWarning(w Warning) {
	d.Warnings = append(d.Warnings, w)
}
