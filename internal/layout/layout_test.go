package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"survey-recon/internal/model"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLayout(t *testing.T) {
	l := Default()

	if l.Name != "vsla-forestry-quarterly" {
		t.Errorf("Name = %q", l.Name)
	}

	bands := l.ByKind(model.KindBand)
	var names []string
	for _, b := range bands {
		names = append(names, b.Name)
	}
	if diff := cmp.Diff([]string{"savings_per_member", "loan_size", "group_size"}, names); diff != "" {
		t.Errorf("band tables mismatch (-want +got):\n%s", diff)
	}

	// five band rows plus the sheet's Total row
	var windows []string
	for _, b := range bands {
		windows = append(windows, b.ValueRange().String())
	}
	if diff := cmp.Diff([]string{"C5:F10", "C13:F18", "C21:F26"}, windows); diff != "" {
		t.Errorf("band windows mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"VSLA Quarterly", "Forestry"}, l.Sheets()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	spec, ok := l.Find("vsla_indicators")
	if !ok {
		t.Fatal("vsla_indicators not found")
	}
	if !spec.StopAtBlank || spec.FirstRow != 29 {
		t.Errorf("unexpected vsla_indicators spec: %+v", spec)
	}
	if got := spec.ValueRange().String(); got != "C29:F36" {
		t.Errorf("ValueRange = %s, expected C29:F36", got)
	}
}

func TestParseNormalizes(t *testing.T) {
	l, err := Parse([]byte(`
name: custom
tables:
  - name: ropes_bands
    kind: " Band "
    sheet: Seaweed
    label_column: a
    first_column: b
    last_column: e
    first_row: 2
    last_row: 8
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := TableSpec{
		Name:        "ropes_bands",
		Title:       "ropes_bands",
		Kind:        model.KindBand,
		Sheet:       "Seaweed",
		LabelColumn: "A",
		FirstColumn: "B",
		LastColumn:  "E",
		FirstRow:    2,
		LastRow:     8,
	}
	if diff := cmp.Diff(want, l.Tables[0]); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	base := TableSpec{
		Name: "t", Kind: model.KindBand, Sheet: "S",
		HeaderRow: 1, LabelColumn: "A", FirstColumn: "B", LastColumn: "D",
		FirstRow: 2, LastRow: 5,
	}

	tests := []struct {
		name      string
		mutate    func(*TableSpec)
		shouldErr string
	}{
		{"Valid", func(*TableSpec) {}, ""},
		{"Unknown kind", func(s *TableSpec) { s.Kind = "pivot" }, "unknown kind"},
		{"Missing sheet", func(s *TableSpec) { s.Sheet = "" }, "sheet is required"},
		{"Bad column", func(s *TableSpec) { s.FirstColumn = "1B" }, "first_column"},
		{"Reversed columns", func(s *TableSpec) { s.LastColumn = "A"; s.LabelColumn = "Z" }, "before first_column"},
		{"Label inside values", func(s *TableSpec) { s.LabelColumn = "C" }, "inside the value columns"},
		{"Reversed rows", func(s *TableSpec) { s.LastRow = 1 }, "before first_row"},
		{"Header inside rows", func(s *TableSpec) { s.HeaderRow = 3 }, "header_row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.shouldErr == "" {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.shouldErr) {
				t.Errorf("Expected error containing %q, got %v", tt.shouldErr, err)
			}
		})
	}
}

func TestDuplicateNames(t *testing.T) {
	_, err := Parse([]byte(`
tables:
  - {name: a, kind: band, sheet: S, label_column: A, first_column: B, last_column: C, first_row: 1, last_row: 2}
  - {name: a, kind: indicator, sheet: S, label_column: A, first_column: B, last_column: C, first_row: 4, last_row: 6}
`))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Expected duplicate name error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, defaultLayout, 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(l.Tables) != len(Default().Tables) {
		t.Errorf("Loaded %d tables, expected %d", len(l.Tables), len(Default().Tables))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
