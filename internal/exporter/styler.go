package exporter

import (
	"github.com/xuri/excelize/v2"
)

const (
	percentFormat = `0.0"%"`
	decimalFormat = "#,##0.##"
)

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	TitleStyle   int
	HeaderStyle  int
	LabelStyle   int
	NumberStyle  int
	DecimalStyle int
	PercentStyle int
	TotalStyle   int
	WarnStyle    int
	DefaultStyle int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}
	pct, dec := percentFormat, decimalFormat

	styles := []struct {
		dst   *int
		style *excelize.Style
	}{
		// Title: large green heading, no border
		{&s.TitleStyle, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Color: "#2E7D32"},
		}},
		// Header: bold, gray background, centered
		{&s.HeaderStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#000000"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    createBorder(),
		}},
		{&s.LabelStyle, &excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
			Border:    createBorder(),
		}},
		// Counts and amounts: thousands separator
		{&s.NumberStyle, &excelize.Style{
			NumFmt:    3,
			Alignment: &excelize.Alignment{Vertical: "center"},
			Border:    createBorder(),
		}},
		{&s.DecimalStyle, &excelize.Style{
			CustomNumFmt: &dec,
			Alignment:    &excelize.Alignment{Vertical: "center"},
			Border:       createBorder(),
		}},
		// Shares are stored as percent values, not fractions
		{&s.PercentStyle, &excelize.Style{
			CustomNumFmt: &pct,
			Font:         &excelize.Font{Color: "#757575"},
			Alignment:    &excelize.Alignment{Vertical: "center"},
			Border:       createBorder(),
		}},
		{&s.TotalStyle, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			NumFmt:    3,
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F1F8E9"}, Pattern: 1},
			Alignment: &excelize.Alignment{Vertical: "center"},
			Border:    createBorder(),
		}},
		// Warnings: red text
		{&s.WarnStyle, &excelize.Style{
			Font:      &excelize.Font{Color: "#D32F2F"},
			Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
			Border:    createBorder(),
		}},
		{&s.DefaultStyle, &excelize.Style{
			Alignment: &excelize.Alignment{Vertical: "center"},
			Border:    createBorder(),
		}},
	}

	for _, st := range styles {
		id, err := f.NewStyle(st.style)
		if err != nil {
			return nil, err
		}
		*st.dst = id
	}
	return s, nil
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
