package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	ColorAccent = lipgloss.Color("#2E7D32") // forest green
	ColorMuted  = lipgloss.Color("#9E9E9E")
	ColorWarn   = lipgloss.Color("#FFC107")

	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginTop(1)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	CellStyle   = lipgloss.NewStyle().Padding(0, 1)
	NumberStyle = CellStyle.Align(lipgloss.Right)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
)

// Table is a titled grid rendered with lipgloss.
// Columns listed in Numeric are right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Numeric map[int]bool
	Footer  string
}

// NewTable creates an empty table
func NewTable(title string, headers ...string) *Table {
	return &Table{Title: title, Headers: headers, Numeric: map[int]bool{}}
}

// AddRow appends one row, padding or trimming it to the header width
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// AlignRight marks columns as numeric
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.Numeric[c] = true
	}
	return t
}

// Render returns the table as a string. An empty table renders as "".
func (t *Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(MutedStyle).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case t.Numeric[col]:
				return NumberStyle
			default:
				return CellStyle
			}
		})

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(TitleStyle.Render(t.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(grid.Render())
	sb.WriteString("\n")
	if t.Footer != "" {
		sb.WriteString(MutedStyle.Render(t.Footer))
		sb.WriteString("\n")
	}
	return sb.String()
}
