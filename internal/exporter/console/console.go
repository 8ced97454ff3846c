// Package console prints the report as lipgloss tables.
package console

import (
	"fmt"
	"io"
	"strings"

	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/model"
	"survey-recon/internal/ui"
)

type ConsoleExporter struct {
	out io.Writer
}

func NewConsoleExporter(out io.Writer) *ConsoleExporter {
	return &ConsoleExporter{out: out}
}

func (e *ConsoleExporter) Name() string {
	return "console"
}

// Export writes one table per band summary, indicator summary and ropes
// section, followed by the warnings
func (e *ConsoleExporter) Export(r *model.Report, cfg *config.Config) error {
	var sb strings.Builder

	sb.WriteString(ui.TitleStyle.Render(r.Title))
	sb.WriteString("\n")
	sb.WriteString(ui.MutedStyle.Render(fmt.Sprintf("%s  |  %s  |  layout %s", r.Date(), r.Source, r.Layout)))
	sb.WriteString("\n")

	for _, h := range common.Highlights(r) {
		sb.WriteString("  * " + h + "\n")
	}

	for _, b := range r.Bands {
		sb.WriteString(Render(common.BandGrid(b)))
	}
	for _, s := range r.Indicators {
		sb.WriteString(Render(common.IndicatorGrid(s)))
	}
	for _, g := range common.RopesGrids(r.Ropes) {
		sb.WriteString(Render(g))
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(ui.WarnStyle.Render(fmt.Sprintf("%d warnings", len(r.Warnings))))
		sb.WriteString("\n")
		for _, w := range r.Warnings {
			sb.WriteString("  " + w.String() + "\n")
		}
	}

	_, err := io.WriteString(e.out, sb.String())
	return err
}

// Render draws one grid as a titled lipgloss table
func Render(g common.Grid) string {
	t := ui.NewTable(g.Title, g.Headers...)
	for _, row := range g.Rows {
		t.AddRow(row...)
	}
	t.AlignRight(g.Numeric...)
	t.Footer = g.Note
	return t.Render()
}
