// Package pdf renders the report as a printable PDF with charts.
package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"survey-recon/internal/chart"
	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/logger"
	"survey-recon/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 10.0
	rowHeight  = 6.0
	chartW     = 160.0
	chartH     = 90.0
	font       = "Helvetica"
)

type PDFExporter struct {
	compress bool
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{compress: true}
}

func (e *PDFExporter) Name() string {
	return "pdf"
}

// Export writes <file_name>.pdf: a cover block with highlights, each band
// table with its chart, the indicator tables, the ropes section and a
// warnings appendix
func (e *PDFExporter) Export(r *model.Report, cfg *config.Config) error {
	outputFile := cfg.GetOutputPath("pdf")

	d := newDocument(r, e.compress)
	d.cover(r)

	for i, b := range r.Bands {
		d.grid(common.BandGrid(b))
		img, err := chart.BandChart(b)
		switch {
		case errors.Is(err, chart.ErrNoData):
			logger.Debug("No chart for %s: no counts", b.Name)
		case err != nil:
			return fmt.Errorf("chart for %s: %w", b.Name, err)
		default:
			d.image(fmt.Sprintf("band-%d", i), img)
		}
	}

	for _, s := range r.Indicators {
		d.grid(common.IndicatorGrid(s))
	}

	if r.Ropes != nil {
		d.pdf.AddPage()
		for _, g := range common.RopesGrids(r.Ropes) {
			d.grid(g)
		}
		if img, err := chart.RopesChart(r.Ropes); err == nil {
			d.image("ropes", img)
		} else if !errors.Is(err, chart.ErrNoData) {
			return fmt.Errorf("ropes chart: %w", err)
		}
	}

	if len(r.Warnings) > 0 {
		d.pdf.AddPage()
		d.grid(common.WarningGrid(r.Warnings))
	}

	if err := d.pdf.OutputFileAndClose(outputFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return nil
}

// document wraps fpdf with the report's page setup
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	// usable page width
	width float64
}

func newDocument(r *model.Report, compress bool) *document {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetCompression(compress)
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, 15)
	p.SetTitle(r.Title, true)
	p.SetCreator("survey-recon", true)
	p.SetCreationDate(r.GeneratedAt)
	p.AliasNbPages("")

	d := &document{
		pdf: p,
		// core fonts are cp1252
		tr: p.UnicodeTranslatorFromDescriptor(""),
	}
	pageW, _ := p.GetPageSize()
	d.width = pageW - 2*pageMargin

	p.SetFooterFunc(func() {
		p.SetY(-12)
		p.SetFont(font, "I", 8)
		p.SetTextColor(120, 120, 120)
		p.CellFormat(d.width/2, 8, d.tr(r.Title), "", 0, "L", false, 0, "")
		p.CellFormat(d.width/2, 8, fmt.Sprintf("Page %d of {nb}", p.PageNo()), "", 0, "R", false, 0, "")
	})
	p.AddPage()
	return d
}

func (d *document) cover(r *model.Report) {
	p := d.pdf
	p.SetFont(font, "B", 18)
	p.SetTextColor(46, 125, 50)
	p.MultiCell(0, 9, d.tr(r.Title), "", "L", false)

	p.SetFont(font, "", 10)
	p.SetTextColor(90, 90, 90)
	p.CellFormat(0, rowHeight, d.tr(fmt.Sprintf("Generated %s from %s (layout %s)", r.Date(), r.Source, r.Layout)), "", 1, "L", false, 0, "")
	p.Ln(3)

	highlights := common.Highlights(r)
	if len(highlights) == 0 {
		return
	}
	p.SetTextColor(0, 0, 0)
	p.SetFont(font, "B", 12)
	p.CellFormat(0, 8, "Highlights", "", 1, "L", false, 0, "")
	p.SetFont(font, "", 10)
	for _, h := range highlights {
		p.MultiCell(0, 5, d.tr("- "+h), "", "L", false)
	}
	p.Ln(2)
}

// grid prints a titled table; the first column takes what the numeric
// columns leave
func (d *document) grid(g common.Grid) {
	if len(g.Rows) == 0 {
		return
	}
	p := d.pdf
	widths := d.columnWidths(len(g.Headers))
	numeric := map[int]bool{}
	for _, c := range g.Numeric {
		numeric[c] = true
	}

	// keep the title with at least the header and two rows
	_, pageH := p.GetPageSize()
	if p.GetY()+4*rowHeight+10 > pageH-20 {
		p.AddPage()
	}

	p.Ln(3)
	p.SetFont(font, "B", 12)
	p.SetTextColor(46, 125, 50)
	p.CellFormat(0, 8, d.tr(g.Title), "", 1, "L", false, 0, "")

	p.SetFont(font, "B", 8)
	p.SetTextColor(0, 0, 0)
	p.SetFillColor(224, 224, 224)
	p.SetDrawColor(212, 212, 212)
	for i, h := range g.Headers {
		p.CellFormat(widths[i], rowHeight, d.tr(h), "1", 0, "C", true, 0, "")
	}
	p.Ln(-1)

	p.SetFont(font, "", 8)
	for _, row := range g.Rows {
		for i := range g.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := "L"
			if numeric[i] {
				align = "R"
			}
			p.CellFormat(widths[i], rowHeight, d.tr(cell), "1", 0, align, false, 0, "")
		}
		p.Ln(-1)
	}

	if g.Note != "" {
		p.SetFont(font, "I", 8)
		p.SetTextColor(211, 47, 47)
		p.CellFormat(0, rowHeight, d.tr(g.Note), "", 1, "L", false, 0, "")
		p.SetTextColor(0, 0, 0)
	}
}

func (d *document) columnWidths(n int) []float64 {
	widths := make([]float64, n)
	if n == 1 {
		widths[0] = d.width
		return widths
	}
	w := (d.width - 55) / float64(n-1)
	if w > 30 {
		w = 30
	}
	widths[0] = d.width - w*float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = w
	}
	return widths
}

func (d *document) image(name string, png []byte) {
	p := d.pdf
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))

	// flowing images break the page themselves and advance Y
	p.Ln(2)
	x := pageMargin + (d.width-chartW)/2
	p.ImageOptions(name, x, 0, chartW, chartH, true, opts, 0, "")
}
