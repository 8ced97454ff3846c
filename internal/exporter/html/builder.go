package html

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"os"

	"survey-recon/internal/chart"
	"survey-recon/internal/config"
	"survey-recon/internal/exporter/common"
	"survey-recon/internal/logger"
	"survey-recon/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

func (e *HTMLExporter) Name() string {
	return "html"
}

// ReportData feeds ReportTemplate
type ReportData struct {
	Title      string
	Date       string
	Source     string
	Layout     string
	Highlights []string
	Sections   []Section
}

// Section is one card: a table with an optional inline chart
type Section struct {
	Grid        common.Grid
	NumericCols map[int]bool
	Chart       template.URL
	Warning     bool
}

func newSection(g common.Grid) Section {
	cols := make(map[int]bool, len(g.Numeric))
	for _, c := range g.Numeric {
		cols[c] = true
	}
	return Section{Grid: g, NumericCols: cols}
}

// BuildData lays the report out as sections, rendering charts as data URIs
func BuildData(r *model.Report) (ReportData, error) {
	data := ReportData{
		Title:      r.Title,
		Date:       r.Date(),
		Source:     r.Source,
		Layout:     r.Layout,
		Highlights: common.Highlights(r),
	}

	for _, b := range r.Bands {
		s := newSection(common.BandGrid(b))
		img, err := chart.BandChart(b)
		switch {
		case errors.Is(err, chart.ErrNoData):
			logger.Debug("No chart for %s: no counts", b.Name)
		case err != nil:
			return data, fmt.Errorf("chart for %s: %w", b.Name, err)
		default:
			s.Chart = dataURI(img)
		}
		data.Sections = append(data.Sections, s)
	}

	for _, ind := range r.Indicators {
		data.Sections = append(data.Sections, newSection(common.IndicatorGrid(ind)))
	}

	if r.Ropes != nil {
		grids := common.RopesGrids(r.Ropes)
		for i, g := range grids {
			s := newSection(g)
			// the distribution grid comes last and carries the chart
			if i == len(grids)-1 {
				if img, err := chart.RopesChart(r.Ropes); err == nil {
					s.Chart = dataURI(img)
				} else if !errors.Is(err, chart.ErrNoData) {
					return data, fmt.Errorf("ropes chart: %w", err)
				}
			}
			data.Sections = append(data.Sections, s)
		}
	}

	if len(r.Warnings) > 0 {
		s := newSection(common.WarningGrid(r.Warnings))
		s.Warning = true
		data.Sections = append(data.Sections, s)
	}
	return data, nil
}

func dataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func (e *HTMLExporter) Export(r *model.Report, cfg *config.Config) error {
	data, err := BuildData(r)
	if err != nil {
		return err
	}

	tmpl, err := template.New("survey-report").Parse(ReportTemplate)
	if err != nil {
		return err
	}

	outputFile := cfg.GetOutputPath("html")
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputFile, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}
