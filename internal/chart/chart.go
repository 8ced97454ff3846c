// Package chart renders the report's bar charts as PNG images
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"survey-recon/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Image size of every chart
var (
	Width  = 16 * vg.Centimeter
	Height = 9 * vg.Centimeter
)

// ErrNoData is returned for summaries with nothing to draw
var ErrNoData = errors.New("no data to chart")

// BandChart draws one group of bars per band, one bar per quarter
func BandChart(s model.BandSummary) ([]byte, error) {
	if len(s.Bands) == 0 || len(s.Quarters) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.Y.Label.Text = "Groups"
	p.Legend.Top = true

	labels := make([]string, len(s.Bands))
	for i, b := range s.Bands {
		labels[i] = b.Label
	}

	n := len(s.Quarters)
	barWidth := vg.Points(48 / float64(n))
	for q, quarter := range s.Quarters {
		values := make(plotter.Values, len(s.Bands))
		for i, b := range s.Bands {
			if q < len(b.Counts) && b.Counts[q].Valid {
				values[i] = b.Counts[q].Amount
			}
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to build bars for %s: %w", quarter, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(q)
		bars.Offset = barWidth * vg.Length(float64(q)-float64(n-1)/2)

		p.Add(bars)
		p.Legend.Add(quarter, bars)
	}
	p.NominalX(labels...)

	return render(p)
}

// RopesChart draws the members-per-band distribution
func RopesChart(s *model.RopesSummary) ([]byte, error) {
	if s == nil || len(s.Distribution) == 0 || s.Members == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Ropes per member"
	p.X.Label.Text = "Ropes"
	p.Y.Label.Text = "Members"

	values := make(plotter.Values, len(s.Distribution))
	labels := make([]string, len(s.Distribution))
	for i, b := range s.Distribution {
		values[i] = float64(b.Members)
		labels[i] = b.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("failed to build ropes bars: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(2)

	p.Add(bars)
	p.NominalX(labels...)

	return render(p)
}

func render(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
