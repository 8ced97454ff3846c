package chart

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"survey-recon/internal/model"
)

func TestBandChartIsPNG(t *testing.T) {
	s := model.BandSummary{
		Title:    "Savings per member",
		Quarters: []string{"Q1", "Q2"},
		Bands: []model.BandRow{
			{Label: "0 - 10,000", Counts: []model.Value{model.Num(14), model.Num(12)}},
			{Label: "> 10,000", Counts: []model.Value{model.Num(3), model.Missing()}},
		},
	}

	data, err := BandChart(s)
	if err != nil {
		t.Fatalf("BandChart failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Errorf("empty image %v", b)
	}
}

func TestRopesChartIsPNG(t *testing.T) {
	s := &model.RopesSummary{
		Members: 3,
		Distribution: []model.RopesBin{
			{Label: "0", Members: 1},
			{Label: "1-10", Members: 2},
		},
	}

	data, err := RopesChart(s)
	if err != nil {
		t.Fatalf("RopesChart failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}

func TestNoData(t *testing.T) {
	if _, err := BandChart(model.BandSummary{}); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if _, err := RopesChart(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if _, err := RopesChart(&model.RopesSummary{Distribution: []model.RopesBin{{Label: "0"}}}); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData for zero members, got %v", err)
	}
}
