package analysis

import "survey-recon/internal/model"

// SummarizeIndicators finds the first and latest reported value of every
// indicator and the change between them.
func SummarizeIndicators(t *model.Table) model.IndicatorSummary {
	s := model.IndicatorSummary{
		Name:     t.Name,
		Title:    t.Title,
		Unit:     t.Unit,
		Quarters: t.Quarters,
		Rows:     []model.IndicatorRow{},
	}

	for _, row := range t.Rows {
		ir := model.IndicatorRow{
			Label:  row.Label,
			Values: padValues(row.Values, len(t.Quarters)),
		}

		for q, v := range ir.Values {
			if !v.Valid {
				continue
			}
			ir.Reported++
			if !ir.First.Valid {
				ir.First = v
				ir.FirstQuarter = t.Quarters[q]
			}
			ir.Latest = v
			ir.LatestQuarter = t.Quarters[q]
		}

		if ir.Reported > 1 {
			ir.Change = model.Num(ir.Latest.Amount - ir.First.Amount)
			if ir.First.Amount != 0 {
				ir.ChangePct = model.Num((ir.Latest.Amount - ir.First.Amount) / ir.First.Amount * 100)
			}
		}

		s.Rows = append(s.Rows, ir)
	}

	return s
}

// Summarize splits a dataset into band and indicator summaries, in layout order
func Summarize(ds *model.Dataset) ([]model.BandSummary, []model.IndicatorSummary) {
	var bands []model.BandSummary
	var indicators []model.IndicatorSummary

	for _, t := range ds.Tables {
		switch t.Kind {
		case model.KindBand:
			bands = append(bands, SummarizeBands(t))
		case model.KindIndicator:
			indicators = append(indicators, SummarizeIndicators(t))
		}
	}
	return bands, indicators
}
