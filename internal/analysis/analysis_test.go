package analysis

import (
	"testing"

	"survey-recon/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBand(t *testing.T) {
	tests := []struct {
		label string
		want  model.BandRange
		ok    bool
	}{
		{"0 - 10,000", model.BandRange{Lower: 0, Upper: 10000}, true},
		{"10,001 – 25,000", model.BandRange{Lower: 10001, Upper: 25000}, true},
		{"TZS 50,001 to 100,000", model.BandRange{Lower: 50001, Upper: 100000}, true},
		{"< 15", model.BandRange{Upper: 15, OpenLow: true}, true},
		{"Below 10,000", model.BandRange{Upper: 10000, OpenLow: true}, true},
		{"less than 5 ropes", model.BandRange{Upper: 5, OpenLow: true}, true},
		{"> 500,000", model.BandRange{Lower: 500000, OpenHigh: true}, true},
		{"Above 30 members", model.BandRange{Lower: 30, OpenHigh: true}, true},
		{"51+", model.BandRange{Lower: 51, OpenHigh: true}, true},
		{"0", model.BandRange{Lower: 0, Upper: 0}, true},
		{"25 - 20", model.BandRange{Lower: 20, Upper: 25}, true},
		{"No savings yet", model.BandRange{}, false},
		{"", model.BandRange{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseBand(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 5000.0, model.BandRange{Lower: 0, Upper: 10000}.Midpoint())
	assert.Equal(t, 7.5, model.BandRange{Upper: 15, OpenLow: true}.Midpoint())
	assert.Equal(t, 500000.0, model.BandRange{Lower: 500000, OpenHigh: true}.Midpoint())
}

func bandTable() *model.Table {
	return &model.Table{
		Name:     "group_size",
		Title:    "Members per group",
		Kind:     model.KindBand,
		Quarters: []string{"Q1", "Q2", "Q3"},
		Rows: []model.Row{
			{Label: "< 10", Values: []model.Value{model.Num(2), model.Num(0), model.Num(0)}},
			{Label: "10 - 20", Values: []model.Value{model.Num(6), model.Num(5), model.Missing()}},
			{Label: "> 20", Values: []model.Value{model.Num(2), model.Num(5)}},
		},
	}
}

func TestSummarizeBands(t *testing.T) {
	s := SummarizeBands(bandTable())

	require.Len(t, s.Bands, 3)
	assert.Equal(t, []float64{10, 10, 0}, s.Totals)
	assert.Equal(t, "10 - 20", s.Dominant[0])
	// first max wins on a tie
	assert.Equal(t, "10 - 20", s.Dominant[1])
	assert.Equal(t, "< 10", s.Dominant[2])

	assert.InDelta(t, 60.0, s.Bands[1].Shares[0], 1e-9)
	assert.InDelta(t, 50.0, s.Bands[2].Shares[1], 1e-9)
	assert.Equal(t, 0.0, s.Bands[0].Shares[2], "shares are zero when the quarter total is zero")

	// short rows are padded with missing values
	require.Len(t, s.Bands[2].Counts, 3)
	assert.False(t, s.Bands[2].Counts[2].Valid)

	assert.False(t, s.Change[0].Valid)
	assert.Equal(t, model.Num(0), s.Change[1])
	assert.Equal(t, model.Num(0), s.ChangePct[1])
	assert.Equal(t, model.Num(-10), s.Change[2])
	assert.Equal(t, model.Num(-100), s.ChangePct[2])

	// (2*5 + 6*15 + 2*20) / 10
	require.True(t, s.MeanEstimate[0].Valid)
	assert.InDelta(t, 14.0, s.MeanEstimate[0].Amount, 1e-9)
	assert.False(t, s.MeanEstimate[2].Valid, "no estimate for an empty quarter")
}

func TestSummarizeBandsUnparsedLabel(t *testing.T) {
	table := bandTable()
	table.Rows[1].Label = "Medium groups"

	s := SummarizeBands(table)
	assert.Nil(t, s.Bands[1].Range)
	for _, m := range s.MeanEstimate {
		assert.False(t, m.Valid)
	}
	assert.Equal(t, []float64{10, 10, 0}, s.Totals)
}

func TestSummarizeBandsPreviousTotalZero(t *testing.T) {
	table := &model.Table{
		Quarters: []string{"Q1", "Q2"},
		Rows: []model.Row{
			{Label: "0 - 5", Values: []model.Value{model.Num(0), model.Num(4)}},
		},
	}
	s := SummarizeBands(table)
	assert.Equal(t, model.Num(4), s.Change[1])
	assert.False(t, s.ChangePct[1].Valid)
}

func TestSummarizeBandsUncollectedQuarter(t *testing.T) {
	table := &model.Table{
		Quarters: []string{"Q1", "Q2", "Q3", "Q4"},
		Rows: []model.Row{
			{Label: "0 - 5", Values: []model.Value{model.Num(5), model.Missing(), model.Num(4), model.Missing()}},
			{Label: "6 - 10", Values: []model.Value{model.Num(10), model.Missing(), model.Num(6)}},
		},
	}

	s := SummarizeBands(table)
	assert.Equal(t, []bool{true, false, true, false}, s.Reported)
	assert.Equal(t, []float64{15, 0, 10, 0}, s.Totals)
	assert.Equal(t, "", s.Dominant[1])

	// neither the blank quarter nor the one after it has a change
	for q := 1; q < 4; q++ {
		assert.False(t, s.Change[q].Valid, "change in %s", table.Quarters[q])
		assert.False(t, s.ChangePct[q].Valid, "change %% in %s", table.Quarters[q])
	}
	assert.False(t, s.MeanEstimate[3].Valid)

	assert.Equal(t, 2, s.LatestReported())
	assert.True(t, s.QuarterReported(2))
	assert.False(t, s.QuarterReported(3))
}

func TestSummarizeEmptyTables(t *testing.T) {
	empty := &model.Table{Name: "empty", Quarters: []string{"Q1", "Q2"}}

	bands := SummarizeBands(empty)
	require.NotNil(t, bands.Bands)
	assert.Empty(t, bands.Bands)
	assert.Equal(t, -1, bands.LatestReported())

	indicators := SummarizeIndicators(empty)
	require.NotNil(t, indicators.Rows)
	assert.Empty(t, indicators.Rows)
}

func TestSummarizeIndicators(t *testing.T) {
	table := &model.Table{
		Name:     "vsla_indicators",
		Kind:     model.KindIndicator,
		Quarters: []string{"Q1", "Q2", "Q3", "Q4"},
		Rows: []model.Row{
			{Label: "Number of groups", Values: []model.Value{model.Num(40), model.Num(44), model.Missing(), model.Num(50)}},
			{Label: "Loans outstanding", Values: []model.Value{model.Missing(), model.Num(0), model.Num(1200)}},
			{Label: "Social fund", Values: []model.Value{model.Missing(), model.Missing(), model.Num(30)}},
			{Label: "Dormant groups", Values: nil},
		},
	}

	s := SummarizeIndicators(table)
	require.Len(t, s.Rows, 4)

	groups := s.Rows[0]
	assert.Equal(t, 3, groups.Reported)
	assert.Equal(t, "Q1", groups.FirstQuarter)
	assert.Equal(t, "Q4", groups.LatestQuarter)
	assert.Equal(t, model.Num(10), groups.Change)
	assert.Equal(t, model.Num(25), groups.ChangePct)

	loans := s.Rows[1]
	assert.Equal(t, "Q2", loans.FirstQuarter)
	assert.Equal(t, model.Num(1200), loans.Change)
	assert.False(t, loans.ChangePct.Valid, "no percent change from zero")

	fund := s.Rows[2]
	assert.Equal(t, 1, fund.Reported)
	assert.False(t, fund.Change.Valid, "a single value has no change")

	dormant := s.Rows[3]
	assert.Equal(t, 0, dormant.Reported)
	assert.Len(t, dormant.Values, 4)
}

func TestSummarize(t *testing.T) {
	ds := &model.Dataset{Tables: []*model.Table{
		bandTable(),
		{Name: "forestry", Kind: model.KindIndicator, Quarters: []string{"Q1"}},
	}}

	bands, indicators := Summarize(ds)
	require.Len(t, bands, 1)
	require.Len(t, indicators, 1)
	assert.Equal(t, "group_size", bands[0].Name)
	assert.Equal(t, "forestry", indicators[0].Name)
}
