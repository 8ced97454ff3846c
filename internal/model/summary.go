package model

import "time"

// BandRange is the numeric interval parsed from a band label
type BandRange struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	OpenLow  bool    `json:"open_low,omitempty"`  // "< 15", "below 10,000"
	OpenHigh bool    `json:"open_high,omitempty"` // "> 500,000", "51+"
}

// Midpoint is the representative value used for the mean estimate
func (b BandRange) Midpoint() float64 {
	switch {
	case b.OpenHigh:
		return b.Lower
	case b.OpenLow:
		return b.Upper / 2
	default:
		return (b.Lower + b.Upper) / 2
	}
}

// BandRow is one band with its counts and quarter shares
type BandRow struct {
	Label  string     `json:"label"`
	Range  *BandRange `json:"range,omitempty"`
	Counts []Value    `json:"counts"`
	Shares []float64  `json:"shares"` // percent of the quarter total
}

// BandSummary is the analysed form of a band table
type BandSummary struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Unit     string    `json:"unit,omitempty"`
	Quarters []string  `json:"quarters"`
	Bands    []BandRow `json:"bands"`

	Totals       []float64 `json:"totals"`
	Reported     []bool    `json:"reported"`      // whether any band had a count in the quarter
	Dominant     []string  `json:"dominant"`      // band with the highest count per quarter
	Change       []Value   `json:"change"`        // total change against the previous quarter
	ChangePct    []Value   `json:"change_pct"`    // same change in percent
	MeanEstimate []Value   `json:"mean_estimate"` // midpoint-weighted mean per quarter
}

// QuarterReported tells whether quarter q holds any count. Summaries built
// without Reported fall back to a non-zero total.
func (s BandSummary) QuarterReported(q int) bool {
	if q < len(s.Reported) {
		return s.Reported[q]
	}
	return q < len(s.Totals) && s.Totals[q] != 0
}

// LatestReported is the last quarter with any count, -1 when there is none
func (s BandSummary) LatestReported() int {
	for q := len(s.Quarters) - 1; q >= 0; q-- {
		if s.QuarterReported(q) {
			return q
		}
	}
	return -1
}

// IndicatorRow is one indicator across quarters
type IndicatorRow struct {
	Label         string  `json:"label"`
	Values        []Value `json:"values"`
	First         Value   `json:"first"`
	FirstQuarter  string  `json:"first_quarter,omitempty"`
	Latest        Value   `json:"latest"`
	LatestQuarter string  `json:"latest_quarter,omitempty"`
	Change        Value   `json:"change"`
	ChangePct     Value   `json:"change_pct"`
	Reported      int     `json:"reported"` // quarters with a value
}

// IndicatorSummary is the analysed form of an indicator table
type IndicatorSummary struct {
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	Unit     string         `json:"unit,omitempty"`
	Quarters []string       `json:"quarters"`
	Rows     []IndicatorRow `json:"rows"`
}

// Report is the complete input for every exporter
type Report struct {
	Title       string             `json:"title"`
	GeneratedAt time.Time          `json:"generated_at"`
	Source      string             `json:"source"`
	Layout      string             `json:"layout"`
	Bands       []BandSummary      `json:"band_tables"`
	Indicators  []IndicatorSummary `json:"indicators"`
	Ropes       *RopesSummary      `json:"ropes,omitempty"`
	Warnings    []Warning          `json:"warnings"`
}

// Date formats GeneratedAt the way reports print it
func (r *Report) Date() string {
	return r.GeneratedAt.Format("2006-01-02")
}
