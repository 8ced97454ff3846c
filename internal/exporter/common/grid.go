package common

import (
	"fmt"

	"survey-recon/internal/model"
)

// Grid is a rendered table: every cell is already formatted text.
// Numeric lists the columns that should be right-aligned.
type Grid struct {
	Title   string
	Headers []string
	Rows    [][]string
	Numeric []int
	Note    string
}

func numericFrom(first, n int) []int {
	cols := make([]int, 0, n)
	for i := first; i < first+n; i++ {
		cols = append(cols, i)
	}
	return cols
}

// BandGrid lays out a band summary: one row per band with count and share,
// followed by total, change, dominant band and estimated mean rows
func BandGrid(s model.BandSummary) Grid {
	g := Grid{
		Title:   WithUnit(s.Title, s.Unit),
		Headers: append([]string{"Band"}, s.Quarters...),
		Numeric: numericFrom(1, len(s.Quarters)),
	}

	for _, b := range s.Bands {
		row := []string{b.Label}
		for q := range s.Quarters {
			if !b.Counts[q].Valid {
				row = append(row, Missing)
				continue
			}
			row = append(row, fmt.Sprintf("%s (%s)", FormatNumber(b.Counts[q].Amount), FormatPercent(b.Shares[q])))
		}
		g.Rows = append(g.Rows, row)
	}

	total := []string{"Total"}
	change := []string{"Change"}
	dominant := []string{"Most common"}
	mean := []string{"Estimated mean"}
	for q := range s.Quarters {
		if s.QuarterReported(q) {
			total = append(total, FormatNumber(s.Totals[q]))
		} else {
			total = append(total, Missing)
		}
		c := FormatChange(s.Change[q])
		if s.ChangePct[q].Valid {
			c += " (" + FormatChangePct(s.ChangePct[q]) + ")"
		}
		change = append(change, c)
		dominant = append(dominant, orMissing(s.Dominant[q]))
		mean = append(mean, FormatValue(s.MeanEstimate[q]))
	}
	g.Rows = append(g.Rows, total, change, dominant, mean)
	return g
}

// IndicatorGrid lays out an indicator summary with first-to-latest change columns
func IndicatorGrid(s model.IndicatorSummary) Grid {
	headers := append([]string{"Indicator"}, s.Quarters...)
	g := Grid{
		Title:   WithUnit(s.Title, s.Unit),
		Headers: append(headers, "Change", "Change %"),
		Numeric: numericFrom(1, len(s.Quarters)+2),
	}

	for _, r := range s.Rows {
		row := []string{r.Label}
		for _, v := range r.Values {
			row = append(row, FormatValue(v))
		}
		row = append(row, FormatChange(r.Change), FormatChangePct(r.ChangePct))
		g.Rows = append(g.Rows, row)
	}
	return g
}

// RopesGrids lays out the ropes overview, group, gender and distribution tables
func RopesGrids(r *model.RopesSummary) []Grid {
	if r == nil {
		return nil
	}

	overview := Grid{
		Title:   "Seaweed ropes",
		Headers: []string{"Measure", "Value"},
		Numeric: []int{1},
		Rows: [][]string{
			{"Members", FormatNumber(float64(r.Members))},
			{"Total ropes", FormatNumber(r.TotalRopes)},
			{"Mean ropes per member", FormatNumber(r.Mean)},
			{"Median", FormatNumber(r.Median)},
			{"Standard deviation", FormatNumber(r.StdDev)},
			{"Range", FormatNumber(r.Min) + " - " + FormatNumber(r.Max)},
			{"Members with no ropes", FormatNumber(float64(r.ZeroRopes))},
		},
	}
	if r.HasHarvest {
		overview.Rows = append(overview.Rows,
			[]string{"Total harvest (kg)", FormatNumber(r.TotalHarvest)},
			[]string{"Harvest per rope (kg)", FormatValue(r.HarvestPerRope)})
	}
	if r.Skipped > 0 {
		overview.Note = fmt.Sprintf("%d rows without a usable ropes value were skipped", r.Skipped)
	}

	grids := []Grid{overview}
	if len(r.Groups) > 0 {
		grids = append(grids, groupGrid("Ropes by group", "Group", r.Groups))
	}
	if len(r.Genders) > 0 {
		grids = append(grids, groupGrid("Ropes by gender", "Gender", r.Genders))
	}

	dist := Grid{
		Title:   "Ropes per member",
		Headers: []string{"Ropes", "Members", "Share"},
		Numeric: []int{1, 2},
	}
	for _, b := range r.Distribution {
		dist.Rows = append(dist.Rows, []string{b.Label, FormatNumber(float64(b.Members)), FormatPercent(b.Share)})
	}
	return append(grids, dist)
}

func groupGrid(title, label string, groups []model.RopesGroup) Grid {
	g := Grid{
		Title:   title,
		Headers: []string{label, "Members", "Ropes", "Mean"},
		Numeric: []int{1, 2, 3},
	}
	for _, gr := range groups {
		g.Rows = append(g.Rows, []string{
			gr.Name,
			FormatNumber(float64(gr.Members)),
			FormatNumber(gr.Ropes),
			FormatNumber(gr.Mean),
		})
	}
	return g
}

// WarningGrid lists cell warnings, or returns an empty grid when there are none
func WarningGrid(ws []model.Warning) Grid {
	g := Grid{Title: "Warnings", Headers: []string{"Table", "Sheet", "Cell", "Detail"}}
	for _, w := range ws {
		g.Rows = append(g.Rows, []string{w.Table, w.Sheet, orMissing(w.Cell), w.Message})
	}
	return g
}

// Highlights are short sentences for the report cover: latest totals and
// dominant bands
func Highlights(r *model.Report) []string {
	var out []string
	for _, b := range r.Bands {
		last := b.LatestReported()
		if last < 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s groups reported in %s, most in %s.",
			b.Title, FormatNumber(b.Totals[last]), b.Quarters[last], orMissing(b.Dominant[last])))
	}
	for _, s := range r.Indicators {
		for _, row := range s.Rows {
			if !row.Change.Valid || !row.ChangePct.Valid {
				continue
			}
			out = append(out, fmt.Sprintf("%s: %s (%s to %s, %s).",
				row.Label, FormatValue(row.Latest), row.FirstQuarter, row.LatestQuarter, FormatChangePct(row.ChangePct)))
			break
		}
	}
	if r.Ropes != nil && r.Ropes.Members > 0 {
		out = append(out, fmt.Sprintf("Seaweed: %s members farm %s ropes, %s per member on average.",
			FormatNumber(float64(r.Ropes.Members)), FormatNumber(r.Ropes.TotalRopes), FormatNumber(r.Ropes.Mean)))
	}
	return out
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}
