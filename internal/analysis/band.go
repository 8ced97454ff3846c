package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"survey-recon/internal/model"
)

var (
	numberPattern = `([0-9][0-9,]*(?:\.[0-9]+)?)`

	rangeRe     = regexp.MustCompile(`^` + numberPattern + `\s*(?:-|–|—|to)\s*` + numberPattern + `$`)
	lessRe      = regexp.MustCompile(`^(?:<|≤|<=|below|under|less than|up to)\s*` + numberPattern + `$`)
	moreRe      = regexp.MustCompile(`^(?:>|≥|>=|above|over|more than)\s*` + numberPattern + `$`)
	plusRe      = regexp.MustCompile(`^` + numberPattern + `\s*(?:\+|and above|or more)$`)
	singleRe    = regexp.MustCompile(`^` + numberPattern + `$`)
	unitNoiseRe = regexp.MustCompile(`(?i)\b(tzs|tshs?|usd|members?|ropes?)\b|\$`)
)

// ParseBand reads the numeric interval out of a band label such as
// "10,001 - 25,000", "< 15", "> 500,000" or "51+".
func ParseBand(label string) (model.BandRange, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	s = unitNoiseRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	if m := rangeRe.FindStringSubmatch(s); m != nil {
		lo, hi := parseNum(m[1]), parseNum(m[2])
		if hi < lo {
			lo, hi = hi, lo
		}
		return model.BandRange{Lower: lo, Upper: hi}, true
	}
	if m := lessRe.FindStringSubmatch(s); m != nil {
		return model.BandRange{Upper: parseNum(m[1]), OpenLow: true}, true
	}
	if m := moreRe.FindStringSubmatch(s); m != nil {
		return model.BandRange{Lower: parseNum(m[1]), OpenHigh: true}, true
	}
	if m := plusRe.FindStringSubmatch(s); m != nil {
		return model.BandRange{Lower: parseNum(m[1]), OpenHigh: true}, true
	}
	if m := singleRe.FindStringSubmatch(s); m != nil {
		v := parseNum(m[1])
		return model.BandRange{Lower: v, Upper: v}, true
	}
	return model.BandRange{}, false
}

func parseNum(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

// SummarizeBands derives totals, shares, the dominant band, quarter-over-quarter
// change and a midpoint-weighted mean for every quarter of a band table.
func SummarizeBands(t *model.Table) model.BandSummary {
	n := len(t.Quarters)
	s := model.BandSummary{
		Name:         t.Name,
		Title:        t.Title,
		Unit:         t.Unit,
		Quarters:     t.Quarters,
		Bands:        []model.BandRow{},
		Totals:       make([]float64, n),
		Reported:     make([]bool, n),
		Dominant:     make([]string, n),
		Change:       make([]model.Value, n),
		ChangePct:    make([]model.Value, n),
		MeanEstimate: make([]model.Value, n),
	}

	allParsed := len(t.Rows) > 0
	for _, row := range t.Rows {
		band := model.BandRow{
			Label:  row.Label,
			Counts: padValues(row.Values, n),
			Shares: make([]float64, n),
		}
		if r, ok := ParseBand(row.Label); ok {
			rng := r
			band.Range = &rng
		} else {
			allParsed = false
		}
		s.Bands = append(s.Bands, band)
	}

	for q := 0; q < n; q++ {
		best := -1.0
		weighted := 0.0
		for _, b := range s.Bands {
			c := b.Counts[q]
			if !c.Valid {
				continue
			}
			s.Reported[q] = true
			s.Totals[q] += c.Amount
			if c.Amount > best {
				best = c.Amount
				s.Dominant[q] = b.Label
			}
			if b.Range != nil {
				weighted += b.Range.Midpoint() * c.Amount
			}
		}

		total := s.Totals[q]
		for i := range s.Bands {
			c := s.Bands[i].Counts[q]
			if c.Valid && total > 0 {
				s.Bands[i].Shares[q] = c.Amount / total * 100
			}
		}

		if allParsed && total > 0 {
			s.MeanEstimate[q] = model.Num(weighted / total)
		}

		// a quarter with no counts at all has not been collected, it is not a drop to zero
		if q > 0 && s.Reported[q] && s.Reported[q-1] {
			prev := s.Totals[q-1]
			s.Change[q] = model.Num(total - prev)
			if prev != 0 {
				s.ChangePct[q] = model.Num((total - prev) / prev * 100)
			}
		}
	}

	return s
}

func padValues(values []model.Value, n int) []model.Value {
	out := make([]model.Value, n)
	copy(out, values)
	return out
}
