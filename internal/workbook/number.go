package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// placeholders that surveyors type into cells with no data
var blankMarkers = map[string]bool{
	"":    true,
	"-":   true,
	"–":   true,
	"—":   true,
	"--":  true,
	"n/a": true,
	"na":  true,
	"nil": true,
	".":   true,
}

// longest first, so "tshs" is not cut down to "s"
var currencyMarkers = []string{"tshs", "tzs", "tsh", "usd", "$"}

// ParseNumber converts a survey cell into a number.
// ok is false for blank cells and placeholders; err is set for text that is not a number.
func ParseNumber(text string) (value float64, ok bool, err error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "\u00a0", " ")
	if blankMarkers[s] {
		return 0, false, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, c := range currencyMarkers {
		s = strings.TrimSpace(strings.TrimPrefix(s, c))
		s = strings.TrimSpace(strings.TrimSuffix(s, c))
	}

	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false, nil
	}

	value, err = strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, fmt.Errorf("not a number: %q", text)
	}
	if negative {
		value = -value
	}
	return value, true, nil
}
