// Package common holds the number formatting and table layouts shared by
// every exporter, so the console, PDF, Word and HTML outputs agree.
package common

import (
	"math"
	"strings"

	"survey-recon/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Missing is printed in place of a missing value
const Missing = "-"

// FormatNumber groups thousands and drops trailing zero decimals:
// 1234567 -> "1,234,567", 7.50 -> "7.5"
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	if v == math.Trunc(v) {
		return printer.Sprintf("%.0f", v)
	}
	s := printer.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatValue prints a survey value, or "-" when it is missing
func FormatValue(v model.Value) string {
	if !v.Valid {
		return Missing
	}
	return FormatNumber(v.Amount)
}

// FormatPercent prints a share with one decimal: "27.5%"
func FormatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

// FormatChange prints a signed difference: "+3", "-10", "0"
func FormatChange(v model.Value) string {
	if !v.Valid {
		return Missing
	}
	if v.Amount > 0 {
		return "+" + FormatNumber(v.Amount)
	}
	return FormatNumber(v.Amount)
}

// FormatChangePct prints a signed percent change: "+25.0%"
func FormatChangePct(v model.Value) string {
	if !v.Valid {
		return Missing
	}
	if v.Amount > 0 {
		return "+" + FormatPercent(v.Amount)
	}
	return FormatPercent(v.Amount)
}

// WithUnit appends a unit to a title: "Loan size (TZS)"
func WithUnit(title, unit string) string {
	if unit == "" || strings.Contains(strings.ToLower(title), strings.ToLower(unit)) {
		return title
	}
	return title + " (" + unit + ")"
}
