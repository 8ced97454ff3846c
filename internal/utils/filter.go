package utils

import (
	"regexp"
	"strings"
)

var totalQualifierRe = regexp.MustCompile(`^(?:total|jumla)\s*[(:\-–]`)

// LabelKind classifies the text found in a table's label column
type LabelKind int

const (
	LabelData  LabelKind = iota // a band or indicator
	LabelBlank                  // empty or whitespace-only
	LabelTotal                  // "Total", "Grand total", "TOTAL (all groups)"
	LabelNote                   // "Source: ...", "Note: ...", "* excludes ..."
)

// ClassifyLabel applies the filtering rules shared by every table reader
func ClassifyLabel(label string) LabelKind {
	// RULE 1: Empty or whitespace-only labels
	trimmed := strings.TrimSpace(strings.ReplaceAll(label, "\u00a0", " "))
	if trimmed == "" {
		return LabelBlank
	}

	lower := strings.ToLower(trimmed)

	// RULE 2: Footnotes and annotations
	if strings.HasPrefix(lower, "*") {
		return LabelNote
	}
	notePrefixes := []string{"source:", "source -", "note:", "notes:", "nb:", "n.b.", "comment:"}
	for _, prefix := range notePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return LabelNote
		}
	}

	// RULE 3: Total rows
	totals := map[string]bool{
		"total":       true,
		"totals":      true,
		"grand total": true,
		"sum":         true,
		"jumla":       true, // Swahili sheets
	}
	if totals[lower] {
		return LabelTotal
	}
	// "Total (all groups)" is a total row, "Total savings" is an indicator
	if strings.HasPrefix(lower, "grand total") || totalQualifierRe.MatchString(lower) {
		return LabelTotal
	}

	return LabelData
}
