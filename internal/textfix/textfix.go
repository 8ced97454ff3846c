// Package textfix audits and rewrites the dashboard source text: stale
// labels, emoji, stray whitespace and the fonts it references.
package textfix

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rule replaces one label with another
type Rule struct {
	From string `mapstructure:"from" yaml:"from" json:"from"`
	To   string `mapstructure:"to" yaml:"to" json:"to"`
}

// Kind names a class of audit finding
type Kind string

const (
	KindNonASCII      Kind = "non-ascii"
	KindEmoji         Kind = "emoji"
	KindNBSP          Kind = "nbsp"
	KindDoubleSpace   Kind = "double-space"
	KindTrailingSpace Kind = "trailing-space"
	KindNotNFC        Kind = "not-nfc"
	KindStaleLabel    Kind = "stale-label"
)

// Finding is one problem at a 1-based line and rune column
type Finding struct {
	Line   int
	Column int
	Kind   Kind
	Text   string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d %s %s", f.Line, f.Column, f.Kind, f.Text)
}

// Audit scans text line by line. Rules whose From text is still present
// are reported as stale labels.
func Audit(text string, rules []Rule) []Finding {
	var out []Finding
	for i, line := range splitLines(text) {
		n := i + 1
		out = append(out, charFindings(n, line)...)
		out = append(out, spaceFindings(n, line)...)
		if !norm.NFC.IsNormalString(line) {
			out = append(out, Finding{Line: n, Column: 1, Kind: KindNotNFC, Text: "line is not NFC normalised"})
		}
		for _, r := range rules {
			if r.From == "" {
				continue
			}
			for _, col := range indexAll(line, r.From) {
				out = append(out, Finding{Line: n, Column: col, Kind: KindStaleLabel, Text: fmt.Sprintf("%q -> %q", r.From, r.To)})
			}
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Line != out[b].Line {
			return out[a].Line < out[b].Line
		}
		return out[a].Column < out[b].Column
	})
	return out
}

// Counts groups findings by kind
func Counts(findings []Finding) map[Kind]int {
	m := make(map[Kind]int)
	for _, f := range findings {
		m[f.Kind]++
	}
	return m
}

// charFindings reports emoji, non-breaking spaces and other non-ASCII runes
func charFindings(line int, text string) []Finding {
	var out []Finding
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r < 0x80:
		case r == '\u00a0':
			out = append(out, Finding{Line: line, Column: i + 1, Kind: KindNBSP, Text: "U+00A0"})
		case emoji.Contains(r):
			end := clusterEnd(rs, i)
			out = append(out, Finding{Line: line, Column: i + 1, Kind: KindEmoji, Text: string(rs[i:end])})
			i = end - 1
		case joiners.Contains(r):
			out = append(out, Finding{Line: line, Column: i + 1, Kind: KindEmoji, Text: fmt.Sprintf("U+%04X", r)})
		default:
			out = append(out, Finding{Line: line, Column: i + 1, Kind: KindNonASCII, Text: fmt.Sprintf("%q U+%04X", r, r)})
		}
	}
	return out
}

// FixLabels applies the rules in order. counts[i] is the number of
// replacements made by rules[i].
func FixLabels(text string, rules []Rule) (string, []int) {
	counts := make([]int, len(rules))
	for i, r := range rules {
		if r.From == "" || r.From == r.To {
			continue
		}
		counts[i] = strings.Count(text, r.From)
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return text, counts
}

// ValidateRules rejects empty or repeated From values
func ValidateRules(rules []Rule) error {
	seen := make(map[string]bool)
	for i, r := range rules {
		if r.From == "" {
			return fmt.Errorf("label rule %d has an empty from", i+1)
		}
		if seen[r.From] {
			return fmt.Errorf("label rule %d repeats %q", i+1, r.From)
		}
		seen[r.From] = true
	}
	return nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// indexAll returns the 1-based rune columns of every occurrence of sub
func indexAll(s, sub string) []int {
	var cols []int
	offset := 0
	for {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return cols
		}
		pos := offset + i
		cols = append(cols, len([]rune(s[:pos]))+1)
		offset = pos + len(sub)
	}
}
