package textfix

import "strings"

// FindSpaces reports non-breaking spaces, repeated spaces inside a line
// and trailing whitespace
func FindSpaces(text string) []Finding {
	var out []Finding
	for i, line := range splitLines(text) {
		for _, f := range charFindings(i+1, line) {
			if f.Kind == KindNBSP {
				out = append(out, f)
			}
		}
		out = append(out, spaceFindings(i+1, line)...)
	}
	return out
}

func spaceFindings(line int, text string) []Finding {
	var out []Finding
	rs := []rune(text)

	end := len(rs)
	for end > 0 && (rs[end-1] == ' ' || rs[end-1] == '\t') {
		end--
	}

	start := 0
	for start < end && (rs[start] == ' ' || rs[start] == '\t') {
		start++
	}

	for i := start; i < end-1; i++ {
		if rs[i] == ' ' && rs[i+1] == ' ' {
			out = append(out, Finding{Line: line, Column: i + 1, Kind: KindDoubleSpace, Text: "repeated spaces"})
			for i < end && rs[i] == ' ' {
				i++
			}
		}
	}

	if end < len(rs) {
		out = append(out, Finding{Line: line, Column: end + 1, Kind: KindTrailingSpace, Text: "trailing whitespace"})
	}
	return out
}

// NormalizeSpaces replaces non-breaking spaces, collapses repeated spaces
// after the indentation and trims trailing whitespace. It returns the new
// text and the number of lines changed.
func NormalizeSpaces(text string) (string, int) {
	crlf := strings.Contains(text, "\r\n")
	lines := splitLines(text)
	changed := 0

	for i, line := range lines {
		fixed := normalizeLine(line)
		if fixed != line {
			lines[i] = fixed
			changed++
		}
	}

	sep := "\n"
	if crlf {
		sep = "\r\n"
	}
	return strings.Join(lines, sep), changed
}

func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\u00a0", " ")
	line = strings.TrimRight(line, " \t")

	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	for strings.Contains(body, "  ") {
		body = strings.ReplaceAll(body, "  ", " ")
	}
	return indent + body
}
