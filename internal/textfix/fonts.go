package textfix

import (
	"regexp"
	"sort"
	"strings"
)

// FontUse is a font family and where it first appears
type FontUse struct {
	Family    string
	Count     int
	FirstLine int
}

var (
	cssFontRe    = regexp.MustCompile(`font-family\s*:\s*([^;}\n]+)`)
	jsFontRe     = regexp.MustCompile("fontFamily\\s*[:=]\\s*[\"'`]([^\"'`]+)[\"'`]")
	googleFontRe = regexp.MustCompile(`family=([A-Za-z0-9+]+)`)
	tupleFontRe  = regexp.MustCompile(`font\s*=\s*\(\s*["']([^"']+)["']`)
)

// FindFonts lists the font families referenced by CSS, inline styles,
// Google Fonts links and (family, size) tuples, most used first
func FindFonts(text string) []FontUse {
	uses := map[string]*FontUse{}
	var order []string

	add := func(family string, line int) {
		family = strings.TrimSpace(family)
		family = strings.TrimSpace(strings.TrimSuffix(family, "!important"))
		family = strings.Trim(family, `"'`)
		if family == "" {
			return
		}
		key := strings.ToLower(family)
		if u, ok := uses[key]; ok {
			u.Count++
			return
		}
		uses[key] = &FontUse{Family: family, Count: 1, FirstLine: line}
		order = append(order, key)
	}

	for i, line := range splitLines(text) {
		n := i + 1
		for _, m := range cssFontRe.FindAllStringSubmatch(line, -1) {
			for _, f := range strings.Split(m[1], ",") {
				add(f, n)
			}
		}
		for _, m := range jsFontRe.FindAllStringSubmatch(line, -1) {
			for _, f := range strings.Split(m[1], ",") {
				add(f, n)
			}
		}
		for _, m := range googleFontRe.FindAllStringSubmatch(line, -1) {
			add(strings.ReplaceAll(m[1], "+", " "), n)
		}
		for _, m := range tupleFontRe.FindAllStringSubmatch(line, -1) {
			add(m[1], n)
		}
	}

	out := make([]FontUse, 0, len(order))
	for _, key := range order {
		out = append(out, *uses[key])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})
	return out
}
