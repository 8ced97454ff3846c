package textfix

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// pictographs commonly pasted into dashboard labels
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231a, Hi: 0x231b, Stride: 1},
		{Lo: 0x23e9, Hi: 0x23fa, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b05, Hi: 0x2b07, Stride: 1},
		{Lo: 0x2b1b, Hi: 0x2b1c, Stride: 1},
		{Lo: 0x2b50, Hi: 0x2b55, Stride: 5},
		{Lo: 0x3030, Hi: 0x303d, Stride: 13},
		{Lo: 0x3297, Hi: 0x3299, Stride: 2},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1},
	},
}

// zero-width joiner, variation selectors, keycap and tag characters
var joinerTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200d, Hi: 0x200d, Stride: 1},
		{Lo: 0x20e3, Hi: 0x20e3, Stride: 1},
		{Lo: 0xfe0e, Hi: 0xfe0f, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0xe0020, Hi: 0xe007f, Stride: 1},
	},
}

var (
	emoji   = runes.In(emojiTable)
	joiners = runes.In(joinerTable)
)

func isSkinTone(r rune) bool { return r >= 0x1f3fb && r <= 0x1f3ff }

func isRegional(r rune) bool { return r >= 0x1f1e6 && r <= 0x1f1ff }

// clusterEnd returns the index just past the emoji sequence starting at i:
// modifiers, selectors, ZWJ-joined pictographs and the second half of a flag
func clusterEnd(rs []rune, i int) int {
	first := rs[i]
	j := i + 1
	if isRegional(first) && j < len(rs) && isRegional(rs[j]) {
		j++
	}
	for j < len(rs) {
		c := rs[j]
		switch {
		case c == '\u200d' && j+1 < len(rs) && emoji.Contains(rs[j+1]):
			j += 2
		case joiners.Contains(c), isSkinTone(c):
			j++
		default:
			return j
		}
	}
	return j
}

// StripEmojis removes emoji sequences and one space following each.
// Stray selectors and joiners are dropped without being counted.
func StripEmojis(text string) (string, int) {
	rs := []rune(text)
	var b strings.Builder
	removed := 0

	for i := 0; i < len(rs); {
		if !emoji.Contains(rs[i]) {
			b.WriteRune(rs[i])
			i++
			continue
		}
		removed++
		i = clusterEnd(rs, i)
		if i < len(rs) && rs[i] == ' ' {
			i++
		}
	}

	out, _, err := transform.String(runes.Remove(joiners), b.String())
	if err != nil {
		return b.String(), removed
	}
	return out, removed
}
