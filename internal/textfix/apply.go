package textfix

import (
	"fmt"
	"os"
)

// Fix rewrites a text and reports how many changes it made
type Fix func(text string) (string, int)

// Options control how Apply writes its result
type Options struct {
	Backup bool // copy the original to <path>.bak first
	DryRun bool // compute the changes without touching the file
}

// LineChange is one line that differs after the fix
type LineChange struct {
	Line   int
	Before string
	After  string
}

// Result describes what Apply did
type Result struct {
	Path    string
	Backup  string // "" when no backup was written
	Changes int
	Written bool
	Lines   []LineChange
}

// Changed tells whether the fix altered the text. A fix may drop
// characters it does not count, so the line diff decides.
func (r *Result) Changed() bool {
	return r.Changes > 0 || len(r.Lines) > 0
}

// Apply runs fn over the file at path and rewrites it when the text changed
func Apply(path string, opts Options, fn Fix) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	before := string(data)
	after, changes := fn(before)
	res := &Result{Path: path, Changes: changes, Lines: diffLines(before, after)}

	if after == before || opts.DryRun {
		return res, nil
	}

	if opts.Backup {
		res.Backup = path + ".bak"
		if err := os.WriteFile(res.Backup, data, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("failed to write backup: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	res.Written = true
	return res, nil
}

// diffLines pairs lines by position. Fixes here never add or remove lines,
// so a positional comparison is enough.
func diffLines(before, after string) []LineChange {
	a, b := splitLines(before), splitLines(after)
	var out []LineChange
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y string
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			out = append(out, LineChange{Line: i + 1, Before: x, After: y})
		}
	}
	return out
}

// LabelFix adapts FixLabels to Apply
func LabelFix(rules []Rule) Fix {
	return func(text string) (string, int) {
		out, counts := FixLabels(text, rules)
		total := 0
		for _, c := range counts {
			total += c
		}
		return out, total
	}
}
