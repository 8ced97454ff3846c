// Package ropes analyses member-level seaweed farming sheets: how many
// ropes each member farms, split by group, gender and size band.
package ropes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"survey-recon/internal/logger"
	"survey-recon/internal/model"
	"survey-recon/internal/workbook"

	"gonum.org/v1/gonum/stat"
)

// DefaultEdges are the lower bounds of the distribution bands: 0, 1-10, 11-25, 26-50, 51+
var DefaultEdges = []float64{0, 1, 11, 26, 51}

// Columns names the CSV headers to read. Empty fields fall back to the usual aliases.
type Columns struct {
	Member  string `mapstructure:"member"`
	Group   string `mapstructure:"group"`
	Village string `mapstructure:"village"`
	Gender  string `mapstructure:"gender"`
	Ropes   string `mapstructure:"ropes"`
	Harvest string `mapstructure:"harvest"`
}

var aliases = map[string][]string{
	"member":  {"memberid", "member", "membername", "name", "farmer"},
	"group":   {"group", "groupname", "vsla", "vslagroup"},
	"village": {"village", "shehia", "community"},
	"gender":  {"gender", "sex"},
	"ropes":   {"ropes", "numberofropes", "noofropes", "ropecount", "lines"},
	"harvest": {"harvestkg", "harvest", "harvestedkg", "yieldkg"},
}

// Data is the parsed content of a ropes CSV
type Data struct {
	Source     string
	Records    []model.RopesRecord
	Skipped    int
	HasHarvest bool
}

// Load reads a ropes CSV in the given encoding
func Load(path, encoding string, cols Columns) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ropes csv: %w", err)
	}
	defer f.Close()

	rows, err := workbook.ReadCSV(f, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read ropes csv %s: %w", path, err)
	}

	data, err := parse(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	data.Source = filepath.Base(path)
	return data, nil
}

func parse(rows [][]string, cols Columns) (*Data, error) {
	headerAt := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("file is empty")
	}

	idx := indexHeader(rows[headerAt], cols)
	if idx["ropes"] < 0 {
		return nil, fmt.Errorf("ropes column not found in header %q", strings.Join(rows[headerAt], ", "))
	}

	data := &Data{HasHarvest: idx["harvest"] >= 0}
	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}
		line := i + 1

		ropes, ok, err := workbook.ParseNumber(field(row, idx["ropes"]))
		if err != nil || !ok || ropes < 0 {
			data.Skipped++
			logger.Debug("ropes line %d skipped: unusable ropes value %q", line, field(row, idx["ropes"]))
			continue
		}

		rec := model.RopesRecord{
			Line:    line,
			Member:  field(row, idx["member"]),
			Group:   field(row, idx["group"]),
			Village: field(row, idx["village"]),
			Gender:  normalizeGender(field(row, idx["gender"])),
			Ropes:   ropes,
		}
		if h, ok, err := workbook.ParseNumber(field(row, idx["harvest"])); err == nil && ok {
			rec.Harvest = model.Num(h)
		}
		data.Records = append(data.Records, rec)
	}

	return data, nil
}

// indexHeader maps each field to its column, -1 when absent
func indexHeader(header []string, cols Columns) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	find := func(names ...string) int {
		for _, name := range names {
			n := normalizeHeader(name)
			if n == "" {
				continue
			}
			for i, h := range normalized {
				if h == n {
					return i
				}
			}
		}
		return -1
	}

	configured := map[string]string{
		"member":  cols.Member,
		"group":   cols.Group,
		"village": cols.Village,
		"gender":  cols.Gender,
		"ropes":   cols.Ropes,
		"harvest": cols.Harvest,
	}

	idx := make(map[string]int, len(aliases))
	for key, names := range aliases {
		if c := configured[key]; c != "" {
			idx[key] = find(c)
			continue
		}
		idx[key] = find(names...)
	}
	return idx
}

// normalizeHeader lowercases and keeps letters and digits only,
// so "Member ID", "member_id" and "MEMBER-ID" compare equal
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female", "woman", "ke", "mwanamke":
		return "F"
	case "m", "male", "man", "me", "mwanaume":
		return "M"
	case "":
		return ""
	default:
		return strings.TrimSpace(s)
	}
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Analyze computes the ropes summary. edges must be ascending; nil uses DefaultEdges.
func Analyze(records []model.RopesRecord, edges []float64) (*model.RopesSummary, error) {
	bins, err := Bins(edges)
	if err != nil {
		return nil, err
	}

	s := &model.RopesSummary{
		Members:      len(records),
		Distribution: bins,
		Groups:       []model.RopesGroup{},
		Genders:      []model.RopesGroup{},
	}
	if len(records) == 0 {
		return s, nil
	}

	values := make([]float64, len(records))
	groups := map[string]*model.RopesGroup{}
	genders := map[string]*model.RopesGroup{}
	harvest := 0.0
	harvestRopes := 0.0

	for i, r := range records {
		values[i] = r.Ropes
		s.TotalRopes += r.Ropes
		if r.Ropes == 0 {
			s.ZeroRopes++
		}

		addTo(groups, orUnknown(r.Group), r.Ropes)
		addTo(genders, orUnknown(r.Gender), r.Ropes)

		for b := range s.Distribution {
			if inBin(s.Distribution[b], r.Ropes) {
				s.Distribution[b].Members++
				break
			}
		}

		if r.Harvest.Valid {
			s.HasHarvest = true
			harvest += r.Harvest.Amount
			harvestRopes += r.Ropes
		}
	}

	sort.Float64s(values)
	s.Mean = stat.Mean(values, nil)
	s.Median = median(values)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	s.Min = values[0]
	s.Max = values[len(values)-1]

	for b := range s.Distribution {
		s.Distribution[b].Share = float64(s.Distribution[b].Members) / float64(s.Members) * 100
	}

	s.Groups = sortedGroups(groups)
	s.Genders = sortedGroups(genders)

	if s.HasHarvest {
		s.TotalHarvest = harvest
		if harvestRopes > 0 {
			s.HarvestPerRope = model.Num(harvest / harvestRopes)
		}
	}
	return s, nil
}

// Run loads and analyses a ropes CSV in one step
func Run(path, encoding string, cols Columns, edges []float64) (*model.RopesSummary, error) {
	data, err := Load(path, encoding, cols)
	if err != nil {
		return nil, err
	}
	s, err := Analyze(data.Records, edges)
	if err != nil {
		return nil, err
	}
	s.Source = data.Source
	s.Skipped = data.Skipped
	if data.Skipped > 0 {
		logger.Warn("%s: %d member rows had no usable ropes value", data.Source, data.Skipped)
	}
	return s, nil
}

// Bins builds empty distribution buckets from ascending lower bounds
func Bins(edges []float64) ([]model.RopesBin, error) {
	if len(edges) == 0 {
		edges = DefaultEdges
	}
	bins := make([]model.RopesBin, len(edges))
	for i, lo := range edges {
		if i > 0 && lo <= edges[i-1] {
			return nil, fmt.Errorf("ropes edges must be ascending: %v", edges)
		}
		bins[i] = model.RopesBin{Lower: lo}
		if i+1 < len(edges) {
			hi := edges[i+1] - 1
			bins[i].Upper = model.Num(hi)
			if hi <= lo {
				bins[i].Label = formatEdge(lo)
			} else {
				bins[i].Label = formatEdge(lo) + "-" + formatEdge(hi)
			}
		} else {
			bins[i].Label = formatEdge(lo) + "+"
		}
	}
	return bins, nil
}

func inBin(b model.RopesBin, v float64) bool {
	if v < b.Lower {
		return false
	}
	// upper bounds are inclusive whole numbers, so 10.5 still belongs to 1-10
	return !b.Upper.Valid || v < b.Upper.Amount+1
}

func formatEdge(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func addTo(m map[string]*model.RopesGroup, name string, ropes float64) {
	g, ok := m[name]
	if !ok {
		g = &model.RopesGroup{Name: name}
		m[name] = g
	}
	g.Members++
	g.Ropes += ropes
}

func sortedGroups(m map[string]*model.RopesGroup) []model.RopesGroup {
	out := make([]model.RopesGroup, 0, len(m))
	for _, g := range m {
		g.Mean = g.Ropes / float64(g.Members)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ropes != out[j].Ropes {
			return out[i].Ropes > out[j].Ropes
		}
		return out[i].Name < out[j].Name
	})
	return out
}
