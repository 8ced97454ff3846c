package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// csvSource holds a CSV file as a single sheet named after the file
type csvSource struct {
	name string
	data [][]string
}

func openCSV(path, enc string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer f.Close()

	data, err := ReadCSV(f, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &csvSource{name: name, data: data}, nil
}

func (s *csvSource) sheetNames() []string {
	return []string{s.name}
}

func (s *csvSource) rows(sheet string) ([][]string, error) {
	return s.data, nil
}

func (s *csvSource) close() error {
	return nil
}

// ReadCSV decodes r with the named encoding and parses it as CSV.
// Ragged rows are allowed; a UTF-8 byte order mark is dropped.
func ReadCSV(r io.Reader, enc string) ([][]string, error) {
	decoder, err := NewDecoder(enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	return reader.ReadAll()
}

// NewDecoder returns a transformer turning enc-encoded bytes into UTF-8
func NewDecoder(enc string) (transform.Transformer, error) {
	name := strings.ToLower(strings.TrimSpace(enc))
	if name == "" || name == "utf-8" || name == "utf8" {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}

	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", enc, err)
	}
	if e == nil {
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	return unicode.BOMOverride(e.NewDecoder()), nil
}
