package word

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"survey-recon/internal/config"
	"survey-recon/internal/model"

	"github.com/nguyenthenguyen/docx"
)

func TestWordExport(t *testing.T) {
	r := &model.Report{
		Title:       "Quarterly summary",
		GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Source:      "survey & co.xlsx",
		Indicators: []model.IndicatorSummary{{
			Title:    "Forestry indicators",
			Quarters: []string{"Q1", "Q2"},
			Rows: []model.IndicatorRow{{
				Label:  "Patrols <monthly>",
				Values: []model.Value{model.Num(36), model.Num(41)},
				Change: model.Num(5), ChangePct: model.Num(13.9),
			}},
		}},
		Warnings: []model.Warning{{Table: "forestry", Sheet: "Forestry", Message: "no data rows"}},
	}
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "report"}}

	if err := NewWordExporter().Export(r, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out, err := docx.ReadDocxFile(cfg.GetOutputPath("docx"))
	if err != nil {
		t.Fatalf("output is not a docx: %v", err)
	}
	defer out.Close()
	content := out.Editable().GetContent()

	if strings.Contains(content, "{{") {
		t.Error("placeholders left in the document")
	}
	for _, want := range []string{
		"Quarterly summary",
		"2024-01-15",
		"survey &amp; co.xlsx",
		"Forestry indicators",
		"Patrols &lt;monthly&gt;",
		"+13.9%",
		"<w:tbl>",
		"no data rows",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// the injected tables must keep document.xml well-formed
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("malformed document.xml: %v", err)
		}
	}
}

func TestParagraphEscapes(t *testing.T) {
	got := paragraph("A & B", true, 28)
	want := `<w:p><w:pPr><w:spacing w:before="240" w:after="80"/></w:pPr><w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">A &amp; B</w:t></w:r></w:p>`
	if got != want {
		t.Errorf("paragraph =\n%s\nwant\n%s", got, want)
	}
}
