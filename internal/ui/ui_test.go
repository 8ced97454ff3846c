package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	tbl := NewTable("Loan size", "Band", "Q1", "Q2").AlignRight(1, 2)
	tbl.AddRow("0 - 50,000", "20", "18")
	tbl.AddRow("> 500,000", "0")
	tbl.Footer = "2 bands"

	out := tbl.Render()
	for _, want := range []string{"Loan size", "Band", "0 - 50,000", "> 500,000", "18", "2 bands"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}

	if got := len(tbl.Rows[1]); got != 3 {
		t.Errorf("short row should be padded to 3 cells, got %d", got)
	}
}

func TestEmptyTableRendersNothing(t *testing.T) {
	if out := NewTable("Empty", "A").Render(); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestPipelinePhases(t *testing.T) {
	var buf bytes.Buffer
	p := NewPipelineWithOutput(ReportPhases, &buf)

	if p.Current() != "" {
		t.Fatalf("pipeline should not have started, got %q", p.Current())
	}

	for _, want := range ReportPhases {
		bar := p.NextPhase(2)
		if bar == nil {
			t.Fatalf("phase %s returned no bar", want)
		}
		if p.Current() != want {
			t.Errorf("expected phase %s, got %s", want, p.Current())
		}
		bar.Step("item")
		bar.Step("item")
	}

	if bar := p.NextPhase(1); bar != nil {
		t.Error("expected nil bar after the last phase")
	}
	p.PrintSummary("done")
	if !strings.Contains(buf.String(), "done") {
		t.Errorf("summary not written: %q", buf.String())
	}
}

func TestDisabledPipelineIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPipelineWithOutput(ReportPhases, &buf)
	p.Disable()

	bar := p.NextPhase(3)
	bar.Step("a")
	p.Finish()
	p.PrintSummary("done")

	if buf.Len() != 0 {
		t.Errorf("disabled pipeline wrote %q", buf.String())
	}
}
