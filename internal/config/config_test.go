package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"survey-recon/internal/ropes"
	"survey-recon/internal/textfix"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config with defaults: %v", err)
	}

	if cfg.Source() != "" {
		t.Errorf("Expected no config source, got %s", cfg.Source())
	}
	if !filepath.IsAbs(cfg.Input.Workbook) {
		t.Errorf("Expected absolute workbook path, got %s", cfg.Input.Workbook)
	}
	if cfg.Layout.File != "" {
		t.Errorf("Expected built-in layout, got %s", cfg.Layout.File)
	}
	if cfg.Output.FileName != "survey-recon-report" {
		t.Errorf("Unexpected file name %q", cfg.Output.FileName)
	}
	if !reflect.DeepEqual(cfg.Output.Formats, []string{"console", "json", "pdf", "excel"}) {
		t.Errorf("Unexpected default formats %v", cfg.Output.Formats)
	}
	if !reflect.DeepEqual(cfg.Ropes.Edges, ropes.DefaultEdges) {
		t.Errorf("Unexpected default edges %v", cfg.Ropes.Edges)
	}
	if !cfg.Clean.Backup {
		t.Error("Expected backups to be on by default")
	}

	cfg.Print()
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
input:
  workbook: data/q4.xlsx
ropes:
  file: data/ropes.csv
  encoding: windows-1252
  columns:
    ropes: "Ropes 2024"
  edges: [0, 10, 20]
output:
  dir: reports
  file_name: q4
  formats: [pdf, html]
clean:
  target: site/index.html
  labels:
    - from: "Savings Groups"
      to: "VSLA groups"
    - from: "Hecters"
      to: "Hectares"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Source() != path {
		t.Errorf("Expected source %s, got %s", path, cfg.Source())
	}
	if !strings.HasSuffix(filepath.ToSlash(cfg.Input.Workbook), "data/q4.xlsx") {
		t.Errorf("Unexpected workbook %s", cfg.Input.Workbook)
	}
	if cfg.Ropes.Encoding != "windows-1252" || cfg.Ropes.Columns.Ropes != "Ropes 2024" {
		t.Errorf("Unexpected ropes config %+v", cfg.Ropes)
	}
	if !reflect.DeepEqual(cfg.Ropes.Edges, []float64{0, 10, 20}) {
		t.Errorf("Unexpected edges %v", cfg.Ropes.Edges)
	}
	if !reflect.DeepEqual(cfg.Output.Formats, []string{"pdf", "html"}) {
		t.Errorf("Unexpected formats %v", cfg.Output.Formats)
	}
	// Unset keys keep their defaults
	if cfg.Input.Encoding != "utf-8" {
		t.Errorf("Expected default encoding, got %s", cfg.Input.Encoding)
	}

	want := []textfix.Rule{{From: "Savings Groups", To: "VSLA groups"}, {From: "Hecters", To: "Hectares"}}
	if !reflect.DeepEqual(cfg.Clean.Labels, want) {
		t.Errorf("Unexpected label rules %+v", cfg.Clean.Labels)
	}

	if got := cfg.GetOutputPath("pdf"); got != filepath.Join(cfg.Output.Dir, "q4.pdf") {
		t.Errorf("Unexpected output path %s", got)
	}
	if got := cfg.GetOutputPath(".json"); !strings.HasSuffix(got, "q4.json") {
		t.Errorf("Unexpected output path %s", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SURVEY_RECON_OUTPUT_FILE_NAME", "from-env")
	t.Setenv("SURVEY_RECON_INPUT_ENCODING", "iso-8859-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.FileName != "from-env" {
		t.Errorf("Expected env file name, got %s", cfg.Output.FileName)
	}
	if cfg.Input.Encoding != "iso-8859-1" {
		t.Errorf("Expected env encoding, got %s", cfg.Input.Encoding)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("output: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "survey.xlsx")
	if err := os.WriteFile(workbook, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	valid := func() *Config {
		return &Config{
			Input:  InputConfig{Workbook: workbook},
			Output: OutputConfig{Dir: dir, FileName: "report", Formats: []string{"json"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing workbook", func(c *Config) { c.Input.Workbook = filepath.Join(dir, "nope.xlsx") }, "input.workbook"},
		{"missing layout", func(c *Config) { c.Layout.File = filepath.Join(dir, "layout.yaml") }, "layout.file"},
		{"missing ropes", func(c *Config) { c.Ropes.File = filepath.Join(dir, "ropes.csv") }, "ropes.file"},
		{"bad edges", func(c *Config) { c.Ropes.Edges = []float64{5, 1} }, "ropes.edges"},
		{"no file name", func(c *Config) { c.Output.FileName = "" }, "file_name"},
		{"no formats", func(c *Config) { c.Output.Formats = nil }, "formats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnsureOutputDir(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Dir: filepath.Join(t.TempDir(), "a", "b")}}
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(cfg.Output.Dir); err != nil || !info.IsDir() {
		t.Errorf("Output directory was not created: %v", err)
	}
	if filepath.Base(cfg.LogPath()) != "survey_recon.log" {
		t.Errorf("Unexpected log path %s", cfg.LogPath())
	}
}
