package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"survey-recon/internal/ropes"
	"survey-recon/internal/textfix"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SURVEY_RECON_OUTPUT_DIR
const EnvPrefix = "SURVEY_RECON"

// Config represents the application configuration
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Layout LayoutConfig `mapstructure:"layout"`
	Ropes  RopesConfig  `mapstructure:"ropes"`
	Output OutputConfig `mapstructure:"output"`
	Clean  CleanConfig  `mapstructure:"clean"`

	source string // config file that was read, "" on defaults
}

// InputConfig locates the survey workbook
type InputConfig struct {
	Workbook string `mapstructure:"workbook"` // .xlsx or .csv
	Encoding string `mapstructure:"encoding"` // CSV only (e.g. "utf-8", "windows-1252")
}

// LayoutConfig selects the table layout
type LayoutConfig struct {
	File string `mapstructure:"file"` // YAML layout; empty uses the built-in survey layout
}

// RopesConfig holds the optional seaweed farming CSV
type RopesConfig struct {
	File     string        `mapstructure:"file"`
	Encoding string        `mapstructure:"encoding"`
	Columns  ropes.Columns `mapstructure:"columns"`
	Edges    []float64     `mapstructure:"edges"` // lower bounds of the distribution bands
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Output file name (without extension)
	Title    string   `mapstructure:"title"`     // Report title
	Formats  []string `mapstructure:"formats"`   // console, json, pdf, excel, word, html
	Progress bool     `mapstructure:"progress"`  // draw progress bars
}

// CleanConfig drives the text clean-up commands
type CleanConfig struct {
	Target string         `mapstructure:"target"` // file to audit or rewrite
	Backup bool           `mapstructure:"backup"` // keep <target>.bak before rewriting
	Labels []textfix.Rule `mapstructure:"labels"` // ordered label replacements
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "config.yaml" in the current directory.
// Environment variables prefixed with SURVEY_RECON_ override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	loaded := true
	explicit := configPath != ""
	if !explicit {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) ||
			strings.Contains(err.Error(), "no such file") || strings.Contains(err.Error(), "cannot find")
		if !missing {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		loaded = false
		if explicit && configPath != "config.yaml" {
			fmt.Printf("Config file %s not found. Using defaults.\n", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if loaded {
		cfg.source = v.ConfigFileUsed()
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures default values for every key
func setDefaults(v *viper.Viper) {
	v.SetDefault("input.workbook", "./input/survey.xlsx")
	v.SetDefault("input.encoding", "utf-8")

	v.SetDefault("layout.file", "")

	v.SetDefault("ropes.file", "")
	v.SetDefault("ropes.encoding", "utf-8")
	v.SetDefault("ropes.columns.member", "")
	v.SetDefault("ropes.columns.group", "")
	v.SetDefault("ropes.columns.village", "")
	v.SetDefault("ropes.columns.gender", "")
	v.SetDefault("ropes.columns.ropes", "")
	v.SetDefault("ropes.columns.harvest", "")
	v.SetDefault("ropes.edges", ropes.DefaultEdges)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "survey-recon-report")
	v.SetDefault("output.title", "VSLA and Forestry Quarterly Summary")
	v.SetDefault("output.formats", []string{"console", "json", "pdf", "excel"})
	v.SetDefault("output.progress", true)

	v.SetDefault("clean.target", "./dashboard/index.html")
	v.SetDefault("clean.backup", true)
	v.SetDefault("clean.labels", []textfix.Rule{})
}

// normalizePaths converts relative paths to absolute paths
func (c *Config) normalizePaths() error {
	paths := []struct {
		key string
		val *string
	}{
		{"input.workbook", &c.Input.Workbook},
		{"layout.file", &c.Layout.File},
		{"ropes.file", &c.Ropes.File},
		{"output.dir", &c.Output.Dir},
		{"clean.target", &c.Clean.Target},
	}

	for _, p := range paths {
		if *p.val == "" {
			continue
		}
		abs, err := filepath.Abs(*p.val)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p.key, err)
		}
		*p.val = abs
	}
	return nil
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// GetOutputPath returns the full path of an output file with the given extension
func (c *Config) GetOutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+strings.TrimPrefix(ext, "."))
}

// LogPath is the run log inside the output directory
func (c *Config) LogPath() string {
	return filepath.Join(c.Output.Dir, "survey_recon.log")
}

// Source is the config file that was read, "" when running on defaults
func (c *Config) Source() string {
	return c.source
}

// Validate checks the settings a report run depends on
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Input.Workbook); os.IsNotExist(err) {
		return fmt.Errorf("input.workbook does not exist: %s", c.Input.Workbook)
	}
	if c.Layout.File != "" {
		if _, err := os.Stat(c.Layout.File); os.IsNotExist(err) {
			return fmt.Errorf("layout.file does not exist: %s", c.Layout.File)
		}
	}
	if c.Ropes.File != "" {
		if _, err := os.Stat(c.Ropes.File); os.IsNotExist(err) {
			return fmt.Errorf("ropes.file does not exist: %s", c.Ropes.File)
		}
	}
	if _, err := ropes.Bins(c.Ropes.Edges); err != nil {
		return fmt.Errorf("ropes.edges: %w", err)
	}
	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}
	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must contain at least one format")
	}
	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== Survey Recon Configuration ===")
	if src := c.Source(); src != "" {
		fmt.Printf("Config File:      %s\n", src)
	} else {
		fmt.Println("Config File:      (defaults)")
	}
	fmt.Printf("Workbook:         %s\n", c.Input.Workbook)
	if c.Layout.File != "" {
		fmt.Printf("Layout:           %s\n", c.Layout.File)
	} else {
		fmt.Println("Layout:           built-in")
	}
	if c.Ropes.File != "" {
		fmt.Printf("Ropes CSV:        %s\n", c.Ropes.File)
	}
	fmt.Printf("Formats:          %v\n", c.Output.Formats)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Println("==================================")
}
