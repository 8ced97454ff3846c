package main

import (
	"bufio"
	"fmt"
	"os"

	"survey-recon/internal/config"
	"survey-recon/internal/logger"

	"github.com/spf13/cobra"
)

const (
	appName    = "Survey Recon"
	appVersion = "1.0.0"
	appDesc    = "Quarterly VSLA and forestry survey workbooks to dashboard JSON, PDF and spreadsheet reports"
)

var (
	configPath string
	verbose    bool
	outputDir  string
	formats    []string

	// cfg is loaded once per run by the root command's pre-run hook
	cfg *config.Config
)

func main() {
	// Keep the window open when started by double-click, even on panic
	interactive := len(os.Args) == 1
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
		}
		if interactive {
			waitForEnter()
		}
	}()

	exitCode := run()
	if interactive {
		waitForEnter()
	}
	os.Exit(exitCode)
}

func run() int {
	defer logger.Close()
	if err := newRootCommand().Execute(); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "survey-recon [workbook]",
		Short: appDesc,
		Long: `Survey Recon reads quarterly monitoring workbooks laid out as fixed-offset
tables, summarises them and writes the reports the field team shares.

Running without a subcommand is the same as "survey-recon report".`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runReport,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")
	flags.StringVar(&outputDir, "output", "", "Override output directory from config")
	flags.StringSliceVar(&formats, "format", nil, "Output formats (console,json,pdf,excel,word,html)")
	addReportFlags(root)

	root.AddCommand(
		newReportCommand(),
		newInspectCommand(),
		newRopesCommand(),
		newCleanCommand(),
		newSampleCommand(),
		newVersionCommand(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and starts the
// run log inside the output directory
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if len(formats) > 0 {
		cfg.Output.Formats = formats
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if src := cfg.Source(); src != "" {
		logger.Debug("Configuration loaded from %s", src)
	} else {
		logger.Debug("No configuration file at %s, using defaults", configPath)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no configuration or log needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n%s\n", appName, appVersion, appDesc)
		},
	}
}

// waitForEnter pauses execution and waits for user to press Enter
// This prevents the console window from closing immediately when double-clicked
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                    SURVEY RECON v1.0.0                    ║
║     Quarterly VSLA & Forestry Monitoring Summaries        ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
