package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"survey-recon/internal/logger"
	"survey-recon/internal/textfix"
	"survey-recon/internal/ui"

	"github.com/spf13/cobra"
)

var (
	dryRun   bool
	noBackup bool
	limit    int
)

func newCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Audit and tidy the dashboard source text",
		Long: `Commands that check or rewrite a text file, by default clean.target.

Commands:
  audit   Report non-ASCII characters, emoji, odd spaces and stale labels.
  labels  Apply the clean.labels replacement rules.
  emojis  Remove emoji and their joiners.
  spaces  Collapse double spaces and trim line ends.
  fonts   List the font families the file references.

Rewriting commands keep a <file>.bak copy unless --no-backup is given.`,
	}
	cmd.PersistentFlags().IntVar(&limit, "limit", 40, "Maximum lines of detail to print (0 for all)")

	rewrite := func(c *cobra.Command) *cobra.Command {
		c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without writing")
		c.Flags().BoolVar(&noBackup, "no-backup", false, "Do not write <file>.bak")
		return c
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "audit [file]",
			Short: "Report characters and labels that need attention",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runAudit,
		},
		rewrite(&cobra.Command{
			Use:   "labels [file]",
			Short: "Replace stale labels using clean.labels",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(cfg.Clean.Labels) == 0 {
					return fmt.Errorf("clean.labels has no rules")
				}
				if err := textfix.ValidateRules(cfg.Clean.Labels); err != nil {
					return err
				}
				return applyFix(cmd, args, textfix.LabelFix(cfg.Clean.Labels))
			},
		}),
		rewrite(&cobra.Command{
			Use:   "emojis [file]",
			Short: "Remove emoji",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return applyFix(cmd, args, textfix.StripEmojis)
			},
		}),
		rewrite(&cobra.Command{
			Use:   "spaces [file]",
			Short: "Normalise spaces",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return applyFix(cmd, args, textfix.NormalizeSpaces)
			},
		}),
		&cobra.Command{
			Use:   "fonts [file]",
			Short: "List referenced font families",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runFonts,
		},
	)
	return cmd
}

func cleanTarget(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Clean.Target
}

func readTarget(args []string) (string, string, error) {
	path := cleanTarget(args)
	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return path, string(data), nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	path, text, err := readTarget(args)
	if err != nil {
		return err
	}

	findings := textfix.Audit(text, cfg.Clean.Labels)
	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintf(out, "%s: nothing to fix\n", path)
		return nil
	}

	counts := textfix.Counts(findings)
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	summary := ui.NewTable(fmt.Sprintf("%s: %d findings", path, len(findings)), "Kind", "Count")
	summary.AlignRight(1)
	for _, k := range kinds {
		summary.AddRow(k, fmt.Sprint(counts[textfix.Kind(k)]))
	}
	fmt.Fprint(out, summary.Render())

	detail := ui.NewTable("", "Line", "Col", "Kind", "Text")
	detail.AlignRight(0, 1)
	for i, f := range findings {
		if limit > 0 && i == limit {
			detail.Footer = fmt.Sprintf("%d more not shown", len(findings)-limit)
			break
		}
		detail.AddRow(fmt.Sprint(f.Line), fmt.Sprint(f.Column), string(f.Kind), f.Text)
	}
	fmt.Fprint(out, detail.Render())
	return nil
}

func runFonts(cmd *cobra.Command, args []string) error {
	path, text, err := readTarget(args)
	if err != nil {
		return err
	}

	fonts := textfix.FindFonts(text)
	if len(fonts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no font families referenced\n", path)
		return nil
	}

	t := ui.NewTable(path, "Family", "Uses", "First line")
	t.AlignRight(1, 2)
	for _, f := range fonts {
		t.AddRow(f.Family, fmt.Sprint(f.Count), fmt.Sprint(f.FirstLine))
	}
	fmt.Fprint(cmd.OutOrStdout(), t.Render())
	return nil
}

func applyFix(cmd *cobra.Command, args []string, fn textfix.Fix) error {
	path := cleanTarget(args)
	opts := textfix.Options{
		Backup: cfg.Clean.Backup && !noBackup,
		DryRun: dryRun,
	}

	res, err := textfix.Apply(path, opts, fn)
	if err != nil {
		return err
	}

	printChanges(cmd.OutOrStdout(), res)
	switch {
	case !res.Changed():
		logger.Info("%s: nothing to change", path)
	case !res.Written:
		logger.Info("%s: %d changes on %d lines (dry run, not written)", path, res.Changes, len(res.Lines))
	case res.Backup != "":
		logger.Info("%s: %d changes on %d lines written, original kept as %s", path, res.Changes, len(res.Lines), res.Backup)
	default:
		logger.Info("%s: %d changes on %d lines written", path, res.Changes, len(res.Lines))
	}
	return nil
}

func printChanges(out io.Writer, res *textfix.Result) {
	if len(res.Lines) == 0 {
		return
	}
	t := ui.NewTable("Changed lines", "Line", "Before", "After")
	t.AlignRight(0)
	for i, c := range res.Lines {
		if limit > 0 && i == limit {
			t.Footer = fmt.Sprintf("%d more not shown", len(res.Lines)-limit)
			break
		}
		t.AddRow(fmt.Sprint(c.Line), c.Before, c.After)
	}
	fmt.Fprint(out, t.Render())
}
