package main

import (
	"fmt"
	"strings"

	"survey-recon/internal/inspect"
	"survey-recon/internal/report"
	"survey-recon/internal/ui"
	"survey-recon/internal/workbook"

	"github.com/spf13/cobra"
)

var inspectWorkbook string

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Explore a workbook to find or check table positions",
		Long: `Commands for locating survey tables in a workbook.

Commands:
  sheets  List sheets with their used range.
  dump    Print a block of cells with row numbers and column letters.
  find    Search every sheet for a text.
  probe   Check the layout against the workbook without extracting.`,
	}
	cmd.PersistentFlags().StringVarP(&inspectWorkbook, "workbook", "w", "", "Workbook to inspect (defaults to input.workbook)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "sheets",
			Short: "List sheets with their used range",
			Args:  cobra.NoArgs,
			RunE:  runSheets,
		},
		&cobra.Command{
			Use:   "dump SHEET [RANGE]",
			Short: "Print cells of a sheet, e.g. dump \"VSLA Quarterly\" B3:F12",
			Args:  cobra.RangeArgs(1, 2),
			RunE:  runDump,
		},
		&cobra.Command{
			Use:   "find TEXT",
			Short: "Find cells containing a text (case-insensitive)",
			Args:  cobra.ExactArgs(1),
			RunE:  runFind,
		},
		newProbeCommand(),
	)
	return cmd
}

func openInspected() (*workbook.Workbook, error) {
	path := inspectWorkbook
	if path == "" {
		path = cfg.Input.Workbook
	}
	return workbook.Open(path, cfg.Input.Encoding)
}

func runSheets(cmd *cobra.Command, args []string) error {
	wb, err := openInspected()
	if err != nil {
		return err
	}
	defer wb.Close()

	sheets, err := inspect.Sheets(wb)
	if err != nil {
		return err
	}

	t := ui.NewTable(wb.Name(), "Sheet", "Range", "Rows", "Columns", "Filled cells")
	t.AlignRight(2, 3, 4)
	for _, s := range sheets {
		t.AddRow(s.Name, s.Dimension, fmt.Sprint(s.Rows), fmt.Sprint(s.Columns), fmt.Sprint(s.NonEmpty))
	}
	fmt.Fprint(cmd.OutOrStdout(), t.Render())
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	wb, err := openInspected()
	if err != nil {
		return err
	}
	defer wb.Close()

	var rng string
	if len(args) == 2 {
		rng = args[1]
	}
	grid, err := inspect.Dump(wb, args[0], rng)
	if err != nil {
		return err
	}

	t := ui.NewTable(fmt.Sprintf("%s!%s", grid.Sheet, grid.Range), append([]string{""}, grid.Columns...)...)
	t.AlignRight(0)
	for _, row := range grid.Rows {
		t.AddRow(append([]string{fmt.Sprint(row.Number)}, row.Cells...)...)
	}
	fmt.Fprint(cmd.OutOrStdout(), t.Render())
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	wb, err := openInspected()
	if err != nil {
		return err
	}
	defer wb.Close()

	matches, err := inspect.Find(wb, args[0])
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No cell contains %q\n", args[0])
		return nil
	}

	t := ui.NewTable(fmt.Sprintf("%d matches for %q", len(matches), args[0]), "Sheet", "Cell", "Text")
	for _, m := range matches {
		t.AddRow(m.Sheet, m.Cell, m.Text)
	}
	fmt.Fprint(cmd.OutOrStdout(), t.Render())
	return nil
}

func newProbeCommand() *cobra.Command {
	var probeLayout string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Show what each layout table would read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if probeLayout != "" {
				cfg.Layout.File = probeLayout
			}
			l, err := report.LoadLayout(cfg)
			if err != nil {
				return err
			}
			wb, err := openInspected()
			if err != nil {
				return err
			}
			defer wb.Close()

			results, err := inspect.Probe(wb, l)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if missing := inspect.MissingSheets(wb, l); len(missing) > 0 {
				fmt.Fprintln(out, ui.WarnStyle.Render("Workbook lacks sheets: "+strings.Join(missing, ", ")))
			}
			problems := 0
			for _, res := range results {
				t := ui.NewTable(fmt.Sprintf("%s (%s)", res.Table, res.Sheet), "Cell", "Label", "Kind", "Numbers")
				t.AlignRight(3)
				for _, lbl := range res.Labels {
					t.AddRow(lbl.Cell, lbl.Text, lbl.Kind, fmt.Sprint(lbl.Numeric))
				}
				if len(res.Headers) > 0 {
					t.Footer = "Headers: " + strings.Join(res.Headers, " | ")
				}
				fmt.Fprint(out, t.Render())
				for _, p := range res.Problems {
					fmt.Fprintln(out, ui.WarnStyle.Render("  ! "+p))
				}
				problems += len(res.Problems)
			}

			if problems > 0 {
				return fmt.Errorf("layout %s: %d problems", l.Name, problems)
			}
			fmt.Fprintf(out, "\nLayout %s matches %s\n", l.Name, wb.Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&probeLayout, "layout", "", "Layout file (defaults to the configured layout)")
	return cmd
}
