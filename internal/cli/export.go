package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minseo-lab/chulgeun/internal/report"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Year   int
	Month  int
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the monthly summary as CSV (UTF-8 with BOM)",
		Long: `Write the monthly report as a CSV spreadsheet: one row per user,
a summary column, and one column per business day of the month.

Example:
  chulgeun export --year 2026 --month 3 --out attendance-2026-03.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "report year (default current)")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "report month 1-12 (default current)")
	cmd.Flags().StringVar(&opts.Output, "out", "", "output file (default stdout)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	year, month, err := resolveMonth(opts.Year, opts.Month, cfg.Location())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid month", err)
	}

	cache, err := openCache(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer cache.Close()

	rows, err := cache.Records(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read records", err)
	}
	summaries := report.AggregateMonth(rows, year, month, cfg.Location(), slog.Default())

	out := cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.WriteMonthCSV(out, summaries, year, month); err != nil {
		return WrapExitError(ExitCommandError, "failed to write CSV", err)
	}
	if opts.Output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d users)\n", opts.Output, len(summaries))
	}
	return nil
}
