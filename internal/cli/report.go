package cli

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minseo-lab/chulgeun/internal/report"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Year  int
	Month int
	Raw   bool
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the monthly attendance summary",
		Long: `Aggregate the attendance log into per-user monthly summaries:
present days, late and early-leave counts (excused events excluded),
absences, and average worked hours.

Example:
  chulgeun report --year 2026 --month 3
  chulgeun report --raw`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "report year (default current)")
	cmd.Flags().IntVar(&opts.Month, "month", 0, "report month 1-12 (default current)")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "print raw rows newest first instead of the summary")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
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

	if opts.Raw {
		return printRaw(opts.RootOptions, cmd, rows)
	}

	year, month, err := resolveMonth(opts.Year, opts.Month, cfg.Location())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid month", err)
	}

	summaries := report.AggregateMonth(rows, year, month, cfg.Location(), slog.Default())
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"year": year, "month": int(month), "users": summaries,
		})
	}

	if len(summaries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d-%02d: no records\n", year, int(month))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d-%02d\n", year, int(month))
	for _, s := range summaries {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: 출근 %d일 / 지각 %d / 조퇴 %d / 결근 %d / 평균 %.1f시간\n",
			s.Name, s.PresentDays, s.LateCount, s.EarlyCount, s.AbsentCount, s.AvgDurationHours)
	}
	return nil
}

func printRaw(opts *RootOptions, cmd *cobra.Command, rows [][]string) error {
	sorted := make([][]string, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		var a, b string
		if len(sorted[i]) > 0 {
			a = sorted[i][0]
		}
		if len(sorted[j]) > 0 {
			b = sorted[j][0]
		}
		return a > b
	})

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), sorted)
	}
	for _, row := range sorted {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
	}
	return nil
}

// resolveMonth fills unset year/month from the site-local current time.
func resolveMonth(year, month int, loc *time.Location) (int, time.Month, error) {
	now := time.Now().In(loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return year, time.Month(month), nil
}
