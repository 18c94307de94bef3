package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Name string
	Date string // YYYY-MM-DD; empty means today
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show derived clock-in/out status for a user",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "user name (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date to derive for, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	day := time.Now().In(cfg.Location())
	if opts.Date != "" {
		day, err = time.ParseInLocation(attendance.DateLayout, opts.Date, cfg.Location())
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --date", err)
		}
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

	st := attendance.DeriveStatus(rows, opts.Name, day, slog.Default())
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"name":        attendance.NormalizeName(opts.Name),
			"date":        day.Format(attendance.DateLayout),
			"clocked_in":  st.ClockedIn,
			"clocked_out": st.ClockedOut,
			"absent":      st.Absent,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: clocked_in=%v clocked_out=%v absent=%v\n",
		day.Format(attendance.DateLayout), attendance.NormalizeName(opts.Name),
		st.ClockedIn, st.ClockedOut, st.Absent)
	return nil
}
