package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/minseo-lab/chulgeun/internal/attendance"
	"github.com/minseo-lab/chulgeun/internal/geo"
)

// RecordOptions holds flags shared by the record subcommands.
type RecordOptions struct {
	*RootOptions
	Name   string
	Lat    float64
	Lon    float64
	Reason string
}

// NewRecordCommand creates the record command group: in, out, absent.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an attendance event",
	}
	cmd.AddCommand(newRecordClockCommand(rootOpts, "in", attendance.KindClockIn))
	cmd.AddCommand(newRecordClockCommand(rootOpts, "out", attendance.KindClockOut))
	cmd.AddCommand(newRecordAbsentCommand(rootOpts))
	return cmd
}

func newRecordClockCommand(rootOpts *RootOptions, use string, kind attendance.RequestKind) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	short := "Record a clock-in at the current position"
	if kind == attendance.KindClockOut {
		short = "Record a clock-out at the current position"
	}
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordClock(opts, kind, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "user name (required)")
	cmd.Flags().Float64Var(&opts.Lat, "lat", 0, "current latitude (required)")
	cmd.Flags().Float64Var(&opts.Lon, "lon", 0, "current longitude (required)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "reason (required when late or leaving early)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func newRecordAbsentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "absent",
		Short:         "Record an absence (no location gate)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordAbsent(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "user name (required)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "reason (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runRecordClock(opts *RecordOptions, kind attendance.RequestKind, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	gate := geo.Gate{
		Site:    geo.Point{Lat: cfg.Site.Latitude, Lon: cfg.Site.Longitude},
		RadiusM: cfg.Site.RadiusM,
	}
	pos := geo.Point{Lat: opts.Lat, Lon: opts.Lon}
	distance, ok := gate.Check(pos)
	if !ok {
		return NewExitError(ExitRejected, fmt.Sprintf(
			"out of radius: %s from the site (allowed %.0fm)", geo.FormatMeters(distance), cfg.Site.RadiusM))
	}

	cache, err := openCache(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	recorder := attendance.NewRecorder(slog.Default(), cache, cache, cfg.AttendancePolicy())
	recorder.AllowName = cfg.AllowsName

	rec, err := recorder.Record(cmd.Context(), attendance.Request{
		Name:     opts.Name,
		Kind:     kind,
		Location: pos.String(),
		Distance: geo.FormatMeters(distance),
		Reason:   opts.Reason,
		Now:      time.Now().In(cfg.Location()),
	})
	if err != nil {
		return recordError(err)
	}
	return printRecord(opts.RootOptions, cmd, rec, geo.FormatMeters(distance))
}

func runRecordAbsent(opts *RecordOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	cache, err := openCache(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	recorder := attendance.NewRecorder(slog.Default(), cache, cache, cfg.AttendancePolicy())
	recorder.AllowName = cfg.AllowsName

	rec, err := recorder.Record(cmd.Context(), attendance.Request{
		Name:   opts.Name,
		Kind:   attendance.KindAbsent,
		Reason: opts.Reason,
		Now:    time.Now().In(cfg.Location()),
	})
	if err != nil {
		return recordError(err)
	}
	return printRecord(opts.RootOptions, cmd, rec, "")
}

// recordError maps the recorder's taxonomy onto exit codes: rejections
// exit 1, store trouble exits 2.
func recordError(err error) error {
	if attendance.IsReject(err) {
		return WrapExitError(ExitRejected, "rejected", err)
	}
	return WrapExitError(ExitCommandError, "record failed", err)
}

func printRecord(opts *RootOptions, cmd *cobra.Command, rec attendance.Record, distance string) error {
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"id":        rec.ID,
			"timestamp": rec.Timestamp.Format(attendance.TimestampLayout),
			"name":      rec.Name,
			"event":     string(rec.Event),
			"location":  rec.Location,
			"distance":  rec.Distance,
			"reason":    rec.Reason,
		})
	}
	if distance != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n",
			rec.Timestamp.Format(attendance.TimestampLayout), rec.Name, rec.Event, distance)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
			rec.Timestamp.Format(attendance.TimestampLayout), rec.Name, rec.Event)
	}
	return nil
}
