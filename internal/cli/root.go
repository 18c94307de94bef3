// Package cli implements the chulgeun command line: recording attendance
// events, checking derived status, monthly reports, CSV export, and the
// HTTP server for the browser UI.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minseo-lab/chulgeun/internal/config"
	"github.com/minseo-lab/chulgeun/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the chulgeun CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "chulgeun",
		Short: "chulgeun - location-gated attendance logger",
		Long:  "Records clock-in/out events gated on distance to the site and reports monthly attendance.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to config YAML (defaults apply when omitted)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func setupLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads the configured YAML file, or the built-in defaults when
// no --config was given.
func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.ConfigPath)
}

// openCache opens the configured store backend and wraps it in the TTL
// read cache. The caller owns Close.
func openCache(cfg config.Config) (*store.Cache, error) {
	var (
		rs  store.RecordStore
		err error
	)
	switch cfg.Store.Backend {
	case "workbook":
		rs, err = store.OpenWorkbook(cfg.Store.Path, cfg.Store.Sheet)
	default:
		rs, err = store.Open(cfg.Store.Path)
	}
	if err != nil {
		return nil, err
	}
	return store.NewCache(rs, cfg.CacheTTL()), nil
}
