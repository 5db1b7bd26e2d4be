package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpaint/internal/config"
	"github.com/roach88/layerpaint/internal/harness"
	"github.com/roach88/layerpaint/internal/layer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Catalog is a CUE layer table replacing the built-in one.
	Catalog string

	// Capacities for history stacks and the replay log. 0 means the
	// package default.
	HistoryCapacity int
	ReplayCapacity  int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the layerpaint CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "layerpaint",
		Short: "layerpaint - layered pixel painting",
		Long: `Paint a grid of squares with stacked colour layers under a SET, ADD or
SEQUENCE composition policy, with undo/redo and replay.

Settings may also come from the environment (LAYERPAINT_HISTORY_CAPACITY,
LAYERPAINT_REPLAY_CAPACITY, LAYERPAINT_CATALOG, LAYERPAINT_LOG_LEVEL);
flags win over the environment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load()
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid environment", err)
			}
			applyConfig(cmd, opts, cfg)
			setupLogging(cmd, opts, cfg)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Catalog, "catalog", "", "CUE layer catalog (default: built-in)")
	cmd.PersistentFlags().IntVar(&opts.HistoryCapacity, "history-capacity", 0, "undo/redo stack capacity (0 = default)")
	cmd.PersistentFlags().IntVar(&opts.ReplayCapacity, "replay-capacity", 0, "replay log capacity (0 = default)")

	// Add subcommands
	cmd.AddCommand(NewLayersCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// applyConfig fills every option whose flag was not set from cfg.
func applyConfig(cmd *cobra.Command, opts *RootOptions, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("catalog") {
		opts.Catalog = cfg.Catalog
	}
	if !flags.Changed("history-capacity") {
		opts.HistoryCapacity = cfg.HistoryCapacity
	}
	if !flags.Changed("replay-capacity") {
		opts.ReplayCapacity = cfg.ReplayCapacity
	}
}

func setupLogging(cmd *cobra.Command, opts *RootOptions, cfg config.Config) {
	level := cfg.LogLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(opts *RootOptions) (*layer.Catalog, error) {
	if opts.Catalog == "" {
		return layer.Default(), nil
	}
	cat, err := layer.LoadCatalogFile(opts.Catalog)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	slog.Debug("catalog loaded", "path", opts.Catalog, "layers", cat.Len())
	return cat, nil
}

// harnessOptions translates global flags into harness options.
func harnessOptions(opts *RootOptions) ([]harness.Option, error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, err
	}
	hopts := []harness.Option{
		harness.WithCatalog(cat),
		harness.WithLogger(slog.Default()),
	}
	if opts.HistoryCapacity < 0 || opts.ReplayCapacity < 0 {
		return nil, NewExitError(ExitCommandError, "capacities must be non-negative")
	}
	if opts.HistoryCapacity > 0 || opts.ReplayCapacity > 0 {
		hc, rc := opts.HistoryCapacity, opts.ReplayCapacity
		if hc == 0 {
			hc = config.Default().HistoryCapacity
		}
		if rc == 0 {
			rc = config.Default().ReplayCapacity
		}
		hopts = append(hopts, harness.WithCapacities(hc, rc))
	}
	return hopts, nil
}
