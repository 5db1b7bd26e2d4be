package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LayerInfo describes one catalog entry.
type LayerInfo struct {
	Index uint   `json:"index"`
	Name  string `json:"name"`
}

// NewLayersCommand creates the layers command.
func NewLayersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List the layer catalog",
		Long: `List every layer in the catalog with its index.

Indices follow declaration order in the catalog; SEQUENCE cells keep
layers sorted by index.

Examples:
  layerpaint layers
  layerpaint layers --catalog ./my-layers.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(rootOpts, cmd)
		},
	}
}

func runLayers(opts *RootOptions, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts)

	cat, err := loadCatalog(opts)
	if err != nil {
		_ = f.Failure(err)
		return err
	}

	infos := make([]LayerInfo, 0, cat.Len())
	for _, k := range cat.All() {
		infos = append(infos, LayerInfo{Index: k.Index, Name: k.Name})
	}

	if opts.Format == "json" {
		return f.Success(infos)
	}

	var b strings.Builder
	for _, info := range infos {
		fmt.Fprintf(&b, "%3d  %s\n", info.Index, info.Name)
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
