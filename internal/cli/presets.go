package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cssturing/internal/preset"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "presets",
		Short:         "List the named root rows",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, cmd)
		},
	}

	return cmd
}

func runPresets(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	presets := preset.List()

	if formatter.JSON() {
		return formatter.Success(presets)
	}

	w := formatter.Writer
	key := opts.style(colorCyan...)
	for _, p := range presets {
		source := "generator: " + p.Generator
		if len(p.Data) > 0 {
			source = fmt.Sprintf("%d cell(s): %s", len(p.Data), dataString(p.Data))
		}
		fmt.Fprintf(w, "%s  %s\n", key.Sprintf("%-16s", p.Key), p.Name)
		fmt.Fprintf(w, "%-16s  %s\n", "", p.Description)
		fmt.Fprintf(w, "%-16s  %s\n", "", source)
	}
	return nil
}

func dataString(data []int) string {
	var b strings.Builder
	for _, v := range data {
		fmt.Fprint(&b, v)
	}
	return b.String()
}
