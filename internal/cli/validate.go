package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/rule110"
)

// ValidationResult is the JSON payload of a successful validate.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Config Config `json:"config"`
	Depth  int    `json:"depth"`
	Units  int    `json:"units"`
	// Assignments is the number of root assignments compile will enumerate.
	Assignments int    `json:"assignments"`
	Note        string `json:"note,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.cue>",
		Short: "Validate a compile config without compiling",
		Long: `Validate a CUE compile config against the #Config schema and report the
work a compile would do: compiled depth, cell count, enumerated assignments,
and the truncation note when rows exceed the cap.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := LoadConfig(path)
	if err != nil {
		return failWith(formatter, err)
	}
	formatter.VerboseLog("Loaded %s", path)

	result := planCompile(*cfg)

	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	opts.style(colorGreen...).Fprintf(w, "✓ %s is valid\n", path)
	fmt.Fprintf(w, "  rows=%d cols=%d cap=%d workers=%d\n", cfg.Rows, cfg.Cols, cfg.Cap, cfg.Workers)
	fmt.Fprintf(w, "  depth %d, %d cell(s), %d assignment(s) to enumerate\n", result.Depth, result.Units, result.Assignments)
	if result.Note != "" {
		opts.style(colorYellow...).Fprintf(w, "  Note: %s\n", result.Note)
	}
	return nil
}

// planCompile sizes a compile without running it.
func planCompile(cfg Config) ValidationResult {
	depth := min(cfg.Rows, cfg.Cap)
	result := ValidationResult{
		Valid:  true,
		Config: cfg,
		Depth:  depth,
		Units:  depth * cfg.Cols,
	}
	for row := 1; row <= depth; row++ {
		result.Assignments += cfg.Cols << uint(rule110.WindowWidth(row))
	}
	if cfg.Rows > cfg.Cap {
		result.Note = compiler.TruncationNote(cfg.Cap, cfg.Rows)
	}
	return result
}
