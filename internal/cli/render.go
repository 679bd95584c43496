package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/preset"
	"github.com/roach88/cssturing/internal/render"
)

// defaultRenderCols is the root width used with --preset when --cols is unset.
const defaultRenderCols = 16

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Rows   int
	Cols   int
	Cap    int
	Preset string
	Bits   string
	Seed   uint64
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	Preset      string   `json:"preset,omitempty"`
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Depth       int      `json:"depth"`
	Root        string   `json:"root"`
	Lines       []string `json:"lines"` // root first, '1' active
	ActiveCount int      `json:"active_count"`
	Uncompiled  int      `json:"uncompiled"`
	Note        string   `json:"note,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Evaluate a compiled rule set against a root row",
		Long: `Compile the grid, then decide every derived cell by matching the rules
against a root row, exactly as a browser would apply the stylesheet.

Examples:
  cssturing render --preset single --cols 24 --rows 6
  cssturing render --bits 0001101110 --rows 4
  cssturing render --preset random --seed 7 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Rows, "rows", compiler.DefaultCap, "derived rows")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "root row width (defaults to the bits length, or 16 for presets)")
	cmd.Flags().IntVar(&opts.Cap, "cap", compiler.DefaultCap, "depth cap")
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", "", "preset key, listed by 'cssturing presets'")
	cmd.Flags().StringVarP(&opts.Bits, "bits", "b", "", "root row as 0/1 characters")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the random preset")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())
	defer logger.Sync()

	root, err := renderRoot(opts)
	if err != nil {
		return failWith(formatter, err)
	}

	rs, err := compiler.New(compiler.Options{Cap: opts.Cap, Logger: logger}).Compile(opts.Rows, len(root))
	if err != nil {
		return failWith(formatter, err)
	}

	grid, err := render.Evaluate(rs, root)
	if err != nil {
		return failWith(formatter, err)
	}

	result := RenderResult{
		Preset:      opts.Preset,
		Rows:        rs.Rows,
		Cols:        rs.Cols,
		Depth:       rs.Depth,
		Lines:       grid.Lines("1", "0"),
		ActiveCount: grid.ActiveCount(),
		Uncompiled:  grid.Uncompiled(),
		Note:        rs.Note,
	}
	result.Root = result.Lines[0]

	if formatter.JSON() {
		return formatter.Success(result)
	}
	printGrid(formatter, opts, grid, result)
	return nil
}

func renderRoot(opts *RenderOptions) ([]bool, error) {
	if (opts.Preset == "") == (opts.Bits == "") {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "exactly one of --preset or --bits is required"}
	}

	if opts.Bits != "" {
		root, err := parseBits(opts.Bits)
		if err != nil {
			return nil, err
		}
		if opts.Cols != 0 && opts.Cols != len(root) {
			return nil, &LoadError{
				Code:    ErrCodeInvalidBits,
				Message: fmt.Sprintf("--bits has %d cells but --cols is %d", len(root), opts.Cols),
			}
		}
		return root, nil
	}

	p, err := preset.Lookup(opts.Preset)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeUnknownPreset, Message: err.Error()}
	}
	cols := opts.Cols
	if cols == 0 {
		cols = defaultRenderCols
	}
	root, err := p.Vector(cols, opts.Seed)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidCols, Message: err.Error()}
	}
	return root, nil
}

func printGrid(formatter *OutputFormatter, opts *RenderOptions, grid *render.Grid, result RenderResult) {
	w := formatter.Writer
	rootStyle := opts.style(colorCyan...)
	activeStyle := opts.style(colorGreen...)

	if opts.Preset != "" {
		p, _ := preset.Lookup(opts.Preset)
		fmt.Fprintf(w, "%s (%s)\n", p.Name, p.Key)
	}

	for row := 0; row <= grid.Depth(); row++ {
		style := activeStyle
		if row == 0 {
			style = rootStyle
		}
		var b strings.Builder
		for col := 0; col < grid.Cols(); col++ {
			if grid.Active(row, col) {
				b.WriteString(style.Sprint("#"))
			} else {
				b.WriteString(".")
			}
		}
		fmt.Fprintf(w, "%2d  %s\n", row, b.String())
	}

	fmt.Fprintf(w, "\n%d active cell(s) in %d derived row(s)\n", result.ActiveCount, result.Depth)
	if result.Note != "" {
		opts.style(colorYellow...).Fprintf(w, "Note: %s\n", result.Note)
	}
}
