package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/cssturing/internal/compiler"
	"github.com/roach88/cssturing/internal/ir"
	"github.com/roach88/cssturing/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Rows     int
	Cols     int
	Cap      int
	Workers  int
	Config   string // CUE config file
	Output   string // stylesheet path; stdout when empty
	DB       string // rule-set cache
	Progress bool
}

// CompileResult is the JSON payload of a successful compile.
type CompileResult struct {
	Rows       int            `json:"rows"`
	Cols       int            `json:"cols"`
	Depth      int            `json:"depth"`
	Cap        int            `json:"cap"`
	RuleCount  int            `json:"rule_count"`
	Note       string         `json:"note,omitempty"`
	Hash       string         `json:"hash"`
	Stats      compiler.Stats `json:"stats"`
	Cached     bool           `json:"cached"`
	RunID      string         `json:"run_id,omitempty"`
	Output     string         `json:"output,omitempty"`
	Stylesheet string         `json:"stylesheet,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile Rule 110 into a stylesheet",
		Long: `Compile rows x cols of Rule 110 evolution into CSS sibling-selector rules.

Dimensions come from --rows/--cols or from a CUE file given with --config;
flags override file values. Rows past the depth cap are left uncompiled and
a note naming them is appended to the stylesheet.

Examples:
  cssturing compile --rows 6 --cols 40 -o rules.css
  cssturing compile --config grid.cue --workers 8 --progress
  cssturing compile --rows 15 --cols 40 --db cache.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "derived rows to compile")
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, "root row width")
	cmd.Flags().IntVar(&opts.Cap, "cap", compiler.DefaultCap, "depth cap")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "units compiled in parallel (0 = sequential)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "CUE config file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the stylesheet to this file")
	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite rule-set cache")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

// resolveConfig merges the config file (if any) with explicitly set flags.
func resolveConfig(opts *CompileOptions, cmd *cobra.Command) (Config, error) {
	cfg := Config{Cap: compiler.DefaultCap}
	if opts.Config != "" {
		loaded, err := LoadConfig(opts.Config)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if opts.Config == "" || flags.Changed("rows") {
		cfg.Rows = opts.Rows
	}
	if opts.Config == "" || flags.Changed("cols") {
		cfg.Cols = opts.Cols
	}
	if opts.Config == "" || flags.Changed("cap") {
		cfg.Cap = opts.Cap
	}
	if opts.Config == "" || flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	return cfg, nil
}

func runCompile(ctx context.Context, opts *CompileOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())
	defer logger.Sync()

	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		return failWith(formatter, err)
	}
	formatter.VerboseLog("Compiling rows=%d cols=%d cap=%d workers=%d", cfg.Rows, cfg.Cols, cfg.Cap, cfg.Workers)

	var st *store.Store
	if opts.DB != "" {
		st, err = store.Open(opts.DB)
		if err != nil {
			return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("opening rule-set cache: %v", err), nil)
		}
		defer st.Close()
	}

	result, text, err := compileOrLoad(ctx, st, cfg, opts, cmd, logger)
	if err != nil {
		return failWith(formatter, err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(text), 0644); err != nil {
			return formatter.Fail(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		result.Output = opts.Output
	}

	return outputCompileSuccess(formatter, opts, result, text)
}

// compileOrLoad serves the rule set from the cache when possible, compiles
// otherwise, and records the run when a cache is configured.
func compileOrLoad(ctx context.Context, st *store.Store, cfg Config, opts *CompileOptions, cmd *cobra.Command, logger *zap.Logger) (*CompileResult, string, error) {
	result := &CompileResult{Rows: cfg.Rows, Cols: cfg.Cols, Cap: cfg.Cap}
	var text string

	var cached *store.Entry
	if st != nil {
		entry, err := st.FindRuleSet(ctx, cfg.Rows, cfg.Cols, cfg.Cap)
		switch {
		case err == nil:
			cached = entry
		case !errors.Is(err, store.ErrNotFound):
			return nil, "", storeError(err)
		}
	}

	if cached != nil {
		logger.Debug("rule set served from cache", zap.String("hash", cached.Hash))
		rs := cached.RuleSet
		text = cached.Stylesheet
		result.Depth = rs.Depth
		result.RuleCount = rs.Count()
		result.Note = rs.Note
		result.Hash = cached.Hash
		result.Stats = compiler.Stats{Units: rs.Depth * rs.Cols, Emitted: rs.Count()}
		result.Cached = true
	} else {
		out, err := compileWithProgress(cfg, opts, cmd, logger)
		if err != nil {
			return nil, "", err
		}
		text = out.Text
		result.Depth = out.RuleSet.Depth
		result.RuleCount = out.RuleCount
		result.Note = out.Note
		result.Hash = out.Hash
		result.Stats = out.Stats

		if st != nil {
			if _, _, err := st.PutRuleSet(ctx, out.RuleSet, out.Text); err != nil {
				return nil, "", storeError(err)
			}
		}
	}

	if st != nil {
		run, err := st.RecordRun(ctx, store.Run{
			Hash:     result.Hash,
			Rows:     cfg.Rows,
			Cols:     cfg.Cols,
			Workers:  cfg.Workers,
			CacheHit: result.Cached,
		})
		if err != nil {
			return nil, "", storeError(err)
		}
		result.RunID = run.ID
		logger.Debug("recorded compile run", zap.String("id", run.ID), zap.Int64("seq", run.Seq))
	}

	return result, text, nil
}

func compileWithProgress(cfg Config, opts *CompileOptions, cmd *cobra.Command, logger *zap.Logger) (*compiler.Output, error) {
	copts := compiler.Options{
		Cap:     cfg.Cap,
		Workers: cfg.Workers,
		Logger:  logger,
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		units := max(0, min(cfg.Rows, cfg.Cap)*cfg.Cols)
		bar = progressbar.NewOptions(units,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription(fmt.Sprintf("compiling %dx%d", cfg.Rows, cfg.Cols)),
			progressbar.OptionEnableColorCodes(!opts.NoColor),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		copts.Progress = func(ir.Coordinate) {
			_ = bar.Add(1)
		}
	}

	out, err := compiler.New(copts).CompileText(cfg.Rows, cfg.Cols)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	return out, err
}

func outputCompileSuccess(formatter *OutputFormatter, opts *CompileOptions, result *CompileResult, text string) error {
	if formatter.JSON() {
		if result.Output == "" {
			result.Stylesheet = text
		}
		return formatter.Success(result)
	}

	// Without --output the stylesheet itself is the command's output.
	if result.Output == "" {
		fmt.Fprint(formatter.Writer, text)
		formatter.VerboseLog("%d rule(s), hash %s", result.RuleCount, result.Hash)
		return nil
	}

	ok := opts.style(colorGreen...)
	ok.Fprintf(formatter.Writer, "✓ Compiled %d rule(s)", result.RuleCount)
	fmt.Fprintf(formatter.Writer, " for rows=%d cols=%d (depth %d, cap %d)\n",
		result.Rows, result.Cols, result.Depth, result.Cap)
	if result.Cached {
		fmt.Fprintln(formatter.Writer, "  served from cache")
	}
	if result.Note != "" {
		opts.style(colorYellow...).Fprintf(formatter.Writer, "  Note: %s\n", result.Note)
	}
	fmt.Fprintf(formatter.Writer, "  hash: %s\n", result.Hash)
	fmt.Fprintf(formatter.Writer, "Wrote stylesheet to %s\n", result.Output)
	return nil
}

// failWith prints err with its classified code and returns exit code 2.
func failWith(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		var details any
		if loc := loadErr.Location(); loc != "" {
			details = map[string]string{"position": loc}
		}
		return formatter.Fail(loadErr.Code, loadErr.Message, details)
	}
	return formatter.Fail(classifyError(err), err.Error(), nil)
}

func storeError(err error) error {
	return &LoadError{Code: ErrCodeStoreFailed, Message: err.Error()}
}
