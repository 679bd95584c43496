package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cssturing/internal/store"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List compile runs recorded in a rule-set cache",
		Long: `List every compile run recorded by "cssturing compile --db", in the
order the runs happened.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(rootOpts, dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite rule-set cache (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, fmt.Sprintf("opening rule-set cache: %v", err), nil)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return formatter.Fail(ErrCodeStoreFailed, err.Error(), nil)
	}

	if formatter.JSON() {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-36s %-12s %5s %5s %7s %s\n", "SEQ", "ID", "HASH", "ROWS", "COLS", "WORKERS", "CACHED")
	for _, r := range runs {
		cached := "no"
		if r.CacheHit {
			cached = "yes"
		}
		fmt.Fprintf(w, "%-5d %-36s %-12s %5d %5d %7d %s\n",
			r.Seq, r.ID, shortHash(r.Hash), r.Rows, r.Cols, r.Workers, cached)
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
