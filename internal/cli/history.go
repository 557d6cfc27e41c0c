package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/treeconf/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB string
}

// HistoryResult lists recorded runs, oldest first.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recorded runs",
		Long:          `List the runs recorded with "test --db", oldest first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "run history database")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return configError(f, err)
	}
	s, err := openStore(f, cfg, opts.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(ctx)
	if err != nil {
		return f.CommandError(ErrCodeDatabase, "failed to list runs", err)
	}
	return f.Success(HistoryResult{Runs: runs})
}

func (r HistoryResult) renderText(w io.Writer) {
	if len(r.Runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, run := range r.Runs {
		fmt.Fprintf(w, "%d  %s  %s  %d passed, %d failed, %d total\n",
			run.Seq, run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.Passed, run.Failed, run.Total)
	}
}
