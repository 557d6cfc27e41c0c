package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/treeconf/internal/store"
)

// RegressionsOptions holds flags for the regressions command.
type RegressionsOptions struct {
	*RootOptions
	DB string
}

// RegressionsResult lists trials that stopped passing between two runs.
type RegressionsResult struct {
	Base        string             `json:"base"`
	Run         string             `json:"run"`
	Regressions []store.Regression `json:"regressions"`
}

// NewRegressionsCommand creates the regressions command.
func NewRegressionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegressionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "regressions [base-run run]",
		Short: "Compare two recorded runs",
		Long: `List trials that passed in the base run and do not pass in the later run.

Without arguments the two most recent runs are compared.

Exit codes:
  0 - No regressions
  1 - One or more trials regressed
  2 - Command error (no database, unknown run, etc.)`,
		Args:          cobra.MatchAll(cobra.MaximumNArgs(2), exactlyZeroOrTwo),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegressions(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "run history database")

	return cmd
}

func exactlyZeroOrTwo(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("accepts 0 or 2 arg(s), received 1")
	}
	return nil
}

func runRegressions(ctx context.Context, opts *RegressionsOptions, args []string, cmd *cobra.Command) error {
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

	var baseID, runID string
	if len(args) == 2 {
		baseID, runID = args[0], args[1]
	} else {
		latest, err := s.LatestRuns(ctx, 2)
		if err != nil {
			return f.CommandError(ErrCodeDatabase, "failed to list runs", err)
		}
		if len(latest) < 2 {
			return f.CommandError(ErrCodeDatabase, "need at least two recorded runs", nil)
		}
		baseID, runID = latest[1].ID, latest[0].ID
	}

	regressions, err := s.Regressions(ctx, baseID, runID)
	if err != nil {
		return f.CommandError(ErrCodeDatabase, "failed to compare runs", err)
	}

	result := RegressionsResult{Base: baseID, Run: runID, Regressions: regressions}
	if len(regressions) > 0 {
		message := fmt.Sprintf("%d trial(s) regressed", len(regressions))
		if err := f.Failure(result, ErrCodeRegressions, message); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	return f.Success(result)
}

func (r RegressionsResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "Comparing %s -> %s\n", r.Base, r.Run)
	if len(r.Regressions) == 0 {
		fmt.Fprintln(w, "✓ No regressions")
		return
	}
	for _, reg := range r.Regressions {
		fmt.Fprintf(w, "REGRESSED %s (%s -> %s)\n", reg.TrialID, reg.BaseOutcome, reg.Outcome)
	}
}
