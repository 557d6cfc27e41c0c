package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/treeconf/internal/canon"
	"github.com/roach88/treeconf/internal/config"
	"github.com/roach88/treeconf/internal/harness"
	"github.com/roach88/treeconf/internal/store"
	"github.com/roach88/treeconf/internal/xnet"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // trial id filter (glob pattern)
	DB     string // run history database
}

// TrialReport is the reported outcome of one trial.
type TrialReport struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
	Digest  string `json:"digest,omitempty"`
	Message string `json:"message,omitempty"`
}

// TestReport is the result of a test run.
type TestReport struct {
	RunID   string         `json:"run_id,omitempty"`
	Backend string         `json:"backend"`
	Total   int            `json:"total"`
	Passed  int            `json:"passed"`
	Failed  int            `json:"failed"`
	Counts  map[string]int `json:"counts"`
	Trials  []TrialReport  `json:"trials"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test [corpus-dir...]",
		Short: "Run tree-construction corpora",
		Long: `Run every trial of the tree-construction corpora and compare the
canonical trees with the expected documents.

Corpus directories given as arguments replace the configured corpora.
Each test case runs once per scripting mode it allows.

Exit codes:
  0 - All trials passed (or failed as expected)
  1 - One or more trials failed
  2 - Command error (missing corpus, bad config, etc.)

Examples:
  treeconf test
  treeconf test ./tests/html5lib-tests/tree-construction
  treeconf test --filter "tests1.dat:*"
  treeconf test --db history.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter trials by glob pattern over trial ids")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this SQLite database")

	return cmd
}

func runTests(ctx context.Context, opts *TestOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	cfg, err := opts.loadConfig()
	if err != nil {
		return configError(f, err)
	}
	expectations, err := cfg.Expectations()
	if err != nil {
		return configError(f, err)
	}

	trials, err := loadTrials(f, cfg, args, opts.Filter)
	if err != nil {
		return err
	}
	logger.Debug("loaded trials", "count", len(trials))

	startedAt := opts.now()
	runner := harness.NewRunner(xnet.New(logger),
		harness.WithLogger(logger),
		harness.WithExpectations(expectations),
	)
	summary := runner.Run(trials)
	report := newTestReport(summary)

	if opts.DB != "" || cfg.Database != "" {
		if err := recordRun(ctx, f, cfg, opts, &report, startedAt); err != nil {
			return err
		}
		logger.Info("recorded run", "run_id", report.RunID)
	}

	if report.Failed > 0 {
		message := fmt.Sprintf("%d trial(s) failed", report.Failed)
		if err := f.Failure(report, ErrCodeTestFailed, message); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	return f.Success(report)
}

func newTestReport(s *harness.Summary) TestReport {
	report := TestReport{
		Backend: s.Backend,
		Total:   s.Total(),
		Passed:  s.Passed(),
		Failed:  s.Failed(),
		Counts:  make(map[string]int, len(s.Counts)),
		Trials:  make([]TrialReport, 0, len(s.Results)),
	}
	for o, n := range s.Counts {
		report.Counts[string(o)] = n
	}
	for _, r := range s.Results {
		tr := TrialReport{ID: r.ID.String(), Outcome: string(r.Outcome)}
		if r.Actual != "" {
			tr.Digest = canon.Digest(r.Actual)
		}
		if r.Outcome != harness.OutcomePass {
			tr.Message = r.Message
		}
		report.Trials = append(report.Trials, tr)
	}
	return report
}

// recordRun writes the report to the run history and stamps it with the
// new run id. The stored digest covers the report without its run id, so
// identical runs share a digest.
func recordRun(ctx context.Context, f *OutputFormatter, cfg *config.Config, opts *TestOptions, report *TestReport, startedAt time.Time) error {
	digest, err := canon.ReportDigest(report)
	if err != nil {
		return f.CommandError(ErrCodeGeneric, "failed to digest report", err)
	}

	s, err := openStore(f, cfg, opts.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	records := make([]store.TrialRecord, 0, len(report.Trials))
	for _, tr := range report.Trials {
		outcome := harness.Outcome(tr.Outcome)
		records = append(records, store.TrialRecord{
			TrialID: tr.ID,
			Outcome: tr.Outcome,
			Passed:  outcome.Passed(),
			Digest:  tr.Digest,
		})
	}

	run, err := s.WriteRun(ctx, store.Run{
		ID:           opts.runID(),
		Backend:      report.Backend,
		Total:        report.Total,
		Passed:       report.Passed,
		Failed:       report.Failed,
		ReportDigest: digest,
		StartedAt:    startedAt,
	}, records)
	if err != nil {
		return f.CommandError(ErrCodeDatabase, "failed to record run", err)
	}
	report.RunID = run.ID
	return nil
}

func (r TestReport) renderText(w io.Writer) {
	for _, tr := range r.Trials {
		switch harness.Outcome(tr.Outcome) {
		case harness.OutcomePass, harness.OutcomeExpectedFailure:
			continue
		case harness.OutcomeUnexpectedPass:
			fmt.Fprintf(w, "XPASS %s\n", tr.ID)
		default:
			fmt.Fprintf(w, "FAIL %s (%s)\n", tr.ID, tr.Outcome)
			if tr.Message != "" {
				fmt.Fprintln(w, tr.Message)
			}
		}
	}

	outcomes := make([]string, 0, len(r.Counts))
	for o := range r.Counts {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total)
	for _, o := range outcomes {
		fmt.Fprintf(w, "  %s: %d\n", o, r.Counts[o])
	}
	if r.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", r.RunID)
	}
	if r.Failed == 0 {
		fmt.Fprintln(w, "✓ All trials passed")
	}
}
