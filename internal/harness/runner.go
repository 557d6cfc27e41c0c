package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/go-cmp/cmp"
)

// Runner executes trials and classifies their outcomes. A Runner holds no
// per-trial state, so RunTrial may be called from parallel tests.
type Runner struct {
	backend      Backend
	executor     *Executor
	expectations Expectations
	logger       *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for the runner and its executor.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExpectations sets the trials known to fail.
func WithExpectations(e Expectations) RunnerOption {
	return func(r *Runner) {
		r.expectations = e
	}
}

// NewRunner returns a Runner over backend.
func NewRunner(backend Backend, opts ...RunnerOption) *Runner {
	r := &Runner{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.executor = NewExecutor(backend, r.logger)
	return r
}

// Backend returns the backend trials run against.
func (r *Runner) Backend() Backend {
	return r.backend
}

// RunTrial executes one trial. Panics raised while parsing or serializing are
// recovered and reported as OutcomePanic.
func (r *Runner) RunTrial(trial Trial) (res Result) {
	res = Result{ID: trial.ID}

	defer func() {
		if p := recover(); p != nil {
			res.Outcome = OutcomePanic
			res.Message = fmt.Sprintf("panic: %v", p)
		}
		r.applyExpectation(&res)
		if res.Outcome != OutcomePass {
			r.logger.Debug("trial did not pass",
				"trial", res.ID.String(),
				"outcome", string(res.Outcome),
			)
		}
	}()

	tc := trial.Testcase
	if tc.Document == nil {
		res.Outcome = OutcomeError
		res.Message = "test case has no #document section"
		return res
	}
	res.Expected = *tc.Document

	nodes, err := r.executor.Execute(&tc, trial.ID.Mode.Scripting())
	if err != nil {
		res.Outcome = OutcomeError
		if errors.Is(err, ErrNotImplemented) {
			res.Outcome = OutcomeUnimplemented
		}
		res.Message = err.Error()
		return res
	}

	res.Actual = Serialize(nodes)
	if res.Actual == res.Expected {
		res.Outcome = OutcomePass
		return res
	}
	res.Outcome = OutcomeFail
	res.Message = MismatchMessage(res.Expected, res.Actual)
	return res
}

// Run executes trials in order and returns their summary.
func (r *Runner) Run(trials []Trial) *Summary {
	summary := NewSummary(r.backend.Name())
	for _, t := range trials {
		summary.Add(r.RunTrial(t))
	}
	return summary
}

func (r *Runner) applyExpectation(res *Result) {
	if _, listed := r.expectations[res.ID.String()]; !listed {
		return
	}
	switch {
	case res.Outcome.Failed():
		res.Outcome = OutcomeExpectedFailure
	case res.Outcome == OutcomePass:
		res.Outcome = OutcomeUnexpectedPass
		res.Message = "trial is listed as an expected failure but passed"
	}
}

// MismatchMessage renders a canonical tree mismatch with both trees and a
// line diff.
func MismatchMessage(expected, actual string) string {
	return fmt.Sprintf("canonical tree mismatch\nexpected:\n%s\nactual:\n%s\ndiff (-expected +actual):\n%s",
		expected, actual, cmp.Diff(expected, actual))
}
