package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded harness run. Seq is assigned by WriteRun.
type Run struct {
	ID           string    `json:"id"`
	Seq          int64     `json:"seq"`
	Backend      string    `json:"backend"`
	Total        int       `json:"total"`
	Passed       int       `json:"passed"`
	Failed       int       `json:"failed"`
	ReportDigest string    `json:"report_digest"`
	StartedAt    time.Time `json:"started_at"`
}

// TrialRecord is the stored outcome of one trial. Digest is empty when the
// parse produced no tree.
type TrialRecord struct {
	TrialID string `json:"trial_id"`
	Outcome string `json:"outcome"`
	Passed  bool   `json:"passed"`
	Digest  string `json:"digest,omitempty"`
}

// Regression is a trial that passed in the base run but not in the later one.
type Regression struct {
	TrialID     string `json:"trial_id"`
	BaseOutcome string `json:"base_outcome"`
	Outcome     string `json:"outcome"`
}

// WriteRun records run and its trials in one transaction and returns the
// run with its assigned seq. Trials keep the order given.
func (s *Store) WriteRun(ctx context.Context, run Run, trials []TrialRecord) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, backend, total, passed, failed, report_digest, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Backend,
		run.Total,
		run.Passed,
		run.Failed,
		run.ReportDigest,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trials (run_id, trial_id, seq, outcome, passed, digest)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("write trials: %w", err)
	}
	defer stmt.Close()

	for i, tr := range trials {
		if _, err := stmt.ExecContext(ctx, run.ID, tr.TrialID, i+1, tr.Outcome, tr.Passed, tr.Digest); err != nil {
			return Run{}, fmt.Errorf("write trial %s: %w", tr.TrialID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

const runColumns = `id, seq, backend, total, passed, failed, report_digest, started_at`

// ListRuns returns every run, oldest first.
// Returns an empty slice (not nil) when no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run with the given id, or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// LatestRuns returns up to n runs, newest first.
func (s *Store) LatestRuns(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// TrialOutcomes returns the trials of a run in execution order.
func (s *Store) TrialOutcomes(ctx context.Context, runID string) ([]TrialRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trial_id, outcome, passed, digest
		FROM trials
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query trials: %w", err)
	}
	defer rows.Close()

	trials := []TrialRecord{}
	for rows.Next() {
		var tr TrialRecord
		if err := rows.Scan(&tr.TrialID, &tr.Outcome, &tr.Passed, &tr.Digest); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		trials = append(trials, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trials: %w", err)
	}
	return trials, nil
}

// Regressions returns trials present in both runs that passed in base and
// do not pass in run, in run's execution order.
func (s *Store) Regressions(ctx context.Context, baseID, runID string) ([]Regression, error) {
	for _, id := range []string{baseID, runID} {
		if _, err := s.GetRun(ctx, id); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cur.trial_id, base.outcome, cur.outcome
		FROM trials cur
		JOIN trials base ON base.trial_id = cur.trial_id AND base.run_id = ?
		WHERE cur.run_id = ? AND base.passed = 1 AND cur.passed = 0
		ORDER BY cur.seq ASC
	`, baseID, runID)
	if err != nil {
		return nil, fmt.Errorf("query regressions: %w", err)
	}
	defer rows.Close()

	regressions := []Regression{}
	for rows.Next() {
		var r Regression
		if err := rows.Scan(&r.TrialID, &r.BaseOutcome, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan regression: %w", err)
		}
		regressions = append(regressions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regressions: %w", err)
	}
	return regressions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r         Run
		startedAt string
	)
	err := row.Scan(&r.ID, &r.Seq, &r.Backend, &r.Total, &r.Passed, &r.Failed, &r.ReportDigest, &startedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", r.ID, err)
	}
	return r, nil
}
