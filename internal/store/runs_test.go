package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treeconf/internal/testutil"
)

func testRun(n int64) Run {
	return Run{
		ID:           testutil.RunID(n),
		Backend:      "golang.org/x/net/html",
		Total:        2,
		Passed:       1,
		Failed:       1,
		ReportDigest: "digest",
		StartedAt:    testutil.FixedTime,
	}
}

func TestWriteRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r1, err := s.WriteRun(ctx, testRun(1), nil)
	require.NoError(t, err)
	r2, err := s.WriteRun(ctx, testRun(2), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), r1.Seq)
	assert.Equal(t, int64(2), r2.Seq)
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	trials := []TrialRecord{
		{TrialID: "b.dat:1:noscript", Outcome: "pass", Passed: true, Digest: "d1"},
		{TrialID: "a.dat:1:noscript", Outcome: "error", Passed: false},
	}
	written, err := s.WriteRun(ctx, testRun(1), trials)
	require.NoError(t, err)

	got, err := s.GetRun(ctx, testutil.RunID(1))
	require.NoError(t, err)
	assert.Equal(t, written, got)
	assert.True(t, testutil.FixedTime.Equal(got.StartedAt))

	outcomes, err := s.TrialOutcomes(ctx, written.ID)
	require.NoError(t, err)
	assert.Equal(t, trials, outcomes, "trials keep execution order")
}

func TestWriteRun_DuplicateIDRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, testRun(1), nil)
	require.NoError(t, err)

	_, err = s.WriteRun(ctx, testRun(1), []TrialRecord{{TrialID: "x.dat:1:noscript", Outcome: "pass", Passed: true}})
	require.Error(t, err)

	outcomes, err := s.TrialOutcomes(ctx, testutil.RunID(1))
	require.NoError(t, err)
	assert.Empty(t, outcomes, "failed write leaves no trial rows")
}

func TestWriteRun_DuplicateTrialRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	dup := TrialRecord{TrialID: "x.dat:1:noscript", Outcome: "pass", Passed: true}
	_, err := s.WriteRun(ctx, testRun(1), []TrialRecord{dup, dup})
	require.Error(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestGetRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestListAndLatestRuns_Order(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for n := int64(1); n <= 3; n++ {
		_, err := s.WriteRun(ctx, testRun(n), nil)
		require.NoError(t, err)
	}

	all, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, testutil.RunID(1), all[0].ID)
	assert.Equal(t, testutil.RunID(3), all[2].ID)

	latest, err := s.LatestRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, testutil.RunID(3), latest[0].ID)
	assert.Equal(t, testutil.RunID(2), latest[1].ID)
}

func TestRegressions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, testRun(1), []TrialRecord{
		{TrialID: "t.dat:1:noscript", Outcome: "pass", Passed: true},
		{TrialID: "t.dat:2:noscript", Outcome: "pass", Passed: true},
		{TrialID: "t.dat:3:noscript", Outcome: "fail", Passed: false},
		{TrialID: "t.dat:4:noscript", Outcome: "xpass", Passed: true},
		{TrialID: "t.dat:5:noscript", Outcome: "pass", Passed: true},
	})
	require.NoError(t, err)
	_, err = s.WriteRun(ctx, testRun(2), []TrialRecord{
		{TrialID: "t.dat:4:noscript", Outcome: "xfail", Passed: false},
		{TrialID: "t.dat:1:noscript", Outcome: "pass", Passed: true},
		{TrialID: "t.dat:2:noscript", Outcome: "panic", Passed: false},
		{TrialID: "t.dat:3:noscript", Outcome: "fail", Passed: false},
	})
	require.NoError(t, err)

	got, err := s.Regressions(ctx, testutil.RunID(1), testutil.RunID(2))
	require.NoError(t, err)
	assert.Equal(t, []Regression{
		{TrialID: "t.dat:4:noscript", BaseOutcome: "xpass", Outcome: "xfail"},
		{TrialID: "t.dat:2:noscript", BaseOutcome: "pass", Outcome: "panic"},
	}, got)

	none, err := s.Regressions(ctx, testutil.RunID(2), testutil.RunID(1))
	require.NoError(t, err)
	assert.Empty(t, none, "fixes are not regressions")
}

func TestRegressions_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, testRun(1), nil)
	require.NoError(t, err)

	_, err = s.Regressions(ctx, testutil.RunID(1), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
