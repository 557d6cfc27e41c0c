package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/treeconf/internal/dom"
)

// RunTrials reports every trial as a parallel subtest of t named by its
// trial id. Mismatches fail with the expected/actual diff; panics and
// unmodeled tree builder requests fail with a message naming them.
func RunTrials(t *testing.T, r *Runner, trials []Trial) {
	t.Helper()

	for _, trial := range trials {
		trial := trial
		t.Run(trial.ID.String(), func(t *testing.T) {
			t.Parallel()

			res := r.RunTrial(trial)
			switch res.Outcome {
			case OutcomePass:
			case OutcomeExpectedFailure:
				reason, _ := r.expectations.Reason(res.ID)
				t.Skipf("expected failure: %s", reason)
			case OutcomeUnexpectedPass:
				t.Logf("%s: %s", res.ID, res.Message)
			case OutcomeUnimplemented:
				t.Fatalf("%s: %s", res.ID, res.Message)
			case OutcomePanic:
				t.Fatalf("%s panicked: %s", res.ID, res.Message)
			default:
				t.Fatalf("%s: %s", res.ID, res.Message)
			}
		})
	}
}

// AssertGolden compares the canonical form of nodes against the golden file
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, nodes []*dom.Node) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(Serialize(nodes)))
}
