package harness

// Outcome classifies the result of a trial.
type Outcome string

const (
	// OutcomePass means the canonical tree matched "#document".
	OutcomePass Outcome = "pass"
	// OutcomeFail means the canonical tree differed from "#document".
	OutcomeFail Outcome = "fail"
	// OutcomeError means the parse could not complete: the tokenizer failed,
	// or the case has no "#document" section.
	OutcomeError Outcome = "error"
	// OutcomeUnimplemented means the tree builder asked for something the
	// harness does not model yet.
	OutcomeUnimplemented Outcome = "unimplemented"
	// OutcomePanic means an internal invariant broke while running the trial.
	OutcomePanic Outcome = "panic"
	// OutcomeExpectedFailure is a failure listed in the expectations.
	OutcomeExpectedFailure Outcome = "xfail"
	// OutcomeUnexpectedPass is a pass of a trial listed as failing.
	OutcomeUnexpectedPass Outcome = "xpass"
)

// Failed reports whether the outcome fails a run.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeFail, OutcomeError, OutcomeUnimplemented, OutcomePanic:
		return true
	default:
		return false
	}
}

// Passed reports whether the tree matched, whether or not it was expected to.
func (o Outcome) Passed() bool {
	return o == OutcomePass || o == OutcomeUnexpectedPass
}

// Result is the outcome of one trial.
type Result struct {
	ID      TrialID
	Outcome Outcome

	// Expected and Actual are the canonical trees. Actual is empty when the
	// parse did not complete.
	Expected string
	Actual   string

	// Message explains a non-passing outcome. For mismatches it holds the
	// expected/actual diff.
	Message string
}

// Summary aggregates the results of a run.
type Summary struct {
	Backend string
	Results []Result
	Counts  map[Outcome]int
}

// NewSummary returns an empty summary for backend.
func NewSummary(backend string) *Summary {
	return &Summary{
		Backend: backend,
		Results: []Result{},
		Counts:  make(map[Outcome]int),
	}
}

// Add records a result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
	s.Counts[r.Outcome]++
}

// Total returns the number of recorded results.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Failed returns the number of results that fail the run.
func (s *Summary) Failed() int {
	n := 0
	for o, c := range s.Counts {
		if o.Failed() {
			n += c
		}
	}
	return n
}

// Passed returns the number of results whose tree matched.
func (s *Summary) Passed() int {
	return s.Counts[OutcomePass] + s.Counts[OutcomeUnexpectedPass]
}

// OK reports whether no result fails the run.
func (s *Summary) OK() bool {
	return s.Failed() == 0
}
