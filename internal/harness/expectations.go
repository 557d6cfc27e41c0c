package harness

import "fmt"

// Expectations maps trial ids known to fail to the reason they fail.
type Expectations map[string]string

// NewExpectations builds Expectations from id/reason pairs, rejecting
// malformed ids.
func NewExpectations(entries map[string]string) (Expectations, error) {
	e := make(Expectations, len(entries))
	for id, reason := range entries {
		if _, err := ParseTrialID(id); err != nil {
			return nil, fmt.Errorf("expected failure: %w", err)
		}
		e[id] = reason
	}
	return e, nil
}

// Reason returns why id is expected to fail.
func (e Expectations) Reason(id TrialID) (string, bool) {
	reason, ok := e[id.String()]
	return reason, ok
}
