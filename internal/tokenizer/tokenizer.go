// Package tokenizer defines the contract the harness expects from an HTML
// tokenizer: it is built over the input text and a token sink, may be told
// its initial scanning state, and is then run to completion.
package tokenizer

import "fmt"

// State is the tokenizer's own scanning-state enumeration.
type State int

const (
	StateData State = iota
	StatePlainText
	StateRcData
	StateRawText
	StateScriptData
)

func (s State) String() string {
	switch s {
	case StateData:
		return "Data"
	case StatePlainText:
		return "PlainText"
	case StateRcData:
		return "RcData"
	case StateRawText:
		return "RawText"
	case StateScriptData:
		return "ScriptData"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tokenizer scans input and feeds tokens to its sink.
type Tokenizer interface {
	// SetState sets the scanning state used before the first token.
	SetState(State)

	// Run drains the input. A non-nil error means tokenization failed and
	// the sink's tree must not be used.
	Run() error
}
