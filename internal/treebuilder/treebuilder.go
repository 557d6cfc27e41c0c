// Package treebuilder defines the contract the harness expects from an HTML
// tree-construction stage.
//
// A tree builder is created in document mode or in fragment mode anchored at
// a context element. In fragment mode it can tell the tokenizer which
// scanning state to start in. After the tokenizer that feeds it has run to
// completion, the finished tree is available from Document.
package treebuilder

import (
	"fmt"

	"github.com/roach88/treeconf/internal/dom"
)

// Options configures tree construction.
type Options struct {
	// ScriptingEnabled selects the scripting flag of the HTML parser. It
	// changes how noscript is handled.
	ScriptingEnabled bool
}

// DefaultOptions returns the options a browser would use: scripting on.
func DefaultOptions() Options {
	return Options{ScriptingEnabled: true}
}

// StateKind enumerates the tokenizer states a tree builder may request.
// Tree builders only ever ask for Data, Plaintext or RawData when setting up
// a fragment context; the remaining states exist because the tokenizer
// state machine has them and a builder could grow a need for one.
type StateKind int

const (
	StateData StateKind = iota
	StatePlaintext
	StateRawData
	StateTagOpen
	StateCDATASection
	StateCharacterReference
)

// RawKind qualifies StateRawData.
type RawKind int

const (
	RawRCDATA RawKind = iota
	RawRAWTEXT
	RawScriptData
	RawScriptDataEscaped
)

func (k RawKind) String() string {
	switch k {
	case RawRCDATA:
		return "RCDATA"
	case RawRAWTEXT:
		return "RAWTEXT"
	case RawScriptData:
		return "ScriptData"
	case RawScriptDataEscaped:
		return "ScriptDataEscaped"
	default:
		return fmt.Sprintf("RawKind(%d)", int(k))
	}
}

// State is a tokenizer state requested by the tree builder.
type State struct {
	Kind StateKind
	// Raw is meaningful only when Kind is StateRawData.
	Raw RawKind
}

// Data is the default scanning state.
func Data() State { return State{Kind: StateData} }

// Plaintext is the state for a plaintext context.
func Plaintext() State { return State{Kind: StatePlaintext} }

// RawData is a raw-text scanning state of the given kind.
func RawData(kind RawKind) State { return State{Kind: StateRawData, Raw: kind} }

func (s State) String() string {
	switch s.Kind {
	case StateData:
		return "Data"
	case StatePlaintext:
		return "Plaintext"
	case StateRawData:
		return fmt.Sprintf("RawData(%s)", s.Raw)
	case StateTagOpen:
		return "TagOpen"
	case StateCDATASection:
		return "CdataSection"
	case StateCharacterReference:
		return "CharacterReference"
	default:
		return fmt.Sprintf("State(%d)", int(s.Kind))
	}
}

// TreeBuilder is the tree-construction collaborator.
type TreeBuilder interface {
	// TokenizerStateForContext returns the scanning state implied by the
	// fragment context element. Document-mode builders return Data.
	TokenizerStateForContext() State

	// Document returns the finished tree. It is nil until the tokenizer
	// driving the builder has completed.
	Document() *dom.Node
}
