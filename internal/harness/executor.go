package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/treeconf/internal/dat"
	"github.com/roach88/treeconf/internal/dom"
	"github.com/roach88/treeconf/internal/tokenizer"
	"github.com/roach88/treeconf/internal/treebuilder"
)

// Backend provides the tokenizer and tree builder a trial runs against.
// Implementations must be safe for concurrent use; each call returns fresh
// collaborators owned by a single trial.
type Backend interface {
	// Name identifies the backend in reports.
	Name() string

	// NewTreeBuilder returns a document-mode tree builder.
	NewTreeBuilder(opts treebuilder.Options) treebuilder.TreeBuilder

	// NewFragmentTreeBuilder returns a tree builder anchored at context.
	NewFragmentTreeBuilder(context *dom.Node, opts treebuilder.Options) treebuilder.TreeBuilder

	// NewTokenizer returns a tokenizer over input feeding sink.
	NewTokenizer(input string, sink treebuilder.TreeBuilder) (tokenizer.Tokenizer, error)
}

// Executor performs the parse for one test case.
type Executor struct {
	backend Backend
	logger  *slog.Logger
}

// NewExecutor returns an Executor using backend. A nil logger discards output.
func NewExecutor(backend Backend, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{backend: backend, logger: logger}
}

// Execute parses tc.Data with the given scripting flag and returns the nodes
// to serialize: the children of the document root, or for a fragment case
// the children of the single root element the tree builder synthesized.
func (e *Executor) Execute(tc *dat.Testcase, scripting bool) ([]*dom.Node, error) {
	opts := treebuilder.DefaultOptions()
	opts.ScriptingEnabled = scripting

	var (
		tb    treebuilder.TreeBuilder
		state *tokenizer.State
	)
	if tc.DocumentFragment != nil {
		name := ResolveContext(strings.TrimSuffix(*tc.DocumentFragment, "\n"))
		context := dom.NewElement(name, nil)
		tb = e.backend.NewFragmentTreeBuilder(context, opts)

		s, err := MapTokenizerState(tb.TokenizerStateForContext())
		if err != nil {
			return nil, fmt.Errorf("fragment context %q: %w", name.Local, err)
		}
		state = &s
	} else {
		tb = e.backend.NewTreeBuilder(opts)
	}

	// Every stored line ends in a newline the input never had.
	input := strings.TrimSuffix(tc.Data, "\n")

	tok, err := e.backend.NewTokenizer(input, tb)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	if state != nil {
		tok.SetState(*state)
	}

	e.logger.Debug("executing test case",
		"fragment", tc.DocumentFragment != nil,
		"scripting", scripting,
		"tokenizer_state", stateLabel(state),
	)

	if err := tok.Run(); err != nil {
		return nil, fmt.Errorf("tokenizer failed: %w", err)
	}

	doc := tb.Document()
	if doc == nil {
		return nil, errors.New("tree builder produced no document")
	}
	if tc.DocumentFragment == nil {
		return doc.Children, nil
	}
	if len(doc.Children) != 1 {
		return nil, fmt.Errorf("fragment document has %d root nodes, want 1", len(doc.Children))
	}
	return doc.Children[0].Children, nil
}

func stateLabel(s *tokenizer.State) string {
	if s == nil {
		return "none"
	}
	return s.String()
}
