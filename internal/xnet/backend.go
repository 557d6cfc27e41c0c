// Package xnet runs the harness against golang.org/x/net/html.
//
// x/net/html does not expose its tokenizer and tree builder separately: one
// call tokenizes and builds. The Backend keeps the two collaborator roles
// apart anyway. The tree builder records how it was constructed, the
// tokenizer records the state it was told to adopt, and running the
// tokenizer performs the combined parse and converts the x/net tree into a
// dom tree.
package xnet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/treeconf/internal/dom"
	"github.com/roach88/treeconf/internal/tokenizer"
	"github.com/roach88/treeconf/internal/treebuilder"
)

// Name identifies the backend in reports and run history.
const Name = "golang.org/x/net/html"

// ErrForeignSink is returned when a tokenizer is asked to feed a tree
// builder that this backend did not create.
var ErrForeignSink = errors.New("xnet: sink is not an xnet tree builder")

// Backend creates x/net/html backed tree builders and tokenizers.
type Backend struct {
	logger *slog.Logger
}

// New returns a Backend. A nil logger discards output.
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Backend{logger: logger}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return Name
}

// NewTreeBuilder returns a document-mode tree builder.
func (b *Backend) NewTreeBuilder(opts treebuilder.Options) treebuilder.TreeBuilder {
	return &TreeBuilder{opts: opts}
}

// NewFragmentTreeBuilder returns a tree builder that parses a fragment under
// context. The context must be an element.
func (b *Backend) NewFragmentTreeBuilder(context *dom.Node, opts treebuilder.Options) treebuilder.TreeBuilder {
	return &TreeBuilder{opts: opts, context: context, fragment: true}
}

// NewTokenizer returns a tokenizer over input that drives sink.
func (b *Backend) NewTokenizer(input string, sink treebuilder.TreeBuilder) (tokenizer.Tokenizer, error) {
	tb, ok := sink.(*TreeBuilder)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignSink, sink)
	}
	return &Tokenizer{input: input, sink: tb, state: tokenizer.StateData, logger: b.logger}, nil
}

// TreeBuilder is the x/net/html tree-construction stage.
type TreeBuilder struct {
	opts     treebuilder.Options
	context  *dom.Node
	fragment bool
	doc      *dom.Node
}

// TokenizerStateForContext implements treebuilder.TreeBuilder using the
// state table of the HTML fragment parsing algorithm.
func (tb *TreeBuilder) TokenizerStateForContext() treebuilder.State {
	if tb.context == nil || tb.context.Kind != dom.KindElement || tb.context.Name.Namespace != dom.NamespaceHTML {
		return treebuilder.Data()
	}
	switch tb.context.Name.Local {
	case "title", "textarea":
		return treebuilder.RawData(treebuilder.RawRCDATA)
	case "style", "xmp", "iframe", "noembed", "noframes":
		return treebuilder.RawData(treebuilder.RawRAWTEXT)
	case "script":
		return treebuilder.RawData(treebuilder.RawScriptData)
	case "noscript":
		if tb.opts.ScriptingEnabled {
			return treebuilder.RawData(treebuilder.RawRAWTEXT)
		}
		return treebuilder.Data()
	case "plaintext":
		return treebuilder.Plaintext()
	default:
		return treebuilder.Data()
	}
}

// Document implements treebuilder.TreeBuilder. In fragment mode the returned
// document has a single html element whose children are the fragment.
func (tb *TreeBuilder) Document() *dom.Node {
	return tb.doc
}

func (tb *TreeBuilder) parse(input string) error {
	opts := []html.ParseOption{html.ParseOptionEnableScripting(tb.opts.ScriptingEnabled)}

	if !tb.fragment {
		root, err := html.ParseWithOptions(strings.NewReader(input), opts...)
		if err != nil {
			return fmt.Errorf("x/net/html parse: %w", err)
		}
		tb.doc = convert(root)
		return nil
	}

	context, err := contextNode(tb.context)
	if err != nil {
		return err
	}
	nodes, err := html.ParseFragmentWithOptions(strings.NewReader(input), context, opts...)
	if err != nil {
		return fmt.Errorf("x/net/html fragment parse: %w", err)
	}

	root := dom.NewElement(dom.HTML("html"), nil)
	for _, n := range nodes {
		root.AppendChild(convert(n))
	}
	tb.doc = dom.NewDocument().AppendChild(root)
	return nil
}

// Tokenizer is the x/net/html tokenizing stage.
type Tokenizer struct {
	input  string
	sink   *TreeBuilder
	state  tokenizer.State
	ran    bool
	logger *slog.Logger
}

// SetState implements tokenizer.Tokenizer.
func (t *Tokenizer) SetState(s tokenizer.State) {
	t.state = s
}

// State returns the adopted initial state.
func (t *Tokenizer) State() tokenizer.State {
	return t.state
}

// Run implements tokenizer.Tokenizer. It may be called once.
func (t *Tokenizer) Run() error {
	if t.ran {
		return errors.New("xnet: tokenizer already ran")
	}
	t.ran = true

	// x/net/html picks its raw-text state from the context tag on its own;
	// the adopted state can only be compared against it.
	if effective := effectiveState(t.sink.context); effective != t.state {
		t.logger.Warn("tokenizer state differs from x/net/html",
			"adopted", t.state.String(),
			"effective", effective.String(),
		)
	}

	return t.sink.parse(t.input)
}

// effectiveState is the state x/net/html's fragment tokenizer starts in for
// the given context.
func effectiveState(context *dom.Node) tokenizer.State {
	if context == nil || context.Name.Namespace != dom.NamespaceHTML {
		return tokenizer.StateData
	}
	switch strings.ToLower(context.Name.Local) {
	case "iframe", "noembed", "noframes", "noscript", "style", "xmp":
		return tokenizer.StateRawText
	case "title", "textarea":
		return tokenizer.StateRcData
	case "script":
		return tokenizer.StateScriptData
	case "plaintext":
		return tokenizer.StatePlainText
	default:
		return tokenizer.StateData
	}
}

func contextNode(n *dom.Node) (*html.Node, error) {
	if n == nil || n.Kind != dom.KindElement {
		return nil, errors.New("xnet: fragment context must be an element")
	}
	ctx := &html.Node{
		Type:      html.ElementNode,
		Data:      n.Name.Local,
		DataAtom:  atom.Lookup([]byte(n.Name.Local)),
		Namespace: namespaceKey(n.Name.Namespace),
	}
	for _, a := range n.Attrs {
		ctx.Attr = append(ctx.Attr, html.Attribute{
			Namespace: namespaceKey(a.Name.Namespace),
			Key:       a.Name.Local,
			Val:       a.Value,
		})
	}
	return ctx, nil
}
