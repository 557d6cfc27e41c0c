package harness

import (
	"errors"

	"github.com/roach88/treeconf/internal/dom"
	"github.com/roach88/treeconf/internal/tokenizer"
	"github.com/roach88/treeconf/internal/treebuilder"
)

// fakeBackend builds a fixed tree and records what the executor handed it.
type fakeBackend struct {
	state   treebuilder.State
	build   func(input string) *dom.Node
	runErr  error
	doPanic bool

	opts    treebuilder.Options
	context *dom.Node
	input   string
	adopted *tokenizer.State
}

type fakeTreeBuilder struct {
	b   *fakeBackend
	doc *dom.Node
}

func (tb *fakeTreeBuilder) TokenizerStateForContext() treebuilder.State { return tb.b.state }
func (tb *fakeTreeBuilder) Document() *dom.Node                         { return tb.doc }

type fakeTokenizer struct {
	b     *fakeBackend
	tb    *fakeTreeBuilder
	input string
}

func (t *fakeTokenizer) SetState(s tokenizer.State) { t.b.adopted = &s }

func (t *fakeTokenizer) Run() error {
	if t.b.doPanic {
		panic(&InvariantError{Kind: dom.KindDocument})
	}
	if t.b.runErr != nil {
		return t.b.runErr
	}
	t.tb.doc = t.b.build(t.input)
	return nil
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) NewTreeBuilder(opts treebuilder.Options) treebuilder.TreeBuilder {
	b.opts = opts
	return &fakeTreeBuilder{b: b}
}

func (b *fakeBackend) NewFragmentTreeBuilder(context *dom.Node, opts treebuilder.Options) treebuilder.TreeBuilder {
	b.opts = opts
	b.context = context
	return &fakeTreeBuilder{b: b}
}

func (b *fakeBackend) NewTokenizer(input string, sink treebuilder.TreeBuilder) (tokenizer.Tokenizer, error) {
	tb, ok := sink.(*fakeTreeBuilder)
	if !ok {
		return nil, errors.New("foreign sink")
	}
	b.input = input
	return &fakeTokenizer{b: b, tb: tb, input: input}, nil
}

// textDocument yields a document whose body holds input as one text node.
func textDocument(input string) *dom.Node {
	body := dom.NewElement(dom.HTML("body"), nil).AppendChild(dom.NewText(input))
	root := dom.NewElement(dom.HTML("html"), nil).AppendChild(
		dom.NewElement(dom.HTML("head"), nil),
		body,
	)
	return dom.NewDocument().AppendChild(root)
}

// textFragment yields a fragment document whose html root holds input.
func textFragment(input string) *dom.Node {
	root := dom.NewElement(dom.HTML("html"), nil).AppendChild(dom.NewText(input))
	return dom.NewDocument().AppendChild(root)
}

func ptr(s string) *string { return &s }
