package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treeconf/internal/dat"
	"github.com/roach88/treeconf/internal/dom"
	"github.com/roach88/treeconf/internal/tokenizer"
	"github.com/roach88/treeconf/internal/treebuilder"
)

func TestExecute_Document(t *testing.T) {
	b := &fakeBackend{build: textDocument}
	tc := &dat.Testcase{Data: "hello\n", Document: ptr("")}

	nodes, err := NewExecutor(b, nil).Execute(tc, true)
	require.NoError(t, err)

	assert.Equal(t, "hello", b.input, "one trailing newline is trimmed from the input")
	assert.True(t, b.opts.ScriptingEnabled)
	assert.Nil(t, b.context)
	assert.Nil(t, b.adopted, "document mode adopts no state")

	require.Len(t, nodes, 1)
	assert.Equal(t, dom.HTML("html"), nodes[0].Name)
}

func TestExecute_OnlyOneNewlineTrimmed(t *testing.T) {
	b := &fakeBackend{build: textDocument}
	tc := &dat.Testcase{Data: "a\n\n"}

	_, err := NewExecutor(b, nil).Execute(tc, false)
	require.NoError(t, err)
	assert.Equal(t, "a\n", b.input)
	assert.False(t, b.opts.ScriptingEnabled)
}

func TestExecute_Fragment(t *testing.T) {
	b := &fakeBackend{
		state: treebuilder.RawData(treebuilder.RawRCDATA),
		build: textFragment,
	}
	tc := &dat.Testcase{Data: "<b>\n", DocumentFragment: ptr("textarea\n")}

	nodes, err := NewExecutor(b, nil).Execute(tc, true)
	require.NoError(t, err)

	require.NotNil(t, b.context)
	assert.Equal(t, dom.KindElement, b.context.Kind)
	assert.Equal(t, dom.HTML("textarea"), b.context.Name)

	require.NotNil(t, b.adopted)
	assert.Equal(t, tokenizer.StateRcData, *b.adopted)

	require.Len(t, nodes, 1, "fragment nodes are the root element's children")
	assert.Equal(t, dom.KindText, nodes[0].Kind)
	assert.Equal(t, "<b>", nodes[0].Data)
}

func TestExecute_ForeignFragmentContext(t *testing.T) {
	b := &fakeBackend{build: textFragment}
	tc := &dat.Testcase{Data: "x\n", DocumentFragment: ptr("svg path\n")}

	_, err := NewExecutor(b, nil).Execute(tc, true)
	require.NoError(t, err)
	assert.Equal(t, dom.QualName{Namespace: dom.NamespaceSVG, Local: "path"}, b.context.Name)
	assert.Equal(t, tokenizer.StateData, *b.adopted)
}

func TestExecute_UnsupportedContextState(t *testing.T) {
	b := &fakeBackend{
		state: treebuilder.State{Kind: treebuilder.StateCDATASection},
		build: textFragment,
	}
	tc := &dat.Testcase{Data: "x\n", DocumentFragment: ptr("div\n")}

	_, err := NewExecutor(b, nil).Execute(tc, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Contains(t, err.Error(), `fragment context "div"`)
}

func TestExecute_TokenizerFailure(t *testing.T) {
	boom := errors.New("boom")
	b := &fakeBackend{runErr: boom, build: textDocument}

	_, err := NewExecutor(b, nil).Execute(&dat.Testcase{Data: "x\n"}, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "tokenizer failed")
}

func TestExecute_FragmentNeedsSingleRoot(t *testing.T) {
	b := &fakeBackend{build: func(string) *dom.Node { return dom.NewDocument() }}
	tc := &dat.Testcase{Data: "x\n", DocumentFragment: ptr("div\n")}

	_, err := NewExecutor(b, nil).Execute(tc, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 root nodes")
}
