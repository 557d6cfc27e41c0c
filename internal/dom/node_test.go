package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLabel(t *testing.T) {
	tests := []struct {
		ns   Namespace
		want string
	}{
		{NamespaceNone, ""},
		{NamespaceHTML, ""},
		{NamespaceSVG, "svg"},
		{NamespaceMathML, "math"},
		{NamespaceXLink, "xlink"},
		{NamespaceXML, "xml"},
		{NamespaceXMLNS, "xmlns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ns.Label())
	}
}

func TestAppendChild(t *testing.T) {
	doc := NewDocument()
	html := NewElement(HTML("html"), nil)
	doc.AppendChild(NewDoctype("html", "", ""), html)
	html.AppendChild(NewComment("c"), NewText("t"))

	assert.Len(t, doc.Children, 2)
	assert.Equal(t, KindDoctype, doc.Children[0].Kind)
	assert.Equal(t, []*Node{NewComment("c"), NewText("t")}, html.Children)
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, NewElement(HTML("template"), nil).IsTemplate())
	assert.False(t, NewElement(QualName{Namespace: NamespaceSVG, Local: "template"}, nil).IsTemplate())
	assert.False(t, NewText("template").IsTemplate())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "element", KindElement.String())
	assert.Equal(t, "processing-instruction", KindProcessingInstruction.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
