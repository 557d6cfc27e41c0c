package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/treeconf/internal/dom"
)

// InvariantError is the panic value raised when the serializer reaches a
// node kind that cannot occur inside a parsed subtree.
type InvariantError struct {
	Kind dom.Kind
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("canonical serializer reached a %s node", e.Kind)
}

// Serialize renders nodes as top-level siblings in the canonical html5lib
// tree format.
func Serialize(nodes []*dom.Node) string {
	var buf strings.Builder
	for _, n := range nodes {
		SerializeNode(&buf, 1, n)
	}
	return buf.String()
}

// SerializeNode appends the canonical form of n and its descendants to buf,
// starting at the given indent. It panics with *InvariantError on document
// and processing-instruction nodes.
func SerializeNode(buf *strings.Builder, indent int, n *dom.Node) {
	writePrefix(buf, indent)

	switch n.Kind {
	case dom.KindDoctype:
		buf.WriteString("<!DOCTYPE ")
		buf.WriteString(n.Data)
		if n.PublicID != "" || n.SystemID != "" {
			buf.WriteString(` "`)
			buf.WriteString(n.PublicID)
			buf.WriteString(`" "`)
			buf.WriteString(n.SystemID)
			buf.WriteString(`"`)
		}
		buf.WriteString(">\n")

	case dom.KindText:
		buf.WriteByte('"')
		buf.WriteString(n.Data)
		buf.WriteString("\"\n")

	case dom.KindComment:
		buf.WriteString("<!-- ")
		buf.WriteString(n.Data)
		buf.WriteString(" -->\n")

	case dom.KindElement:
		buf.WriteByte('<')
		if label := n.Name.Namespace.Label(); label != "" {
			buf.WriteString(label)
			buf.WriteByte(' ')
		}
		buf.WriteString(n.Name.Local)
		buf.WriteString(">\n")

		for _, a := range sortedAttrs(n.Attrs) {
			writePrefix(buf, indent+2)
			if label := a.Name.Namespace.Label(); label != "" {
				buf.WriteString(label)
				buf.WriteByte(' ')
			}
			buf.WriteString(a.Name.Local)
			buf.WriteString(`="`)
			buf.WriteString(a.Value)
			buf.WriteString("\"\n")
		}

	default:
		panic(&InvariantError{Kind: n.Kind})
	}

	for _, c := range n.Children {
		SerializeNode(buf, indent+2, c)
	}

	if n.Kind == dom.KindElement && n.TemplateContents != nil {
		writePrefix(buf, indent+2)
		buf.WriteString("content\n")
		for _, c := range n.TemplateContents.Children {
			SerializeNode(buf, indent+4, c)
		}
	}
}

func writePrefix(buf *strings.Builder, indent int) {
	buf.WriteByte('|')
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
}

// sortedAttrs orders attributes by local name, comparing code points. html5lib
// specifies UTF-16 code unit order; the two differ only for names mixing
// supplementary-plane characters with U+E000..U+FFFF.
func sortedAttrs(attrs []dom.Attribute) []dom.Attribute {
	sorted := slices.Clone(attrs)
	slices.SortStableFunc(sorted, func(a, b dom.Attribute) int {
		return strings.Compare(a.Name.Local, b.Name.Local)
	})
	return sorted
}
