// Package dom is the read-only tree model handed from a tree builder to the
// canonical serializer.
//
// A Node is a tagged union over Kind. Only the fields of the active variant
// are meaningful. Backends build the tree; the harness never mutates it.
package dom

// Kind tags the variant of a Node.
type Kind int

const (
	KindDocument Kind = iota
	KindDoctype
	KindText
	KindComment
	KindElement
	// KindProcessingInstruction exists for completeness of the model. HTML
	// tree construction never produces one.
	KindProcessingInstruction
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindDoctype:
		return "doctype"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindElement:
		return "element"
	case KindProcessingInstruction:
		return "processing-instruction"
	default:
		return "unknown"
	}
}

// Namespace identifies the namespace of an element or attribute name.
type Namespace int

const (
	// NamespaceNone is the empty namespace of ordinary attributes.
	NamespaceNone Namespace = iota
	NamespaceHTML
	NamespaceSVG
	NamespaceMathML
	NamespaceXLink
	NamespaceXML
	NamespaceXMLNS
)

// Label is the lowercase prefix html5lib uses for the namespace in
// serialized trees. HTML and the empty namespace have no label.
func (ns Namespace) Label() string {
	switch ns {
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "math"
	case NamespaceXLink:
		return "xlink"
	case NamespaceXML:
		return "xml"
	case NamespaceXMLNS:
		return "xmlns"
	default:
		return ""
	}
}

// QualName is a namespace-qualified local name.
type QualName struct {
	Namespace Namespace
	Local     string
}

// HTML returns the name of an element in the HTML namespace.
func HTML(local string) QualName {
	return QualName{Namespace: NamespaceHTML, Local: local}
}

// Attribute is a name/value pair on an element.
type Attribute struct {
	Name  QualName
	Value string
}

// Node is one node of a parsed tree.
type Node struct {
	Kind Kind

	// Name and Attrs are set for elements.
	Name  QualName
	Attrs []Attribute

	// Data is the doctype name, or the contents of a text or comment node.
	Data string

	// PublicID and SystemID are set for doctypes.
	PublicID string
	SystemID string

	Children []*Node

	// TemplateContents holds the content fragment of an HTML template
	// element. It is nil for every other element.
	TemplateContents *Node
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: KindDocument}
}

// NewFragment returns an empty node used to hold template contents.
func NewFragment() *Node {
	return &Node{Kind: KindDocument}
}

// NewElement returns an element with the given name and attributes.
func NewElement(name QualName, attrs []Attribute) *Node {
	return &Node{Kind: KindElement, Name: name, Attrs: attrs}
}

// NewText returns a text node.
func NewText(contents string) *Node {
	return &Node{Kind: KindText, Data: contents}
}

// NewComment returns a comment node.
func NewComment(contents string) *Node {
	return &Node{Kind: KindComment, Data: contents}
}

// NewDoctype returns a doctype node.
func NewDoctype(name, publicID, systemID string) *Node {
	return &Node{Kind: KindDoctype, Data: name, PublicID: publicID, SystemID: systemID}
}

// AppendChild adds c as the last child of n and returns n.
func (n *Node) AppendChild(c ...*Node) *Node {
	n.Children = append(n.Children, c...)
	return n
}

// IsTemplate reports whether n is an HTML template element.
func (n *Node) IsTemplate() bool {
	return n.Kind == KindElement && n.Name == HTML("template")
}
