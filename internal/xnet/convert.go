package xnet

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/treeconf/internal/dom"
)

// namespaceKey is the short namespace name x/net/html stores on nodes and
// attributes.
func namespaceKey(ns dom.Namespace) string {
	switch ns {
	case dom.NamespaceSVG:
		return "svg"
	case dom.NamespaceMathML:
		return "math"
	case dom.NamespaceXLink:
		return "xlink"
	case dom.NamespaceXML:
		return "xml"
	case dom.NamespaceXMLNS:
		return "xmlns"
	default:
		return ""
	}
}

func elementNamespace(key string) dom.Namespace {
	switch key {
	case "":
		return dom.NamespaceHTML
	case "svg":
		return dom.NamespaceSVG
	case "math":
		return dom.NamespaceMathML
	default:
		return dom.NamespaceNone
	}
}

func attrNamespace(key string) dom.Namespace {
	switch key {
	case "xlink":
		return dom.NamespaceXLink
	case "xml":
		return dom.NamespaceXML
	case "xmlns":
		return dom.NamespaceXMLNS
	default:
		return dom.NamespaceNone
	}
}

// convert copies an x/net/html subtree into a dom tree. x/net/html keeps the
// children of an HTML template element as its direct children; they become
// the element's template contents.
func convert(n *html.Node) *dom.Node {
	switch n.Type {
	case html.DocumentNode:
		return appendChildren(dom.NewDocument(), n)

	case html.DoctypeNode:
		var public, system string
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				public = a.Val
			case "system":
				system = a.Val
			}
		}
		return dom.NewDoctype(n.Data, public, system)

	case html.TextNode:
		return dom.NewText(n.Data)

	case html.CommentNode:
		return dom.NewComment(n.Data)

	case html.ElementNode:
		var attrs []dom.Attribute
		for _, a := range n.Attr {
			attrs = append(attrs, dom.Attribute{
				Name:  dom.QualName{Namespace: attrNamespace(a.Namespace), Local: a.Key},
				Value: a.Val,
			})
		}
		el := dom.NewElement(dom.QualName{Namespace: elementNamespace(n.Namespace), Local: n.Data}, attrs)
		if n.DataAtom == atom.Template && n.Namespace == "" {
			el.TemplateContents = appendChildren(dom.NewFragment(), n)
			return el
		}
		return appendChildren(el, n)

	default:
		// Raw and error nodes are never produced by the parser.
		return &dom.Node{Kind: dom.KindProcessingInstruction, Data: n.Data}
	}
}

func appendChildren(dst *dom.Node, src *html.Node) *dom.Node {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		dst.AppendChild(convert(c))
	}
	return dst
}
