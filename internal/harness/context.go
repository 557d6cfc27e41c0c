package harness

import (
	"strings"

	"github.com/roach88/treeconf/internal/dom"
)

// ResolveContext maps a "#document-fragment" value to the qualified name of
// the context element. "svg " and "math " prefixes select the SVG and MathML
// namespaces; anything else is an HTML local name taken verbatim.
func ResolveContext(context string) dom.QualName {
	if local, ok := strings.CutPrefix(context, "svg "); ok {
		return dom.QualName{Namespace: dom.NamespaceSVG, Local: local}
	}
	if local, ok := strings.CutPrefix(context, "math "); ok {
		return dom.QualName{Namespace: dom.NamespaceMathML, Local: local}
	}
	return dom.HTML(context)
}
