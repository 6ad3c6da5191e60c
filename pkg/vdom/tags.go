package vdom

// TagFlags describe how the runtime treats a tag. Tags are plain strings;
// behaviour comes from this table rather than from per-element types.
type TagFlags uint8

const (
	// FlagVoid marks elements that never have children or a closing tag.
	FlagVoid TagFlags = 1 << iota
	// FlagSVGRoot switches the element and its subtree to the SVG namespace.
	FlagSVGRoot
	// FlagMathRoot switches the element and its subtree to MathML.
	FlagMathRoot
	// FlagHTMLEscape keeps the element in its parent's namespace but
	// returns its children to HTML.
	FlagHTMLEscape
	// FlagAnchor marks link-like elements whose clicks may be intercepted.
	FlagAnchor
)

var tagTable = map[string]TagFlags{
	"area":          FlagVoid | FlagAnchor,
	"base":          FlagVoid,
	"br":            FlagVoid,
	"col":           FlagVoid,
	"embed":         FlagVoid,
	"hr":            FlagVoid,
	"img":           FlagVoid,
	"input":         FlagVoid,
	"link":          FlagVoid,
	"meta":          FlagVoid,
	"param":         FlagVoid,
	"source":        FlagVoid,
	"track":         FlagVoid,
	"wbr":           FlagVoid,
	"a":             FlagAnchor,
	"svg":           FlagSVGRoot,
	"math":          FlagMathRoot,
	"foreignObject": FlagHTMLEscape,
}

// Flags returns the behaviour flags for tag.
func Flags(tag string) TagFlags {
	return tagTable[tag]
}

// Has reports whether all bits of f are set.
func (t TagFlags) Has(f TagFlags) bool {
	return t&f == f
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return Flags(tag).Has(FlagVoid)
}

// Namespace is the element-creation namespace.
type Namespace uint8

const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMathML
)

const (
	HTMLNamespaceURI   = "http://www.w3.org/1999/xhtml"
	SVGNamespaceURI    = "http://www.w3.org/2000/svg"
	MathMLNamespaceURI = "http://www.w3.org/1998/Math/MathML"
)

// URI returns the namespace URI used with createElementNS.
func (ns Namespace) URI() string {
	switch ns {
	case NamespaceSVG:
		return SVGNamespaceURI
	case NamespaceMathML:
		return MathMLNamespaceURI
	default:
		return HTMLNamespaceURI
	}
}

// String returns the namespace name.
func (ns Namespace) String() string {
	switch ns {
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "mathml"
	default:
		return "html"
	}
}

// ResolveNamespace returns the namespace an element tagged tag is created
// in when its parent's children use parent, and the namespace its own
// children inherit.
func ResolveNamespace(parent Namespace, tag string) (self, children Namespace) {
	flags := Flags(tag)
	switch {
	case flags.Has(FlagSVGRoot):
		return NamespaceSVG, NamespaceSVG
	case flags.Has(FlagMathRoot):
		return NamespaceMathML, NamespaceMathML
	case flags.Has(FlagHTMLEscape) && parent == NamespaceSVG:
		return NamespaceSVG, NamespaceHTML
	}
	return parent, parent
}
