package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// H creates a VNode for tag. It accepts either (props, children...) or
// (children...). Arguments can be: nil, false, Props, map[string]any, Attr,
// []Attr, EventHandler, *VNode, []*VNode, []any (flattened), string and
// numbers (text). H never panics and never touches a document.
//
// The FragmentTag produces a fragment.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0, len(args)),
	}
	if tag == FragmentTag {
		node.Kind = KindFragment
		node.Tag = ""
	}
	for _, arg := range args {
		node.add(arg)
	}
	return node
}

func (node *VNode) add(arg any) {
	switch v := arg.(type) {
	case nil:
		// Ignore nil (allows conditional children)

	case bool:
		// false renders nothing; true is treated the same way

	case Props:
		for key, value := range v {
			node.setProp(key, value)
		}

	case map[string]any:
		for key, value := range v {
			node.setProp(key, value)
		}

	case Attr:
		if v.Key != "" {
			node.setProp(v.Key, v.Value)
		}

	case []Attr:
		for _, a := range v {
			if a.Key != "" {
				node.setProp(a.Key, a.Value)
			}
		}

	case EventHandler:
		if v.Event != "" {
			node.Props[v.Event] = v.Handler
		}

	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}

	case []*VNode:
		for _, child := range v {
			if child != nil {
				node.Children = append(node.Children, child)
			}
		}

	case []any:
		for _, child := range v {
			node.add(child)
		}

	case string:
		node.Children = append(node.Children, Text(v))

	case fmt.Stringer:
		node.Children = append(node.Children, Text(v.String()))

	default:
		if s, ok := numberText(v); ok {
			node.Children = append(node.Children, Text(s))
		}
	}
}

func (node *VNode) setProp(key string, value any) {
	if key == "key" {
		if value != nil {
			node.Key = fmt.Sprint(value)
		}
		return
	}
	node.Props[key] = value
}

// numberText formats integer and float children as text.
func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(n).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(n).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// IsFunc reports whether v holds a non-nil function value.
func IsFunc(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// Document structure elements

func Html(args ...any) *VNode  { return H("html", args...) }
func Head(args ...any) *VNode  { return H("head", args...) }
func Body(args ...any) *VNode  { return H("body", args...) }
func Title(args ...any) *VNode { return H("title", args...) }
func Meta(args ...any) *VNode  { return H("meta", args...) }
func Link(args ...any) *VNode  { return H("link", args...) }
func Base(args ...any) *VNode  { return H("base", args...) }

// Content sectioning elements

func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Article(args ...any) *VNode { return H("article", args...) }
func Aside(args ...any) *VNode   { return H("aside", args...) }
func Address(args ...any) *VNode { return H("address", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H2(args ...any) *VNode      { return H("h2", args...) }
func H3(args ...any) *VNode      { return H("h3", args...) }
func H4(args ...any) *VNode      { return H("h4", args...) }
func H5(args ...any) *VNode      { return H("h5", args...) }
func H6(args ...any) *VNode      { return H("h6", args...) }
func Hgroup(args ...any) *VNode  { return H("hgroup", args...) }

// Text content elements

func Div(args ...any) *VNode        { return H("div", args...) }
func P(args ...any) *VNode          { return H("p", args...) }
func Span(args ...any) *VNode       { return H("span", args...) }
func Pre(args ...any) *VNode        { return H("pre", args...) }
func Blockquote(args ...any) *VNode { return H("blockquote", args...) }
func Ul(args ...any) *VNode         { return H("ul", args...) }
func Ol(args ...any) *VNode         { return H("ol", args...) }
func Li(args ...any) *VNode         { return H("li", args...) }
func Dl(args ...any) *VNode         { return H("dl", args...) }
func Dt(args ...any) *VNode         { return H("dt", args...) }
func Dd(args ...any) *VNode         { return H("dd", args...) }
func Hr(args ...any) *VNode         { return H("hr", args...) }
func Figure(args ...any) *VNode     { return H("figure", args...) }
func Figcaption(args ...any) *VNode { return H("figcaption", args...) }

// Inline text semantics

func A(args ...any) *VNode      { return H("a", args...) }
func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }
func B(args ...any) *VNode      { return H("b", args...) }
func I(args ...any) *VNode      { return H("i", args...) }
func U(args ...any) *VNode      { return H("u", args...) }
func S(args ...any) *VNode      { return H("s", args...) }
func Small(args ...any) *VNode  { return H("small", args...) }
func Mark(args ...any) *VNode   { return H("mark", args...) }
func Sub(args ...any) *VNode    { return H("sub", args...) }
func Sup(args ...any) *VNode    { return H("sup", args...) }
func Code(args ...any) *VNode   { return H("code", args...) }
func Kbd(args ...any) *VNode    { return H("kbd", args...) }
func Samp(args ...any) *VNode   { return H("samp", args...) }
func Var(args ...any) *VNode    { return H("var", args...) }
func Abbr(args ...any) *VNode   { return H("abbr", args...) }
func Time_(args ...any) *VNode  { return H("time", args...) }
func Cite(args ...any) *VNode   { return H("cite", args...) }
func Q(args ...any) *VNode      { return H("q", args...) }
func Dfn(args ...any) *VNode    { return H("dfn", args...) }
func Ruby(args ...any) *VNode   { return H("ruby", args...) }
func Rt(args ...any) *VNode     { return H("rt", args...) }
func Rp(args ...any) *VNode     { return H("rp", args...) }
func Bdi(args ...any) *VNode    { return H("bdi", args...) }
func Bdo(args ...any) *VNode    { return H("bdo", args...) }

// DataElement creates a <data> HTML element.
// Note: For data-* attributes, use Data(key, value) from attributes.go instead.
func DataElement(args ...any) *VNode { return H("data", args...) }
func Br(args ...any) *VNode          { return H("br", args...) }
func Wbr(args ...any) *VNode         { return H("wbr", args...) }

// Form elements

func Form(args ...any) *VNode     { return H("form", args...) }
func Input(args ...any) *VNode    { return H("input", args...) }
func Textarea(args ...any) *VNode { return H("textarea", args...) }
func Select(args ...any) *VNode   { return H("select", args...) }
func Option(args ...any) *VNode   { return H("option", args...) }
func Optgroup(args ...any) *VNode { return H("optgroup", args...) }
func Button(args ...any) *VNode   { return H("button", args...) }
func Label(args ...any) *VNode    { return H("label", args...) }
func Fieldset(args ...any) *VNode { return H("fieldset", args...) }
func Legend(args ...any) *VNode   { return H("legend", args...) }
func Datalist(args ...any) *VNode { return H("datalist", args...) }
func Output(args ...any) *VNode   { return H("output", args...) }
func Progress(args ...any) *VNode { return H("progress", args...) }
func Meter(args ...any) *VNode    { return H("meter", args...) }

// Table elements

func Table(args ...any) *VNode    { return H("table", args...) }
func Thead(args ...any) *VNode    { return H("thead", args...) }
func Tbody(args ...any) *VNode    { return H("tbody", args...) }
func Tfoot(args ...any) *VNode    { return H("tfoot", args...) }
func Tr(args ...any) *VNode       { return H("tr", args...) }
func Th(args ...any) *VNode       { return H("th", args...) }
func Td(args ...any) *VNode       { return H("td", args...) }
func Caption(args ...any) *VNode  { return H("caption", args...) }
func Colgroup(args ...any) *VNode { return H("colgroup", args...) }
func Col(args ...any) *VNode      { return H("col", args...) }

// Media elements

func Img(args ...any) *VNode     { return H("img", args...) }
func Picture(args ...any) *VNode { return H("picture", args...) }
func Source(args ...any) *VNode  { return H("source", args...) }
func Video(args ...any) *VNode   { return H("video", args...) }
func Audio(args ...any) *VNode   { return H("audio", args...) }
func Track(args ...any) *VNode   { return H("track", args...) }
func Iframe(args ...any) *VNode  { return H("iframe", args...) }
func Embed(args ...any) *VNode   { return H("embed", args...) }
func Object(args ...any) *VNode  { return H("object", args...) }
func Param(args ...any) *VNode   { return H("param", args...) }
func Canvas(args ...any) *VNode  { return H("canvas", args...) }
func Svg(args ...any) *VNode     { return H("svg", args...) }
func Math(args ...any) *VNode    { return H("math", args...) }
func Map_(args ...any) *VNode    { return H("map", args...) }
func Area(args ...any) *VNode    { return H("area", args...) }

// Interactive elements

func Details(args ...any) *VNode { return H("details", args...) }
func Summary(args ...any) *VNode { return H("summary", args...) }
func Dialog(args ...any) *VNode  { return H("dialog", args...) }
func Menu(args ...any) *VNode    { return H("menu", args...) }

// Scripting elements

func Script(args ...any) *VNode   { return H("script", args...) }
func Noscript(args ...any) *VNode { return H("noscript", args...) }
func Template(args ...any) *VNode { return H("template", args...) }
func Slot(args ...any) *VNode     { return H("slot", args...) }
func StyleEl(args ...any) *VNode  { return H("style", args...) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *VNode {
	return H(tag, args...)
}

// Vector graphics and math markup. Only the namespace roots and the
// elements needed to nest content are provided here.

func ForeignObject(args ...any) *VNode { return H("foreignObject", args...) }
func G(args ...any) *VNode             { return H("g", args...) }
func Circle(args ...any) *VNode        { return H("circle", args...) }
func Rect(args ...any) *VNode          { return H("rect", args...) }
func PathEl(args ...any) *VNode        { return H("path", args...) }
func SvgText(args ...any) *VNode       { return H("text", args...) }
func Mi(args ...any) *VNode            { return H("mi", args...) }
func Mo(args ...any) *VNode            { return H("mo", args...) }
func Mn(args ...any) *VNode            { return H("mn", args...) }
func Mrow(args ...any) *VNode          { return H("mrow", args...) }
func Semantics(args ...any) *VNode     { return H("semantics", args...) }
func AnnotationXML(args ...any) *VNode { return H("annotation-xml", args...) }
