package memdom

import (
	"html"
	"sort"
	"strings"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// OuterHTML serializes n and its subtree. Attributes are written in name
// order so the output is stable across equivalent trees.
func OuterHTML(n dom.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n dom.Node) string {
	var b strings.Builder
	if e, ok := n.(*Element); ok && e.raw != nil {
		return *e.raw
	}
	for _, c := range n.Children() {
		writeNode(&b, c)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n dom.Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(html.EscapeString(v.data))
	case *Element:
		b.WriteByte('<')
		b.WriteString(v.tag)
		attrs := append([]attribute(nil), v.attrs...)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].name < attrs[j].name })
		for _, a := range attrs {
			if a.name == "style" && len(v.style) > 0 {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(a.name)
			if a.value != "" {
				b.WriteString(`="`)
				b.WriteString(html.EscapeString(a.value))
				b.WriteByte('"')
			}
		}
		if len(v.style) > 0 {
			parts := make([]string, len(v.style))
			for i, s := range v.style {
				parts[i] = s.name + ":" + s.value
			}
			b.WriteString(` style="`)
			b.WriteString(html.EscapeString(strings.Join(parts, ";")))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if vdom.IsVoidElement(v.tag) && v.ns == vdom.HTMLNamespaceURI {
			return
		}
		b.WriteString(InnerHTML(v))
		b.WriteString("</")
		b.WriteString(v.tag)
		b.WriteByte('>')
	}
}
