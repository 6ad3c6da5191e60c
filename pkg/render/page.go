package render

import (
	"bytes"
	"io"

	"github.com/vango-dev/sprig/pkg/vdom"
)

// Page describes a complete HTML document.
type Page struct {
	// Body is the content of <body>.
	Body *vdom.VNode

	// Title is the document title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	Meta    []MetaTag
	Links   []LinkTag
	Scripts []ScriptTag

	// Styles are inline style sheets, written verbatim.
	Styles []string

	// Head holds extra head elements.
	Head []*vdom.VNode
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel   string
	Href  string
	Type  string
	Media string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Module bool // type="module"
	Defer  bool
	Async  bool
	Inline string // inline source, written verbatim
}

// flusher is implemented by http.ResponseWriter values that support
// chunked output.
type flusher interface {
	Flush()
}

// RenderPage writes a full document for page. The head is flushed before
// the body is serialized when w supports flushing.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	var head bytes.Buffer
	head.WriteString(Doctype)
	head.WriteString(`<html lang="`)
	head.WriteString(EscapeAttr(lang))
	head.WriteString(`">`)
	if err := r.renderNode(&head, pageHead(page), 0); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := r.renderNode(&body, vdom.Body(page.Body), 0); err != nil {
		return err
	}
	body.WriteString("</html>")

	if _, err := head.WriteTo(w); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		f.Flush()
	}
	_, err := body.WriteTo(w)
	return err
}

// PageString renders page to a string.
func (r *Renderer) PageString(page Page) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func pageHead(page Page) *vdom.VNode {
	children := []any{
		vdom.Meta(vdom.Attr{Key: "charset", Value: "utf-8"}),
		vdom.Meta(vdom.Name("viewport"), vdom.Attr{Key: "content", Value: "width=device-width, initial-scale=1"}),
	}
	if page.Title != "" {
		children = append(children, vdom.Title(page.Title))
	}
	for _, m := range page.Meta {
		children = append(children, vdom.Meta(vdom.Props{
			"name":       optional(m.Name),
			"property":   optional(m.Property),
			"http-equiv": optional(m.HTTPEquiv),
			"content":    optional(m.Content),
		}))
	}
	for _, l := range page.Links {
		children = append(children, vdom.Link(vdom.Props{
			"rel":   optional(l.Rel),
			"href":  optional(l.Href),
			"type":  optional(l.Type),
			"media": optional(l.Media),
		}))
	}
	for _, css := range page.Styles {
		children = append(children, vdom.StyleEl(vdom.InnerHTML(css)))
	}
	for _, s := range page.Scripts {
		props := vdom.Props{
			"src":   optional(s.Src),
			"defer": s.Defer,
			"async": s.Async,
		}
		if s.Module {
			props["type"] = "module"
		}
		if s.Inline != "" {
			props["innerHTML"] = s.Inline
		}
		children = append(children, vdom.Script(props))
	}
	for _, h := range page.Head {
		children = append(children, h)
	}
	return vdom.Head(children...)
}

// optional maps empty strings to nil so the attribute is left out.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
