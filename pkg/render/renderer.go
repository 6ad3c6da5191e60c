package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/sprig/pkg/vdom"
)

// Doctype is written before the markup when Options.Doctype is set.
const Doctype = "<!doctype html>"

// Options configures serialization.
type Options struct {
	// Doctype prefixes the output with <!doctype html>.
	Doctype bool

	// Pretty enables indented output. Whitespace between elements changes
	// the text content of the parsed document, so only use it for reading.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// ComponentError is returned when a component's render function fails.
type ComponentError struct {
	Component string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("render: component %s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// Renderer serializes vnode trees to HTML. A Renderer holds no state
// between calls and may be shared.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &Renderer{opts: opts}
}

// ToHTMLString serializes v with a throwaway Renderer.
func ToHTMLString(v *vdom.VNode, opts Options) (string, error) {
	return NewRenderer(opts).RenderToString(v)
}

// RenderToString serializes v. Component vnodes are rendered on the way.
func (r *Renderer) RenderToString(v *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.render(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter serializes v to w. Nothing is written when the tree is
// invalid.
func (r *Renderer) RenderToWriter(w io.Writer, v *vdom.VNode) error {
	var buf bytes.Buffer
	if err := r.render(&buf, v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) render(buf *bytes.Buffer, v *vdom.VNode) error {
	if r.opts.Doctype {
		buf.WriteString(Doctype)
		if r.opts.Pretty {
			buf.WriteByte('\n')
		}
	}
	return r.renderNode(buf, v, 0)
}

func (r *Renderer) renderNode(buf *bytes.Buffer, v *vdom.VNode, depth int) error {
	if v == nil {
		return nil
	}
	if err := vdom.CheckNode(v); err != nil {
		return err
	}
	switch v.Kind {
	case vdom.KindText:
		buf.WriteString(EscapeText(v.Text))
		return nil
	case vdom.KindFragment:
		return r.renderChildren(buf, v.Children, depth)
	case vdom.KindComponent:
		return r.renderComponent(buf, v, depth)
	default:
		return r.renderElement(buf, v, depth)
	}
}

// renderChildren renders components first so that sibling keys follow
// the reconciler's rule: a slot's key may come from a component's output.
func (r *Renderer) renderChildren(buf *bytes.Buffer, children []*vdom.VNode, depth int) error {
	flat := vdom.Flatten(children)
	nodes := make([]*vdom.VNode, len(flat))
	seen := make(vdom.KeySet)
	for i, c := range flat {
		chain, err := r.expand(c)
		if err != nil {
			return err
		}
		if err := seen.Add(c, vdom.SlotKey(chain...)); err != nil {
			return err
		}
		nodes[i] = chain[len(chain)-1]
	}
	for _, n := range nodes {
		if err := r.renderNode(buf, n, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderComponent serializes the component's output. The output rules
// match what the reconciler accepts, so a page that renders on the server
// also mounts in a document.
func (r *Renderer) renderComponent(buf *bytes.Buffer, v *vdom.VNode, depth int) error {
	chain, err := r.expand(v)
	if err != nil {
		return err
	}
	return r.renderNode(buf, chain[len(chain)-1], depth)
}

// expand renders v while it is a component and returns the component
// vnodes followed by the node they produce.
func (r *Renderer) expand(v *vdom.VNode) ([]*vdom.VNode, error) {
	chain := []*vdom.VNode{v}
	for v.Kind == vdom.KindComponent {
		if err := vdom.CheckNode(v); err != nil {
			return nil, err
		}
		out, err := v.Comp.Render(v.Args)
		if err != nil {
			return nil, &ComponentError{Component: v.Comp.Name(), Err: err}
		}
		switch {
		case out == nil:
			return nil, &vdom.InvalidVnodeError{Node: v, Reason: "component rendered nothing"}
		case out.Kind == vdom.KindFragment:
			return nil, &vdom.InvalidVnodeError{Node: v, Reason: "component must render a single node, not a fragment"}
		}
		chain = append(chain, out)
		v = out
	}
	return chain, nil
}

func (r *Renderer) renderElement(buf *bytes.Buffer, v *vdom.VNode, depth int) error {
	pretty := r.opts.Pretty
	if pretty && depth > 0 {
		r.writeIndent(buf, depth)
	}
	buf.WriteByte('<')
	buf.WriteString(v.Tag)
	writeAttributes(buf, v.Props)
	buf.WriteByte('>')

	if vdom.IsVoidElement(v.Tag) {
		if pretty {
			buf.WriteByte('\n')
		}
		return nil
	}

	if raw, ok := v.Props["innerHTML"]; ok && raw != nil {
		buf.WriteString(vdom.FormatValue(raw))
	} else {
		block := pretty && !inlineElements[v.Tag] && hasElementChild(v.Children)
		if block {
			buf.WriteByte('\n')
		}
		if err := r.renderChildren(buf, v.Children, depth+1); err != nil {
			return err
		}
		if block {
			r.writeIndent(buf, depth)
		}
	}

	buf.WriteString("</")
	buf.WriteString(v.Tag)
	buf.WriteByte('>')
	if pretty {
		buf.WriteByte('\n')
	}
	return nil
}

// writeAttributes writes props in name order. Handlers, nil and false
// values are skipped; true becomes a bare attribute.
func writeAttributes(buf *bytes.Buffer, props vdom.Props) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := props[k]
		if k == "key" || k == "innerHTML" || value == nil || vdom.IsFunc(value) {
			continue
		}
		if b, ok := value.(bool); ok {
			if b {
				buf.WriteByte(' ')
				buf.WriteString(k)
			}
			continue
		}
		var text string
		if m, ok := vdom.StyleMap(value); ok && k == "style" {
			if text = styleText(m); text == "" {
				continue
			}
		} else {
			text = vdom.FormatValue(value)
		}
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteString(`="`)
		buf.WriteString(EscapeAttr(text))
		buf.WriteByte('"')
	}
}

// styleText joins a style mapping into declaration text.
func styleText(m map[string]any) string {
	entries := vdom.StyleEntries(m)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Property + ":" + e.Value
	}
	return strings.Join(parts, ";")
}

func hasElementChild(children []*vdom.VNode) bool {
	for _, c := range children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(r.opts.Indent)
	}
}

// inlineElements keep their children on one line in pretty mode.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"bdi":    true,
	"bdo":    true,
	"button": true,
	"cite":   true,
	"code":   true,
	"data":   true,
	"dfn":    true,
	"em":     true,
	"i":      true,
	"kbd":    true,
	"label":  true,
	"mark":   true,
	"q":      true,
	"s":      true,
	"samp":   true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
	"var":    true,
}
