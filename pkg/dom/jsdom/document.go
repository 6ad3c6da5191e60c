//go:build js && wasm

package jsdom

import (
	"log/slog"
	"syscall/js"

	"github.com/vango-dev/sprig/pkg/dom"
)

// idProp is the expando property holding a node's wrapper id.
const idProp = "__sprigNode"

// Document wraps the browser document.
type Document struct {
	v      js.Value
	nodes  map[int]dom.Node
	nextID int
	logger *slog.Logger
}

var _ dom.Document = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used to report listener errors, which have
// nowhere else to go once the browser has dispatched the event.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// New wraps the global document.
func New(opts ...Option) *Document {
	d := &Document{
		v:      js.Global().Get("document"),
		nodes:  make(map[int]dom.Node),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Body returns document.body.
func (d *Document) Body() dom.Node {
	return d.Wrap(d.v.Get("body"))
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) dom.Node {
	return d.Wrap(d.v.Call("getElementById", id))
}

// CreateElementNS creates an element in namespaceURI.
func (d *Document) CreateElementNS(namespaceURI, tag string) dom.Element {
	return d.Wrap(d.v.Call("createElementNS", namespaceURI, tag)).(dom.Element)
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) dom.Node {
	return d.Wrap(d.v.Call("createTextNode", text))
}

// Wrap returns the wrapper of a browser node, creating it on first use.
// It returns nil for null, undefined and node types other than elements
// and text.
func (d *Document) Wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	if id := v.Get(idProp); id.Type() == js.TypeNumber {
		if n, ok := d.nodes[id.Int()]; ok {
			return n
		}
	}
	var n dom.Node
	switch v.Get("nodeType").Int() {
	case 1:
		n = &Element{node: node{doc: d, v: v}}
	case 3:
		n = &Text{node: node{doc: d, v: v}}
	default:
		return nil
	}
	d.nextID++
	v.Set(idProp, d.nextID)
	d.nodes[d.nextID] = n
	return n
}

// Forget drops the wrapper of n and its descendants. The reconciler's
// bindings must already be gone.
func (d *Document) Forget(n dom.Node) {
	for _, c := range n.Children() {
		d.Forget(c)
	}
	v := value(n)
	if id := v.Get(idProp); id.Type() == js.TypeNumber {
		delete(d.nodes, id.Int())
		v.Delete(idProp)
	}
}

// value returns the browser value behind a wrapper.
func value(n dom.Node) js.Value {
	switch x := n.(type) {
	case *Element:
		return x.v
	case *Text:
		return x.v
	}
	return js.Null()
}
