//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/vango-dev/sprig/pkg/dom"
)

type node struct {
	doc *Document
	v   js.Value
}

func (n *node) Parent() dom.Node {
	return n.doc.Wrap(n.v.Get("parentNode"))
}

func (n *node) Children() []dom.Node {
	list := n.v.Get("childNodes")
	out := make([]dom.Node, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		if c := n.doc.Wrap(list.Index(i)); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (n *node) InsertBefore(child, ref dom.Node) {
	r := js.Null()
	if ref != nil {
		r = value(ref)
	}
	n.v.Call("insertBefore", value(child), r)
}

func (n *node) RemoveChild(child dom.Node) {
	n.v.Call("removeChild", value(child))
}

func (n *node) ReplaceChild(next, old dom.Node) {
	n.v.Call("replaceChild", value(next), value(old))
}

// Text is a browser text node.
type Text struct {
	node
}

func (t *Text) NodeName() string     { return "#text" }
func (t *Text) Text() string         { return t.v.Get("data").String() }
func (t *Text) SetText(text string)  { t.v.Set("data", text) }
func (t *Text) Children() []dom.Node { return nil }

// Element is a browser element.
type Element struct {
	node
	listeners map[*dom.Listener]js.Func
}

var _ dom.Element = (*Element)(nil)

// NodeName returns the local name, which keeps the case of SVG tags such
// as foreignObject.
func (e *Element) NodeName() string     { return e.v.Get("localName").String() }
func (e *Element) NamespaceURI() string { return e.v.Get("namespaceURI").String() }
func (e *Element) Text() string         { return e.v.Get("textContent").String() }
func (e *Element) SetText(text string)  { e.v.Set("textContent", text) }

func (e *Element) GetAttribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *Element) RemoveAttribute(name string)     { e.v.Call("removeAttribute", name) }

func (e *Element) SetProperty(name string, value any) {
	e.v.Set(name, js.ValueOf(value))
}

func (e *Element) SetStyle(name, value string) {
	e.v.Get("style").Call("setProperty", name, value)
}

func (e *Element) RemoveStyle(name string) {
	e.v.Get("style").Call("removeProperty", name)
}

func (e *Element) AddEventListener(typ string, l *dom.Listener) {
	if e.listeners == nil {
		e.listeners = make(map[*dom.Listener]js.Func)
	}
	fn := e.doc.listener(l)
	e.listeners[l] = fn
	e.v.Call("addEventListener", typ, fn)
}

func (e *Element) RemoveEventListener(typ string, l *dom.Listener) {
	fn, ok := e.listeners[l]
	if !ok {
		return
	}
	e.v.Call("removeEventListener", typ, fn)
	delete(e.listeners, l)
	fn.Release()
}
