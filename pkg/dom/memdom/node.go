package memdom

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vango-dev/sprig/pkg/dom"
)

// node is implemented by *Element and *Text.
type node interface {
	dom.Node
	owner() *base
}

type base struct {
	doc    *Document
	parent *Element
}

func (b *base) owner() *base { return b }

// Parent returns the parent element or nil.
func (b *base) Parent() dom.Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Text is an in-memory text node.
type Text struct {
	base
	data string
}

var _ dom.Node = (*Text)(nil)

func (t *Text) NodeName() string           { return "#text" }
func (t *Text) Children() []dom.Node       { return nil }
func (t *Text) InsertBefore(_, _ dom.Node) { panic("memdom: text nodes have no children") }
func (t *Text) RemoveChild(dom.Node)       { panic("memdom: text nodes have no children") }
func (t *Text) ReplaceChild(_, _ dom.Node) { panic("memdom: text nodes have no children") }
func (t *Text) Text() string               { return t.data }

// SetText replaces the character data.
func (t *Text) SetText(text string) {
	t.data = text
	t.doc.record(OpSetText, t, "", text)
}

type attribute struct {
	name, value string
}

type styleEntry struct {
	name, value string
}

// Element is an in-memory element.
type Element struct {
	base
	tag       string
	ns        string
	children  []node
	attrs     []attribute
	props     map[string]any
	style     []styleEntry
	listeners map[string][]*dom.Listener
	raw       *string
}

var _ dom.Element = (*Element)(nil)

// NodeName returns the tag.
func (e *Element) NodeName() string { return e.tag }

// NamespaceURI returns the namespace the element was created in.
func (e *Element) NamespaceURI() string { return e.ns }

// Children returns a snapshot of the child list.
func (e *Element) Children() []dom.Node {
	out := make([]dom.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Text returns the concatenated text of the subtree.
func (e *Element) Text() string {
	var s string
	for _, c := range e.children {
		s += c.Text()
	}
	return s
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(text string) {
	for len(e.children) > 0 {
		e.RemoveChild(e.children[0])
	}
	e.InsertBefore(e.doc.CreateTextNode(text), nil)
}

func (e *Element) indexOf(n dom.Node) int {
	for i, c := range e.children {
		if dom.Node(c) == n {
			return i
		}
	}
	return -1
}

func (e *Element) detach(n node) {
	b := n.owner()
	if b.parent == nil {
		return
	}
	p := b.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	b.parent = nil
}

// InsertBefore inserts child before ref, or appends when ref is nil.
func (e *Element) InsertBefore(child, ref dom.Node) {
	c, ok := child.(node)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign node %T", child))
	}
	if e.raw != nil {
		e.raw = nil
	}
	e.detach(c)
	idx := len(e.children)
	if ref != nil {
		if idx = e.indexOf(ref); idx < 0 {
			panic("memdom: reference node is not a child")
		}
	}
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = c
	c.owner().parent = e
	e.doc.record(OpInsert, e, child.NodeName(), describe(ref))
}

// RemoveChild detaches child.
func (e *Element) RemoveChild(child dom.Node) {
	c, ok := child.(node)
	if !ok || c.owner().parent != e {
		panic("memdom: node is not a child")
	}
	e.detach(c)
	e.doc.record(OpRemove, e, child.NodeName(), "")
}

// ReplaceChild puts next where old was.
func (e *Element) ReplaceChild(next, old dom.Node) {
	n, ok := next.(node)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign node %T", next))
	}
	idx := e.indexOf(old)
	if idx < 0 {
		panic("memdom: node is not a child")
	}
	e.detach(n)
	idx = e.indexOf(old)
	old.(node).owner().parent = nil
	e.children[idx] = n
	n.owner().parent = e
	e.doc.record(OpReplace, e, next.NodeName(), old.NodeName())
}

// GetAttribute returns an attribute value.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attributes.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for _, a := range e.attrs {
		out[a.name] = a.value
	}
	return out
}

// SetAttribute sets an attribute.
func (e *Element) SetAttribute(name, value string) {
	e.doc.record(OpSetAttr, e, name, value)
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attribute{name, value})
}

// RemoveAttribute removes an attribute.
func (e *Element) RemoveAttribute(name string) {
	e.doc.record(OpRemoveAttr, e, name, "")
	for i, a := range e.attrs {
		if a.name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// SetProperty writes an element property. "innerHTML" replaces the
// children with verbatim markup.
func (e *Element) SetProperty(name string, value any) {
	e.doc.record(OpSetProp, e, name, fmt.Sprint(value))
	if name == "innerHTML" {
		for _, c := range e.children {
			c.owner().parent = nil
		}
		e.children = nil
		e.raw = nil
		if s := fmt.Sprint(value); s != "" {
			e.raw = &s
		}
		return
	}
	e.props[name] = value
}

// Property returns a property written with SetProperty.
func (e *Element) Property(name string) any {
	if name == "innerHTML" && e.raw != nil {
		return *e.raw
	}
	return e.props[name]
}

// SetStyle sets one style property.
func (e *Element) SetStyle(name, value string) {
	e.doc.record(OpSetStyle, e, name, value)
	for i, s := range e.style {
		if s.name == name {
			e.style[i].value = value
			return
		}
	}
	e.style = append(e.style, styleEntry{name, value})
}

// RemoveStyle removes one style property.
func (e *Element) RemoveStyle(name string) {
	e.doc.record(OpRemoveStyle, e, name, "")
	for i, s := range e.style {
		if s.name == name {
			e.style = append(e.style[:i], e.style[i+1:]...)
			return
		}
	}
}

// Style returns one style property.
func (e *Element) Style(name string) (string, bool) {
	for _, s := range e.style {
		if s.name == name {
			return s.value, true
		}
	}
	return "", false
}

// AddEventListener registers l for typ.
func (e *Element) AddEventListener(typ string, l *dom.Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]*dom.Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], l)
	e.doc.record(OpAddListener, e, typ, "")
}

// RemoveEventListener unregisters l.
func (e *Element) RemoveEventListener(typ string, l *dom.Listener) {
	list := e.listeners[typ]
	for i, x := range list {
		if x == l {
			e.listeners[typ] = append(list[:i], list[i+1:]...)
			break
		}
	}
	e.doc.record(OpRemoveListener, e, typ, "")
}

// ListenerCount returns the number of listeners for typ.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// ListenerTypes returns the event types with at least one listener.
func (e *Element) ListenerTypes() []string {
	var out []string
	for typ, list := range e.listeners {
		if len(list) > 0 {
			out = append(out, typ)
		}
	}
	sort.Strings(out)
	return out
}

// Dispatch delivers ev to target and, when ev.Bubbles, to its ancestors.
// Listener errors are joined and returned.
func Dispatch(target dom.Node, ev *dom.Event) error {
	ev.Target = target
	var errs []error
	for n := target; n != nil; n = n.Parent() {
		el, ok := n.(*Element)
		if ok {
			ev.CurrentTarget = el
			list := append([]*dom.Listener(nil), el.listeners[ev.Type]...)
			for _, l := range list {
				if err := l.Handle(ev); err != nil {
					errs = append(errs, err)
				}
			}
		}
		if !ev.Bubbles || ev.PropagationStopped() {
			break
		}
	}
	return errors.Join(errs...)
}

// Click dispatches an unmodified primary-button click on target.
func Click(target dom.Node) (*dom.Event, error) {
	ev := dom.NewMouseEvent("click", 0)
	return ev, Dispatch(target, ev)
}
