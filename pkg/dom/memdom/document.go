package memdom

import (
	"sync"

	"github.com/vango-dev/sprig/pkg/dom"
)

// Op names a recorded mutation.
type Op string

const (
	OpInsert         Op = "insert"
	OpRemove         Op = "remove"
	OpReplace        Op = "replace"
	OpSetAttr        Op = "setAttribute"
	OpRemoveAttr     Op = "removeAttribute"
	OpSetProp        Op = "setProperty"
	OpSetStyle       Op = "setStyle"
	OpRemoveStyle    Op = "removeStyle"
	OpSetText        Op = "setText"
	OpAddListener    Op = "addEventListener"
	OpRemoveListener Op = "removeEventListener"
)

// Record is one mutation applied to a node that belongs to the document.
type Record struct {
	Op     Op     `json:"op"`
	Target string `json:"target"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Document is an in-memory dom.Document that records every mutation.
// Creating nodes is not recorded; attaching, editing and detaching them is.
type Document struct {
	mu       sync.Mutex
	records  []Record
	observer func(Record)
}

var _ dom.Document = (*Document)(nil)

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// CreateElementNS creates a detached element.
func (d *Document) CreateElementNS(namespaceURI, tag string) dom.Element {
	return &Element{
		base:  base{doc: d},
		tag:   tag,
		ns:    namespaceURI,
		props: make(map[string]any),
	}
}

// CreateElement creates a detached HTML element.
func (d *Document) CreateElement(tag string) *Element {
	return d.CreateElementNS("http://www.w3.org/1999/xhtml", tag).(*Element)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &Text{base: base{doc: d}, data: text}
}

// Records returns a copy of the mutation log.
func (d *Document) Records() []Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Writes returns the number of recorded mutations.
func (d *Document) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// Reset clears the mutation log.
func (d *Document) Reset() {
	d.mu.Lock()
	d.records = nil
	d.mu.Unlock()
}

// Observe installs fn to receive every future record. Pass nil to stop.
func (d *Document) Observe(fn func(Record)) {
	d.mu.Lock()
	d.observer = fn
	d.mu.Unlock()
}

func (d *Document) record(op Op, target dom.Node, name, value string) {
	if d == nil {
		return
	}
	r := Record{Op: op, Target: describe(target), Name: name, Value: value}
	d.mu.Lock()
	d.records = append(d.records, r)
	obs := d.observer
	d.mu.Unlock()
	if obs != nil {
		obs(r)
	}
}

func describe(n dom.Node) string {
	if n == nil {
		return ""
	}
	if t, ok := n.(*Text); ok {
		return "#text(" + t.data + ")"
	}
	if e, ok := n.(*Element); ok {
		if id, ok := e.GetAttribute("id"); ok {
			return e.tag + "#" + id
		}
		return e.tag
	}
	return n.NodeName()
}
