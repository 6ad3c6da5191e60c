package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Render-function boundary
)

// FragmentTag is the tag that H and Triple use for fragments.
const FragmentTag = "#fragment"

// TextTag is the tag Triple reports for text nodes.
const TextTag = "#text"

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node. A VNode is treated as an immutable value
// once constructed; the reconciler never writes to it.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText
	Comp     Component // For KindComponent
	Args     []any     // Arguments the component is rendered with
}

// Props holds attributes and event handlers.
type Props map[string]any

// Style is a style mapping. Keys may be camelCase or kebab-case, and
// custom properties ("--accent") are kept as written.
type Style map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Component is a render function wrapped so that it can be mounted as a
// re-render boundary. Identity matters: two component vnodes belong to the
// same boundary only when their Comp values are the same definition.
type Component interface {
	Name() string
	Render(args []any) (*VNode, error)
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key, value := range v.Props {
		if IsEventProp(key, value) {
			return true
		}
	}
	return false
}

// IsEventProp reports whether a prop is an event handler: an "on" prefixed
// name holding a function value.
func IsEventProp(key string, value any) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on") && IsFunc(value)
}

// EventName returns the DOM event type for an event prop ("onClick" -> "click").
func EventName(key string) string {
	return strings.ToLower(key[2:])
}

// Triple returns the node in the tag helper shape: tag, props, then children.
// The result always has at least two elements.
func (v *VNode) Triple() []any {
	if v == nil {
		return []any{FragmentTag, Props{}}
	}
	tag := v.Tag
	switch v.Kind {
	case KindText:
		return []any{TextTag, Props{}, v.Text}
	case KindFragment:
		tag = FragmentTag
	case KindComponent:
		if v.Comp != nil {
			tag = v.Comp.Name()
		}
	}
	props := Props{}
	for k, val := range v.Props {
		props[k] = val
	}
	if v.Key != "" {
		props["key"] = v.Key
	}
	out := make([]any, 0, 2+len(v.Children))
	out = append(out, tag, props)
	for _, c := range v.Children {
		if c != nil && c.Kind == KindText {
			out = append(out, c.Text)
			continue
		}
		out = append(out, c)
	}
	return out
}

// String returns a short debug description.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindFragment:
		return fmt.Sprintf("<>[%d]", len(v.Children))
	case KindComponent:
		name := "?"
		if v.Comp != nil {
			name = v.Comp.Name()
		}
		return fmt.Sprintf("<%s/>", name)
	}
	if v.Key != "" {
		return fmt.Sprintf("<%s key=%q>[%d]", v.Tag, v.Key, len(v.Children))
	}
	return fmt.Sprintf("<%s>[%d]", v.Tag, len(v.Children))
}

// Flatten expands fragments and drops nil entries, returning the sibling
// list a parent element actually holds.
func Flatten(children []*VNode) []*VNode {
	needs := false
	for _, c := range children {
		if c == nil || c.Kind == KindFragment {
			needs = true
			break
		}
	}
	if !needs {
		return children
	}
	out := make([]*VNode, 0, len(children))
	var walk func([]*VNode)
	walk = func(list []*VNode) {
		for _, c := range list {
			switch {
			case c == nil:
			case c.Kind == KindFragment:
				walk(c.Children)
			default:
				out = append(out, c)
			}
		}
	}
	walk(children)
	return out
}
