package vdom

import (
	"fmt"
	"strings"
	"unicode"
)

// InvalidPropError reports a prop name the runtime refuses to handle.
type InvalidPropError struct {
	Tag    string
	Prop   string
	Reason string
}

func (e *InvalidPropError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("sprig: invalid prop %q on <%s>: %s", e.Prop, e.Tag, e.Reason)
	}
	return fmt.Sprintf("sprig: invalid prop %q on <%s>", e.Prop, e.Tag)
}

// InvalidVnodeError reports a malformed tree reaching the serializer or the
// reconciler.
type InvalidVnodeError struct {
	Node   *VNode
	Reason string
}

func (e *InvalidVnodeError) Error() string {
	if e.Node != nil {
		return fmt.Sprintf("sprig: invalid vnode %s: %s", e.Node, e.Reason)
	}
	return "sprig: invalid vnode: " + e.Reason
}

// CheckNode validates a single node without descending into its children:
// the kind must be known, elements need a well-formed tag, prop names must
// be valid attribute names, and "className" is refused even when "class"
// is also present.
func CheckNode(v *VNode) error {
	switch v.Kind {
	case KindText, KindFragment:
		return nil
	case KindComponent:
		if v.Comp == nil {
			return &InvalidVnodeError{Node: v, Reason: "component node without a render function"}
		}
		return nil
	case KindElement:
	default:
		return &InvalidVnodeError{Node: v, Reason: fmt.Sprintf("unknown kind %d", v.Kind)}
	}
	if v.Tag == "" {
		return &InvalidVnodeError{Node: v, Reason: "element without a tag"}
	}
	if !ValidName(v.Tag) {
		return &InvalidVnodeError{Node: v, Reason: fmt.Sprintf("malformed tag name %q", v.Tag)}
	}
	if _, ok := v.Props["className"]; ok {
		return &InvalidPropError{Tag: v.Tag, Prop: "className", Reason: `use "class"`}
	}
	for name := range v.Props {
		if !ValidName(name) {
			return &InvalidPropError{Tag: v.Tag, Prop: name, Reason: "malformed attribute name"}
		}
	}
	return nil
}

// ValidName reports whether s can be written as a tag or attribute name:
// it is non-empty and holds no whitespace, control characters or any of
// the characters "'<>=/.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if unicode.IsSpace(c) || unicode.IsControl(c) || strings.ContainsRune(`"'<>=/`, c) {
			return false
		}
	}
	return true
}

// SlotKey returns the identity key of a sibling slot. chain holds the
// component vnodes occupying the slot, outermost first, followed by the
// node they finally render; the first non-empty key wins. A plain element
// is a chain of one.
func SlotKey(chain ...*VNode) string {
	for _, v := range chain {
		if v != nil && v.Key != "" {
			return v.Key
		}
	}
	return ""
}

// KeySet collects the keys of one sibling list.
type KeySet map[string]struct{}

// Add records key for the slot holding v and rejects a repeat. Empty keys
// are ignored.
func (s KeySet) Add(v *VNode, key string) error {
	if key == "" {
		return nil
	}
	if _, dup := s[key]; dup {
		return &InvalidVnodeError{Node: v, Reason: fmt.Sprintf("duplicate key %q among siblings", key)}
	}
	s[key] = struct{}{}
	return nil
}

// CheckKeys rejects duplicate keys in a flattened sibling list.
// Keys produced by rendering components are not seen here; the
// serializer and the reconciler check those with SlotKey.
func CheckKeys(children []*VNode) error {
	seen := make(KeySet)
	for _, c := range children {
		if c == nil {
			continue
		}
		if err := seen.Add(c, c.Key); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a whole tree (without rendering components) and returns
// the first problem found.
func Validate(v *VNode) error {
	if v == nil {
		return nil
	}
	if err := CheckNode(v); err != nil {
		return err
	}
	if err := CheckKeys(Flatten(v.Children)); err != nil {
		return err
	}
	for _, c := range v.Children {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}
