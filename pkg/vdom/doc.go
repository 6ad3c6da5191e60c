// Package vdom provides the vnode model shared by the serializer and the
// reconciler.
//
// A VNode is an immutable description of a tag, its props and its children.
// Keys given through the "key" prop (or Key) become the node's stable
// identity among its siblings; everything else is compared structurally.
//
// # Element API
//
// Elements are created with H or the generated helpers, which accept either
// (props, children...) or (children...):
//
//	Div(Props{"class": "card"},
//	    H1("Title"),
//	    P("Count: ", 3),
//	    OnClick(handler),
//	)
//
// Children may be vnodes, strings, numbers, nested slices (flattened), or
// nil/false (rendered as nothing). Triple returns the [tag, props, ...children]
// shape expected by callers that treat helpers as plain data factories.
//
// # Tags and namespaces
//
// Tags are plain strings. Flags looks up the behaviour bits for a tag (void,
// namespace root, anchor) and ResolveNamespace applies the html / svg /
// mathml switching rules.
//
// # Errors
//
// InvalidPropError and InvalidVnodeError are returned by Validate, the
// serializer and the reconciler for trees they refuse to handle.
package vdom
