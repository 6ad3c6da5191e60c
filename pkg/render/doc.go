// Package render serializes vnode trees to HTML.
//
// Serialization is pure: component vnodes are rendered with their
// arguments, but no document is involved and nothing is retained between
// calls.
//
//	html, err := render.ToHTMLString(vdom.Div(vdom.Class("x"), "hi"), render.Options{})
//	// <div class="x">hi</div>
//
// Text content and attribute values are escaped. Props are written in
// name order: true booleans become bare attributes, false and nil values
// and handlers are left out, and style mappings are joined into
// declaration text. An innerHTML prop is written verbatim in place of the
// element's children and is the caller's responsibility to sanitize.
//
// A tree using "className", an element without a tag, or duplicate
// sibling keys fails with a *vdom.InvalidPropError or
// *vdom.InvalidVnodeError, and nothing is written.
//
// RenderPage wraps a body in a complete document with a head built from
// Page.
package render
