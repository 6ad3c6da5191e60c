//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser through syscall/js.
//
// Wrappers are created lazily and cached per browser node, so the same
// dom.Node value comes back for the same browser node, which the reconciler
// relies on to find its bindings.
package jsdom
