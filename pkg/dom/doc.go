// Package dom defines the document surface the reconciler and router work
// against.
//
// The interfaces mirror the small part of the browser DOM the runtime
// needs: node creation, child list edits, attributes, properties, styles,
// listeners, and window history. memdom implements them in memory for
// tests, server-side sessions and headless use; jsdom binds them to the
// browser through syscall/js when built for js/wasm.
package dom
