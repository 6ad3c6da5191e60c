//go:build js && wasm

package sprig

import "github.com/vango-dev/sprig/pkg/dom/jsdom"

// NewBrowserRuntime creates a runtime over the page's document and window.
func NewBrowserRuntime(opts ...Option) *Runtime {
	doc := jsdom.New()
	return NewRuntime(doc, jsdom.NewWindow(doc), opts...)
}
