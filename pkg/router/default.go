package router

import (
	"sync"

	"github.com/vango-dev/sprig/pkg/dom"
)

var (
	defaultMu     sync.RWMutex
	defaultRouter *Router
)

// Bind installs r as the router used by the package-level functions and
// returns a function restoring the previous one. Applications bind once at
// startup; tests bind a router over a fake window.
func Bind(r *Router) (restore func()) {
	defaultMu.Lock()
	prev := defaultRouter
	defaultRouter = r
	defaultMu.Unlock()
	return func() {
		defaultMu.Lock()
		defaultRouter = prev
		defaultMu.Unlock()
	}
}

// Default returns the bound router, or nil.
func Default() *Router {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRouter
}

// Navigate navigates the bound router. Without one it does nothing.
func Navigate(target string, opts ...NavigateOption) error {
	if r := Default(); r != nil {
		return r.Navigate(target, opts...)
	}
	return nil
}

// OnNavigate subscribes to the bound router. Without one the callback is
// never called.
func OnNavigate(cb func(dom.Location)) (unsubscribe func()) {
	if r := Default(); r != nil {
		return r.OnNavigate(cb)
	}
	return func() {}
}

// CurrentLocation returns the bound router's location, or the zero
// Location.
func CurrentLocation() dom.Location {
	if r := Default(); r != nil {
		return r.Location()
	}
	return dom.Location{}
}
