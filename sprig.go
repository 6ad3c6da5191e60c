// Package sprig is a small declarative UI runtime.
//
// Applications describe their interface as vnode trees built with H and
// the element helpers in pkg/vdom. A Runtime mounts a tree into a document
// and patches it as event handlers return new trees; the same trees render
// to HTML on the server with ToHTMLString.
//
//	rt := sprig.NewRuntime(doc, win)
//	defer sprig.Bind(rt)()
//	err := sprig.Render(app(), body)
//
// The package-level functions act on the bound runtime. Without one,
// Render, Navigate and OnNavigate do nothing.
package sprig

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/loop"
	"github.com/vango-dev/sprig/pkg/reconcile"
	"github.com/vango-dev/sprig/pkg/render"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// VNode is a node of a virtual tree.
type VNode = vdom.VNode

// Props holds the properties of an element vnode.
type Props = vdom.Props

// Location is a snapshot of the current URL.
type Location = dom.Location

// RenderOptions control Render. Replace unmounts the current content and
// mounts from scratch instead of patching.
type RenderOptions = reconcile.RenderOptions

// HTMLOptions control ToHTMLString. Doctype prefixes <!doctype html>.
type HTMLOptions = render.Options

// Runtime ties a document and window to the loop, router and reconciler
// that drive them. A Runtime is not safe for concurrent use; all of its
// methods run on the goroutine that runs Loop.
type Runtime struct {
	Document   dom.Document
	Window     dom.Window
	Loop       *loop.Loop
	Router     *router.Router
	Reconciler *reconcile.Reconciler

	logger *slog.Logger
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	logger  *slog.Logger
	metrics *reconcile.Metrics
	tracer  trace.Tracer
	loop    *loop.Loop
}

// WithLogger sets the logger shared by the loop, router and reconciler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runtimeConfig) {
		c.logger = logger
	}
}

// WithMetrics records the reconciler's patches into m.
func WithMetrics(m *reconcile.Metrics) Option {
	return func(c *runtimeConfig) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *runtimeConfig) {
		c.tracer = tracer
	}
}

// WithLoop uses lp instead of a new loop.
func WithLoop(lp *loop.Loop) Option {
	return func(c *runtimeConfig) {
		c.loop = lp
	}
}

// NewRuntime creates a runtime over doc and win. Link clicks inside
// rendered trees navigate through the runtime's router.
func NewRuntime(doc dom.Document, win dom.Window, opts ...Option) *Runtime {
	cfg := runtimeConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	lp := cfg.loop
	if lp == nil {
		lp = loop.New(loop.WithLogger(cfg.logger))
	}
	rt := router.New(win, lp, router.WithLogger(cfg.logger))
	recOpts := []reconcile.Option{
		reconcile.WithNavigator(rt),
		reconcile.WithLogger(cfg.logger),
		reconcile.WithMetrics(cfg.metrics),
	}
	if cfg.tracer != nil {
		recOpts = append(recOpts, reconcile.WithTracer(cfg.tracer))
	}
	return &Runtime{
		Document:   doc,
		Window:     win,
		Loop:       lp,
		Router:     rt,
		Reconciler: reconcile.New(doc, recOpts...),
		logger:     cfg.logger,
	}
}

// Render makes container match v. At most one RenderOptions is used.
func (rt *Runtime) Render(v *VNode, container dom.Node, opts ...RenderOptions) error {
	var o RenderOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return rt.Reconciler.Render(v, container, o)
}

// Mount renders the page for the current location into container and
// renders again after every navigation. The returned function stops
// following navigations.
func (rt *Runtime) Mount(page func(Location) *VNode, container dom.Node) (stop func(), err error) {
	if err := rt.Render(page(rt.Router.Location()), container); err != nil {
		return func() {}, err
	}
	return rt.Router.OnNavigate(func(loc Location) {
		if err := rt.Render(page(loc), container); err != nil {
			rt.logger.Error("render after navigation failed", "path", loc.Path(), "error", err)
		}
	}), nil
}

// Run processes the runtime's loop until ctx is done.
func (rt *Runtime) Run(ctx context.Context) error {
	return rt.Loop.Run(ctx)
}

// Close detaches the router from the window.
func (rt *Runtime) Close() {
	rt.Router.Close()
}

var (
	boundMu sync.RWMutex
	bound   *Runtime
)

// Bind installs rt for the package-level functions and returns a function
// restoring the previous runtime.
func Bind(rt *Runtime) (restore func()) {
	boundMu.Lock()
	prev := bound
	bound = rt
	boundMu.Unlock()

	var r *router.Router
	if rt != nil {
		r = rt.Router
	}
	restoreRouter := router.Bind(r)
	return func() {
		restoreRouter()
		boundMu.Lock()
		bound = prev
		boundMu.Unlock()
	}
}

// Bound returns the bound runtime, or nil.
func Bound() *Runtime {
	boundMu.RLock()
	defer boundMu.RUnlock()
	return bound
}

// Render renders v into container with the bound runtime.
func Render(v *VNode, container dom.Node, opts ...RenderOptions) error {
	if rt := Bound(); rt != nil {
		return rt.Render(v, container, opts...)
	}
	return nil
}

// ToHTMLString serializes v to HTML. It needs no runtime.
func ToHTMLString(v *VNode, opts ...HTMLOptions) (string, error) {
	var o HTMLOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return render.ToHTMLString(v, o)
}

// Navigate pushes target onto the history of the bound runtime.
func Navigate(target string, opts ...router.NavigateOption) error {
	return router.Navigate(target, opts...)
}

// OnNavigate subscribes cb to navigations of the bound runtime.
func OnNavigate(cb func(Location)) (unsubscribe func()) {
	return router.OnNavigate(cb)
}

// H creates an element vnode. See vdom.H.
func H(tag string, args ...any) *VNode { return vdom.H(tag, args...) }

// Fragment groups children without a wrapping element.
func Fragment(children ...any) *VNode { return vdom.Fragment(children...) }

// Text creates a text vnode.
func Text(content string) *VNode { return vdom.Text(content) }
