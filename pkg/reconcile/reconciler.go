package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

const tracerName = "github.com/vango-dev/sprig/pkg/reconcile"

// Navigator turns anchor clicks into client-side navigations.
type Navigator interface {
	// InterceptClick decides whether a click on a link is handled in-app.
	// When it is, the navigator prevents the default action and navigates,
	// and reports true.
	InterceptClick(ev *dom.Event, href, target string, download bool) (bool, error)
}

// Reconciler mounts vnode trees into a document and keeps them in sync.
// A Reconciler is not safe for concurrent use; drive it from the goroutine
// that runs the application's loop.
type Reconciler struct {
	doc     dom.Document
	nav     Navigator
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	bindings map[dom.Node]*binding
	busy     bool
	deferred []func() error
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithNavigator enables link interception through nav.
func WithNavigator(nav Navigator) Option {
	return func(r *Reconciler) {
		r.nav = nav
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithMetrics records patch metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for render and commit spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Reconciler) {
		r.tracer = tracer
	}
}

// New creates a reconciler for doc. A nil doc yields a reconciler whose
// entry points do nothing, for code that runs without a document.
func New(doc dom.Document, opts ...Option) *Reconciler {
	r := &Reconciler{
		doc:      doc,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
		bindings: make(map[dom.Node]*binding),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderOptions control Render.
type RenderOptions struct {
	// Replace unmounts the current content and mounts v from scratch
	// instead of patching.
	Replace bool
}

// Render makes the content of container match v. The first call mounts v,
// replacing whatever container held; later calls patch against the tree
// committed by the previous call. v may be a fragment or nil.
//
// The whole tree is rendered and validated before the first DOM write, so
// an error leaves container exactly as it was.
func (r *Reconciler) Render(v *vdom.VNode, container dom.Node, opts RenderOptions) error {
	if r.doc == nil || container == nil {
		return nil
	}
	return r.run("sprig.render", func(p *pass) error {
		list, err := r.resolveList([]*vdom.VNode{v})
		if err != nil {
			return err
		}
		cb, err := r.container(container)
		if err != nil {
			return err
		}
		if opts.Replace {
			for _, k := range cb.kids {
				r.remove(cb, k)
			}
			cb.kids = nil
			releaseScope(cb)
			cb.scope = &rootScope{r: r, container: container, b: cb}
		}
		r.patchChildren(p, cb, list, cb.scope)
		return nil
	})
}

// Unmount removes everything Render mounted into container and releases
// its component boundaries.
func (r *Reconciler) Unmount(container dom.Node) error {
	if r.doc == nil || container == nil {
		return nil
	}
	return r.run("sprig.unmount", func(p *pass) error {
		cb := r.bindings[container]
		if cb == nil || !cb.container {
			return nil
		}
		for _, k := range cb.kids {
			r.remove(cb, k)
		}
		releaseScope(cb)
		delete(r.bindings, container)
		return nil
	})
}

// Patch reconciles a single slot of parent. live is the node currently in
// the slot (nil to mount next at the end of parent) and next is the tree it
// should reflect (nil to unmount live). prev describes what live reflects
// when the reconciler has no record of it; otherwise the committed record
// wins. ns is the namespace parent's children are created in when parent
// has not been rendered into before. Patch returns the node now occupying
// the slot.
func (r *Reconciler) Patch(parent, live dom.Node, prev, next *vdom.VNode, ns vdom.Namespace) (dom.Node, error) {
	if r.doc == nil || parent == nil {
		return nil, nil
	}
	var result dom.Node
	err := r.run("sprig.patch", func(p *pass) error {
		var n *rnode
		if next != nil {
			var err error
			if n, err = r.resolve(next); err != nil {
				return err
			}
		}
		pb := r.bindings[parent]
		if pb == nil {
			pb = &binding{node: parent, ns: ns, container: true}
			pb.scope = &rootScope{r: r, container: parent, b: pb}
			r.bindings[parent] = pb
		}
		if live != nil && r.bindings[live] == nil && prev != nil && n != nil {
			r.adopt(live, prev, pb)
		}
		switch {
		case n == nil && live == nil:
		case n == nil:
			r.remove(pb, live)
		case live == nil:
			result = r.mount(p, n, pb.ns, pb.innerScope(), nil)
			parent.InsertBefore(result, nil)
			r.metrics.write(opInsert)
		default:
			result = r.patchSlot(p, pb, live, n, pb.innerScope())
		}
		pb.kids = r.boundChildren(parent)
		return nil
	})
	return result, err
}

// CommitBoundary reconciles the root of b against out. It implements
// component.Committer.
func (r *Reconciler) CommitBoundary(b *component.Boundary, out *vdom.VNode) error {
	if r.doc == nil {
		return nil
	}
	return r.run("sprig.commit", func(p *pass) error {
		live := b.Root
		if live == nil || b.Released() {
			return nil
		}
		nb := r.bindings[live]
		if nb == nil {
			return nil
		}
		level := -1
		for i, x := range nb.bounds {
			if x == b {
				level = i
			}
		}
		pb := r.bindings[live.Parent()]
		if level < 0 || pb == nil {
			return nil
		}
		inner, err := r.resolve(out)
		if err != nil {
			return err
		}
		n := &rnode{
			v:        inner.v,
			key:      nb.key,
			keep:     level,
			children: inner.children,
		}
		n.comps = append([]*vdom.VNode{}, nb.comps[:level]...)
		n.outs = append([]*vdom.VNode{}, nb.outs[:level]...)
		if out.Kind == vdom.KindComponent && out.Comp == b.Def() {
			// The handler re-invoked the component's own helper: new args
			// for this boundary rather than a nested component.
			n.comps = append(n.comps, inner.comps...)
			n.outs = append(n.outs, inner.outs...)
		} else {
			n.comps = append(n.comps, nb.comps[level])
			n.comps = append(n.comps, inner.comps...)
			n.outs = append(n.outs, out)
			n.outs = append(n.outs, inner.outs...)
		}

		node := r.patchSlot(p, pb, live, n, nb.scope)
		if node != live {
			for i, k := range pb.kids {
				if k == live {
					pb.kids[i] = node
				}
			}
		}
		r.logger.Debug("boundary committed", "boundary", b.Name(), "version", b.Version())
		return nil
	})
}

// pass collects the boundaries entered while one patch runs.
type pass struct {
	entered []*component.Boundary
}

// run executes fn as one patch. A patch requested while another is in
// flight (from a handler fired by a DOM write, or a render function) is
// queued and runs after it, so no patch ever observes a half-patched node.
func (r *Reconciler) run(name string, fn func(p *pass) error) error {
	if r.busy {
		r.deferred = append(r.deferred, func() error { return r.run(name, fn) })
		return nil
	}
	_, span := r.tracer.Start(context.Background(), name)
	defer span.End()
	start := time.Now()

	r.busy = true
	p := &pass{}
	err := fn(p)
	var pending []func() error
	for _, b := range p.entered {
		if out := b.Exit(); out != nil {
			pending = append(pending, func() error { return b.Update(out) })
		}
	}
	r.busy = false

	r.metrics.observe(name, time.Since(start), err)
	span.SetAttributes(attribute.Int("sprig.boundaries", len(p.entered)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Debug("patch rejected", "op", name, "error", err)
	}

	errs := []error{err}
	for _, fn := range pending {
		errs = append(errs, fn())
	}
	for len(r.deferred) > 0 {
		next := r.deferred[0]
		r.deferred = r.deferred[1:]
		errs = append(errs, next())
	}
	return errors.Join(errs...)
}

// container returns the binding of a render container, creating it (and
// clearing unmanaged content) on first use.
func (r *Reconciler) container(node dom.Node) (*binding, error) {
	if b := r.bindings[node]; b != nil {
		if !b.container {
			return nil, fmt.Errorf("reconcile: <%s> is already managed by an enclosing render", node.NodeName())
		}
		return b, nil
	}
	ns := vdom.NamespaceHTML
	if el, ok := node.(dom.Element); ok {
		switch el.NamespaceURI() {
		case vdom.SVGNamespaceURI:
			ns = vdom.NamespaceSVG
		case vdom.MathMLNamespaceURI:
			ns = vdom.NamespaceMathML
		}
		if node.NodeName() == "foreignObject" {
			ns = vdom.NamespaceHTML
		}
	}
	for _, c := range node.Children() {
		node.RemoveChild(c)
		r.metrics.write(opRemove)
	}
	b := &binding{node: node, ns: ns, container: true}
	b.scope = &rootScope{r: r, container: node, b: b}
	r.bindings[node] = b
	return b, nil
}

// boundChildren returns the children of node the reconciler manages.
func (r *Reconciler) boundChildren(node dom.Node) []dom.Node {
	var out []dom.Node
	for _, c := range node.Children() {
		if r.bindings[c] != nil {
			out = append(out, c)
		}
	}
	return out
}

// adopt records prev as the tree live reflects, for nodes that were
// mounted outside this reconciler. Children are not adopted; they are
// replaced on the first patch.
func (r *Reconciler) adopt(live dom.Node, prev *vdom.VNode, pb *binding) {
	if prev.Kind != vdom.KindElement && prev.Kind != vdom.KindText {
		return
	}
	if prev.Kind == vdom.KindElement && live.NodeName() != prev.Tag {
		return
	}
	_, ns := vdom.ResolveNamespace(pb.ns, prev.Tag)
	b := &binding{node: live, v: prev, key: prev.Key, ns: ns, scope: pb.innerScope()}
	for _, c := range live.Children() {
		live.RemoveChild(c)
		r.metrics.write(opRemove)
	}
	r.bindings[live] = b
}

// Bound reports whether node is managed by the reconciler.
func (r *Reconciler) Bound(node dom.Node) bool {
	return r.bindings[node] != nil
}

// Boundaries returns the component boundaries rooted at node, outermost
// first.
func (r *Reconciler) Boundaries(node dom.Node) []*component.Boundary {
	if b := r.bindings[node]; b != nil {
		return append([]*component.Boundary(nil), b.bounds...)
	}
	return nil
}

// rootScope makes a render container the outermost re-render scope: a
// handler outside every component that returns a vnode re-renders the
// whole container.
// A scope is released when its container is unmounted or replaced;
// results arriving after that are dropped.
type rootScope struct {
	r         *Reconciler
	container dom.Node
	b         *binding
	released  bool
}

func (s *rootScope) Update(out *vdom.VNode) error {
	if out == nil || s.released || s.r.bindings[s.container] != s.b {
		return nil
	}
	return s.r.Render(out, s.container, RenderOptions{})
}

func releaseScope(b *binding) {
	if rs, ok := b.scope.(*rootScope); ok {
		rs.released = true
	}
}
