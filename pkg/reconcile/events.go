package reconcile

import (
	"errors"
	"fmt"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/loop"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// proxy is the one DOM listener a node holds per event type. Swapping the
// handler in a later render only changes fn, so it costs no DOM write.
type proxy struct {
	r        *Reconciler
	b        *binding
	typ      string
	fn       any
	dead     bool
	listener *dom.Listener
}

// patchEvents adds and removes proxies so that b has exactly one per event
// type in next. Links get a click proxy for interception even without a
// click handler.
func (r *Reconciler) patchEvents(el dom.Element, b *binding, next vdom.Props) {
	want := make(map[string]any)
	for k, v := range next {
		if vdom.IsEventProp(k, v) {
			want[vdom.EventName(k)] = v
		}
	}
	if r.nav != nil && vdom.Flags(el.NodeName()).Has(vdom.FlagAnchor) {
		if _, ok := next["href"].(string); ok {
			if _, has := want["click"]; !has {
				want["click"] = nil
			}
		}
	}

	for typ, px := range b.events {
		if _, keep := want[typ]; !keep {
			px.dead = true
			el.RemoveEventListener(typ, px.listener)
			r.metrics.write(opUnlisten)
			delete(b.events, typ)
		}
	}
	for typ, fn := range want {
		if px, ok := b.events[typ]; ok {
			px.fn = fn
			continue
		}
		px := &proxy{r: r, b: b, typ: typ, fn: fn}
		px.listener = &dom.Listener{Handle: px.handle}
		if b.events == nil {
			b.events = make(map[string]*proxy)
		}
		b.events[typ] = px
		el.AddEventListener(typ, px.listener)
		r.metrics.write(opListen)
	}
}

type link struct {
	href     string
	target   string
	download bool
}

// link returns the navigation attributes of an anchor-like element.
func (px *proxy) link() (link, bool) {
	v := px.b.v
	if px.typ != "click" || v == nil || !vdom.Flags(v.Tag).Has(vdom.FlagAnchor) {
		return link{}, false
	}
	href, ok := v.Props["href"].(string)
	if !ok {
		return link{}, false
	}
	l := link{href: href}
	l.target, _ = v.Props["target"].(string)
	if d, ok := v.Props["download"]; ok && d != nil && d != false {
		l.download = true
	}
	return l, true
}

func (px *proxy) handle(ev *dom.Event) error {
	if px.dead {
		return nil
	}
	r := px.r
	l, isLink := px.link()
	var errs []error
	if px.fn != nil {
		res, err := invoke(px.fn, ev)
		if err == nil {
			err = r.apply(px.b.innerScope(), res)
		}
		if err != nil {
			r.logger.Debug("handler failed", "event", px.typ, "error", err)
			errs = append(errs, err)
		}
	}
	if isLink && r.nav != nil {
		if _, err := r.nav.InterceptClick(ev, l.href, l.target, l.download); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// apply carries out a handler's return value. A vnode becomes the new
// output of sc; a promise is followed and its value applied once it
// settles, with its error surfacing from the loop that runs the callback.
func (r *Reconciler) apply(sc scope, res any) error {
	switch v := res.(type) {
	case nil:
		return nil
	case *vdom.VNode:
		if v == nil || sc == nil {
			return nil
		}
		return sc.Update(v)
	case *loop.Promise:
		if v == nil {
			return nil
		}
		v.Then(func(value any, err error) error {
			if err != nil {
				return err
			}
			return r.apply(sc, value)
		})
		return nil
	case error:
		return v
	}
	return nil
}

// invoke calls a handler with the signature it was declared with.
func invoke(fn any, ev *dom.Event) (res any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reconcile: %s handler panicked: %v", ev.Type, p)
		}
	}()
	switch h := fn.(type) {
	case func():
		h()
	case func(*dom.Event):
		h(ev)
	case func(string):
		h(ev.Value)
	case func() error:
		return nil, h()
	case func(*dom.Event) error:
		return nil, h(ev)
	case func() *vdom.VNode:
		return h(), nil
	case func(*dom.Event) *vdom.VNode:
		return h(ev), nil
	case func(string) *vdom.VNode:
		return h(ev.Value), nil
	case func() *loop.Promise:
		return h(), nil
	case func(*dom.Event) *loop.Promise:
		return h(ev), nil
	case func() any:
		return h(), nil
	case func(*dom.Event) any:
		return h(ev), nil
	default:
		return nil, fmt.Errorf("reconcile: unsupported handler type %T", fn)
	}
	return nil, nil
}

func supportedHandler(fn any) bool {
	switch fn.(type) {
	case func(), func(*dom.Event), func(string),
		func() error, func(*dom.Event) error,
		func() *vdom.VNode, func(*dom.Event) *vdom.VNode, func(string) *vdom.VNode,
		func() *loop.Promise, func(*dom.Event) *loop.Promise,
		func() any, func(*dom.Event) any:
		return true
	}
	return false
}
