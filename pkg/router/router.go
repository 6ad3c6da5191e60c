package router

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/loop"
)

// ErrCrossOrigin is returned when a navigation target leaves the origin.
var ErrCrossOrigin = errors.New("cross-origin target")

// Router drives client-side navigation for one window: it owns the
// location snapshot, writes history entries and notifies subscribers.
type Router struct {
	win    dom.Window
	loop   *loop.Loop
	logger *slog.Logger

	mu       sync.Mutex
	loc      dom.Location
	subs     []subscription
	nextID   uint64
	listener *dom.Listener
}

type subscription struct {
	id uint64
	cb func(dom.Location)
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a router for win. Subscriber callbacks run as microtasks on
// lp. A nil win yields a router whose operations do nothing.
func New(win dom.Window, lp *loop.Loop, opts ...Option) *Router {
	if lp == nil {
		lp = loop.New()
	}
	r := &Router{
		win:    win,
		loop:   lp,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if win != nil {
		r.loc = win.Location()
		r.listener = &dom.Listener{Handle: r.onPopState}
		win.AddEventListener("popstate", r.listener)
	}
	return r
}

// Close stops listening to the window.
func (r *Router) Close() {
	if r.win != nil && r.listener != nil {
		r.win.RemoveEventListener("popstate", r.listener)
		r.listener = nil
	}
}

// Location returns the current location.
func (r *Router) Location() dom.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loc
}

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// State is stored with the history entry and carried by the event.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches history state to the entry.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}

// Navigate moves to target, resolved against the current location. When
// pathname, search and hash already match nothing happens. Otherwise a
// history entry is pushed (or replaced), the location is updated and a
// popstate event is dispatched on the window.
func (r *Router) Navigate(target string, opts ...NavigateOption) error {
	if r.win == nil {
		return nil
	}
	var o NavigateOptions
	for _, opt := range opts {
		opt(&o)
	}

	cur := r.Location()
	next, err := cur.Resolve(target)
	if err != nil {
		return fmt.Errorf("router: navigate %q: %w", target, err)
	}
	if next.Origin != cur.Origin {
		return fmt.Errorf("router: navigate %q: %w", target, ErrCrossOrigin)
	}
	if next.SamePath(cur) {
		return nil
	}

	if o.Replace {
		err = r.win.ReplaceState(o.State, next.Path())
	} else {
		err = r.win.PushState(o.State, next.Path())
	}
	if err != nil {
		return fmt.Errorf("router: navigate %q: %w", target, err)
	}
	r.mu.Lock()
	r.loc = next
	r.mu.Unlock()
	r.logger.Debug("navigated", "path", next.Path(), "replace", o.Replace)

	return r.win.DispatchEvent(r.popStateEvent(o.State))
}

// popStateEvent builds the navigation event, falling back to a generic
// event of the same type when the platform cannot build a structured one.
func (r *Router) popStateEvent(state any) *dom.Event {
	ev, err := r.win.NewPopStateEvent(state)
	if err == nil && ev != nil {
		return ev
	}
	r.logger.Warn("popstate event unavailable, dispatching a generic event", "error", err)
	ev = dom.NewEvent("popstate")
	ev.State = state
	return ev
}

// onPopState handles both our own dispatches and platform back/forward.
func (r *Router) onPopState(*dom.Event) error {
	loc := r.win.Location()
	r.mu.Lock()
	r.loc = loc
	r.mu.Unlock()
	r.loop.Queue(func() error {
		r.mu.Lock()
		subs := append([]subscription(nil), r.subs...)
		r.mu.Unlock()
		for _, s := range subs {
			s.cb(loc)
		}
		return nil
	})
	return nil
}

// OnNavigate registers cb to run after every navigation, with the new
// location. Callbacks run in subscription order, as a microtask after the
// navigation. The returned function unsubscribes; calling it twice is fine.
func (r *Router) OnNavigate(cb func(dom.Location)) (unsubscribe func()) {
	if cb == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, cb: cb})
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// HasSubscribers reports whether any OnNavigate callback is registered.
func (r *Router) HasSubscribers() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs) > 0
}

// Back moves one entry back in the window history, if the window keeps one.
func (r *Router) Back() error { return r.traverse(-1) }

// Forward moves one entry forward in the window history.
func (r *Router) Forward() error { return r.traverse(1) }

func (r *Router) traverse(delta int) error {
	h, ok := r.win.(interface{ Go(delta int) error })
	if !ok {
		return nil
	}
	return h.Go(delta)
}

// InterceptClick turns a qualifying link click into a client-side
// navigation. Clicks are only intercepted while someone is subscribed.
func (r *Router) InterceptClick(ev *dom.Event, href, target string, download bool) (bool, error) {
	if r.win == nil || !r.HasSubscribers() {
		return false, nil
	}
	loc, ok := ShouldIntercept(ev, href, target, download, r.Location())
	if !ok {
		return false, nil
	}
	ev.PreventDefault()
	return true, r.Navigate(loc.Path())
}
