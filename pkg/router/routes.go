package router

import (
	"net/url"
	"strings"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// PageFunc renders the page for a matched location.
type PageFunc func(loc dom.Location, params Params) *vdom.VNode

// Route is a registered page.
type Route struct {
	// Pattern is the path pattern, e.g. "/todos/:id:int" or "/docs/*path".
	Pattern string

	// Title is the document title used when the page is served.
	Title string

	Render PageFunc
}

// Static reports whether the pattern has no parameters, so the page can be
// pre-rendered at exactly one path.
func (r *Route) Static() bool {
	return !strings.ContainsAny(r.Pattern, ":*")
}

// RouteOption configures route registration.
type RouteOption func(*Route)

// WithTitle sets the page title.
func WithTitle(title string) RouteOption {
	return func(r *Route) {
		r.Title = title
	}
}

// Routes maps paths to page render functions. The same table serves pages
// on the server and re-renders them in the browser after a navigation.
type Routes struct {
	root     *routeNode
	routes   []*Route
	notFound PageFunc
}

// NewRoutes creates an empty route table.
func NewRoutes() *Routes {
	return &Routes{root: &routeNode{}}
}

// Page registers a page for pattern. Registering a pattern twice replaces
// the earlier page.
func (t *Routes) Page(pattern string, render PageFunc, opts ...RouteOption) *Route {
	route := &Route{Pattern: pattern, Render: render}
	for _, opt := range opts {
		opt(route)
	}
	node := t.root.insert(pattern)
	if node.route != nil {
		for i, r := range t.routes {
			if r == node.route {
				t.routes = append(t.routes[:i:i], t.routes[i+1:]...)
				break
			}
		}
	}
	node.route = route
	t.routes = append(t.routes, route)
	return route
}

// NotFound sets the page rendered when nothing matches.
func (t *Routes) NotFound(render PageFunc) {
	t.notFound = render
}

// All returns the registered routes in registration order.
func (t *Routes) All() []*Route {
	return append([]*Route(nil), t.routes...)
}

// Match finds the route for an escaped URL path.
func (t *Routes) Match(path string) (*Route, Params, bool) {
	segments := splitPath(path)
	for i, s := range segments {
		if dec, err := url.PathUnescape(s); err == nil {
			segments[i] = dec
		}
	}
	params := make(Params)
	route, ok := t.root.match(segments, params)
	if !ok {
		return nil, nil, false
	}
	return route, params, true
}

// Render renders the page for loc. It returns false when nothing matched;
// the vnode is then the not-found page, if one is set.
func (t *Routes) Render(loc dom.Location) (*vdom.VNode, bool) {
	route, params, ok := t.Match(loc.Pathname)
	if !ok {
		if t.notFound != nil {
			return t.notFound(loc, Params{}), false
		}
		return nil, false
	}
	return route.Render(loc, params), true
}
