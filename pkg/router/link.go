package router

import (
	"strings"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// Link creates an anchor element. Clicks on it are handled in-app by the
// bound router whenever anything is subscribed to navigation.
func Link(href string, children ...any) *vdom.VNode {
	return vdom.A(vdom.Href(href), children)
}

// ExternalLink creates an anchor that always leaves the page in a new tab.
func ExternalLink(href string, children ...any) *vdom.VNode {
	return vdom.A(
		vdom.Href(href),
		vdom.Target("_blank"),
		vdom.Rel("noopener noreferrer"),
		children,
	)
}

// ActiveLink creates a link that carries activeClass when loc matches
// href. With exactMatch the paths must be equal; otherwise href may be a
// path prefix of the location.
func ActiveLink(loc dom.Location, href, activeClass string, exactMatch bool, children ...any) *vdom.VNode {
	attrs := []any{vdom.Href(href)}
	if IsActive(loc, href, exactMatch) {
		attrs = append(attrs, vdom.Class(activeClass), vdom.Attr{Key: "aria-current", Value: "page"})
	}
	attrs = append(attrs, children...)
	return vdom.A(attrs...)
}

// NavLink is ActiveLink with the "active" class and exact matching.
func NavLink(loc dom.Location, href string, children ...any) *vdom.VNode {
	return ActiveLink(loc, href, "active", true, children...)
}

// IsActive reports whether href points at loc's path.
func IsActive(loc dom.Location, href string, exactMatch bool) bool {
	target, err := loc.Resolve(href)
	if err != nil || target.Origin != loc.Origin {
		return false
	}
	if exactMatch || target.Pathname == "/" {
		return target.Pathname == loc.Pathname
	}
	return loc.Pathname == target.Pathname ||
		strings.HasPrefix(loc.Pathname, strings.TrimSuffix(target.Pathname, "/")+"/")
}
