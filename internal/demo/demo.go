// Package demo is the example application served and exported by the
// sprig command.
package demo

import (
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// Styles is the stylesheet added to every demo page.
const Styles = `body{font-family:system-ui,sans-serif;margin:2rem}` +
	`nav a{margin-right:1rem}nav a.active{font-weight:bold}` +
	`.done{text-decoration:line-through}`

// Routes returns the demo route table.
func Routes() *router.Routes {
	routes := router.NewRoutes()
	routes.Page("/", home, router.WithTitle("sprig"))
	routes.Page("/counter", counterPage, router.WithTitle("Counter"))
	routes.Page("/todos", todosPage, router.WithTitle("Todos"))
	routes.Page("/badge/:label", badgePage, router.WithTitle("Badge"))
	routes.Page("/about", about, router.WithTitle("About"))
	routes.NotFound(notFound)
	return routes
}

// layout wraps page content with the navigation bar.
func layout(loc dom.Location, content ...any) *vdom.VNode {
	return vdom.Div(vdom.ID("app"),
		vdom.Nav(
			router.NavLink(loc, "/", "Home"),
			router.NavLink(loc, "/counter", "Counter"),
			router.NavLink(loc, "/todos", "Todos"),
			router.NavLink(loc, "/badge/sprig", "Badge"),
			router.NavLink(loc, "/about", "About"),
		),
		vdom.Main(content...),
	)
}

func home(loc dom.Location, _ router.Params) *vdom.VNode {
	return layout(loc,
		vdom.H1("sprig"),
		vdom.P("A declarative UI runtime. Pages render on the server and update in place."),
		vdom.Ul(
			vdom.Li(router.Link("/counter", "A counter component")),
			vdom.Li(router.Link("/todos", "A keyed todo list")),
			vdom.Li(router.Link("/badge/hello", "An SVG badge")),
		),
	)
}

func counterPage(loc dom.Location, _ router.Params) *vdom.VNode {
	return layout(loc,
		vdom.H1("Counter"),
		Counter.Keyed("first", 0),
		Counter.Keyed("second", 10),
	)
}

func todosPage(loc dom.Location, _ router.Params) *vdom.VNode {
	return layout(loc,
		vdom.H1("Todos"),
		TodoList(SampleTodos(), ""),
	)
}

func badgePage(loc dom.Location, params router.Params) *vdom.VNode {
	label := params.Get("label")
	return layout(loc,
		vdom.H1("Badge"),
		Badge(label, "#4c1"),
		vdom.P("Change the URL to render another label."),
	)
}

func about(loc dom.Location, _ router.Params) *vdom.VNode {
	return layout(loc,
		vdom.H1("About"),
		vdom.P("Built with ", router.ExternalLink("https://go.dev", "Go"), "."),
	)
}

func notFound(loc dom.Location, _ router.Params) *vdom.VNode {
	return layout(loc,
		vdom.H1("Not Found"),
		vdom.P("Nothing lives at ", vdom.Code(loc.Pathname), "."),
	)
}
