// Package site serves a route table over HTTP.
//
// Every page registered on a router.Routes is mounted on a chi router and
// rendered to a full HTML document per request. The same table backs the
// live session endpoint, so a browser can take over a server-rendered page
// without a second route definition.
//
//	routes := router.NewRoutes()
//	routes.Page("/", home, router.WithTitle("Home"))
//
//	srv := site.New(routes, site.DefaultConfig())
//	err := srv.ListenAndServe(ctx)
//
// The server also exposes /metrics (Prometheus) and traces page requests
// through the global OpenTelemetry provider.
package site
