// Package router implements client-side navigation.
//
// A Router wraps a dom.Window. Navigate resolves a target against the
// current location and, unless pathname, search and hash are unchanged,
// writes a history entry and dispatches popstate. Every popstate, including
// the platform's own back and forward, reaches OnNavigate subscribers as a
// microtask, after the location snapshot has been updated:
//
//	r := router.New(win, lp)
//	stop := r.OnNavigate(func(loc dom.Location) {
//	    rec.Render(pages.Render(loc))
//	})
//	defer stop()
//	r.Navigate("/todos?filter=open")
//
// The reconciler offers link clicks to InterceptClick, which applies
// ShouldIntercept and navigates in-app only while someone is subscribed.
//
// Routes maps path patterns to page render functions:
//
//	/about          static
//	/todos/:id:int  typed parameter
//	/docs/*path     catch-all
//
// Bind installs a router for the package-level Navigate and OnNavigate.
// With no window (server-side rendering, tests without a document) every
// operation is a no-op.
package router
