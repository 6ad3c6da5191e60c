// Package reconcile applies vnode trees to a live document.
//
// A Reconciler keeps a private binding for every node it mounted: the
// vnode the node reflects, its event proxies, and the component boundaries
// rooted at it. Render and Patch first render every component in the new
// tree and validate it, then walk the bindings and issue only the DOM
// writes the difference requires. Patching a tree against itself writes
// nothing.
//
// Children are matched by key when any sibling has one, using a longest
// increasing subsequence so that nodes already in order stay in place, and
// by position otherwise. Elements are created in the namespace inherited
// from their parent, switching at svg and math and returning to HTML under
// foreignObject.
//
// Event handlers may return nothing, an error, a *vdom.VNode or a
// *loop.Promise. A vnode re-renders the nearest enclosing component
// boundary (or the whole container outside any component); a promise is
// followed on its loop and its result is applied when it settles. Clicks
// on links are offered to the Navigator after the handler has run.
package reconcile
