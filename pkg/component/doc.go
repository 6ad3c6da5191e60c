// Package component implements re-render boundaries.
//
// New and NewE wrap a render function into a Helper. Calling the helper only
// captures its arguments in a component vnode; the reconciler creates a
// Boundary the first time that vnode is mounted and reuses it while later
// trees keep a vnode of the same definition at the same place.
//
// A boundary re-renders when a handler inside it returns a new vnode
// (Update) or when an ancestor patch hands it new arguments. Updates that
// arrive while the boundary is being patched are deferred until the patch
// completes, and updates for released boundaries are ignored, so an
// asynchronous handler that settles after its component was unmounted is a
// no-op.
package component
