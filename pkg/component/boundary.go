package component

import (
	"errors"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// State is the lifecycle state of a boundary.
type State uint8

const (
	Idle     State = iota // committed, accepting updates
	Patching              // a patch of this boundary is in flight
	Released              // unmounted; updates are ignored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Patching:
		return "patching"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Committer applies a new render output to a boundary's root node.
type Committer interface {
	CommitBoundary(b *Boundary, out *vdom.VNode) error
}

// Boundary is the re-render scope of one mounted component. It owns the
// latest arguments, a render token that advances on every commit, and at
// most one pending output that arrived while a patch was in flight.
type Boundary struct {
	def       vdom.Component
	args      []any
	version   uint64
	state     State
	pending   *vdom.VNode
	committer Committer

	// Root is the node the boundary's output is mounted at. The reconciler
	// keeps it current across replacements.
	Root dom.Node
	// Output is the last committed render output.
	Output *vdom.VNode
}

// NewBoundary creates an idle boundary.
func NewBoundary(def vdom.Component, args []any, c Committer) *Boundary {
	return &Boundary{def: def, args: args, committer: c}
}

// Def returns the component definition.
func (b *Boundary) Def() vdom.Component { return b.def }

// Name returns the component name.
func (b *Boundary) Name() string { return b.def.Name() }

// Args returns the arguments of the latest render.
func (b *Boundary) Args() []any { return b.args }

// SetArgs records the arguments the next render uses.
func (b *Boundary) SetArgs(args []any) { b.args = args }

// Version returns the render token: the number of committed renders.
func (b *Boundary) Version() uint64 { return b.version }

// State returns the lifecycle state.
func (b *Boundary) State() State { return b.state }

// Released reports whether the boundary has been unmounted.
func (b *Boundary) Released() bool { return b.state == Released }

// Render calls the render function with the current arguments.
func (b *Boundary) Render() (*vdom.VNode, error) {
	return b.def.Render(b.args)
}

// Enter marks the boundary as patching. It returns false if the boundary
// is released or already patching; callers that get true must call Exit.
func (b *Boundary) Enter() bool {
	if b.state != Idle {
		return false
	}
	b.state = Patching
	return true
}

// Exit ends a patch started with Enter. It returns the output that arrived
// while the patch was in flight, if any, and forgets it.
func (b *Boundary) Exit() *vdom.VNode {
	if b.state == Patching {
		b.state = Idle
	}
	out := b.pending
	b.pending = nil
	return out
}

// Commit records a committed render: out is now mounted at root.
func (b *Boundary) Commit(root dom.Node, out *vdom.VNode) {
	b.Root = root
	b.Output = out
	b.version++
}

// Update makes out the boundary's new render output. Updates for a
// released boundary are dropped. An update that arrives while a patch is in
// flight is kept (last one wins) and applied as soon as the patch finishes.
func (b *Boundary) Update(out *vdom.VNode) error {
	switch b.state {
	case Released:
		return nil
	case Patching:
		b.pending = out
		return nil
	}
	var errs []error
	for out != nil {
		b.Enter()
		if err := b.committer.CommitBoundary(b, out); err != nil {
			errs = append(errs, err)
		}
		out = b.Exit()
		if b.Released() {
			break
		}
	}
	return errors.Join(errs...)
}

// Rerender renders the component again with its current arguments and
// commits the result. A render error leaves the committed output untouched.
func (b *Boundary) Rerender() error {
	if b.Released() {
		return nil
	}
	out, err := b.Render()
	if err != nil {
		return err
	}
	return b.Update(out)
}

// Release marks the boundary unmounted. Its render function is never
// called again through the boundary.
func (b *Boundary) Release() {
	b.state = Released
	b.pending = nil
	b.Root = nil
}
