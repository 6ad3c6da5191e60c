package component

import (
	"fmt"

	"github.com/vango-dev/sprig/pkg/vdom"
)

// RenderFunc renders a component from its arguments.
type RenderFunc func(args ...any) (*vdom.VNode, error)

// Def is a component definition. Every vnode produced by the same Helper
// carries the same *Def, which is how the reconciler recognises that an
// existing boundary can be re-rendered instead of replaced.
type Def struct {
	name   string
	render RenderFunc
}

var _ vdom.Component = (*Def)(nil)

// Name returns the component name.
func (d *Def) Name() string { return d.name }

// Render calls the render function. A panic in the render function is
// returned as an error.
func (d *Def) Render(args []any) (out *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("component %s: render panicked: %v", d.name, r)
		}
	}()
	return d.render(args...)
}

// Helper produces component vnodes. Calling it never renders; rendering
// happens when the vnode is mounted or patched.
type Helper func(args ...any) *vdom.VNode

// New wraps a render function that cannot fail.
func New(name string, fn func(args ...any) *vdom.VNode) Helper {
	return NewE(name, func(args ...any) (*vdom.VNode, error) {
		return fn(args...), nil
	})
}

// NewE wraps a render function that may return an error.
func NewE(name string, fn RenderFunc) Helper {
	def := &Def{name: name, render: fn}
	return func(args ...any) *vdom.VNode {
		return &vdom.VNode{
			Kind: vdom.KindComponent,
			Comp: def,
			Args: args,
		}
	}
}

// Keyed produces a component vnode with a reconciliation key.
func (h Helper) Keyed(key any, args ...any) *vdom.VNode {
	v := h(args...)
	v.Key = fmt.Sprint(key)
	return v
}
