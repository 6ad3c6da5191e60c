package reconcile

import (
	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// scope receives a handler's new render output.
type scope interface {
	Update(out *vdom.VNode) error
}

// binding is the reconciler's record of one mounted node.
type binding struct {
	node dom.Node
	v    *vdom.VNode // committed element or text; nil for containers
	key  string
	ns   vdom.Namespace // namespace the children are created in
	kids []dom.Node

	// Component chain rendered into this node, outermost first. outs[i] is
	// the output of comps[i]; bounds[i] is its boundary.
	comps  []*vdom.VNode
	outs   []*vdom.VNode
	bounds []*component.Boundary

	// scope encloses the component chain; handlers on this node report to
	// innerScope instead.
	scope     scope
	events    map[string]*proxy
	container bool
}

func (b *binding) innerScope() scope {
	if n := len(b.bounds); n > 0 {
		return b.bounds[n-1]
	}
	return b.scope
}

// rnode is a rendered and validated tree, ready to be committed.
type rnode struct {
	v        *vdom.VNode // element or text
	key      string
	comps    []*vdom.VNode
	outs     []*vdom.VNode
	keep     int // leading component levels that were not re-rendered
	children []*rnode
}
