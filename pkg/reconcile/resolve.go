package reconcile

import (
	"fmt"

	"github.com/vango-dev/sprig/pkg/vdom"
)

// resolve renders every component in v and validates the result. Nothing
// here touches the document.
func (r *Reconciler) resolve(v *vdom.VNode) (*rnode, error) {
	n := &rnode{}
	for v != nil && v.Kind == vdom.KindComponent {
		if err := vdom.CheckNode(v); err != nil {
			return nil, err
		}
		out, err := v.Comp.Render(v.Args)
		if err != nil {
			return nil, err
		}
		r.metrics.rendered(v.Comp.Name())
		switch {
		case out == nil:
			return nil, &vdom.InvalidVnodeError{Node: v, Reason: "component rendered nothing"}
		case out.Kind == vdom.KindFragment:
			return nil, &vdom.InvalidVnodeError{Node: v, Reason: "component must render a single node, not a fragment"}
		}
		n.comps = append(n.comps, v)
		n.outs = append(n.outs, out)
		v = out
	}
	if v == nil {
		return nil, &vdom.InvalidVnodeError{Reason: "nil node"}
	}
	if v.Kind == vdom.KindFragment {
		return nil, &vdom.InvalidVnodeError{Node: v, Reason: "a fragment cannot occupy a single slot"}
	}
	if err := vdom.CheckNode(v); err != nil {
		return nil, err
	}
	n.v = v
	n.key = vdom.SlotKey(append(n.comps, v)...)
	if v.Kind != vdom.KindElement {
		return n, nil
	}
	for k, val := range v.Props {
		if vdom.IsEventProp(k, val) && !supportedHandler(val) {
			return nil, &vdom.InvalidPropError{Tag: v.Tag, Prop: k, Reason: fmt.Sprintf("unsupported handler type %T", val)}
		}
	}
	if hasRaw(v.Props) || vdom.IsVoidElement(v.Tag) {
		return n, nil
	}
	children, err := r.resolveList(v.Children)
	if err != nil {
		return nil, err
	}
	n.children = children
	return n, nil
}

// resolveList flattens fragments in a sibling list and resolves each
// entry. Duplicate keys are rejected.
func (r *Reconciler) resolveList(children []*vdom.VNode) ([]*rnode, error) {
	flat := vdom.Flatten(children)
	out := make([]*rnode, 0, len(flat))
	seen := make(vdom.KeySet)
	for _, c := range flat {
		n, err := r.resolve(c)
		if err != nil {
			return nil, err
		}
		if err := seen.Add(c, n.key); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func hasRaw(props vdom.Props) bool {
	v, ok := props["innerHTML"]
	return ok && v != nil
}
