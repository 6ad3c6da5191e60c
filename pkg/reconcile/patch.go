package reconcile

import (
	"github.com/vango-dev/sprig/pkg/component"
	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// mount creates the subtree for n, detached. carried are boundaries of a
// replaced node that live on in the new one, outermost first.
func (r *Reconciler) mount(p *pass, n *rnode, ns vdom.Namespace, sc scope, carried []*component.Boundary) dom.Node {
	b := &binding{v: n.v, key: n.key, comps: n.comps, outs: n.outs, scope: sc, ns: ns}
	if n.v.Kind == vdom.KindText {
		b.node = r.doc.CreateTextNode(n.v.Text)
		r.metrics.write(opCreate)
	} else {
		self, children := vdom.ResolveNamespace(ns, n.v.Tag)
		b.node = r.doc.CreateElementNS(self.URI(), n.v.Tag)
		b.ns = children
		r.metrics.write(opCreate)
	}
	r.bindings[b.node] = b

	b.bounds = make([]*component.Boundary, len(n.comps))
	for i, cv := range n.comps {
		if i < len(carried) {
			b.bounds[i] = carried[i]
		} else {
			b.bounds[i] = component.NewBoundary(cv.Comp, cv.Args, r)
		}
	}
	r.commitBoundaries(p, b, n)

	el, ok := b.node.(dom.Element)
	if !ok {
		return b.node
	}
	r.patchProps(el, b, nil, n.v.Props)
	inner := b.innerScope()
	for _, c := range n.children {
		child := r.mount(p, c, b.ns, inner, nil)
		el.InsertBefore(child, nil)
		r.metrics.write(opInsert)
		b.kids = append(b.kids, child)
	}
	return b.node
}

// commitBoundaries records the new outputs of the boundaries rooted at b
// that were rendered in this pass.
func (r *Reconciler) commitBoundaries(p *pass, b *binding, n *rnode) {
	for i, cb := range b.bounds {
		if i < n.keep {
			cb.Root = b.node
			continue
		}
		if cb.Enter() {
			p.entered = append(p.entered, cb)
		}
		cb.SetArgs(n.comps[i].Args)
		cb.Commit(b.node, n.outs[i])
	}
}

// patchSlot brings the child live of parent in line with n and returns the
// node now in its place.
func (r *Reconciler) patchSlot(p *pass, parent *binding, live dom.Node, n *rnode, sc scope) dom.Node {
	old := r.bindings[live]
	if old == nil || old.container {
		node := r.mount(p, n, parent.ns, sc, nil)
		parent.node.ReplaceChild(node, live)
		r.metrics.write(opReplace)
		return node
	}

	carried := 0
	for carried < len(old.comps) && carried < len(n.comps) && old.comps[carried].Comp == n.comps[carried].Comp {
		carried++
	}
	same := carried == len(old.comps) && carried == len(n.comps) &&
		old.v.Kind == n.v.Kind && (n.v.Kind == vdom.KindText || old.v.Tag == n.v.Tag)
	if !same {
		node := r.mount(p, n, parent.ns, sc, old.bounds[:carried])
		parent.node.ReplaceChild(node, live)
		r.metrics.write(opReplace)
		r.release(old, carried)
		return node
	}

	prev := old.v
	old.v, old.key, old.comps, old.outs, old.scope = n.v, n.key, n.comps, n.outs, sc
	r.commitBoundaries(p, old, n)

	if n.v.Kind == vdom.KindText {
		if prev.Text != n.v.Text {
			live.SetText(n.v.Text)
			r.metrics.write(opSetText)
		}
		return live
	}
	el := live.(dom.Element)
	r.patchProps(el, old, prev.Props, n.v.Props)
	if hasRaw(n.v.Props) {
		// The markup replaced the children.
		for _, k := range old.kids {
			if kb := r.bindings[k]; kb != nil {
				r.release(kb, 0)
			}
		}
		old.kids = nil
		return live
	}
	r.patchChildren(p, old, n.children, old.innerScope())
	return live
}

// patchChildren reconciles the child list of pb against next.
func (r *Reconciler) patchChildren(p *pass, pb *binding, next []*rnode, sc scope) {
	if len(pb.kids) == 0 && len(next) == 0 {
		return
	}
	if r.keyed(pb.kids, next) {
		r.patchKeyed(p, pb, next, sc)
		return
	}
	old := pb.kids
	kids := make([]dom.Node, 0, len(next))
	for i, n := range next {
		if i < len(old) {
			kids = append(kids, r.patchSlot(p, pb, old[i], n, sc))
			continue
		}
		node := r.mount(p, n, pb.ns, sc, nil)
		pb.node.InsertBefore(node, nil)
		r.metrics.write(opInsert)
		kids = append(kids, node)
	}
	for i := len(next); i < len(old); i++ {
		r.remove(pb, old[i])
	}
	pb.kids = kids
}

func (r *Reconciler) keyed(old []dom.Node, next []*rnode) bool {
	for _, n := range next {
		if n.key != "" {
			return true
		}
	}
	for _, o := range old {
		if b := r.bindings[o]; b != nil && b.key != "" {
			return true
		}
	}
	return false
}

// patchKeyed matches children by key (unkeyed ones by their order among
// unkeyed siblings), then moves only the nodes outside the longest run
// that is already in order.
func (r *Reconciler) patchKeyed(p *pass, pb *binding, next []*rnode, sc scope) {
	old := pb.kids
	byKey := make(map[string]int, len(old))
	var unkeyed []int
	for i, o := range old {
		if b := r.bindings[o]; b != nil && b.key != "" {
			byKey[b.key] = i
		} else {
			unkeyed = append(unkeyed, i)
		}
	}

	sources := make([]int, len(next))
	used := make([]bool, len(old))
	u := 0
	for j, n := range next {
		sources[j] = -1
		if n.key != "" {
			if i, ok := byKey[n.key]; ok {
				sources[j] = i
				used[i] = true
			}
			continue
		}
		if u < len(unkeyed) {
			sources[j] = unkeyed[u]
			used[unkeyed[u]] = true
			u++
		}
	}

	for i, o := range old {
		if !used[i] {
			r.remove(pb, o)
		}
	}

	nodes := make([]dom.Node, len(next))
	for j, n := range next {
		if i := sources[j]; i >= 0 {
			nodes[j] = r.patchSlot(p, pb, old[i], n, sc)
		}
	}

	stable := longestIncreasing(sources)
	for j := len(next) - 1; j >= 0; j-- {
		var ref dom.Node
		if j+1 < len(next) {
			ref = nodes[j+1]
		}
		switch {
		case sources[j] < 0:
			nodes[j] = r.mount(p, next[j], pb.ns, sc, nil)
			pb.node.InsertBefore(nodes[j], ref)
			r.metrics.write(opInsert)
		case !stable[j]:
			pb.node.InsertBefore(nodes[j], ref)
			r.metrics.write(opMove)
		}
	}
	pb.kids = nodes
}

// longestIncreasing marks the positions of one longest strictly
// increasing subsequence of seq, ignoring negative entries.
func longestIncreasing(seq []int) []bool {
	stable := make([]bool, len(seq))
	prev := make([]int, len(seq))
	var tails []int
	for j, v := range seq {
		if v < 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		prev[j] = -1
		if lo > 0 {
			prev[j] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, j)
		} else {
			tails[lo] = j
		}
	}
	if len(tails) == 0 {
		return stable
	}
	for j := tails[len(tails)-1]; j >= 0; j = prev[j] {
		stable[j] = true
	}
	return stable
}

// remove detaches live from pb and releases everything mounted in it.
func (r *Reconciler) remove(pb *binding, live dom.Node) {
	pb.node.RemoveChild(live)
	r.metrics.write(opRemove)
	if b := r.bindings[live]; b != nil {
		r.release(b, 0)
	}
}

// release forgets b and its subtree. Boundaries from level keep on are
// released so their render functions never run again; listeners are
// detached so late events are ignored.
func (r *Reconciler) release(b *binding, keep int) {
	for i := keep; i < len(b.bounds); i++ {
		b.bounds[i].Release()
	}
	if el, ok := b.node.(dom.Element); ok {
		for typ, px := range b.events {
			px.dead = true
			el.RemoveEventListener(typ, px.listener)
			r.metrics.write(opUnlisten)
		}
	}
	b.events = nil
	for _, k := range b.kids {
		if kb := r.bindings[k]; kb != nil {
			r.release(kb, 0)
		}
	}
	delete(r.bindings, b.node)
}
