package reconcile

import (
	"reflect"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// propertyProps are written as element properties rather than attributes.
var propertyProps = map[string]bool{
	"value":     true,
	"checked":   true,
	"selected":  true,
	"innerHTML": true,
}

// patchProps applies the difference between prev and next to el. Event
// handlers are routed through the binding's proxies.
func (r *Reconciler) patchProps(el dom.Element, b *binding, prev, next vdom.Props) {
	for k, v := range next {
		if k == "key" || vdom.IsEventProp(k, v) {
			continue
		}
		pv, had := prev[k]
		if had && vdom.IsEventProp(k, pv) {
			pv, had = nil, false
		}
		if had && propsEqual(pv, v) {
			continue
		}
		r.setProp(el, k, pv, v)
	}
	for k, pv := range prev {
		if k == "key" || vdom.IsEventProp(k, pv) {
			continue
		}
		if v, ok := next[k]; ok && !vdom.IsEventProp(k, v) {
			continue
		}
		r.removeProp(el, k, pv)
	}
	r.patchEvents(el, b, next)
}

func (r *Reconciler) setProp(el dom.Element, name string, prev, v any) {
	switch {
	case v == nil || vdom.IsFunc(v):
		r.removeProp(el, name, prev)
	case name == "style":
		r.setStyle(el, prev, v)
	case propertyProps[name]:
		el.SetProperty(name, v)
		r.metrics.write(opSetProp)
	default:
		if on, ok := v.(bool); ok {
			if on {
				el.SetAttribute(name, "")
				r.metrics.write(opSetAttr)
			} else {
				r.removeProp(el, name, prev)
			}
			return
		}
		el.SetAttribute(name, vdom.FormatValue(v))
		r.metrics.write(opSetAttr)
	}
}

func (r *Reconciler) removeProp(el dom.Element, name string, prev any) {
	if prev == nil || prev == false || vdom.IsFunc(prev) {
		return
	}
	switch {
	case name == "style":
		if m, ok := vdom.StyleMap(prev); ok {
			for _, e := range vdom.StyleEntries(m) {
				el.RemoveStyle(e.Property)
				r.metrics.write(opRemoveStyle)
			}
			return
		}
		el.RemoveAttribute(name)
		r.metrics.write(opRemoveAttr)
	case propertyProps[name]:
		var zero any = ""
		if name == "checked" || name == "selected" {
			zero = false
		}
		el.SetProperty(name, zero)
		r.metrics.write(opSetProp)
	default:
		el.RemoveAttribute(name)
		r.metrics.write(opRemoveAttr)
	}
}

// setStyle applies a style prop. Mappings are diffed declaration by
// declaration; strings replace the attribute.
func (r *Reconciler) setStyle(el dom.Element, prev, v any) {
	next, isMap := vdom.StyleMap(v)
	old, prevIsMap := vdom.StyleMap(prev)
	if !isMap {
		if prevIsMap {
			r.removeProp(el, "style", prev)
		}
		el.SetAttribute("style", vdom.FormatValue(v))
		r.metrics.write(opSetAttr)
		return
	}
	if !prevIsMap {
		r.removeProp(el, "style", prev)
	}
	current := make(map[string]string)
	for _, e := range vdom.StyleEntries(old) {
		current[e.Property] = e.Value
	}
	for _, e := range vdom.StyleEntries(next) {
		if cv, ok := current[e.Property]; !ok || cv != e.Value {
			el.SetStyle(e.Property, e.Value)
			r.metrics.write(opSetStyle)
		}
		delete(current, e.Property)
	}
	for _, e := range vdom.StyleEntries(old) {
		if _, gone := current[e.Property]; gone {
			el.RemoveStyle(e.Property)
			r.metrics.write(opRemoveStyle)
		}
	}
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
