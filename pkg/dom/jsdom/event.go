//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/vango-dev/sprig/pkg/dom"
)

// listener adapts l to a browser callback.
func (d *Document) listener(l *dom.Listener) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		ev := d.Event(args[0])
		if err := l.Handle(ev); err != nil {
			d.logger.Error("event handler failed", "event", ev.Type, "error", err)
		}
		if ev.PropagationStopped() {
			args[0].Call("stopPropagation")
		}
		return nil
	})
}

// Event converts a browser event.
func (d *Document) Event(native js.Value) *dom.Event {
	ev := &dom.Event{
		Type:       native.Get("type").String(),
		Cancelable: native.Get("cancelable").Truthy(),
		Bubbles:    native.Get("bubbles").Truthy(),
		Native:     native,
	}
	if t := native.Get("target"); !t.IsUndefined() {
		ev.Target = d.Wrap(t)
		if v := t.Get("value"); v.Type() == js.TypeString {
			ev.Value = v.String()
		}
	}
	if b := native.Get("button"); b.Type() == js.TypeNumber {
		ev.Button = b.Int()
	}
	ev.CtrlKey = native.Get("ctrlKey").Truthy()
	ev.MetaKey = native.Get("metaKey").Truthy()
	ev.ShiftKey = native.Get("shiftKey").Truthy()
	ev.AltKey = native.Get("altKey").Truthy()
	// Prevented before it reached us: nothing left to cancel.
	if native.Get("defaultPrevented").Truthy() {
		ev.Cancelable = false
	}
	ev.OnPreventDefault(func() { native.Call("preventDefault") })
	return ev
}
