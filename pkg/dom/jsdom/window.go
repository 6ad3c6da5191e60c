//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vango-dev/sprig/pkg/dom"
)

// Window wraps the browser window.
type Window struct {
	doc       *Document
	v         js.Value
	listeners map[*dom.Listener]js.Func
}

var _ dom.Window = (*Window)(nil)

// NewWindow wraps the global window.
func NewWindow(doc *Document) *Window {
	return &Window{
		doc:       doc,
		v:         js.Global(),
		listeners: make(map[*dom.Listener]js.Func),
	}
}

func (w *Window) Document() dom.Document { return w.doc }

func (w *Window) Location() dom.Location {
	l := w.v.Get("location")
	return dom.Location{
		Origin:   l.Get("origin").String(),
		Pathname: l.Get("pathname").String(),
		Search:   l.Get("search").String(),
		Hash:     l.Get("hash").String(),
	}
}

func (w *Window) PushState(state any, url string) (err error) {
	defer recoverJS(&err, "pushState")
	w.v.Get("history").Call("pushState", jsState(state), "", url)
	return nil
}

func (w *Window) ReplaceState(state any, url string) (err error) {
	defer recoverJS(&err, "replaceState")
	w.v.Get("history").Call("replaceState", jsState(state), "", url)
	return nil
}

// Go moves through the session history.
func (w *Window) Go(delta int) (err error) {
	defer recoverJS(&err, "history.go")
	w.v.Get("history").Call("go", delta)
	return nil
}

// NewPopStateEvent constructs a native PopStateEvent. Older engines throw
// here, which surfaces as an error.
func (w *Window) NewPopStateEvent(state any) (ev *dom.Event, err error) {
	defer recoverJS(&err, "PopStateEvent")
	ctor := w.v.Get("PopStateEvent")
	if ctor.Type() != js.TypeFunction {
		return nil, fmt.Errorf("jsdom: PopStateEvent is not available")
	}
	init := js.Global().Get("Object").New()
	init.Set("state", jsState(state))
	native := ctor.New("popstate", init)
	ev = w.doc.Event(native)
	ev.State = state
	return ev, nil
}

// DispatchEvent dispatches ev on the window. Events that did not come from
// the browser are dispatched as a generic Event of the same type.
func (w *Window) DispatchEvent(ev *dom.Event) (err error) {
	defer recoverJS(&err, "dispatchEvent")
	native, ok := ev.Native.(js.Value)
	if !ok {
		native = js.Global().Get("Event").New(ev.Type)
	}
	w.v.Call("dispatchEvent", native)
	return nil
}

func (w *Window) AddEventListener(typ string, l *dom.Listener) {
	fn := w.doc.listener(l)
	w.listeners[l] = fn
	w.v.Call("addEventListener", typ, fn)
}

func (w *Window) RemoveEventListener(typ string, l *dom.Listener) {
	fn, ok := w.listeners[l]
	if !ok {
		return
	}
	w.v.Call("removeEventListener", typ, fn)
	delete(w.listeners, l)
	fn.Release()
}

// jsState converts history state; values syscall/js cannot represent
// become null.
func jsState(state any) (v js.Value) {
	defer func() {
		if recover() != nil {
			v = js.Null()
		}
	}()
	if state == nil {
		return js.Null()
	}
	return js.ValueOf(state)
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("jsdom: %s: %v", op, r)
	}
}
