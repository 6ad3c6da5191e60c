package memdom

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vango-dev/sprig/pkg/dom"
)

// ErrPopStateUnsupported is returned by NewPopStateEvent when the window
// simulates a platform without structured popstate events.
var ErrPopStateUnsupported = errors.New("memdom: PopStateEvent is not supported")

type historyEntry struct {
	state any
	loc   dom.Location
}

// Window is an in-memory dom.Window with a session history.
type Window struct {
	// PopStateUnsupported makes NewPopStateEvent fail, exercising the
	// generic event fallback.
	PopStateUnsupported bool

	mu        sync.Mutex
	doc       *Document
	entries   []historyEntry
	index     int
	listeners map[string][]*dom.Listener
	pushes    int
	replaces  int
}

var _ dom.Window = (*Window)(nil)

// NewWindow creates a window whose history starts at rawURL.
func NewWindow(doc *Document, rawURL string) (*Window, error) {
	loc, err := dom.ParseLocation(rawURL)
	if err != nil {
		return nil, fmt.Errorf("memdom: start url %q: %w", rawURL, err)
	}
	if doc == nil {
		doc = New()
	}
	return &Window{
		doc:       doc,
		entries:   []historyEntry{{loc: loc}},
		listeners: make(map[string][]*dom.Listener),
	}, nil
}

// Document returns the window's document.
func (w *Window) Document() dom.Document { return w.doc }

// Location returns the current location.
func (w *Window) Location() dom.Location {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entries[w.index].loc
}

func (w *Window) resolve(target string) (dom.Location, error) {
	cur := w.entries[w.index].loc
	loc, err := cur.Resolve(target)
	if err != nil {
		return dom.Location{}, err
	}
	if loc.Origin != cur.Origin {
		return dom.Location{}, fmt.Errorf("memdom: history url %q is not same-origin", target)
	}
	return loc, nil
}

// PushState adds a history entry after the current one, dropping any
// forward entries.
func (w *Window) PushState(state any, target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	loc, err := w.resolve(target)
	if err != nil {
		return err
	}
	w.entries = append(w.entries[:w.index+1], historyEntry{state: state, loc: loc})
	w.index++
	w.pushes++
	return nil
}

// ReplaceState overwrites the current history entry.
func (w *Window) ReplaceState(state any, target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	loc, err := w.resolve(target)
	if err != nil {
		return err
	}
	w.entries[w.index] = historyEntry{state: state, loc: loc}
	w.replaces++
	return nil
}

// HistoryCalls returns how many pushState and replaceState calls succeeded.
func (w *Window) HistoryCalls() (pushes, replaces int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pushes, w.replaces
}

// HistoryLength returns the number of session history entries.
func (w *Window) HistoryLength() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// NewPopStateEvent builds a popstate event carrying state.
func (w *Window) NewPopStateEvent(state any) (*dom.Event, error) {
	if w.PopStateUnsupported {
		return nil, ErrPopStateUnsupported
	}
	ev := dom.NewEvent("popstate")
	ev.State = state
	return ev, nil
}

// AddEventListener registers a window-level listener.
func (w *Window) AddEventListener(typ string, l *dom.Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners[typ] = append(w.listeners[typ], l)
}

// RemoveEventListener unregisters a window-level listener.
func (w *Window) RemoveEventListener(typ string, l *dom.Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.listeners[typ]
	for i, x := range list {
		if x == l {
			w.listeners[typ] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of window listeners for typ.
func (w *Window) ListenerCount(typ string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners[typ])
}

// DispatchEvent runs the window listeners for ev.Type synchronously.
func (w *Window) DispatchEvent(ev *dom.Event) error {
	w.mu.Lock()
	list := append([]*dom.Listener(nil), w.listeners[ev.Type]...)
	w.mu.Unlock()
	var errs []error
	for _, l := range list {
		if err := l.Handle(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Go moves delta entries through the history and fires popstate, like the
// browser's back and forward buttons.
func (w *Window) Go(delta int) error {
	w.mu.Lock()
	next := w.index + delta
	if delta == 0 || next < 0 || next >= len(w.entries) {
		w.mu.Unlock()
		return nil
	}
	w.index = next
	state := w.entries[next].state
	w.mu.Unlock()

	ev, err := w.NewPopStateEvent(state)
	if err != nil {
		ev = dom.NewEvent("popstate")
		ev.State = state
	}
	return w.DispatchEvent(ev)
}

// Back is Go(-1).
func (w *Window) Back() error { return w.Go(-1) }

// Forward is Go(1).
func (w *Window) Forward() error { return w.Go(1) }
