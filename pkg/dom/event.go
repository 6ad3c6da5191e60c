package dom

// Event is a platform-neutral event. Platform bindings copy the fields they
// know about and hook PreventDefault to the native event.
type Event struct {
	Type          string
	Target        Node
	CurrentTarget Node

	// Mouse state.
	Button   int
	CtrlKey  bool
	MetaKey  bool
	ShiftKey bool
	AltKey   bool

	// Value is the target's value for input and change events.
	Value string

	// State is the history state carried by popstate events.
	State any

	Cancelable bool
	Bubbles    bool

	// Native is the platform event, if any.
	Native any

	defaultPrevented bool
	stopped          bool
	onPrevent        func()
}

// NewEvent creates a generic event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// NewMouseEvent creates a cancelable, bubbling click-like event.
func NewMouseEvent(typ string, button int) *Event {
	return &Event{Type: typ, Button: button, Cancelable: true, Bubbles: true}
}

// OnPreventDefault registers fn to run when PreventDefault takes effect.
func (e *Event) OnPreventDefault(fn func()) {
	e.onPrevent = fn
}

// PreventDefault cancels the default action of a cancelable event.
func (e *Event) PreventDefault() {
	if !e.Cancelable || e.defaultPrevented {
		return
	}
	e.defaultPrevented = true
	if e.onPrevent != nil {
		e.onPrevent()
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// HasModifier reports whether any of ctrl, meta, shift or alt is held.
func (e *Event) HasModifier() bool {
	return e.CtrlKey || e.MetaKey || e.ShiftKey || e.AltKey
}
