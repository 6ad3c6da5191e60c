package dom

import (
	"errors"
	"net/url"
)

// Node is a live document node.
type Node interface {
	// NodeName returns the tag name for elements and "#text" for text nodes.
	NodeName() string
	// Parent returns the parent node, or nil when detached.
	Parent() Node
	// Children returns a snapshot of the child list.
	Children() []Node
	// InsertBefore inserts child before ref, or appends when ref is nil.
	// A child that is already attached somewhere is moved.
	InsertBefore(child, ref Node)
	// RemoveChild detaches child.
	RemoveChild(child Node)
	// ReplaceChild puts next where old was and detaches old.
	ReplaceChild(next, old Node)
	// Text returns the character data of a text node.
	Text() string
	// SetText replaces the character data of a text node.
	SetText(text string)
}

// Element is a live element node.
type Element interface {
	Node
	// NamespaceURI returns the namespace the element was created in.
	NamespaceURI() string
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	// SetProperty writes an element property that has no attribute form
	// (value, checked, selected, innerHTML).
	SetProperty(name string, value any)
	SetStyle(name, value string)
	RemoveStyle(name string)
	AddEventListener(typ string, l *Listener)
	RemoveEventListener(typ string, l *Listener)
}

// Document creates nodes.
type Document interface {
	CreateElementNS(namespaceURI, tag string) Element
	CreateTextNode(text string) Node
}

// Listener is an event listener. Listeners are compared by pointer, so the
// same *Listener must be passed to RemoveEventListener.
type Listener struct {
	Handle func(ev *Event) error
}

// Window is the navigation side of the platform: location, history and
// window-level events.
type Window interface {
	Document() Document
	Location() Location
	PushState(state any, url string) error
	ReplaceState(state any, url string) error
	// NewPopStateEvent builds a structured popstate event. Platforms that
	// cannot construct one return an error.
	NewPopStateEvent(state any) (*Event, error)
	DispatchEvent(ev *Event) error
	AddEventListener(typ string, l *Listener)
	RemoveEventListener(typ string, l *Listener)
}

// Location is a consistent snapshot of the current URL.
type Location struct {
	Origin   string // scheme://host[:port]
	Pathname string
	Search   string // including the leading "?" when present
	Hash     string // including the leading "#" when present
}

// Href returns the full URL.
func (l Location) Href() string {
	return l.Origin + l.Path()
}

// Path returns pathname, search and hash joined.
func (l Location) Path() string {
	return l.Pathname + l.Search + l.Hash
}

// SamePath reports whether pathname, search and hash all match.
func (l Location) SamePath(o Location) bool {
	return l.Pathname == o.Pathname && l.Search == o.Search && l.Hash == o.Hash
}

// ErrInvalidURL is returned when a navigation target cannot be parsed.
var ErrInvalidURL = errors.New("dom: invalid url")

// Resolve resolves target against the location the way an anchor href is
// resolved. The result carries the target's origin, which may differ from
// l.Origin.
func (l Location) Resolve(target string) (Location, error) {
	base, err := url.Parse(l.Href())
	if err != nil {
		return Location{}, ErrInvalidURL
	}
	ref, err := url.Parse(target)
	if err != nil {
		return Location{}, ErrInvalidURL
	}
	u := base.ResolveReference(ref)
	if u.Scheme == "" || u.Host == "" {
		return Location{}, ErrInvalidURL
	}
	loc := Location{
		Origin:   u.Scheme + "://" + u.Host,
		Pathname: u.EscapedPath(),
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if u.RawQuery != "" {
		loc.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		loc.Hash = "#" + u.EscapedFragment()
	}
	return loc, nil
}

// ParseLocation splits an absolute URL into a Location.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Location{}, ErrInvalidURL
	}
	return Location{Origin: u.Scheme + "://" + u.Host, Pathname: "/"}.Resolve(raw)
}
