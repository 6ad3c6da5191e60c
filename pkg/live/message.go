package live

import (
	"github.com/vango-dev/sprig/internal/errors"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
)

// Client message types.
const (
	TypeEvent    = "event"
	TypeNavigate = "navigate"
	TypeBack     = "back"
	TypeForward  = "forward"
)

// Server message types.
const (
	TypeRender = "render"
	TypeError  = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`

	// Event fields.
	Event  string `json:"event,omitempty"`
	Path   []int  `json:"path,omitempty"`
	Value  string `json:"value,omitempty"`
	Button int    `json:"button,omitempty"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Alt    bool   `json:"alt,omitempty"`

	// URL is the navigation target.
	URL string `json:"url,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type    string          `json:"type"`
	URL     string          `json:"url,omitempty"`
	HTML    string          `json:"html,omitempty"`
	Records []memdom.Record `json:"records,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// errorMessage reports err with its error code. code is used when err
// does not map to a more specific one.
func errorMessage(err error, code string) ServerMessage {
	se := errors.FromError(err, code)
	return ServerMessage{Type: TypeError, Error: se.FormatCompact(), Code: se.Code}
}

// errorCode returns the code for a failure while handling a message of
// the given type.
func errorCode(msgType string) string {
	switch msgType {
	case TypeEvent:
		return "E103"
	case TypeNavigate, TypeBack, TypeForward:
		return "E104"
	default:
		return "E105"
	}
}
