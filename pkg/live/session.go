package live

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/dom/memdom"
	"github.com/vango-dev/sprig/pkg/loop"
	"github.com/vango-dev/sprig/pkg/reconcile"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// Pages renders the page for a location. *router.Routes implements it.
type Pages interface {
	Render(loc dom.Location) (*vdom.VNode, bool)
}

// ErrNoTarget is returned for events whose path does not name a node.
var ErrNoTarget = errors.New("live: no node at path")

// Session is one headless application instance. All methods except ID
// must be called from the goroutine driving Loop.
type Session struct {
	id     string
	pages  Pages
	doc    *memdom.Document
	win    *memdom.Window
	loop   *loop.Loop
	router *router.Router
	rec    *reconcile.Reconciler
	root   *memdom.Element
	logger *slog.Logger

	// onChange is called (as a microtask) after the document changed.
	onChange func()
	queued   bool
	unsub    func()
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	logger   *slog.Logger
	metrics  *reconcile.Metrics
	onChange func()
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithReconcileMetrics records the session's patches into m.
func WithReconcileMetrics(m *reconcile.Metrics) SessionOption {
	return func(c *sessionConfig) {
		c.metrics = m
	}
}

// WithOnChange registers fn to run after every batch of document changes,
// including changes made by asynchronous results.
func WithOnChange(fn func()) SessionOption {
	return func(c *sessionConfig) {
		c.onChange = fn
	}
}

// NewSession starts an application at startURL and renders the first page.
func NewSession(pages Pages, startURL string, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := memdom.New()
	win, err := memdom.NewWindow(doc, startURL)
	if err != nil {
		return nil, err
	}
	id := generateSessionID()
	logger := cfg.logger.With("session", id)
	lp := loop.New(loop.WithLogger(logger))
	rt := router.New(win, lp, router.WithLogger(logger))

	s := &Session{
		id:       id,
		pages:    pages,
		doc:      doc,
		win:      win,
		loop:     lp,
		router:   rt,
		rec:      reconcile.New(doc, reconcile.WithNavigator(rt), reconcile.WithLogger(logger), reconcile.WithMetrics(cfg.metrics)),
		root:     doc.CreateElement("body"),
		logger:   logger,
		onChange: cfg.onChange,
	}
	s.unsub = rt.OnNavigate(func(loc dom.Location) {
		if err := s.render(loc); err != nil {
			s.logger.Error("render after navigation failed", "path", loc.Path(), "error", err)
		}
	})
	if err := s.render(win.Location()); err != nil {
		rt.Close()
		return nil, err
	}
	doc.Reset()
	doc.Observe(s.changed)
	return s, nil
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("live: session id: %v", err))
	}
	return hex.EncodeToString(b)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Loop returns the loop that owns the session's document.
func (s *Session) Loop() *loop.Loop { return s.loop }

// Location returns the current location.
func (s *Session) Location() dom.Location { return s.router.Location() }

// HTML returns the current body markup.
func (s *Session) HTML() string { return memdom.InnerHTML(s.root) }

// Root returns the body element the application is rendered into.
func (s *Session) Root() *memdom.Element { return s.root }

func (s *Session) render(loc dom.Location) error {
	page, ok := s.pages.Render(loc)
	if !ok {
		s.logger.Debug("no page", "path", loc.Pathname)
	}
	return s.rec.Render(page, s.root, reconcile.RenderOptions{})
}

// changed coalesces document writes into one onChange call per batch.
func (s *Session) changed(memdom.Record) {
	if s.onChange == nil || s.queued {
		return
	}
	s.queued = true
	s.loop.Queue(func() error {
		s.queued = false
		s.onChange()
		return nil
	})
}

// Handle applies a client message and runs the loop until nothing is
// pending.
func (s *Session) Handle(msg ClientMessage) error {
	var err error
	switch msg.Type {
	case TypeEvent:
		err = s.dispatch(msg)
	case TypeNavigate:
		err = s.router.Navigate(msg.URL)
	case TypeBack:
		err = s.router.Back()
	case TypeForward:
		err = s.router.Forward()
	default:
		err = fmt.Errorf("live: unknown message type %q", msg.Type)
	}
	return errors.Join(err, s.loop.RunPending())
}

func (s *Session) dispatch(msg ClientMessage) error {
	target, err := s.node(msg.Path)
	if err != nil {
		return err
	}
	var ev *dom.Event
	switch msg.Event {
	case "click", "dblclick":
		ev = dom.NewMouseEvent(msg.Event, msg.Button)
	default:
		ev = dom.NewEvent(msg.Event)
		ev.Bubbles = true
		ev.Cancelable = true
	}
	ev.Value = msg.Value
	ev.CtrlKey, ev.MetaKey, ev.ShiftKey, ev.AltKey = msg.Ctrl, msg.Meta, msg.Shift, msg.Alt
	if msg.Event == "input" || msg.Event == "change" {
		if el, ok := target.(*memdom.Element); ok {
			el.SetProperty("value", msg.Value)
		}
	}
	return memdom.Dispatch(target, ev)
}

// node follows a child-index path from the root.
func (s *Session) node(path []int) (dom.Node, error) {
	var n dom.Node = s.root
	for _, i := range path {
		kids := n.Children()
		if i < 0 || i >= len(kids) {
			return nil, fmt.Errorf("%w %v", ErrNoTarget, path)
		}
		n = kids[i]
	}
	return n, nil
}

// Snapshot returns a full render message and forgets pending records.
func (s *Session) Snapshot() ServerMessage {
	s.doc.Reset()
	return ServerMessage{Type: TypeRender, URL: s.Location().Path(), HTML: s.HTML()}
}

// Flush returns the changes since the last Flush or Snapshot, or false
// when there are none.
func (s *Session) Flush() (ServerMessage, bool) {
	records := s.doc.Records()
	if len(records) == 0 {
		return ServerMessage{}, false
	}
	s.doc.Reset()
	return ServerMessage{
		Type:    TypeRender,
		URL:     s.Location().Path(),
		HTML:    s.HTML(),
		Records: records,
	}, true
}

// Close stops routing and unmounts the application.
func (s *Session) Close() error {
	s.unsub()
	s.router.Close()
	return s.rec.Unmount(s.root)
}
