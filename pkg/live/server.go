package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sprig/pkg/reconcile"
)

// Config configures a Handler.
type Config struct {
	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin decides whether a handshake is allowed. Nil allows
	// same-origin requests only.
	CheckOrigin func(r *http.Request) bool

	// WriteTimeout bounds every message write. Default: 10s.
	WriteTimeout time.Duration
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		WriteTimeout:    10 * time.Second,
	}
}

// Handler upgrades requests to WebSocket sessions.
type Handler struct {
	pages    Pages
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *Metrics
	patches  *reconcile.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMetrics records session metrics.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithPatchMetrics records every session's patches into m.
func WithPatchMetrics(m *reconcile.Metrics) HandlerOption {
	return func(h *Handler) {
		h.patches = m
	}
}

// NewHandler creates a Handler serving pages.
func NewHandler(pages Pages, config Config, opts ...HandlerOption) *Handler {
	if config.WriteTimeout == 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	h := &Handler{
		pages:  pages,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   slog.Default(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Sessions returns the number of open sessions.
func (h *Handler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// ServeHTTP upgrades the request and runs a session until the connection
// closes. The start path is taken from the "path" query parameter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	start := startURL(r)
	out := &writer{conn: conn, timeout: h.config.WriteTimeout}
	var s *Session
	s, err = NewSession(h.pages, start,
		WithSessionLogger(h.logger),
		WithReconcileMetrics(h.patches),
		WithOnChange(func() {
			if msg, ok := s.Flush(); ok {
				h.send(s, out, msg)
			}
		}),
	)
	if err != nil {
		h.logger.Error("session start failed", "url", start, "error", err)
		out.write(errorMessage(err, "E102"))
		return
	}

	h.track(s, true)
	defer h.track(s, false)
	h.logger.Info("session started", "session", s.ID(), "url", start)

	h.send(s, out, s.Snapshot())
	err = h.serve(r.Context(), s, conn, out)
	if cerr := s.Close(); cerr != nil {
		h.logger.Warn("session unmount failed", "session", s.ID(), "error", cerr)
	}
	h.logger.Info("session closed", "session", s.ID(), "reason", err)
}

// serve reads messages on a separate goroutine and applies them on the
// session loop, which this goroutine drives.
func (h *Handler) serve(ctx context.Context, s *Session, conn *websocket.Conn, out *writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		for {
			var msg ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure) {
					h.logger.Warn("read error", "session", s.ID(), "error", err)
				}
				return
			}
			h.metrics.received(msg.Type)
			s.Loop().Post(func() error {
				if err := s.Handle(msg); err != nil {
					h.send(s, out, errorMessage(err, errorCode(msg.Type)))
				}
				return nil
			})
		}
	}()

	err := s.Loop().Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Handler) send(s *Session, out *writer, msg ServerMessage) {
	if err := out.write(msg); err != nil {
		h.logger.Warn("write failed", "session", s.ID(), "error", err)
		return
	}
	h.metrics.sent(msg.Type)
}

func (h *Handler) track(s *Session, open bool) {
	h.mu.Lock()
	if open {
		h.sessions[s.ID()] = s
	} else {
		delete(h.sessions, s.ID())
	}
	h.mu.Unlock()
	h.metrics.active(open)
}

// startURL rebuilds the absolute URL the session starts at.
func startURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	path := r.URL.Query().Get("path")
	if path == "" || path[0] != '/' {
		path = "/"
	}
	u := url.URL{Scheme: scheme, Host: r.Host}
	return u.String() + path
}

// writer serializes writes; gorilla connections allow one writer at a time.
type writer struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	timeout time.Duration
}

func (w *writer) write(msg ServerMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
		return err
	}
	return w.conn.WriteJSON(msg)
}
