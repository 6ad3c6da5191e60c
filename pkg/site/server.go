package site

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sprig/pkg/live"
	"github.com/vango-dev/sprig/pkg/middleware"
	"github.com/vango-dev/sprig/pkg/reconcile"
	"github.com/vango-dev/sprig/pkg/render"
	"github.com/vango-dev/sprig/pkg/router"
)

// Server renders pages over HTTP.
type Server struct {
	routes   *router.Routes
	config   Config
	renderer *render.Renderer
	mux      chi.Router
	live     *live.Handler
	logger   *slog.Logger
	registry *prometheus.Registry
	tracer   trace.TracerProvider

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry collects metrics into reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracerProvider traces requests with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		s.tracer = tp
	}
}

// New creates a server for routes.
func New(routes *router.Routes, config Config, opts ...Option) *Server {
	if config.Lang == "" {
		config.Lang = "en"
	}
	s := &Server{
		routes:   routes,
		config:   config,
		renderer: render.NewRenderer(config.Render),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.mux = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(canonicalize)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)

	otelOpts := []middleware.OTelOption{
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != s.config.MetricsPath
		}),
	}
	if s.tracer != nil {
		otelOpts = append(otelOpts, middleware.WithTracerProvider(s.tracer))
	}
	r.Use(middleware.OpenTelemetry(otelOpts...))
	r.Use(middleware.Prometheus(middleware.WithRegistry(s.registry)))

	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	if s.config.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(s.config.StaticDir)))
		r.Handle("/static/*", fs)
	}
	if s.config.LivePath != "" {
		s.live = live.NewHandler(s.routes, s.config.Live,
			live.WithLogger(s.logger),
			live.WithMetrics(live.NewMetrics(s.registry)),
			live.WithPatchMetrics(reconcile.NewMetrics(reconcile.WithRegistry(s.registry))),
		)
		r.Handle(s.config.LivePath, s.live)
	}

	for _, route := range s.routes.All() {
		r.Get(chiPattern(route.Pattern), s.pageHandler(route))
	}
	r.NotFound(s.notFound)
	return r
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Live returns the live session handler, or nil when disabled.
func (s *Server) Live() *live.Handler {
	return s.live
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
