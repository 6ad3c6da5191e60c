package site

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/sprig/pkg/dom"
	"github.com/vango-dev/sprig/pkg/render"
	"github.com/vango-dev/sprig/pkg/router"
	"github.com/vango-dev/sprig/pkg/vdom"
)

// chiPattern converts a route pattern to chi syntax:
// "/todos/:id:int" becomes "/todos/{id}" and "/docs/*path" becomes "/docs/*".
// Parameter types are checked again when the route table renders.
func chiPattern(pattern string) string {
	segments := strings.Split(strings.Trim(pattern, "/"), "/")
	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"):
			name, _, _ := strings.Cut(seg[1:], ":")
			segments[i] = "{" + name + "}"
		case strings.HasPrefix(seg, "*"):
			segments[i] = "*"
		}
	}
	return "/" + strings.Join(segments, "/")
}

// location rebuilds the request URL as a dom.Location.
func location(r *http.Request) dom.Location {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	loc := dom.Location{
		Origin:   scheme + "://" + r.Host,
		Pathname: r.URL.EscapedPath(),
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	if r.URL.RawQuery != "" {
		loc.Search = "?" + r.URL.RawQuery
	}
	return loc
}

func (s *Server) pageHandler(route *router.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("sprig.page", route.Pattern))
		s.serve(w, r, route.Title)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, "")
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, title string) {
	var buf bytes.Buffer
	status, err := s.renderLocation(&buf, location(r), title)
	if err != nil {
		s.logger.Error("page render failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderLocation writes the document for loc and returns its status.
// Nothing is written when rendering fails.
func (s *Server) renderLocation(w io.Writer, loc dom.Location, title string) (int, error) {
	body, ok := s.routes.Render(loc)
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		if body == nil {
			body = vdom.H("h1", "Not Found")
		}
		if title == "" {
			title = "Not Found"
		}
	}
	err := s.renderer.RenderPage(w, render.Page{
		Body:    body,
		Title:   title,
		Lang:    s.config.Lang,
		Styles:  s.config.Styles,
		Scripts: s.config.Scripts,
		Meta:    s.liveMeta(loc),
	})
	if err != nil {
		return 0, fmt.Errorf("site: render %s: %w", loc.Pathname, err)
	}
	return status, nil
}

// liveMeta tells a client script where to open the live session.
func (s *Server) liveMeta(loc dom.Location) []render.MetaTag {
	if s.config.LivePath == "" {
		return nil
	}
	return []render.MetaTag{{Name: "sprig-live", Content: s.config.LivePath + "?path=" + loc.Pathname}}
}

// RenderPath renders the document for an absolute path without an HTTP
// round trip. It is what static export uses.
func (s *Server) RenderPath(w io.Writer, path string) (int, error) {
	loc, err := dom.Location{Origin: "http://localhost", Pathname: "/"}.Resolve(path)
	if err != nil {
		return 0, err
	}
	title := ""
	if route, _, ok := s.routes.Match(loc.Pathname); ok {
		title = route.Title
	}
	return s.renderLocation(w, loc, title)
}

// requestLogger logs one line per request with slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
