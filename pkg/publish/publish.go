package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/sprig/pkg/router"
)

// Publisher stores one exported file under a slash-separated key.
type Publisher interface {
	Publish(ctx context.Context, key, contentType string, body []byte) error
}

// PageRenderer renders the document for a path and returns its status.
type PageRenderer interface {
	RenderPath(w io.Writer, path string) (int, error)
}

// ErrStatus is returned for pages that did not render with 200 OK.
var ErrStatus = errors.New("publish: unexpected status")

// Key returns the file key for a page path: "/" maps to "index.html" and
// "/docs/intro" to "docs/intro/index.html".
func Key(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

// StaticPaths returns the paths of every route without parameters.
func StaticPaths(routes *router.Routes) []string {
	var paths []string
	for _, r := range routes.All() {
		if r.Static() {
			paths = append(paths, r.Pattern)
		}
	}
	return paths
}

// Report lists what an export did.
type Report struct {
	Published []string
	Failed    map[string]error
}

// ExportOption configures Export.
type ExportOption func(*exportConfig)

type exportConfig struct {
	logger      *slog.Logger
	notFoundKey string
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ExportOption {
	return func(c *exportConfig) {
		c.logger = logger
	}
}

// WithNotFound also exports the not-found page under key (e.g. "404.html").
func WithNotFound(key string) ExportOption {
	return func(c *exportConfig) {
		c.notFoundKey = key
	}
}

// Export renders every path and publishes the documents. It keeps going
// after a failed page and returns the failures joined.
func Export(ctx context.Context, src PageRenderer, paths []string, pub Publisher, opts ...ExportOption) (Report, error) {
	cfg := exportConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := Report{Failed: make(map[string]error)}
	var errs []error
	publishPage := func(p, key string, wantStatus int) {
		if err := ctx.Err(); err != nil {
			report.Failed[p] = err
			errs = append(errs, err)
			return
		}
		var buf bytes.Buffer
		status, err := src.RenderPath(&buf, p)
		if err == nil && status != wantStatus {
			err = fmt.Errorf("%w %d for %s", ErrStatus, status, p)
		}
		if err == nil {
			err = pub.Publish(ctx, key, "text/html; charset=utf-8", buf.Bytes())
		}
		if err != nil {
			cfg.logger.Error("export failed", "path", p, "error", err)
			report.Failed[p] = err
			errs = append(errs, err)
			return
		}
		cfg.logger.Info("exported", "path", p, "key", key, "bytes", buf.Len())
		report.Published = append(report.Published, key)
	}

	for _, p := range paths {
		publishPage(p, Key(p), http.StatusOK)
	}
	if cfg.notFoundKey != "" {
		publishPage("/__sprig_not_found__", cfg.notFoundKey, http.StatusNotFound)
	}
	return report, errors.Join(errs...)
}

// DirPublisher writes files below Dir.
type DirPublisher struct {
	Dir string
}

// Publish writes body to Dir/key, creating parent directories.
func (d DirPublisher) Publish(ctx context.Context, key, _ string, body []byte) error {
	if strings.Contains(key, "..") {
		return fmt.Errorf("publish: invalid key %q", key)
	}
	dst := filepath.Join(d.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}
