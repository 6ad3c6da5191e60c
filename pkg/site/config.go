package site

import (
	"time"

	"github.com/vango-dev/sprig/pkg/live"
	"github.com/vango-dev/sprig/pkg/render"
)

// Config configures a Server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string

	// Lang is the document language. Default: "en".
	Lang string

	// Render controls the document output.
	Render render.Options

	// Styles and Scripts are added to every page head.
	Styles  []string
	Scripts []render.ScriptTag

	// StaticDir is served under /static/ when set.
	StaticDir string

	// LivePath mounts live sessions. Empty disables them.
	LivePath string

	// Live configures the live session endpoint.
	Live live.Config

	// MetricsPath exposes Prometheus metrics. Empty disables the endpoint.
	MetricsPath string

	// Timeouts
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":3000",
		Lang:              "en",
		Render:            render.Options{Doctype: true},
		LivePath:          "/_sprig/live",
		Live:              live.DefaultConfig(),
		MetricsPath:       "/metrics",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}
