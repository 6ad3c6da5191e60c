// Package middleware provides HTTP middleware for sprig servers.
//
// This package includes:
//   - OpenTelemetry tracing of page requests
//   - Prometheus request metrics
//
// Both are plain func(http.Handler) http.Handler values and mount on a chi
// router with Use:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Labels and span names use the chi route pattern rather than the raw path
// so cardinality stays bounded.
//
// # Context Propagation
//
// The tracing middleware stores the span in the request context, so page
// renderers and anything they call can add attributes:
//
//	if span := trace.SpanFromContext(r.Context()); span.IsRecording() {
//	    span.SetAttributes(attribute.Int("sprig.nodes", n))
//	}
package middleware
