// Package middleware provides HTTP middleware for observing the diff server.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry starts a server span per request, named after the matched
// chi route, and records the response status:
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("vdiff"),
//	    middleware.WithFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The span travels in the request context, so handlers and the views they
// render nest their spans under it.
//
// # Prometheus Metrics
//
// Prometheus collects per-route request counts, durations and the number
// of requests in flight:
//   - vdiff_http_requests_total{route,method,status}
//   - vdiff_http_request_duration_seconds{route,method}
//   - vdiff_http_requests_in_flight
//
// Each call registers its collectors with the configured registry, so
// call it once per registry.
package middleware
