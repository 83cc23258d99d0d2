// Package metrics provides configurable instrumentations for HTTP servers.
//
// Each factory registers one or more Prometheus collectors and returns an
// Instrumentation which records a single observation per completed request.
// The middleware in package instrumentator times requests, normalizes the
// handler and status labels, and hands the resulting Info to every
// registered Instrumentation.
//
// Factories take an optional Labels value selecting which of the handler,
// method and status dimensions are attached to the collector. Label order is
// fixed: handler, method, status.
//
// Registering two collectors under the same name in one registry is a wiring
// error and panics at construction time, before any traffic is served.
package metrics
