// Package instrumentator provides Chi style middleware that feeds completed
// requests into the instrumentations of package metrics.
//
// The middleware times each request, wraps the ResponseWriter to capture
// the status code and response headers, normalizes the handler and status
// labels, and invokes every registered Instrumentation exactly once after
// the response is finalized.
//
// Collectors must be constructed before the server accepts traffic;
// typically all factories are called during startup wiring, right before
// the router is assembled.
package instrumentator
