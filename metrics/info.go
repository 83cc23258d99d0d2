package metrics

import "net/http"

// Info is the per-request context handed to every Instrumentation once the
// response is finalized. It is built by the middleware and read-only from
// the point of view of instrumentations.
type Info struct {
	// Request is the request as seen by the innermost handler.
	Request *http.Request

	// Response holds the response headers as written, or nil if no
	// response was produced.
	Response http.Header

	// Method is the unmodified request method.
	Method string

	// Handler is the normalized handler label, e.g. the matched route
	// pattern or "none" for untemplated requests.
	Handler string

	// Status is the normalized status label, e.g. "200" or "2xx".
	Status string

	// Duration is the observed request latency in seconds.
	Duration float64
}

func requestHeader(info *Info) http.Header {
	if info.Request == nil {
		return nil
	}
	return info.Request.Header
}
