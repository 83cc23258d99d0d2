package instrumentator_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/promkit/httpinstrument/instrumentator"
	"github.com/promkit/httpinstrument/metrics"
)

// This example shows the intended wiring: collectors constructed up front,
// the middleware installed on the router, observations recorded per request.
func Example() {
	reg := prometheus.NewRegistry()
	in := instrumentator.New(
		instrumentator.WithGatherer(reg),
		instrumentator.WithInstrumentation(
			metrics.Full(metrics.FullOpts{Registry: reg}),
			metrics.Latency(metrics.LatencyOpts{
				Name:     "demo_request_duration_seconds",
				Labels:   metrics.Labels{Handler: true, Status: true},
				Registry: reg,
			}),
		),
	)

	r := chi.NewRouter()
	r.Use(in.Middleware)
	r.Get("/foo", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/bar", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	server := httptest.NewServer(r)
	defer server.Close()

	http.Get(server.URL + "/foo") //nolint:errcheck
	http.Get(server.URL + "/bar") //nolint:errcheck

	mfs, _ := reg.Gather()
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			fmt.Printf("http_requests_total: %v\n", mf.GetMetric()[0].GetCounter().GetValue())
		}
	}

	// Output:
	// http_requests_total: 2
}
