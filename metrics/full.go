package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Default buckets for the two Full latency histograms. The high-resolution
// histogram carries no labels, so it can afford many buckets; the
// low-resolution one is multiplied by the method, status and handler label
// dimensions and must stay small to bound series count.
var (
	defaultHighrBuckets = []float64{.01, .025, .05, .075, .1, .25, .5, .75, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 7.5, 10}
	defaultLowrBuckets  = []float64{0.1, 0.5, 1}
)

// FullOpts configures Full.
type FullOpts struct {
	// HighrBuckets are the bounds for the unlabeled high-resolution
	// latency histogram. A trailing +Inf is appended if absent.
	HighrBuckets []float64

	// LowrBuckets are the bounds for the labeled low-resolution latency
	// histogram. Keep this list short.
	LowrBuckets []float64

	// Registry the collectors are registered with. Defaults to
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// OnError is called when a Content-Length header is present but not
	// a valid integer; the byte counter is then left unchanged for that
	// request. Defaults to a rate-limited logrus warning.
	OnError func(error)
}

// Full returns an Instrumentation covering the whole service with five
// collectors in a single hook:
//
//	http_requests_total                   counter, no labels
//	http_in_bytes_total                   counter, no labels
//	http_out_bytes_total                  counter, no labels
//	http_highr_request_duration_seconds   histogram, no labels
//	http_lowr_request_duration_seconds    histogram, labels method, status, handler
//
// These names and labels are a wire contract for dashboards and alerts.
//
// Unlike the dedicated size instrumentations, the byte counters treat a
// missing Content-Length as zero, so the request counter and both latency
// histograms advance on every request regardless of header presence.
//
// Full panics if any of the five names is already registered.
func Full(opts FullOpts) Instrumentation {
	highr := opts.HighrBuckets
	if highr == nil {
		highr = defaultHighrBuckets
	}
	lowr := opts.LowrBuckets
	if lowr == nil {
		lowr = defaultLowrBuckets
	}
	if opts.OnError == nil {
		opts.OnError = defaultOnError()
	}

	m := &full{
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of requests with no API specific labels.",
		}),
		inBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_in_bytes_total",
			Help: "Content length of incoming requests.",
		}),
		outBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_out_bytes_total",
			Help: "Content length of outgoing responses.",
		}),
		highr: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "http_highr_request_duration_seconds",
			Help:    "Latency with many buckets but no API specific labels.",
			Buckets: ensureInfBucket(highr),
		}),
		lowr: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_lowr_request_duration_seconds",
			Help:    "Latency with only few buckets.",
			Buckets: ensureInfBucket(lowr),
		}, []string{"method", "status", "handler"}),
		onError: opts.OnError,
	}
	registerer(opts.Registry).MustRegister(m.total, m.inBytes, m.outBytes, m.highr, m.lowr)
	return m
}

type full struct {
	total    prometheus.Counter
	inBytes  prometheus.Counter
	outBytes prometheus.Counter
	highr    prometheus.Histogram
	lowr     *prometheus.HistogramVec
	onError  func(error)
}

func (m *full) Observe(info *Info) {
	m.total.Inc()
	m.inBytes.Add(m.bytes(requestHeader(info)))
	m.outBytes.Add(m.bytes(info.Response))
	m.highr.Observe(info.Duration)
	m.lowr.WithLabelValues(info.Method, info.Status, info.Handler).Observe(info.Duration)
}

// bytes resolves a Content-Length header to a counter increment. Absent
// headers count as zero here, in contrast to the skip rule of the size
// summaries.
func (m *full) bytes(h http.Header) float64 {
	n, ok, err := contentLength(h)
	if err != nil {
		m.onError(err)
		return 0
	}
	if !ok {
		return 0
	}
	return n
}
