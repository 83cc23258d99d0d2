package metrics

import "github.com/prometheus/client_golang/prometheus"

// LatencyOpts configures Latency. Zero values select the defaults noted on
// each field.
type LatencyOpts struct {
	// Name of the histogram. Must be unique within the registry.
	// Defaults to "http_request_duration_seconds".
	Name string

	// Help text for the histogram.
	Help string

	// Labels selects the dimensions attached to the histogram.
	Labels Labels

	// Buckets are the upper bounds of the histogram buckets, ascending.
	// A trailing +Inf is appended if absent. Defaults to
	// prometheus.DefBuckets.
	Buckets []float64

	// Registry the histogram is registered with. Defaults to
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Latency returns an Instrumentation recording request duration into a
// histogram.
//
// Latency panics if a collector with the same name is already registered.
func Latency(opts LatencyOpts) Instrumentation {
	if opts.Name == "" {
		opts.Name = "http_request_duration_seconds"
	}
	if opts.Help == "" {
		opts.Help = "Duration of HTTP requests in seconds."
	}
	buckets := opts.Buckets
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}

	ho := prometheus.HistogramOpts{
		Name:    opts.Name,
		Help:    opts.Help,
		Buckets: ensureInfBucket(buckets),
	}

	m := &latency{labels: newLabelSet(opts.Labels)}
	if m.labels.empty() {
		h := prometheus.NewHistogram(ho)
		registerer(opts.Registry).MustRegister(h)
		m.base = h
	} else {
		m.vec = prometheus.NewHistogramVec(ho, m.labels.names)
		registerer(opts.Registry).MustRegister(m.vec)
	}
	return m
}

type latency struct {
	labels labelSet

	// Exactly one of base and vec is set, chosen at construction.
	base prometheus.Observer
	vec  *prometheus.HistogramVec
}

func (m *latency) Observe(info *Info) {
	if m.vec != nil {
		m.vec.WithLabelValues(m.labels.values(info)...).Observe(info.Duration)
		return
	}
	m.base.Observe(info.Duration)
}
