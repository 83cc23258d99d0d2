package metrics

import "github.com/prometheus/client_golang/prometheus"

// SizeOpts configures RequestSize, ResponseSize and CombinedSize.
type SizeOpts struct {
	// Name of the summary. Must be unique within the registry. Each
	// factory has its own default.
	Name string

	// Help text for the summary.
	Help string

	// Labels selects the dimensions attached to the summary.
	Labels Labels

	// Registry the summary is registered with. Defaults to
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// OnError is called when a Content-Length header is present but not
	// a valid integer. The observation is skipped either way. Defaults
	// to a rate-limited logrus warning.
	OnError func(error)
}

// RequestSize returns an Instrumentation recording the Content-Length of
// incoming requests into a summary. Requests without the header are
// skipped: defaulting to zero would corrupt the distribution whenever the
// header is legitimately absent, e.g. chunked transfer encoding.
//
// RequestSize panics if a collector with the same name is already
// registered.
func RequestSize(opts SizeOpts) Instrumentation {
	sizeDefaults(&opts, "http_request_size_bytes", "Content bytes of requests.")
	return newSize(opts, func(info *Info) (float64, bool, error) {
		return contentLength(requestHeader(info))
	})
}

// ResponseSize returns an Instrumentation recording the Content-Length of
// outgoing responses into a summary, with the same skip rule as
// RequestSize.
func ResponseSize(opts SizeOpts) Instrumentation {
	sizeDefaults(&opts, "http_response_size_bytes", "Content bytes of responses.")
	return newSize(opts, func(info *Info) (float64, bool, error) {
		return contentLength(info.Response)
	})
}

// CombinedSize returns an Instrumentation recording the combined
// Content-Length of request and response into a summary. If only one side
// carries the header that value is recorded alone; if neither does, the
// observation is skipped.
func CombinedSize(opts SizeOpts) Instrumentation {
	sizeDefaults(&opts, "http_combined_size_bytes", "Content bytes of requests and responses.")
	return newSize(opts, func(info *Info) (float64, bool, error) {
		req, reqOK, err := contentLength(requestHeader(info))
		if err != nil {
			return 0, false, err
		}
		res, resOK, err := contentLength(info.Response)
		if err != nil {
			return 0, false, err
		}
		if !reqOK && !resOK {
			return 0, false, nil
		}
		return req + res, true, nil
	})
}

func sizeDefaults(opts *SizeOpts, name, help string) {
	if opts.Name == "" {
		opts.Name = name
	}
	if opts.Help == "" {
		opts.Help = help
	}
	if opts.OnError == nil {
		opts.OnError = defaultOnError()
	}
}

func newSize(opts SizeOpts, length func(*Info) (float64, bool, error)) Instrumentation {
	so := prometheus.SummaryOpts{
		Name: opts.Name,
		Help: opts.Help,
	}

	m := &size{
		labels:  newLabelSet(opts.Labels),
		length:  length,
		onError: opts.OnError,
	}
	if m.labels.empty() {
		s := prometheus.NewSummary(so)
		registerer(opts.Registry).MustRegister(s)
		m.base = s
	} else {
		m.vec = prometheus.NewSummaryVec(so, m.labels.names)
		registerer(opts.Registry).MustRegister(m.vec)
	}
	return m
}

type size struct {
	labels labelSet

	// Exactly one of base and vec is set, chosen at construction.
	base prometheus.Observer
	vec  *prometheus.SummaryVec

	length  func(*Info) (float64, bool, error)
	onError func(error)
}

func (m *size) Observe(info *Info) {
	n, ok, err := m.length(info)
	if err != nil {
		m.onError(err)
		return
	}
	if !ok {
		return
	}
	if m.vec != nil {
		m.vec.WithLabelValues(m.labels.values(info)...).Observe(n)
		return
	}
	m.base.Observe(n)
}
