package instrumentator

import (
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/promkit/httpinstrument/metrics"
)

// UntemplatedPolicy controls the handler label for requests that did not
// match a templated route.
type UntemplatedPolicy int

const (
	// GroupUntemplated reports all untemplated requests under the
	// handler label "none". This is the default: reporting raw paths
	// opens the metric to unbounded cardinality from request scanning.
	GroupUntemplated UntemplatedPolicy = iota

	// ReportUntemplated reports the raw request path.
	ReportUntemplated

	// IgnoreUntemplated skips the observation entirely.
	IgnoreUntemplated
)

// Instrumentator owns a set of instrumentations and produces the middleware
// that drives them.
type Instrumentator struct {
	groupStatus   bool
	roundDecimals int // negative disables rounding
	untemplated   UntemplatedPolicy
	excluded      []*regexp.Regexp
	enabled       bool
	logger        logrus.FieldLogger
	gatherer      prometheus.Gatherer
	instrs        []metrics.Instrumentation
}

// Option modifies an Instrumentator during construction.
type Option func(*Instrumentator)

// WithInstrumentation registers instrumentations to run on every completed
// request.
func WithInstrumentation(instrs ...metrics.Instrumentation) Option {
	return func(in *Instrumentator) {
		in.instrs = append(in.instrs, instrs...)
	}
}

// WithExactStatusCodes reports the exact status code ("404") instead of the
// default status class ("4xx").
func WithExactStatusCodes() Option {
	return func(in *Instrumentator) {
		in.groupStatus = false
	}
}

// WithRoundedLatency rounds observed durations to the given number of
// decimals before recording. Rounding is off by default.
func WithRoundedLatency(decimals int) Option {
	return func(in *Instrumentator) {
		in.roundDecimals = decimals
	}
}

// WithUntemplatedPolicy sets the handler label policy for requests that did
// not match a route.
func WithUntemplatedPolicy(p UntemplatedPolicy) Option {
	return func(in *Instrumentator) {
		in.untemplated = p
	}
}

// WithExcludedHandlers suppresses all observations for request paths
// matching any of the given regular expressions. Patterns are a wiring
// concern, so invalid ones panic at construction.
func WithExcludedHandlers(patterns ...string) Option {
	return func(in *Instrumentator) {
		for _, p := range patterns {
			in.excluded = append(in.excluded, regexp.MustCompile(p))
		}
	}
}

// WithLogger sets the logger used by the exposition handler.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(in *Instrumentator) {
		in.logger = logger
	}
}

// WithGatherer sets the gatherer served by Handler. Defaults to
// prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(in *Instrumentator) {
		in.gatherer = g
	}
}

// WithConfig applies environment-derived settings, see Config.
func WithConfig(cfg Config) Option {
	return func(in *Instrumentator) {
		in.enabled = cfg.Enabled
	}
}

// New returns an Instrumentator with grouped status codes, grouped
// untemplated handlers and no latency rounding.
func New(opts ...Option) *Instrumentator {
	in := &Instrumentator{
		groupStatus:   true,
		roundDecimals: -1,
		untemplated:   GroupUntemplated,
		enabled:       true,
		logger:        logrus.StandardLogger(),
		gatherer:      prometheus.DefaultGatherer,
	}
	for _, o := range opts {
		o(in)
	}
	return in
}

// Add registers further instrumentations after construction. Add must not
// be called once the middleware is serving traffic.
func (in *Instrumentator) Add(instrs ...metrics.Instrumentation) {
	in.instrs = append(in.instrs, instrs...)
}

// Middleware returns next wrapped with request instrumentation. When the
// instrumentator is disabled via config, next is returned unchanged.
func (in *Instrumentator) Middleware(next http.Handler) http.Handler {
	if !in.enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if in.excludedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		handler, ok := in.handlerLabel(r)
		if !ok {
			return
		}

		st := ww.Status()
		if st == 0 {
			// Assume no Write or WriteHeader means OK.
			st = http.StatusOK
		}

		info := &metrics.Info{
			Request:  r,
			Response: ww.Header(),
			Method:   r.Method,
			Handler:  handler,
			Status:   in.statusLabel(st),
			Duration: in.duration(dur),
		}
		for _, instr := range in.instrs {
			instr.Observe(info)
		}
	})
}

// Handler returns the Prometheus exposition endpoint for the configured
// gatherer. The text format is negotiated by promhttp, including gzip.
func (in *Instrumentator) Handler() http.Handler {
	return promhttp.HandlerFor(in.gatherer, promhttp.HandlerOpts{
		ErrorLog: in.logger,
	})
}

func (in *Instrumentator) excludedPath(path string) bool {
	for _, re := range in.excluded {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// handlerLabel resolves the handler label from the matched chi route
// pattern, falling back to the untemplated policy. The second return is
// false when the observation should be skipped.
func (in *Instrumentator) handlerLabel(r *http.Request) (string, bool) {
	ctx := r.Context()
	if ctx.Value(chi.RouteCtxKey) != nil {
		if pattern := chi.RouteContext(ctx).RoutePattern(); pattern != "" {
			return pattern, true
		}
	}

	switch in.untemplated {
	case IgnoreUntemplated:
		return "", false
	case ReportUntemplated:
		return r.URL.Path, true
	default:
		return "none", true
	}
}

func (in *Instrumentator) statusLabel(code int) string {
	if in.groupStatus {
		return strconv.Itoa(code/100) + "xx"
	}
	return strconv.Itoa(code)
}

func (in *Instrumentator) duration(d time.Duration) float64 {
	secs := d.Seconds()
	if in.roundDecimals >= 0 {
		shift := math.Pow(10, float64(in.roundDecimals))
		secs = math.Round(secs*shift) / shift
	}
	return secs
}
