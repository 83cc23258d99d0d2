package metrics

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/promkit/httpinstrument/svclog"
)

// Instrumentation records one observation about a completed request.
//
// Implementations are safe for concurrent use: they hold no mutable state
// beyond the collectors captured at construction time, and Prometheus
// collectors synchronize internally.
type Instrumentation interface {
	Observe(*Info)
}

// InstrumentationFunc adapts a plain function to the Instrumentation
// interface.
type InstrumentationFunc func(*Info)

// Observe calls fn.
func (fn InstrumentationFunc) Observe(info *Info) { fn(info) }

func registerer(r prometheus.Registerer) prometheus.Registerer {
	if r == nil {
		return prometheus.DefaultRegisterer
	}
	return r
}

// ensureInfBucket returns buckets with a trailing +Inf bound, appending one
// if the caller did not supply it. The input slice is never modified.
func ensureInfBucket(buckets []float64) []float64 {
	if n := len(buckets); n > 0 && math.IsInf(buckets[n-1], +1) {
		return buckets
	}
	out := make([]float64, len(buckets), len(buckets)+1)
	copy(out, buckets)
	return append(out, math.Inf(+1))
}

// contentLength reads the Content-Length header from h. The second return
// is false when the header is absent. A header that is present but not a
// valid integer yields an error; callers decide whether to skip or zero the
// observation.
func contentLength(h http.Header) (float64, bool, error) {
	if h == nil {
		return 0, false, nil
	}
	v := h.Get("Content-Length")
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "parse Content-Length %q", v)
	}
	return float64(n), true, nil
}

// defaultOnError reports malformed Content-Length headers through a sampled
// logrus warning. Sampling keeps a misbehaving client from flooding logs,
// since the error repeats on every request it makes.
func defaultOnError() func(error) {
	sampled := svclog.NewSampleLogger(logrus.StandardLogger(), 10, 10*time.Second)
	return func(err error) {
		sampled.Printf("httpinstrument: observation skipped: %v", err)
	}
}
