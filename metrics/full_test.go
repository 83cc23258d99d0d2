package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// The five collector names registered by Full are a wire contract for
// dashboards and alerts.
func TestFullContractNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Full(FullOpts{Registry: reg})

	m.Observe(testInfo("", ""))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	got := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		got[mf.GetName()] = true
	}
	for _, name := range []string{
		"http_requests_total",
		"http_in_bytes_total",
		"http_out_bytes_total",
		"http_highr_request_duration_seconds",
		"http_lowr_request_duration_seconds",
	} {
		if !got[name] {
			t.Errorf("collector %q not registered", name)
		}
	}
}

// The request counter moves by exactly 1 per observation, and the byte
// counters treat missing Content-Length as zero. The latter deliberately
// diverges from the skip rule of the size summaries.
func TestFullMissingHeadersCountAsZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Full(FullOpts{Registry: reg})

	m.Observe(testInfo("", ""))
	m.Observe(testInfo("", ""))

	want := `# HELP http_requests_total Total number of requests with no API specific labels.
# TYPE http_requests_total counter
http_requests_total 2
# HELP http_in_bytes_total Content length of incoming requests.
# TYPE http_in_bytes_total counter
http_in_bytes_total 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "http_requests_total", "http_in_bytes_total"); err != nil {
		t.Fatal(err)
	}
}

func TestFullRecordsBytes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Full(FullOpts{Registry: reg})

	m.Observe(testInfo("100", "50"))
	m.Observe(testInfo("100", ""))

	want := `# HELP http_in_bytes_total Content length of incoming requests.
# TYPE http_in_bytes_total counter
http_in_bytes_total 200
# HELP http_out_bytes_total Content length of outgoing responses.
# TYPE http_out_bytes_total counter
http_out_bytes_total 50
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "http_in_bytes_total", "http_out_bytes_total"); err != nil {
		t.Fatal(err)
	}
}

func TestFullLatencyHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Full(FullOpts{Registry: reg})

	m.Observe(testInfo("", "")) // Duration 0.3

	highr := gatherFamily(t, reg, "http_highr_request_duration_seconds").GetMetric()[0]
	if got := highr.GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("high resolution histogram count = %d, want 1", got)
	}
	if len(highr.GetLabel()) != 0 {
		t.Errorf("high resolution histogram unexpectedly labeled: %v", highr.GetLabel())
	}

	lowr := gatherFamily(t, reg, "http_lowr_request_duration_seconds").GetMetric()[0]
	if got := labelValue(t, lowr, "method"); got != "GET" {
		t.Errorf("method label = %q", got)
	}
	if got := labelValue(t, lowr, "status"); got != "2xx" {
		t.Errorf("status label = %q", got)
	}
	if got := labelValue(t, lowr, "handler"); got != "/apps/{id}" {
		t.Errorf("handler label = %q", got)
	}

	h := lowr.GetHistogram()
	if got := len(h.GetBucket()); got != 3 {
		t.Errorf("low resolution histogram has %d buckets, want 3", got)
	}
}

func TestFullMalformedHeaderReports(t *testing.T) {
	reg := prometheus.NewRegistry()

	var errs []error
	m := Full(FullOpts{
		Registry: reg,
		OnError:  func(err error) { errs = append(errs, err) },
	})

	m.Observe(testInfo("garbage", ""))

	if len(errs) != 1 {
		t.Fatalf("error handler called %d times, want 1", len(errs))
	}

	// Everything except the in-bytes counter still advances.
	want := `# HELP http_requests_total Total number of requests with no API specific labels.
# TYPE http_requests_total counter
http_requests_total 1
# HELP http_in_bytes_total Content length of incoming requests.
# TYPE http_in_bytes_total counter
http_in_bytes_total 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "http_requests_total", "http_in_bytes_total"); err != nil {
		t.Fatal(err)
	}
}

func TestFullDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Full(FullOpts{Registry: reg})

	defer func() {
		if recover() == nil {
			t.Fatal("second Full registration did not panic")
		}
	}()
	Full(FullOpts{Registry: reg})
}
