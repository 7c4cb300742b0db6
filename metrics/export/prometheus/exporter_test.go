package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sessiongate "github.com/campaignwala/sessiongate"
)

type fakeSource struct {
	snapshot sessiongate.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() sessiongate.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                         { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: sessiongate.MetricsSnapshot{
			Counters:   map[sessiongate.MetricID]uint64{},
			Histograms: map[sessiongate.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCounterAndHistogram(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: sessiongate.MetricsSnapshot{
			Counters: map[sessiongate.MetricID]uint64{
				sessiongate.MetricLoginSuccess:  7,
				sessiongate.MetricGuardRedirect: 2,
			},
			Histograms: map[sessiongate.MetricID][]uint64{
				sessiongate.MetricLoginLatency: {1, 2, 0, 0, 0, 0, 0, 1},
			},
		},
		dropped: 3,
	})

	out := exp.Render()

	for _, want := range []string{
		"# TYPE sessiongate_login_success_total counter",
		"sessiongate_login_success_total 7",
		"sessiongate_guard_redirect_total 2",
		"# TYPE sessiongate_login_latency_seconds histogram",
		`sessiongate_login_latency_seconds_bucket{le="0.005"} 1`,
		`sessiongate_login_latency_seconds_bucket{le="0.01"} 3`,
		`sessiongate_login_latency_seconds_bucket{le="+Inf"} 4`,
		"sessiongate_login_latency_seconds_count 4",
		"sessiongate_audit_dropped_total 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	src := fakeSource{
		snapshot: sessiongate.MetricsSnapshot{
			Counters: map[sessiongate.MetricID]uint64{
				sessiongate.MetricLoginSuccess: 1,
				sessiongate.MetricLogout:       2,
			},
		},
	}
	exp := NewExporterFromSource(src)

	first := exp.Render()
	for i := 0; i < 10; i++ {
		if got := exp.Render(); got != first {
			t.Fatal("render order varies between calls")
		}
	}
}

func TestHandler(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: sessiongate.MetricsSnapshot{
			Counters: map[sessiongate.MetricID]uint64{
				sessiongate.MetricLoginSuccess: 1,
			},
		},
	})

	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "sessiongate_login_success_total 1") {
		t.Fatalf("body:\n%s", rec.Body.String())
	}
}

func TestNilExporterRendersEmpty(t *testing.T) {
	var exp *Exporter
	if got := exp.Render(); got != "" {
		t.Fatalf("nil exporter rendered %q", got)
	}
}
