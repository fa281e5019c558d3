package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/categories", "200", 20*time.Millisecond)
	m.ObserveAPI("GET", "/api/categories", "200", 30*time.Millisecond)
	m.IncLayoutTick(false)
	m.IncLayoutTick(true)
	m.SetViewSessions(3)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`blog_api_requests_total{method="GET",route="/api/categories",status="200"} 2`,
		`blog_api_request_duration_seconds_bucket{method="GET",route="/api/categories",le="0.025"} 1`,
		`blog_api_request_duration_seconds_count{method="GET",route="/api/categories"} 2`,
		`blog_layout_ticks_total 2`,
		`blog_layout_settled_total 1`,
		`blog_category_view_sessions 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncRealtime(true)
	m.SetViewSessions(1)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil write: %v", err)
	}
}
