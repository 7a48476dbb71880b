package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewBridgeCollector(reg)
	if err != nil {
		t.Fatalf("NewBridgeCollector: %v", err)
	}

	c.EnvelopeForwarded("key", "onKeyEntered")
	c.EnvelopeForwarded("key", "onKeyEntered")
	c.EnvelopeDropped("data", ReasonNoConsumer)
	c.SelfDetached("data")
	c.StreamError("key")
	c.RegionQuery("create")
	c.PointOp("set", ResultOK, 3*time.Millisecond)
	c.SetAttached("key", true)

	if got := testutil.ToFloat64(c.Forwarded.WithLabelValues("key", "onKeyEntered")); got != 2 {
		t.Fatalf("forwarded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Dropped.WithLabelValues("data", ReasonNoConsumer)); got != 1 {
		t.Fatalf("dropped = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.SelfDetaches.WithLabelValues("data")); got != 1 {
		t.Fatalf("self detach = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.PointOps.WithLabelValues("set", ResultOK)); got != 1 {
		t.Fatalf("point ops = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Attached.WithLabelValues("key")); got != 1 {
		t.Fatalf("attached = %v, want 1", got)
	}

	c.SetAttached("key", false)
	if got := testutil.ToFloat64(c.Attached.WithLabelValues("key")); got != 0 {
		t.Fatalf("attached after detach = %v, want 0", got)
	}
}

func TestCollectorReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewBridgeCollector(reg)
	if err != nil {
		t.Fatalf("NewBridgeCollector: %v", err)
	}
	second, err := NewBridgeCollector(reg)
	if err != nil {
		t.Fatalf("second NewBridgeCollector: %v", err)
	}

	first.RegionQuery("relocate")
	if got := testutil.ToFloat64(second.RegionQueries.WithLabelValues("relocate")); got != 1 {
		t.Fatalf("shared region queries = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *BridgeCollector
	c.EnvelopeForwarded("key", "onKeyExited")
	c.EnvelopeDropped("key", ReasonDetached)
	c.SelfDetached("key")
	c.StreamError("key")
	c.RegionQuery("release")
	c.PointOp("get", ResultNotFound, time.Millisecond)
	c.SetAttached("data", true)
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewBridgeCollector(reg)
	if err != nil {
		t.Fatalf("NewBridgeCollector: %v", err)
	}
	c.StreamError("data")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `geobridge_stream_errors_total{kind="data"} 1`) {
		t.Fatalf("metrics output missing stream errors:\n%s", rr.Body.String())
	}
}
