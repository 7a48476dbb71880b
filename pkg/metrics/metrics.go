// Package metrics exposes Prometheus instrumentation for the subscription bridge.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons.
const (
	ReasonNoConsumer = "no_consumer"
	ReasonDetached   = "detached"
	ReasonBufferFull = "buffer_full"
)

// Point operation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// BridgeCollector bundles the bridge metrics. All methods are safe on a nil
// receiver so callers need not check whether metrics are enabled.
type BridgeCollector struct {
	gatherer prometheus.Gatherer

	Forwarded     *prometheus.CounterVec
	Dropped       *prometheus.CounterVec
	SelfDetaches  *prometheus.CounterVec
	StreamErrors  *prometheus.CounterVec
	RegionQueries *prometheus.CounterVec
	PointOps      *prometheus.CounterVec
	PointLatency  *prometheus.HistogramVec
	Attached      *prometheus.GaugeVec
}

// NewBridgeCollector registers the bridge metrics against reg, defaulting to
// the global Prometheus registry when nil. Registering twice against the same
// registry returns collectors sharing the existing series.
func NewBridgeCollector(reg prometheus.Registerer) (*BridgeCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	forwarded, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_envelopes_forwarded_total",
		Help: "Envelopes delivered to the bound consumer, labeled by listener kind and callBack.",
	}, []string{"kind", "callback"}), "geobridge_envelopes_forwarded_total")
	if err != nil {
		return nil, err
	}
	dropped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_envelopes_dropped_total",
		Help: "Backend callbacks that produced no delivery, labeled by listener kind and reason.",
	}, []string{"kind", "reason"}), "geobridge_envelopes_dropped_total")
	if err != nil {
		return nil, err
	}
	selfDetaches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_listener_self_detach_total",
		Help: "Listeners that removed themselves because no consumer was bound.",
	}, []string{"kind"}), "geobridge_listener_self_detach_total")
	if err != nil {
		return nil, err
	}
	streamErrors, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_stream_errors_total",
		Help: "Region query failures reported on the stream error channel.",
	}, []string{"kind"}), "geobridge_stream_errors_total")
	if err != nil {
		return nil, err
	}
	regionQueries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_region_queries_total",
		Help: "Region query operations, labeled by op (create, relocate, release).",
	}, []string{"op"}), "geobridge_region_queries_total")
	if err != nil {
		return nil, err
	}
	pointOps, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geobridge_point_ops_total",
		Help: "Completed point operations, labeled by op and result.",
	}, []string{"op", "result"}), "geobridge_point_ops_total")
	if err != nil {
		return nil, err
	}
	pointLatency, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geobridge_point_op_duration_seconds",
		Help:    "Time from point operation submission to completion.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}, []string{"op"}), "geobridge_point_op_duration_seconds")
	if err != nil {
		return nil, err
	}
	attached, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "geobridge_listeners_attached",
		Help: "Listeners currently attached to the region query, by kind.",
	}, []string{"kind"}), "geobridge_listeners_attached")
	if err != nil {
		return nil, err
	}

	return &BridgeCollector{
		gatherer:      gatherer,
		Forwarded:     forwarded,
		Dropped:       dropped,
		SelfDetaches:  selfDetaches,
		StreamErrors:  streamErrors,
		RegionQueries: regionQueries,
		PointOps:      pointOps,
		PointLatency:  pointLatency,
		Attached:      attached,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *BridgeCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// EnvelopeForwarded counts a delivered envelope.
func (c *BridgeCollector) EnvelopeForwarded(kind, callBack string) {
	if c == nil || c.Forwarded == nil {
		return
	}
	c.Forwarded.WithLabelValues(kind, callBack).Inc()
}

// EnvelopeDropped counts a callback that was not delivered.
func (c *BridgeCollector) EnvelopeDropped(kind, reason string) {
	if c == nil || c.Dropped == nil {
		return
	}
	c.Dropped.WithLabelValues(kind, reason).Inc()
}

// SelfDetached counts a lazy self-detach.
func (c *BridgeCollector) SelfDetached(kind string) {
	if c == nil || c.SelfDetaches == nil {
		return
	}
	c.SelfDetaches.WithLabelValues(kind).Inc()
}

// StreamError counts a region failure reported to the consumer.
func (c *BridgeCollector) StreamError(kind string) {
	if c == nil || c.StreamErrors == nil {
		return
	}
	c.StreamErrors.WithLabelValues(kind).Inc()
}

// RegionQuery counts a region query operation.
func (c *BridgeCollector) RegionQuery(op string) {
	if c == nil || c.RegionQueries == nil {
		return
	}
	c.RegionQueries.WithLabelValues(op).Inc()
}

// PointOp records a point operation completion.
func (c *BridgeCollector) PointOp(op, result string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.PointOps != nil {
		c.PointOps.WithLabelValues(op, result).Inc()
	}
	if c.PointLatency != nil {
		c.PointLatency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}

// SetAttached sets the attachment gauge for kind.
func (c *BridgeCollector) SetAttached(kind string, attached bool) {
	if c == nil || c.Attached == nil {
		return
	}
	v := 0.0
	if attached {
		v = 1
	}
	c.Attached.WithLabelValues(kind).Set(v)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
