package subscription

import (
	"log/slog"

	"github.com/benbjohnson/clock"

	"github.com/geobridge/geobridge-go/pkg/log"
	"github.com/geobridge/geobridge-go/pkg/metrics"
)

// Default bridge limits.
const (
	// DefaultMaxRadius disables the radius limit.
	DefaultMaxRadius = 0.0
)

// Config holds bridge configuration.
type Config struct {
	// MaxRadius is the largest accepted query radius in kilometers.
	// Zero accepts any non-negative radius.
	MaxRadius float64

	// DefaultPath is used by Start when called with an empty path.
	// Empty keeps an empty path an error.
	DefaultPath string
}

// DefaultConfig returns the default bridge configuration.
func DefaultConfig() Config {
	return Config{
		MaxRadius: DefaultMaxRadius,
	}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithConfig replaces the bridge configuration.
func WithConfig(config Config) Option {
	return func(b *Bridge) {
		b.config = config
	}
}

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCaptureLogger sets the capture logger receiving bridge events.
func WithCaptureLogger(logger log.Logger) Option {
	return func(b *Bridge) {
		b.capture = logger
	}
}

// WithMetrics sets the Prometheus collector.
func WithMetrics(collector *metrics.BridgeCollector) Option {
	return func(b *Bridge) {
		b.metrics = collector
	}
}

// WithClock sets the clock used for capture timestamps and latency metrics.
func WithClock(clk clock.Clock) Option {
	return func(b *Bridge) {
		if clk != nil {
			b.clock = clk
		}
	}
}
