// Package log provides structured capture logging for the geo bridge.
//
// This package defines the Logger interface and Event types for capturing
// bridge activity at three layers (backend, bridge, stream). It is separate
// from operational logging (slog): capture provides a complete
// machine-readable trace of what a session delivered and dropped.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	opts = append(opts, subscription.WithCaptureLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/geobridge/session.glog")
//
//	// Both: use MultiLogger
//	log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Types
//
//   - Stream: envelopes delivered to or dropped for lack of a consumer (EnvelopeEvent)
//   - Bridge: session, region, listener and sink transitions (StateChangeEvent)
//   - Backend and stream failures (ErrorEventData)
//
// # File Format
//
// Capture files use CBOR encoding with the .glog extension. The
// geobridge-log CLI tool provides viewing, filtering, export and stats.
package log
