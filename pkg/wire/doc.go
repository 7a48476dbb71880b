// Package wire encodes region events for the outbound stream.
//
// Envelopes travel in their tagged record form (see package envelope). Two
// encodings are supported:
//   - CBOR (RFC 8949), canonical key order, definite lengths
//   - JSON lines, one record per line
//
// CBOR decoding produces map[string]any for nested maps so decoded data
// payloads have the same shape as the ones the bridge emitted.
package wire
