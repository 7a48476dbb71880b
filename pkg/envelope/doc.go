// Package envelope defines the events delivered to a region subscriber.
//
// An Envelope is one immutable membership-change event for a region query:
// a key entered, exited or moved within the region, its associated data
// changed, the initial scan completed (Ready), or the query failed (Error).
// Envelopes are constructed fresh for every event; the Data map and Keys
// slice are copied on construction so no storage is shared between events.
//
// # Record Form
//
// Every non-error envelope has a tagged record form used on the event
// stream. The "callBack" field names the variant:
//
//	onKeyEntered      key, latitude, longitude
//	onKeyExited       key
//	onKeyMoved        key, latitude, longitude
//	onDataKeyEntered  key, latitude, longitude, data
//	onDataKeyExited   key, data
//	onDataKeyMoved    key, latitude, longitude, data
//	onDataKeyChanged  key, latitude, longitude, data
//	onGeoQueryReady   result (ordered key list)
//
// Errors are not records; they travel on the stream's error channel.
//
// # KeySet
//
// KeySet tracks the keys believed to be inside a region for the lifetime of
// one listener, in first-entry order.
package envelope
