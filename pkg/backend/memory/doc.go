// Package memory provides an in-process backend.Store.
//
// The store keeps points and payloads in maps and evaluates circular region
// queries with great-circle distance (radius in kilometers). Each attached
// listener has its own delivery goroutine fed by an unbounded FIFO queue, so
// callbacks for one listener arrive in the order the store produced them and
// never run on the caller's goroutine.
//
// On attach a listener receives an entered callback for every key already in
// the region, in key order, followed by OnReady. Point writes, removals,
// payload updates and region relocation then produce entered, exited, moved
// and changed callbacks. Relocation is followed by another OnReady.
//
// Opener hands out one Store per path, mirroring a database reference.
package memory
