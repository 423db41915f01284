// Package kernel contains shared building blocks used by every aggregate in the
// domain model. Its centerpiece is the quantity guard: the pure invariant check
// that prevents cumulative cancellation/return counters from ever exceeding a
// line's total quantity. All quantity mutations in the order, consignment, and
// returns packages flow through Adjust so that the guard cannot be bypassed.
package kernel
