// Package order contains the Order aggregate: one customer purchase identified
// by a unique marketplace code, composed of lines with guarded cumulative
// cancellation/return counters. The order's status is derived from its
// consignments and returns by the rollup coordinator; this package only exposes
// the two legal direct transitions (creation and marketplace acknowledgement)
// plus ApplyRollup for the coordinator.
package order
