// Package consignment contains the Consignment aggregate: one carrier-tracked
// shipment fulfilling some lines of an order. The package owns the carrier
// status vocabulary mapping (DHL, DPD) into the internal state machine and the
// guarded per-line cancelled/returned counters that drive a consignment into
// its terminal Canceled or Returned state.
package consignment
