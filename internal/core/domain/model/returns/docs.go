// Package returns contains the Return aggregate.
//
// A return is announced by the marketplace against an existing order and is
// identified by an RMA. It holds one entry per returned order line, each entry
// splits across the consignments the goods originally shipped in, and each
// return consignment tracks the physical parcels travelling back to the
// warehouse.
//
// Quantities and statuses are never set top-down. Reconcile derives them
// bottom-up from the carrier-reported package states, and every counter
// mutation runs through the quantity guard so a consignment can never settle
// more units than were announced.
package returns
