// Package services contains stateless domain services that coordinate
// multiple aggregates.
//
// The status rollup derives an order's status from the consignments and
// returns attached to it. Aggregates never set each other's statuses
// directly. Command handlers mutate one aggregate, then run the rollup over
// the whole graph inside the same transaction.
package services
