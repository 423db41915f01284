package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through a constructor.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via Order.AddEntry or RestoreEntry")
)

// Contact holds the customer contact fields carried on an order.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Address is a delivery address owned by a single order line.
type Address struct {
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// Entry is one line of an order. The ordered quantity is immutable; the
// cumulative canceled-or-returned counter only ever grows, and only through the
// quantity guard. An entry may carry its own delivery address.
type Entry struct {
	// entryNumber is unique within the owning order
	entryNumber int
	// quantity is the ordered amount, immutable after creation
	quantity int
	// canceledOrReturned accumulates all canceled and returned quantity on this line
	canceledOrReturned int
	// reason records why the line was (partially) canceled, metadata only
	reason CancellationReason
	// notes carries the caller-supplied free text verbatim
	notes string
	// deliveryAddress is set when the line ships to its own address
	deliveryAddress *Address

	guard guard.ConstructorGuard
}

// RestoreEntry reconstructs an order line from persistent storage.
func RestoreEntry(
	entryNumber, quantity, canceledOrReturned int,
	reason CancellationReason,
	notes string,
	deliveryAddress *Address,
) (*Entry, error) {
	if entryNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("entryNumber",
			fmt.Errorf("%d is not a valid entry number", entryNumber))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if canceledOrReturned < 0 || canceledOrReturned > quantity {
		return nil, errs.NewValueIsOutOfRangeError("canceledOrReturnedQuantity",
			canceledOrReturned, 0, quantity)
	}

	return &Entry{
		entryNumber:        entryNumber,
		quantity:           quantity,
		canceledOrReturned: canceledOrReturned,
		reason:             reason,
		notes:              notes,
		deliveryAddress:    deliveryAddress,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// EntryNumber returns the line number, unique within the owning order.
func (e *Entry) EntryNumber() int {
	return e.entryNumber
}

// Quantity returns the ordered amount.
func (e *Entry) Quantity() int {
	return e.quantity
}

// CanceledOrReturnedQuantity returns the cumulative canceled/returned counter.
func (e *Entry) CanceledOrReturnedQuantity() int {
	return e.canceledOrReturned
}

// RemainingQuantity returns the quantity still available for cancellation or return.
func (e *Entry) RemainingQuantity() int {
	return e.quantity - e.canceledOrReturned
}

// IsFullyAdjusted reports whether the whole line has been canceled or returned.
func (e *Entry) IsFullyAdjusted() bool {
	return e.canceledOrReturned == e.quantity
}

// Reason returns the recorded cancellation reason.
func (e *Entry) Reason() CancellationReason {
	return e.reason
}

// Notes returns the caller-supplied cancellation notes verbatim.
func (e *Entry) Notes() string {
	return e.notes
}

// DeliveryAddress returns the line's own delivery address, or nil.
func (e *Entry) DeliveryAddress() *Address {
	return e.deliveryAddress
}

// Order is the aggregate root for one customer purchase. It owns its lines and
// is the unit of mutual exclusion for all reconciliation: every mutation to the
// order, its consignments, or its returns is serialized per order code.
//
// Order follows these invariants:
//   - Code is unique and immutable after creation
//   - For every line: 0 <= CanceledOrReturnedQuantity <= Quantity, monotonic
//   - After acknowledgement, Status changes only through ApplyRollup
type Order struct {
	// code is the marketplace-assigned unique identifier
	code string
	// status is the rollup-derived lifecycle state
	status Status
	// customer holds the contact fields from the marketplace payload
	customer Contact
	// created and modified are maintained by the aggregate itself
	created  time.Time
	modified time.Time
	// entries are the order lines, ordered by entry number
	entries []*Entry

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Created status. Lines are added afterwards
// with AddEntry; an order is only persisted once it has at least one line.
func NewOrder(code string, customer Contact, now time.Time) (*Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}

	return &Order{
		code:     code,
		status:   Created,
		customer: customer,
		created:  now,
		modified: now,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage,
// including its lines and their cumulative counters.
func RestoreOrder(
	code string,
	status Status,
	customer Contact,
	created, modified time.Time,
	entries []*Entry,
) (*Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		code:     code,
		status:   status,
		customer: customer,
		created:  created,
		modified: modified,
		entries:  entries,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Code returns the order's unique identifier.
func (o *Order) Code() string {
	return o.code
}

// Status returns the current lifecycle state of the order.
func (o *Order) Status() Status {
	return o.status
}

// Customer returns the customer contact fields.
func (o *Order) Customer() Contact {
	return o.customer
}

// Created returns the creation timestamp.
func (o *Order) Created() time.Time {
	return o.created
}

// Modified returns the timestamp of the last mutation.
func (o *Order) Modified() time.Time {
	return o.modified
}

// Entries returns the order lines. The returned slice is a copy to prevent
// external modification of the aggregate's internal state.
func (o *Order) Entries() []*Entry {
	out := make([]*Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// AddEntry appends a new line to the order. Entry numbers must be positive and
// unique within the order; the ordered quantity must be positive.
func (o *Order) AddEntry(entryNumber, quantity int, deliveryAddress *Address) error {
	for _, existing := range o.entries {
		if existing.entryNumber == entryNumber {
			return errs.NewValueIsInvalidErrorWithCause("entryNumber",
				fmt.Errorf("entry %d already exists on order %s", entryNumber, o.code))
		}
	}

	entry, err := RestoreEntry(entryNumber, quantity, 0, ReasonUnspecified, "", deliveryAddress)
	if err != nil {
		return err
	}

	o.entries = append(o.entries, entry)
	return nil
}

// Entry resolves a line by its entry number.
// Returns an ObjectNotFoundError when the line does not exist.
func (o *Order) Entry(entryNumber int) (*Entry, error) {
	for _, entry := range o.entries {
		if entry.entryNumber == entryNumber {
			return entry, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderEntryNumber",
		fmt.Sprintf("%s/%d", o.code, entryNumber))
}

// Confirm applies the marketplace-acknowledgement transition Created -> InProgress.
// It is the only status mutation besides ApplyRollup.
func (o *Order) Confirm(now time.Time) error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.modified = now
	return nil
}

// CancelEntry applies a cancellation to one line: the guard runs first, and on
// success the cumulative counter grows by cancelQuantity and the reason/notes
// are recorded verbatim. A guard failure leaves the line untouched.
func (o *Order) CancelEntry(
	entryNumber, cancelQuantity int,
	reason CancellationReason,
	notes string,
	now time.Time,
) error {
	entry, err := o.Entry(entryNumber)
	if err != nil {
		return err
	}

	if err = o.adjustEntry(entry, cancelQuantity, now); err != nil {
		return err
	}

	entry.reason = reason
	entry.notes = notes
	return nil
}

// ApplyReturn applies a returned quantity to one line. Same guard semantics as
// CancelEntry, but the line's cancellation reason is left untouched.
func (o *Order) ApplyReturn(entryNumber, returnQuantity int, now time.Time) error {
	entry, err := o.Entry(entryNumber)
	if err != nil {
		return err
	}
	return o.adjustEntry(entry, returnQuantity, now)
}

// adjustEntry is the single mutation point for line counters; every cancellation
// and return funnels through the kernel quantity guard here.
func (o *Order) adjustEntry(entry *Entry, quantity int, now time.Time) error {
	newValue, err := kernel.Adjust(
		fmt.Sprintf("order %s entry %d", o.code, entry.entryNumber),
		entry.canceledOrReturned,
		quantity,
		entry.quantity,
	)
	if err != nil {
		return err
	}

	entry.canceledOrReturned = newValue
	o.modified = now
	return nil
}

// AllEntriesCanceled reports whether every line is fully canceled or returned.
// An order with no lines is never considered canceled.
func (o *Order) AllEntriesCanceled() bool {
	if len(o.entries) == 0 {
		return false
	}
	for _, entry := range o.entries {
		if !entry.IsFullyAdjusted() {
			return false
		}
	}
	return true
}

// ApplyRollup writes the status derived by the rollup coordinator. It is
// idempotent: re-applying the current status does not touch the modified
// timestamp.
func (o *Order) ApplyRollup(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == o.status {
		return nil
	}

	o.status = status
	o.modified = now
	return nil
}
