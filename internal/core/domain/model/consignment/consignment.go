package consignment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for consignment operations.
var (
	// ErrConsignmentIsNotConstructed is returned when a Consignment instance was
	// not created through NewConsignment or RestoreConsignment.
	ErrConsignmentIsNotConstructed = errors.New(
		"Consignment must be created via NewConsignment constructor")
	// ErrEntryIsNotConstructed is returned when an Entry instance was not created
	// through a constructor.
	ErrEntryIsNotConstructed = errors.New(
		"Entry must be created via Consignment.AddEntry or RestoreEntry")
)

// ShippingAddress is the destination the carrier delivers the consignment to.
type ShippingAddress struct {
	Name        string
	Street      string
	City        string
	PostalCode  string
	CountryCode string
}

// Entry is one line of a consignment. It references an order line by entry
// number; the shipped quantity is immutable, and the cumulative
// cancelled-or-returned counter only grows through the quantity guard.
type Entry struct {
	// orderEntryNumber references the order line fulfilled by this entry
	orderEntryNumber int
	// quantity is the amount shipped on this consignment, immutable
	quantity int
	// cancelledOrReturned accumulates all canceled and returned quantity
	cancelledOrReturned int

	guard guard.ConstructorGuard
}

// RestoreEntry reconstructs a consignment line from persistent storage.
func RestoreEntry(orderEntryNumber, quantity, cancelledOrReturned int) (*Entry, error) {
	if orderEntryNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderEntryNumber",
			fmt.Errorf("%d is not a valid entry number", orderEntryNumber))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if cancelledOrReturned < 0 || cancelledOrReturned > quantity {
		return nil, errs.NewValueIsOutOfRangeError("cancelledOrReturnedQuantity",
			cancelledOrReturned, 0, quantity)
	}

	return &Entry{
		orderEntryNumber:    orderEntryNumber,
		quantity:            quantity,
		cancelledOrReturned: cancelledOrReturned,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// OrderEntryNumber returns the referenced order line number.
func (e *Entry) OrderEntryNumber() int {
	return e.orderEntryNumber
}

// Quantity returns the amount shipped on this consignment line.
func (e *Entry) Quantity() int {
	return e.quantity
}

// CancelledOrReturnedQuantity returns the cumulative cancelled/returned counter.
func (e *Entry) CancelledOrReturnedQuantity() int {
	return e.cancelledOrReturned
}

// IsFullyAdjusted reports whether the whole shipped quantity has been cancelled
// or returned.
func (e *Entry) IsFullyAdjusted() bool {
	return e.cancelledOrReturned == e.quantity
}

// Consignment is one shipment fulfilling some lines of an order, tracked by a
// carrier. It references its order by code; the order aggregate does not own
// the consignment's lifecycle events.
type Consignment struct {
	// code is the unique shipment identifier
	code string
	// orderCode references the fulfilled order
	orderCode string
	// carrier and trackingID identify the parcel at the shipping company
	carrier    Carrier
	trackingID string
	// status is the state-machine state, statusText the carrier's last raw text
	status     Status
	statusText string
	// shipping/expected/receipt dates as reported by the carrier
	shippingDate     time.Time
	expectedDelivery *time.Time
	receiptDelivery  *time.Time
	// shippingAddress is the delivery destination
	shippingAddress ShippingAddress
	// entries are the shipped lines
	entries []*Entry

	guard guard.ConstructorGuard
}

// NewConsignment creates a consignment directly in Shipped status, which is how
// carrier "shipped" events announce new shipments. Lines are added with AddEntry.
func NewConsignment(
	code, orderCode string,
	carrier Carrier,
	trackingID string,
	shippingAddress ShippingAddress,
	shippingDate time.Time,
	expectedDelivery *time.Time,
) (*Consignment, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("consignmentCode")
	}
	if orderCode == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("trackingID")
	}
	if err := carrier.Validate(); err != nil {
		return nil, err
	}

	return &Consignment{
		code:             code,
		orderCode:        orderCode,
		carrier:          carrier,
		trackingID:       trackingID,
		status:           Shipped,
		shippingDate:     shippingDate,
		expectedDelivery: expectedDelivery,
		shippingAddress:  shippingAddress,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreConsignment reconstructs a Consignment aggregate from persistent storage.
func RestoreConsignment(
	code, orderCode string,
	carrier Carrier,
	trackingID string,
	status Status,
	statusText string,
	shippingAddress ShippingAddress,
	shippingDate time.Time,
	expectedDelivery, receiptDelivery *time.Time,
	entries []*Entry,
) (*Consignment, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("consignmentCode")
	}
	if orderCode == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}
	if err := carrier.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	return &Consignment{
		code:             code,
		orderCode:        orderCode,
		carrier:          carrier,
		trackingID:       trackingID,
		status:           status,
		statusText:       statusText,
		shippingDate:     shippingDate,
		expectedDelivery: expectedDelivery,
		receiptDelivery:  receiptDelivery,
		shippingAddress:  shippingAddress,
		entries:          entries,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Consignment instance was properly constructed.
func (c *Consignment) Validate() error {
	if c == nil {
		return ErrConsignmentIsNotConstructed
	}
	return c.guard.Validate(ErrConsignmentIsNotConstructed)
}

// Code returns the unique shipment identifier.
func (c *Consignment) Code() string {
	return c.code
}

// OrderCode returns the code of the fulfilled order.
func (c *Consignment) OrderCode() string {
	return c.orderCode
}

// Carrier returns the shipping company.
func (c *Consignment) Carrier() Carrier {
	return c.carrier
}

// TrackingID returns the carrier tracking identifier.
func (c *Consignment) TrackingID() string {
	return c.trackingID
}

// Status returns the current state of the consignment.
func (c *Consignment) Status() Status {
	return c.status
}

// StatusText returns the last raw carrier status text.
func (c *Consignment) StatusText() string {
	return c.statusText
}

// ShippingDate returns when the carrier took over the parcel.
func (c *Consignment) ShippingDate() time.Time {
	return c.shippingDate
}

// ExpectedDelivery returns the carrier's delivery estimate, or nil.
func (c *Consignment) ExpectedDelivery() *time.Time {
	return c.expectedDelivery
}

// ReceiptDelivery returns the confirmed delivery timestamp, or nil.
func (c *Consignment) ReceiptDelivery() *time.Time {
	return c.receiptDelivery
}

// ShippingAddress returns the delivery destination.
func (c *Consignment) ShippingAddress() ShippingAddress {
	return c.shippingAddress
}

// Entries returns the consignment lines. The returned slice is a copy.
func (c *Consignment) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// AddEntry appends a shipped line. Order entry numbers must be unique within
// the consignment; the shipped quantity must be positive.
func (c *Consignment) AddEntry(orderEntryNumber, quantity int) error {
	for _, existing := range c.entries {
		if existing.orderEntryNumber == orderEntryNumber {
			return errs.NewValueIsInvalidErrorWithCause("orderEntryNumber",
				fmt.Errorf("entry %d already exists on consignment %s", orderEntryNumber, c.code))
		}
	}

	entry, err := RestoreEntry(orderEntryNumber, quantity, 0)
	if err != nil {
		return err
	}

	c.entries = append(c.entries, entry)
	return nil
}

// Entry resolves a consignment line by the referenced order entry number.
// Returns an ObjectNotFoundError when the line does not exist.
func (c *Consignment) Entry(orderEntryNumber int) (*Entry, error) {
	for _, entry := range c.entries {
		if entry.orderEntryNumber == orderEntryNumber {
			return entry, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderEntryNumber",
		fmt.Sprintf("%s/%d", c.code, orderEntryNumber))
}

// HasEntryFor reports whether the consignment ships the given order line.
func (c *Consignment) HasEntryFor(orderEntryNumber int) bool {
	_, err := c.Entry(orderEntryNumber)
	return err == nil
}

// ApplyAdjustment applies a cancelled/returned quantity to the line matching
// the given order entry number. The quantity guard runs first; on failure the
// consignment is left untouched.
func (c *Consignment) ApplyAdjustment(orderEntryNumber, quantity int) error {
	entry, err := c.Entry(orderEntryNumber)
	if err != nil {
		return err
	}

	newValue, err := kernel.Adjust(
		fmt.Sprintf("consignment %s entry %d", c.code, orderEntryNumber),
		entry.cancelledOrReturned,
		quantity,
		entry.quantity,
	)
	if err != nil {
		return err
	}

	entry.cancelledOrReturned = newValue
	return nil
}

// IsFullyAdjusted reports whether every line's cancelled/returned quantity
// equals its shipped quantity. A consignment without lines is never considered
// fully adjusted.
func (c *Consignment) IsFullyAdjusted() bool {
	if len(c.entries) == 0 {
		return false
	}
	for _, entry := range c.entries {
		if !entry.IsFullyAdjusted() {
			return false
		}
	}
	return true
}

// Deliver records carrier delivery confirmation, moving Shipped -> Delivered
// and storing the receipt timestamp.
func (c *Consignment) Deliver(receiptDelivery time.Time, statusText string) error {
	newStatus, err := c.status.Deliver()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.statusText = statusText
	c.receiptDelivery = &receiptDelivery
	return nil
}

// Cancel moves the consignment to its terminal Canceled state.
func (c *Consignment) Cancel(statusText string) error {
	newStatus, err := c.status.Cancel()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.statusText = statusText
	return nil
}

// MarkReturned moves the consignment to its terminal Returned state.
func (c *Consignment) MarkReturned(statusText string) error {
	newStatus, err := c.status.Return()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.statusText = statusText
	return nil
}

// ApplyCarrierStatus applies an already-mapped carrier status to the
// consignment. Callers must map raw carrier codes through MapCarrierStatus
// first so that unrecognized codes are rejected before any state change.
func (c *Consignment) ApplyCarrierStatus(status Status, statusText string, at time.Time) error {
	switch status {
	case Delivered:
		return c.Deliver(at, statusText)
	case Returned:
		return c.MarkReturned(statusText)
	case Canceled:
		return c.Cancel(statusText)
	default:
		return errs.NewValueIsInvalidErrorWithCause("carrierStatus",
			fmt.Errorf("%s is not a status a carrier event may apply", status.String()))
	}
}

// Reconcile re-evaluates the consignment after quantity adjustments: when every
// line is fully cancelled/returned, the consignment moves to the given terminal
// state (Canceled for the cancellation path, Returned for the return path).
// A fully returned consignment may leave Delivered, since goods come back after
// delivery. Running it again with no new adjustments is a no-op; it reports
// whether the status changed.
func (c *Consignment) Reconcile(target Status) (bool, error) {
	if target != Canceled && target != Returned {
		return false, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid reconciliation target", target.String()))
	}

	if !c.IsFullyAdjusted() {
		return false, nil
	}

	switch {
	case target == Canceled && (c.status == Created || c.status == Shipped):
		return true, c.Cancel(c.statusText)
	case target == Returned && (c.status == Shipped || c.status == Delivered):
		return true, c.MarkReturned(c.statusText)
	default:
		return false, nil
	}
}

// AllCanceled reports whether every consignment reached its terminal Canceled
// state. An empty slice counts as all canceled.
func AllCanceled(consignments []*Consignment) bool {
	for _, cons := range consignments {
		if cons.Status() != Canceled {
			return false
		}
	}
	return true
}
