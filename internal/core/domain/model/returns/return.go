package returns

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for return operations.
var (
	// ErrReturnIsNotConstructed is returned when a Return instance was not
	// created through NewReturn or RestoreReturn.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")
	// ErrReturnEntryIsNotConstructed is returned when an Entry instance was
	// not created through a constructor.
	ErrReturnEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")
	// ErrReturnConsignmentIsNotConstructed is returned when a Consignment
	// instance was not created through a constructor.
	ErrReturnConsignmentIsNotConstructed = errors.New(
		"Consignment must be created via NewConsignment or RestoreConsignment")
)

// Customer holds the contact data of the person sending goods back.
type Customer struct {
	Name  string
	Email string
}

// Package is one physically tracked parcel within a return consignment.
type Package struct {
	trackingID      string
	status          PackageStatus
	receiptDelivery *time.Time
}

// NewPackage creates a package in the Receiving state.
func NewPackage(trackingID string) (*Package, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("trackingID")
	}
	return &Package{trackingID: trackingID, status: PackageReceiving}, nil
}

// RestorePackage reconstitutes a package from persisted state.
func RestorePackage(trackingID string, status PackageStatus, receiptDelivery *time.Time) (*Package, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("trackingID")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Package{trackingID: trackingID, status: status, receiptDelivery: receiptDelivery}, nil
}

func (p *Package) TrackingID() string { return p.trackingID }

func (p *Package) Status() PackageStatus { return p.status }

// ReceiptDelivery returns the moment the carrier delivered the parcel back to
// the warehouse, or nil while it is still underway.
func (p *Package) ReceiptDelivery() *time.Time { return p.receiptDelivery }

// SetStatus applies a carrier-reported status to the package. The delivery
// timestamp is recorded on the first transition to delivered and never
// overwritten afterwards.
func (p *Package) SetStatus(status PackageStatus, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	if status == PackageDelivered && p.receiptDelivery == nil {
		receipt := at
		p.receiptDelivery = &receipt
	}
	return nil
}

// Consignment is the portion of a return that travels back under one physical
// consignment. Its quantities track how many units were canceled or completed
// out of the announced total.
//
// Invariant: CanceledQuantity + CompletedQuantity <= Quantity.
type Consignment struct {
	consignmentCode   string
	quantity          int
	canceledQuantity  int
	completedQuantity int
	status            Status
	completedDate     *time.Time
	packages          []*Package

	guard guard.ConstructorGuard
}

// NewConsignment creates a return consignment in the Receiving state.
func NewConsignment(consignmentCode string, quantity int) (*Consignment, error) {
	if consignmentCode == "" {
		return nil, errs.NewValueIsRequiredError("consignmentCode")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Consignment{
		consignmentCode: consignmentCode,
		quantity:        quantity,
		status:          Receiving,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreConsignment reconstitutes a return consignment from persisted state.
func RestoreConsignment(consignmentCode string, quantity, canceledQuantity, completedQuantity int,
	status Status, completedDate *time.Time, packages []*Package) (*Consignment, error) {
	if consignmentCode == "" {
		return nil, errs.NewValueIsRequiredError("consignmentCode")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if canceledQuantity < 0 || completedQuantity < 0 ||
		!kernel.CheckAdjustment(canceledQuantity, completedQuantity, quantity) {
		return nil, errs.NewValueIsOutOfRangeError("canceledQuantity+completedQuantity",
			canceledQuantity+completedQuantity, 0, quantity)
	}
	return &Consignment{
		consignmentCode:   consignmentCode,
		quantity:          quantity,
		canceledQuantity:  canceledQuantity,
		completedQuantity: completedQuantity,
		status:            status,
		completedDate:     completedDate,
		packages:          packages,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c *Consignment) ConsignmentCode() string { return c.consignmentCode }

func (c *Consignment) Quantity() int { return c.quantity }

func (c *Consignment) CanceledQuantity() int { return c.canceledQuantity }

func (c *Consignment) CompletedQuantity() int { return c.completedQuantity }

func (c *Consignment) Status() Status { return c.status }

// CompletedDate returns the moment the consignment was stamped as processed,
// or nil while it is still open.
func (c *Consignment) CompletedDate() *time.Time { return c.completedDate }

// Packages returns a copy of the package list.
func (c *Consignment) Packages() []*Package {
	return append([]*Package(nil), c.packages...)
}

// AddPackage attaches a tracked parcel. Tracking IDs must be unique within
// the consignment.
func (c *Consignment) AddPackage(pkg *Package) error {
	if err := c.guard.Validate(ErrReturnConsignmentIsNotConstructed); err != nil {
		return err
	}
	if pkg == nil {
		return errs.NewValueIsRequiredError("pkg")
	}
	for _, existing := range c.packages {
		if existing.trackingID == pkg.trackingID {
			return errs.NewValueIsInvalidErrorWithCause("pkg",
				fmt.Errorf("package with tracking ID %s already exists", pkg.trackingID))
		}
	}
	c.packages = append(c.packages, pkg)
	return nil
}

// Package looks up a parcel by its tracking ID.
func (c *Consignment) Package(trackingID string) (*Package, error) {
	if err := c.guard.Validate(ErrReturnConsignmentIsNotConstructed); err != nil {
		return nil, err
	}
	for _, pkg := range c.packages {
		if pkg.trackingID == trackingID {
			return pkg, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("trackingID", trackingID)
}

// reconcile derives the consignment status and quantities from its packages.
// It reports whether anything changed.
func (c *Consignment) reconcile() (bool, error) {
	if c.status.IsTerminal() || len(c.packages) == 0 {
		return false, nil
	}

	allDelivered := true
	anyCanceled := false
	for _, pkg := range c.packages {
		switch pkg.status {
		case PackageCanceled:
			anyCanceled = true
			allDelivered = false
		case PackageDelivered:
		default:
			allDelivered = false
		}
	}

	remaining := c.quantity - c.canceledQuantity - c.completedQuantity
	existing := c.canceledQuantity + c.completedQuantity

	if anyCanceled {
		adjusted, err := kernel.Adjust(
			fmt.Sprintf("return consignment %s canceled quantity", c.consignmentCode),
			existing, remaining, c.quantity)
		if err != nil {
			return false, err
		}
		c.canceledQuantity += adjusted - existing
		status, err := c.status.Cancel()
		if err != nil {
			return false, err
		}
		c.status = status
		return true, nil
	}

	if allDelivered {
		adjusted, err := kernel.Adjust(
			fmt.Sprintf("return consignment %s completed quantity", c.consignmentCode),
			existing, remaining, c.quantity)
		if err != nil {
			return false, err
		}
		c.completedQuantity += adjusted - existing
		status, err := c.status.Complete()
		if err != nil {
			return false, err
		}
		c.status = status
		return true, nil
	}

	return false, nil
}

// Entry is one order line inside a return. Its counter records how many units
// of the line came back or were canceled on the way.
type Entry struct {
	orderEntryNumber   int
	quantity           int
	canceledOrReturned int
	reason             string
	status             Status
	consignments       []*Consignment

	guard guard.ConstructorGuard
}

// NewEntry creates a return entry in the Receiving state.
func NewEntry(orderEntryNumber, quantity int, reason string) (*Entry, error) {
	if orderEntryNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderEntryNumber",
			fmt.Errorf("%d is not a valid order entry number", orderEntryNumber))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Entry{
		orderEntryNumber: orderEntryNumber,
		quantity:         quantity,
		reason:           reason,
		status:           Receiving,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry reconstitutes a return entry from persisted state.
func RestoreEntry(orderEntryNumber, quantity, canceledOrReturned int, reason string,
	status Status, consignments []*Consignment) (*Entry, error) {
	if orderEntryNumber <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderEntryNumber",
			fmt.Errorf("%d is not a valid order entry number", orderEntryNumber))
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if canceledOrReturned < 0 || canceledOrReturned > quantity {
		return nil, errs.NewValueIsOutOfRangeError("canceledOrReturned", canceledOrReturned, 0, quantity)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Entry{
		orderEntryNumber:   orderEntryNumber,
		quantity:           quantity,
		canceledOrReturned: canceledOrReturned,
		reason:             reason,
		status:             status,
		consignments:       consignments,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (e *Entry) OrderEntryNumber() int { return e.orderEntryNumber }

func (e *Entry) Quantity() int { return e.quantity }

func (e *Entry) CanceledOrReturnedQuantity() int { return e.canceledOrReturned }

func (e *Entry) Reason() string { return e.reason }

func (e *Entry) Status() Status { return e.status }

// Consignments returns a copy of the consignment list.
func (e *Entry) Consignments() []*Consignment {
	return append([]*Consignment(nil), e.consignments...)
}

// AddConsignment attaches the portion of this line that travels back under one
// physical consignment. Consignment codes must be unique within the entry.
func (e *Entry) AddConsignment(consignment *Consignment) error {
	if err := e.guard.Validate(ErrReturnEntryIsNotConstructed); err != nil {
		return err
	}
	if consignment == nil {
		return errs.NewValueIsRequiredError("consignment")
	}
	for _, existing := range e.consignments {
		if existing.consignmentCode == consignment.consignmentCode {
			return errs.NewValueIsInvalidErrorWithCause("consignment",
				fmt.Errorf("consignment %s already exists", consignment.consignmentCode))
		}
	}
	e.consignments = append(e.consignments, consignment)
	return nil
}

// Consignment looks up an attached consignment by its code.
func (e *Entry) Consignment(code string) (*Consignment, error) {
	if err := e.guard.Validate(ErrReturnEntryIsNotConstructed); err != nil {
		return nil, err
	}
	for _, consignment := range e.consignments {
		if consignment.consignmentCode == code {
			return consignment, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("consignmentCode", code)
}

// reconcile derives the entry counter and status from its consignments.
func (e *Entry) reconcile() (bool, error) {
	changed := false
	for _, consignment := range e.consignments {
		consignmentChanged, err := consignment.reconcile()
		if err != nil {
			return changed, err
		}
		changed = changed || consignmentChanged
	}

	// The counter follows the sum of terminal quantities on the consignments,
	// capped by the entry quantity under the guard.
	settled := 0
	for _, consignment := range e.consignments {
		settled += consignment.canceledQuantity + consignment.completedQuantity
	}
	if settled > e.canceledOrReturned {
		adjustment := settled - e.canceledOrReturned
		adjusted, err := kernel.Adjust(
			fmt.Sprintf("return entry %d", e.orderEntryNumber),
			e.canceledOrReturned, adjustment, e.quantity)
		if err != nil {
			return changed, err
		}
		e.canceledOrReturned = adjusted
		changed = true
	}

	if e.status.IsTerminal() || len(e.consignments) == 0 {
		return changed, nil
	}

	allTerminal := true
	allCanceled := true
	anyDelivered := false
	for _, consignment := range e.consignments {
		if !consignment.status.IsTerminal() {
			allTerminal = false
		}
		if consignment.status != Canceled {
			allCanceled = false
		}
		if consignment.status == Completed {
			anyDelivered = true
		}
		for _, pkg := range consignment.packages {
			if pkg.status == PackageDelivered {
				anyDelivered = true
			}
		}
	}

	switch {
	case allTerminal && allCanceled:
		status, err := e.status.Cancel()
		if err != nil {
			return changed, err
		}
		e.status = status
		changed = true
	case allTerminal:
		status, err := e.status.Complete()
		if err != nil {
			return changed, err
		}
		e.status = status
		changed = true
	case anyDelivered && e.status == Receiving:
		status, err := e.status.Receive()
		if err != nil {
			return changed, err
		}
		e.status = status
		changed = true
	}
	return changed, nil
}

// Return is the aggregate root of one customer return announced by the
// marketplace. It owns the entries, their consignments and the tracked
// packages, and derives its own status from the state below it.
type Return struct {
	rma                   string
	marketplaceReturnCode string
	orderCode             string
	status                Status
	initiationDate        time.Time
	customer              Customer
	entries               []*Entry

	guard guard.ConstructorGuard
}

// NewReturn creates a return in the Receiving state.
func NewReturn(rma, marketplaceReturnCode, orderCode string,
	customer Customer, initiationDate time.Time) (*Return, error) {
	err := errors.Join(
		requireString("rma", rma),
		requireString("marketplaceReturnCode", marketplaceReturnCode),
		requireString("orderCode", orderCode),
		requireString("customer.Name", customer.Name),
	)
	if err != nil {
		return nil, err
	}
	return &Return{
		rma:                   rma,
		marketplaceReturnCode: marketplaceReturnCode,
		orderCode:             orderCode,
		status:                Receiving,
		initiationDate:        initiationDate,
		customer:              customer,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// RestoreReturn reconstitutes a return from persisted state.
func RestoreReturn(rma, marketplaceReturnCode, orderCode string, status Status,
	customer Customer, initiationDate time.Time, entries []*Entry) (*Return, error) {
	err := errors.Join(
		requireString("rma", rma),
		requireString("marketplaceReturnCode", marketplaceReturnCode),
		requireString("orderCode", orderCode),
		status.Validate(),
	)
	if err != nil {
		return nil, err
	}
	return &Return{
		rma:                   rma,
		marketplaceReturnCode: marketplaceReturnCode,
		orderCode:             orderCode,
		status:                status,
		initiationDate:        initiationDate,
		customer:              customer,
		entries:               entries,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func requireString(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

// Validate ensures the Return instance was properly constructed.
func (r *Return) Validate() error {
	if r == nil {
		return ErrReturnIsNotConstructed
	}
	return r.guard.Validate(ErrReturnIsNotConstructed)
}

// Rma returns the return merchandise authorization that identifies this return.
func (r *Return) Rma() string { return r.rma }

// MarketplaceReturnCode returns the identifier the marketplace assigned to the
// return.
func (r *Return) MarketplaceReturnCode() string { return r.marketplaceReturnCode }

func (r *Return) OrderCode() string { return r.orderCode }

func (r *Return) Status() Status { return r.status }

func (r *Return) InitiationDate() time.Time { return r.initiationDate }

func (r *Return) Customer() Customer { return r.customer }

// Entries returns a copy of the entry list.
func (r *Return) Entries() []*Entry {
	return append([]*Entry(nil), r.entries...)
}

// AddEntry attaches an order line to the return. Entry numbers must be unique
// within the return.
func (r *Return) AddEntry(entry *Entry) error {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return err
	}
	if entry == nil {
		return errs.NewValueIsRequiredError("entry")
	}
	for _, existing := range r.entries {
		if existing.orderEntryNumber == entry.orderEntryNumber {
			return errs.NewValueIsInvalidErrorWithCause("entry",
				fmt.Errorf("entry for order entry %d already exists", entry.orderEntryNumber))
		}
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Entry looks up a return line by the order entry number it refers to.
func (r *Return) Entry(orderEntryNumber int) (*Entry, error) {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return nil, err
	}
	for _, entry := range r.entries {
		if entry.orderEntryNumber == orderEntryNumber {
			return entry, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderEntryNumber",
		fmt.Sprintf("%s/%d", r.rma, orderEntryNumber))
}

// ConsignmentByCode looks up a return consignment anywhere in the return by
// its consignment code.
func (r *Return) ConsignmentByCode(code string) (*Consignment, error) {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return nil, err
	}
	for _, entry := range r.entries {
		for _, consignment := range entry.consignments {
			if consignment.consignmentCode == code {
				return consignment, nil
			}
		}
	}
	return nil, errs.NewObjectNotFoundError("consignmentCode", code)
}

// SetAllPackageStatuses applies the same carrier-reported status to every
// package in the return. Delivery timestamps already recorded are preserved.
func (r *Return) SetAllPackageStatuses(status PackageStatus, at time.Time) error {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	for _, entry := range r.entries {
		for _, consignment := range entry.consignments {
			for _, pkg := range consignment.packages {
				if err := pkg.SetStatus(status, at); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Reconcile walks the full return graph and derives quantities and statuses
// bottom-up from the package states. Terminal pieces are never revisited, so
// repeated calls are idempotent. It reports whether anything changed.
func (r *Return) Reconcile() (bool, error) {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return false, err
	}

	changed := false
	for _, entry := range r.entries {
		entryChanged, err := entry.reconcile()
		if err != nil {
			return changed, err
		}
		changed = changed || entryChanged
	}

	if r.status.IsTerminal() || len(r.entries) == 0 {
		return changed, nil
	}

	allTerminal := true
	allCanceled := true
	anyReceived := false
	for _, entry := range r.entries {
		if !entry.status.IsTerminal() {
			allTerminal = false
		}
		if entry.status != Canceled {
			allCanceled = false
		}
		if entry.status == Received || entry.status.IsTerminal() {
			anyReceived = true
		}
	}

	switch {
	case allTerminal && allCanceled:
		status, err := r.status.Cancel()
		if err != nil {
			return changed, err
		}
		r.status = status
		changed = true
	case allTerminal:
		status, err := r.status.Complete()
		if err != nil {
			return changed, err
		}
		r.status = status
		changed = true
	case anyReceived && r.status == Receiving:
		status, err := r.status.Receive()
		if err != nil {
			return changed, err
		}
		r.status = status
		changed = true
	}
	return changed, nil
}

// StampCompletedDates records the completion moment on every completed
// consignment that does not carry one yet. Existing dates are never
// overwritten.
func (r *Return) StampCompletedDates(now time.Time) error {
	if err := r.guard.Validate(ErrReturnIsNotConstructed); err != nil {
		return err
	}
	for _, entry := range r.entries {
		for _, consignment := range entry.consignments {
			if consignment.status == Completed && consignment.completedDate == nil {
				completed := now
				consignment.completedDate = &completed
			}
		}
	}
	return nil
}
