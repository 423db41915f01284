package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCompleteReturnPackagesCommandIsNotConstructed = errors.New(
		"CompleteReturnPackagesCommand must be created via NewCompleteReturnPackagesCommand constructor",
	)
	ErrRmaIsRequired = errors.New("rma is required")
)

// CompleteReturnPackagesCommand represents a carrier report covering every
// package of a return: all parcels were delivered back to the warehouse, or
// all were canceled. The package status code is parsed up front.
type CompleteReturnPackagesCommand struct { //nolint:recvcheck //using for validation
	rma           string
	packageStatus returns.PackageStatus
	occurredAt    time.Time

	guard guard.ConstructorGuard
}

// NewCompleteReturnPackagesCommand creates a command that applies one package
// status to every parcel of a return.
func NewCompleteReturnPackagesCommand(rma, packageStatusCode string,
	occurredAt time.Time) (CompleteReturnPackagesCommand, error) {
	if rma == "" {
		return CompleteReturnPackagesCommand{}, ErrRmaIsRequired
	}

	status, err := returns.ParsePackageStatus(packageStatusCode)
	if err != nil {
		return CompleteReturnPackagesCommand{}, err
	}

	return CompleteReturnPackagesCommand{
		rma:           rma,
		packageStatus: status,
		occurredAt:    occurredAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteReturnPackagesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnPackagesCommandIsNotConstructed)
}

// Rma returns the return merchandise authorization.
func (c CompleteReturnPackagesCommand) Rma() string {
	return c.rma
}

// PackageStatus returns the parsed package status.
func (c CompleteReturnPackagesCommand) PackageStatus() returns.PackageStatus {
	return c.packageStatus
}

// OccurredAt returns the moment the carrier reported the status.
func (c CompleteReturnPackagesCommand) OccurredAt() time.Time {
	return c.occurredAt
}
