// Package consignmentrepo provides data transfer objects and mapping functions
// for consignment persistence. This package implements the repository pattern
// for the consignment domain aggregate, handling the conversion between domain
// entities and database representations.
package consignmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/consignment"
)

// ConsignmentDTO represents the database structure for persisting consignment
// aggregates. Indexed by order code for the rollup reads and by tracking ID
// for carrier status lookups.
type ConsignmentDTO struct {
	Code             string     `gorm:"type:varchar(64);primaryKey"`
	OrderCode        string     `gorm:"type:varchar(64);index"`
	Carrier          int        `gorm:"index"`
	TrackingID       string     `gorm:"type:varchar(64);uniqueIndex"`
	Status           int        `gorm:"index"`
	StatusText       string     `gorm:"type:varchar(255)"`
	ShippingDate     time.Time
	ExpectedDelivery *time.Time
	ReceiptDelivery  *time.Time
	Address          AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Entries          []EntryDTO `gorm:"foreignKey:ConsignmentCode;references:Code;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for consignment entities.
func (ConsignmentDTO) TableName() string {
	return "consignments"
}

// AddressDTO represents the embedded shipping address columns within the
// consignment table.
type AddressDTO struct {
	Name        string `gorm:"type:varchar(255)"`
	Street      string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(255)"`
	PostalCode  string `gorm:"type:varchar(32)"`
	CountryCode string `gorm:"type:varchar(8)"`
}

// EntryDTO represents one consignment line referencing an order line by its
// entry number.
type EntryDTO struct {
	ConsignmentCode            string `gorm:"type:varchar(64);primaryKey"`
	OrderEntryNumber           int    `gorm:"primaryKey"`
	Quantity                   int
	CanceledOrReturnedQuantity int
}

// TableName specifies the database table name for consignment line entities.
func (EntryDTO) TableName() string {
	return "consignment_entries"
}

// fromDomain converts a consignment domain aggregate to its database representation.
func fromDomain(aggregate *consignment.Consignment) ConsignmentDTO {
	entries := make([]EntryDTO, 0, len(aggregate.Entries()))
	for _, entry := range aggregate.Entries() {
		entries = append(entries, EntryDTO{
			ConsignmentCode:            aggregate.Code(),
			OrderEntryNumber:           entry.OrderEntryNumber(),
			Quantity:                   entry.Quantity(),
			CanceledOrReturnedQuantity: entry.CancelledOrReturnedQuantity(),
		})
	}

	address := aggregate.ShippingAddress()
	return ConsignmentDTO{
		Code:             aggregate.Code(),
		OrderCode:        aggregate.OrderCode(),
		Carrier:          int(aggregate.Carrier()),
		TrackingID:       aggregate.TrackingID(),
		Status:           int(aggregate.Status()),
		StatusText:       aggregate.StatusText(),
		ShippingDate:     aggregate.ShippingDate(),
		ExpectedDelivery: aggregate.ExpectedDelivery(),
		ReceiptDelivery:  aggregate.ReceiptDelivery(),
		Address: AddressDTO{
			Name:        address.Name,
			Street:      address.Street,
			City:        address.City,
			PostalCode:  address.PostalCode,
			CountryCode: address.CountryCode,
		},
		Entries: entries,
	}
}

// toDomain converts a database DTO to a consignment domain aggregate.
// Reconstructs the complete aggregate including all lines using RestoreConsignment.
func toDomain(dto ConsignmentDTO) (*consignment.Consignment, error) {
	entries := make([]*consignment.Entry, 0, len(dto.Entries))
	for _, entryDTO := range dto.Entries {
		entry, err := consignment.RestoreEntry(
			entryDTO.OrderEntryNumber,
			entryDTO.Quantity,
			entryDTO.CanceledOrReturnedQuantity,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return consignment.RestoreConsignment(
		dto.Code,
		dto.OrderCode,
		consignment.Carrier(dto.Carrier),
		dto.TrackingID,
		consignment.Status(dto.Status),
		dto.StatusText,
		consignment.ShippingAddress{
			Name:        dto.Address.Name,
			Street:      dto.Address.Street,
			City:        dto.Address.City,
			PostalCode:  dto.Address.PostalCode,
			CountryCode: dto.Address.CountryCode,
		},
		dto.ShippingDate,
		dto.ExpectedDelivery,
		dto.ReceiptDelivery,
		entries,
	)
}
