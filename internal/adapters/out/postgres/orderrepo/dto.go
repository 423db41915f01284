// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The marketplace order code is the primary key; entries live in their own
// table keyed by (order_code, entry_number).
type OrderDTO struct {
	Code          string `gorm:"type:varchar(64);primaryKey"`
	Status        int    `gorm:"index"`
	CustomerName  string `gorm:"type:varchar(255)"`
	CustomerEmail string `gorm:"type:varchar(255)"`
	CustomerPhone string `gorm:"type:varchar(64)"`
	Created       time.Time
	Modified      time.Time
	Entries       []EntryDTO `gorm:"foreignKey:OrderCode;references:Code;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// EntryDTO represents one order line. The cumulative counter column follows
// the domain name so the read-side queries can select it directly.
type EntryDTO struct {
	OrderCode                  string `gorm:"type:varchar(64);primaryKey"`
	EntryNumber                int    `gorm:"primaryKey"`
	Quantity                   int
	CanceledOrReturnedQuantity int
	Reason                     int
	Notes                      string  `gorm:"type:text"`
	AddressStreet              *string `gorm:"type:varchar(255)"`
	AddressCity                *string `gorm:"type:varchar(255)"`
	AddressPostalCode          *string `gorm:"type:varchar(32)"`
	AddressCountryCode         *string `gorm:"type:varchar(8)"`
}

// TableName specifies the database table name for order line entities.
func (EntryDTO) TableName() string {
	return "order_entries"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the order header and all lines, including each line's optional
// delivery address as nullable columns.
func fromDomain(aggregate *order.Order) OrderDTO {
	entries := make([]EntryDTO, 0, len(aggregate.Entries()))
	for _, entry := range aggregate.Entries() {
		dto := EntryDTO{
			OrderCode:                  aggregate.Code(),
			EntryNumber:                entry.EntryNumber(),
			Quantity:                   entry.Quantity(),
			CanceledOrReturnedQuantity: entry.CanceledOrReturnedQuantity(),
			Reason:                     int(entry.Reason()),
			Notes:                      entry.Notes(),
		}
		if addr := entry.DeliveryAddress(); addr != nil {
			dto.AddressStreet = &addr.Street
			dto.AddressCity = &addr.City
			dto.AddressPostalCode = &addr.PostalCode
			dto.AddressCountryCode = &addr.CountryCode
		}
		entries = append(entries, dto)
	}

	return OrderDTO{
		Code:          aggregate.Code(),
		Status:        int(aggregate.Status()),
		CustomerName:  aggregate.Customer().Name,
		CustomerEmail: aggregate.Customer().Email,
		CustomerPhone: aggregate.Customer().Phone,
		Created:       aggregate.Created(),
		Modified:      aggregate.Modified(),
		Entries:       entries,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including all lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	entries := make([]*order.Entry, 0, len(dto.Entries))
	for _, entryDTO := range dto.Entries {
		var address *order.Address
		if entryDTO.AddressStreet != nil {
			address = &order.Address{
				Street:      *entryDTO.AddressStreet,
				City:        derefOrEmpty(entryDTO.AddressCity),
				PostalCode:  derefOrEmpty(entryDTO.AddressPostalCode),
				CountryCode: derefOrEmpty(entryDTO.AddressCountryCode),
			}
		}

		entry, err := order.RestoreEntry(
			entryDTO.EntryNumber,
			entryDTO.Quantity,
			entryDTO.CanceledOrReturnedQuantity,
			order.CancellationReason(entryDTO.Reason),
			entryDTO.Notes,
			address,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return order.RestoreOrder(
		dto.Code,
		order.Status(dto.Status),
		order.Contact{
			Name:  dto.CustomerName,
			Email: dto.CustomerEmail,
			Phone: dto.CustomerPhone,
		},
		dto.Created,
		dto.Modified,
		entries,
	)
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
