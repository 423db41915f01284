// Package returnrepo provides data transfer objects and mapping functions for
// return persistence. A return aggregate is stored as a four table graph:
// the return header, its entries, the return consignments announced per entry
// and the tracked packages inside each return consignment.
package returnrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/returns"
)

// ReturnDTO represents the database structure for persisting return aggregates.
// The RMA is the primary key; the marketplace return code and order code are
// indexed for the marketplace-facing lookups.
type ReturnDTO struct {
	Rma                   string `gorm:"type:varchar(64);primaryKey"`
	MarketplaceReturnCode string `gorm:"type:varchar(64);index"`
	OrderCode             string `gorm:"type:varchar(64);index"`
	Status                int    `gorm:"index"`
	InitiationDate        time.Time
	CustomerName          string     `gorm:"type:varchar(255)"`
	CustomerEmail         string     `gorm:"type:varchar(255)"`
	Entries               []EntryDTO `gorm:"foreignKey:Rma;references:Rma;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return entities.
func (ReturnDTO) TableName() string {
	return "returns"
}

// EntryDTO represents one returned order line within a return.
type EntryDTO struct {
	Rma                        string `gorm:"type:varchar(64);primaryKey"`
	OrderEntryNumber           int    `gorm:"primaryKey"`
	Quantity                   int
	CanceledOrReturnedQuantity int
	Reason                     string `gorm:"type:varchar(255)"`
	Status                     int
	Consignments               []ConsignmentDTO `gorm:"foreignKey:Rma,OrderEntryNumber;references:Rma,OrderEntryNumber;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return line entities.
func (EntryDTO) TableName() string {
	return "return_entries"
}

// ConsignmentDTO represents one return consignment. The consignment code is
// globally unique, so it serves as the primary key while the (rma,
// order_entry_number) pair links back to the owning return line.
type ConsignmentDTO struct {
	ConsignmentCode   string `gorm:"type:varchar(64);primaryKey"`
	Rma               string `gorm:"type:varchar(64);index"`
	OrderEntryNumber  int
	Quantity          int
	CanceledQuantity  int
	CompletedQuantity int
	Status            int
	CompletedDate     *time.Time
	Packages          []PackageDTO `gorm:"foreignKey:ConsignmentCode;references:ConsignmentCode;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return consignment entities.
func (ConsignmentDTO) TableName() string {
	return "return_consignments"
}

// PackageDTO represents one tracked package traveling back inside a return
// consignment.
type PackageDTO struct {
	ConsignmentCode string `gorm:"type:varchar(64);primaryKey"`
	TrackingID      string `gorm:"type:varchar(64);primaryKey"`
	Status          int
	ReceiptDelivery *time.Time
}

// TableName specifies the database table name for return package entities.
func (PackageDTO) TableName() string {
	return "return_packages"
}

// fromDomain converts a return domain aggregate to its database representation,
// flattening the whole graph into the four DTO levels.
func fromDomain(aggregate *returns.Return) ReturnDTO {
	entries := make([]EntryDTO, 0, len(aggregate.Entries()))
	for _, entry := range aggregate.Entries() {
		consignments := make([]ConsignmentDTO, 0, len(entry.Consignments()))
		for _, cons := range entry.Consignments() {
			packages := make([]PackageDTO, 0, len(cons.Packages()))
			for _, pkg := range cons.Packages() {
				packages = append(packages, PackageDTO{
					ConsignmentCode: cons.ConsignmentCode(),
					TrackingID:      pkg.TrackingID(),
					Status:          int(pkg.Status()),
					ReceiptDelivery: pkg.ReceiptDelivery(),
				})
			}

			consignments = append(consignments, ConsignmentDTO{
				ConsignmentCode:   cons.ConsignmentCode(),
				Rma:               aggregate.Rma(),
				OrderEntryNumber:  entry.OrderEntryNumber(),
				Quantity:          cons.Quantity(),
				CanceledQuantity:  cons.CanceledQuantity(),
				CompletedQuantity: cons.CompletedQuantity(),
				Status:            int(cons.Status()),
				CompletedDate:     cons.CompletedDate(),
				Packages:          packages,
			})
		}

		entries = append(entries, EntryDTO{
			Rma:                        aggregate.Rma(),
			OrderEntryNumber:           entry.OrderEntryNumber(),
			Quantity:                   entry.Quantity(),
			CanceledOrReturnedQuantity: entry.CanceledOrReturnedQuantity(),
			Reason:                     entry.Reason(),
			Status:                     int(entry.Status()),
			Consignments:               consignments,
		})
	}

	return ReturnDTO{
		Rma:                   aggregate.Rma(),
		MarketplaceReturnCode: aggregate.MarketplaceReturnCode(),
		OrderCode:             aggregate.OrderCode(),
		Status:                int(aggregate.Status()),
		InitiationDate:        aggregate.InitiationDate(),
		CustomerName:          aggregate.Customer().Name,
		CustomerEmail:         aggregate.Customer().Email,
		Entries:               entries,
	}
}

// toDomain converts a database DTO to a return domain aggregate.
// Reconstructs the complete graph bottom-up using the Restore constructors.
func toDomain(dto ReturnDTO) (*returns.Return, error) {
	entries := make([]*returns.Entry, 0, len(dto.Entries))
	for _, entryDTO := range dto.Entries {
		consignments := make([]*returns.Consignment, 0, len(entryDTO.Consignments))
		for _, consDTO := range entryDTO.Consignments {
			packages := make([]*returns.Package, 0, len(consDTO.Packages))
			for _, pkgDTO := range consDTO.Packages {
				pkg, err := returns.RestorePackage(
					pkgDTO.TrackingID,
					returns.PackageStatus(pkgDTO.Status),
					pkgDTO.ReceiptDelivery,
				)
				if err != nil {
					return nil, err
				}
				packages = append(packages, pkg)
			}

			cons, err := returns.RestoreConsignment(
				consDTO.ConsignmentCode,
				consDTO.Quantity,
				consDTO.CanceledQuantity,
				consDTO.CompletedQuantity,
				returns.Status(consDTO.Status),
				consDTO.CompletedDate,
				packages,
			)
			if err != nil {
				return nil, err
			}
			consignments = append(consignments, cons)
		}

		entry, err := returns.RestoreEntry(
			entryDTO.OrderEntryNumber,
			entryDTO.Quantity,
			entryDTO.CanceledOrReturnedQuantity,
			entryDTO.Reason,
			returns.Status(entryDTO.Status),
			consignments,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return returns.RestoreReturn(
		dto.Rma,
		dto.MarketplaceReturnCode,
		dto.OrderCode,
		returns.Status(dto.Status),
		returns.Customer{
			Name:  dto.CustomerName,
			Email: dto.CustomerEmail,
		},
		dto.InitiationDate,
		entries,
	)
}
