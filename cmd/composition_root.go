package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/marketplace"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.MarketplaceNotifier
	dhlTracker ports.CarrierTracker
	dpdTracker ports.CarrierTracker
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   marketplace.NewHTTPNotifier(configs.MarketplaceAPIHost),
		dhlTracker: carrier.NewDHLTracker(configs.DHLTrackingAPIHost),
		dpdTracker: carrier.NewDPDTracker(configs.DPDTrackingAPIHost),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateIngestOrderCommandHandler() commands.IngestOrderCommandHandler {
	return commands.NewIngestOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderEntriesCommandHandler() commands.CancelOrderEntriesCommandHandler {
	return commands.NewCancelOrderEntriesCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateShipConsignmentCommandHandler() commands.ShipConsignmentCommandHandler {
	return commands.NewShipConsignmentCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateCarrierStatusCommandHandler() commands.UpdateCarrierStatusCommandHandler {
	return commands.NewUpdateCarrierStatusCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReceiveReturnCommandHandler() commands.ReceiveReturnCommandHandler {
	return commands.NewReceiveReturnCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCompleteReturnPackagesCommandHandler() commands.CompleteReturnPackagesCommandHandler {
	return commands.NewCompleteReturnPackagesCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsignmentsByStatusQueryHandler() queries.GetConsignmentsByStatusQueryHandler {
	return queries.NewGetConsignmentsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchConsignmentsQueryHandler() queries.SearchConsignmentsQueryHandler {
	return queries.NewSearchConsignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReturnConsignmentQueryHandler() queries.GetReturnConsignmentQueryHandler {
	return queries.NewGetReturnConsignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.dhlTracker,
		c.dpdTracker,
		&c.uowFactory,
		c.CreateUpdateCarrierStatusCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}
