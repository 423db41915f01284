// Package http exposes the fulfillment engine over a REST API.
// It coordinates between HTTP handlers and application use cases: marketplace
// calls (order ingestion, cancellations, returns), warehouse shipment
// announcements and carrier webhooks all enter the system here.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server holds the command and query handlers behind the REST endpoints.
type Server struct {
	// Command handlers
	ingestOrderHandler            commands.IngestOrderCommandHandler
	confirmOrderHandler           commands.ConfirmOrderCommandHandler
	cancelOrderEntriesHandler     commands.CancelOrderEntriesCommandHandler
	shipConsignmentHandler        commands.ShipConsignmentCommandHandler
	updateCarrierStatusHandler    commands.UpdateCarrierStatusCommandHandler
	receiveReturnHandler          commands.ReceiveReturnCommandHandler
	completeReturnPackagesHandler commands.CompleteReturnPackagesCommandHandler

	// Query handlers
	getOrderHandler                queries.GetOrderQueryHandler
	getConsignmentsByStatusHandler queries.GetConsignmentsByStatusQueryHandler
	searchConsignmentsHandler      queries.SearchConsignmentsQueryHandler
	getReturnConsignmentHandler    queries.GetReturnConsignmentQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	ingestOrderHandler commands.IngestOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	cancelOrderEntriesHandler commands.CancelOrderEntriesCommandHandler,
	shipConsignmentHandler commands.ShipConsignmentCommandHandler,
	updateCarrierStatusHandler commands.UpdateCarrierStatusCommandHandler,
	receiveReturnHandler commands.ReceiveReturnCommandHandler,
	completeReturnPackagesHandler commands.CompleteReturnPackagesCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getConsignmentsByStatusHandler queries.GetConsignmentsByStatusQueryHandler,
	searchConsignmentsHandler queries.SearchConsignmentsQueryHandler,
	getReturnConsignmentHandler queries.GetReturnConsignmentQueryHandler,
) *Server {
	return &Server{
		ingestOrderHandler:             ingestOrderHandler,
		confirmOrderHandler:            confirmOrderHandler,
		cancelOrderEntriesHandler:      cancelOrderEntriesHandler,
		shipConsignmentHandler:         shipConsignmentHandler,
		updateCarrierStatusHandler:     updateCarrierStatusHandler,
		receiveReturnHandler:           receiveReturnHandler,
		completeReturnPackagesHandler:  completeReturnPackagesHandler,
		getOrderHandler:                getOrderHandler,
		getConsignmentsByStatusHandler: getConsignmentsByStatusHandler,
		searchConsignmentsHandler:      searchConsignmentsHandler,
		getReturnConsignmentHandler:    getReturnConsignmentHandler,
	}
}

// RegisterRoutes binds all REST endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.IngestOrder)
	api.GET("/orders/:code", s.GetOrder)
	api.POST("/orders/:code/confirm", s.ConfirmOrder)
	api.POST("/orders/:code/cancellations", s.CancelOrderEntries)

	api.POST("/consignments", s.ShipConsignment)
	api.GET("/consignments", s.ListConsignments)

	api.POST("/carriers/:carrier/events", s.UpdateCarrierStatus)

	api.POST("/returns", s.ReceiveReturn)
	api.POST("/returns/:rma/packages", s.CompleteReturnPackages)
	api.GET("/return-consignments/:code", s.GetReturnConsignment)

	e.GET("/health", s.Health)
}

// IngestOrder handles POST /api/v1/orders - acknowledges a marketplace order.
func (s *Server) IngestOrder(ctx echo.Context) error {
	var request IngestOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.IngestOrderLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, commands.IngestOrderLine{
			EntryNumber: line.EntryNumber,
			Quantity:    line.Quantity,
			Street:      line.Street,
			City:        line.City,
			PostalCode:  line.PostalCode,
			CountryCode: line.CountryCode,
		})
	}

	cmd, err := commands.NewIngestOrderCommand(
		request.OrderCode,
		request.CustomerName,
		request.CustomerEmail,
		request.CustomerPhone,
		lines,
	)
	if err != nil {
		return problem(ctx, err)
	}

	if err := s.ingestOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:code - retrieves one order with its lines.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewGetOrderQuery(ctx.Param("code"))
	if err != nil {
		return problem(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmOrder handles POST /api/v1/orders/:code/confirm - moves an
// acknowledged order into fulfillment.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	cmd, err := commands.NewConfirmOrderCommand(ctx.Param("code"))
	if err != nil {
		return problem(ctx, err)
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrderEntries handles POST /api/v1/orders/:code/cancellations - applies
// a batch of line cancellations. Lines are independent: accepted lines stay
// applied even when others are rejected, and the response reports each line.
func (s *Server) CancelOrderEntries(ctx echo.Context) error {
	var request CancelOrderEntriesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.CancellationLineInput, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, commands.CancellationLineInput{
			EntryNumber: line.EntryNumber,
			Quantity:    line.Quantity,
			Reason:      line.Reason,
			Notes:       line.Notes,
		})
	}

	cmd, err := commands.NewCancelOrderEntriesCommand(ctx.Param("code"), lines)
	if err != nil {
		return problem(ctx, err)
	}

	result, err := s.cancelOrderEntriesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	response := CancelOrderEntriesResponse{OrderCode: result.OrderCode}
	for _, line := range result.Lines {
		lineResponse := CancellationLineResponse{
			EntryNumber: line.EntryNumber,
			Accepted:    line.Err == nil,
		}
		if line.Err != nil {
			lineResponse.Error = line.Err.Error()
		}
		response.Lines = append(response.Lines, lineResponse)
	}

	status := http.StatusOK
	if result.HasRejections() {
		status = http.StatusMultiStatus
	}
	return ctx.JSON(status, response)
}

// ShipConsignment handles POST /api/v1/consignments - records a warehouse
// shipment announcement.
func (s *Server) ShipConsignment(ctx echo.Context) error {
	var request ShipConsignmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.ConsignmentLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		lines = append(lines, commands.ConsignmentLine{
			OrderEntryNumber: line.OrderEntryNumber,
			Quantity:         line.Quantity,
		})
	}

	shippingDate := request.ShippingDate
	if shippingDate.IsZero() {
		shippingDate = time.Now()
	}

	cmd, err := commands.NewShipConsignmentCommand(
		request.ConsignmentCode,
		request.OrderCode,
		request.Carrier,
		request.TrackingID,
		consignment.ShippingAddress{
			Name:        request.Address.Name,
			Street:      request.Address.Street,
			City:        request.Address.City,
			PostalCode:  request.Address.PostalCode,
			CountryCode: request.Address.CountryCode,
		},
		shippingDate,
		request.ExpectedDelivery,
		lines,
	)
	if err != nil {
		return problem(ctx, err)
	}

	if err := s.shipConsignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ListConsignments handles GET /api/v1/consignments - lists consignments
// either by exact status or by a search term matching code, tracking ID or
// order code.
func (s *Server) ListConsignments(ctx echo.Context) error {
	if term := ctx.QueryParam("search"); term != "" {
		query, err := queries.NewSearchConsignmentsQuery(term)
		if err != nil {
			return problem(ctx, err)
		}

		response, err := s.searchConsignmentsHandler.Handle(ctx.Request().Context(), query)
		if err != nil {
			return problem(ctx, err)
		}
		return ctx.JSON(http.StatusOK, response)
	}

	status, err := consignment.ParseStatus(ctx.QueryParam("status"))
	if err != nil {
		return problem(ctx, err)
	}

	query, err := queries.NewGetConsignmentsByStatusQuery(status)
	if err != nil {
		return problem(ctx, err)
	}

	response, err := s.getConsignmentsByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateCarrierStatus handles POST /api/v1/carriers/:carrier/events - the
// webhook carriers call with tracking events. Unknown carriers and unknown
// status codes are rejected, never defaulted.
func (s *Server) UpdateCarrierStatus(ctx echo.Context) error {
	var request CarrierEventRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	occurredAt := request.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	cmd, err := commands.NewUpdateCarrierStatusCommand(
		ctx.Param("carrier"),
		request.TrackingID,
		request.StatusCode,
		request.StatusText,
		occurredAt,
	)
	if err != nil {
		return problem(ctx, err)
	}

	if err := s.updateCarrierStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveReturn handles POST /api/v1/returns - announces a marketplace return.
// Responds with the RMA assigned to the new return.
func (s *Server) ReceiveReturn(ctx echo.Context) error {
	var request ReceiveReturnRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.ReturnLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		allocations := make([]commands.ReturnAllocation, 0, len(line.Allocations))
		for _, allocation := range line.Allocations {
			allocations = append(allocations, commands.ReturnAllocation{
				ConsignmentCode: allocation.ConsignmentCode,
				Quantity:        allocation.Quantity,
				TrackingIDs:     allocation.TrackingIDs,
			})
		}
		lines = append(lines, commands.ReturnLine{
			OrderEntryNumber: line.OrderEntryNumber,
			Quantity:         line.Quantity,
			Reason:           line.Reason,
			Allocations:      allocations,
		})
	}

	initiationDate := request.InitiationDate
	if initiationDate.IsZero() {
		initiationDate = time.Now()
	}

	cmd, err := commands.NewReceiveReturnCommand(
		request.MarketplaceReturnCode,
		request.OrderCode,
		request.CustomerName,
		request.CustomerEmail,
		initiationDate,
		lines,
	)
	if err != nil {
		return problem(ctx, err)
	}

	rma, err := s.receiveReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ReceiveReturnResponse{Rma: rma})
}

// CompleteReturnPackages handles POST /api/v1/returns/:rma/packages - applies
// one package status to every parcel of a return and reconciles the graph.
func (s *Server) CompleteReturnPackages(ctx echo.Context) error {
	var request CompleteReturnPackagesRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	occurredAt := request.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	cmd, err := commands.NewCompleteReturnPackagesCommand(ctx.Param("rma"), request.Status, occurredAt)
	if err != nil {
		return problem(ctx, err)
	}

	if err := s.completeReturnPackagesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReturnConsignment handles GET /api/v1/return-consignments/:code -
// retrieves one return consignment with its owning return's identifiers.
func (s *Server) GetReturnConsignment(ctx echo.Context) error {
	query, err := queries.NewGetReturnConsignmentQuery(ctx.Param("code"))
	if err != nil {
		return problem(ctx, err)
	}

	response, err := s.getReturnConsignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// problem translates a domain error into an HTTP error response.
// Not-found errors map to 404, validation and guard violations to 400/409,
// everything else to 500.
func problem(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrQuantityExceeded):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
