package http

import "time"

// ErrorResponse is the common error payload of all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IngestOrderRequest is the marketplace order acknowledgement payload.
type IngestOrderRequest struct {
	OrderCode     string                   `json:"orderCode"`
	CustomerName  string                   `json:"customerName"`
	CustomerEmail string                   `json:"customerEmail"`
	CustomerPhone string                   `json:"customerPhone"`
	Lines         []IngestOrderLineRequest `json:"lines"`
}

// IngestOrderLineRequest is one order line; the address fields are optional
// and only used when the line ships to its own address.
type IngestOrderLineRequest struct {
	EntryNumber int    `json:"entryNumber"`
	Quantity    int    `json:"quantity"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// CancelOrderEntriesRequest is a batch of line cancellations for one order.
type CancelOrderEntriesRequest struct {
	Lines []CancellationLineRequest `json:"lines"`
}

// CancellationLineRequest cancels a quantity on one order line.
type CancellationLineRequest struct {
	EntryNumber int    `json:"entryNumber"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes,omitempty"`
}

// CancelOrderEntriesResponse reports the per-line outcomes of a batch
// cancellation.
type CancelOrderEntriesResponse struct {
	OrderCode string                     `json:"orderCode"`
	Lines     []CancellationLineResponse `json:"lines"`
}

// CancellationLineResponse is the outcome of one cancellation line.
type CancellationLineResponse struct {
	EntryNumber int    `json:"entryNumber"`
	Accepted    bool   `json:"accepted"`
	Error       string `json:"error,omitempty"`
}

// ShipConsignmentRequest is the warehouse shipment announcement payload.
type ShipConsignmentRequest struct {
	ConsignmentCode  string                   `json:"consignmentCode"`
	OrderCode        string                   `json:"orderCode"`
	Carrier          string                   `json:"carrier"`
	TrackingID       string                   `json:"trackingId"`
	Address          ShippingAddressRequest   `json:"address"`
	ShippingDate     time.Time                `json:"shippingDate"`
	ExpectedDelivery *time.Time               `json:"expectedDelivery,omitempty"`
	Lines            []ConsignmentLineRequest `json:"lines"`
}

// ShippingAddressRequest is the destination address of a consignment.
type ShippingAddressRequest struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// ConsignmentLineRequest is one shipped order line.
type ConsignmentLineRequest struct {
	OrderEntryNumber int `json:"orderEntryNumber"`
	Quantity         int `json:"quantity"`
}

// CarrierEventRequest is one tracking event reported by a carrier.
type CarrierEventRequest struct {
	TrackingID string    `json:"trackingId"`
	StatusCode string    `json:"statusCode"`
	StatusText string    `json:"statusText,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ReceiveReturnRequest is the marketplace return announcement payload.
type ReceiveReturnRequest struct {
	MarketplaceReturnCode string              `json:"marketplaceReturnCode"`
	OrderCode             string              `json:"orderCode"`
	CustomerName          string              `json:"customerName"`
	CustomerEmail         string              `json:"customerEmail"`
	InitiationDate        time.Time           `json:"initiationDate"`
	Lines                 []ReturnLineRequest `json:"lines"`
}

// ReturnLineRequest is one returned order line with its consignment
// allocations. The allocation quantities must add up to the line quantity.
type ReturnLineRequest struct {
	OrderEntryNumber int                       `json:"orderEntryNumber"`
	Quantity         int                       `json:"quantity"`
	Reason           string                    `json:"reason"`
	Allocations      []ReturnAllocationRequest `json:"allocations"`
}

// ReturnAllocationRequest allocates part of a returned line to the consignment
// it originally shipped in.
type ReturnAllocationRequest struct {
	ConsignmentCode string   `json:"consignmentCode"`
	Quantity        int      `json:"quantity"`
	TrackingIDs     []string `json:"trackingIds"`
}

// ReceiveReturnResponse carries the RMA assigned to the new return.
type ReceiveReturnResponse struct {
	Rma string `json:"rma"`
}

// CompleteReturnPackagesRequest applies one package status to every parcel of
// a return.
type CompleteReturnPackagesRequest struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}
