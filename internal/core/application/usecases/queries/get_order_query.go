// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the store
// directly and return flat response types, bypassing the domain aggregates.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full tracking record.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// BookSnapshotResponse mirrors the catalog snapshot frozen on an order item.
type BookSnapshotResponse struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	RentPrice decimal.Decimal `json:"rentPrice"`
}

// OrderItemResponse is one line item of an order.
type OrderItemResponse struct {
	BookID             string               `json:"bookId"`
	Quantity           int                  `json:"quantity"`
	UnitPrice          decimal.Decimal      `json:"unitPrice"`
	Intent             string               `json:"intent"`
	Format             string               `json:"format"`
	RentalDurationDays int                  `json:"rentalDurationDays,omitempty"`
	RentalStartAt      *time.Time           `json:"rentalStartAt,omitempty"`
	RentalEndAt        *time.Time           `json:"rentalEndAt,omitempty"`
	ReturnDueAt        *time.Time           `json:"returnDueAt,omitempty"`
	DeliveryETA        time.Time            `json:"deliveryEta"`
	Snapshot           BookSnapshotResponse `json:"snapshot"`
}

// AddressResponse is the shipping destination of an order.
type AddressResponse struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	ContactEmail string `json:"contactEmail"`
}

// TrackingEventResponse is one entry in the shipment history.
type TrackingEventResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingResponse is the shipment tracking record of an order.
type TrackingResponse struct {
	TrackingNumber string                  `json:"trackingNumber"`
	Carrier        string                  `json:"carrier"`
	Status         string                  `json:"status"`
	ETA            *time.Time              `json:"eta,omitempty"`
	History        []TrackingEventResponse `json:"history"`
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerID    string
	CustomerEmail string
	Status        string
	TotalAmount   decimal.Decimal
	Items         []OrderItemResponse
	Address       *AddressResponse
	Tracking      TrackingResponse
	CreatedAt     time.Time
}
