package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the order placement request body. The customer
// identity arrives in headers, not in the body.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress *AddressRequest    `json:"shippingAddress,omitempty"`
	TotalAmount     *decimal.Decimal   `json:"totalAmount,omitempty"`
}

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	BookID             string `json:"bookId"`
	Quantity           int    `json:"quantity"`
	Intent             string `json:"intent"`
	RentalDurationDays int    `json:"rentalDurationDays,omitempty"`
}

// AddressRequest is the optional shipping destination.
type AddressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// TransitionRequest is the admin status change request body.
type TransitionRequest struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	ETA     *time.Time `json:"eta,omitempty"`
}

// CarrierUpdateRequest is the carrier webhook payload.
type CarrierUpdateRequest struct {
	TrackingNumber string     `json:"trackingNumber"`
	Status         string     `json:"status"`
	Message        string     `json:"message,omitempty"`
	ETA            *time.Time `json:"eta,omitempty"`
}

// OrderResponse is the full order representation returned by write endpoints
// and the single-order read endpoint.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerID    string              `json:"customerId"`
	CustomerEmail string              `json:"customerEmail"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Items         []OrderItemResponse `json:"items"`
	Address       *AddressRequest     `json:"shippingAddress,omitempty"`
	Tracking      TrackingResponse    `json:"tracking"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderItemResponse is one line item of an order response.
type OrderItemResponse struct {
	BookID             string          `json:"bookId"`
	Title              string          `json:"title"`
	Author             string          `json:"author,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
	Intent             string          `json:"intent"`
	Format             string          `json:"format"`
	RentalDurationDays int             `json:"rentalDurationDays,omitempty"`
	RentalStartAt      *time.Time      `json:"rentalStartAt,omitempty"`
	RentalEndAt        *time.Time      `json:"rentalEndAt,omitempty"`
	ReturnDueAt        *time.Time      `json:"returnDueAt,omitempty"`
	DeliveryETA        time.Time       `json:"deliveryEta"`
}

// TrackingResponse is the shipment record of an order response.
type TrackingResponse struct {
	TrackingNumber string                  `json:"trackingNumber"`
	Carrier        string                  `json:"carrier,omitempty"`
	Status         string                  `json:"status"`
	ETA            *time.Time              `json:"eta,omitempty"`
	History        []TrackingEventResponse `json:"history"`
}

// TrackingEventResponse is one shipment history entry.
type TrackingEventResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TransitionResponse wraps an order after a status change request.
// Applied is false for idempotent same-status requests.
type TransitionResponse struct {
	Applied bool          `json:"applied"`
	Order   OrderResponse `json:"order"`
}

// OrderSummaryResponse is one entry of a customer's order listing.
type OrderSummaryResponse struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	Status         string          `json:"status"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ItemCount      int             `json:"itemCount"`
	TrackingNumber string          `json:"trackingNumber"`
	ETA            *time.Time      `json:"eta,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// fromAggregate maps a domain order onto the response representation.
func fromAggregate(aggregate *order.Order) OrderResponse {
	items := aggregate.Items()
	itemResponses := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		snapshot := item.Snapshot()
		itemResponses = append(itemResponses, OrderItemResponse{
			BookID:             item.BookID(),
			Title:              snapshot.Title,
			Author:             snapshot.Author,
			ImageURL:           snapshot.ImageURL,
			Quantity:           item.Quantity(),
			UnitPrice:          item.UnitPrice(),
			LineTotal:          item.LineTotal(),
			Intent:             string(item.Intent()),
			Format:             string(item.Format()),
			RentalDurationDays: item.RentalDurationDays(),
			RentalStartAt:      item.RentalStartAt(),
			RentalEndAt:        item.RentalEndAt(),
			ReturnDueAt:        item.ReturnDueAt(),
			DeliveryETA:        item.DeliveryETA(),
		})
	}

	var address *AddressRequest
	if a := aggregate.ShippingAddress(); a != nil {
		address = &AddressRequest{
			Street:       a.Street(),
			City:         a.City(),
			PostalCode:   a.PostalCode(),
			Country:      a.Country(),
			ContactEmail: a.ContactEmail(),
		}
	}

	tracking := aggregate.Tracking()
	history := tracking.History()
	events := make([]TrackingEventResponse, 0, len(history))
	for _, event := range history {
		events = append(events, TrackingEventResponse{
			Status:    event.Status.String(),
			Message:   event.Message,
			Timestamp: event.Timestamp,
		})
	}

	return OrderResponse{
		ID:            aggregate.ID().String(),
		OrderNumber:   aggregate.OrderNumber(),
		CustomerID:    aggregate.CustomerID(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        aggregate.Status().String(),
		TotalAmount:   aggregate.TotalAmount(),
		Items:         itemResponses,
		Address:       address,
		Tracking: TrackingResponse{
			TrackingNumber: tracking.TrackingNumber(),
			Carrier:        tracking.Carrier(),
			Status:         tracking.Status().String(),
			ETA:            tracking.ETA(),
			History:        events,
		},
		CreatedAt: aggregate.CreatedAt(),
	}
}

// fromQueryResponse maps the read model onto the response representation.
func fromQueryResponse(model queries.GetOrderQueryResponse) OrderResponse {
	itemResponses := make([]OrderItemResponse, 0, len(model.Items))
	for _, item := range model.Items {
		itemResponses = append(itemResponses, OrderItemResponse{
			BookID:             item.BookID,
			Title:              item.Snapshot.Title,
			Author:             item.Snapshot.Author,
			ImageURL:           item.Snapshot.ImageURL,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			LineTotal:          item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			Intent:             item.Intent,
			Format:             item.Format,
			RentalDurationDays: item.RentalDurationDays,
			RentalStartAt:      item.RentalStartAt,
			RentalEndAt:        item.RentalEndAt,
			ReturnDueAt:        item.ReturnDueAt,
			DeliveryETA:        item.DeliveryETA,
		})
	}

	var address *AddressRequest
	if model.Address != nil {
		address = &AddressRequest{
			Street:       model.Address.Street,
			City:         model.Address.City,
			PostalCode:   model.Address.PostalCode,
			Country:      model.Address.Country,
			ContactEmail: model.Address.ContactEmail,
		}
	}

	events := make([]TrackingEventResponse, 0, len(model.Tracking.History))
	for _, event := range model.Tracking.History {
		events = append(events, TrackingEventResponse{
			Status:    event.Status,
			Message:   event.Message,
			Timestamp: event.Timestamp,
		})
	}

	return OrderResponse{
		ID:            model.ID.String(),
		OrderNumber:   model.OrderNumber,
		CustomerID:    model.CustomerID,
		CustomerEmail: model.CustomerEmail,
		Status:        model.Status,
		TotalAmount:   model.TotalAmount,
		Items:         itemResponses,
		Address:       address,
		Tracking: TrackingResponse{
			TrackingNumber: model.Tracking.TrackingNumber,
			Carrier:        model.Tracking.Carrier,
			Status:         model.Tracking.Status,
			ETA:            model.Tracking.ETA,
			History:        events,
		},
		CreatedAt: model.CreatedAt,
	}
}
