// Package http exposes the fulfillment use cases over a REST API.
// It coordinates between HTTP handlers and application use cases; all domain
// decisions stay behind the command and query handlers.
package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Customer identity and credential headers.
const (
	HeaderCustomerID    = "X-Customer-Id"
	HeaderCustomerEmail = "X-Customer-Email"
	HeaderAdminKey      = "X-Admin-Key"
	HeaderCarrierSecret = "X-Carrier-Secret"
)

// Server handles HTTP requests for the fulfillment service.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	transitionHandler    commands.TransitionOrderStatusCommandHandler
	carrierUpdateHandler commands.ApplyCarrierUpdateCommandHandler

	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler

	adminAPIKey          string
	carrierWebhookSecret string
}

// NewServer creates an HTTP server wired to the given handlers.
// An empty adminAPIKey or carrierWebhookSecret disables the respective check,
// intended for local development only.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	carrierUpdateHandler commands.ApplyCarrierUpdateCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	adminAPIKey string,
	carrierWebhookSecret string,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionHandler:        transitionHandler,
		carrierUpdateHandler:     carrierUpdateHandler,
		getOrderHandler:          getOrderHandler,
		getCustomerOrdersHandler: getCustomerOrdersHandler,
		adminAPIKey:              adminAPIKey,
		carrierWebhookSecret:     carrierWebhookSecret,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderID", s.GetOrder)
	v1.POST("/orders/:orderID/status", s.TransitionOrderStatus)
	v1.GET("/customers/:customerID/orders", s.GetCustomerOrders)
	v1.POST("/webhooks/carrier", s.CarrierWebhook)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
// The authenticated customer identity arrives in the X-Customer-Id and
// X-Customer-Email headers.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID := ctx.Request().Header.Get(HeaderCustomerID)
	customerEmail := ctx.Request().Header.Get(HeaderCustomerEmail)

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	items := make([]commands.OrderItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, commands.OrderItemInput{
			BookID:             item.BookID,
			Quantity:           item.Quantity,
			Intent:             item.Intent,
			RentalDurationDays: item.RentalDurationDays,
		})
	}

	var address *commands.AddressInput
	if request.ShippingAddress != nil {
		address = &commands.AddressInput{
			Street:       request.ShippingAddress.Street,
			City:         request.ShippingAddress.City,
			PostalCode:   request.ShippingAddress.PostalCode,
			Country:      request.ShippingAddress.Country,
			ContactEmail: request.ShippingAddress.ContactEmail,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, customerEmail, items, address, request.TotalAmount)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, fromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	model, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromQueryResponse(model))
}

// GetCustomerOrders handles GET /api/v1/customers/:customerID/orders.
// The authenticated identity in X-Customer-Id must match the path; a caller
// cannot list another customer's orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	customerID := ctx.Param("customerID")
	if ctx.Request().Header.Get(HeaderCustomerID) != customerID {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Customer identity does not match the requested listing",
		})
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(orders))
	for _, summary := range orders {
		response = append(response, OrderSummaryResponse{
			ID:             summary.ID.String(),
			OrderNumber:    summary.OrderNumber,
			Status:         summary.Status,
			TotalAmount:    summary.TotalAmount,
			ItemCount:      summary.ItemCount,
			TrackingNumber: summary.TrackingNumber,
			ETA:            summary.ETA,
			CreatedAt:      summary.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrderStatus handles POST /api/v1/orders/:orderID/status.
// Requires the admin key; the check runs before any request parsing so
// unauthorized callers learn nothing about order existence.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	if !s.authorized(ctx.Request().Header.Get(HeaderAdminKey), s.adminAPIKey) {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid admin key",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var request TransitionRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(
		orderID, order.Status(request.Status), request.Message, request.ETA, commands.OriginAdminAPI)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, applied, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Applied: applied,
		Order:   fromAggregate(updated),
	})
}

// CarrierWebhook handles POST /api/v1/webhooks/carrier.
// The shared-secret check runs before the tracking number lookup, so an
// invalid secret cannot probe which tracking numbers exist.
func (s *Server) CarrierWebhook(ctx echo.Context) error {
	if !s.authorized(ctx.Request().Header.Get(HeaderCarrierSecret), s.carrierWebhookSecret) {
		return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid webhook secret",
		})
	}

	var request CarrierUpdateRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewApplyCarrierUpdateCommand(
		request.TrackingNumber, order.Status(request.Status), request.Message, request.ETA)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, applied, err := s.carrierUpdateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		Applied: applied,
		Order:   fromAggregate(updated),
	})
}

// authorized compares a presented credential against the expected one in
// constant time. An empty expected credential disables the check.
func (s *Server) authorized(presented, expected string) bool {
	if expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}

// writeError maps application errors onto HTTP status codes with the uniform
// error body.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
