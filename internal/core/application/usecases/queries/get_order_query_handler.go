package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database.
// Items, address, and history are stored as JSONB documents and decoded into
// the response types directly, without rebuilding the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. An unknown order id surfaces as errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			customer_email,
			status,
			total_amount,
			items,
			shipping_address,
			tracking_number,
			carrier,
			tracking_status,
			eta,
			history,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (GetOrderQueryResponse, error) {
	var (
		id             uuid.UUID
		orderNumber    string
		customerID     string
		customerEmail  string
		status         string
		totalAmount    decimal.Decimal
		itemsJSON      []byte
		addressJSON    []byte
		trackingNumber string
		carrier        string
		trackingStatus string
		eta            *time.Time
		historyJSON    []byte
		createdAt      time.Time
	)

	err := row.Scan(
		&id, &orderNumber, &customerID, &customerEmail, &status, &totalAmount,
		&itemsJSON, &addressJSON, &trackingNumber, &carrier, &trackingStatus,
		&eta, &historyJSON, &createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var items []OrderItemResponse
	if err = json.Unmarshal(itemsJSON, &items); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var address *AddressResponse
	if len(addressJSON) > 0 {
		if err = json.Unmarshal(addressJSON, &address); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	history := make([]TrackingEventResponse, 0)
	if len(historyJSON) > 0 {
		if err = json.Unmarshal(historyJSON, &history); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	return GetOrderQueryResponse{
		ID:            orderID,
		OrderNumber:   orderNumber,
		CustomerID:    customerID,
		CustomerEmail: customerEmail,
		Status:        status,
		TotalAmount:   totalAmount,
		Items:         items,
		Address:       address,
		Tracking: TrackingResponse{
			TrackingNumber: trackingNumber,
			Carrier:        carrier,
			Status:         trackingStatus,
			ETA:            eta,
			History:        history,
		},
		CreatedAt: createdAt,
	}, nil
}
