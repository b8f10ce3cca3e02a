package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCustomerOrdersQueryHandler lists a customer's orders, newest first.
// Returns flat summaries; the full tracking record is a separate query.
type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerOrdersQueryHandler creates a handler for customer order listings.
func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

// Handle executes the query. A customer without orders gets an empty slice,
// not an error.
func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context, query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetCustomerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			total_amount,
			jsonb_array_length(items),
			tracking_number,
			eta,
			created_at
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_at DESC
	`, query.CustomerID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id             uuid.UUID
			orderNumber    string
			status         string
			totalAmount    decimal.Decimal
			itemCount      int
			trackingNumber string
			eta            *time.Time
			createdAt      time.Time
		)

		err = rows.Scan(&id, &orderNumber, &status, &totalAmount,
			&itemCount, &trackingNumber, &eta, &createdAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		orders = append(orders, GetCustomerOrdersQueryResponse{
			ID:             orderID,
			OrderNumber:    orderNumber,
			Status:         status,
			TotalAmount:    totalAmount,
			ItemCount:      itemCount,
			TrackingNumber: trackingNumber,
			ETA:            eta,
			CreatedAt:      createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
