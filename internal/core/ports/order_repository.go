package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate as a conditional
	// write keyed on the version the aggregate was read at. A concurrent
	// modification surfaces as errs.ErrVersionIsInvalid; callers decide whether
	// to retry with a fresh read or treat the conflict as a no-op.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves the order owning the given tracking number.
	// Used by carrier webhook ingestion.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// GetAllDueForAutoProgress retrieves physical orders whose persisted ship or
	// deliver due time has elapsed and whose status can still move forward.
	// The scheduler sweep feeds these to the Transition Gateway.
	GetAllDueForAutoProgress(ctx context.Context, now time.Time) ([]*order.Order, error)
}
