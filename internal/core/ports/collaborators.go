package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// BookSummary is the catalog's view of a book at lookup time: prices and the
// authoritative fulfillment format plus the display fields snapshotted onto
// order items.
type BookSummary struct {
	Title     string
	Author    string
	ImageURL  string
	Price     decimal.Decimal
	RentPrice decimal.Decimal
	Format    order.Format
}

// CatalogLookup resolves book identifiers against the external catalog service.
// Lookup failures on the order-creation path are absorbed with safe defaults;
// they must never block checkout.
type CatalogLookup interface {
	// GetBook returns the catalog summary for a book.
	// Unknown identifiers surface as errs.ErrObjectNotFound.
	GetBook(ctx context.Context, bookID string) (BookSummary, error)
}

// Notification is a fully-formed notification request. The core decides whether
// and what to send; delivery mechanics (email/SMS) belong to the dispatcher.
type Notification struct {
	RecipientEmail string
	Kind           string
	Title          string
	Body           string
	CtaURL         string
}

// NotificationDispatcher hands notifications to the external dispatcher service.
// Callers treat dispatch as fire-and-forget: failures are logged and dropped,
// never surfaced as operation failures.
type NotificationDispatcher interface {
	Notify(ctx context.Context, notification Notification) error
}

// InvoiceRenderer produces a printable invoice document for an order snapshot.
// Invoked only as a side effect of order creation, outside the state machine.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, aggregate *order.Order) ([]byte, error)
}
