package order

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Format is the authoritative fulfillment format of an order item, resolved once
// from the catalog snapshot at creation time. It drives routing decisions for the
// lifetime of the order; consumers never re-derive it from other fields.
type Format string

const (
	// FormatPhysical items are shipped and participate in tracking auto-progression.
	FormatPhysical Format = "physical"

	// FormatDigital items are delivered immediately and never ship.
	FormatDigital Format = "digital"
)

// FormatFromString parses a fulfillment format from its string representation.
func FormatFromString(s string) (Format, error) {
	switch Format(s) {
	case FormatPhysical, FormatDigital:
		return Format(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("format", fmt.Errorf("%q is not a valid fulfillment format", s))
	}
}

// FulfillmentIntent distinguishes purchases from time-boxed rentals.
type FulfillmentIntent string

const (
	IntentPurchase FulfillmentIntent = "purchase"
	IntentRental   FulfillmentIntent = "rental"
)

// IntentFromString parses a fulfillment intent from its string representation.
func IntentFromString(s string) (FulfillmentIntent, error) {
	switch FulfillmentIntent(s) {
	case IntentPurchase, IntentRental:
		return FulfillmentIntent(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("fulfillmentIntent", fmt.Errorf("%q is not a valid fulfillment intent", s))
	}
}

// Default rental durations applied when the caller does not specify one.
const (
	defaultDigitalRentalDays  = 7
	defaultPhysicalRentalDays = 14
)

const hoursPerDay = 24

// BookSnapshot freezes the catalog's view of a book at the moment of purchase.
// Later catalog mutations must not retroactively affect historical orders.
type BookSnapshot struct {
	Title     string
	Author    string
	ImageURL  string
	Price     decimal.Decimal
	RentPrice decimal.Decimal
}

// OrderItem is a value object created once at order creation and never mutated
// thereafter. Unit price, format, and all dates are resolved at construction.
type OrderItem struct {
	bookID             string
	quantity           int
	unitPrice          decimal.Decimal
	intent             FulfillmentIntent
	format             Format
	rentalDurationDays int
	rentalStartAt      *time.Time
	rentalEndAt        *time.Time
	returnDueAt        *time.Time
	deliveryETA        time.Time
	snapshot           BookSnapshot
}

// NewOrderItem creates a fully-priced, dated order item.
//
// Pricing: rentals use the snapshot's rental price, falling back to the purchase
// price when no rental price exists; purchases use the purchase price.
//
// Dates: digital items deliver immediately; physical items deliver after
// deliveryLead. For rentals the window starts at delivery and the return is due
// rentalDurationDays later (defaulting to 7 days digital, 14 days physical).
func NewOrderItem(
	bookID string,
	snapshot BookSnapshot,
	format Format,
	quantity int,
	intent FulfillmentIntent,
	rentalDurationDays int,
	now time.Time,
	deliveryLead time.Duration,
) (OrderItem, error) {
	if bookID == "" {
		return OrderItem{}, errs.NewValueIsRequiredError("bookId")
	}
	if quantity < 1 {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	if rentalDurationDays < 0 {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause("rentalDurationDays",
			fmt.Errorf("%d is negative", rentalDurationDays))
	}
	if _, err := FormatFromString(string(format)); err != nil {
		return OrderItem{}, err
	}
	if _, err := IntentFromString(string(intent)); err != nil {
		return OrderItem{}, err
	}

	item := OrderItem{
		bookID:   bookID,
		quantity: quantity,
		intent:   intent,
		format:   format,
		snapshot: snapshot,
	}

	item.unitPrice = snapshot.Price
	if intent == IntentRental && snapshot.RentPrice.IsPositive() {
		item.unitPrice = snapshot.RentPrice
	}

	item.deliveryETA = now
	if format == FormatPhysical {
		item.deliveryETA = now.Add(deliveryLead)
	}

	if intent == IntentRental {
		days := rentalDurationDays
		if days == 0 {
			days = defaultDigitalRentalDays
			if format == FormatPhysical {
				days = defaultPhysicalRentalDays
			}
		}

		start := item.deliveryETA
		end := start.Add(time.Duration(days) * hoursPerDay * time.Hour)

		item.rentalDurationDays = days
		item.rentalStartAt = &start
		item.rentalEndAt = &end
		item.returnDueAt = &end
	}

	return item, nil
}

// RestoreOrderItem reconstructs an order item from persistence without
// recomputing prices or dates, which were frozen at creation.
func RestoreOrderItem(
	bookID string,
	snapshot BookSnapshot,
	format Format,
	quantity int,
	unitPrice decimal.Decimal,
	intent FulfillmentIntent,
	rentalDurationDays int,
	rentalStartAt, rentalEndAt, returnDueAt *time.Time,
	deliveryETA time.Time,
) (OrderItem, error) {
	if bookID == "" {
		return OrderItem{}, errs.NewValueIsRequiredError("bookId")
	}
	if quantity < 1 {
		return OrderItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}

	return OrderItem{
		bookID:             bookID,
		quantity:           quantity,
		unitPrice:          unitPrice,
		intent:             intent,
		format:             format,
		rentalDurationDays: rentalDurationDays,
		rentalStartAt:      rentalStartAt,
		rentalEndAt:        rentalEndAt,
		returnDueAt:        returnDueAt,
		deliveryETA:        deliveryETA,
		snapshot:           snapshot,
	}, nil
}

// BookID returns the catalog identifier of the ordered book.
func (i OrderItem) BookID() string {
	return i.bookID
}

// Quantity returns how many units were ordered.
func (i OrderItem) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit frozen at creation time.
func (i OrderItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns unit price multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Intent returns whether the item is a purchase or a rental.
func (i OrderItem) Intent() FulfillmentIntent {
	return i.intent
}

// Format returns the authoritative fulfillment format of the item.
func (i OrderItem) Format() Format {
	return i.format
}

// RentalDurationDays returns the rental window length in days; zero for purchases.
func (i OrderItem) RentalDurationDays() int {
	return i.rentalDurationDays
}

// RentalStartAt returns the rental window start; nil for purchases.
func (i OrderItem) RentalStartAt() *time.Time {
	return i.rentalStartAt
}

// RentalEndAt returns the rental window end; nil for purchases.
func (i OrderItem) RentalEndAt() *time.Time {
	return i.rentalEndAt
}

// ReturnDueAt returns when the item must be returned; nil for purchases.
func (i OrderItem) ReturnDueAt() *time.Time {
	return i.returnDueAt
}

// DeliveryETA returns the expected delivery time computed at creation.
func (i OrderItem) DeliveryETA() time.Time {
	return i.deliveryETA
}

// Snapshot returns the catalog snapshot taken at purchase time.
func (i OrderItem) Snapshot() BookSnapshot {
	return i.snapshot
}
