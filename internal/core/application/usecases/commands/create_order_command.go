package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one raw line-item request: which book, how many, and
// whether it is bought or rented. Prices and formats are resolved against the
// catalog by the handler, not supplied by the caller.
type OrderItemInput struct {
	BookID             string
	Quantity           int
	Intent             string
	RentalDurationDays int
}

// AddressInput is the optional shipping destination supplied at checkout.
type AddressInput struct {
	Street       string
	City         string
	PostalCode   string
	Country      string
	ContactEmail string
}

// CreateOrderCommand represents a request to place a new order for an
// authenticated customer.
//
// suppliedTotal, when present, is cross-checked against the computed item sum
// during aggregate construction; it can never override it.
type CreateOrderCommand struct {
	customerID    string
	customerEmail string
	items         []OrderItemInput
	address       *AddressInput
	suppliedTotal *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates customer identity, a non-empty item list, and each line item's
// book id, quantity, and fulfillment intent.
func NewCreateOrderCommand(
	customerID, customerEmail string,
	items []OrderItemInput,
	address *AddressInput,
	suppliedTotal *decimal.Decimal,
) (CreateOrderCommand, error) {
	if customerID == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customerId")
	}
	if customerEmail == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customerEmail")
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if item.BookID == "" {
			return CreateOrderCommand{}, errs.NewValueIsRequiredError("items.bookId")
		}
		if item.Quantity < 1 {
			return CreateOrderCommand{}, errs.NewValueIsInvalidError("items.quantity")
		}
		if _, err := order.IntentFromString(item.Intent); err != nil {
			return CreateOrderCommand{}, err
		}
		if item.RentalDurationDays < 0 {
			return CreateOrderCommand{}, errs.NewValueIsInvalidError("items.rentalDurationDays")
		}
	}

	if address != nil && address.Street == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("shippingAddress.street")
	}

	return CreateOrderCommand{
		customerID:    customerID,
		customerEmail: customerEmail,
		items:         items,
		address:       address,
		suppliedTotal: suppliedTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identity of the ordering customer.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// CustomerEmail returns the customer's notification address.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Items returns the raw line-item requests.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// Address returns the optional shipping destination.
func (c CreateOrderCommand) Address() *AddressInput {
	return c.address
}

// SuppliedTotal returns the caller-supplied total for cross-checking, if any.
func (c CreateOrderCommand) SuppliedTotal() *decimal.Decimal {
	return c.suppliedTotal
}
