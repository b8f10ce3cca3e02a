package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

// sideEffectTimeout bounds the detached notification and invoicing calls made
// after a successful commit.
const sideEffectTimeout = 10 * time.Second

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves each requested book against the catalog, builds the priced aggregate
// with its tracking record, and persists both in one transaction.
//
// Catalog outages degrade gracefully: an unresolvable book becomes a zero-price
// placeholder line instead of failing checkout. After commit, the order
// confirmation notification and invoice rendering run detached; their failures
// are logged and never affect the committed order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogLookup
	notifier   ports.NotificationDispatcher
	invoicer   ports.InvoiceRenderer
	timings    order.Timings
	clock      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.CatalogLookup,
	notifier ports.NotificationDispatcher,
	invoicer ports.InvoiceRenderer,
	timings order.Timings,
) (CreateOrderCommandHandler, error) {
	if err := timings.Validate(); err != nil {
		return CreateOrderCommandHandler{}, err
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		notifier:   notifier,
		invoicer:   invoicer,
		timings:    timings,
		clock:      time.Now,
	}, nil
}

// Handle processes the order creation command and returns the created aggregate.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()

	items, err := h.resolveItems(ctx, cmd.Items(), now)
	if err != nil {
		return nil, err
	}

	var address *order.Address
	if input := cmd.Address(); input != nil {
		a, addrErr := order.NewAddress(input.Street, input.City, input.PostalCode, input.Country, input.ContactEmail)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &a
	}

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		cmd.CustomerEmail(),
		items,
		address,
		cmd.SuppliedTotal(),
		now,
		h.timings,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	go h.dispatchConfirmation(aggregate)
	go h.renderInvoice(aggregate)

	return aggregate, nil
}

// resolveItems looks every requested book up in the catalog and builds the
// immutable order items. A failed lookup yields a placeholder snapshot with the
// physical format, so the order still ships rather than silently skipping the
// tracking lifecycle.
func (h *CreateOrderCommandHandler) resolveItems(
	ctx context.Context, inputs []OrderItemInput, now time.Time,
) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(inputs))

	for _, input := range inputs {
		intent, err := order.IntentFromString(input.Intent)
		if err != nil {
			return nil, err
		}

		snapshot := order.BookSnapshot{
			Title: fmt.Sprintf("Book %s", input.BookID),
			Price: decimal.Zero,
		}
		format := order.FormatPhysical

		book, err := h.catalog.GetBook(ctx, input.BookID)
		if err != nil {
			slog.Warn("catalog lookup failed, using placeholder",
				"bookId", input.BookID, "error", err)
		} else {
			snapshot = order.BookSnapshot{
				Title:     book.Title,
				Author:    book.Author,
				ImageURL:  book.ImageURL,
				Price:     book.Price,
				RentPrice: book.RentPrice,
			}
			format = book.Format
		}

		item, err := order.NewOrderItem(
			input.BookID,
			snapshot,
			format,
			input.Quantity,
			intent,
			input.RentalDurationDays,
			now,
			h.timings.DeliveryLead,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (h *CreateOrderCommandHandler) dispatchConfirmation(aggregate *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	notification := ports.Notification{
		RecipientEmail: aggregate.CustomerEmail(),
		Kind:           "order_confirmation",
		Title:          fmt.Sprintf("Order %s confirmed", aggregate.OrderNumber()),
		Body: fmt.Sprintf("Your order %s for %s has been received.",
			aggregate.OrderNumber(), aggregate.TotalAmount().StringFixed(2)),
		CtaURL: fmt.Sprintf("/orders/%s", aggregate.ID()),
	}

	if err := h.notifier.Notify(ctx, notification); err != nil {
		slog.Warn("order confirmation notification failed",
			"orderId", aggregate.ID().String(), "error", err)
	}
}

func (h *CreateOrderCommandHandler) renderInvoice(aggregate *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if _, err := h.invoicer.RenderInvoice(ctx, aggregate); err != nil {
		slog.Warn("invoice rendering failed",
			"orderId", aggregate.ID().String(), "error", err)
	}
}
