package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// maxTransitionAttempts bounds optimistic-lock retries for admin and webhook
// transitions. Each retry re-reads the aggregate, so a request that lost a race
// re-evaluates against the winner's state instead of overwriting it.
const maxTransitionAttempts = 3

// TransitionOrderStatusCommandHandler is the single gateway for order status
// changes. Admin requests, carrier webhooks, and the scheduler all converge
// here, so the transition invariants live in exactly one place.
//
// Scheduler-originated commands route through the aggregate's advisory
// AutoProgress path and silently no-op when the order has moved on. A shipped
// transition without an ETA gets the planner's default transit estimate.
// After any committed transition the customer is notified, unless the order
// is all-digital.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
	planner    services.FulfillmentPlanner
	clock      func() time.Time
}

// NewTransitionOrderStatusCommandHandler creates the transition gateway handler.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
	planner services.FulfillmentPlanner,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		planner:    planner,
		clock:      time.Now,
	}
}

// Handle processes the status change command.
// Returns the updated aggregate and whether the transition was applied; a
// same-status request is a successful no-op with applied false.
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderStatusCommand,
) (*order.Order, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	var lastErr error
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		aggregate, applied, err := h.attempt(ctx, cmd)
		if err == nil {
			if applied {
				go h.notifyStatusChange(aggregate, cmd.Target())
			}
			return aggregate, applied, nil
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, false, err
		}
		lastErr = err
	}

	return nil, false, lastErr
}

// attempt runs one read-transition-write cycle in its own transaction.
func (h *TransitionOrderStatusCommandHandler) attempt(
	ctx context.Context, cmd TransitionOrderStatusCommand,
) (*order.Order, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, err
	}

	eta := cmd.ETA()
	if eta == nil && cmd.Target() == order.StatusShipped {
		defaultETA := h.planner.DefaultShippedETA(h.clock())
		eta = &defaultETA
	}

	var applied bool
	if cmd.Origin() == OriginScheduler {
		applied, err = aggregate.AutoProgress(cmd.Target(), eta, h.clock())
	} else {
		applied, err = aggregate.Transition(cmd.Target(), cmd.Message(), eta, h.clock(), cmd.Origin())
	}
	if err != nil {
		return nil, false, err
	}

	if !applied {
		return aggregate, false, nil
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return aggregate, true, nil
}

// notifyStatusChange sends the customer-facing update after an applied
// transition. Milestone statuses get dedicated wording; everything else,
// including cancellations and carrier-specific statuses, falls back to a
// generic status update. All-digital orders never generate shipping
// notifications.
func (h *TransitionOrderStatusCommandHandler) notifyStatusChange(aggregate *order.Order, target order.Status) {
	if !aggregate.HasPhysicalItem() {
		return
	}

	var kind, title, body string
	switch target {
	case order.StatusShipped:
		kind = "order_shipped"
		title = fmt.Sprintf("Order %s has shipped", aggregate.OrderNumber())
		body = fmt.Sprintf("Your order is on its way. Track it with number %s.",
			aggregate.Tracking().TrackingNumber())
	case order.StatusDelivered:
		kind = "order_delivered"
		title = fmt.Sprintf("Order %s was delivered", aggregate.OrderNumber())
		body = "Your order has arrived. Enjoy your books!"
	case order.StatusCancelled:
		kind = "order_cancelled"
		title = fmt.Sprintf("Order %s was cancelled", aggregate.OrderNumber())
		body = "Your order has been cancelled. Contact support if this is unexpected."
	default:
		kind = "order_status_update"
		title = fmt.Sprintf("Order %s update", aggregate.OrderNumber())
		body = fmt.Sprintf("Your order status changed to %q.", target.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	err := h.notifier.Notify(ctx, ports.Notification{
		RecipientEmail: aggregate.CustomerEmail(),
		Kind:           kind,
		Title:          title,
		Body:           body,
		CtaURL:         fmt.Sprintf("/orders/%s", aggregate.ID()),
	})
	if err != nil {
		slog.Warn("status change notification failed",
			"orderId", aggregate.ID().String(), "status", target.String(), "error", err)
	}
}
