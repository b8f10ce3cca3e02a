package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/services"
)

// AutoProgressOrdersCommandHandler runs the simulated-carrier sweep.
// Due times are persisted on the order at creation, so a sweep after a process
// restart still finds everything that came due while the service was down.
//
// Each due order is advanced independently through the transition gateway with
// the scheduler origin. Per-order failures are logged and skipped; a version
// conflict means someone else already moved the order, which is the desired
// outcome, so the sweep never retries.
type AutoProgressOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    *TransitionOrderStatusCommandHandler
	planner    services.FulfillmentPlanner
	clock      func() time.Time
}

// NewAutoProgressOrdersCommandHandler creates a handler for scheduler sweeps.
func NewAutoProgressOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	gateway *TransitionOrderStatusCommandHandler,
	planner services.FulfillmentPlanner,
) AutoProgressOrdersCommandHandler {
	return AutoProgressOrdersCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		planner:    planner,
		clock:      time.Now,
	}
}

// Handle processes one sweep over all due orders.
func (h *AutoProgressOrdersCommandHandler) Handle(ctx context.Context, cmd AutoProgressOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock()

	uow := h.uowFactory.Create()
	dueOrders, err := uow.OrderRepository().GetAllDueForAutoProgress(ctx, now)
	if err != nil {
		return err
	}

	for _, aggregate := range dueOrders {
		target, ok := h.planner.NextTarget(aggregate, now)
		if !ok {
			continue
		}

		transitionCmd, err := NewTransitionOrderStatusCommand(
			aggregate.ID(), target, "", nil, OriginScheduler,
		)
		if err != nil {
			slog.Error("auto-progress command construction failed",
				"orderId", aggregate.ID().String(), "error", err)
			continue
		}

		if _, _, err = h.gateway.Handle(ctx, transitionCmd); err != nil {
			slog.Warn("auto-progress transition failed",
				"orderId", aggregate.ID().String(), "target", target.String(), "error", err)
		}
	}

	return nil
}
