package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// ApplyCarrierUpdateCommandHandler ingests carrier webhook updates.
// Resolves the tracking number to an order, then delegates the actual change
// to the transition gateway so webhook updates obey the same invariants as
// admin and scheduler transitions.
type ApplyCarrierUpdateCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    *TransitionOrderStatusCommandHandler
}

// NewApplyCarrierUpdateCommandHandler creates a handler for carrier updates.
func NewApplyCarrierUpdateCommandHandler(
	uowFactory OrderUoWFactory,
	gateway *TransitionOrderStatusCommandHandler,
) ApplyCarrierUpdateCommandHandler {
	return ApplyCarrierUpdateCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle resolves the tracking number and applies the carrier's status update.
// An unknown tracking number surfaces as errs.ErrObjectNotFound.
func (h *ApplyCarrierUpdateCommandHandler) Handle(
	ctx context.Context, cmd ApplyCarrierUpdateCommand,
) (*order.Order, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	aggregate, err := uow.OrderRepository().GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return nil, false, err
	}

	transitionCmd, err := NewTransitionOrderStatusCommand(
		aggregate.ID(), cmd.Status(), cmd.Message(), cmd.ETA(), OriginCarrierWebhook,
	)
	if err != nil {
		return nil, false, err
	}

	return h.gateway.Handle(ctx, transitionCmd)
}
