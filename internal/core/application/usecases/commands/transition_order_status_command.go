package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// Origins identify who asked for a status change. Every transition records its
// origin in the tracking history, and scheduler-originated transitions are
// subject to the advisory auto-progression rules.
const (
	OriginAdminAPI       = "admin-api"
	OriginCarrierWebhook = "carrier-webhook"
	OriginScheduler      = "scheduler"
)

// TransitionOrderStatusCommand represents a request to move an order to a new
// status. All status changes, whatever their source, are expressed as this
// command and flow through TransitionOrderStatusCommandHandler.
type TransitionOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	message string
	eta     *time.Time
	origin  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to change an order's status.
// Message and eta are optional; target and origin are not.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	message string,
	eta *time.Time,
	origin string,
) (TransitionOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return TransitionOrderStatusCommand{}, err
	}
	if origin == "" {
		return TransitionOrderStatusCommand{}, errs.NewValueIsRequiredError("origin")
	}

	return TransitionOrderStatusCommand{
		orderID: orderID,
		target:  target,
		message: message,
		eta:     eta,
		origin:  origin,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status to move the order to.
func (c TransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

// Message returns the optional history message.
func (c TransitionOrderStatusCommand) Message() string {
	return c.message
}

// ETA returns the optional delivery estimate accompanying the change.
func (c TransitionOrderStatusCommand) ETA() *time.Time {
	return c.eta
}

// Origin returns who requested the change.
func (c TransitionOrderStatusCommand) Origin() string {
	return c.origin
}
