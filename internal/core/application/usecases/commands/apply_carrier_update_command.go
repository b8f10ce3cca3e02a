package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyCarrierUpdateCommandIsNotConstructed = errors.New(
	"ApplyCarrierUpdateCommand must be created via NewApplyCarrierUpdateCommand constructor",
)

// ApplyCarrierUpdateCommand represents an inbound carrier webhook payload:
// a status update addressed by tracking number rather than order id.
type ApplyCarrierUpdateCommand struct {
	trackingNumber string
	status         order.Status
	message        string
	eta            *time.Time

	guard guard.ConstructorGuard
}

// NewApplyCarrierUpdateCommand creates a command from a carrier status update.
// Tracking number and status are required; message and eta are optional.
func NewApplyCarrierUpdateCommand(
	trackingNumber string,
	status order.Status,
	message string,
	eta *time.Time,
) (ApplyCarrierUpdateCommand, error) {
	if trackingNumber == "" {
		return ApplyCarrierUpdateCommand{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if err := status.Validate(); err != nil {
		return ApplyCarrierUpdateCommand{}, err
	}

	return ApplyCarrierUpdateCommand{
		trackingNumber: trackingNumber,
		status:         status,
		message:        message,
		eta:            eta,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCarrierUpdateCommand) Validate() error {
	return c.guard.Validate(ErrApplyCarrierUpdateCommandIsNotConstructed)
}

// TrackingNumber returns the carrier's shipment reference.
func (c ApplyCarrierUpdateCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Status returns the carrier-reported status.
func (c ApplyCarrierUpdateCommand) Status() order.Status {
	return c.status
}

// Message returns the optional carrier message.
func (c ApplyCarrierUpdateCommand) Message() string {
	return c.message
}

// ETA returns the optional carrier delivery estimate.
func (c ApplyCarrierUpdateCommand) ETA() *time.Time {
	return c.eta
}
