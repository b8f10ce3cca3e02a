package order

import (
	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order and of its shipment tracking
// record. Order status and tracking status are kept in lockstep: every transition
// writes the same value to both.
//
// The vocabulary is deliberately open: beyond the well-known statuses below, any
// non-empty string set by an admin or a carrier webhook (e.g. "returned",
// "held_at_customs") is passed through verbatim. Only the well-known statuses
// participate in scheduler-driven auto-progression.
//
// Auto-progression order:
//
//	processing ──> shipped ──> delivered
//
// digital, delivered, and cancelled are terminal for auto-progression, as is any
// custom status.
type Status string

const (
	// StatusProcessing is the initial status of an order containing at least one
	// physical item. Orders in this status await simulated or real carrier progress.
	StatusProcessing Status = "processing"

	// StatusDigital is the sentinel status for all-digital orders. It is terminal
	// for shipping purposes: never auto-progressed, never emailed a shipping update.
	StatusDigital Status = "digital"

	// StatusShipped indicates the shipment has left the warehouse.
	StatusShipped Status = "shipped"

	// StatusDelivered indicates the shipment reached the customer. Terminal.
	StatusDelivered Status = "delivered"

	// StatusCancelled indicates the order was cancelled. Terminal; orders are
	// never deleted.
	StatusCancelled Status = "cancelled"
)

// autoProgressRank orders the statuses the scheduler is allowed to walk through.
// Statuses outside this map never auto-progress, which covers the digital
// sentinel, cancellation, and every custom carrier status.
func autoProgressRank() map[Status]int {
	return map[Status]int{
		StatusProcessing: 1,
		StatusShipped:    2,
		StatusDelivered:  3,
	}
}

// Validate checks that the status carries a value. The vocabulary itself is open
// by design, so any non-empty string is acceptable.
func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return nil
}

// String returns the raw status value.
func (s Status) String() string {
	return string(s)
}

// TerminalForShipping reports whether the status ends the shipping lifecycle.
// Used to decide whether scheduled transitions and shipping notifications still
// make sense for an order.
func (s Status) TerminalForShipping() bool {
	switch s {
	case StatusDigital, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// AllowsAutoProgressTo reports whether the scheduler may advance an order from
// this status to target. Both statuses must be ranked and the move must be
// strictly forward; anything else (already at or past the target, cancelled,
// digital, custom statuses) makes the scheduled transition a no-op.
func (s Status) AllowsAutoProgressTo(target Status) bool {
	ranks := autoProgressRank()

	current, ok := ranks[s]
	if !ok {
		return false
	}

	wanted, ok := ranks[target]
	if !ok {
		return false
	}

	return current < wanted
}
