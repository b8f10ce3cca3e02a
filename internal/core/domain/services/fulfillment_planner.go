package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// FulfillmentPlanner is a domain service that decides what the simulated
// carrier should do next with an order, based on the due times persisted at
// creation and the order's current status.
//
// The planner only proposes; the decision whether the move is still legal is
// re-checked inside the aggregate at apply time, so a proposal that lost a race
// against an admin or a carrier webhook degrades to a no-op.
type FulfillmentPlanner struct {
	timings order.Timings
}

// NewFulfillmentPlanner creates a planner for the given timing policy.
func NewFulfillmentPlanner(timings order.Timings) (FulfillmentPlanner, error) {
	if err := timings.Validate(); err != nil {
		return FulfillmentPlanner{}, err
	}
	return FulfillmentPlanner{timings: timings}, nil
}

// Timings returns the timing policy the planner was created with.
func (p FulfillmentPlanner) Timings() order.Timings {
	return p.timings
}

// NextTarget returns the status the scheduler should move the order to, if any.
// The deliver deadline dominates the ship deadline, so an order that slept past
// both (e.g. across a process restart) jumps straight to delivered.
func (p FulfillmentPlanner) NextTarget(o *order.Order, now time.Time) (order.Status, bool) {
	if !o.HasPhysicalItem() {
		return "", false
	}

	tracking := o.Tracking()

	if due := tracking.DeliverDueAt(); due != nil && !now.Before(*due) &&
		o.Status().AllowsAutoProgressTo(order.StatusDelivered) {
		return order.StatusDelivered, true
	}

	if due := tracking.ShipDueAt(); due != nil && !now.Before(*due) &&
		o.Status().AllowsAutoProgressTo(order.StatusShipped) {
		return order.StatusShipped, true
	}

	return "", false
}

// DefaultShippedETA returns the delivery estimate attached to a shipped
// transition when the caller supplies none: the remaining simulated transit
// time from now.
func (p FulfillmentPlanner) DefaultShippedETA(now time.Time) time.Time {
	return now.Add(p.timings.DeliverAfter - p.timings.ShipAfter)
}
