package order

import (
	"time"
)

// TrackingEvent is a single entry of the shipment audit trail.
// History entries are never edited or removed once appended.
type TrackingEvent struct {
	Status    Status
	Message   string
	Timestamp time.Time
}

// ShippingTracking is the shipment sub-record embedded in an order. It exists
// from order creation and lives exactly as long as the order.
//
// The tracking number is generated exactly once, at creation, and is immutable
// thereafter; regenerating it on a later status update would break the
// one-tracking-number-per-order invariant.
type ShippingTracking struct {
	trackingNumber string
	carrier        string
	status         Status
	eta            *time.Time
	history        []TrackingEvent
	shipDueAt      *time.Time
	deliverDueAt   *time.Time
}

// RestoreShippingTracking reconstructs a tracking record from persistence.
func RestoreShippingTracking(
	trackingNumber, carrier string,
	status Status,
	eta *time.Time,
	history []TrackingEvent,
	shipDueAt, deliverDueAt *time.Time,
) ShippingTracking {
	return ShippingTracking{
		trackingNumber: trackingNumber,
		carrier:        carrier,
		status:         status,
		eta:            eta,
		history:        history,
		shipDueAt:      shipDueAt,
		deliverDueAt:   deliverDueAt,
	}
}

// TrackingNumber returns the immutable shipment tracking number.
func (t ShippingTracking) TrackingNumber() string {
	return t.trackingNumber
}

// Carrier returns the carrier handling the shipment.
func (t ShippingTracking) Carrier() string {
	return t.carrier
}

// Status returns the tracking status, kept in lockstep with the order status.
func (t ShippingTracking) Status() Status {
	return t.status
}

// ETA returns the estimated delivery time, if known.
func (t ShippingTracking) ETA() *time.Time {
	return t.eta
}

// History returns a copy of the append-only audit trail, oldest first.
func (t ShippingTracking) History() []TrackingEvent {
	history := make([]TrackingEvent, len(t.history))
	copy(history, t.history)
	return history
}

// ShipDueAt returns when the simulated carrier should mark the order shipped.
// Nil for all-digital orders. Persisted so pending auto-progressions survive
// process restarts.
func (t ShippingTracking) ShipDueAt() *time.Time {
	return t.shipDueAt
}

// DeliverDueAt returns when the simulated carrier should mark the order
// delivered. Nil for all-digital orders.
func (t ShippingTracking) DeliverDueAt() *time.Time {
	return t.deliverDueAt
}
