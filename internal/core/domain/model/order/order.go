package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// defaultCarrier labels shipments progressed by the simulated carrier until a
// real carrier webhook takes over.
const defaultCarrier = "standard"

// Timings is the fulfillment timing policy applied at order creation:
// delivery lead time for physical items and the two simulated-carrier delays.
type Timings struct {
	// DeliveryLead is the fixed lead time added to physical delivery ETAs.
	DeliveryLead time.Duration

	// ShipAfter is how long after creation the simulated carrier marks a
	// physical order shipped.
	ShipAfter time.Duration

	// DeliverAfter is how long after creation the simulated carrier marks a
	// physical order delivered. Must exceed ShipAfter.
	DeliverAfter time.Duration
}

// DefaultTimings returns the reference deployment policy: three-day delivery
// lead, shipped after one minute, delivered after ninety seconds (1.5 x ship).
func DefaultTimings() Timings {
	return Timings{
		DeliveryLead: 72 * time.Hour,
		ShipAfter:    time.Minute,
		DeliverAfter: 90 * time.Second,
	}
}

// Validate checks the timing policy invariants.
func (t Timings) Validate() error {
	if t.DeliveryLead <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryLead", fmt.Errorf("%s is not positive", t.DeliveryLead))
	}
	if t.ShipAfter <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("shipAfter", fmt.Errorf("%s is not positive", t.ShipAfter))
	}
	if t.DeliverAfter <= t.ShipAfter {
		return errs.NewValueIsInvalidErrorWithCause("deliverAfter",
			fmt.Errorf("%s does not exceed shipAfter %s", t.DeliverAfter, t.ShipAfter))
	}
	return nil
}

// Order is the aggregate root of the fulfillment lifecycle. It owns an order
// from creation through a terminal state (delivered/cancelled) together with its
// embedded shipment tracking record.
//
// Order follows these invariants:
//   - Items are non-empty, priced at creation, and never mutated afterwards
//   - totalAmount is computed (or verified against a caller-supplied value) at
//     creation and never recomputed
//   - orderNumber and tracking number are generated exactly once
//   - status and tracking status always carry the same value
//   - every applied transition appends exactly one history entry
//
// Status changes go through Transition/AutoProgress only; callers outside the
// application's Transition Gateway must not mutate the aggregate.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	customerID      string
	customerEmail   string
	items           []OrderItem
	totalAmount     decimal.Decimal
	status          Status
	shippingAddress *Address
	tracking        ShippingTracking
	hasPhysicalItem bool
	createdAt       time.Time
	version         int

	isConstructed bool
}

// NewOrder creates a fully-priced order together with its tracking record, as
// one atomic unit.
//
// The total is the sum of item line totals. A non-nil suppliedTotal acts as a
// cross-check only: a mismatch against the computed sum is a validation error,
// never an override.
//
// Orders with at least one physical item start in processing with a delivery
// ETA and persisted ship/deliver due times for the simulated carrier.
// All-digital orders start in the digital sentinel status and are terminal for
// shipping purposes from the outset.
func NewOrder(
	id kernel.UUID,
	customerID, customerEmail string,
	items []OrderItem,
	shippingAddress *Address,
	suppliedTotal *decimal.Decimal,
	now time.Time,
	timings Timings,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, errs.NewValueIsRequiredError("customerId")
	}
	if customerEmail == "" {
		return nil, errs.NewValueIsRequiredError("customerEmail")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := timings.Validate(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	if suppliedTotal != nil && !suppliedTotal.Equal(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("supplied total %s does not match item sum %s", suppliedTotal, total))
	}

	hasPhysical := lo.SomeBy(items, func(item OrderItem) bool {
		return item.Format() == FormatPhysical
	})

	status := StatusDigital
	tracking := ShippingTracking{
		trackingNumber: kernel.NewTrackingNumber(),
		status:         StatusDigital,
	}

	if hasPhysical {
		status = StatusProcessing
		eta := now.Add(timings.DeliveryLead)
		shipDue := now.Add(timings.ShipAfter)
		deliverDue := now.Add(timings.DeliverAfter)

		tracking.carrier = defaultCarrier
		tracking.status = StatusProcessing
		tracking.eta = &eta
		tracking.shipDueAt = &shipDue
		tracking.deliverDueAt = &deliverDue
	}

	tracking.history = []TrackingEvent{{
		Status:    status,
		Message:   "Order created",
		Timestamp: now,
	}}

	orderItems := make([]OrderItem, len(items))
	copy(orderItems, items)

	return &Order{
		id:              id,
		orderNumber:     kernel.NewOrderNumber(),
		customerID:      customerID,
		customerEmail:   customerEmail,
		items:           orderItems,
		totalAmount:     total,
		status:          status,
		shippingAddress: shippingAddress,
		tracking:        tracking,
		hasPhysicalItem: hasPhysical,
		createdAt:       now,
		version:         1,
		isConstructed:   true,
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
// Numbers, prices, and dates are taken as stored; only structural invariants
// are re-checked.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID, customerEmail string,
	items []OrderItem,
	totalAmount decimal.Decimal,
	status Status,
	shippingAddress *Address,
	tracking ShippingTracking,
	createdAt time.Time,
	version int,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	hasPhysical := lo.SomeBy(items, func(item OrderItem) bool {
		return item.Format() == FormatPhysical
	})

	return &Order{
		id:              id,
		orderNumber:     orderNumber,
		customerID:      customerID,
		customerEmail:   customerEmail,
		items:           items,
		totalAmount:     totalAmount,
		status:          status,
		shippingAddress: shippingAddress,
		tracking:        tracking,
		hasPhysicalItem: hasPhysical,
		createdAt:       createdAt,
		version:         version,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order code generated at creation.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the identity of the ordering customer.
func (o *Order) CustomerID() string {
	return o.customerID
}

// CustomerEmail returns the customer's notification address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the order total frozen at creation.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// ShippingAddress returns the shipping destination, or nil for digital-only orders.
func (o *Order) ShippingAddress() *Address {
	return o.shippingAddress
}

// Tracking returns the embedded shipment tracking record.
func (o *Order) Tracking() ShippingTracking {
	return o.tracking
}

// HasPhysicalItem reports whether any item requires physical shipment.
func (o *Order) HasPhysicalItem() bool {
	return o.hasPhysicalItem
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency version the aggregate was read at.
// The repository's conditional update compares against it.
func (o *Order) Version() int {
	return o.version
}

// Transition applies a status change as one atomic unit: order status, tracking
// status, optional ETA, and exactly one history entry change together or not at
// all.
//
// A transition to the current status is an idempotent no-op: applied is false
// and nothing changes, which is what de-duplicates racing calls for the same
// target. The status vocabulary is permissive by design; custom admin or
// carrier statuses pass through verbatim to both status fields.
//
// On the legacy path where an order somehow reaches shipped without a tracking
// number, one is generated at that point; an existing tracking number is never
// regenerated.
func (o *Order) Transition(target Status, message string, eta *time.Time, now time.Time, origin string) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if err := target.Validate(); err != nil {
		return false, err
	}
	if origin == "" {
		return false, errs.NewValueIsRequiredError("origin")
	}

	if o.status == target {
		return false, nil
	}

	if target == StatusShipped && o.tracking.trackingNumber == "" {
		o.tracking.trackingNumber = kernel.NewTrackingNumber()
	}

	o.status = target
	o.tracking.status = target

	if eta != nil {
		o.tracking.eta = eta
	}

	if message == "" {
		message = fmt.Sprintf("Status changed to %s", target)
	}

	o.tracking.history = append(o.tracking.history, TrackingEvent{
		Status:    target,
		Message:   fmt.Sprintf("%s (via %s)", message, origin),
		Timestamp: now,
	})

	return true, nil
}

// AutoProgress applies a scheduler-originated transition. Scheduled transitions
// are advisory: they become a no-op for all-digital orders and whenever the
// order is already at or past the target (admin or webhook won the race), and
// they never force a regression.
func (o *Order) AutoProgress(target Status, eta *time.Time, now time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if !o.hasPhysicalItem {
		return false, nil
	}
	if !o.status.AllowsAutoProgressTo(target) {
		return false, nil
	}

	return o.Transition(target, "", eta, now, "scheduler")
}
