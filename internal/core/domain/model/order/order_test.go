package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTimings() order.Timings {
	return order.Timings{
		DeliveryLead: 72 * time.Hour,
		ShipAfter:    time.Minute,
		DeliverAfter: 90 * time.Second,
	}
}

func physicalItem(t *testing.T, now time.Time, price float64, qty int) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem("book-physical", testSnapshot(price, 0), order.FormatPhysical, qty, order.IntentPurchase, 0, now, testLeadTime)
	require.NoError(t, err)
	return item
}

func digitalItem(t *testing.T, now time.Time, price float64, qty int) order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem("book-digital", testSnapshot(price, 0), order.FormatDigital, qty, order.IntentPurchase, 0, now, testLeadTime)
	require.NoError(t, err)
	return item
}

func newMixedOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	agg, err := order.NewOrder(
		kernel.NewUUID(),
		"customer-1",
		"reader@example.com",
		[]order.OrderItem{physicalItem(t, now, 10, 2), digitalItem(t, now, 5, 1)},
		nil,
		nil,
		now,
		testTimings(),
	)
	require.NoError(t, err)
	return agg
}

func newDigitalOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	agg, err := order.NewOrder(
		kernel.NewUUID(),
		"customer-1",
		"reader@example.com",
		[]order.OrderItem{digitalItem(t, now, 5, 1)},
		nil,
		nil,
		now,
		testTimings(),
	)
	require.NoError(t, err)
	return agg
}

func TestNewOrder_MixedPhysicalAndDigital(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	agg := newMixedOrder(t, now)

	assert.True(t, agg.TotalAmount().Equal(decimal.NewFromInt(25)), "2x10 + 1x5")
	assert.True(t, agg.HasPhysicalItem())
	assert.Equal(t, order.StatusProcessing, agg.Status())
	assert.Equal(t, order.StatusProcessing, agg.Tracking().Status())
	assert.Len(t, agg.Tracking().History(), 1)

	require.NotNil(t, agg.Tracking().ETA())
	assert.Equal(t, now.Add(testTimings().DeliveryLead), *agg.Tracking().ETA())
	require.NotNil(t, agg.Tracking().ShipDueAt())
	assert.Equal(t, now.Add(testTimings().ShipAfter), *agg.Tracking().ShipDueAt())
	require.NotNil(t, agg.Tracking().DeliverDueAt())
	assert.Equal(t, now.Add(testTimings().DeliverAfter), *agg.Tracking().DeliverDueAt())
}

func TestNewOrder_AllDigital(t *testing.T) {
	now := time.Now()
	agg := newDigitalOrder(t, now)

	assert.False(t, agg.HasPhysicalItem())
	assert.Equal(t, order.StatusDigital, agg.Status())
	assert.Equal(t, order.StatusDigital, agg.Tracking().Status())
	assert.Nil(t, agg.Tracking().ShipDueAt())
	assert.Nil(t, agg.Tracking().DeliverDueAt())
	assert.Nil(t, agg.Tracking().ETA())
	assert.Len(t, agg.Tracking().History(), 1)
}

func TestNewOrder_Validation(t *testing.T) {
	now := time.Now()

	t.Run("empty items are rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "reader@example.com", nil, nil, nil, now, testTimings())
		require.Error(t, err)
	})

	t.Run("customer id is required", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", "reader@example.com",
			[]order.OrderItem{digitalItem(t, now, 5, 1)}, nil, nil, now, testTimings())
		require.Error(t, err)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "customer-1", "reader@example.com",
			[]order.OrderItem{digitalItem(t, now, 5, 1)}, nil, nil, now, testTimings())
		require.Error(t, err)
	})
}

func TestNewOrder_SuppliedTotal(t *testing.T) {
	now := time.Now()
	items := []order.OrderItem{physicalItem(t, now, 10, 2), digitalItem(t, now, 5, 1)}

	t.Run("matching supplied total is accepted", func(t *testing.T) {
		supplied := decimal.NewFromInt(25)
		agg, err := order.NewOrder(kernel.NewUUID(), "customer-1", "reader@example.com", items, nil, &supplied, now, testTimings())
		require.NoError(t, err)
		assert.True(t, agg.TotalAmount().Equal(supplied))
	})

	t.Run("mismatching supplied total is rejected", func(t *testing.T) {
		supplied := decimal.NewFromFloat(0.01)
		_, err := order.NewOrder(kernel.NewUUID(), "customer-1", "reader@example.com", items, nil, &supplied, now, testTimings())
		require.Error(t, err)
	})
}

func TestNewOrder_GeneratedNumbers(t *testing.T) {
	now := time.Now()
	agg := newMixedOrder(t, now)

	assert.NotEmpty(t, agg.OrderNumber())
	assert.NotEmpty(t, agg.Tracking().TrackingNumber())

	other := newMixedOrder(t, now)
	assert.NotEqual(t, agg.OrderNumber(), other.OrderNumber())
	assert.NotEqual(t, agg.Tracking().TrackingNumber(), other.Tracking().TrackingNumber())
}

func TestOrder_Transition(t *testing.T) {
	now := time.Now()

	t.Run("applies status, tracking status, and one history entry atomically", func(t *testing.T) {
		agg := newMixedOrder(t, now)
		trackingNumber := agg.Tracking().TrackingNumber()

		eta := now.Add(30 * time.Second)
		applied, err := agg.Transition(order.StatusShipped, "Package left warehouse", &eta, now, "carrier-webhook")
		require.NoError(t, err)
		assert.True(t, applied)

		assert.Equal(t, order.StatusShipped, agg.Status())
		assert.Equal(t, order.StatusShipped, agg.Tracking().Status())
		assert.Equal(t, trackingNumber, agg.Tracking().TrackingNumber(), "tracking number must never change")
		require.NotNil(t, agg.Tracking().ETA())
		assert.Equal(t, eta, *agg.Tracking().ETA())

		history := agg.Tracking().History()
		require.Len(t, history, 2)
		assert.Equal(t, order.StatusShipped, history[1].Status)
		assert.Contains(t, history[1].Message, "Package left warehouse")
		assert.Contains(t, history[1].Message, "carrier-webhook")
	})

	t.Run("same-target transition is a no-op", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		applied, err := agg.Transition(order.StatusShipped, "", nil, now, "admin-api")
		require.NoError(t, err)
		require.True(t, applied)

		applied, err = agg.Transition(order.StatusShipped, "", nil, now, "admin-api")
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Len(t, agg.Tracking().History(), 2, "no duplicate history entry")
	})

	t.Run("history grows by exactly one per applied transition", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		for i, target := range []order.Status{order.StatusShipped, order.StatusDelivered, order.Status("returned")} {
			applied, err := agg.Transition(target, "", nil, now, "admin-api")
			require.NoError(t, err)
			require.True(t, applied)
			assert.Len(t, agg.Tracking().History(), i+2)
		}
	})

	t.Run("custom statuses pass through verbatim", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		applied, err := agg.Transition(order.Status("held_at_customs"), "Customs inspection", nil, now, "carrier-webhook")
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, order.Status("held_at_customs"), agg.Status())
		assert.Equal(t, order.Status("held_at_customs"), agg.Tracking().Status())
	})

	t.Run("empty target is rejected", func(t *testing.T) {
		agg := newMixedOrder(t, now)
		_, err := agg.Transition(order.Status(""), "", nil, now, "admin-api")
		require.Error(t, err)
	})

	t.Run("origin is required", func(t *testing.T) {
		agg := newMixedOrder(t, now)
		_, err := agg.Transition(order.StatusShipped, "", nil, now, "")
		require.Error(t, err)
	})

	t.Run("unconstructed order is rejected", func(t *testing.T) {
		var agg order.Order
		_, err := agg.Transition(order.StatusShipped, "", nil, now, "admin-api")
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AutoProgress(t *testing.T) {
	now := time.Now()

	t.Run("advances physical orders forward", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		applied, err := agg.AutoProgress(order.StatusShipped, nil, now)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, order.StatusShipped, agg.Status())

		applied, err = agg.AutoProgress(order.StatusDelivered, nil, now)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, order.StatusDelivered, agg.Status())
	})

	t.Run("never touches all-digital orders", func(t *testing.T) {
		agg := newDigitalOrder(t, now)

		applied, err := agg.AutoProgress(order.StatusShipped, nil, now)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, order.StatusDigital, agg.Status())
		assert.Len(t, agg.Tracking().History(), 1)
	})

	t.Run("is a no-op once the order is cancelled", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		applied, err := agg.Transition(order.StatusCancelled, "Customer request", nil, now, "admin-api")
		require.NoError(t, err)
		require.True(t, applied)
		historyLen := len(agg.Tracking().History())

		applied, err = agg.AutoProgress(order.StatusShipped, nil, now)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, order.StatusCancelled, agg.Status())
		assert.Len(t, agg.Tracking().History(), historyLen)
	})

	t.Run("is a no-op once the order is past the target", func(t *testing.T) {
		agg := newMixedOrder(t, now)

		_, err := agg.Transition(order.StatusDelivered, "", nil, now, "admin-api")
		require.NoError(t, err)

		applied, err := agg.AutoProgress(order.StatusShipped, nil, now)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, order.StatusDelivered, agg.Status())
	})
}

func TestOrder_TrackingNumberLegacyFallback(t *testing.T) {
	now := time.Now()
	agg := newMixedOrder(t, now)

	// Simulate a legacy record that was persisted without a tracking number.
	restored, err := order.RestoreOrder(
		agg.ID(),
		agg.OrderNumber(),
		agg.CustomerID(),
		agg.CustomerEmail(),
		agg.Items(),
		agg.TotalAmount(),
		agg.Status(),
		nil,
		order.RestoreShippingTracking("", "standard", agg.Status(), nil, agg.Tracking().History(), nil, nil),
		agg.CreatedAt(),
		agg.Version(),
	)
	require.NoError(t, err)
	require.Empty(t, restored.Tracking().TrackingNumber())

	applied, err := restored.Transition(order.StatusShipped, "", nil, now, "admin-api")
	require.NoError(t, err)
	require.True(t, applied)

	generated := restored.Tracking().TrackingNumber()
	assert.NotEmpty(t, generated, "shipped transition must backfill a missing tracking number")

	_, err = restored.Transition(order.StatusDelivered, "", nil, now, "admin-api")
	require.NoError(t, err)
	assert.Equal(t, generated, restored.Tracking().TrackingNumber(), "existing tracking number must never be regenerated")
}

func TestTimings_Validate(t *testing.T) {
	require.NoError(t, order.DefaultTimings().Validate())

	bad := testTimings()
	bad.DeliverAfter = bad.ShipAfter
	require.Error(t, bad.Validate())

	bad = testTimings()
	bad.DeliveryLead = 0
	require.Error(t, bad.Validate())
}
