package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLeadTime = 72 * time.Hour

func testSnapshot(price, rentPrice float64) order.BookSnapshot {
	return order.BookSnapshot{
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		ImageURL:  "https://cdn.example.com/gopl.jpg",
		Price:     decimal.NewFromFloat(price),
		RentPrice: decimal.NewFromFloat(rentPrice),
	}
}

func TestNewOrderItem_Validation(t *testing.T) {
	now := time.Now()

	t.Run("book id is required", func(t *testing.T) {
		_, err := order.NewOrderItem("", testSnapshot(10, 0), order.FormatPhysical, 1, order.IntentPurchase, 0, now, testLeadTime)
		require.Error(t, err)
	})

	t.Run("quantity must be at least 1", func(t *testing.T) {
		_, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.FormatPhysical, 0, order.IntentPurchase, 0, now, testLeadTime)
		require.Error(t, err)
	})

	t.Run("rental duration must not be negative", func(t *testing.T) {
		_, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.FormatPhysical, 1, order.IntentRental, -1, now, testLeadTime)
		require.Error(t, err)
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		_, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.Format("hologram"), 1, order.IntentPurchase, 0, now, testLeadTime)
		require.Error(t, err)
	})

	t.Run("unknown intent is rejected", func(t *testing.T) {
		_, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.FormatPhysical, 1, order.FulfillmentIntent("borrow"), 0, now, testLeadTime)
		require.Error(t, err)
	})
}

func TestNewOrderItem_Pricing(t *testing.T) {
	now := time.Now()

	t.Run("purchase uses purchase price", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(25, 5), order.FormatPhysical, 2, order.IntentPurchase, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.True(t, item.UnitPrice().Equal(decimal.NewFromInt(25)))
		assert.True(t, item.LineTotal().Equal(decimal.NewFromInt(50)))
	})

	t.Run("rental uses rental price", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(25, 5), order.FormatDigital, 1, order.IntentRental, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.True(t, item.UnitPrice().Equal(decimal.NewFromInt(5)))
	})

	t.Run("rental falls back to purchase price when no rental price exists", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(25, 0), order.FormatDigital, 1, order.IntentRental, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.True(t, item.UnitPrice().Equal(decimal.NewFromInt(25)))
	})
}

func TestNewOrderItem_Dates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("digital items deliver immediately", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.FormatDigital, 1, order.IntentPurchase, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.Equal(t, now, item.DeliveryETA())
		assert.Nil(t, item.ReturnDueAt())
	})

	t.Run("physical items deliver after the lead time", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(10, 0), order.FormatPhysical, 1, order.IntentPurchase, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.Equal(t, now.Add(testLeadTime), item.DeliveryETA())
	})

	t.Run("digital rental defaults to 7 days from delivery", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(10, 2), order.FormatDigital, 1, order.IntentRental, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.Equal(t, 7, item.RentalDurationDays())
		require.NotNil(t, item.ReturnDueAt())
		assert.Equal(t, now.Add(7*24*time.Hour), *item.ReturnDueAt())
	})

	t.Run("physical rental defaults to 14 days from delivery", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(10, 2), order.FormatPhysical, 1, order.IntentRental, 0, now, testLeadTime)
		require.NoError(t, err)

		assert.Equal(t, 14, item.RentalDurationDays())
		require.NotNil(t, item.ReturnDueAt())
		assert.Equal(t, now.Add(testLeadTime).Add(14*24*time.Hour), *item.ReturnDueAt())
	})

	t.Run("explicit rental duration wins over defaults", func(t *testing.T) {
		item, err := order.NewOrderItem("book-1", testSnapshot(10, 2), order.FormatDigital, 1, order.IntentRental, 3, now, testLeadTime)
		require.NoError(t, err)

		assert.Equal(t, 3, item.RentalDurationDays())
		require.NotNil(t, item.RentalStartAt())
		assert.Equal(t, now, *item.RentalStartAt())
		require.NotNil(t, item.RentalEndAt())
		assert.Equal(t, now.Add(3*24*time.Hour), *item.RentalEndAt())
	})
}

func TestFormatFromString(t *testing.T) {
	format, err := order.FormatFromString("physical")
	require.NoError(t, err)
	assert.Equal(t, order.FormatPhysical, format)

	format, err = order.FormatFromString("digital")
	require.NoError(t, err)
	assert.Equal(t, order.FormatDigital, format)

	_, err = order.FormatFromString("paperback")
	require.Error(t, err)
}

func TestIntentFromString(t *testing.T) {
	intent, err := order.IntentFromString("rental")
	require.NoError(t, err)
	assert.Equal(t, order.IntentRental, intent)

	_, err = order.IntentFromString("")
	require.Error(t, err)
}
