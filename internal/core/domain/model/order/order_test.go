package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, lines map[int]int) *order.Order {
	t.Helper()

	ord, err := order.NewOrder("O1", order.Contact{Name: "Jane Doe", Email: "jane@example.com"}, time.Now())
	require.NoError(t, err)

	for entryNumber, quantity := range lines {
		require.NoError(t, ord.AddEntry(entryNumber, quantity, nil))
	}
	return ord
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in Created status", func(t *testing.T) {
		now := time.Now()
		ord, err := order.NewOrder("O1", order.Contact{Name: "Jane Doe"}, now)

		require.NoError(t, err)
		assert.Equal(t, "O1", ord.Code())
		assert.Equal(t, order.Created, ord.Status())
		assert.Equal(t, now, ord.Created())
		assert.Equal(t, now, ord.Modified())
		assert.Empty(t, ord.Entries())
	})

	t.Run("should require a code", func(t *testing.T) {
		_, err := order.NewOrder("", order.Contact{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var ord order.Order
		require.ErrorIs(t, ord.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AddEntry(t *testing.T) {
	t.Run("should reject duplicate entry numbers", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 5})

		err := ord.AddEntry(1, 3, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, ord.Entries(), 1)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		ord := newTestOrder(t, nil)

		require.Error(t, ord.AddEntry(1, 0, nil))
		require.Error(t, ord.AddEntry(2, -4, nil))
	})

	t.Run("should keep the line's delivery address", func(t *testing.T) {
		ord := newTestOrder(t, nil)
		addr := &order.Address{Street: "Main St 1", City: "Springfield", PostalCode: "12345", CountryCode: "DE"}

		require.NoError(t, ord.AddEntry(1, 2, addr))

		entry, err := ord.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, addr, entry.DeliveryAddress())
	})
}

func TestOrder_Entry(t *testing.T) {
	t.Run("should fail with not found for missing lines", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 5})

		_, err := ord.Entry(7)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_CancelEntry(t *testing.T) {
	t.Run("should accumulate successive cancellations", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 10})

		require.NoError(t, ord.CancelEntry(1, 3, order.ReasonCustomerRequest, "", time.Now()))
		require.NoError(t, ord.CancelEntry(1, 2, order.ReasonCustomerRequest, "", time.Now()))
		require.NoError(t, ord.CancelEntry(1, 5, order.ReasonOutOfStock, "last units", time.Now()))

		entry, err := ord.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, 10, entry.CanceledOrReturnedQuantity())
		assert.Equal(t, 0, entry.RemainingQuantity())
		assert.True(t, entry.IsFullyAdjusted())
	})

	t.Run("should reject cancellation exceeding the ordered quantity", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 10})
		require.NoError(t, ord.CancelEntry(1, 4, order.ReasonCustomerRequest, "", time.Now()))

		err := ord.CancelEntry(1, 7, order.ReasonCustomerRequest, "", time.Now())

		require.ErrorIs(t, err, errs.ErrQuantityExceeded)

		// The rejected event must not change the stored counter.
		entry, lookupErr := ord.Entry(1)
		require.NoError(t, lookupErr)
		assert.Equal(t, 4, entry.CanceledOrReturnedQuantity())
	})

	t.Run("should reject negative cancel quantities without guard-checking", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 10})

		err := ord.CancelEntry(1, -1, order.ReasonCustomerRequest, "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should preserve reason and notes verbatim", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 5})
		notes := "parcel crushed;\ncustomer sent photos"

		require.NoError(t, ord.CancelEntry(1, 2, order.ReasonDamagedInTransit, notes, time.Now()))

		entry, err := ord.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, order.ReasonDamagedInTransit, entry.Reason())
		assert.Equal(t, notes, entry.Notes())
	})

	t.Run("should fail with not found for an unknown line", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 5})

		err := ord.CancelEntry(9, 1, order.ReasonCustomerRequest, "", time.Now())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_ApplyReturn(t *testing.T) {
	t.Run("should share the cumulative counter with cancellations", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 10})

		require.NoError(t, ord.CancelEntry(1, 4, order.ReasonCustomerRequest, "", time.Now()))
		require.NoError(t, ord.ApplyReturn(1, 6, time.Now()))

		entry, err := ord.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, 10, entry.CanceledOrReturnedQuantity())

		// A further return must be rejected by the guard.
		require.ErrorIs(t, ord.ApplyReturn(1, 1, time.Now()), errs.ErrQuantityExceeded)
	})
}

func TestOrder_AllEntriesCanceled(t *testing.T) {
	t.Run("should be true iff every line is fully adjusted", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 5, 2: 2})
		require.NoError(t, ord.CancelEntry(1, 5, order.ReasonCustomerRequest, "", time.Now()))
		require.NoError(t, ord.CancelEntry(2, 1, order.ReasonCustomerRequest, "", time.Now()))

		assert.False(t, ord.AllEntriesCanceled())

		require.NoError(t, ord.CancelEntry(2, 1, order.ReasonCustomerRequest, "", time.Now()))
		assert.True(t, ord.AllEntriesCanceled())
	})

	t.Run("should be false for an order without lines", func(t *testing.T) {
		ord := newTestOrder(t, nil)
		assert.False(t, ord.AllEntriesCanceled())
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("should move Created order to InProgress", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 1})

		require.NoError(t, ord.Confirm(time.Now()))

		assert.Equal(t, order.InProgress, ord.Status())
	})

	t.Run("should reject a repeated confirmation", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 1})
		require.NoError(t, ord.Confirm(time.Now()))

		require.Error(t, ord.Confirm(time.Now()))
	})
}

func TestOrder_ApplyRollup(t *testing.T) {
	t.Run("should write the derived status and touch modified", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 1})
		later := time.Now().Add(time.Minute)

		require.NoError(t, ord.ApplyRollup(order.Shipped, later))

		assert.Equal(t, order.Shipped, ord.Status())
		assert.Equal(t, later, ord.Modified())
	})

	t.Run("should be idempotent for an unchanged status", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 1})
		require.NoError(t, ord.ApplyRollup(order.Shipped, time.Now()))
		modified := ord.Modified()

		require.NoError(t, ord.ApplyRollup(order.Shipped, time.Now().Add(time.Hour)))

		assert.Equal(t, modified, ord.Modified())
	})

	t.Run("should reject invalid statuses", func(t *testing.T) {
		ord := newTestOrder(t, map[int]int{1: 1})
		require.Error(t, ord.ApplyRollup(order.Unknown, time.Now()))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore the aggregate with its lines", func(t *testing.T) {
		entry, err := order.RestoreEntry(1, 10, 4, order.ReasonCustomerRequest, "note", nil)
		require.NoError(t, err)

		ord, err := order.RestoreOrder("O1", order.Shipped, order.Contact{Name: "Jane"},
			time.Now().Add(-time.Hour), time.Now(), []*order.Entry{entry})

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, ord.Status())
		restored, err := ord.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, 4, restored.CanceledOrReturnedQuantity())
	})

	t.Run("should reject a counter above the ordered quantity", func(t *testing.T) {
		_, err := order.RestoreEntry(1, 5, 6, order.ReasonUnspecified, "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
