package consignment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShippedConsignment(t *testing.T, lines map[int]int) *consignment.Consignment {
	t.Helper()

	cons, err := consignment.NewConsignment(
		"C1", "O1",
		consignment.CarrierDHL, "JD0001",
		consignment.ShippingAddress{Name: "Jane Doe", Street: "Main St 1", City: "Springfield"},
		time.Now(), nil,
	)
	require.NoError(t, err)

	for entryNumber, quantity := range lines {
		require.NoError(t, cons.AddEntry(entryNumber, quantity))
	}
	return cons
}

func TestNewConsignment(t *testing.T) {
	t.Run("should create consignment in Shipped status", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10})

		assert.Equal(t, consignment.Shipped, cons.Status())
		assert.Equal(t, "O1", cons.OrderCode())
		assert.Equal(t, consignment.CarrierDHL, cons.Carrier())
		assert.Nil(t, cons.ReceiptDelivery())
	})

	t.Run("should require code, order code, tracking id and a valid carrier", func(t *testing.T) {
		addr := consignment.ShippingAddress{}

		_, err := consignment.NewConsignment("", "O1", consignment.CarrierDHL, "T", addr, time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = consignment.NewConsignment("C1", "", consignment.CarrierDHL, "T", addr, time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = consignment.NewConsignment("C1", "O1", consignment.CarrierDHL, "", addr, time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = consignment.NewConsignment("C1", "O1", consignment.CarrierUnknown, "T", addr, time.Now(), nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestConsignment_ApplyAdjustment(t *testing.T) {
	t.Run("should accumulate guarded adjustments", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10})

		require.NoError(t, cons.ApplyAdjustment(1, 4))

		entry, err := cons.Entry(1)
		require.NoError(t, err)
		assert.Equal(t, 4, entry.CancelledOrReturnedQuantity())
		assert.False(t, entry.IsFullyAdjusted())

		require.NoError(t, cons.ApplyAdjustment(1, 6))
		assert.Equal(t, 10, entry.CancelledOrReturnedQuantity())
		assert.True(t, entry.IsFullyAdjusted())
	})

	t.Run("should reject adjustment exceeding the shipped quantity", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10})
		require.NoError(t, cons.ApplyAdjustment(1, 4))

		err := cons.ApplyAdjustment(1, 7)

		require.ErrorIs(t, err, errs.ErrQuantityExceeded)
		entry, lookupErr := cons.Entry(1)
		require.NoError(t, lookupErr)
		assert.Equal(t, 4, entry.CancelledOrReturnedQuantity())
	})

	t.Run("should fail with not found for an unknown line", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10})

		err := cons.ApplyAdjustment(3, 1)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestConsignment_Deliver(t *testing.T) {
	t.Run("should move Shipped to Delivered and record receipt", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 1})
		receipt := time.Now()

		require.NoError(t, cons.Deliver(receipt, "delivered"))

		assert.Equal(t, consignment.Delivered, cons.Status())
		require.NotNil(t, cons.ReceiptDelivery())
		assert.Equal(t, receipt, *cons.ReceiptDelivery())
		assert.Equal(t, "delivered", cons.StatusText())
	})

	t.Run("should reject delivery of a terminal consignment", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 1})
		require.NoError(t, cons.Deliver(time.Now(), "delivered"))

		require.Error(t, cons.Deliver(time.Now(), "delivered"))
	})
}

func TestConsignment_Reconcile(t *testing.T) {
	t.Run("should stay put while lines are partially adjusted", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10, 2: 5})
		require.NoError(t, cons.ApplyAdjustment(1, 10))

		changed, err := cons.Reconcile(consignment.Returned)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, consignment.Shipped, cons.Status())
	})

	t.Run("should reach terminal state once every line is fully adjusted", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 10, 2: 5})
		require.NoError(t, cons.ApplyAdjustment(1, 10))
		require.NoError(t, cons.ApplyAdjustment(2, 5))

		changed, err := cons.Reconcile(consignment.Returned)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, consignment.Returned, cons.Status())
	})

	t.Run("should be idempotent with no new adjustments", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 5})
		require.NoError(t, cons.ApplyAdjustment(1, 5))

		changed, err := cons.Reconcile(consignment.Canceled)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = cons.Reconcile(consignment.Canceled)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, consignment.Canceled, cons.Status())
	})

	t.Run("should reject non-terminal reconciliation targets", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 5})

		_, err := cons.Reconcile(consignment.Delivered)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAllCanceled(t *testing.T) {
	t.Run("should report true only when every consignment is canceled", func(t *testing.T) {
		canceled := newShippedConsignment(t, map[int]int{1: 1})
		require.NoError(t, canceled.Cancel("canceled"))
		shipped := newShippedConsignment(t, map[int]int{1: 1})

		assert.True(t, consignment.AllCanceled(nil))
		assert.True(t, consignment.AllCanceled([]*consignment.Consignment{canceled}))
		assert.False(t, consignment.AllCanceled([]*consignment.Consignment{canceled, shipped}))
	})
}

func TestConsignment_ApplyCarrierStatus(t *testing.T) {
	t.Run("should apply delivered, returned and canceled events", func(t *testing.T) {
		delivered := newShippedConsignment(t, map[int]int{1: 1})
		require.NoError(t, delivered.ApplyCarrierStatus(consignment.Delivered, "delivered", time.Now()))
		assert.Equal(t, consignment.Delivered, delivered.Status())

		returned := newShippedConsignment(t, map[int]int{1: 1})
		require.NoError(t, returned.ApplyCarrierStatus(consignment.Returned, "error_return", time.Now()))
		assert.Equal(t, consignment.Returned, returned.Status())

		canceled := newShippedConsignment(t, map[int]int{1: 1})
		require.NoError(t, canceled.ApplyCarrierStatus(consignment.Canceled, "error_pickup", time.Now()))
		assert.Equal(t, consignment.Canceled, canceled.Status())
	})

	t.Run("should reject statuses a carrier event may not apply", func(t *testing.T) {
		cons := newShippedConsignment(t, map[int]int{1: 1})

		err := cons.ApplyCarrierStatus(consignment.Shipped, "shipped", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, consignment.Shipped, cons.Status())
	})
}
