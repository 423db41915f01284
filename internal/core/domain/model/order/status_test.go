package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Created,
			order.InProgress,
			order.Shipped,
			order.Delivered,
			order.Returned,
			order.Canceled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(99)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Created, "Created"},
		{order.InProgress, "InProgress"},
		{order.Shipped, "Shipped"},
		{order.Delivered, "Delivered"},
		{order.Returned, "Returned"},
		{order.Canceled, "Canceled"},
		{order.Unknown, "Unknown"},
		{order.Status(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("should return %s for %d", tc.expected, int(tc.status)), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark Delivered, Returned and Canceled as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Returned.IsTerminal())
		assert.True(t, order.Canceled.IsTerminal())
	})

	t.Run("should mark all other statuses as non-terminal", func(t *testing.T) {
		assert.False(t, order.Created.IsTerminal())
		assert.False(t, order.InProgress.IsTerminal())
		assert.False(t, order.Shipped.IsTerminal())
		assert.False(t, order.Unknown.IsTerminal())
	})
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("should confirm from Created", func(t *testing.T) {
		newStatus, err := order.Created.Confirm()

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, newStatus)
	})

	t.Run("should reject confirmation from any other status", func(t *testing.T) {
		invalidSources := []order.Status{
			order.Unknown,
			order.InProgress,
			order.Shipped,
			order.Delivered,
			order.Returned,
			order.Canceled,
		}

		for _, status := range invalidSources {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				_, err := status.Confirm()
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestParseCancellationReason(t *testing.T) {
	t.Run("should parse known reason codes", func(t *testing.T) {
		testCases := map[string]order.CancellationReason{
			"customer_request":   order.ReasonCustomerRequest,
			"damaged_in_transit": order.ReasonDamagedInTransit,
			"lost_in_transit":    order.ReasonLostInTransit,
			"wrong_item":         order.ReasonWrongItem,
			"out_of_stock":       order.ReasonOutOfStock,
		}

		for code, expected := range testCases {
			reason, err := order.ParseCancellationReason(code)
			require.NoError(t, err)
			assert.Equal(t, expected, reason)
			assert.Equal(t, code, reason.String())
		}
	})

	t.Run("should parse empty code to ReasonUnspecified", func(t *testing.T) {
		reason, err := order.ParseCancellationReason("")
		require.NoError(t, err)
		assert.Equal(t, order.ReasonUnspecified, reason)
	})

	t.Run("should reject unrecognized codes", func(t *testing.T) {
		_, err := order.ParseCancellationReason("changed_my_mind")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
