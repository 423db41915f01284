package consignment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCarrier(t *testing.T) {
	t.Run("should parse known carriers", func(t *testing.T) {
		dhl, err := consignment.ParseCarrier("DHL")
		require.NoError(t, err)
		assert.Equal(t, consignment.CarrierDHL, dhl)

		dpd, err := consignment.ParseCarrier("DPD")
		require.NoError(t, err)
		assert.Equal(t, consignment.CarrierDPD, dpd)
	})

	t.Run("should reject unknown carriers", func(t *testing.T) {
		_, err := consignment.ParseCarrier("UPS")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMapCarrierStatus(t *testing.T) {
	t.Run("should map DHL codes", func(t *testing.T) {
		testCases := map[string]consignment.Status{
			"delivered": consignment.Delivered,
			"failure":   consignment.Returned,
		}

		for code, expected := range testCases {
			t.Run(code, func(t *testing.T) {
				status, err := consignment.MapCarrierStatus(consignment.CarrierDHL, code)
				require.NoError(t, err)
				assert.Equal(t, expected, status)
			})
		}
	})

	t.Run("should map DPD codes", func(t *testing.T) {
		testCases := map[string]consignment.Status{
			"delivery_customer":      consignment.Delivered,
			"pickup_by_consignee":    consignment.Delivered,
			"error_return":           consignment.Returned,
			"no_pickup_by_consignee": consignment.Returned,
			"error_pickup":           consignment.Canceled,
		}

		for code, expected := range testCases {
			t.Run(code, func(t *testing.T) {
				status, err := consignment.MapCarrierStatus(consignment.CarrierDPD, code)
				require.NoError(t, err)
				assert.Equal(t, expected, status)
			})
		}
	})

	t.Run("should reject unrecognized codes instead of defaulting", func(t *testing.T) {
		_, err := consignment.MapCarrierStatus(consignment.CarrierDHL, "delivery_customer")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = consignment.MapCarrierStatus(consignment.CarrierDPD, "delivered")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = consignment.MapCarrierStatus(consignment.CarrierDHL, "on_the_moon")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an invalid carrier", func(t *testing.T) {
		_, err := consignment.MapCarrierStatus(consignment.CarrierUnknown, "delivered")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
