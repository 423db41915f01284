package marketplace_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/marketplace"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HTTPNotifier_NotifyOrderStatus(t *testing.T) {
	t.Run("should post the order code and status name", func(t *testing.T) {
		var received map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders/ORD-1/status", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		notifier := marketplace.NewHTTPNotifier(server.URL)

		err := notifier.NotifyOrderStatus(t.Context(), "ORD-1", order.Delivered)
		require.NoError(t, err)
		assert.Equal(t, "ORD-1", received["orderCode"])
		assert.Equal(t, "Delivered", received["status"])
	})

	t.Run("should fail on a rejecting marketplace", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		notifier := marketplace.NewHTTPNotifier(server.URL)

		err := notifier.NotifyOrderStatus(t.Context(), "ORD-2", order.Returned)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
	})
}
