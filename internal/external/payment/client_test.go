package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, httputil.New(testLogger()), testLogger())
}

func testEnvelope(orderID string) Envelope {
	return Envelope{
		Instruction: Instruction{
			BeneficiaryAccountNumber: "0123456789",
			BeneficiaryBankCode:      "000015",
			Amount:                   "15000000",
			ClientAccountNumber:      "9876543210",
			BeneficiaryName:          "Ada Obi",
			Narration:                "Payment for goods on March 3, 2026",
		},
		OrderID:     orderID,
		PaymentID:   "pay-" + orderID,
		PaymentType: "bank_transfer",
	}
}

func TestMakeBulkPayment(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/make-bulk-payment", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body struct {
			PaymentDataArray []Envelope `json:"paymentDataArray"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.PaymentDataArray, 2)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"transferCount": 2},
		})
	}))

	receipt, err := client.MakeBulkPayment(context.Background(), "tok", []Envelope{
		testEnvelope("ord-1"), testEnvelope("ord-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.TransferCount)
}

func TestMakeBulkPaymentRejectsEmptyBatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := client.MakeBulkPayment(context.Background(), "tok", nil)
	assert.Error(t, err)
}

func TestMakeBulkPaymentMissingTransferCount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{},
		})
	}))

	receipt, err := client.MakeBulkPayment(context.Background(), "tok", []Envelope{
		testEnvelope("ord-1"), testEnvelope("ord-2"), testEnvelope("ord-3"),
	})
	require.NoError(t, err)
	// Absent transferCount defaults to the submitted count
	assert.Equal(t, 3, receipt.TransferCount)
}

func TestMakePaymentApplicationFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/make-payment", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"data":    map[string]interface{}{"message": "insufficient float balance"},
		})
	}))

	_, err := client.MakePayment(context.Background(), "tok", testEnvelope("ord-1"))
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
	assert.Equal(t, "insufficient float balance", apiErr.Message)
}

func TestMakePaymentHTTPFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.MakePayment(context.Background(), "tok", testEnvelope("ord-1"))
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	// Unparseable body falls back to the generic message
	assert.Equal(t, genericFailureMessage, apiErr.Message)
}

func TestClientDoesNotRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.MakePayment(context.Background(), "tok", testEnvelope("ord-1"))
	require.Error(t, err)
	assert.Equal(t, 1, calls, "payment submission must never be retried automatically")
}
