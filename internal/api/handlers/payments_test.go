package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p2pdesk/backoffice/internal/external/payment"
	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/internal/payments"
	"github.com/p2pdesk/backoffice/pkg/config"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// fakeFetcher returns one canned order per known ID
type fakeFetcher struct {
	orders map[string]trading.Order
}

func (f *fakeFetcher) FetchDetails(ctx context.Context, token string, orderIDs []string) []trading.Order {
	result := make([]trading.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		if order, ok := f.orders[id]; ok {
			result = append(result, order)
		}
	}
	return result
}

// fakePayer plays back canned outcomes
type fakePayer struct {
	bulkOutcome   *payments.BulkOutcome
	singleOutcome *payments.SingleOutcome
	err           error

	lastOrders []trading.Order
}

func (f *fakePayer) PayBulk(ctx context.Context, token string, orders []trading.Order, override string) (*payments.BulkOutcome, error) {
	f.lastOrders = orders
	if f.err != nil {
		return nil, f.err
	}
	return f.bulkOutcome, nil
}

func (f *fakePayer) PaySingle(ctx context.Context, token string, order trading.Order, override string) (*payments.SingleOutcome, error) {
	f.lastOrders = []trading.Order{order}
	if f.err != nil {
		return nil, f.err
	}
	return f.singleOutcome, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestPayBulkHandler(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]trading.Order{
		"ord-1": {ID: "ord-1"},
		"ord-2": {ID: "ord-2"},
	}}
	payer := &fakePayer{bulkOutcome: &payments.BulkOutcome{
		Input: 2, Submitted: 2, Discarded: 0, Transferred: 2,
	}}

	handler := NewPaymentsHandler(fetcher, payer, testLogger())
	recorder := postJSON(t, handler.PayBulk, "/api/payments/bulk",
		BulkPayRequest{OrderIDs: []string{"ord-1", "ord-2"}}, "tok")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Requested int                  `json:"requested"`
		Fetched   int                  `json:"fetched"`
		Unfetched int                  `json:"unfetched"`
		Outcome   payments.BulkOutcome `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Fetched)
	assert.Equal(t, 0, resp.Unfetched)
	assert.Equal(t, 2, resp.Outcome.Submitted)
}

func TestPayBulkHandlerReportsUnfetched(t *testing.T) {
	// ord-2 cannot be fetched upstream
	fetcher := &fakeFetcher{orders: map[string]trading.Order{"ord-1": {ID: "ord-1"}}}
	payer := &fakePayer{bulkOutcome: &payments.BulkOutcome{Input: 1, Submitted: 1}}

	handler := NewPaymentsHandler(fetcher, payer, testLogger())
	recorder := postJSON(t, handler.PayBulk, "/api/payments/bulk",
		BulkPayRequest{OrderIDs: []string{"ord-1", "ord-2"}}, "tok")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["unfetched"])
	require.Len(t, payer.lastOrders, 1)
	assert.Equal(t, "ord-1", payer.lastOrders[0].ID)
}

func TestPayBulkHandlerRequiresToken(t *testing.T) {
	handler := NewPaymentsHandler(&fakeFetcher{}, &fakePayer{}, testLogger())
	recorder := postJSON(t, handler.PayBulk, "/api/payments/bulk",
		BulkPayRequest{OrderIDs: []string{"ord-1"}}, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPayBulkHandlerRequiresOrderIDs(t *testing.T) {
	handler := NewPaymentsHandler(&fakeFetcher{}, &fakePayer{}, testLogger())
	recorder := postJSON(t, handler.PayBulk, "/api/payments/bulk", BulkPayRequest{}, "tok")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPayBulkHandlerUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]trading.Order{"ord-1": {ID: "ord-1"}}}
	payer := &fakePayer{err: &payment.APIError{StatusCode: 502, Message: "provider down"}}

	handler := NewPaymentsHandler(fetcher, payer, testLogger())
	recorder := postJSON(t, handler.PayBulk, "/api/payments/bulk",
		BulkPayRequest{OrderIDs: []string{"ord-1"}}, "tok")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "provider down")
}

func TestPaySingleHandler(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]trading.Order{"ord-1": {ID: "ord-1"}}}
	payer := &fakePayer{singleOutcome: &payments.SingleOutcome{OrderID: "ord-1", Transferred: true}}

	handler := NewPaymentsHandler(fetcher, payer, testLogger())
	recorder := postJSON(t, handler.PaySingle, "/api/payments/single",
		SinglePayRequest{OrderID: "ord-1"}, "tok")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var outcome payments.SingleOutcome
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &outcome))
	assert.True(t, outcome.Transferred)
}

func TestPaySingleHandlerValidationFailure(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]trading.Order{"ord-1": {ID: "ord-1"}}}
	payer := &fakePayer{err: &payments.ValidationFailedError{
		OrderID: "ord-1",
		Errors:  []payments.FieldError{{Field: "Amount", Message: "must be at least 6 characters"}},
	}}

	handler := NewPaymentsHandler(fetcher, payer, testLogger())
	recorder := postJSON(t, handler.PaySingle, "/api/payments/single",
		SinglePayRequest{OrderID: "ord-1"}, "tok")

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Amount")
}

func TestPaySingleHandlerUnfetchableOrder(t *testing.T) {
	handler := NewPaymentsHandler(&fakeFetcher{}, &fakePayer{}, testLogger())
	recorder := postJSON(t, handler.PaySingle, "/api/payments/single",
		SinglePayRequest{OrderID: "ghost"}, "tok")

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}
