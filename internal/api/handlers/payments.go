package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/p2pdesk/backoffice/internal/external/payment"
	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/internal/payments"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// DetailFetcher is the batched order-detail surface the payment
// handlers need
type DetailFetcher interface {
	FetchDetails(ctx context.Context, token string, orderIDs []string) []trading.Order
}

// Payer is the orchestration surface the payment handlers need
type Payer interface {
	PayBulk(ctx context.Context, token string, orders []trading.Order, clientAccountOverride string) (*payments.BulkOutcome, error)
	PaySingle(ctx context.Context, token string, order trading.Order, clientAccountOverride string) (*payments.SingleOutcome, error)
}

// PaymentsHandler handles payout endpoints
type PaymentsHandler struct {
	fetcher      DetailFetcher
	orchestrator Payer
	logger       *logger.Logger
}

// NewPaymentsHandler creates a new payments handler
func NewPaymentsHandler(fetcher DetailFetcher, orchestrator Payer, log *logger.Logger) *PaymentsHandler {
	return &PaymentsHandler{
		fetcher:      fetcher,
		orchestrator: orchestrator,
		logger:       log,
	}
}

// BulkPayRequest is the body for POST /api/payments/bulk
type BulkPayRequest struct {
	OrderIDs            []string `json:"orderIds"`
	ClientAccountNumber string   `json:"clientAccountNumber,omitempty"`
}

// SinglePayRequest is the body for POST /api/payments/single
type SinglePayRequest struct {
	OrderID             string `json:"orderId"`
	ClientAccountNumber string `json:"clientAccountNumber,omitempty"`
}

// PayBulk fetches the order details and submits one batched payout
// POST /api/payments/bulk
func (h *PaymentsHandler) PayBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	var req BulkPayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.OrderIDs) == 0 {
		respondError(w, http.StatusBadRequest, "orderIds is required")
		return
	}

	orders := h.fetcher.FetchDetails(ctx, token, req.OrderIDs)
	if len(orders) == 0 {
		respondError(w, http.StatusBadGateway, "No order details could be fetched")
		return
	}

	outcome, err := h.orchestrator.PayBulk(ctx, token, orders, req.ClientAccountNumber)
	if err != nil {
		h.respondPaymentError(w, err)
		return
	}

	// The fetch stage may have dropped some requested IDs already;
	// surface that as part of the discard accounting.
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requested": len(req.OrderIDs),
		"fetched":   len(orders),
		"outcome":   outcome,
		"unfetched": len(req.OrderIDs) - len(orders),
	})
}

// PaySingle pays exactly one order
// POST /api/payments/single
func (h *PaymentsHandler) PaySingle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	var req SinglePayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == "" {
		respondError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	fetched := h.fetcher.FetchDetails(ctx, token, []string{req.OrderID})
	if len(fetched) == 0 {
		respondError(w, http.StatusBadGateway, "Order details could not be fetched")
		return
	}

	outcome, err := h.orchestrator.PaySingle(ctx, token, fetched[0], req.ClientAccountNumber)
	if err != nil {
		h.respondPaymentError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// respondPaymentError maps pipeline failures to HTTP statuses
func (h *PaymentsHandler) respondPaymentError(w http.ResponseWriter, err error) {
	var validationErr *payments.ValidationFailedError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "Payment data failed validation",
			"fields": validationErr.Errors,
		})
		return
	}

	if errors.Is(err, payments.ErrNotPayable) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var apiErr *payment.APIError
	if errors.As(err, &apiErr) {
		h.logger.WithError(apiErr).Error("Payment API rejected submission")
		respondError(w, http.StatusBadGateway, apiErr.Message)
		return
	}

	h.logger.WithError(err).Error("Payment orchestration failed")
	respondError(w, http.StatusInternalServerError, "Payment failed")
}
