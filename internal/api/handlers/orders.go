package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// TradingAPI is the trading-platform surface the order handlers need
type TradingAPI interface {
	ListOrders(ctx context.Context, token string, req trading.ListOrdersRequest) (*trading.OrderPage, error)
	GetOrder(ctx context.Context, token, orderID string) (*trading.Order, error)
	ListAds(ctx context.Context, token string, req trading.ListAdsRequest) (*trading.AdPage, error)
}

// OrdersHandler handles order and ad listing endpoints
type OrdersHandler struct {
	trading TradingAPI
	logger  *logger.Logger
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(tradingClient TradingAPI, log *logger.Logger) *OrdersHandler {
	return &OrdersHandler{
		trading: tradingClient,
		logger:  log,
	}
}

// ListOrders returns one page of orders with optional filters
// GET /api/orders?page=1&rows=20&side=1&status=20
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	listReq := trading.ListOrdersRequest{
		Page: queryInt(r, "page", 1),
		Rows: queryInt(r, "rows", 20),
	}
	if side, ok := queryIntOptional(r, "side"); ok {
		listReq.Side = &side
	}
	if status, ok := queryIntOptional(r, "status"); ok {
		listReq.Status = &status
	}

	page, err := h.trading.ListOrders(ctx, token, listReq)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		respondError(w, http.StatusBadGateway, "Failed to retrieve orders")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetOrder returns the full detail record for one order
// GET /api/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Order id is required")
		return
	}

	order, err := h.trading.GetOrder(ctx, token, orderID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get order")
		respondError(w, http.StatusBadGateway, "Failed to retrieve order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// ListAds returns one page of the operator's standing offers
// GET /api/ads?page=1&rows=20&side=1
func (h *OrdersHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := bearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing bearer token")
		return
	}

	listReq := trading.ListAdsRequest{
		Page: queryInt(r, "page", 1),
		Rows: queryInt(r, "rows", 20),
	}
	if side, ok := queryIntOptional(r, "side"); ok {
		listReq.Side = &side
	}

	page, err := h.trading.ListAds(ctx, token, listReq)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list ads")
		respondError(w, http.StatusBadGateway, "Failed to retrieve ads")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value, ok := queryIntOptional(r, key)
	if !ok {
		return defaultValue
	}
	return value
}

func queryIntOptional(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
