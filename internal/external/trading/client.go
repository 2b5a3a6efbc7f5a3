package trading

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// Client handles communication with the trading-platform API.
// All trading API calls in the service go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string

	// Local pacing limiter. Courtesy limiting toward the upstream,
	// independent of the shared redis limiter on the HTTP client.
	limiter *rate.Limiter
}

// NewClient creates a new trading API client. Retry is disabled:
// a failed detail fetch is logged and dropped by the caller, never
// replayed, and backoff sleeps would stall whole fetch chunks.
func NewClient(baseURL string, requestsPerSecond int, httpClient *httputil.Client, log *logger.Logger) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	httpClient.DisableRetry()
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// request makes an authenticated request to the trading API
func (c *Client) request(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	return c.httpClient.Do(req)
}

// ListOrders fetches one page of orders matching the filters
// POST /orders
func (c *Client) ListOrders(ctx context.Context, token string, listReq ListOrdersRequest) (*OrderPage, error) {
	if listReq.Page <= 0 {
		listReq.Page = 1
	}
	if listReq.Rows <= 0 {
		listReq.Rows = 20
	}

	payload, err := json.Marshal(listReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.request(ctx, http.MethodPost, "/orders", token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trading API error status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Result OrderPage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	page := result.Result
	for i := range page.Items {
		normalizeOrder(&page.Items[i])
	}

	return &page, nil
}

// GetOrder fetches the full detail record for one order
// GET /orders/{id}
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is required")
	}

	resp, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/orders/%s", orderID), token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trading API error status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Result Order `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	order := result.Result
	normalizeOrder(&order)

	return &order, nil
}

// ListAds fetches one page of the operator's standing offers
// POST /ads
func (c *Client) ListAds(ctx context.Context, token string, listReq ListAdsRequest) (*AdPage, error) {
	if listReq.Page <= 0 {
		listReq.Page = 1
	}
	if listReq.Rows <= 0 {
		listReq.Rows = 20
	}

	payload, err := json.Marshal(listReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.request(ctx, http.MethodPost, "/ads", token, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trading API error status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Result AdPage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result.Result, nil
}

// normalizeOrder makes PaymentTermList safe to index without a nil
// check. The upstream omits the field entirely for orders without
// declared settlement details.
func normalizeOrder(order *Order) {
	if order.PaymentTermList == nil {
		order.PaymentTermList = []PaymentTerm{}
	}
}
