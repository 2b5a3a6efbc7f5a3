package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/p2pdesk/backoffice/pkg/httputil"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

// genericFailureMessage is surfaced when the upstream gives no message
const genericFailureMessage = "payment request failed"

// Client handles communication with the bank payment API.
//
// The client never retries: the upstream's idempotency behavior under
// resubmission is unspecified, and replaying a transfer could pay a
// counterparty twice. Callers decide whether resubmission is safe.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new payment API client
func NewClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient.DisableRetry(),
		logger:     log,
		baseURL:    baseURL,
	}
}

// apiResponse is the wire shape shared by both payment endpoints
type apiResponse struct {
	Success bool `json:"success"`
	Data    struct {
		TransferCount *int   `json:"transferCount,omitempty"`
		Message       string `json:"message,omitempty"`
	} `json:"data"`
}

// MakeBulkPayment submits a batch of payment instructions in one call
// POST /payment/make-bulk-payment
func (c *Client) MakeBulkPayment(ctx context.Context, token string, envelopes []Envelope) (*Receipt, error) {
	if len(envelopes) == 0 {
		return nil, fmt.Errorf("no payment instructions to submit")
	}

	body := map[string]interface{}{
		"paymentDataArray": envelopes,
	}

	return c.submit(ctx, token, "/payment/make-bulk-payment", body, len(envelopes))
}

// MakePayment submits a single payment instruction
// POST /payment/make-payment
func (c *Client) MakePayment(ctx context.Context, token string, envelope Envelope) (*Receipt, error) {
	body := map[string]interface{}{
		"paymentData": envelope,
	}

	return c.submit(ctx, token, "/payment/make-payment", body, 1)
}

// submit posts the payload and decodes the shared response shape
func (c *Client) submit(ctx context.Context, token, path string, payload interface{}, submitted int) (*Receipt, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payment payload: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read payment response: %w", err)
	}

	// Parse-don't-trust: the body is decoded into an explicit shape even
	// on error statuses, so an upstream message can be surfaced verbatim.
	var decoded apiResponse
	_ = json.Unmarshal(raw, &decoded)

	if resp.StatusCode != http.StatusOK {
		msg := decoded.Data.Message
		if msg == "" {
			msg = genericFailureMessage
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if !decoded.Success {
		msg := decoded.Data.Message
		if msg == "" {
			msg = genericFailureMessage
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	receipt := &Receipt{
		TransferCount: submitted,
		Message:       decoded.Data.Message,
	}
	if decoded.Data.TransferCount != nil {
		receipt.TransferCount = *decoded.Data.TransferCount
	}

	return receipt, nil
}
