package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WaveClient talks to the Wave checkout API. It satisfies the donation
// service's PaymentProvider interface.
type WaveClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewWaveClient creates a Wave client against the given API base URL.
func NewWaveClient(baseURL, apiKey string) *WaveClient {
	return &WaveClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type checkoutRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	ClientReference string `json:"client_reference"`
}

type checkoutResponse struct {
	ID           string `json:"id"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type refundRequest struct {
	Amount int64 `json:"amount"`
}

type refundResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// CreateIntent opens a checkout session for the donation and returns its id.
func (c *WaveClient) CreateIntent(ctx context.Context, donationID uint64, amount int64, currency string) (string, error) {
	body := checkoutRequest{
		Amount:          amount,
		Currency:        currency,
		ClientReference: fmt.Sprintf("donation-%d", donationID),
	}

	var resp checkoutResponse
	if err := c.post(ctx, "/v1/checkout/sessions", body, &resp); err != nil {
		return "", err
	}
	if resp.ErrorCode != "" {
		return "", fmt.Errorf("wave checkout rejected: %s (%s)", resp.ErrorMessage, resp.ErrorCode)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("wave checkout returned no session id")
	}
	return resp.ID, nil
}

// Refund reverses a settled charge by transaction id.
func (c *WaveClient) Refund(ctx context.Context, transactionID string, amount int64) error {
	path := fmt.Sprintf("/v1/transactions/%s/refund", transactionID)

	var resp refundResponse
	if err := c.post(ctx, path, refundRequest{Amount: amount}, &resp); err != nil {
		return err
	}
	if resp.ErrorCode != "" {
		return fmt.Errorf("wave refund rejected: %s (%s)", resp.ErrorMessage, resp.ErrorCode)
	}
	return nil
}

func (c *WaveClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode wave request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build wave request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wave request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 500 {
		return fmt.Errorf("wave returned status %d", httpResp.StatusCode)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode wave response: %w", err)
	}
	return nil
}
