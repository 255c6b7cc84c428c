package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPDispatcher delivers receipts and thank-you messages through the
// notifications service. It satisfies the donation service's
// ReceiptDispatcher interface.
type HTTPDispatcher struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPDispatcher creates a dispatcher against the notifications service.
func NewHTTPDispatcher(baseURL string) *HTTPDispatcher {
	return &HTTPDispatcher{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
	}
}

type receiptMessage struct {
	DonationID uint64 `json:"donation_id"`
	ReceiptNo  string `json:"receipt_no"`
	Email      string `json:"email"`
}

type thankYouMessage struct {
	DonationID uint64 `json:"donation_id"`
	Email      string `json:"email"`
}

// SendReceipt queues the donation receipt email.
func (d *HTTPDispatcher) SendReceipt(ctx context.Context, donationID uint64, receiptNo, email string) error {
	return d.post(ctx, "/v1/messages/receipt", receiptMessage{
		DonationID: donationID,
		ReceiptNo:  receiptNo,
		Email:      email,
	})
}

// SendThankYou queues the thank-you email.
func (d *HTTPDispatcher) SendThankYou(ctx context.Context, donationID uint64, email string) error {
	return d.post(ctx, "/v1/messages/thank-you", thankYouMessage{
		DonationID: donationID,
		Email:      email,
	})
}

func (d *HTTPDispatcher) post(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
