package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Intent is the gateway's representation of a pending charge, consumed
// verbatim by the client. Amounts are in minor currency units.
type Intent struct {
	ID         string   `json:"id"`
	Entity     string   `json:"entity"`
	Amount     int64    `json:"amount"`
	AmountPaid int64    `json:"amount_paid"`
	AmountDue  int64    `json:"amount_due"`
	Currency   string   `json:"currency"`
	Receipt    *string  `json:"receipt"`
	OfferID    *string  `json:"offer_id"`
	Status     string   `json:"status"`
	Attempts   int      `json:"attempts"`
	Notes      []string `json:"notes"`
}

// Client is the process-wide payment gateway collaborator. It is built
// once from configuration and injected, so tests can fake it.
type Client interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
}

type HTTPClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string

	HTTP *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string) *HTTPClient {
	return &HTTPClient{
		BaseURL:   baseURL,
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amountMinor,
		"currency": currency,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gateway: build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// timeouts included: the caller retries checkout, nothing is confirmed
		return nil, fmt.Errorf("gateway: create intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway: create intent: status %d: %s", resp.StatusCode, body)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("gateway: decode intent: %w", err)
	}
	return &intent, nil
}
