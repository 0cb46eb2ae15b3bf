package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/OmNinave/E-commerce-sub001/config"
)

// Client talks to the hosted checkout provider's REST API.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	currency  string
	http      *http.Client
}

func NewClient(cfg config.Payment) *Client {
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		currency:  cfg.Currency,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// ProviderOrder is the provider's handle for a payment to be collected.
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder registers a payment order for the given amount (major
// currency units) and returns the provider's reference. The provider API
// takes amounts in the minor unit.
func (c *Client) CreateOrder(ctx context.Context, amount float64, receipt string) (*ProviderOrder, error) {
	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": c.currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payment order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach payment provider: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, raw)
	}

	var order ProviderOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("parse provider response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("payment provider returned no order id")
	}
	return &order, nil
}

// VerifySignature checks a payment callback's keyed hash: HMAC-SHA256 over
// "<orderID>|<paymentID>" with the shared secret, hex encoded. The compare
// is constant-time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign produces the callback signature for the given references. Exposed
// for webhook tests and for providers run in sandbox mode.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
