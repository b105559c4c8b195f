package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// PaymentGateway is what the order and payment services need from the
// provider: an intent per order and signature verification for the
// synchronous confirmation path.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, receiptID string, amountMinor int64, currency string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

const defaultAPIURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay orders API.
type Client struct {
	KeyID     string
	KeySecret string
	APIURL    string
	HTTP      *http.Client
}

func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay configuration missing")
	}
	apiURL := os.Getenv("RAZORPAY_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		KeyID:     keyID,
		KeySecret: keySecret,
		APIURL:    apiURL,
		HTTP:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type providerOrderResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateIntent creates a provider-side order for the given amount (minor
// units) and returns its id.
func (c *Client) CreateIntent(ctx context.Context, receiptID string, amountMinor int64, currency string) (string, error) {
	payload := map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receiptID,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach razorpay: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var provider providerOrderResponse
	if err := json.Unmarshal(respBody, &provider); err != nil {
		return "", fmt.Errorf("failed to parse razorpay response: %v", err)
	}
	if provider.Error != nil {
		return "", fmt.Errorf("razorpay error: %s", provider.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("razorpay API error (%d): %s", resp.StatusCode, string(respBody))
	}
	if provider.ID == "" {
		return "", fmt.Errorf("razorpay returned empty order id")
	}
	return provider.ID, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256 over "<orderID>|<paymentID>" keyed with the secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
