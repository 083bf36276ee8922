package stripeapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrBadSignature is returned when a webhook payload fails HMAC verification.
var ErrBadSignature = errors.New("webhook signature verification failed")

// Client talks to the card processor's checkout and webhook APIs.
type Client struct {
	SecretKey     string
	WebhookSecret string
	Mock          bool
	client        *http.Client
}

// SessionRequest describes one hosted checkout session
type SessionRequest struct {
	OrderNumber string
	AmountCents int64
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
}

// Session is the created hosted checkout session
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Event is the subset of a webhook event this service acts on
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			ClientReferenceID string `json:"client_reference_id"`
			PaymentStatus     string `json:"payment_status"`
		} `json:"object"`
	} `json:"data"`
}

// NewClient creates a new card-processor client
func NewClient(secretKey, webhookSecret string, mock bool) *Client {
	return &Client{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		Mock:          mock,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCheckoutSession creates a hosted payment session for one invoice.
// The order number travels as client_reference_id so the webhook can find
// the invoice again.
func (c *Client) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if c.Mock {
		return &Session{
			ID:  fmt.Sprintf("cs_mock_%d", time.Now().UnixNano()),
			URL: "https://checkout.example.test/mock/" + req.OrderNumber,
		}, nil
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", req.OrderNumber)
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Description)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.stripe.com/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(c.SecretKey, "")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("card processor returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ParseWebhook verifies the signature header and decodes the event. The
// header carries `t=<unix>,v1=<hex hmac>` over "<t>.<payload>".
func (c *Client) ParseWebhook(payload []byte, sigHeader string) (*Event, error) {
	if err := c.verifySignature(payload, sigHeader); err != nil {
		return nil, err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	return &event, nil
}

func (c *Client) verifySignature(payload []byte, sigHeader string) error {
	var timestamp, signature string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signature = kv[1]
		}
	}
	if timestamp == "" || signature == "" {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// SignPayload produces a valid signature header for a payload. Used by tests
// and the mock flow.
func (c *Client) SignPayload(payload []byte, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}
