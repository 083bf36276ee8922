package payphone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the Payphone payment-link API. With Mock enabled it
// fabricates approved transactions so the checkout flow can run without
// gateway credentials.
type Client struct {
	BaseURL string
	Token   string
	StoreID string
	Mock    bool
	client  *http.Client
}

// LinkRequest is the payload for creating a payment link
type LinkRequest struct {
	Amount          int    `json:"amount"` // cents
	ClientTxID      string `json:"clientTransactionId"`
	Reference       string `json:"reference"`
	ResponseURL     string `json:"responseUrl"`
	CancellationURL string `json:"cancellationUrl,omitempty"`
}

// LinkResponse is the gateway's answer to a link creation
type LinkResponse struct {
	PaymentID   string `json:"paymentId"`
	PayWithCard string `json:"payWithCard"`
}

// ConfirmResponse is the gateway's answer to a transaction confirmation
type ConfirmResponse struct {
	TransactionID     string `json:"transactionId"`
	ClientTxID        string `json:"clientTransactionId"`
	StatusCode        int    `json:"statusCode"`
	TransactionStatus string `json:"transactionStatus"`
	Authorized        bool   `json:"-"`
}

// NewClient creates a new Payphone client
func NewClient(baseURL, token, storeID string, mock bool) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		StoreID: storeID,
		Mock:    mock,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateLink creates a payment link for one checkout attempt
func (c *Client) CreateLink(ctx context.Context, req LinkRequest) (*LinkResponse, error) {
	if c.Mock {
		return &LinkResponse{
			PaymentID:   fmt.Sprintf("PP-MOCK-%d", time.Now().UnixNano()),
			PayWithCard: "https://pay.example.test/mock/" + req.ClientTxID,
		}, nil
	}

	var out LinkResponse
	if err := c.post(ctx, "/button/Prepare", req, &out); err != nil {
		return nil, fmt.Errorf("payphone prepare failed: %w", err)
	}
	return &out, nil
}

// Confirm confirms a transaction after the buyer returns from the gateway.
// Status code 3 is the gateway's "approved".
func (c *Client) Confirm(ctx context.Context, transactionID, clientTxID string) (*ConfirmResponse, error) {
	if c.Mock {
		return &ConfirmResponse{
			TransactionID:     transactionID,
			ClientTxID:        clientTxID,
			StatusCode:        3,
			TransactionStatus: "Approved",
			Authorized:        true,
		}, nil
	}

	body := map[string]string{
		"id":         transactionID,
		"clientTxId": clientTxID,
	}
	var out ConfirmResponse
	if err := c.post(ctx, "/button/V2/Confirm", body, &out); err != nil {
		return nil, fmt.Errorf("payphone confirm failed: %w", err)
	}
	out.Authorized = out.StatusCode == 3
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
