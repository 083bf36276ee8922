package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client sends transactional email through an HTTP provider. With Mock
// enabled it accepts every send without touching the network.
type Client struct {
	BaseURL string
	APIKey  string
	From    string
	Mock    bool
	client  *http.Client
}

// NewClient creates a new mailer client
func NewClient(baseURL, apiKey, from string, mock bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		From:    from,
		Mock:    mock,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendPurchaseConfirmation emails the buyer their order number and numbers
func (c *Client) SendPurchaseConfirmation(ctx context.Context, to, fullName, orderNumber string, numbers []int) error {
	subject := fmt.Sprintf("Order %s confirmed", orderNumber)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your purchase is confirmed. Order number: <strong>%s</strong>.</p><p>Your numbers: %s</p>",
		fullName, orderNumber, formatNumbers(numbers),
	)
	return c.send(ctx, to, subject, html)
}

// SendBankTransferInstructions emails the buyer the manual transfer details
func (c *Client) SendBankTransferInstructions(ctx context.Context, to, fullName, orderNumber string, total float64) error {
	subject := fmt.Sprintf("Order %s - payment pending", orderNumber)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>We reserved your order <strong>%s</strong> (%.2f). It will be confirmed once your transfer is verified.</p>",
		fullName, orderNumber, total,
	)
	return c.send(ctx, to, subject, html)
}

func (c *Client) send(ctx context.Context, to, subject, html string) error {
	if c.Mock {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"from":    c.From,
		"to":      []string{to},
		"subject": subject,
		"html":    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}

func formatNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "assigned shortly"
	}
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
