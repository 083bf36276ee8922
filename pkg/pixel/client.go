package pixel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts conversion events to a social ads API. Tracking is best
// effort: callers log failures and move on, a lost event never fails a
// checkout.
type Client struct {
	PixelID     string
	AccessToken string
	Mock        bool
	client      *http.Client
}

// PurchaseEvent is one completed purchase conversion
type PurchaseEvent struct {
	OrderNumber string  `json:"order_number"`
	Value       float64 `json:"value"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email,omitempty"`
}

// NewClient creates a new pixel client
func NewClient(pixelID, accessToken string, mock bool) *Client {
	return &Client{
		PixelID:     pixelID,
		AccessToken: accessToken,
		Mock:        mock,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// TrackPurchase reports a completed purchase
func (c *Client) TrackPurchase(ctx context.Context, event PurchaseEvent) error {
	if c.Mock {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name": "Purchase",
				"event_time": time.Now().Unix(),
				"event_id":   event.OrderNumber,
				"custom_data": map[string]interface{}{
					"value":    event.Value,
					"currency": event.Currency,
				},
			},
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://graph.facebook.com/v18.0/%s/events?access_token=%s", c.PixelID, c.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pixel event failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pixel API returned status %d", resp.StatusCode)
	}
	return nil
}
