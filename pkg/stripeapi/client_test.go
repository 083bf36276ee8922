package stripeapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCompletedPayload = `{
	"id": "evt_1",
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "cs_1",
			"client_reference_id": "ORD-20260830-ABC123DEF456",
			"payment_status": "paid"
		}
	}
}`

func TestParseWebhook_ValidSignature(t *testing.T) {
	c := NewClient("sk_test", "whsec_test", false)
	payload := []byte(sessionCompletedPayload)
	header := c.SignPayload(payload, time.Now())

	event, err := c.ParseWebhook(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "ORD-20260830-ABC123DEF456", event.Data.Object.ClientReferenceID)
	assert.Equal(t, "paid", event.Data.Object.PaymentStatus)
}

func TestParseWebhook_WrongSecret(t *testing.T) {
	payload := []byte(sessionCompletedPayload)
	header := NewClient("sk_test", "whsec_other", false).SignPayload(payload, time.Now())

	_, err := NewClient("sk_test", "whsec_test", false).ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseWebhook_TamperedPayload(t *testing.T) {
	c := NewClient("sk_test", "whsec_test", false)
	payload := []byte(sessionCompletedPayload)
	header := c.SignPayload(payload, time.Now())

	tampered := []byte(`{"type":"checkout.session.completed"}`)
	_, err := c.ParseWebhook(tampered, header)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestParseWebhook_MalformedHeader(t *testing.T) {
	c := NewClient("sk_test", "whsec_test", false)
	payload := []byte(sessionCompletedPayload)

	for _, header := range []string{"", "t=123", "v1=abcd", "garbage"} {
		_, err := c.ParseWebhook(payload, header)
		assert.ErrorIs(t, err, ErrBadSignature, "header %q", header)
	}
}

func TestCreateCheckoutSession_Mock(t *testing.T) {
	c := NewClient("", "", true)

	session, err := c.CreateCheckoutSession(context.Background(), SessionRequest{OrderNumber: "ORD-1", AmountCents: 1000, Currency: "usd"})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Contains(t, session.URL, "ORD-1")
}
