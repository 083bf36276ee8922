package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/stripeapi"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// WebhookHandler handles asynchronous payment notifications
type WebhookHandler struct {
	stripe         *stripeapi.Client
	invoiceService services.InvoiceService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(stripe *stripeapi.Client, invoiceService services.InvoiceService) *WebhookHandler {
	return &WebhookHandler{stripe: stripe, invoiceService: invoiceService}
}

// Stripe handles POST /webhooks/stripe. The raw body must be verified
// against the Stripe-Signature header before any decoding.
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	event, err := h.stripe.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, stripeapi.ErrBadSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if event.Type != "checkout.session.completed" || event.Data.Object.PaymentStatus != "paid" {
		slog.Info("ignoring webhook event", "type", event.Type, "paymentStatus", event.Data.Object.PaymentStatus)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var completeErr error
	if orderNumber := event.Data.Object.ClientReferenceID; orderNumber != "" {
		_, completeErr = h.invoiceService.Complete(c, orderNumber)
	} else {
		// Sessions opened without a client_reference_id are resolved by the
		// session id stored on the invoice at checkout time.
		_, completeErr = h.invoiceService.CompleteByExternalRef(c, event.Data.Object.ID)
		if errors.Is(completeErr, services.ErrNotFound) {
			slog.Warn("webhook session matches no invoice", "sessionId", event.Data.Object.ID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
	}
	if completeErr != nil && !errors.Is(completeErr, services.ErrAlreadyCompleted) {
		// Non-2xx makes the processor retry the delivery.
		c.JSON(http.StatusInternalServerError, gin.H{"error": completeErr.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// InvoiceStatus handles POST /webhooks/invoice-status, the generic
// status-change feed used for bank transfer verification and back-office
// tooling.
func (h *WebhookHandler) InvoiceStatus(c *gin.Context) {
	var change models.InvoiceStatusChange
	if err := c.ShouldBindJSON(&change); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if change.Record.OrderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record.orderNumber is required"})
		return
	}

	if err := h.invoiceService.HandleStatusChange(c, &change); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
