package handlers

import (
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/gin-gonic/gin"
)

// PayphoneHandler handles payment-link return and confirmation requests
type PayphoneHandler struct {
	checkoutService services.CheckoutService
}

// NewPayphoneHandler creates a new PayphoneHandler
func NewPayphoneHandler(checkoutService services.CheckoutService) *PayphoneHandler {
	return &PayphoneHandler{checkoutService: checkoutService}
}

// Confirm handles POST /payphone/confirm. The storefront calls this when
// the buyer lands back from the payment link with the gateway's ids.
func (h *PayphoneHandler) Confirm(c *gin.Context) {
	var body struct {
		TransactionID string `json:"id" binding:"required"`
		ClientTxID    string `json:"clientTransactionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	invoice, err := h.checkoutService.ConfirmPayphone(c, body.TransactionID, body.ClientTxID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}
