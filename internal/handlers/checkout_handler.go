package handlers

import (
	"errors"
	"net/http"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/token"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the public checkout flow
type CheckoutHandler struct {
	checkoutService services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// IssuePurchaseToken handles POST /purchase-token
func (h *CheckoutHandler) IssuePurchaseToken(c *gin.Context) {
	var req services.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.checkoutService.IssuePurchaseToken(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidatePurchase handles POST /validate-purchase. Expired tokens answer
// 410 so the storefront can distinguish "start over" from "tampered".
func (h *CheckoutHandler) ValidatePurchase(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	validation, err := h.checkoutService.ValidatePurchase(c, body.Token)
	if err != nil {
		writeTokenError(c, err)
		return
	}

	c.JSON(http.StatusOK, validation)
}

// Checkout handles POST /checkout. The method field selects the payment
// flow; all flows share the same buyer fields.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var body struct {
		Method models.PaymentMethod `json:"method" binding:"required"`
		services.CheckoutRequest
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var (
		resp *services.CheckoutResponse
		err  error
	)
	switch body.Method {
	case models.PaymentMethodCard:
		resp, err = h.checkoutService.StartCardCheckout(c, &body.CheckoutRequest)
	case models.PaymentMethodPayphone:
		resp, err = h.checkoutService.StartPayphoneCheckout(c, &body.CheckoutRequest)
	case models.PaymentMethodBankTransfer:
		resp, err = h.checkoutService.StartBankTransfer(c, &body.CheckoutRequest)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired), errors.Is(err, token.ErrInvalid):
			writeTokenError(c, err)
		case errors.Is(err, services.ErrPriceExceedsMax), errors.Is(err, services.ErrRaffleNotActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeTokenError maps purchase-token failures onto their status codes
func writeTokenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, token.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Purchase token has expired"})
	case errors.Is(err, token.ErrInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid purchase token"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
