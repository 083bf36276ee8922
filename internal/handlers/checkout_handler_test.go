package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/services"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCheckoutService fails every operation with a fixed error so the
// handler's status-code mapping can be pinned down.
type stubCheckoutService struct {
	err error
}

func (s *stubCheckoutService) IssuePurchaseToken(ctx context.Context, req *services.TokenRequest) (*services.TokenResponse, error) {
	return nil, s.err
}

func (s *stubCheckoutService) ValidatePurchase(ctx context.Context, tokenString string) (*services.PurchaseValidation, error) {
	return nil, s.err
}

func (s *stubCheckoutService) StartCardCheckout(ctx context.Context, req *services.CheckoutRequest) (*services.CheckoutResponse, error) {
	return nil, s.err
}

func (s *stubCheckoutService) StartPayphoneCheckout(ctx context.Context, req *services.CheckoutRequest) (*services.CheckoutResponse, error) {
	return nil, s.err
}

func (s *stubCheckoutService) StartBankTransfer(ctx context.Context, req *services.CheckoutRequest) (*services.CheckoutResponse, error) {
	return nil, s.err
}

func (s *stubCheckoutService) ConfirmPayphone(ctx context.Context, transactionID, clientTxID string) (*models.Invoice, error) {
	return nil, s.err
}

func checkoutRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCheckoutHandler(&stubCheckoutService{err: err})

	router := gin.New()
	router.POST("/purchase-token", h.IssuePurchaseToken)
	router.POST("/validate-purchase", h.ValidatePurchase)
	router.POST("/checkout", h.Checkout)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const (
	tokenRequestBody = `{"raffleId":"64a000000000000000000001","amount":5,"price":10}`
	checkoutCardBody = `{"method":"CARD","token":"tok","fullName":"Maria Lopez","email":"maria@example.com","legalAge":true}`
)

func TestIssuePurchaseToken_PriceExceedsMaxIsBadRequest(t *testing.T) {
	router := checkoutRouter(services.ErrPriceExceedsMax)

	w := postJSON(t, router, "/purchase-token", tokenRequestBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssuePurchaseToken_RaffleNotActiveIsBadRequest(t *testing.T) {
	router := checkoutRouter(services.ErrRaffleNotActive)

	w := postJSON(t, router, "/purchase-token", tokenRequestBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidatePurchase_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"price exceeds max", services.ErrPriceExceedsMax, http.StatusBadRequest},
		{"expired token", token.ErrExpired, http.StatusGone},
		{"tampered token", token.ErrInvalid, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := checkoutRouter(tt.err)

			w := postJSON(t, router, "/validate-purchase", `{"token":"tok"}`)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCheckout_PriceExceedsMaxIsBadRequest(t *testing.T) {
	router := checkoutRouter(services.ErrPriceExceedsMax)

	w := postJSON(t, router, "/checkout", checkoutCardBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
