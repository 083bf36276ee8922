package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/config"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checkoutFixture struct {
	svc         *CheckoutServiceImpl
	invoiceRepo *fakeInvoiceRepo
	raffleRepo  *fakeRaffleRepo
	card        *fakeCardGateway
	link        *fakeLinkGateway
	mailer      *fakeMailer
	tokens      *token.Service
	raffle      *models.Raffle
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	raffle := &models.Raffle{
		ID:           primitive.NewObjectID(),
		TenantID:     primitive.NewObjectID(),
		Price:        2.0,
		TotalNumbers: 1000,
		Status:       models.RaffleStatusActive,
	}
	f := &checkoutFixture{
		invoiceRepo: newFakeInvoiceRepo(),
		raffleRepo:  newFakeRaffleRepo(raffle),
		card:        &fakeCardGateway{},
		link:        &fakeLinkGateway{authorized: true},
		mailer:      &fakeMailer{},
		tokens:      token.NewService("test-secret", 15*time.Minute),
		raffle:      raffle,
	}
	cfg := &config.Config{}
	cfg.Stripe.SuccessURL = "https://raffles.example.com/success"
	cfg.Stripe.CancelURL = "https://raffles.example.com/cancel"

	invoiceService := NewInvoiceService(f.invoiceRepo, f.raffleRepo, newFakeReferralRepo(), f.mailer, &fakeTracker{})
	f.svc = NewCheckoutService(f.raffleRepo, f.invoiceRepo, &fakeTenantRepo{}, f.tokens, f.card, f.link, invoiceService, f.mailer, cfg)
	return f
}

func (f *checkoutFixture) issueToken(t *testing.T, amount int, price float64) string {
	t.Helper()
	resp, err := f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(),
		Amount:   amount,
		Price:    price,
	})
	require.NoError(t, err)
	return resp.Token
}

func (f *checkoutFixture) checkoutRequest(t *testing.T, amount int, price float64) *CheckoutRequest {
	return &CheckoutRequest{
		Token:    f.issueToken(t, amount, price),
		FullName: "Maria Lopez",
		Email:    "maria@example.com",
		LegalAge: true,
	}
}

func TestIssuePurchaseToken_RejectsInactiveRaffle(t *testing.T) {
	f := newCheckoutFixture(t)
	f.raffle.Status = models.RaffleStatusPaused

	_, err := f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(), Amount: 5, Price: 10,
	})
	assert.ErrorIs(t, err, ErrRaffleNotActive)
}

func TestIssuePurchaseToken_PriceCeiling(t *testing.T) {
	f := newCheckoutFixture(t)

	// at the ceiling: 5 tickets at 2.0 each
	_, err := f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(), Amount: 5, Price: 10,
	})
	assert.NoError(t, err)

	// a discounted price below the ceiling is fine
	_, err = f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(), Amount: 5, Price: 8,
	})
	assert.NoError(t, err)

	// above the ceiling is not
	_, err = f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(), Amount: 5, Price: 10.01,
	})
	assert.ErrorIs(t, err, ErrPriceExceedsMax)
}

func TestIssuePurchaseToken_RejectsZeroAmount(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.IssuePurchaseToken(context.Background(), &TokenRequest{
		RaffleID: f.raffle.ID.Hex(), Amount: 0, Price: 0,
	})
	assert.Error(t, err)
}

func TestValidatePurchase_Roundtrip(t *testing.T) {
	f := newCheckoutFixture(t)
	signed := f.issueToken(t, 5, 10)

	validation, err := f.svc.ValidatePurchase(context.Background(), signed)
	require.NoError(t, err)

	assert.Equal(t, f.raffle.ID.Hex(), validation.RaffleID)
	assert.Equal(t, 5, validation.Amount)
	assert.InDelta(t, 10.0, validation.Price, 1e-9)
	assert.Greater(t, validation.RemainingSeconds, 0)
	assert.LessOrEqual(t, validation.RemainingSeconds, 15*60)
}

func TestValidatePurchase_TamperedToken(t *testing.T) {
	f := newCheckoutFixture(t)
	signed := f.issueToken(t, 5, 10)

	_, err := f.svc.ValidatePurchase(context.Background(), signed+"x")
	assert.ErrorIs(t, err, token.ErrInvalid)
}

func TestValidatePurchase_RecheckAgainstLiveRaffle(t *testing.T) {
	f := newCheckoutFixture(t)
	signed := f.issueToken(t, 5, 10)

	// The raffle price dropped after issuance; the frozen token price now
	// exceeds the ceiling and the purchase must restart.
	f.raffle.Price = 1.0

	_, err := f.svc.ValidatePurchase(context.Background(), signed)
	assert.ErrorIs(t, err, ErrPriceExceedsMax)
}

func TestStartCardCheckout_CreatesPendingInvoiceBeforeGateway(t *testing.T) {
	f := newCheckoutFixture(t)

	resp, err := f.svc.StartCardCheckout(context.Background(), f.checkoutRequest(t, 5, 10))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.OrderNumber)
	assert.Equal(t, models.InvoiceStatusPending, resp.Status)
	assert.NotEmpty(t, resp.PaymentURL)

	stored, err := f.invoiceRepo.FindByOrderNumber(context.Background(), resp.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, stored.Status)
	assert.Equal(t, 5, stored.TotalTickets)
	assert.InDelta(t, 10.0, stored.TotalPrice, 1e-9)
	assert.Equal(t, "cs_test_"+resp.OrderNumber, stored.ExternalRef)

	require.Len(t, f.card.sessions, 1)
	assert.Equal(t, int64(1000), f.card.sessions[0].AmountCents)
}

func TestStartCardCheckout_GatewayFailureCancelsInvoice(t *testing.T) {
	f := newCheckoutFixture(t)
	f.card.err = errors.New("gateway down")

	_, err := f.svc.StartCardCheckout(context.Background(), f.checkoutRequest(t, 5, 10))
	require.Error(t, err)

	// The attempt left a cancelled invoice behind for reconciliation.
	require.Len(t, f.invoiceRepo.invoices, 1)
	for _, invoice := range f.invoiceRepo.invoices {
		assert.Equal(t, models.InvoiceStatusCancelled, invoice.Status)
	}
}

func TestStartCardCheckout_RetryGetsFreshOrderNumber(t *testing.T) {
	f := newCheckoutFixture(t)

	f.card.err = errors.New("gateway down")
	_, err := f.svc.StartCardCheckout(context.Background(), f.checkoutRequest(t, 5, 10))
	require.Error(t, err)

	f.card.err = nil
	resp, err := f.svc.StartCardCheckout(context.Background(), f.checkoutRequest(t, 5, 10))
	require.NoError(t, err)

	assert.Len(t, f.invoiceRepo.invoices, 2)
	cancelled := 0
	for orderNumber, invoice := range f.invoiceRepo.invoices {
		if invoice.Status == models.InvoiceStatusCancelled {
			cancelled++
			assert.NotEqual(t, resp.OrderNumber, orderNumber)
		}
	}
	assert.Equal(t, 1, cancelled)
}

func TestStartCheckout_FieldValidationBeforeToken(t *testing.T) {
	f := newCheckoutFixture(t)

	// Missing buyer fields fail before the garbage token is even looked at.
	_, err := f.svc.StartCardCheckout(context.Background(), &CheckoutRequest{Token: "garbage", LegalAge: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, token.ErrInvalid)

	_, err = f.svc.StartCardCheckout(context.Background(), &CheckoutRequest{
		Token: "garbage", FullName: "Maria Lopez", Email: "maria@example.com",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, token.ErrInvalid)
}

func TestStartBankTransfer_StaysPendingAndSendsInstructions(t *testing.T) {
	f := newCheckoutFixture(t)

	resp, err := f.svc.StartBankTransfer(context.Background(), f.checkoutRequest(t, 5, 10))
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPending, resp.Status)
	assert.Empty(t, resp.PaymentURL)
	assert.Equal(t, 1, f.mailer.instructions)

	stored, err := f.invoiceRepo.FindByOrderNumber(context.Background(), resp.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodBankTransfer, stored.PaymentMethod)
	assert.Equal(t, models.InvoiceStatusPending, stored.Status)
}

func TestConfirmPayphone_AuthorizedCompletesInvoice(t *testing.T) {
	f := newCheckoutFixture(t)

	resp, err := f.svc.StartPayphoneCheckout(context.Background(), f.checkoutRequest(t, 3, 6))
	require.NoError(t, err)

	invoice, err := f.svc.ConfirmPayphone(context.Background(), "tx-1", resp.OrderNumber)
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusCompleted, invoice.Status)
	assert.Equal(t, []int{1, 2, 3}, invoice.AssignedNumbers)
}

func TestConfirmPayphone_DuplicateConfirmationIsIdempotent(t *testing.T) {
	f := newCheckoutFixture(t)

	resp, err := f.svc.StartPayphoneCheckout(context.Background(), f.checkoutRequest(t, 3, 6))
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayphone(context.Background(), "tx-1", resp.OrderNumber)
	require.NoError(t, err)
	invoice, err := f.svc.ConfirmPayphone(context.Background(), "tx-1", resp.OrderNumber)
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusCompleted, invoice.Status)
	assert.Equal(t, 3, f.raffleRepo.raffles[f.raffle.ID].NumbersIssued)
}

func TestConfirmPayphone_RejectedCancelsInvoice(t *testing.T) {
	f := newCheckoutFixture(t)
	f.link.authorized = false

	resp, err := f.svc.StartPayphoneCheckout(context.Background(), f.checkoutRequest(t, 3, 6))
	require.NoError(t, err)

	_, err = f.svc.ConfirmPayphone(context.Background(), "tx-1", resp.OrderNumber)
	require.Error(t, err)

	stored, err := f.invoiceRepo.FindByOrderNumber(context.Background(), resp.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, stored.Status)
}
