package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/config"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/utils"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/payphone"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/stripeapi"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ CheckoutService = (*CheckoutServiceImpl)(nil)

// TokenRequest is the body of POST /purchase-token
type TokenRequest struct {
	RaffleID string  `json:"raffleId" binding:"required"`
	Amount   int     `json:"amount" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
}

// TokenResponse carries a freshly issued purchase token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PurchaseValidation is the answer to re-validating a purchase token
type PurchaseValidation struct {
	RaffleID         string  `json:"raffleId"`
	Amount           int     `json:"amount"`
	Price            float64 `json:"price"`
	RemainingSeconds int     `json:"remainingSeconds"`
}

// CheckoutRequest is the buyer-submitted body of a checkout attempt
type CheckoutRequest struct {
	Token        string `json:"token" binding:"required"`
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode"`
	LegalAge     bool   `json:"legalAge"`
}

// CheckoutResponse tells the storefront where the attempt stands
type CheckoutResponse struct {
	OrderNumber  string               `json:"orderNumber"`
	Status       models.InvoiceStatus `json:"status"`
	PaymentURL   string               `json:"paymentUrl,omitempty"`
	BankAccounts []models.BankAccount `json:"bankAccounts,omitempty"`
}

// priceTolerance absorbs float rounding when comparing requested against
// computed prices.
const priceTolerance = 1e-6

// CheckoutServiceImpl drives one checkout attempt end to end
type CheckoutServiceImpl struct {
	raffleRepo     repositories.RaffleRepository
	invoiceRepo    repositories.InvoiceRepository
	tenantRepo     repositories.TenantRepository
	tokens         *token.Service
	card           CardGateway
	link           LinkGateway
	invoiceService InvoiceService
	mailer         Mailer
	cfg            *config.Config
}

// NewCheckoutService creates a new CheckoutServiceImpl
func NewCheckoutService(
	raffleRepo repositories.RaffleRepository,
	invoiceRepo repositories.InvoiceRepository,
	tenantRepo repositories.TenantRepository,
	tokens *token.Service,
	card CardGateway,
	link LinkGateway,
	invoiceService InvoiceService,
	mailer Mailer,
	cfg *config.Config,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		raffleRepo:     raffleRepo,
		invoiceRepo:    invoiceRepo,
		tenantRepo:     tenantRepo,
		tokens:         tokens,
		card:           card,
		link:           link,
		invoiceService: invoiceService,
		mailer:         mailer,
		cfg:            cfg,
	}
}

// IssuePurchaseToken validates the requested amount and price against the
// live raffle and signs a token freezing them for the checkout window.
func (s *CheckoutServiceImpl) IssuePurchaseToken(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	raffleID, err := primitive.ObjectIDFromHex(req.RaffleID)
	if err != nil {
		return nil, errors.New("invalid raffle id")
	}

	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}
	if raffle.Status != models.RaffleStatusActive {
		return nil, ErrRaffleNotActive
	}

	if err := checkOfferAgainstRaffle(req.Amount, req.Price, raffle); err != nil {
		return nil, err
	}

	signed, expiresAt, err := s.tokens.Issue(req.Amount, req.Price, raffle.ID.Hex(), raffle.TenantID.Hex())
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidatePurchase re-validates a token server-side against live raffle
// data. The signature already prevents tampering; the price ceiling is a
// defense-in-depth business rule on top of it.
func (s *CheckoutServiceImpl) ValidatePurchase(ctx context.Context, tokenString string) (*PurchaseValidation, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	raffleID, err := primitive.ObjectIDFromHex(claims.RaffleID)
	if err != nil {
		return nil, token.ErrInvalid
	}
	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}

	if err := checkOfferAgainstRaffle(claims.Amount, claims.Price, raffle); err != nil {
		return nil, err
	}

	return &PurchaseValidation{
		RaffleID:         claims.RaffleID,
		Amount:           claims.Amount,
		Price:            claims.Price,
		RemainingSeconds: int(claims.Remaining(time.Now()).Seconds()),
	}, nil
}

// StartCardCheckout creates a pending invoice and a hosted card session
func (s *CheckoutServiceImpl) StartCardCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	invoice, err := s.openInvoice(ctx, req, models.PaymentMethodCard)
	if err != nil {
		return nil, err
	}

	session, err := s.card.CreateCheckoutSession(ctx, stripeapi.SessionRequest{
		OrderNumber: invoice.OrderNumber,
		AmountCents: int64(math.Round(invoice.TotalPrice * 100)),
		Currency:    "usd",
		Description: fmt.Sprintf("%d raffle tickets", invoice.TotalTickets),
		SuccessURL:  s.cfg.Stripe.SuccessURL,
		CancelURL:   s.cfg.Stripe.CancelURL,
	})
	if err != nil {
		return nil, s.failAttempt(ctx, invoice, err)
	}

	if err := s.invoiceRepo.SetExternalRef(ctx, invoice.OrderNumber, session.ID); err != nil {
		slog.Error("failed to record session ref", "orderNumber", invoice.OrderNumber, "error", err)
	}

	return &CheckoutResponse{
		OrderNumber: invoice.OrderNumber,
		Status:      models.InvoiceStatusPending,
		PaymentURL:  session.URL,
	}, nil
}

// StartPayphoneCheckout creates a pending invoice and a payment link
func (s *CheckoutServiceImpl) StartPayphoneCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	invoice, err := s.openInvoice(ctx, req, models.PaymentMethodPayphone)
	if err != nil {
		return nil, err
	}

	linkResp, err := s.link.CreateLink(ctx, payphone.LinkRequest{
		Amount:      int(math.Round(invoice.TotalPrice * 100)),
		ClientTxID:  invoice.OrderNumber,
		Reference:   fmt.Sprintf("%d raffle tickets", invoice.TotalTickets),
		ResponseURL: s.cfg.Stripe.SuccessURL,
	})
	if err != nil {
		return nil, s.failAttempt(ctx, invoice, err)
	}

	if err := s.invoiceRepo.SetExternalRef(ctx, invoice.OrderNumber, linkResp.PaymentID); err != nil {
		slog.Error("failed to record payment ref", "orderNumber", invoice.OrderNumber, "error", err)
	}

	return &CheckoutResponse{
		OrderNumber: invoice.OrderNumber,
		Status:      models.InvoiceStatusPending,
		PaymentURL:  linkResp.PayWithCard,
	}, nil
}

// StartBankTransfer creates a pending invoice for a manual transfer. The
// invoice stays pending until the transfer is verified by an admin or a
// status webhook.
func (s *CheckoutServiceImpl) StartBankTransfer(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	invoice, err := s.openInvoice(ctx, req, models.PaymentMethodBankTransfer)
	if err != nil {
		return nil, err
	}

	var accounts []models.BankAccount
	if cfg, err := s.tenantRepo.GetPaymentConfig(ctx, invoice.TenantID); err == nil {
		accounts = cfg.BankAccounts
	}

	if err := s.mailer.SendBankTransferInstructions(ctx, invoice.Email, invoice.FullName, invoice.OrderNumber, invoice.TotalPrice); err != nil {
		slog.Error("failed to send transfer instructions", "orderNumber", invoice.OrderNumber, "error", err)
	}

	return &CheckoutResponse{
		OrderNumber:  invoice.OrderNumber,
		Status:       models.InvoiceStatusPending,
		BankAccounts: accounts,
	}, nil
}

// ConfirmPayphone confirms a returning payment-link transaction with the
// gateway and completes the invoice. Completion is idempotent with the
// webhook path.
func (s *CheckoutServiceImpl) ConfirmPayphone(ctx context.Context, transactionID, clientTxID string) (*models.Invoice, error) {
	confirm, err := s.link.Confirm(ctx, transactionID, clientTxID)
	if err != nil {
		return nil, fmt.Errorf("gateway confirmation failed: %w", err)
	}
	if !confirm.Authorized {
		if err := s.invoiceRepo.MarkCancelled(ctx, clientTxID); err != nil {
			slog.Error("failed to cancel rejected attempt", "orderNumber", clientTxID, "error", err)
		}
		return nil, fmt.Errorf("payment not authorized (status %s)", confirm.TransactionStatus)
	}

	invoice, err := s.invoiceService.Complete(ctx, clientTxID)
	if err != nil && !errors.Is(err, ErrAlreadyCompleted) {
		return nil, err
	}
	return invoice, nil
}

// openInvoice runs the synchronous validations, re-validates the purchase
// token, and creates the durable pending invoice before any gateway call.
func (s *CheckoutServiceImpl) openInvoice(ctx context.Context, req *CheckoutRequest, method models.PaymentMethod) (*models.Invoice, error) {
	// Cheap local checks before anything touches the network.
	if req.FullName == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if !req.LegalAge {
		return nil, errors.New("legal age confirmation is required")
	}

	claims, err := s.tokens.Validate(req.Token)
	if err != nil {
		return nil, err
	}

	raffleID, err := primitive.ObjectIDFromHex(claims.RaffleID)
	if err != nil {
		return nil, token.ErrInvalid
	}
	tenantID, err := primitive.ObjectIDFromHex(claims.TenantID)
	if err != nil {
		return nil, token.ErrInvalid
	}

	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}
	if err := checkOfferAgainstRaffle(claims.Amount, claims.Price, raffle); err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		OrderNumber:   utils.NewOrderNumber(),
		TenantID:      tenantID,
		RaffleID:      raffleID,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Amount:        claims.Amount,
		TotalTickets:  claims.Amount,
		TotalPrice:    claims.Price,
		PaymentMethod: method,
		Status:        models.InvoiceStatusPending,
		ReferralCode:  req.ReferralCode,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	slog.Info("checkout attempt opened",
		"orderNumber", invoice.OrderNumber, "method", method,
		"raffleId", raffle.ID.Hex(), "amount", invoice.Amount, "total", invoice.TotalPrice)
	return invoice, nil
}

// failAttempt closes a failed attempt. The invoice is cancelled but kept for
// reconciliation; the next attempt will open a new invoice under a new order
// number.
func (s *CheckoutServiceImpl) failAttempt(ctx context.Context, invoice *models.Invoice, cause error) error {
	slog.Error("payment gateway rejected attempt",
		"orderNumber", invoice.OrderNumber, "method", invoice.PaymentMethod, "error", cause)
	if err := s.invoiceRepo.MarkCancelled(ctx, invoice.OrderNumber); err != nil {
		slog.Error("failed to cancel invoice", "orderNumber", invoice.OrderNumber, "error", err)
	}
	return fmt.Errorf("payment could not be started: %w", cause)
}

// checkOfferAgainstRaffle enforces the price ceiling: the requested total
// may not exceed amount times the raffle's live base price.
func checkOfferAgainstRaffle(amount int, price float64, raffle *models.Raffle) error {
	if amount < 1 {
		return errors.New("amount must be at least 1")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	if price > float64(amount)*raffle.Price+priceTolerance {
		return ErrPriceExceedsMax
	}
	return nil
}
