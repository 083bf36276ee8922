package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	mongorepo "github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories/mongodb"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/pixel"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ InvoiceService = (*InvoiceServiceImpl)(nil)

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	invoiceRepo  repositories.InvoiceRepository
	raffleRepo   repositories.RaffleRepository
	referralRepo repositories.ReferralRepository
	mailer       Mailer
	tracker      ConversionTracker
}

// NewInvoiceService creates a new InvoiceServiceImpl
func NewInvoiceService(
	invoiceRepo repositories.InvoiceRepository,
	raffleRepo repositories.RaffleRepository,
	referralRepo repositories.ReferralRepository,
	mailer Mailer,
	tracker ConversionTracker,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		invoiceRepo:  invoiceRepo,
		raffleRepo:   raffleRepo,
		referralRepo: referralRepo,
		mailer:       mailer,
		tracker:      tracker,
	}
}

// Complete settles a paid invoice: it wins the pending->completed
// compare-and-swap, reserves the ticket numbers, credits the referral, and
// fires the buyer notification and conversion event. Both the synchronous
// confirmation path and the webhook path call this; only the writer that
// wins the swap runs the side effects, the loser gets ErrAlreadyCompleted.
func (s *InvoiceServiceImpl) Complete(ctx context.Context, orderNumber string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	won, err := s.invoiceRepo.CompletePending(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to complete invoice: %w", err)
	}
	if !won {
		slog.Info("invoice already settled", "orderNumber", orderNumber, "status", invoice.Status)
		return invoice, ErrAlreadyCompleted
	}

	first, err := s.raffleRepo.ReserveNumbers(ctx, invoice.RaffleID, invoice.TotalTickets)
	if err != nil {
		// The invoice stays completed; the reservation is retried by hand
		// from the admin panel. Losing the payment would be worse.
		slog.Error("number reservation failed after payment",
			"orderNumber", orderNumber, "raffleId", invoice.RaffleID.Hex(),
			"count", invoice.TotalTickets, "error", err)
		return nil, fmt.Errorf("failed to reserve numbers: %w", err)
	}

	numbers := make([]int, invoice.TotalTickets)
	for i := range numbers {
		numbers[i] = first + i
	}
	if err := s.invoiceRepo.SetAssignedNumbers(ctx, orderNumber, numbers); err != nil {
		slog.Error("failed to record assigned numbers", "orderNumber", orderNumber, "error", err)
	}
	invoice.Status = models.InvoiceStatusCompleted
	invoice.AssignedNumbers = numbers

	s.creditReferral(ctx, invoice)

	if err := s.mailer.SendPurchaseConfirmation(ctx, invoice.Email, invoice.FullName, invoice.OrderNumber, numbers); err != nil {
		slog.Error("confirmation email failed", "orderNumber", orderNumber, "error", err)
	}
	if err := s.tracker.TrackPurchase(ctx, pixel.PurchaseEvent{
		OrderNumber: invoice.OrderNumber,
		Value:       invoice.TotalPrice,
		Currency:    "USD",
		Email:       invoice.Email,
	}); err != nil {
		slog.Error("conversion tracking failed", "orderNumber", orderNumber, "error", err)
	}

	slog.Info("invoice completed",
		"orderNumber", orderNumber, "tickets", invoice.TotalTickets,
		"firstNumber", first, "total", invoice.TotalPrice)
	return invoice, nil
}

// CompleteByExternalRef settles the invoice holding a gateway reference
// (checkout session id, payphone transaction id). Webhook deliveries that
// carry no order number resolve the invoice this way.
func (s *InvoiceServiceImpl) CompleteByExternalRef(ctx context.Context, ref string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByExternalRef(ctx, ref)
	if err != nil {
		if errors.Is(err, mongorepo.ErrNotFound) {
			return nil, fmt.Errorf("no invoice for reference %s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invoice by reference: %w", err)
	}
	return s.Complete(ctx, invoice.OrderNumber)
}

// HandleStatusChange reacts to an external pending->completed status change
// notification. Any other transition is acknowledged and ignored.
func (s *InvoiceServiceImpl) HandleStatusChange(ctx context.Context, change *models.InvoiceStatusChange) error {
	if !change.IsPendingToCompleted() {
		slog.Info("ignoring status change",
			"orderNumber", change.Record.OrderNumber,
			"old", change.OldRecord.Status, "new", change.Record.Status)
		return nil
	}
	_, err := s.Complete(ctx, change.Record.OrderNumber)
	if err == ErrAlreadyCompleted {
		return nil
	}
	return err
}

// GetByOrderNumber returns a single invoice
func (s *InvoiceServiceImpl) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Invoice, error) {
	return s.invoiceRepo.FindByOrderNumber(ctx, orderNumber)
}

// ListByTenant returns a page of a tenant's invoices
func (s *InvoiceServiceImpl) ListByTenant(ctx context.Context, tenantID primitive.ObjectID, page, limit int) ([]*models.Invoice, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.invoiceRepo.FindByTenant(ctx, tenantID, page, limit)
}

// creditReferral accrues the referral commission for a completed sale.
// Referral failures never fail the purchase.
func (s *InvoiceServiceImpl) creditReferral(ctx context.Context, invoice *models.Invoice) {
	code := strings.ToUpper(strings.TrimSpace(invoice.ReferralCode))
	if code == "" {
		return
	}
	referral, err := s.referralRepo.FindByCode(ctx, invoice.TenantID, code)
	if err != nil {
		slog.Warn("referral code not found", "orderNumber", invoice.OrderNumber, "code", code)
		return
	}
	if !referral.IsActive {
		slog.Info("referral inactive, skipping commission", "orderNumber", invoice.OrderNumber, "code", code)
		return
	}
	commission := invoice.TotalPrice * referral.CommissionRate
	if err := s.referralRepo.IncrementStats(ctx, referral.ID, 1, commission); err != nil {
		slog.Error("failed to credit referral", "orderNumber", invoice.OrderNumber, "code", code, "error", err)
		return
	}
	slog.Info("referral credited", "orderNumber", invoice.OrderNumber, "code", code, "commission", commission)
}
