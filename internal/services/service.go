package services

import (
	"context"
	"errors"
	"io"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/utils"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/payphone"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/pixel"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/stripeapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors shared across services and handlers.
var (
	ErrInvalidRange     = errors.New("invalid number range")
	ErrRangeOverlap     = errors.New("range overlaps an existing assignment")
	ErrAlreadyCompleted = errors.New("invoice already completed")
	ErrPriceExceedsMax  = errors.New("price exceeds maximum for requested amount")
	ErrRaffleNotActive  = errors.New("raffle is not active")
	ErrPoolNotCustom    = errors.New("pool does not accept imported numbers")
	ErrNotFound         = errors.New("not found")
)

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// TenantService defines the interface for tenant operations
type TenantService interface {
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	GetTenants(ctx context.Context) ([]*models.Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*models.Tenant, error)
	GetPaymentConfig(ctx context.Context, tenantID primitive.ObjectID) (*models.TenantPaymentConfig, error)
	UpsertPaymentConfig(ctx context.Context, config *models.TenantPaymentConfig) error
	FeaturesForRole(ctx context.Context, roleName string) ([]models.Feature, error)
}

// RaffleService defines the interface for raffle operations
type RaffleService interface {
	CreateRaffle(ctx context.Context, raffle *models.Raffle) error
	GetRaffle(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error)
	GetRafflesByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Raffle, error)
	UpdateRaffle(ctx context.Context, raffle *models.Raffle) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RaffleStatus) (*models.Raffle, error)
	DeleteRaffle(ctx context.Context, id primitive.ObjectID) error
}

// TicketPackageService defines the interface for ticket package operations
type TicketPackageService interface {
	GetOffers(ctx context.Context, raffleID primitive.ObjectID) ([]models.CalculatedTicketPackage, error)
	CreatePackage(ctx context.Context, pkg *models.TicketPackage) error
	GetPackages(ctx context.Context, raffleID primitive.ObjectID) ([]*models.TicketPackage, error)
	UpdatePackage(ctx context.Context, pkg *models.TicketPackage) error
	DeletePackage(ctx context.Context, id primitive.ObjectID) error
}

// PoolService defines the interface for number pool operations
type PoolService interface {
	CreatePool(ctx context.Context, pool *models.NumberPool) error
	GetPool(ctx context.Context, id primitive.ObjectID) (*models.NumberPool, error)
	GetPoolsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.NumberPool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PoolStatus) (*models.NumberPool, error)
	DeletePool(ctx context.Context, id primitive.ObjectID) error
	ImportNumbers(ctx context.Context, poolID primitive.ObjectID, filename string, r io.Reader) (*utils.ParseResult, error)
}

// AssignmentService defines the interface for the range assignment ledger
type AssignmentService interface {
	Assign(ctx context.Context, raffleID, referralID primitive.ObjectID, start, end int) (*models.NumberAssignment, error)
	Return(ctx context.Context, id primitive.ObjectID) (*models.NumberAssignment, error)
	ListByReferral(ctx context.Context, referralID primitive.ObjectID) ([]models.AssignmentWithRaffle, error)
	ActiveInventory(ctx context.Context, referralID primitive.ObjectID) (int, error)
}

// ReferralService defines the interface for referral operations
type ReferralService interface {
	CreateReferral(ctx context.Context, referral *models.Referral) error
	GetReferralsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Referral, error)
	UpdateReferral(ctx context.Context, referral *models.Referral) error
	DeleteReferral(ctx context.Context, id primitive.ObjectID) error
	GetStats(ctx context.Context, id primitive.ObjectID) (*models.ReferralStats, error)
}

// CheckoutService drives one checkout attempt from token issuance to a
// pending invoice handed to a payment flow.
type CheckoutService interface {
	IssuePurchaseToken(ctx context.Context, req *TokenRequest) (*TokenResponse, error)
	ValidatePurchase(ctx context.Context, tokenString string) (*PurchaseValidation, error)
	StartCardCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error)
	StartPayphoneCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error)
	StartBankTransfer(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error)
	ConfirmPayphone(ctx context.Context, transactionID, clientTxID string) (*models.Invoice, error)
}

// InvoiceService owns the invoice lifecycle. Complete is safe to call from
// both the synchronous checkout path and asynchronous webhooks.
type InvoiceService interface {
	Complete(ctx context.Context, orderNumber string) (*models.Invoice, error)
	CompleteByExternalRef(ctx context.Context, ref string) (*models.Invoice, error)
	HandleStatusChange(ctx context.Context, change *models.InvoiceStatusChange) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Invoice, error)
	ListByTenant(ctx context.Context, tenantID primitive.ObjectID, page, limit int) ([]*models.Invoice, error)
}

// CardGateway is the card processor surface the checkout flow needs
type CardGateway interface {
	CreateCheckoutSession(ctx context.Context, req stripeapi.SessionRequest) (*stripeapi.Session, error)
}

// LinkGateway is the payment-link gateway surface the checkout flow needs
type LinkGateway interface {
	CreateLink(ctx context.Context, req payphone.LinkRequest) (*payphone.LinkResponse, error)
	Confirm(ctx context.Context, transactionID, clientTxID string) (*payphone.ConfirmResponse, error)
}

// Mailer sends buyer-facing transactional email
type Mailer interface {
	SendPurchaseConfirmation(ctx context.Context, to, fullName, orderNumber string, numbers []int) error
	SendBankTransferInstructions(ctx context.Context, to, fullName, orderNumber string, total float64) error
}

// ConversionTracker reports completed purchases to the ads pixel
type ConversionTracker interface {
	TrackPurchase(ctx context.Context, event pixel.PurchaseEvent) error
}
