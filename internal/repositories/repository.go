package repositories

import (
	"context"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	FindByDomain(ctx context.Context, domain string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	FindAll(ctx context.Context) ([]*models.Tenant, error)
	GetPaymentConfig(ctx context.Context, tenantID primitive.ObjectID) (*models.TenantPaymentConfig, error)
	UpsertPaymentConfig(ctx context.Context, config *models.TenantPaymentConfig) error
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
}

// RaffleRepository defines the interface for raffle data operations
type RaffleRepository interface {
	Create(ctx context.Context, raffle *models.Raffle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error)
	FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Raffle, error)
	FindByStatus(ctx context.Context, tenantID primitive.ObjectID, status models.RaffleStatus) ([]*models.Raffle, error)
	Update(ctx context.Context, raffle *models.Raffle) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ReserveNumbers atomically advances the raffle's issued-numbers counter
	// by count and returns the first number of the reserved block.
	ReserveNumbers(ctx context.Context, id primitive.ObjectID, count int) (int, error)
	// ClearPoolRef removes the pool reference from every raffle pointing at
	// the deleted pool. Raffles themselves are not deleted.
	ClearPoolRef(ctx context.Context, poolID primitive.ObjectID) error
}

// NumberPoolRepository defines the interface for number pool data operations
type NumberPoolRepository interface {
	Create(ctx context.Context, pool *models.NumberPool) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.NumberPool, error)
	FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.NumberPool, error)
	Update(ctx context.Context, pool *models.NumberPool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	InsertNumbers(ctx context.Context, poolID primitive.ObjectID, numbers []int) (int, error)
	CountNumbers(ctx context.Context, poolID primitive.ObjectID) (int64, error)
}

// AssignmentRepository defines the interface for range assignment operations
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.NumberAssignment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.NumberAssignment, error)
	FindByReferral(ctx context.Context, referralID primitive.ObjectID) ([]*models.NumberAssignment, error)
	FindAssignedByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.NumberAssignment, error)
	Update(ctx context.Context, assignment *models.NumberAssignment) error
}

// TicketPackageRepository defines the interface for ticket package operations
type TicketPackageRepository interface {
	Create(ctx context.Context, pkg *models.TicketPackage) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TicketPackage, error)
	FindByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.TicketPackage, error)
	Update(ctx context.Context, pkg *models.TicketPackage) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Invoice, error)
	FindByExternalRef(ctx context.Context, ref string) (*models.Invoice, error)
	FindByTenant(ctx context.Context, tenantID primitive.ObjectID, page, limit int) ([]*models.Invoice, error)
	// CompletePending flips PENDING -> COMPLETED as a compare-and-swap. It
	// returns false when no pending invoice matched, i.e. the other writer
	// already completed it.
	CompletePending(ctx context.Context, orderNumber string) (bool, error)
	MarkCancelled(ctx context.Context, orderNumber string) error
	SetExternalRef(ctx context.Context, orderNumber, ref string) error
	SetAssignedNumbers(ctx context.Context, orderNumber string, numbers []int) error
	Count(ctx context.Context, tenantID primitive.ObjectID) (int64, error)
}

// ReferralRepository defines the interface for referral data operations
type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error)
	FindByCode(ctx context.Context, tenantID primitive.ObjectID, code string) (*models.Referral, error)
	FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Referral, error)
	Update(ctx context.Context, referral *models.Referral) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementStats(ctx context.Context, id primitive.ObjectID, sales int, commission float64) error
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
