package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	mongorepo "github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories/mongodb"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ TenantService = (*TenantServiceImpl)(nil)

// TenantServiceImpl implements tenant resolution and payment configuration
type TenantServiceImpl struct {
	tenantRepo repositories.TenantRepository
}

// NewTenantService creates a new TenantServiceImpl
func NewTenantService(tenantRepo repositories.TenantRepository) *TenantServiceImpl {
	return &TenantServiceImpl{
		tenantRepo: tenantRepo,
	}
}

// CreateTenant creates a new tenant
func (s *TenantServiceImpl) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.Slug == "" {
		return errors.New("tenant slug is required")
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}
	tenant.CustomDomain = utils.NormalizeDomain(tenant.CustomDomain)
	return s.tenantRepo.Create(ctx, tenant)
}

// GetTenants lists all tenants
func (s *TenantServiceImpl) GetTenants(ctx context.Context) ([]*models.Tenant, error) {
	return s.tenantRepo.FindAll(ctx)
}

// GetByDomain resolves a custom domain to its tenant
func (s *TenantServiceImpl) GetByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	domain = utils.NormalizeDomain(domain)
	if domain == "" {
		return nil, errors.New("domain is required")
	}

	tenant, err := s.tenantRepo.FindByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, mongorepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve domain: %w", err)
	}
	return tenant, nil
}

// GetPaymentConfig returns the storefront-safe payment configuration of a
// tenant. Secret gateway credentials are stripped.
func (s *TenantServiceImpl) GetPaymentConfig(ctx context.Context, tenantID primitive.ObjectID) (*models.TenantPaymentConfig, error) {
	config, err := s.tenantRepo.GetPaymentConfig(ctx, tenantID)
	if err != nil {
		if errors.Is(err, mongorepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load payment config: %w", err)
	}

	public := config.PublicView()
	return &public, nil
}

// UpsertPaymentConfig stores a tenant's payment configuration
func (s *TenantServiceImpl) UpsertPaymentConfig(ctx context.Context, config *models.TenantPaymentConfig) error {
	if config.TenantID.IsZero() {
		return errors.New("tenant id is required")
	}
	return s.tenantRepo.UpsertPaymentConfig(ctx, config)
}

// FeaturesForRole resolves the feature set of an admin role. Missing roles
// and roles without features are an explicit not-found / empty answer, never
// a nil dereference on an absent nested document.
func (s *TenantServiceImpl) FeaturesForRole(ctx context.Context, roleName string) ([]models.Feature, error) {
	role, err := s.tenantRepo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, mongorepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load role: %w", err)
	}
	return role.Features, nil
}
