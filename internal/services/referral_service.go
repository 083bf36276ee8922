package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ ReferralService = (*ReferralServiceImpl)(nil)

// ReferralServiceImpl implements ambassador management
type ReferralServiceImpl struct {
	referralRepo      repositories.ReferralRepository
	assignmentService AssignmentService
}

// NewReferralService creates a new ReferralServiceImpl
func NewReferralService(referralRepo repositories.ReferralRepository, assignmentService AssignmentService) *ReferralServiceImpl {
	return &ReferralServiceImpl{
		referralRepo:      referralRepo,
		assignmentService: assignmentService,
	}
}

// CreateReferral creates a new referral
func (s *ReferralServiceImpl) CreateReferral(ctx context.Context, referral *models.Referral) error {
	if referral.TenantID.IsZero() {
		return errors.New("tenant id is required")
	}
	referral.Code = strings.ToUpper(strings.TrimSpace(referral.Code))
	if referral.Code == "" {
		return errors.New("referral code is required")
	}
	if referral.CommissionRate < 0 || referral.CommissionRate > 1 {
		return errors.New("commission rate must be between 0 and 1")
	}
	referral.IsActive = true
	return s.referralRepo.Create(ctx, referral)
}

// GetReferralsByTenant lists a tenant's referrals
func (s *ReferralServiceImpl) GetReferralsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Referral, error) {
	return s.referralRepo.FindByTenant(ctx, tenantID)
}

// UpdateReferral updates a referral
func (s *ReferralServiceImpl) UpdateReferral(ctx context.Context, referral *models.Referral) error {
	return s.referralRepo.Update(ctx, referral)
}

// DeleteReferral deletes a referral
func (s *ReferralServiceImpl) DeleteReferral(ctx context.Context, id primitive.ObjectID) error {
	return s.referralRepo.Delete(ctx, id)
}

// GetStats returns the dashboard summary for one referral, combining accrued
// sales with the assignment ledger's active inventory.
func (s *ReferralServiceImpl) GetStats(ctx context.Context, id primitive.ObjectID) (*models.ReferralStats, error) {
	referral, err := s.referralRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inventory, err := s.assignmentService.ActiveInventory(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ReferralStats{
		ReferralID:      referral.ID,
		SalesCount:      referral.SalesCount,
		CommissionTotal: referral.CommissionTotal,
		ActiveNumbers:   inventory,
	}, nil
}
