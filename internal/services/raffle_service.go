package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ RaffleService = (*RaffleServiceImpl)(nil)

// RaffleServiceImpl implements raffle CRUD and status transitions
type RaffleServiceImpl struct {
	raffleRepo repositories.RaffleRepository
}

// NewRaffleService creates a new RaffleServiceImpl
func NewRaffleService(raffleRepo repositories.RaffleRepository) *RaffleServiceImpl {
	return &RaffleServiceImpl{
		raffleRepo: raffleRepo,
	}
}

// CreateRaffle creates a new raffle in DRAFT status
func (s *RaffleServiceImpl) CreateRaffle(ctx context.Context, raffle *models.Raffle) error {
	if raffle.TenantID.IsZero() {
		return errors.New("tenant id is required")
	}
	if raffle.Title == "" {
		return errors.New("raffle title is required")
	}
	if raffle.Price < 0 {
		return errors.New("raffle price cannot be negative")
	}
	if raffle.TotalNumbers <= 0 {
		return errors.New("raffle must have a positive number count")
	}
	if raffle.Status == "" {
		raffle.Status = models.RaffleStatusDraft
	}
	return s.raffleRepo.Create(ctx, raffle)
}

// GetRaffle finds a raffle by ID
func (s *RaffleServiceImpl) GetRaffle(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	return s.raffleRepo.FindByID(ctx, id)
}

// GetRafflesByTenant lists a tenant's raffles
func (s *RaffleServiceImpl) GetRafflesByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Raffle, error) {
	return s.raffleRepo.FindByTenant(ctx, tenantID)
}

// UpdateRaffle updates a raffle
func (s *RaffleServiceImpl) UpdateRaffle(ctx context.Context, raffle *models.Raffle) error {
	return s.raffleRepo.Update(ctx, raffle)
}

// UpdateStatus performs an admin status transition
func (s *RaffleServiceImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RaffleStatus) (*models.Raffle, error) {
	switch status {
	case models.RaffleStatusDraft, models.RaffleStatusActive, models.RaffleStatusPaused,
		models.RaffleStatusCompleted, models.RaffleStatusCancelled:
	default:
		return nil, fmt.Errorf("unknown raffle status %q", status)
	}

	raffle, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raffle.Status = status
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, err
	}
	return raffle, nil
}

// DeleteRaffle deletes a raffle
func (s *RaffleServiceImpl) DeleteRaffle(ctx context.Context, id primitive.ObjectID) error {
	return s.raffleRepo.Delete(ctx, id)
}
