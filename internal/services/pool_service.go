package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ PoolService = (*PoolServiceImpl)(nil)

// PoolServiceImpl implements number pool administration
type PoolServiceImpl struct {
	poolRepo   repositories.NumberPoolRepository
	raffleRepo repositories.RaffleRepository
}

// NewPoolService creates a new PoolServiceImpl
func NewPoolService(poolRepo repositories.NumberPoolRepository, raffleRepo repositories.RaffleRepository) *PoolServiceImpl {
	return &PoolServiceImpl{
		poolRepo:   poolRepo,
		raffleRepo: raffleRepo,
	}
}

// CreatePool creates a pool. Range pools derive their size from the bounds;
// custom pools start empty and are filled by the importer.
func (s *PoolServiceImpl) CreatePool(ctx context.Context, pool *models.NumberPool) error {
	if pool.TenantID.IsZero() {
		return errors.New("tenant id is required")
	}
	if pool.Name == "" {
		return errors.New("pool name is required")
	}

	switch pool.PoolType {
	case models.PoolTypeRange:
		if pool.RangeEnd < pool.RangeStart || pool.RangeStart < 0 {
			return ErrInvalidRange
		}
		pool.TotalNumbers = pool.RangeEnd - pool.RangeStart + 1
	case models.PoolTypeCustom:
		pool.TotalNumbers = 0
	default:
		return fmt.Errorf("unknown pool type %q", pool.PoolType)
	}

	if pool.Status == "" {
		pool.Status = models.PoolStatusActive
	}
	return s.poolRepo.Create(ctx, pool)
}

// GetPool finds a pool by ID
func (s *PoolServiceImpl) GetPool(ctx context.Context, id primitive.ObjectID) (*models.NumberPool, error) {
	return s.poolRepo.FindByID(ctx, id)
}

// GetPoolsByTenant lists a tenant's pools
func (s *PoolServiceImpl) GetPoolsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.NumberPool, error) {
	return s.poolRepo.FindByTenant(ctx, tenantID)
}

// UpdateStatus performs a manual pool lifecycle transition
func (s *PoolServiceImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PoolStatus) (*models.NumberPool, error) {
	switch status {
	case models.PoolStatusActive, models.PoolStatusCompleted, models.PoolStatusArchived:
	default:
		return nil, fmt.Errorf("unknown pool status %q", status)
	}

	pool, err := s.poolRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pool.Status = status
	if err := s.poolRepo.Update(ctx, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// DeletePool deletes a pool. Raffles referencing it lose the reference but
// are not deleted themselves.
func (s *PoolServiceImpl) DeletePool(ctx context.Context, id primitive.ObjectID) error {
	if err := s.raffleRepo.ClearPoolRef(ctx, id); err != nil {
		return fmt.Errorf("failed to detach raffles from pool: %w", err)
	}
	return s.poolRepo.Delete(ctx, id)
}

// ImportNumbers validates an uploaded number file and bulk-inserts the clean
// set into a custom pool. The parse result is returned as-is so the
// dashboard can show counts and sample errors to the admin.
func (s *PoolServiceImpl) ImportNumbers(ctx context.Context, poolID primitive.ObjectID, filename string, r io.Reader) (*utils.ParseResult, error) {
	pool, err := s.poolRepo.FindByID(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pool: %w", err)
	}
	if pool.PoolType != models.PoolTypeCustom {
		return nil, ErrPoolNotCustom
	}

	start := time.Now()
	result, err := utils.ParseNumberFile(filename, r)
	if err != nil {
		return nil, err
	}

	if !result.Success {
		slog.Warn("number import produced no valid numbers",
			"poolId", poolID.Hex(), "invalid", result.InvalidCount, "duplicates", result.DuplicateCount)
		return result, nil
	}

	inserted, err := s.poolRepo.InsertNumbers(ctx, poolID, result.Numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to store imported numbers: %w", err)
	}

	total, err := s.poolRepo.CountNumbers(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pool numbers: %w", err)
	}
	pool.TotalNumbers = int(total)
	if err := s.poolRepo.Update(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to update pool totals: %w", err)
	}

	slog.Info("number import finished",
		"poolId", poolID.Hex(), "file", filename, "valid", result.Count,
		"inserted", inserted, "invalid", result.InvalidCount,
		"duplicates", result.DuplicateCount, "took", time.Since(start))
	return result, nil
}
