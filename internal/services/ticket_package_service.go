package services

import (
	"context"
	"fmt"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ TicketPackageService = (*TicketPackageServiceImpl)(nil)

// TicketPackageServiceImpl resolves a raffle's purchasable offers
type TicketPackageServiceImpl struct {
	packageRepo repositories.TicketPackageRepository
	raffleRepo  repositories.RaffleRepository
}

// NewTicketPackageService creates a new TicketPackageServiceImpl
func NewTicketPackageService(packageRepo repositories.TicketPackageRepository, raffleRepo repositories.RaffleRepository) *TicketPackageServiceImpl {
	return &TicketPackageServiceImpl{
		packageRepo: packageRepo,
		raffleRepo:  raffleRepo,
	}
}

// GetOffers returns the ordered list of purchasable offers for a raffle,
// falling back to the synthetic default ladder when no packages are
// configured.
func (s *TicketPackageServiceImpl) GetOffers(ctx context.Context, raffleID primitive.ObjectID) ([]models.CalculatedTicketPackage, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}

	packages, err := s.packageRepo.FindByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(packages) == 0 {
		return DefaultOffers(raffle), nil
	}

	offers := make([]models.CalculatedTicketPackage, 0, len(packages))
	for _, pkg := range packages {
		offer := CalculateOffer(*pkg)
		if raffle.SoldOut() {
			offer.IsAvailable = false
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// CreatePackage creates a ticket package
func (s *TicketPackageServiceImpl) CreatePackage(ctx context.Context, pkg *models.TicketPackage) error {
	if pkg.Amount <= 0 {
		return fmt.Errorf("package amount must be positive")
	}
	if pkg.BasePrice < 0 {
		return fmt.Errorf("package price cannot be negative")
	}
	return s.packageRepo.Create(ctx, pkg)
}

// GetPackages lists the persisted packages of a raffle
func (s *TicketPackageServiceImpl) GetPackages(ctx context.Context, raffleID primitive.ObjectID) ([]*models.TicketPackage, error) {
	return s.packageRepo.FindByRaffle(ctx, raffleID)
}

// UpdatePackage updates a ticket package. Offers already shown to buyers are
// unaffected: their amount and price were frozen into the purchase token.
func (s *TicketPackageServiceImpl) UpdatePackage(ctx context.Context, pkg *models.TicketPackage) error {
	return s.packageRepo.Update(ctx, pkg)
}

// DeletePackage deletes a ticket package
func (s *TicketPackageServiceImpl) DeletePackage(ctx context.Context, id primitive.ObjectID) error {
	return s.packageRepo.Delete(ctx, id)
}
