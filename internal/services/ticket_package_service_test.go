package services

import (
	"context"
	"testing"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetOffers_FallsBackToDefaultLadder(t *testing.T) {
	raffle := &models.Raffle{ID: primitive.NewObjectID(), Price: 1.5, Status: models.RaffleStatusActive}
	svc := NewTicketPackageService(&fakeTicketPackageRepo{}, newFakeRaffleRepo(raffle))

	offers, err := svc.GetOffers(context.Background(), raffle.ID)
	require.NoError(t, err)

	require.Len(t, offers, 6)
	assert.Equal(t, 5, offers[0].Amount)
	assert.InDelta(t, 7.5, offers[0].FinalPrice, 1e-9)
	assert.True(t, offers[2].IsFeatured)
}

func TestGetOffers_UsesConfiguredPackages(t *testing.T) {
	raffle := &models.Raffle{ID: primitive.NewObjectID(), Price: 1.5, TotalNumbers: 100, Status: models.RaffleStatusActive}
	pkgRepo := &fakeTicketPackageRepo{}
	require.NoError(t, pkgRepo.Create(context.Background(), &models.TicketPackage{
		RaffleID:       raffle.ID,
		Amount:         10,
		BasePrice:      15,
		PromotionType:  models.PromotionTwoForOne,
	}))
	svc := NewTicketPackageService(pkgRepo, newFakeRaffleRepo(raffle))

	offers, err := svc.GetOffers(context.Background(), raffle.ID)
	require.NoError(t, err)

	require.Len(t, offers, 1)
	assert.Equal(t, 20, offers[0].TotalTickets)
	assert.Equal(t, "2x1", offers[0].PromotionLabel)
	assert.True(t, offers[0].IsAvailable)
}

func TestGetOffers_SoldOutRaffleMarksOffersUnavailable(t *testing.T) {
	raffle := &models.Raffle{
		ID:            primitive.NewObjectID(),
		Price:         1.5,
		TotalNumbers:  100,
		NumbersIssued: 100,
		Status:        models.RaffleStatusActive,
	}
	pkgRepo := &fakeTicketPackageRepo{}
	require.NoError(t, pkgRepo.Create(context.Background(), &models.TicketPackage{
		RaffleID: raffle.ID, Amount: 10, BasePrice: 15,
	}))
	svc := NewTicketPackageService(pkgRepo, newFakeRaffleRepo(raffle))

	offers, err := svc.GetOffers(context.Background(), raffle.ID)
	require.NoError(t, err)

	require.Len(t, offers, 1)
	assert.False(t, offers[0].IsAvailable)
}

func TestCreatePackage_Validation(t *testing.T) {
	svc := NewTicketPackageService(&fakeTicketPackageRepo{}, newFakeRaffleRepo())

	err := svc.CreatePackage(context.Background(), &models.TicketPackage{Amount: 0, BasePrice: 10})
	assert.Error(t, err)

	err = svc.CreatePackage(context.Background(), &models.TicketPackage{Amount: 5, BasePrice: -1})
	assert.Error(t, err)

	err = svc.CreatePackage(context.Background(), &models.TicketPackage{Amount: 5, BasePrice: 10})
	assert.NoError(t, err)
}
