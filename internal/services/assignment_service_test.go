package services

import (
	"context"
	"testing"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAssignmentFixture(t *testing.T) (*AssignmentServiceImpl, *fakeAssignmentRepo, *models.Raffle) {
	t.Helper()
	raffle := &models.Raffle{
		ID:       primitive.NewObjectID(),
		TenantID: primitive.NewObjectID(),
		Title:    "Grand Prize",
		Status:   models.RaffleStatusActive,
	}
	repo := &fakeAssignmentRepo{}
	svc := NewAssignmentService(repo, newFakeRaffleRepo(raffle))
	return svc, repo, raffle
}

func TestAssign_SingleNumberRange(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)
	referralID := primitive.NewObjectID()

	assignment, err := svc.Assign(context.Background(), raffle.ID, referralID, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, assignment.Count())
	assert.Equal(t, models.AssignmentStatusAssigned, assignment.Status)
	assert.False(t, assignment.AssignedAt.IsZero())
}

func TestAssign_InclusiveCount(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)

	assignment, err := svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 100, 149)
	require.NoError(t, err)

	assert.Equal(t, 50, assignment.Count())
}

func TestAssign_InvalidRanges(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)
	referralID := primitive.NewObjectID()

	_, err := svc.Assign(context.Background(), raffle.ID, referralID, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.Assign(context.Background(), raffle.ID, referralID, 10, 9)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAssign_RejectsOverlap(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)

	_, err := svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 1, 100)
	require.NoError(t, err)

	// Partial overlap at the tail
	_, err = svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 100, 200)
	assert.ErrorIs(t, err, ErrRangeOverlap)

	// Fully contained
	_, err = svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 50, 60)
	assert.ErrorIs(t, err, ErrRangeOverlap)

	// Adjacent ranges do not overlap
	_, err = svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 101, 200)
	assert.NoError(t, err)
}

func TestAssign_ReturnedRangeCanBeReassigned(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)

	first, err := svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 1, 50)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), first.ID)
	require.NoError(t, err)

	_, err = svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 1, 50)
	assert.NoError(t, err)
}

func TestReturn_AlreadyReturned(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)

	assignment, err := svc.Assign(context.Background(), raffle.ID, primitive.NewObjectID(), 1, 10)
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusReturned, returned.Status)
	assert.False(t, returned.ReturnedAt.IsZero())

	_, err = svc.Return(context.Background(), assignment.ID)
	assert.Error(t, err)
}

func TestActiveInventory_ExcludesReturned(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)
	referralID := primitive.NewObjectID()

	first, err := svc.Assign(context.Background(), raffle.ID, referralID, 1, 50)
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), raffle.ID, referralID, 51, 60)
	require.NoError(t, err)

	inventory, err := svc.ActiveInventory(context.Background(), referralID)
	require.NoError(t, err)
	assert.Equal(t, 60, inventory)

	_, err = svc.Return(context.Background(), first.ID)
	require.NoError(t, err)

	inventory, err = svc.ActiveInventory(context.Background(), referralID)
	require.NoError(t, err)
	assert.Equal(t, 10, inventory)
}

func TestListByReferral_IncludesHistoryAndTitles(t *testing.T) {
	svc, _, raffle := newAssignmentFixture(t)
	referralID := primitive.NewObjectID()

	first, err := svc.Assign(context.Background(), raffle.ID, referralID, 1, 10)
	require.NoError(t, err)
	_, err = svc.Return(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), raffle.ID, referralID, 11, 20)
	require.NoError(t, err)

	list, err := svc.ListByReferral(context.Background(), referralID)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "Grand Prize", list[0].RaffleTitle)
	assert.Equal(t, models.AssignmentStatusReturned, list[0].Status)
	assert.Equal(t, models.AssignmentStatusAssigned, list[1].Status)
}

func TestListByReferral_MissingRaffleKeepsEntry(t *testing.T) {
	repo := &fakeAssignmentRepo{}
	svc := NewAssignmentService(repo, newFakeRaffleRepo())
	referralID := primitive.NewObjectID()

	require.NoError(t, repo.Create(context.Background(), &models.NumberAssignment{
		RaffleID:   primitive.NewObjectID(),
		ReferralID: referralID,
		RangeStart: 1,
		RangeEnd:   5,
		Status:     models.AssignmentStatusAssigned,
	}))

	list, err := svc.ListByReferral(context.Background(), referralID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].RaffleTitle)
}
