package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ AssignmentService = (*AssignmentServiceImpl)(nil)

// AssignmentServiceImpl implements the range assignment ledger
type AssignmentServiceImpl struct {
	assignmentRepo repositories.AssignmentRepository
	raffleRepo     repositories.RaffleRepository
}

// NewAssignmentService creates a new AssignmentServiceImpl
func NewAssignmentService(assignmentRepo repositories.AssignmentRepository, raffleRepo repositories.RaffleRepository) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		raffleRepo:     raffleRepo,
	}
}

// Assign sets aside the inclusive range [start, end] for a referral within a
// raffle. Ranges of different referrals in the same raffle must not overlap;
// the check runs against currently assigned (not returned) ranges before the
// insert.
func (s *AssignmentServiceImpl) Assign(ctx context.Context, raffleID, referralID primitive.ObjectID, start, end int) (*models.NumberAssignment, error) {
	if start < 1 || end < start {
		return nil, ErrInvalidRange
	}

	existing, err := s.assignmentRepo.FindAssignedByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing assignments: %w", err)
	}
	for _, a := range existing {
		if a.Overlaps(start, end) {
			return nil, fmt.Errorf("%w: %d-%d collides with %d-%d", ErrRangeOverlap, start, end, a.RangeStart, a.RangeEnd)
		}
	}

	assignment := &models.NumberAssignment{
		RaffleID:   raffleID,
		ReferralID: referralID,
		RangeStart: start,
		RangeEnd:   end,
		Status:     models.AssignmentStatusAssigned,
		AssignedAt: time.Now(),
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	slog.Info("range assigned",
		"raffleId", raffleID.Hex(), "referralId", referralID.Hex(),
		"start", start, "end", end, "count", assignment.Count())
	return assignment, nil
}

// Return reclaims an assignment. The record is kept for history; only the
// status flips and ReturnedAt is stamped.
func (s *AssignmentServiceImpl) Return(ctx context.Context, id primitive.ObjectID) (*models.NumberAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.AssignmentStatusReturned {
		return nil, errors.New("assignment already returned")
	}

	assignment.Status = models.AssignmentStatusReturned
	assignment.ReturnedAt = time.Now()
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to return assignment: %w", err)
	}
	return assignment, nil
}

// ListByReferral returns the full assignment history of a referral, any
// status, with the parent raffle title joined for display.
func (s *AssignmentServiceImpl) ListByReferral(ctx context.Context, referralID primitive.ObjectID) ([]models.AssignmentWithRaffle, error) {
	assignments, err := s.assignmentRepo.FindByReferral(ctx, referralID)
	if err != nil {
		return nil, err
	}

	titles := make(map[primitive.ObjectID]string)
	out := make([]models.AssignmentWithRaffle, 0, len(assignments))
	for _, a := range assignments {
		title, ok := titles[a.RaffleID]
		if !ok {
			raffle, err := s.raffleRepo.FindByID(ctx, a.RaffleID)
			if err != nil {
				// The raffle may be gone; the ledger entry still counts.
				title = ""
			} else {
				title = raffle.Title
			}
			titles[a.RaffleID] = title
		}
		out = append(out, models.AssignmentWithRaffle{
			NumberAssignment: *a,
			RaffleTitle:      title,
		})
	}
	return out, nil
}

// ActiveInventory sums the numbers currently held by a referral. Returned
// assignments are part of history but not of inventory.
func (s *AssignmentServiceImpl) ActiveInventory(ctx context.Context, referralID primitive.ObjectID) (int, error) {
	assignments, err := s.assignmentRepo.FindByReferral(ctx, referralID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, a := range assignments {
		if a.Status == models.AssignmentStatusAssigned {
			total += a.Count()
		}
	}
	return total, nil
}
