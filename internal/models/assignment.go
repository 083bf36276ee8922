package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus represents the soft lifecycle of a range assignment
type AssignmentStatus string

const (
	AssignmentStatusAssigned AssignmentStatus = "ASSIGNED"
	AssignmentStatusReturned AssignmentStatus = "RETURNED"
)

// NumberAssignment records a contiguous inclusive range of numbers set aside
// for one referral within one raffle. Assignments are never physically
// deleted; reclaiming one flips the status and stamps ReturnedAt.
type NumberAssignment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RaffleID   primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	ReferralID primitive.ObjectID `bson:"referralId" json:"referralId"`
	RangeStart int                `bson:"rangeStart" json:"rangeStart"`
	RangeEnd   int                `bson:"rangeEnd" json:"rangeEnd"`
	Status     AssignmentStatus   `bson:"status" json:"status"`
	AssignedAt time.Time          `bson:"assignedAt" json:"assignedAt"`
	ReturnedAt time.Time          `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
}

// Count returns how many numbers the assignment covers. The range is
// inclusive on both ends: 1..1 is one number.
func (a *NumberAssignment) Count() int {
	return a.RangeEnd - a.RangeStart + 1
}

// Overlaps reports whether two inclusive ranges share any number.
func (a *NumberAssignment) Overlaps(start, end int) bool {
	return start <= a.RangeEnd && end >= a.RangeStart
}

// AssignmentWithRaffle is an assignment joined with its parent raffle for
// display in the referral dashboard.
type AssignmentWithRaffle struct {
	NumberAssignment `bson:",inline"`
	RaffleTitle      string `bson:"raffleTitle" json:"raffleTitle"`
}
