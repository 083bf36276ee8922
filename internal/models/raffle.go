package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleStatus represents the status of a raffle
type RaffleStatus string

const (
	RaffleStatusDraft     RaffleStatus = "DRAFT"
	RaffleStatusActive    RaffleStatus = "ACTIVE"
	RaffleStatusPaused    RaffleStatus = "PAUSED"
	RaffleStatusCompleted RaffleStatus = "COMPLETED"
	RaffleStatusCancelled RaffleStatus = "CANCELLED"
)

// Raffle represents one raffle run by a tenant
type Raffle struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID     primitive.ObjectID  `bson:"tenantId" json:"tenantId"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64             `bson:"price" json:"price"`
	TotalNumbers int                 `bson:"totalNumbers" json:"totalNumbers"`
	DrawDate     time.Time           `bson:"drawDate" json:"drawDate"`
	Status       RaffleStatus        `bson:"status" json:"status"`
	PoolID       *primitive.ObjectID `bson:"poolId,omitempty" json:"poolId,omitempty"`
	RaffleType   string              `bson:"raffleType,omitempty" json:"raffleType,omitempty"`
	// NumbersIssued is the high-water mark of allocated numbers; bumped
	// atomically when an invoice completes.
	NumbersIssued int       `bson:"numbersIssued" json:"numbersIssued"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SoldOut reports whether the raffle has no numbers left to allocate.
func (r *Raffle) SoldOut() bool {
	return r.TotalNumbers > 0 && r.NumbersIssued >= r.TotalNumbers
}
