package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PoolType distinguishes contiguous-range pools from imported custom sets
type PoolType string

const (
	PoolTypeRange  PoolType = "RANGE"
	PoolTypeCustom PoolType = "CUSTOM"
)

// PoolStatus represents the manual lifecycle of a pool
type PoolStatus string

const (
	PoolStatusActive    PoolStatus = "ACTIVE"
	PoolStatusCompleted PoolStatus = "COMPLETED"
	PoolStatusArchived  PoolStatus = "ARCHIVED"
)

// NumberPool is a named universe of raffle numbers a tenant defines once and
// reuses across raffles.
type NumberPool struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID     primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Name         string             `bson:"name" json:"name"`
	PoolType     PoolType           `bson:"poolType" json:"poolType"`
	TotalNumbers int                `bson:"totalNumbers" json:"totalNumbers"`
	RangeStart   int                `bson:"rangeStart,omitempty" json:"rangeStart,omitempty"`
	RangeEnd     int                `bson:"rangeEnd,omitempty" json:"rangeEnd,omitempty"`
	Status       PoolStatus         `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PoolNumber is one valid number of a custom pool, populated in bulk by the
// importer. Unique per (poolId, number).
type PoolNumber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PoolID    primitive.ObjectID `bson:"poolId" json:"poolId"`
	Number    int                `bson:"number" json:"number"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
