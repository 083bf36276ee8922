package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Referral represents an ambassador who earns commission on sales attributed
// to their code or assigned number range.
type Referral struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID        primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Code            string             `bson:"code" json:"code"`
	CommissionRate  float64            `bson:"commissionRate" json:"commissionRate"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	SalesCount      int                `bson:"salesCount" json:"salesCount"`
	CommissionTotal float64            `bson:"commissionTotal" json:"commissionTotal"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReferralStats is the dashboard summary for one referral.
type ReferralStats struct {
	ReferralID      primitive.ObjectID `json:"referralId"`
	SalesCount      int                `json:"salesCount"`
	CommissionTotal float64            `json:"commissionTotal"`
	ActiveNumbers   int                `json:"activeNumbers"`
}
