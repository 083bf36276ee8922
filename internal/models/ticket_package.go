package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromotionType represents the promotion applied to a ticket package
type PromotionType string

const (
	PromotionNone     PromotionType = "NONE"
	PromotionDiscount PromotionType = "DISCOUNT"
	PromotionBonus    PromotionType = "BONUS"
	PromotionTwoForOne PromotionType = "2X1"
	PromotionThreeForTwo PromotionType = "3X2"
)

// TicketPackage is a purchasable bundle of raffle numbers configured by the
// tenant for one raffle.
type TicketPackage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RaffleID       primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	Amount         int                `bson:"amount" json:"amount"`
	BasePrice      float64            `bson:"basePrice" json:"basePrice"`
	PromotionType  PromotionType      `bson:"promotionType" json:"promotionType"`
	PromotionValue int                `bson:"promotionValue" json:"promotionValue"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
	BadgeText      string             `bson:"badgeText,omitempty" json:"badgeText,omitempty"`
	SortOrder      int                `bson:"sortOrder" json:"sortOrder"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CalculatedTicketPackage is the derived, never-persisted offer shown to a
// buyer: a value snapshot, immune to later edits of the source package.
type CalculatedTicketPackage struct {
	PackageID      primitive.ObjectID `json:"packageId,omitempty"`
	Amount         int                `json:"amount"`
	TotalTickets   int                `json:"totalTickets"`
	FinalPrice     float64            `json:"finalPrice"`
	OriginalPrice  float64            `json:"originalPrice"`
	TotalDiscount  float64            `json:"totalDiscount"`
	PromotionLabel string             `json:"promotionLabel,omitempty"`
	IsFeatured     bool               `json:"isFeatured"`
	BadgeText      string             `json:"badgeText,omitempty"`
	IsAvailable    bool               `json:"isAvailable"`
}
