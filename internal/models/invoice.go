package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceStatus represents the payment lifecycle of one checkout attempt
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusCompleted InvoiceStatus = "COMPLETED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// PaymentMethod identifies which flow paid (or will pay) an invoice
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodPayphone     PaymentMethod = "PAYPHONE"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Invoice is the durable record of one checkout attempt. It is created in
// PENDING state before any gateway call so an interrupted payment always
// leaves a reconcilable trace. Order numbers are never reused across
// attempts.
type Invoice struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	TenantID        primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	RaffleID        primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Amount          int                `bson:"amount" json:"amount"`
	TotalTickets    int                `bson:"totalTickets" json:"totalTickets"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Status          InvoiceStatus      `bson:"status" json:"status"`
	ReferralCode    string             `bson:"referralCode,omitempty" json:"referralCode,omitempty"`
	ExternalRef     string             `bson:"externalRef,omitempty" json:"externalRef,omitempty"`
	AssignedNumbers []int              `bson:"assignedNumbers,omitempty" json:"assignedNumbers,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	CompletedAt     time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// InvoiceStatusChange is the payload of the invoice-status webhook. Only the
// PENDING -> COMPLETED edge triggers downstream effects.
type InvoiceStatusChange struct {
	Record    Invoice `json:"record"`
	OldRecord Invoice `json:"old_record"`
}

// IsPendingToCompleted reports whether the change is the one transition the
// webhook acts on.
func (c *InvoiceStatusChange) IsPendingToCompleted() bool {
	return c.OldRecord.Status == InvoiceStatusPending && c.Record.Status == InvoiceStatusCompleted
}
