package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TenantStatus represents the lifecycle status of a tenant account
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusSuspended TenantStatus = "SUSPENDED"
)

// Tenant represents an isolated customer account operating its own branded storefront
type Tenant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	CustomDomain string             `bson:"customDomain,omitempty" json:"customDomain,omitempty"`
	ContactEmail string             `bson:"contactEmail" json:"contactEmail"`
	Status       TenantStatus       `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BankAccount holds the details shown to buyers for manual bank transfers
type BankAccount struct {
	BankName      string `bson:"bankName" json:"bankName"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber"`
	AccountHolder string `bson:"accountHolder" json:"accountHolder"`
	TaxID         string `bson:"taxId,omitempty" json:"taxId,omitempty"`
}

// TenantPaymentConfig holds the payment methods a tenant has enabled.
// Gateway credentials live here but are stripped before the config is
// returned to the storefront.
type TenantPaymentConfig struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID       primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Methods        []PaymentMethod    `bson:"methods" json:"methods"`
	BankAccounts   []BankAccount      `bson:"bankAccounts,omitempty" json:"bankAccounts,omitempty"`
	StripePublicKey string            `bson:"stripePublicKey,omitempty" json:"stripePublicKey,omitempty"`
	StripeSecretKey string            `bson:"stripeSecretKey,omitempty" json:"-"`
	PayphoneStoreID string            `bson:"payphoneStoreId,omitempty" json:"-"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicView returns a copy of the config safe to expose to the storefront.
func (c *TenantPaymentConfig) PublicView() TenantPaymentConfig {
	out := *c
	out.StripeSecretKey = ""
	out.PayphoneStoreID = ""
	return out
}

// Feature represents a capability a tenant plan can enable
type Feature struct {
	Code string `bson:"code" json:"code"`
	Name string `bson:"name" json:"name"`
}

// Role represents an admin role with its resolved feature set
type Role struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Features []Feature          `bson:"features" json:"features"`
}
