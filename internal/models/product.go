package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus is the outcome of the last verification of a product.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusVerified   VerificationStatus = "verified"
	StatusRejected   VerificationStatus = "rejected"
)

// LifecycleState is the state a product is in from the vendor's point of view.
type LifecycleState string

const (
	StateDraft    LifecycleState = "draft"
	StatePending  LifecycleState = "pending"
	StateVerified LifecycleState = "verified"
	StateRejected LifecycleState = "rejected"
)

// Product represents a vendor listing in the marketplace.
type Product struct {
	ID                 string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID           string             `json:"vendor_id" gorm:"type:varchar(36);index;not null"`
	Name               string             `json:"name" gorm:"type:varchar(255);not null"`
	Description        string             `json:"description" gorm:"type:text;not null"`
	Price              decimal.Decimal    `json:"price" gorm:"type:decimal(16,2);not null"`
	ImageURL           string             `json:"image_url" gorm:"type:text;not null"`
	IsDraft            bool               `json:"is_draft" gorm:"not null"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(16);not null"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// State derives the lifecycle state from the draft flag and verification status.
func (p *Product) State() LifecycleState {
	if p.IsDraft {
		return StateDraft
	}
	switch p.VerificationStatus {
	case StatusVerified:
		return StateVerified
	case StatusRejected:
		return StateRejected
	default:
		return StatePending
	}
}
