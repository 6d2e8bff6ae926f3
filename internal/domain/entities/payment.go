package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents the verification state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentType distinguishes what a payment buys
type PaymentType string

const (
	PaymentTypeListing      PaymentType = "listing"
	PaymentTypeSubscription PaymentType = "subscription"
)

// Payment tracks an expected crypto transfer. TxHash is user-supplied proof;
// verification is a manual admin action, never an on-chain check.
type Payment struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"userId"`
	ListingID  *uuid.UUID    `json:"listingId"`
	Amount     float64       `json:"amount"`
	Currency   string        `json:"currency"`
	Network    string        `json:"network"`
	Type       PaymentType   `json:"type"`
	Status     PaymentStatus `json:"status"`
	TxHash     null.String   `json:"txHash"`
	VerifiedAt *time.Time    `json:"verifiedAt"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// PaymentFilters narrows admin payment queries
type PaymentFilters struct {
	Status string
	Limit  int
}
