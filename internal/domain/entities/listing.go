package entities

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the lifecycle state of a listing
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusRejected ListingStatus = "rejected"
	ListingStatusExpired  ListingStatus = "expired"
)

// Listing represents a classified ad. It only becomes publicly visible once
// an admin activates it; ExpiresAt is set at activation time.
type Listing struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"-"`
	AnonimaxID    string        `json:"anonimaxId"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Category      string        `json:"category"`
	State         string        `json:"state"`
	Status        ListingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	ExpiresAt     *time.Time    `json:"expiresAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// IsExpired reports whether an active listing is past its expiry
func (l *Listing) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// CreateListingInput represents input for creating a listing
type CreateListingInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category" binding:"required"`
	State    string `json:"state" binding:"required"`
}

// SubmitPaymentInput carries a payment proof for a pending listing
type SubmitPaymentInput struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
	TxHash    string    `json:"txHash" binding:"required"`
}

// ListingFilters narrows public listing queries
type ListingFilters struct {
	State    string
	Category string
	Search   string
	Skip     int
	Limit    int
}

// PaymentInstructions tells the client how to pay the listing fee
type PaymentInstructions struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Network  string  `json:"network"`
	Address  string  `json:"address"`
	Message  string  `json:"message"`
}

// ListingDetail pairs a listing with its owner's public profile
type ListingDetail struct {
	Listing *Listing `json:"listing"`
	Profile *Profile `json:"profile,omitempty"`
}
