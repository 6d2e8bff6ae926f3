package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Profile holds the public, contactable side of a user. Everything here may
// be shown in the directory; email and user id never leave the auth layer.
type Profile struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"-"`
	AnonimaxID    string      `json:"anonimaxId"`
	SessionID     null.String `json:"sessionId"`
	CryptoAddress null.String `json:"cryptoAddress"`
	CryptoNetwork null.String `json:"cryptoNetwork"`
	State         null.String `json:"state"`
	Description   null.String `json:"description"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// UpdateProfileInput represents input for updating the caller's own profile.
// Pointer fields distinguish "not sent" from "clear this field".
type UpdateProfileInput struct {
	SessionID     *string `json:"sessionId"`
	CryptoAddress *string `json:"cryptoAddress"`
	CryptoNetwork *string `json:"cryptoNetwork"`
	State         *string `json:"state"`
	Description   *string `json:"description"`
}

// ProfileFilters narrows directory queries
type ProfileFilters struct {
	State  string
	Search string
	Skip   int
	Limit  int
}

// Favorite is a bookmark of another user's Anonimax ID
type Favorite struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"-"`
	TargetAnonimaxID  string      `json:"targetAnonimaxId"`
	CustomName        null.String `json:"customName"`
	CustomDescription null.String `json:"customDescription"`
	CreatedAt         time.Time   `json:"createdAt"`

	// TargetProfile is the target's current public profile, when one exists.
	TargetProfile *Profile `json:"targetProfile,omitempty"`
}

// CreateFavoriteInput represents input for bookmarking a profile
type CreateFavoriteInput struct {
	TargetAnonimaxID  string  `json:"targetAnonimaxId" binding:"required"`
	CustomName        *string `json:"customName"`
	CustomDescription *string `json:"customDescription"`
}
