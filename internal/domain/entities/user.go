package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered account. The AnonimaxID is the only
// identifier ever exposed next to public content.
type User struct {
	ID                uuid.UUID   `json:"id"`
	Email             string      `json:"email"`
	PasswordHash      string      `json:"-"`
	AnonimaxID        string      `json:"anonimaxId"`
	IsVerified        bool        `json:"isVerified"`
	IsAdmin           bool        `json:"isAdmin"`
	VerificationToken null.String `json:"-"`
	ResetToken        null.String `json:"-"`
	ResetTokenExpires *time.Time  `json:"-"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailInput carries an email verification token
type VerifyEmailInput struct {
	Token string `json:"token" binding:"required"`
}

// ForgotPasswordInput carries the email of the account to recover
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput carries a reset token and the new password
type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
	Message      string `json:"message,omitempty"`
}
