package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	AnonimaxID        string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	IsVerified        bool      `gorm:"not null;default:false"`
	IsAdmin           bool      `gorm:"not null;default:false"`
	VerificationToken *string   `gorm:"type:varchar(255);index"`
	ResetToken        *string   `gorm:"type:varchar(255);index"`
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
