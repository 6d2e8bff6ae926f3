package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ListingID  *uuid.UUID `gorm:"type:uuid;index"`
	Amount     float64    `gorm:"not null"`
	Currency   string     `gorm:"type:varchar(10);not null"`
	Network    string     `gorm:"type:varchar(50);not null"`
	Type       string     `gorm:"type:varchar(20);not null"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	TxHash     *string    `gorm:"type:varchar(255)"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
