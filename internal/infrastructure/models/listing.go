package models

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	AnonimaxID    string    `gorm:"type:varchar(20);not null;index"`
	Title         string    `gorm:"type:varchar(200);not null"`
	Content       string    `gorm:"type:text;not null"`
	Category      string    `gorm:"type:varchar(50);not null;index"`
	State         string    `gorm:"type:varchar(2);not null;index"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	PaymentStatus string    `gorm:"type:varchar(20);not null"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
