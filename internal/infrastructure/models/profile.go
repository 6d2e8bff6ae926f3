package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AnonimaxID    string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	SessionID     *string   `gorm:"type:varchar(255)"`
	CryptoAddress *string   `gorm:"type:varchar(255)"`
	CryptoNetwork *string   `gorm:"type:varchar(50)"`
	State         *string   `gorm:"type:varchar(2)"`
	Description   *string   `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Favorite struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorites_user_target"`
	TargetAnonimaxID  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_favorites_user_target"`
	CustomName        *string   `gorm:"type:varchar(100)"`
	CustomDescription *string   `gorm:"type:text"`
	CreatedAt         time.Time
}
