package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Bio          string    `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileChanges lists the user fields a profile update may touch; nil means unchanged.
type ProfileChanges struct {
	Username *string
	Bio      *string
}
