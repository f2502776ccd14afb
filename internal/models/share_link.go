package models

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink publishes a user's content under an unguessable hash. A user has at most one.
type ShareLink struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Hash      string    `gorm:"size:64;not null;uniqueIndex"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
