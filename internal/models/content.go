package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentKind string

const (
	KindYouTube  ContentKind = "youtube"
	KindTwitter  ContentKind = "twitter"
	KindDocument ContentKind = "document"
)

// ParseContentKind reports whether s names a known kind.
func ParseContentKind(s string) (ContentKind, bool) {
	switch k := ContentKind(s); k {
	case KindYouTube, KindTwitter, KindDocument:
		return k, true
	default:
		return "", false
	}
}

type Content struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Title     string      `gorm:"not null"`
	Link      string      `gorm:"not null"`
	Kind      ContentKind `gorm:"column:type;not null;check:type IN ('youtube','twitter','document')"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
