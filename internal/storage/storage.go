// Package storage declares the persistence contract shared by the PostgreSQL
// and in-memory backends.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, changes models.ProfileChanges) (*models.User, error)
}

type ContentStore interface {
	SaveContent(ctx context.Context, content *models.Content) error
	GetOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (*models.Content, error)
	ListContent(ctx context.Context, ownerID uuid.UUID) ([]models.Content, error)
	SearchContent(ctx context.Context, ownerID uuid.UUID, term string) ([]models.Content, error)
	// DeleteOwnedContent removes the row only when it belongs to ownerID and
	// reports how many rows were removed.
	DeleteOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}

type ShareLinkStore interface {
	SaveShareLink(ctx context.Context, link *models.ShareLink) error
	GetShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ShareLink, error)
	GetShareLinkByHash(ctx context.Context, hash string) (*models.ShareLink, error)
	DeleteShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type Storage interface {
	UserStore
	ContentStore
	ShareLinkStore
	Ping(ctx context.Context) error
	Close() error
}
