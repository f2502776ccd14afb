package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/storage"
)

const (
	hashAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxEnableAttempts = 5
)

// SharedBrain is the public, read-only view behind a share hash.
type SharedBrain struct {
	Username string
	Bio      string
	Content  []models.Content
}

type ShareService struct {
	links      storage.ShareLinkStore
	users      storage.UserStore
	contents   storage.ContentStore
	hashLength int
}

func NewShareService(links storage.ShareLinkStore, users storage.UserStore, contents storage.ContentStore, hashLength int) *ShareService {
	return &ShareService{
		links:      links,
		users:      users,
		contents:   contents,
		hashLength: hashLength,
	}
}

// Status returns the caller's share hash, nil when sharing is off.
func (s *ShareService) Status(ctx context.Context, ownerID uuid.UUID) (*string, error) {
	link, err := s.links.GetShareLinkByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal("load share link", err)
	}
	return &link.Hash, nil
}

// Enable returns the existing hash or creates one; the bool reports whether a
// new link was made. A duplicate on insert means either a concurrent enable
// won the race (its link is returned) or the hash collided (a new one is drawn).
func (s *ShareService) Enable(ctx context.Context, ownerID uuid.UUID) (string, bool, error) {
	for attempt := 0; attempt < maxEnableAttempts; attempt++ {
		existing, err := s.Status(ctx, ownerID)
		if err != nil {
			return "", false, err
		}
		if existing != nil {
			return *existing, false, nil
		}

		hash, err := randomHash(s.hashLength)
		if err != nil {
			return "", false, apperr.Internal("generate share hash", err)
		}

		err = s.links.SaveShareLink(ctx, &models.ShareLink{
			ID:     uuid.New(),
			UserID: ownerID,
			Hash:   hash,
		})
		if err == nil {
			return hash, true, nil
		}
		if !errors.Is(err, storage.ErrDuplicate) {
			return "", false, apperr.Internal("save share link", err)
		}
	}

	return "", false, apperr.Internal("save share link", fmt.Errorf("no unique hash after %d attempts", maxEnableAttempts))
}

// Disable removes the caller's share link; it is a no-op when none exists.
func (s *ShareService) Disable(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.links.DeleteShareLinkByOwner(ctx, ownerID); err != nil {
		return apperr.Internal("delete share link", err)
	}
	return nil
}

// Resolve loads the owner and content behind hash without authentication.
func (s *ShareService) Resolve(ctx context.Context, hash string) (*SharedBrain, error) {
	if hash == "" {
		return nil, apperr.InvalidShareLink("Sorry incorrect input")
	}

	link, err := s.links.GetShareLinkByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.InvalidShareLink("Sorry incorrect input")
		}
		return nil, apperr.Internal("load share link", err)
	}

	user, err := s.users.GetUser(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.Internal("resolve share link", fmt.Errorf("owner %s of share link missing", link.UserID))
		}
		return nil, apperr.Internal("load share owner", err)
	}

	items, err := s.contents.ListContent(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal("list shared content", err)
	}

	return &SharedBrain{
		Username: user.Username,
		Bio:      user.Bio,
		Content:  items,
	}, nil
}

func randomHash(n int) (string, error) {
	max := big.NewInt(int64(len(hashAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = hashAlphabet[idx.Int64()]
	}
	return string(b), nil
}
