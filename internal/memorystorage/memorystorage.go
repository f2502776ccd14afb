// Package memorystorage keeps users, content and share links in process
// memory. It is selected when no DATABASE_URL is configured.
package memorystorage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/storage"
)

type MemoryStorage struct {
	mu sync.RWMutex

	users       map[uuid.UUID]models.User
	usernames   map[string]uuid.UUID
	emails      map[string]uuid.UUID
	contents    []models.Content
	shareByUser map[uuid.UUID]models.ShareLink
	shareByHash map[string]uuid.UUID
}

func New() *MemoryStorage {
	return &MemoryStorage{
		users:       map[uuid.UUID]models.User{},
		usernames:   map[string]uuid.UUID{},
		emails:      map[string]uuid.UUID{},
		shareByUser: map[uuid.UUID]models.ShareLink{},
		shareByHash: map[string]uuid.UUID{},
	}
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

func stamp(id *uuid.UUID, createdAt *time.Time) time.Time {
	now := time.Now()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	return now
}

func (s *MemoryStorage) SaveUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return storage.ErrDuplicate
	}
	if _, taken := s.emails[user.Email]; taken {
		return storage.ErrDuplicate
	}

	user.UpdatedAt = stamp(&user.ID, &user.CreatedAt)
	s.users[user.ID] = *user
	s.usernames[user.Username] = user.ID
	s.emails[user.Email] = user.ID

	return nil
}

func (s *MemoryStorage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStorage) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStorage) UpdateUserProfile(ctx context.Context, id uuid.UUID, changes models.ProfileChanges) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if changes.Username != nil && *changes.Username != user.Username {
		if _, taken := s.usernames[*changes.Username]; taken {
			return nil, storage.ErrDuplicate
		}
		delete(s.usernames, user.Username)
		user.Username = *changes.Username
		s.usernames[user.Username] = id
	}
	if changes.Bio != nil {
		user.Bio = *changes.Bio
	}

	user.UpdatedAt = time.Now()
	s.users[id] = user

	return &user, nil
}

func (s *MemoryStorage) SaveContent(ctx context.Context, content *models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content.UpdatedAt = stamp(&content.ID, &content.CreatedAt)
	s.contents = append(s.contents, *content)

	return nil
}

func (s *MemoryStorage) GetOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contents {
		if c.ID == id && c.UserID == ownerID {
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

// collect returns the owner's content newest first.
func (s *MemoryStorage) collect(ownerID uuid.UUID, match func(models.Content) bool) []models.Content {
	items := []models.Content{}
	for i := len(s.contents) - 1; i >= 0; i-- {
		c := s.contents[i]
		if c.UserID == ownerID && match(c) {
			items = append(items, c)
		}
	}
	return items
}

// ListContent returns the owner's content newest first, each with the owner's id and username.
func (s *MemoryStorage) ListContent(ctx context.Context, ownerID uuid.UUID) ([]models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collect(ownerID, func(models.Content) bool { return true })
	if owner, ok := s.users[ownerID]; ok {
		for i := range items {
			items[i].User = models.User{ID: owner.ID, Username: owner.Username}
		}
	}
	return items, nil
}

func (s *MemoryStorage) SearchContent(ctx context.Context, ownerID uuid.UUID, term string) ([]models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(term)
	return s.collect(ownerID, func(c models.Content) bool {
		return strings.Contains(strings.ToLower(c.Title), needle) ||
			strings.Contains(strings.ToLower(string(c.Kind)), needle)
	}), nil
}

func (s *MemoryStorage) DeleteOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.contents {
		if c.ID == id && c.UserID == ownerID {
			s.contents = append(s.contents[:i], s.contents[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStorage) SaveShareLink(ctx context.Context, link *models.ShareLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shareByUser[link.UserID]; exists {
		return storage.ErrDuplicate
	}
	if _, exists := s.shareByHash[link.Hash]; exists {
		return storage.ErrDuplicate
	}

	stamp(&link.ID, &link.CreatedAt)
	s.shareByUser[link.UserID] = *link
	s.shareByHash[link.Hash] = link.UserID

	return nil
}

func (s *MemoryStorage) GetShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.shareByUser[ownerID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &link, nil
}

func (s *MemoryStorage) GetShareLinkByHash(ctx context.Context, hash string) (*models.ShareLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ownerID, ok := s.shareByHash[hash]
	if !ok {
		return nil, storage.ErrNotFound
	}
	link := s.shareByUser[ownerID]
	return &link, nil
}

func (s *MemoryStorage) DeleteShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if link, ok := s.shareByUser[ownerID]; ok {
		delete(s.shareByHash, link.Hash)
		delete(s.shareByUser, ownerID)
	}
	return nil
}
