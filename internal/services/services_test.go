package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/memorystorage"
	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/uploads"
	"github.com/thereayou/brainly/pkg/auth"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *memoryRevoker) Revoke(_ context.Context, token string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[token] = exp
	return nil
}

func (r *memoryRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[token]
	return ok, nil
}

type fixture struct {
	store    *memorystorage.MemoryStorage
	files    *uploads.LocalFileStore
	auth     *AuthService
	contents *ContentService
	shares   *ShareService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memorystorage.New()
	files, err := uploads.NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		store:    store,
		files:    files,
		auth:     NewAuthService(store, auth.NewJWTManager("test-secret", time.Hour), &memoryRevoker{}),
		contents: NewContentService(store, files),
		shares:   NewShareService(store, store, store, 10),
		profiles: NewProfileService(store),
	}
}

func (f *fixture) signup(t *testing.T, username, email string) uuid.UUID {
	t.Helper()
	token, err := f.auth.Register(context.Background(), RegisterRequest{Username: username, Password: "secret1", Email: email})
	require.NoError(t, err)
	id, err := f.auth.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	return id
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), err.Error())
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "alice", "a@x.com")

	_, err := f.auth.Register(ctx, RegisterRequest{Username: "alice", Password: "secret2", Email: "other@x.com"})
	assertKind(t, err, apperr.KindConflict)

	_, err = f.auth.Register(ctx, RegisterRequest{Username: "alice2", Password: "secret2", Email: "a@x.com"})
	assertKind(t, err, apperr.KindConflict)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short username", RegisterRequest{Username: "al", Password: "secret1", Email: "a@x.com"}},
		{"short password", RegisterRequest{Username: "alice", Password: "12345", Email: "a@x.com"}},
		{"bad email", RegisterRequest{Username: "alice", Password: "secret1", Email: "not-an-email"}},
		{"empty", RegisterRequest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), tt.req)
			assertKind(t, err, apperr.KindValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "alice", "a@x.com")

	token, err := f.auth.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	got, err := f.auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	assertKind(t, err, apperr.KindUnauthorized)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "nobody", Password: "secret1"})
	assertKind(t, err, apperr.KindUnauthorized)

	_, err = f.auth.Login(ctx, LoginRequest{Username: "alice"})
	assertKind(t, err, apperr.KindValidation)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "alice", "a@x.com")

	token, err := f.auth.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, token))

	_, err = f.auth.ValidateToken(ctx, token)
	assertKind(t, err, apperr.KindUnauthorized)

	assertKind(t, f.auth.Logout(ctx, "garbage"), apperr.KindUnauthorized)
}

func TestCreateContentValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.signup(t, "alice", "a@x.com")

	tests := []struct {
		name string
		req  CreateContentRequest
	}{
		{"missing title", CreateContentRequest{Kind: "youtube", Link: "https://youtu.be/abc"}},
		{"unknown kind", CreateContentRequest{Title: "t", Kind: "article", Link: "https://x.com"}},
		{"bad url", CreateContentRequest{Title: "t", Kind: "twitter", Link: "not a url"}},
		{"script url", CreateContentRequest{Title: "t", Kind: "twitter", Link: "javascript:alert(1)"}},
		{"document without file", CreateContentRequest{Title: "t", Kind: "document"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.contents.Create(context.Background(), owner, tt.req)
			assertKind(t, err, apperr.KindValidation)
		})
	}

	items, err := f.contents.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateAndDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	item, err := f.contents.Create(ctx, owner, CreateContentRequest{
		Title: "Spec",
		Kind:  "document",
		File:  &Upload{Filename: "notes.pdf", Body: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindDocument, item.Kind)
	assert.True(t, strings.HasPrefix(item.Link, uploads.URLPrefix+"/"))

	path := filepath.Join(f.files.Dir(), filepath.Base(item.Link))
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, f.contents.Delete(ctx, owner, item.ID.String()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteDocumentWithMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	item, err := f.contents.Create(ctx, owner, CreateContentRequest{
		Title: "Spec",
		Kind:  "document",
		File:  &Upload{Filename: "notes.pdf", Body: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(f.files.Dir(), filepath.Base(item.Link))))

	require.NoError(t, f.contents.Delete(ctx, owner, item.ID.String()))
}

func TestDeleteNotOwned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice", "a@x.com")
	bob := f.signup(t, "bob", "b@x.com")

	item, err := f.contents.Create(ctx, alice, CreateContentRequest{Title: "t", Kind: "youtube", Link: "https://youtu.be/abc"})
	require.NoError(t, err)

	assertKind(t, f.contents.Delete(ctx, bob, item.ID.String()), apperr.KindNotFound)
	assertKind(t, f.contents.Delete(ctx, alice, uuid.NewString()), apperr.KindNotFound)
	assertKind(t, f.contents.Delete(ctx, alice, "not-a-uuid"), apperr.KindValidation)

	items, err := f.contents.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

type contentStoreMock struct {
	mock.Mock
}

func (m *contentStoreMock) SaveContent(ctx context.Context, content *models.Content) error {
	return m.Called(ctx, content).Error(0)
}

func (m *contentStoreMock) GetOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (*models.Content, error) {
	args := m.Called(ctx, id, ownerID)
	content, _ := args.Get(0).(*models.Content)
	return content, args.Error(1)
}

func (m *contentStoreMock) ListContent(ctx context.Context, ownerID uuid.UUID) ([]models.Content, error) {
	args := m.Called(ctx, ownerID)
	items, _ := args.Get(0).([]models.Content)
	return items, args.Error(1)
}

func (m *contentStoreMock) SearchContent(ctx context.Context, ownerID uuid.UUID, term string) ([]models.Content, error) {
	args := m.Called(ctx, ownerID, term)
	items, _ := args.Get(0).([]models.Content)
	return items, args.Error(1)
}

func (m *contentStoreMock) DeleteOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func TestDeleteRaceReportsNotFound(t *testing.T) {
	ctx := context.Background()
	owner, id := uuid.New(), uuid.New()

	store := &contentStoreMock{}
	store.On("GetOwnedContent", ctx, id, owner).
		Return(&models.Content{ID: id, UserID: owner, Kind: models.KindYouTube}, nil)
	store.On("DeleteOwnedContent", ctx, id, owner).Return(int64(0), nil)

	svc := NewContentService(store, nil)
	assertKind(t, svc.Delete(ctx, owner, id.String()), apperr.KindNotFound)
	store.AssertExpectations(t)
}

func TestCreateSurfacesStoreFailureAsInternal(t *testing.T) {
	ctx := context.Background()
	files, err := uploads.NewLocalFileStore(t.TempDir())
	require.NoError(t, err)

	store := &contentStoreMock{}
	store.On("SaveContent", ctx, mock.Anything).Return(errors.New("connection reset"))

	svc := NewContentService(store, files)
	_, err = svc.Create(ctx, uuid.New(), CreateContentRequest{
		Title: "Spec",
		Kind:  "document",
		File:  &Upload{Filename: "notes.pdf", Body: strings.NewReader("%PDF")},
	})
	assertKind(t, err, apperr.KindInternal)

	entries, err := os.ReadDir(files.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "orphaned upload must be removed")
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	doc, err := f.contents.Create(ctx, owner, CreateContentRequest{
		Title: "Quarterly numbers",
		Kind:  "document",
		File:  &Upload{Filename: "q.xlsx", Body: strings.NewReader("x")},
	})
	require.NoError(t, err)
	_, err = f.contents.Create(ctx, owner, CreateContentRequest{Title: "Keynote", Kind: "youtube", Link: "https://youtu.be/abc"})
	require.NoError(t, err)

	results, err := f.contents.Search(ctx, owner, "doc")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, doc.ID, results[0].ID)

	_, err = f.contents.Search(ctx, owner, "  ")
	assertKind(t, err, apperr.KindValidation)
}

func TestShareLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	status, err := f.shares.Status(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, status)

	first, created, err := f.shares.Enable(ctx, owner)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, first, 10)

	second, created, err := f.shares.Enable(ctx, owner)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	status, err = f.shares.Status(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, first, *status)

	require.NoError(t, f.shares.Disable(ctx, owner))
	require.NoError(t, f.shares.Disable(ctx, owner))

	_, err = f.shares.Resolve(ctx, first)
	assertKind(t, err, apperr.KindInvalidShareLink)

	third, created, err := f.shares.Enable(ctx, owner)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first, third)
}

func TestConcurrentEnableCreatesOneLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	hashes := make([]string, 10)
	var wg sync.WaitGroup
	for i := range hashes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, _, err := f.shares.Enable(ctx, owner)
			assert.NoError(t, err)
			hashes[i] = h
		}(i)
	}
	wg.Wait()

	for _, h := range hashes {
		assert.Equal(t, hashes[0], h)
	}
}

func TestResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.signup(t, "alice", "a@x.com")

	_, err := f.contents.Create(ctx, owner, CreateContentRequest{Title: "t", Kind: "youtube", Link: "https://youtu.be/abc"})
	require.NoError(t, err)

	hash, _, err := f.shares.Enable(ctx, owner)
	require.NoError(t, err)

	brain, err := f.shares.Resolve(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, "alice", brain.Username)
	require.Len(t, brain.Content, 1)
	assert.Equal(t, "t", brain.Content[0].Title)

	_, err = f.shares.Resolve(ctx, "neverissued")
	assertKind(t, err, apperr.KindInvalidShareLink)
}

func TestResolveMissingOwnerIsInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveShareLink(ctx, &models.ShareLink{UserID: uuid.New(), Hash: "orphanhash"}))

	_, err := f.shares.Resolve(ctx, "orphanhash")
	assertKind(t, err, apperr.KindInternal)
}

func TestRandomHash(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		h, err := randomHash(12)
		require.NoError(t, err)
		require.Len(t, h, 12)
		for _, r := range h {
			assert.Contains(t, hashAlphabet, string(r))
		}
		seen[h] = true
	}
	assert.Len(t, seen, 100)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.signup(t, "alice", "a@x.com")
	f.signup(t, "bob", "b@x.com")

	user, err := f.profiles.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)

	taken := "bob"
	_, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{Username: &taken})
	assertKind(t, err, apperr.KindConflict)

	same := "alice"
	_, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{Username: &same})
	require.NoError(t, err)

	short := "al"
	_, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{Username: &short})
	assertKind(t, err, apperr.KindValidation)

	blank := "   "
	_, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{Username: &blank})
	assertKind(t, err, apperr.KindValidation)

	_, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{})
	assertKind(t, err, apperr.KindValidation)

	renamed, bio := "alicia", "collects links"
	user, err = f.profiles.Update(ctx, alice, UpdateProfileRequest{Username: &renamed, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Username)
	assert.Equal(t, "collects links", user.Bio)

	_, err = f.profiles.Get(ctx, uuid.New())
	assertKind(t, err, apperr.KindNotFound)
	_, err = f.profiles.Update(ctx, uuid.New(), UpdateProfileRequest{Bio: &bio})
	assertKind(t, err, apperr.KindNotFound)
}
