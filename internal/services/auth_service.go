package services

import (
	"context"
	"errors"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/storage"
	"github.com/thereayou/brainly/pkg/auth"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService is the credential service: password hashing, sign-up, sign-in
// and bearer token issue/verify/revoke.
type AuthService struct {
	users    storage.UserStore
	tokens   *auth.JWTManager
	revoker  auth.Revoker
	validate *validator.Validate
}

func NewAuthService(users storage.UserStore, tokens *auth.JWTManager, revoker auth.Revoker) *AuthService {
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		revoker:  revoker,
		validate: newValidator(),
	}
}

// Register creates the user and returns a token for it. Uniqueness of
// username and email is enforced by the store on insert.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return "", InvalidInput(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return "", apperr.Conflict("Username or email already taken")
		}
		return "", apperr.Internal("save user", err)
	}

	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", apperr.Validation("Username and password are required")
	}

	user, err := s.users.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperr.Unauthorized("Incorrect credentials")
		}
		return "", apperr.Internal("find user", err)
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return "", apperr.Unauthorized("Incorrect credentials")
	}

	return s.issue(user.ID)
}

// Logout blacklists token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	exp, err := s.tokens.Expiry(token)
	if err != nil {
		return apperr.Unauthorized("Invalid token")
	}
	if err := s.revoker.Revoke(ctx, token, exp); err != nil {
		return apperr.Internal("revoke token", err)
	}
	return nil
}

// ValidateToken resolves a bearer token to the user id it was issued for.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("Invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("Invalid token")
	}

	revoked, err := s.revoker.IsRevoked(ctx, token)
	if err != nil {
		return uuid.Nil, apperr.Internal("check token revocation", err)
	}
	if revoked {
		return uuid.Nil, apperr.Unauthorized("Token has been revoked")
	}

	return userID, nil
}

func (s *AuthService) issue(userID uuid.UUID) (string, error) {
	token, err := s.tokens.Generate(userID.String())
	if err != nil {
		return "", apperr.Internal("sign token", err)
	}
	return token, nil
}
