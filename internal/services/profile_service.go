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
)

type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

type ProfileService struct {
	users    storage.UserStore
	validate *validator.Validate
}

func NewProfileService(users storage.UserStore) *ProfileService {
	return &ProfileService{users: users, validate: newValidator()}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("load profile", err)
	}
	return user, nil
}

// Update changes username and/or bio. A username held by another user is a conflict.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}
	if req.Username == nil && req.Bio == nil {
		return nil, apperr.Validation("Invalid input: username or bio is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, InvalidInput(err)
	}
	if req.Username != nil && *req.Username == "" {
		return nil, apperr.Validation("Invalid input: username must be at least 3 characters long")
	}

	user, err := s.users.UpdateUserProfile(ctx, userID, models.ProfileChanges{
		Username: req.Username,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			return nil, apperr.Conflict("Username already taken")
		case errors.Is(err, storage.ErrNotFound):
			return nil, apperr.NotFound("User not found")
		default:
			return nil, apperr.Internal("update profile", err)
		}
	}
	return user, nil
}
