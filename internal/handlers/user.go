package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/handlers/dto"
	"github.com/thereayou/brainly/internal/middleware"
	"github.com/thereayou/brainly/internal/services"
)

type UserHandler struct {
	profiles *services.ProfileService
}

func NewUserHandler(profiles *services.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// GetMe returns the caller's profile
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.profiles.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(user))
}

// UpdateMe changes username and/or bio
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.InvalidInput(err))
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileResponse(user))
}
