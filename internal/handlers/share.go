package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/handlers/dto"
	"github.com/thereayou/brainly/internal/middleware"
	"github.com/thereayou/brainly/internal/services"
)

type ShareHandler struct {
	shares *services.ShareService
}

func NewShareHandler(shares *services.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

func (h *ShareHandler) Status(c *gin.Context) {
	hash, err := h.shares.Status(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareStatusResponse{Hash: hash})
}

// Update turns sharing on or off depending on the "share" flag.
func (h *ShareHandler) Update(c *gin.Context) {
	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Invalid input: share must be a boolean"))
		return
	}

	userID := middleware.UserID(c)

	if !*req.Share {
		if err := h.shares.Disable(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ShareStatusResponse{Message: "Share link removed successfully"})
		return
	}

	hash, created, err := h.shares.Enable(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Share link already exists"
	if created {
		message = "Share link created successfully"
	}
	c.JSON(http.StatusOK, dto.ShareStatusResponse{Hash: &hash, Message: message})
}

// Resolve is public: no auth gate sits in front of it.
func (h *ShareHandler) Resolve(c *gin.Context) {
	brain, err := h.shares.Resolve(c.Request.Context(), c.Param("shareHash"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SharedBrainResponse{
		Username: brain.Username,
		Bio:      brain.Bio,
		Content:  dto.NewContentList(brain.Content),
	})
}
