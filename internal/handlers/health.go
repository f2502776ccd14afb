package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/apperr"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		respondError(c, apperr.Internal("ping storage", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
