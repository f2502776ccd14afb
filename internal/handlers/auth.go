package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/handlers/dto"
	"github.com/thereayou/brainly/internal/middleware"
	"github.com/thereayou/brainly/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.InvalidInput(err))
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Message: "User signed up successfully", Token: token})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// Signout revokes the bearer token the request was made with.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}
