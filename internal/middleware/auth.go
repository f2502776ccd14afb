package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/logger"
	"github.com/thereayou/brainly/pkg/auth"
)

const (
	UserIDKey = "userID"
	TokenKey  = "token"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware accepts "Bearer <token>" or a bare token and stores the
// resolved user id under UserIDKey. Any failure, including an unreachable
// revocation store, ends the request with 403.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			message := "Invalid authorization header"
			if errors.Is(err, auth.ErrMissingHeader) {
				message = "No authorization header"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message})
			return
		}

		userID, err := tokens.ValidateToken(c.Request.Context(), token)
		if err != nil {
			// fail closed: a token that cannot be checked is not accepted
			if apperr.KindOf(err) == apperr.KindInternal {
				logger.Log.Errorw("token validation failed", zap.Error(err))
				err = apperr.Unauthorized("Unable to verify token")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": apperr.PublicMessage(err)})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// UserID returns the authenticated user; only valid behind AuthMiddleware.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(UserIDKey).(uuid.UUID)
}
