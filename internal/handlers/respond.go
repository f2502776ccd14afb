package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thereayou/brainly/internal/apperr"
	"github.com/thereayou/brainly/internal/logger"
)

// respondError writes {"message": ...} with the status of err. Internal
// failures are logged and answered with an opaque message.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.Log.Errorw("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"message": apperr.PublicMessage(err)})
}
