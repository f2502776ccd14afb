// Package logger provides the process-wide zap logger and the gin request
// logging middleware.
package logger

import (
	"errors"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Log is the global SugaredLogger. It is a no-op logger until Init is called.
var Log = zap.NewNop().Sugar()

// Init configures Log with the given level ("debug", "info", "warn", "error").
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes any buffered log entries.
func Sync() error {
	err := Log.Sync()
	if err != nil && !errors.Is(err, os.ErrInvalid) && !errors.Is(err, syscall.ENOTTY) && !errors.Is(err, syscall.EINVAL) {
		return err
	}

	return nil
}

// GinMiddleware logs method, path, status, duration and response size of every request.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		Log.Infow("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"size", c.Writer.Size(),
			"ip", c.ClientIP(),
		)
	}
}
