package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/config"
	"github.com/thereayou/brainly/internal/handlers"
	"github.com/thereayou/brainly/internal/logger"
	"github.com/thereayou/brainly/internal/uploads"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Content *handlers.ContentHandler
	Share   *handlers.ShareHandler
	User    *handlers.UserHandler
	Health  *handlers.HealthHandler
}

func newRouter(cfg *config.Config, h *Handlers, authMW gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(gin.Recovery(), logger.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static(uploads.URLPrefix, cfg.UploadDir)

	APIEndpoints(r, h, authMW)

	return r
}

func APIEndpoints(r *gin.Engine, h *Handlers, authMW gin.HandlerFunc) {
	r.GET("/api-docs", handlers.APIDocs)

	api := r.Group("/api/v1")

	// Public endpoints
	api.POST("/signup", h.Auth.Signup)
	api.POST("/signin", h.Auth.Signin)
	api.GET("/healthz", h.Health.Check)

	// Protected endpoints
	protected := api.Group("", authMW)
	{
		protected.POST("/signout", h.Auth.Signout)

		protected.GET("/content", h.Content.List)
		protected.POST("/content", h.Content.Create)
		protected.DELETE("/content", h.Content.Delete)
		protected.GET("/content/search", h.Content.Search)

		protected.GET("/brain/share", h.Share.Status)
		protected.POST("/brain/share", h.Share.Update)

		protected.GET("/profile", h.User.GetMe)
		protected.PUT("/profile", h.User.UpdateMe)
	}

	api.GET("/brain/:shareHash", h.Share.Resolve)
}
