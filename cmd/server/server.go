package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/brainly/internal/config"
	"github.com/thereayou/brainly/internal/database"
	"github.com/thereayou/brainly/internal/handlers"
	"github.com/thereayou/brainly/internal/logger"
	"github.com/thereayou/brainly/internal/memorystorage"
	"github.com/thereayou/brainly/internal/middleware"
	"github.com/thereayou/brainly/internal/services"
	"github.com/thereayou/brainly/internal/storage"
	"github.com/thereayou/brainly/internal/uploads"
	"github.com/thereayou/brainly/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        *config.Config
	Router     *gin.Engine
	DB         storage.Storage
	Redis      *redis.Client
	JWTManager *auth.JWTManager
}

// NewServer builds every dependency once and wires them into the router.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	db, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rdb, revoker, err := newRevoker(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	files, err := uploads.NewLocalFileStore(cfg.UploadDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := services.NewAuthService(db, jwtMgr, revoker)
	contentService := services.NewContentService(db, files)
	shareService := services.NewShareService(db, db, db, cfg.ShareHashLength)
	profileService := services.NewProfileService(db)

	h := &Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Content: handlers.NewContentHandler(contentService, cfg.MaxUploadBytes),
		Share:   handlers.NewShareHandler(shareService),
		User:    handlers.NewUserHandler(profileService),
		Health:  handlers.NewHealthHandler(db),
	}

	return &Server{
		cfg:        cfg,
		Router:     newRouter(cfg, h, middleware.AuthMiddleware(authService)),
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.DatabaseURL == "" {
		logger.Log.Warnln("DATABASE_URL is not set, using in-memory storage")
		return memorystorage.New(), nil
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DBConnectionTimeout)
	if err != nil {
		return nil, fmt.Errorf("postgres connect failed: %w", err)
	}
	return db, nil
}

func newRevoker(ctx context.Context, cfg *config.Config) (*redis.Client, auth.Revoker, error) {
	if cfg.RedisURL == "" {
		logger.Log.Warnln("REDIS_URL is not set, sign-out will not revoke tokens")
		return nil, auth.NopRevoker{}, nil
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBConnectionTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("redis connect failed: %w", err)
	}

	return rdb, auth.NewRedisRevoker(rdb), nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              s.cfg.RunAddr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("server starting", "addr", s.cfg.RunAddr)
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return s.Close()

	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return s.Close()
		}
		return fmt.Errorf("server run error: %w", err)
	}
}

// Close releases storage and Redis connections.
func (s *Server) Close() error {
	var errs []error
	if err := s.DB.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
