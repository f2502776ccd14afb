package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/brainly/internal/config"
	"github.com/thereayou/brainly/internal/logger"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("logger sync: %v", err)
		}
	}()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := NewServer(context.Background(), cfg)
	if err != nil {
		logger.Log.Errorw("startup failed", "error", err)
		return
	}

	if err := srv.Run(); err != nil {
		logger.Log.Errorw("server stopped", "error", err)
	}
}
