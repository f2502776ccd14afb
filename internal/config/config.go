// Package config loads service settings from .env files and the environment.
package config

import (
	"fmt"
	"log"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr             string        `env:"SERVER_ADDRESS" envDefault:":3000" validate:"required,hostname_port"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBConnectionTimeout time.Duration `env:"DB_CONNECTION_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	RedisURL            string        `env:"REDIS_URL" validate:"omitempty,url"`
	JWTSecret           string        `env:"JWT_SECRET" validate:"required"`
	JWTTTL              time.Duration `env:"JWT_TTL" envDefault:"24h" validate:"gte=0"`
	UploadDir           string        `env:"UPLOAD_DIR" envDefault:"uploads" validate:"required"`
	MaxUploadBytes      int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"gt=0"`
	ShareHashLength     int           `env:"SHARE_HASH_LENGTH" envDefault:"10" validate:"gte=8,lte=64"`
	FrontendURL         string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173" validate:"required,url"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info" validate:"loglevel"`
}

type initOptions struct {
	envFiles []string
}

type InitOption func(*initOptions)

// WithEnvFiles overrides the dotenv files consulted before the environment.
func WithEnvFiles(files ...string) InitOption {
	return func(options *initOptions) {
		options.envFiles = files
	}
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func (c *Config) validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	return validate.Struct(c)
}

// New reads .env.local, then .env, then the process environment, and validates the result.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		envFiles: []string{".env.local", ".env"},
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	loadEnvFiles(options.envFiles)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadEnvFiles(files []string) {
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			return
		}
	}
	if len(files) > 0 {
		log.Println(".env not found, using environment variables")
	}
}
