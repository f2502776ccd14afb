package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/thereayou/brainly/internal/models"
)

// Connect opens dsn, verifies the connection within timeout and migrates the schema.
func Connect(ctx context.Context, dsn string, timeout time.Duration) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := open(postgres.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	d := NewDatabase(db)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Content{}, &models.ShareLink{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return d, nil
}

// open applies the settings every backend connection shares. TranslateError
// lets driver errors such as unique violations surface as gorm sentinels.
func open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
