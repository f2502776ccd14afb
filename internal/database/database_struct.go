// Package database is the PostgreSQL storage backend built on gorm.
package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/thereayou/brainly/internal/storage"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// translateError maps gorm errors onto the storage sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return storage.ErrDuplicate
	default:
		return err
	}
}
