package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/brainly/internal/models"
	"github.com/thereayou/brainly/internal/storage"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return translateError(d.db.WithContext(ctx).Create(user).Error)
}

func (d *Database) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// UpdateUserProfile applies changes in one statement; the unique index on
// username rejects collisions.
func (d *Database) UpdateUserProfile(ctx context.Context, id uuid.UUID, changes models.ProfileChanges) (*models.User, error) {
	updates := map[string]interface{}{}
	if changes.Username != nil {
		updates["username"] = *changes.Username
	}
	if changes.Bio != nil {
		updates["bio"] = *changes.Bio
	}

	var user models.User
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return storage.ErrNotFound
			}
		}
		return tx.First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
