package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/brainly/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (d *Database) SaveContent(ctx context.Context, content *models.Content) error {
	return translateError(d.db.WithContext(ctx).Omit("User").Create(content).Error)
}

func (d *Database) GetOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&content).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &content, nil
}

// ListContent returns the owner's content newest first, each with the owner's id and username.
func (d *Database) ListContent(ctx context.Context, ownerID uuid.UUID) ([]models.Content, error) {
	var items []models.Content
	err := d.db.WithContext(ctx).
		Preload("User", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "username") }).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, translateError(err)
}

// SearchContent matches term literally and case-insensitively against title and type.
func (d *Database) SearchContent(ctx context.Context, ownerID uuid.UUID, term string) ([]models.Content, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	var items []models.Content
	err := d.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where("title ILIKE ? OR type ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&items).Error
	return items, translateError(err)
}

func (d *Database) DeleteOwnedContent(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Content{})
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}
