package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/thereayou/brainly/internal/models"
)

func (d *Database) SaveShareLink(ctx context.Context, link *models.ShareLink) error {
	return translateError(d.db.WithContext(ctx).Omit("User").Create(link).Error)
}

func (d *Database) GetShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := d.db.WithContext(ctx).First(&link, "user_id = ?", ownerID).Error; err != nil {
		return nil, translateError(err)
	}
	return &link, nil
}

func (d *Database) GetShareLinkByHash(ctx context.Context, hash string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := d.db.WithContext(ctx).First(&link, "hash = ?", hash).Error; err != nil {
		return nil, translateError(err)
	}
	return &link, nil
}

func (d *Database) DeleteShareLinkByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return translateError(d.db.WithContext(ctx).Delete(&models.ShareLink{}, "user_id = ?", ownerID).Error)
}
