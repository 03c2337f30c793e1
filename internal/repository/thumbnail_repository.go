package repository

import (
	"context"

	"gorm.io/gorm"

	"quickthumb/internal/model"
)

// ThumbnailRepository defines thumbnail-record persistence operations.
type ThumbnailRepository interface {
	Create(ctx context.Context, thumbnail *model.Thumbnail) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Thumbnail, error)
}

type thumbnailRepository struct {
	db *gorm.DB
}

// NewThumbnailRepository builds a GORM-backed repository.
func NewThumbnailRepository(db *gorm.DB) ThumbnailRepository {
	return &thumbnailRepository{db: db}
}

func (r *thumbnailRepository) Create(ctx context.Context, thumbnail *model.Thumbnail) error {
	return r.db.WithContext(ctx).Create(thumbnail).Error
}

// ListRecentByUser returns up to limit records owned by userID, newest first.
func (r *thumbnailRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Thumbnail, error) {
	var thumbnails []model.Thumbnail
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&thumbnails).Error; err != nil {
		return nil, err
	}
	return thumbnails, nil
}
