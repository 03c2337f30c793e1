package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quickthumb/internal/model"
)

// WebhookEventRepository records processed payment events for dedupe.
type WebhookEventRepository interface {
	// MarkProcessed inserts the event marker and reports whether this call
	// was the first to do so. A replayed event returns false.
	MarkProcessed(ctx context.Context, event *model.WebhookEvent) (bool, error)
}

type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository builds a GORM-backed repository.
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (r *webhookEventRepository) MarkProcessed(ctx context.Context, event *model.WebhookEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
