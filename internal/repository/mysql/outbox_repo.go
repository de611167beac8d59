package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending returns the oldest undelivered rows, up to batchSize.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.Outbox, error) {
	var list []model.Outbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Outbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Outbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
