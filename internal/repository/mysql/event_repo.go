package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	var event model.Event
	err := r.DB.WithContext(ctx).First(&event, id).Error
	return &event, err
}

// ListVisible returns public events plus private ones the user created or was
// invited to.
func (r *EventRepository) ListVisible(ctx context.Context, userID uint64, offset, limit int) ([]model.Event, error) {
	var list []model.Event
	err := r.DB.WithContext(ctx).
		Where("is_public = ? OR creator_id = ? OR id IN (?)",
			true, userID,
			r.DB.Model(&model.EventInvite{}).Select("event_id").Where("user_id = ?", userID)).
		Order("event_date asc").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *EventRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the event together with its invites and signups.
func (r *EventRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.Signup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

// Invite grants a user access to the event. Re-inviting is a no-op.
func (r *EventRepository) Invite(ctx context.Context, eventID, userID uint64) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&model.EventInvite{EventID: eventID, UserID: userID}).Error
}

func (r *EventRepository) IsInvited(ctx context.Context, eventID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.EventInvite{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}
