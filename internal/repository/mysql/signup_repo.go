package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
)

type SignupRepository struct {
	DB *gorm.DB
}

// Create inserts the signup and its outbox event in one transaction. A
// duplicate (user_id, event_id) surfaces as gorm.ErrDuplicatedKey.
func (r *SignupRepository) Create(ctx context.Context, signup *model.Signup) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(signup).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventSignupCreated, signup.UserID, signup.EventID)
	})
}

func (r *SignupRepository) Find(ctx context.Context, userID, eventID uint64) (*model.Signup, error) {
	var signup model.Signup
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&signup).Error
	return &signup, err
}

// ListByUser returns the user's signups joined with a summary of each event.
func (r *SignupRepository) ListByUser(ctx context.Context, userID uint64) ([]model.SignupWithEvent, error) {
	var list []model.SignupWithEvent
	err := r.DB.WithContext(ctx).Model(&model.Signup{}).
		Select("signups.*, events.title AS event_title, events.event_date, events.location, events.price").
		Joins("JOIN events ON events.id = signups.event_id").
		Where("signups.user_id = ?", userID).
		Order("signups.signup_date desc").
		Scan(&list).Error
	return list, err
}

// Stats aggregates presence counts for one event.
func (r *SignupRepository) Stats(ctx context.Context, eventID uint64) (*model.SignupStats, error) {
	var stats model.SignupStats
	err := r.DB.WithContext(ctx).Model(&model.Signup{}).
		Select(
			"COUNT(*) AS signup_count, "+
				"COALESCE(SUM(CASE WHEN presence_status = ? THEN 1 ELSE 0 END), 0) AS confirmed_count, "+
				"COALESCE(SUM(CASE WHEN presence_status = ? THEN 1 ELSE 0 END), 0) AS rejected_count",
			model.PresenceConfirmed, model.PresenceRejected).
		Where("event_id = ?", eventID).
		Scan(&stats).Error
	return &stats, err
}

// Update applies status changes to the user's own signup; zero affected rows
// means no such signup exists.
func (r *SignupRepository) Update(ctx context.Context, userID, eventID uint64, fields map[string]any) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Signup{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

// Delete cancels the user's own signup, recording the cancellation event when
// a row was actually removed.
func (r *SignupRepository) Delete(ctx context.Context, userID, eventID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND event_id = ?", userID, eventID).
			Delete(&model.Signup{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return insertOutbox(tx, model.EventSignupCancelled, userID, eventID)
	})
	return affected, err
}
