package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.DB.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&profile).Error
	return &profile, err
}

// Update applies the given fields to the principal's profile and returns the
// number of affected rows, zero meaning the profile does not exist.
func (r *ProfileRepository) Update(ctx context.Context, userID uint64, fields map[string]any) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Profile{})
	return tx.RowsAffected, tx.Error
}
