package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

// CreateWithProfile inserts the user and its profile in one transaction so a
// half-registered account can never exist.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, newPassword string) error {
	return r.DB.WithContext(ctx).Model(user).Update("password", newPassword).Error
}
