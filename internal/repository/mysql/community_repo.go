package mysql

import (
	"context"

	"eventhub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create inserts the community and joins the creator as an accepted admin in
// the same transaction.
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
			Role:        model.RoleAdmin,
			Status:      model.MemberAccepted,
		}).Error
	})
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).First(&community, id).Error
	return &community, err
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) Update(ctx context.Context, id uint64, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&model.Community{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the community and all of its memberships.
func (r *CommunityRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&model.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, id).Error
	})
}
