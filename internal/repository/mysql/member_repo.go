package mysql

import (
	"context"
	"encoding/json"
	"time"

	"eventhub/internal/model"

	"gorm.io/gorm"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join inserts a membership row and its outbox event in one transaction. A
// duplicate (community_id, user_id) surfaces as gorm.ErrDuplicatedKey; the
// unique index is the only arbiter for concurrent joins.
func (r *CommunityMemberRepository) Join(ctx context.Context, member *model.CommunityMember) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventMemberJoined, member.UserID, member.CommunityID)
	})
}

// Leave removes the membership if present. Removing a non-member is a no-op;
// the caller decides what zero affected rows means.
func (r *CommunityMemberRepository) Leave(ctx context.Context, communityID, userID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND user_id = ?", communityID, userID).
			Delete(&model.CommunityMember{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return insertOutbox(tx, model.EventMemberLeft, userID, communityID)
	})
	return affected, err
}

func (r *CommunityMemberRepository) Find(ctx context.Context, communityID, userID uint64) (*model.CommunityMember, error) {
	var member model.CommunityMember
	err := r.DB.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&member).Error
	return &member, err
}

func (r *CommunityMemberRepository) ListByCommunity(ctx context.Context, communityID uint64) ([]model.CommunityMember, error) {
	var list []model.CommunityMember
	err := r.DB.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("joined_at asc").
		Find(&list).Error
	return list, err
}

// IsAdmin reports whether the user holds an accepted admin membership.
func (r *CommunityMemberRepository) IsAdmin(ctx context.Context, communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND role = ? AND status = ?",
			communityID, userID, model.RoleAdmin, model.MemberAccepted).
		Count(&count).Error
	return count > 0, err
}

// insertOutbox records a domain event inside the caller's transaction.
func insertOutbox(tx *gorm.DB, eventType string, userID, subjectID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"user_id":    userID,
		"subject_id": subjectID,
	})
	return tx.Create(&model.Outbox{
		EventType: eventType,
		UserID:    userID,
		SubjectID: subjectID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}).Error
}
