package service

import (
	"context"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"
)

type CommunityService struct {
	repo       *mysql.CommunityRepository
	memberRepo *mysql.CommunityMemberRepository
}

func NewCommunityService(repo *mysql.CommunityRepository, memberRepo *mysql.CommunityMemberRepository) *CommunityService {
	return &CommunityService{repo: repo, memberRepo: memberRepo}
}

func (s *CommunityService) Create(ctx context.Context, userID uint64, name, description string) (*model.Community, error) {
	if !model.ValidName(name) {
		return nil, apperr.E(apperr.InvalidInput, "Community name must be 3-50 alphanumeric characters or spaces")
	}

	community := &model.Community{
		Name:        name,
		Description: description,
		CreatorID:   userID,
	}
	if err := s.repo.Create(ctx, community); err != nil {
		return nil, apperr.FromDB(err, "Community not found", "Community name already exists")
	}
	return community, nil
}

func (s *CommunityService) Get(ctx context.Context, id uint64) (*model.Community, error) {
	community, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "Community not found", "")
	}
	return community, nil
}

func (s *CommunityService) List(ctx context.Context, page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	list, err := s.repo.List(ctx, (page-1)*size, size)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return list, nil
}

// Update renames or re-describes a community. Only the creator may mutate it;
// a non-owner gets Forbidden, a missing community NotFound.
func (s *CommunityService) Update(ctx context.Context, userID, id uint64, name, description *string) (*model.Community, error) {
	community, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if community.CreatorID != userID {
		return nil, apperr.E(apperr.Forbidden, "Only the creator can modify this community")
	}

	fields := map[string]any{}
	if name != nil {
		if !model.ValidName(*name) {
			return nil, apperr.E(apperr.InvalidInput, "Community name must be 3-50 alphanumeric characters or spaces")
		}
		fields["name"] = *name
	}
	if description != nil {
		fields["description"] = *description
	}
	if len(fields) == 0 {
		return nil, apperr.E(apperr.InvalidInput, "No fields to update")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, apperr.FromDB(err, "Community not found", "Community name already exists")
	}
	return s.Get(ctx, id)
}

func (s *CommunityService) Delete(ctx context.Context, userID, id uint64) error {
	community, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if community.CreatorID != userID {
		return apperr.E(apperr.Forbidden, "Only the creator can delete this community")
	}
	return apperr.FromDB(s.repo.Delete(ctx, id), "Community not found", "")
}

// Join adds the caller as an accepted member. A concurrent duplicate join is
// resolved by the unique index and surfaces as AlreadyExists.
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint64) (*model.CommunityMember, error) {
	if _, err := s.Get(ctx, communityID); err != nil {
		return nil, err
	}

	member := &model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        model.RoleMember,
		Status:      model.MemberAccepted,
	}
	if err := s.memberRepo.Join(ctx, member); err != nil {
		return nil, apperr.FromDB(err, "Community not found", "Already a member of this community")
	}
	return member, nil
}

// Leave removes the caller's membership. Leaving a community the caller never
// joined is a no-op success.
func (s *CommunityService) Leave(ctx context.Context, userID, communityID uint64) error {
	if _, err := s.memberRepo.Leave(ctx, communityID, userID); err != nil {
		return apperr.FromDB(err, "", "")
	}
	return nil
}

// RemoveMember removes another member; only accepted admins may do so.
func (s *CommunityService) RemoveMember(ctx context.Context, requesterID, communityID, targetUserID uint64) error {
	if _, err := s.Get(ctx, communityID); err != nil {
		return err
	}
	isAdmin, err := s.memberRepo.IsAdmin(ctx, communityID, requesterID)
	if err != nil {
		return apperr.FromDB(err, "", "")
	}
	if !isAdmin {
		return apperr.E(apperr.Forbidden, "Only a community admin can remove members")
	}

	affected, err := s.memberRepo.Leave(ctx, communityID, targetUserID)
	if err != nil {
		return apperr.FromDB(err, "", "")
	}
	if affected == 0 {
		return apperr.E(apperr.NotFound, "Membership not found")
	}
	return nil
}

func (s *CommunityService) Members(ctx context.Context, communityID uint64) ([]model.CommunityMember, error) {
	if _, err := s.Get(ctx, communityID); err != nil {
		return nil, err
	}
	list, err := s.memberRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return list, nil
}
