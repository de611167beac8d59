package service

import (
	"context"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"
)

type ProfileService struct {
	repo *mysql.ProfileRepository
}

func NewProfileService(repo *mysql.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) Get(ctx context.Context, userID uint64) (*model.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "Profile not found", "")
	}
	return profile, nil
}

func (s *ProfileService) Create(ctx context.Context, userID uint64, username, fullName, avatar string) (*model.Profile, error) {
	if !model.ValidUsername(username) {
		return nil, apperr.E(apperr.InvalidInput, "Username must be 3-20 alphanumeric characters")
	}

	profile := &model.Profile{
		UserID:   userID,
		Username: username,
		FullName: fullName,
		Avatar:   avatar,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, apperr.FromDB(err, "Profile not found", "Username already exists")
	}
	return profile, nil
}

// Update applies the provided fields to the caller's profile. Nil map entries
// are not sent; an absent profile is NotFound.
func (s *ProfileService) Update(ctx context.Context, userID uint64, username, fullName, avatar *string) (*model.Profile, error) {
	fields := map[string]any{}
	if username != nil {
		if !model.ValidUsername(*username) {
			return nil, apperr.E(apperr.InvalidInput, "Username must be 3-20 alphanumeric characters")
		}
		fields["username"] = *username
	}
	if fullName != nil {
		fields["full_name"] = *fullName
	}
	if avatar != nil {
		fields["avatar"] = *avatar
	}
	if len(fields) == 0 {
		return nil, apperr.E(apperr.InvalidInput, "No fields to update")
	}

	affected, err := s.repo.Update(ctx, userID, fields)
	if err != nil {
		return nil, apperr.FromDB(err, "Profile not found", "Username already exists")
	}
	if affected == 0 {
		return nil, apperr.E(apperr.NotFound, "Profile not found")
	}
	return s.Get(ctx, userID)
}

func (s *ProfileService) Delete(ctx context.Context, userID uint64) error {
	affected, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return apperr.FromDB(err, "Profile not found", "")
	}
	if affected == 0 {
		return apperr.E(apperr.NotFound, "Profile not found")
	}
	return nil
}
