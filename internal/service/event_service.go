package service

import (
	"context"
	"time"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"
)

type EventService struct {
	repo        *mysql.EventRepository
	profileRepo *mysql.ProfileRepository
	commRepo    *mysql.CommunityRepository
}

func NewEventService(repo *mysql.EventRepository, profileRepo *mysql.ProfileRepository, commRepo *mysql.CommunityRepository) *EventService {
	return &EventService{repo: repo, profileRepo: profileRepo, commRepo: commRepo}
}

// EventInput carries the mutable event fields. Pointer fields distinguish
// "absent" from zero values on partial updates.
type EventInput struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	EventDate       *time.Time `json:"event_date"`
	IsPublic        *bool      `json:"is_public"`
	Price           *float64   `json:"price"`
	MinParticipants *int       `json:"min_participants"`
	MaxParticipants *int       `json:"max_participants"`
	Location        *string    `json:"location"`
	ImageURL        *string    `json:"image_url"`
	CommunityID     *uint64    `json:"community_id"`
}

func validateEventInput(in EventInput) error {
	if in.Title != nil && !model.ValidName(*in.Title) {
		return apperr.E(apperr.InvalidInput, "Event title must be 3-50 alphanumeric characters or spaces")
	}
	if in.Price != nil && *in.Price < 0 {
		return apperr.E(apperr.InvalidInput, "Price must be zero or positive")
	}
	if in.MinParticipants != nil && *in.MinParticipants < 0 {
		return apperr.E(apperr.InvalidInput, "Minimum participants must be zero or positive")
	}
	if in.MaxParticipants != nil && *in.MaxParticipants < 0 {
		return apperr.E(apperr.InvalidInput, "Maximum participants must be zero or positive")
	}
	if in.MinParticipants != nil && in.MaxParticipants != nil &&
		*in.MaxParticipants > 0 && *in.MinParticipants > *in.MaxParticipants {
		return apperr.E(apperr.InvalidInput, "Minimum participants cannot exceed maximum")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, userID uint64, in EventInput) (*model.Event, error) {
	if in.Title == nil {
		return nil, apperr.E(apperr.InvalidInput, "Event title is required")
	}
	if in.EventDate == nil || in.EventDate.IsZero() {
		return nil, apperr.E(apperr.InvalidInput, "Event date is required")
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	if in.CommunityID != nil {
		if _, err := s.commRepo.FindByID(ctx, *in.CommunityID); err != nil {
			return nil, apperr.FromDB(err, "Community not found", "")
		}
	}

	event := &model.Event{
		Title:       *in.Title,
		EventDate:   *in.EventDate,
		IsPublic:    true,
		CreatorID:   userID,
		CommunityID: in.CommunityID,
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.IsPublic != nil {
		event.IsPublic = *in.IsPublic
	}
	if in.Price != nil {
		event.Price = *in.Price
	}
	if in.MinParticipants != nil {
		event.MinParticipants = *in.MinParticipants
	}
	if in.MaxParticipants != nil {
		event.MaxParticipants = *in.MaxParticipants
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.ImageURL != nil {
		event.ImageURL = *in.ImageURL
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperr.FromDB(err, "Event not found", "Event already exists")
	}
	return event, nil
}

// Get returns the event if the caller may see it. Private events are hidden
// from everyone but the creator and invited users, as if they did not exist.
func (s *EventService) Get(ctx context.Context, userID, id uint64) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "Event not found", "")
	}
	if !event.IsPublic && event.CreatorID != userID {
		invited, err := s.repo.IsInvited(ctx, id, userID)
		if err != nil {
			return nil, apperr.FromDB(err, "", "")
		}
		if !invited {
			return nil, apperr.E(apperr.NotFound, "Event not found")
		}
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, userID uint64, page, size int) ([]model.Event, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	list, err := s.repo.ListVisible(ctx, userID, (page-1)*size, size)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return list, nil
}

func (s *EventService) Update(ctx context.Context, userID, id uint64, in EventInput) (*model.Event, error) {
	event, err := s.mustOwn(ctx, userID, id, "Only the creator can modify this event")
	if err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.EventDate != nil {
		fields["event_date"] = *in.EventDate
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.MinParticipants != nil {
		fields["min_participants"] = *in.MinParticipants
	}
	if in.MaxParticipants != nil {
		fields["max_participants"] = *in.MaxParticipants
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if len(fields) == 0 {
		return nil, apperr.E(apperr.InvalidInput, "No fields to update")
	}

	if err := s.repo.Update(ctx, event.ID, fields); err != nil {
		return nil, apperr.FromDB(err, "Event not found", "")
	}
	updated, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return nil, apperr.FromDB(err, "Event not found", "")
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, userID, id uint64) error {
	event, err := s.mustOwn(ctx, userID, id, "Only the creator can delete this event")
	if err != nil {
		return err
	}
	return apperr.FromDB(s.repo.Delete(ctx, event.ID), "Event not found", "")
}

// AddUser pre-authorizes a user, looked up by username, for a private event.
// Re-adding an already invited user is a no-op.
func (s *EventService) AddUser(ctx context.Context, userID, eventID uint64, username string) error {
	if _, err := s.mustOwn(ctx, userID, eventID, "Only the creator can add users to this event"); err != nil {
		return err
	}
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return apperr.FromDB(err, "User not found", "")
	}
	return apperr.FromDB(s.repo.Invite(ctx, eventID, profile.UserID), "", "")
}

func (s *EventService) mustOwn(ctx context.Context, userID, id uint64, forbiddenMsg string) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB(err, "Event not found", "")
	}
	if event.CreatorID != userID {
		return nil, apperr.E(apperr.Forbidden, forbiddenMsg)
	}
	return event, nil
}
