package service

import (
	"context"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"
)

type SignupService struct {
	repo      *mysql.SignupRepository
	eventRepo *mysql.EventRepository
}

func NewSignupService(repo *mysql.SignupRepository, eventRepo *mysql.EventRepository) *SignupService {
	return &SignupService{repo: repo, eventRepo: eventRepo}
}

// accessibleEvent loads the event and rejects callers a private event is not
// open to. deniedErr distinguishes the signup path (explicit Forbidden) from
// read paths that hide the event entirely.
func (s *SignupService) accessibleEvent(ctx context.Context, userID, eventID uint64, deniedErr error) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, apperr.FromDB(err, "Event not found", "")
	}
	if !event.IsPublic && event.CreatorID != userID {
		invited, err := s.eventRepo.IsInvited(ctx, eventID, userID)
		if err != nil {
			return nil, apperr.FromDB(err, "", "")
		}
		if !invited {
			return nil, deniedErr
		}
	}
	return event, nil
}

// Create signs the caller up for an event. Public events are open to anyone;
// private events require an invite (or being the creator). The pre-check
// produces a precise error, the unique index settles concurrent duplicates.
func (s *SignupService) Create(ctx context.Context, userID, eventID uint64) (*model.Signup, error) {
	if _, err := s.accessibleEvent(ctx, userID, eventID, apperr.E(apperr.Forbidden, "This event is private")); err != nil {
		return nil, err
	}

	signup := &model.Signup{
		UserID:         userID,
		EventID:        eventID,
		PaymentStatus:  model.PaymentPending,
		PresenceStatus: model.PresencePending,
	}
	if err := s.repo.Create(ctx, signup); err != nil {
		return nil, apperr.FromDB(err, "Event not found", "Already signed up for this event")
	}
	return signup, nil
}

func (s *SignupService) ListMine(ctx context.Context, userID uint64) ([]model.SignupWithEvent, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return list, nil
}

// Stats hides private events from uninvited callers the same way Get does,
// so the counts never confirm the event exists.
func (s *SignupService) Stats(ctx context.Context, userID, eventID uint64) (*model.SignupStats, error) {
	if _, err := s.accessibleEvent(ctx, userID, eventID, apperr.E(apperr.NotFound, "Event not found")); err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, eventID)
	if err != nil {
		return nil, apperr.FromDB(err, "", "")
	}
	return stats, nil
}

// Update changes the caller's own signup statuses. Another user's signup is
// invisible here, so the result is NotFound rather than Forbidden.
func (s *SignupService) Update(ctx context.Context, userID, eventID uint64, payment *model.PaymentStatus, presence *model.PresenceStatus) (*model.Signup, error) {
	fields := map[string]any{}
	if payment != nil {
		if !payment.Valid() {
			return nil, apperr.E(apperr.InvalidInput, "Invalid payment status")
		}
		fields["payment_status"] = *payment
	}
	if presence != nil {
		if !presence.Valid() {
			return nil, apperr.E(apperr.InvalidInput, "Invalid presence status")
		}
		fields["presence_status"] = *presence
	}
	if len(fields) == 0 {
		return nil, apperr.E(apperr.InvalidInput, "No fields to update")
	}

	affected, err := s.repo.Update(ctx, userID, eventID, fields)
	if err != nil {
		return nil, apperr.FromDB(err, "Signup not found", "")
	}
	if affected == 0 {
		return nil, apperr.E(apperr.NotFound, "Signup not found")
	}
	signup, err := s.repo.Find(ctx, userID, eventID)
	if err != nil {
		return nil, apperr.FromDB(err, "Signup not found", "")
	}
	return signup, nil
}

// Cancel removes the caller's own signup. Cancelling a signup that does not
// exist, or that belongs to someone else, is NotFound.
func (s *SignupService) Cancel(ctx context.Context, userID, eventID uint64) error {
	affected, err := s.repo.Delete(ctx, userID, eventID)
	if err != nil {
		return apperr.FromDB(err, "", "")
	}
	if affected == 0 {
		return apperr.E(apperr.NotFound, "Signup not found")
	}
	return nil
}
