package service

import (
	"context"
	"testing"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"

	"gorm.io/gorm"
)

func newSignupService(t *testing.T) (*SignupService, *EventService, *gorm.DB) {
	db := newTestDB(t)
	eventSvc := NewEventService(
		&mysql.EventRepository{DB: db},
		&mysql.ProfileRepository{DB: db},
		&mysql.CommunityRepository{DB: db},
	)
	return NewSignupService(&mysql.SignupRepository{DB: db}, &mysql.EventRepository{DB: db}), eventSvc, db
}

func TestSignupPublicEvent(t *testing.T) {
	svc, eventSvc, db := newSignupService(t)
	ctx := context.Background()

	event, err := eventSvc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	signup, err := svc.Create(ctx, 2, event.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if signup.PaymentStatus != model.PaymentPending || signup.PresenceStatus != model.PresencePending {
		t.Errorf("signup = %+v", signup)
	}

	// signing up twice is rejected by the composite unique index
	if _, err := svc.Create(ctx, 2, event.ID); !apperr.IsKind(err, apperr.AlreadyExists) {
		t.Errorf("duplicate err = %v, want AlreadyExists", err)
	}

	var events int64
	db.Model(&model.Outbox{}).Where("event_type = ?", model.EventSignupCreated).Count(&events)
	if events != 1 {
		t.Errorf("outbox signup.created rows = %d, want 1", events)
	}
}

func TestSignupPrivateEvent(t *testing.T) {
	svc, eventSvc, db := newSignupService(t)
	ctx := context.Background()

	in := validEventInput()
	in.IsPublic = boolPtr(false)
	event, err := eventSvc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	// not invited: forbidden
	if _, err := svc.Create(ctx, 2, event.ID); !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("uninvited err = %v, want Forbidden", err)
	}
	// the creator may sign up for their own private event
	if _, err := svc.Create(ctx, 1, event.ID); err != nil {
		t.Errorf("creator signup: %v", err)
	}
	// an invited user may sign up
	db.Create(&model.Profile{UserID: 2, Username: "guest1"})
	if err := eventSvc.AddUser(ctx, 1, event.ID, "guest1"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := svc.Create(ctx, 2, event.ID); err != nil {
		t.Errorf("invited signup: %v", err)
	}

	if _, err := svc.Create(ctx, 2, 424242); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("missing event err = %v, want NotFound", err)
	}
}

func TestListMine(t *testing.T) {
	svc, eventSvc, _ := newSignupService(t)
	ctx := context.Background()

	in := validEventInput()
	in.Title = strPtr("Morning Run")
	in.Location = strPtr("Riverside Park")
	event, err := eventSvc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := svc.Create(ctx, 2, event.ID); err != nil {
		t.Fatalf("signup: %v", err)
	}

	list, err := svc.ListMine(ctx, 2)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if list[0].EventTitle != "Morning Run" || list[0].Location != "Riverside Park" {
		t.Errorf("joined summary = %+v", list[0])
	}

	other, err := svc.ListMine(ctx, 3)
	if err != nil {
		t.Fatalf("ListMine other: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other's list = %d, want 0", len(other))
	}
}

func TestSignupStats(t *testing.T) {
	svc, eventSvc, _ := newSignupService(t)
	ctx := context.Background()

	event, err := eventSvc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	stats, err := svc.Stats(ctx, 1, event.ID)
	if err != nil {
		t.Fatalf("Stats on empty event: %v", err)
	}
	if stats.SignupCount != 0 || stats.ConfirmedCount != 0 || stats.RejectedCount != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	confirmed := model.PresenceConfirmed
	rejected := model.PresenceRejected
	for user, presence := range map[uint64]*model.PresenceStatus{2: &confirmed, 3: &rejected, 4: nil} {
		if _, err := svc.Create(ctx, user, event.ID); err != nil {
			t.Fatalf("signup %d: %v", user, err)
		}
		if presence != nil {
			if _, err := svc.Update(ctx, user, event.ID, nil, presence); err != nil {
				t.Fatalf("update %d: %v", user, err)
			}
		}
	}

	stats, err = svc.Stats(ctx, 1, event.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.SignupCount != 3 || stats.ConfirmedCount != 1 || stats.RejectedCount != 1 {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := svc.Stats(ctx, 1, 424242); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("missing event err = %v, want NotFound", err)
	}
}

func TestSignupStatsPrivateEvent(t *testing.T) {
	svc, eventSvc, db := newSignupService(t)
	ctx := context.Background()

	in := validEventInput()
	in.IsPublic = boolPtr(false)
	event, err := eventSvc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	// an uninvited caller cannot even learn the event exists
	if _, err := svc.Stats(ctx, 2, event.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("stranger stats err = %v, want NotFound", err)
	}
	if _, err := svc.Stats(ctx, 1, event.ID); err != nil {
		t.Errorf("creator stats: %v", err)
	}

	db.Create(&model.Profile{UserID: 2, Username: "guest1"})
	if err := eventSvc.AddUser(ctx, 1, event.ID, "guest1"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := svc.Stats(ctx, 2, event.ID); err != nil {
		t.Errorf("invited stats: %v", err)
	}
}

func TestUpdateSignup(t *testing.T) {
	svc, eventSvc, _ := newSignupService(t)
	ctx := context.Background()

	event, err := eventSvc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := svc.Create(ctx, 2, event.ID); err != nil {
		t.Fatalf("signup: %v", err)
	}

	completed := model.PaymentCompleted
	signup, err := svc.Update(ctx, 2, event.ID, &completed, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if signup.PaymentStatus != model.PaymentCompleted {
		t.Errorf("payment = %v", signup.PaymentStatus)
	}

	bad := model.PaymentStatus("refunded")
	if _, err := svc.Update(ctx, 2, event.ID, &bad, nil); !apperr.IsKind(err, apperr.InvalidInput) {
		t.Errorf("bad enum err = %v, want InvalidInput", err)
	}
	if _, err := svc.Update(ctx, 2, event.ID, nil, nil); !apperr.IsKind(err, apperr.InvalidInput) {
		t.Errorf("empty update err = %v, want InvalidInput", err)
	}
	// another user has no signup row to update
	if _, err := svc.Update(ctx, 3, event.ID, &completed, nil); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user err = %v, want NotFound", err)
	}
}

func TestCancelSignup(t *testing.T) {
	svc, eventSvc, db := newSignupService(t)
	ctx := context.Background()

	event, err := eventSvc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := svc.Create(ctx, 2, event.ID); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// cancelling someone else's signup is indistinguishable from a missing one
	if err := svc.Cancel(ctx, 3, event.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other's cancel err = %v, want NotFound", err)
	}
	if err := svc.Cancel(ctx, 2, event.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := svc.Cancel(ctx, 2, event.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("second cancel err = %v, want NotFound", err)
	}

	var events int64
	db.Model(&model.Outbox{}).Where("event_type = ?", model.EventSignupCancelled).Count(&events)
	if events != 1 {
		t.Errorf("outbox signup.cancelled rows = %d, want 1", events)
	}
}
