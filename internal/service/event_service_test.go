package service

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/repository/mysql"

	"gorm.io/gorm"
)

func newEventService(t *testing.T) (*EventService, *gorm.DB) {
	db := newTestDB(t)
	return NewEventService(
		&mysql.EventRepository{DB: db},
		&mysql.ProfileRepository{DB: db},
		&mysql.CommunityRepository{DB: db},
	), db
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func validEventInput() EventInput {
	return EventInput{
		Title:     strPtr("Board Games Night"),
		EventDate: timePtr(time.Now().Add(48 * time.Hour)),
	}
}

func TestCreateEvent(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	in := validEventInput()
	in.Description = strPtr("bring snacks")
	in.Price = f64Ptr(5)
	in.MaxParticipants = intPtr(20)

	event, err := svc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID == 0 || event.CreatorID != 1 || !event.IsPublic {
		t.Errorf("event = %+v", event)
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	entries := []struct {
		name   string
		mutate func(*EventInput)
	}{
		{"missing title", func(in *EventInput) { in.Title = nil }},
		{"bad title", func(in *EventInput) { in.Title = strPtr("x") }},
		{"missing date", func(in *EventInput) { in.EventDate = nil }},
		{"negative price", func(in *EventInput) { in.Price = f64Ptr(-1) }},
		{"negative min", func(in *EventInput) { in.MinParticipants = intPtr(-1) }},
		{"min over max", func(in *EventInput) {
			in.MinParticipants = intPtr(10)
			in.MaxParticipants = intPtr(5)
		}},
	}
	for _, e := range entries {
		t.Run(e.name, func(t *testing.T) {
			in := validEventInput()
			e.mutate(&in)
			if _, err := svc.Create(ctx, 1, in); !apperr.IsKind(err, apperr.InvalidInput) {
				t.Errorf("err = %v, want InvalidInput", err)
			}
		})
	}

	// an unknown community is rejected up front
	in := validEventInput()
	unknown := uint64(424242)
	in.CommunityID = &unknown
	if _, err := svc.Create(ctx, 1, in); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("unknown community err = %v, want NotFound", err)
	}
}

func TestGetEventVisibility(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	in := validEventInput()
	in.IsPublic = boolPtr(false)
	private, err := svc.Create(ctx, 1, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// the row must persist as private, not fall back to a column default
	var stored model.Event
	if err := db.First(&stored, private.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IsPublic {
		t.Fatal("private event stored as public")
	}

	if _, err := svc.Get(ctx, 1, private.ID); err != nil {
		t.Errorf("creator Get: %v", err)
	}
	// a stranger sees nothing, not a hint that the event exists
	if _, err := svc.Get(ctx, 2, private.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("stranger Get err = %v, want NotFound", err)
	}

	// an invited user sees it
	db.Create(&model.Profile{UserID: 2, Username: "guest1"})
	if err := svc.AddUser(ctx, 1, private.ID, "guest1"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := svc.Get(ctx, 2, private.ID); err != nil {
		t.Errorf("invited Get: %v", err)
	}
}

func TestListEvents(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	pub := validEventInput()
	pub.Title = strPtr("Public Meetup")
	if _, err := svc.Create(ctx, 1, pub); err != nil {
		t.Fatalf("create public: %v", err)
	}

	priv := validEventInput()
	priv.Title = strPtr("Private Dinner")
	priv.IsPublic = boolPtr(false)
	if _, err := svc.Create(ctx, 1, priv); err != nil {
		t.Fatalf("create private: %v", err)
	}

	// the creator sees both
	list, err := svc.List(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("creator list = %d, want 2", len(list))
	}

	// a stranger sees only the public one
	list, err = svc.List(ctx, 2, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Public Meetup" {
		t.Errorf("stranger list = %+v", list)
	}
}

func TestUpdateEventOwnership(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, 1, event.ID, EventInput{Price: f64Ptr(12.5)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 12.5 {
		t.Errorf("price = %v", updated.Price)
	}

	if _, err := svc.Update(ctx, 2, event.ID, EventInput{Price: f64Ptr(1)}); !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("non-owner update err = %v, want Forbidden", err)
	}
	if _, err := svc.Update(ctx, 1, 424242, EventInput{Price: f64Ptr(1)}); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("missing update err = %v, want NotFound", err)
	}
}

func TestDeleteEventOwnership(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, 2, event.ID); !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("non-owner delete err = %v, want Forbidden", err)
	}
	if err := svc.Delete(ctx, 1, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, 1, event.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("second delete err = %v, want NotFound", err)
	}
}

func TestAddUser(t *testing.T) {
	svc, db := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, 1, validEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	db.Create(&model.Profile{UserID: 2, Username: "guest1"})

	if err := svc.AddUser(ctx, 2, event.ID, "guest1"); !apperr.IsKind(err, apperr.Forbidden) {
		t.Errorf("non-creator add err = %v, want Forbidden", err)
	}
	if err := svc.AddUser(ctx, 1, event.ID, "nobody"); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("unknown username err = %v, want NotFound", err)
	}
	if err := svc.AddUser(ctx, 1, event.ID, "guest1"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	// re-adding is a no-op, not a conflict
	if err := svc.AddUser(ctx, 1, event.ID, "guest1"); err != nil {
		t.Errorf("repeat AddUser err = %v, want nil", err)
	}
}
