package service

import (
	"context"
	"testing"

	"eventhub/internal/apperr"
	"eventhub/internal/repository/mysql"
)

func newProfileService(t *testing.T) *ProfileService {
	return NewProfileService(&mysql.ProfileRepository{DB: newTestDB(t)})
}

func TestProfileCRUD(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, 1); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("Get before create err = %v, want NotFound", err)
	}

	profile, err := svc.Create(ctx, 1, "user1", "User One", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if profile.ID == 0 || profile.Username != "user1" {
		t.Errorf("profile = %+v", profile)
	}

	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FullName != "User One" {
		t.Errorf("full name = %q", got.FullName)
	}

	name := "User Won"
	updated, err := svc.Update(ctx, 1, nil, &name, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != "User Won" || updated.Username != "user1" {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, 1); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("second delete err = %v, want NotFound", err)
	}
}

func TestProfileValidation(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	for _, username := range []string{"", "ab", "has space", "way_too_long_username_here"} {
		if _, err := svc.Create(ctx, 1, username, "", ""); !apperr.IsKind(err, apperr.InvalidInput) {
			t.Errorf("Create(%q) err = %v, want InvalidInput", username, err)
		}
	}

	if _, err := svc.Create(ctx, 1, "user1", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	bad := "no!"
	if _, err := svc.Update(ctx, 1, &bad, nil, nil); !apperr.IsKind(err, apperr.InvalidInput) {
		t.Errorf("Update bad username err = %v, want InvalidInput", err)
	}
	if _, err := svc.Update(ctx, 1, nil, nil, nil); !apperr.IsKind(err, apperr.InvalidInput) {
		t.Errorf("empty update err = %v, want InvalidInput", err)
	}
}

func TestProfileUsernameConflict(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "user1", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, 2, "user1", "", ""); !apperr.IsKind(err, apperr.AlreadyExists) {
		t.Errorf("duplicate username err = %v, want AlreadyExists", err)
	}
	if _, err := svc.Create(ctx, 2, "user2", "", ""); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	taken := "user1"
	_, err := svc.Update(ctx, 2, &taken, nil, nil)
	if !apperr.IsKind(err, apperr.AlreadyExists) {
		t.Errorf("rename onto taken username err = %v, want AlreadyExists", err)
	}
	if apperr.Message(err) != "Username already exists" {
		t.Errorf("message = %q", apperr.Message(err))
	}
}

func TestProfileUpdateMissing(t *testing.T) {
	svc := newProfileService(t)

	name := "Ghost"
	if _, err := svc.Update(context.Background(), 99, nil, &name, nil); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("update missing profile err = %v, want NotFound", err)
	}
}
