package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestHTTPStatus(t *testing.T) {
	entries := []struct {
		err    error
		expect int
	}{
		{E(InvalidInput, "bad"), http.StatusBadRequest},
		{E(Unauthenticated, "who"), http.StatusUnauthorized},
		{E(Forbidden, "no"), http.StatusForbidden},
		{E(NotFound, "gone"), http.StatusNotFound},
		{E(AlreadyExists, "dup"), http.StatusConflict},
		{E(PersistenceFailure, "db"), http.StatusInternalServerError},
		{E(Internal, "boom"), http.StatusInternalServerError},
		{errors.New("untagged"), http.StatusInternalServerError},
	}
	for _, e := range entries {
		if got := HTTPStatus(e.err); got != e.expect {
			t.Errorf("HTTPStatus(%v) = %d, want %d", e.err, got, e.expect)
		}
	}
}

func TestFromDB(t *testing.T) {
	entries := []struct {
		name string
		err  error
		kind Kind
	}{
		{"not found", gorm.ErrRecordNotFound, NotFound},
		{"duplicate", gorm.ErrDuplicatedKey, AlreadyExists},
		{"wrapped duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), AlreadyExists},
		{"other", errors.New("connection reset"), PersistenceFailure},
	}
	for _, e := range entries {
		t.Run(e.name, func(t *testing.T) {
			got := FromDB(e.err, "nf", "dup")
			if !IsKind(got, e.kind) {
				t.Errorf("FromDB(%v) kind = %v, want %v", e.err, KindOf(got), e.kind)
			}
			if !errors.Is(got, e.err) && !errors.Is(e.err, errors.Unwrap(got)) {
				// the cause must stay reachable
				var tagged *Error
				if !errors.As(got, &tagged) || tagged.Err == nil {
					t.Errorf("FromDB(%v) lost the cause", e.err)
				}
			}
		})
	}

	if FromDB(nil, "nf", "dup") != nil {
		t.Error("FromDB(nil) should be nil")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(E(NotFound, "Profile not found")); got != "Profile not found" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(errors.New("raw driver detail")); got != "Unknown error" {
		t.Errorf("untagged Message = %q, raw errors must not leak", got)
	}
}
