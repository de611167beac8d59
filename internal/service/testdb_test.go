package service

import (
	"fmt"
	"strings"
	"testing"

	"eventhub/internal/model"
	"eventhub/internal/pkg"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. The shared-cache
// name keeps one database alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Event{},
		&model.EventInvite{},
		&model.Signup{},
		&model.Outbox{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type fakeSessionStore struct {
	tokens map[uint64]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[uint64]string{}}
}

func (f *fakeSessionStore) AddUserToken(userID uint64, token string) error {
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessionStore) DeleteUserToken(userID uint64) error {
	delete(f.tokens, userID)
	return nil
}

func (f *fakeSessionStore) GetUserToken(userID uint64) (string, error) {
	token, ok := f.tokens[userID]
	if !ok {
		return "", fmt.Errorf("token not found")
	}
	return token, nil
}

func (f *fakeSessionStore) ExtendUserToken(userID uint64) error { return nil }

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (f *fakeCodeStore) SetCode(scope, email, code string) error {
	f.codes[scope+":"+email] = code
	return nil
}

func (f *fakeCodeStore) GetCode(scope, email string) (string, error) {
	code, ok := f.codes[scope+":"+email]
	if !ok {
		return "", fmt.Errorf("code not found")
	}
	return code, nil
}

func (f *fakeCodeStore) DeleteCode(scope, email string) error {
	delete(f.codes, scope+":"+email)
	return nil
}

// newTestEmailService captures outbound mail instead of dialing SMTP.
func newTestEmailService(codes CodeStore, sent *[]string) *EmailService {
	svc := NewEmailService(pkg.SMTPConfig{}, codes)
	svc.send = func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error {
		*sent = append(*sent, to)
		return nil
	}
	return svc
}
