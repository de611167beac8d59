package service

import (
	"context"
	"errors"
	"regexp"

	"eventhub/internal/apperr"
	"eventhub/internal/model"
	"eventhub/internal/pkg"
	"eventhub/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SessionStore is the slice of the redis session repository the user service
// needs. Tests substitute an in-memory implementation.
type SessionStore interface {
	AddUserToken(userID uint64, token string) error
	DeleteUserToken(userID uint64) error
}

type UserService struct {
	repo     *mysql.UserRepository
	sessions SessionStore
	emailSvc *EmailService
}

func NewUserService(repo *mysql.UserRepository, sessions SessionStore, emailSvc *EmailService) *UserService {
	return &UserService{repo: repo, sessions: sessions, emailSvc: emailSvc}
}

// Register creates the account and its profile in one transaction.
func (s *UserService) Register(ctx context.Context, email, password, username string) (*model.Profile, error) {
	if !emailRe.MatchString(email) {
		return nil, apperr.E(apperr.InvalidInput, "Invalid email address")
	}
	if len(password) < 6 {
		return nil, apperr.E(apperr.InvalidInput, "Password must be at least 6 characters")
	}
	if !model.ValidUsername(username) {
		return nil, apperr.E(apperr.InvalidInput, "Username must be 3-20 alphanumeric characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Unknown error", err)
	}

	user := &model.User{Email: email, Password: string(hash)}
	profile := &model.Profile{Username: username}
	if err := s.repo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, apperr.FromDB(err, "User not found", "Email or username already exists")
	}
	return profile, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.E(apperr.Unauthenticated, "Invalid email or password")
		}
		return nil, apperr.FromDB(err, "", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.E(apperr.Unauthenticated, "Invalid email or password")
	}

	pair, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Unknown error", err)
	}
	if err := s.sessions.AddUserToken(user.ID, pair.AccessToken); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Session store unavailable", err)
	}
	return pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	if err := s.sessions.DeleteUserToken(userID); err != nil {
		return apperr.Wrap(apperr.Internal, "Session store unavailable", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair and installs the new
// access token as the user's active session, replacing the previous one.
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, userID, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthenticated, "Invalid or expired refresh token", err)
	}
	if err := s.sessions.AddUserToken(userID, pair.AccessToken); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Session store unavailable", err)
	}
	return pair, nil
}

// ChangePassword verifies the old password before replacing it, then revokes
// the current session.
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.E(apperr.InvalidInput, "Password must be at least 6 characters")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return apperr.FromDB(err, "User not found", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperr.E(apperr.InvalidInput, "Old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Unknown error", err)
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return apperr.FromDB(err, "User not found", "")
	}
	return s.Logout(userID)
}

// ResetPassword consumes a one-time emailed code, replaces the password and
// revokes any active session.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.E(apperr.InvalidInput, "Password must be at least 6 characters")
	}
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return apperr.E(apperr.InvalidInput, "Invalid or expired verification code")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return apperr.FromDB(err, "User not found", "")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Unknown error", err)
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return apperr.FromDB(err, "User not found", "")
	}
	return s.Logout(user.ID)
}
