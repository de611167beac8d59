package service

import (
	"eventhub/internal/apperr"
	"eventhub/internal/pkg"
	"eventhub/internal/repository/redis"
)

// CodeStore holds one-time verification codes.
type CodeStore interface {
	SetCode(scope, email, code string) error
	GetCode(scope, email string) (string, error)
	DeleteCode(scope, email string) error
}

// SendFunc sends one mail; swapped out in tests.
type SendFunc func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error

type EmailService struct {
	cfg   pkg.SMTPConfig
	codes CodeStore
	send  SendFunc
}

func NewEmailService(cfg pkg.SMTPConfig, codes CodeStore) *EmailService {
	return &EmailService{cfg: cfg, codes: codes, send: pkg.SendEmail}
}

// SendResetCode mails a password-reset code and stores it with a TTL.
func (s *EmailService) SendResetCode(email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Unknown error", err)
	}
	if err := s.codes.SetCode("reset", email, code); err != nil {
		return apperr.Wrap(apperr.Internal, "Code store unavailable", err)
	}

	html := pkg.EmailCodeHTML("password reset", code, redis.DefaultEmailCodeTTL)
	if err := s.send(s.cfg, email, "Password reset code", html); err != nil {
		_ = s.codes.DeleteCode("reset", email)
		return apperr.Wrap(apperr.Internal, "Failed to send email", err)
	}
	return nil
}

// VerifyCode checks a code and deletes it on success, so each code is single
// use.
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.codes.GetCode(scope, email)
	if err != nil {
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err := s.codes.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
