package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCodeNotFound = errors.New("code not found")

const (
	emailCodePrefix = "email:code"

	// DefaultEmailCodeTTL bounds how long a one-time code stays valid.
	DefaultEmailCodeTTL = 10 * time.Minute
)

// EmailRepository stores one-time verification codes, keyed by scope (e.g.
// "reset") and address. Codes are single use: verification deletes them.
type EmailRepository struct{}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", emailCodePrefix, scope, email)
}

func (r *EmailRepository) SetCode(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *EmailRepository) GetCode(scope, email string) (string, error) {
	code, err := Client.Get(context.Background(), codeKey(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return code, nil
}

func (r *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
