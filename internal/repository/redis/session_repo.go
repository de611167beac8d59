package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	sessionTokenPrefix = "session:user:token"
	sessionTokenExpire = 60 * 30
)

// SessionRepository stores the single active access token per user. A login
// overwrites the previous session; the auth middleware compares tokens so an
// older session is rejected.
type SessionRepository struct{}

func (r *SessionRepository) AddUserToken(userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
	if err := Client.Set(context.Background(), key, token, time.Second*sessionTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) GetUserToken(userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) ExtendUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
	if _, err := Client.Expire(context.Background(), key, time.Second*sessionTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) DeleteUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", sessionTokenPrefix, userID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
