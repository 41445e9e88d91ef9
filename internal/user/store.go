package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CodeStore persists pending OTP challenges keyed by phone number.
type CodeStore interface {
	SaveCode(ctx context.Context, phone, codeHash string, ttl time.Duration) error
	GetCode(ctx context.Context, phone string) (string, error)
	DeleteCode(ctx context.Context, phone string) error
	IncrAttempts(ctx context.Context, phone string) (int64, error)
}

// RefreshStore tracks issued refresh tokens so they can be rotated and
// revoked. A token absent from the store is treated as revoked.
type RefreshStore interface {
	SaveToken(ctx context.Context, token, userID string, ttl time.Duration) error
	TokenUserID(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, token string) error
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisCodeStore(rdb *redis.Client) CodeStore {
	return &redisStore{rdb: rdb}
}

func NewRedisRefreshStore(rdb *redis.Client) RefreshStore {
	return &redisStore{rdb: rdb}
}

func codeKey(phone string) string     { return fmt.Sprintf("otp:code:%s", phone) }
func attemptsKey(phone string) string { return fmt.Sprintf("otp:attempts:%s", phone) }
func refreshKey(token string) string  { return fmt.Sprintf("auth:refresh:%s", token) }

func (s *redisStore) SaveCode(ctx context.Context, phone, codeHash string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, codeKey(phone), codeHash, ttl).Err(); err != nil {
		return err
	}
	// attempts counter expires with the code
	s.rdb.Del(ctx, attemptsKey(phone))
	return nil
}

func (s *redisStore) GetCode(ctx context.Context, phone string) (string, error) {
	val, err := s.rdb.Get(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) DeleteCode(ctx context.Context, phone string) error {
	return s.rdb.Del(ctx, codeKey(phone), attemptsKey(phone)).Err()
}

func (s *redisStore) IncrAttempts(ctx context.Context, phone string) (int64, error) {
	n, err := s.rdb.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		s.rdb.Expire(ctx, attemptsKey(phone), 5*time.Minute)
	}
	return n, nil
}

func (s *redisStore) SaveToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKey(token), userID, ttl).Err()
}

func (s *redisStore) TokenUserID(ctx context.Context, token string) (string, error) {
	val, err := s.rdb.Get(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *redisStore) DeleteToken(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}
