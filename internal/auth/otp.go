// AngelaMos | 2026
// otp.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/tenanthub/internal/core"
)

// OTPStore holds one-time codes keyed by email with per-code expiry.
type OTPStore interface {
	Save(ctx context.Context, email, code string, expiresAt time.Time) error
	Verify(ctx context.Context, email, code string, now time.Time) (bool, error)
	Consume(ctx context.Context, email, code string, now time.Time) (bool, error)
}

// RedisOTPStore keeps a sorted set per email. Members are code hashes,
// scores are expiry times in unix milliseconds.
type RedisOTPStore struct {
	client *redis.Client
	prefix string
}

func NewRedisOTPStore(client *redis.Client, prefix string) *RedisOTPStore {
	if prefix == "" {
		prefix = "otp:"
	}
	return &RedisOTPStore{client: client, prefix: prefix}
}

func (s *RedisOTPStore) key(email string) string {
	return s.prefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *RedisOTPStore) Save(
	ctx context.Context,
	email, code string,
	expiresAt time.Time,
) error {
	key := s.key(email)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(expiresAt.UnixMilli()),
			Member: core.HashToken(code),
		})
		pipe.PExpireAt(ctx, key, expiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	return nil
}

func (s *RedisOTPStore) Verify(
	ctx context.Context,
	email, code string,
	now time.Time,
) (bool, error) {
	key := s.key(email)

	var score *redis.FloatCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", sweepBound(now))
		score = pipe.ZScore(ctx, key, core.HashToken(code))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("verify otp: %w", err)
	}

	if err := score.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("verify otp: %w", err)
	}

	return score.Val() > float64(now.UnixMilli()), nil
}

// Consume removes the code if it is still live. Only one caller can
// observe true for a given code.
func (s *RedisOTPStore) Consume(
	ctx context.Context,
	email, code string,
	now time.Time,
) (bool, error) {
	key := s.key(email)

	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", sweepBound(now))
		removed = pipe.ZRem(ctx, key, core.HashToken(code))
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}

	return removed.Val() == 1, nil
}

func sweepBound(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
