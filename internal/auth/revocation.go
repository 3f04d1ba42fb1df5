// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "blacklist:"

// RevocationList blacklists token ids in Redis until the token would
// have expired anyway.
type RevocationList struct {
	client *redis.Client
}

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

func (l *RevocationList) Revoke(
	ctx context.Context,
	tokenID string,
	expiresAt time.Time,
) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 || tokenID == "" {
		return nil
	}

	if err := l.client.Set(ctx, revocationPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (l *RevocationList) IsRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	exists, err := l.client.Exists(ctx, revocationPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}
