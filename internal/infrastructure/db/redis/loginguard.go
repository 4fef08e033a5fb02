package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginTTL = 24 * time.Hour

// LoginGuard provides replay protection for widget logins, backed by Redis.
// Key format: login:<user_id>:<auth_date>
type LoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client}
}

// IsDuplicate reports whether this exact signed payload was already redeemed.
func (g *LoginGuard) IsDuplicate(ctx context.Context, userID int64, authDate string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(userID, authDate)).Result()
	if err != nil {
		return false, fmt.Errorf("replay check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this payload has been redeemed (expires after loginTTL).
func (g *LoginGuard) Mark(ctx context.Context, userID int64, authDate string) error {
	return g.client.Set(ctx, g.key(userID, authDate), "1", loginTTL).Err()
}

func (g *LoginGuard) key(userID int64, authDate string) string {
	return fmt.Sprintf("login:%d:%s", userID, authDate)
}
