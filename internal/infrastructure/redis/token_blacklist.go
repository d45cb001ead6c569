package redis

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/balekai/taskboard/internal/domain"
)

// TokenBlacklist implements auth.TokenRevocations on Redis:
// - Revoke stores: revoked:<jti> -> "1" with the token's remaining TTL
// - IsRevoked checks key existence
// Keys expire with the token, so the set cleans itself up.
type TokenBlacklist struct {
	rdb    *goredis.Client
	prefix string
}

func NewTokenBlacklist(c *Client) *TokenBlacklist {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &TokenBlacklist{
		rdb:    rdb,
		prefix: "revoked:",
	}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return domain.ErrMissingField("jti")
	}
	if b.rdb == nil {
		return domain.ErrRedisUnavailable(nil)
	}
	if ttl <= 0 {
		// Token already expired; nothing to blacklist.
		return nil
	}
	if err := b.rdb.Set(ctx, b.prefix+jti, "1", ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return false, nil
	}
	if b.rdb == nil {
		return false, domain.ErrRedisUnavailable(nil)
	}
	n, err := b.rdb.Exists(ctx, b.prefix+jti).Result()
	if err != nil {
		return false, domain.ErrRedisUnavailable(err)
	}
	return n > 0, nil
}
