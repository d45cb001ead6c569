package auth

import (
	"context"
	"time"

	"github.com/balekai/taskboard/internal/domain"
)

// Logout revokes the presented access token by blacklisting its JTI until
// natural expiry. Tokens are stateless otherwise, so this is the only
// server-side invalidation path. Missing token or missing blacklist is a
// no-op, not an error.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" || s.revocations == nil {
		return nil
	}

	claims, err := s.tokens.Verify(accessToken)
	if err != nil || claims.Type != TokenTypeAccess || claims.ID == "" {
		// Nothing valid to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	s.audit("token_revoked", map[string]string{"jti": claims.ID})
	return nil
}
