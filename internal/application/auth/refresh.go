package auth

import (
	"context"

	"github.com/balekai/taskboard/internal/domain"
)

// Refresh exchanges a valid refresh token for a new access+refresh pair.
// Only refresh-type tokens are accepted here, mirroring the gate's rule
// that only access-type tokens authenticate requests.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}
	if claims.Type != TokenTypeRefresh {
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	// The subject must still map to an account; refresh for a deleted user
	// is invalid, same as the access path.
	u, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return AuthTokens{}, domain.ErrRefreshTokenInvalid()
	}

	return s.issueTokens(u.Email)
}
