package auth

import (
	"context"
	"strings"

	"github.com/balekai/taskboard/internal/domain"
)

// VerifyCredential validates a raw bearer token against both trust schemes
// and returns the verified principal.
//
// Attempt order: local HMAC token first, then the federated provider. A
// local parse failure is never treated as proof the token is federated; the
// provider is actually asked, and if it also rejects, the whole verification
// fails. Callers get one generic token_invalid either way, so clients cannot
// probe which scheme almost succeeded. The only local failure allowed to
// surface by name is token_wrong_type: the signature checked out, the caller
// just handed us a refresh token, and naming that is not an information leak.
func (s *Service) VerifyCredential(ctx context.Context, raw string) (domain.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Principal{}, domain.ErrTokenMissing()
	}

	claims, localErr := s.tokens.Verify(raw)
	if localErr == nil {
		switch claims.Type {
		case TokenTypeAccess:
			if err := s.checkRevoked(ctx, claims.ID); err != nil {
				localErr = err
			} else {
				return domain.Principal{
					SubjectID: claims.Subject,
					Email:     claims.Subject,
					Scheme:    domain.SchemeLocal,
				}, nil
			}
		case TokenTypeRefresh:
			localErr = domain.ErrTokenWrongType()
		default:
			localErr = domain.ErrTokenInvalid()
		}
	}

	identity, fedErr := s.provider.VerifyIDToken(ctx, raw)
	if fedErr == nil {
		if identity.SubjectID == "" || identity.Email == "" {
			return domain.Principal{}, domain.ErrTokenInvalid()
		}
		return domain.Principal{
			SubjectID:   identity.SubjectID,
			Email:       strings.ToLower(identity.Email),
			DisplayName: identity.DisplayName,
			Scheme:      domain.SchemeFederated,
		}, nil
	}

	if domain.Is(localErr, "token_wrong_type") {
		return domain.Principal{}, localErr
	}
	return domain.Principal{}, domain.ErrTokenInvalid()
}

// checkRevoked consults the JTI blacklist. A blacklist read failure counts
// as verification failure: deny rather than accept a possibly revoked token.
func (s *Service) checkRevoked(ctx context.Context, jti string) error {
	if s.revocations == nil || jti == "" {
		return nil
	}
	revoked, err := s.revocations.IsRevoked(ctx, jti)
	if err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	if revoked {
		return domain.ErrTokenRevoked()
	}
	return nil
}
