package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/balekai/taskboard/internal/application/auth"
	"github.com/balekai/taskboard/internal/domain"
)

type JWTSigner struct {
	secret []byte
	issuer string
}

func NewJWTSigner(secret string, issuer string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type localClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignAccessToken(subject string, ttl time.Duration) (string, error) {
	return s.sign(subject, auth.TokenTypeAccess, ttl)
}

func (s *JWTSigner) SignRefreshToken(subject string, ttl time.Duration) (string, error) {
	return s.sign(subject, auth.TokenTypeRefresh, ttl)
}

func (s *JWTSigner) sign(subject string, typ auth.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := localClaims{
		Type: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) Verify(token string) (auth.LocalTokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &localClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.LocalTokenClaims{}, domain.ErrTokenExpired()
		}
		return auth.LocalTokenClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*localClaims)
	if !ok || !parsed.Valid {
		return auth.LocalTokenClaims{}, domain.ErrTokenInvalid()
	}
	if claims.Subject == "" {
		return auth.LocalTokenClaims{}, domain.ErrTokenInvalid()
	}

	typ := auth.TokenType(claims.Type)
	if typ != auth.TokenTypeAccess && typ != auth.TokenTypeRefresh {
		return auth.LocalTokenClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.LocalTokenClaims{
		Subject:   claims.Subject,
		Type:      typ,
		ID:        claims.ID,
		ExpiresAt: exp,
	}, nil
}
