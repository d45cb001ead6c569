package auth

import (
	"time"
)

type Service struct {
	users       UserRepo
	linker      AccountLinker
	hasher      PasswordHasher
	tokens      TokenService
	provider    IdentityProvider
	revocations TokenRevocations
	pub         EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration
	audit      func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(
	users UserRepo,
	linker AccountLinker,
	hasher PasswordHasher,
	tokens TokenService,
	provider IdentityProvider,
	revocations TokenRevocations,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:       users,
		linker:      linker,
		hasher:      hasher,
		tokens:      tokens,
		provider:    provider,
		revocations: revocations,
		pub:         pub,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		audit:       func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64  // seconds
	TokenType    string // "Bearer"
}

// issueTokens mints an access + refresh pair for the given account email.
// The gate only ever verifies; minting happens here and in Refresh.
func (s *Service) issueTokens(email string) (AuthTokens, error) {
	access, err := s.tokens.SignAccessToken(email, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	refresh, err := s.tokens.SignRefreshToken(email, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
