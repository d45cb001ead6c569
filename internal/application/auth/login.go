package auth

import (
	"context"
	"strings"

	"github.com/balekai/taskboard/internal/domain"
)

type LoginResult struct {
	User   domain.User
	Tokens AuthTokens
}

// Login authenticates a user and issues tokens.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// Federation-only accounts have no usable password hash. Same answer as
	// a wrong password; the account's existence stays hidden.
	if !u.HasPassword() {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	toks, err := s.issueTokens(u.Email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Tokens: toks}, nil
}
