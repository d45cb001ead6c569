package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/balekai/taskboard/internal/domain"
	"github.com/balekai/taskboard/internal/logger"
)

type RegisterResult struct {
	User   domain.User
	Tokens AuthTokens
}

func (s *Service) Register(ctx context.Context, name, email, password string) (RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return RegisterResult{}, domain.ErrInvalidField("email/password", "empty")
	}
	if name == "" {
		name = "Unnamed"
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, err
	}

	s.audit("user_registered", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})
	if s.pub != nil {
		if err := s.pub.PublishUserRegistered(ctx, UserRegisteredEvent{
			UserID: created.ID,
			Email:  created.Email,
		}); err != nil {
			logger.Logger.Warn().Err(err).Msg("user registered event publish failed")
		}
	}

	toks, err := s.issueTokens(created.Email)
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{User: created, Tokens: toks}, nil
}
