package auth

import (
	"context"

	"github.com/balekai/taskboard/internal/domain"
	"github.com/balekai/taskboard/internal/logger"
)

// ResolvePrincipal maps a verified principal to the canonical local user.
//
// Local principals authenticate existing accounts only: the subject is an
// email, and a valid signature for a deleted account is an error, not an
// auto-create. Federated principals may create or link accounts; email is
// the sole linking key between the two schemes.
func (s *Service) ResolvePrincipal(ctx context.Context, p domain.Principal) (domain.User, error) {
	switch p.Scheme {
	case domain.SchemeLocal:
		u, err := s.users.GetByEmail(ctx, p.SubjectID)
		if err != nil {
			if domain.Is(err, "user_not_found") {
				return domain.User{}, domain.ErrUnknownSubject()
			}
			return domain.User{}, err
		}
		return u, nil
	case domain.SchemeFederated:
		return s.resolveFederated(ctx, p, true)
	default:
		return domain.User{}, domain.ErrTokenInvalid()
	}
}

// resolveFederated implements the three-step federated resolution:
// by id (fast path), by email (link), else create. retry allows one
// re-resolution after losing a create or link race, so concurrent first
// logins for the same identity both succeed without duplicates.
func (s *Service) resolveFederated(ctx context.Context, p domain.Principal, retry bool) (domain.User, error) {
	u, err := s.users.GetByID(ctx, p.SubjectID)
	if err == nil {
		return u, nil
	}
	if !domain.Is(err, "user_not_found") {
		return domain.User{}, err
	}

	existing, err := s.users.GetByEmail(ctx, p.Email)
	if err == nil {
		if existing.ID == p.SubjectID {
			return existing, nil
		}
		return s.linkExisting(ctx, p, existing, retry)
	}
	if !domain.Is(err, "user_not_found") {
		return domain.User{}, err
	}

	name := p.DisplayName
	if name == "" {
		name = "Unnamed"
	}
	created, err := s.users.Create(ctx, domain.User{
		ID:           p.SubjectID,
		Email:        p.Email,
		Name:         name,
		PasswordHash: "",
	})
	if err != nil {
		if domain.Is(err, "email_already_exists") && retry {
			// Lost a first-login race; the winning row holds this email now.
			return s.resolveFederated(ctx, p, false)
		}
		return domain.User{}, err
	}
	s.audit("federated_user_created", map[string]string{
		"user_id": created.ID,
		"email":   created.Email,
	})
	return created, nil
}

// linkExisting migrates an existing password-based account's primary key to
// the federated subject id. The whole migration is one transaction behind
// the AccountLinker port; a failed link denies the request instead of
// returning a half-migrated identity.
func (s *Service) linkExisting(ctx context.Context, p domain.Principal, existing domain.User, retry bool) (domain.User, error) {
	if err := s.linker.Link(ctx, existing.ID, p.SubjectID); err != nil {
		if domain.Is(err, "already_linked") && retry {
			// A concurrent login migrated the row first. Not an error:
			// re-resolve by the federated id.
			return s.resolveFederated(ctx, p, false)
		}
		logger.Logger.Error().
			Err(err).
			Str("old_user_id", existing.ID).
			Str("new_user_id", p.SubjectID).
			Msg("account link failed")
		return domain.User{}, domain.ErrLinkFailed(err)
	}

	s.audit("account_linked", map[string]string{
		"old_user_id": existing.ID,
		"new_user_id": p.SubjectID,
		"email":       existing.Email,
	})
	if s.pub != nil {
		if err := s.pub.PublishAccountLinked(ctx, AccountLinkedEvent{
			OldUserID: existing.ID,
			NewUserID: p.SubjectID,
			Email:     existing.Email,
		}); err != nil {
			logger.Logger.Warn().Err(err).Msg("account linked event publish failed")
		}
	}

	return s.users.GetByID(ctx, p.SubjectID)
}

// Authenticate is the gate's single entry point: verify the bearer token,
// then resolve it to the canonical user. No partial identity ever escapes;
// any failure terminates the request at the gate.
func (s *Service) Authenticate(ctx context.Context, raw string) (domain.User, error) {
	p, err := s.VerifyCredential(ctx, raw)
	if err != nil {
		return domain.User{}, err
	}
	return s.ResolvePrincipal(ctx, p)
}
