package auth

import (
	"context"

	"github.com/balekai/taskboard/internal/domain"
)

func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes the display name of an account.
func (s *Service) UpdateProfile(ctx context.Context, userID, name string) (domain.User, error) {
	if name == "" {
		return domain.User{}, domain.ErrMissingField("name")
	}
	if err := s.users.UpdateProfile(ctx, userID, name); err != nil {
		return domain.User{}, err
	}
	return s.users.GetByID(ctx, userID)
}
