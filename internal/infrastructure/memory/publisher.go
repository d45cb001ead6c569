package memory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/balekai/taskboard/internal/application/auth"
)

// NoopPublisher logs events instead of publishing. Used in dev when the
// broker is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	log.Info().Str("user_id", evt.UserID).Str("email", evt.Email).Msg("[noop-pub] user registered")
	return nil
}

func (p *NoopPublisher) PublishAccountLinked(ctx context.Context, evt auth.AccountLinkedEvent) error {
	log.Info().
		Str("old_user_id", evt.OldUserID).
		Str("new_user_id", evt.NewUserID).
		Str("email", evt.Email).
		Msg("[noop-pub] account linked")
	return nil
}
