package auth

import (
	"context"
	"time"

	"github.com/balekai/taskboard/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) error
}

/*
AccountLinker
-------------
Single transactional unit migrating a local account's primary key to a
federated subject id: repoint boards.owner_id, repoint
cards.assigned_user_id, then the conditional id update on users. All three
commit together or not at all.

Link returns a domain error with code "already_linked" when the id update
affects zero rows, meaning a concurrent link migrated oldID first. Callers
re-resolve by newID instead of failing.
*/
type AccountLinker interface {
	Link(ctx context.Context, oldID, newID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

// TokenType is the "type" claim carried by every locally minted token.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// LocalTokenClaims are the verified claims of a locally signed token.
type LocalTokenClaims struct {
	Subject   string // account email
	Type      TokenType
	ID        string // jti, used for revocation
	ExpiresAt time.Time
}

/*
TokenService
------------
Mints and verifies locally signed tokens (HS256). Verify checks signature,
structure and expiry only; access-vs-refresh gating is the credential
verifier's job.
*/
type TokenService interface {
	SignAccessToken(subject string, ttl time.Duration) (string, error)
	SignRefreshToken(subject string, ttl time.Duration) (string, error)
	Verify(token string) (LocalTokenClaims, error)
}

// FederatedIdentity is what the external provider vouches for.
type FederatedIdentity struct {
	SubjectID   string
	Email       string
	DisplayName string
}

/*
IdentityProvider
----------------
Verifies a federated ID token against the provider's verification service.
The implementation owns signature/expiry/revocation checks and key caching;
transient provider failures come back as errors and are treated as
verification failure, never retried here.
*/
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, token string) (FederatedIdentity, error)
}

/*
TokenRevocations
----------------
JTI blacklist for access tokens, consulted at verification time and written
on logout. Backed by Redis, with an in-memory fallback.
*/
type TokenRevocations interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

/*
EventPublisher
--------------
Publishes auth lifecycle events to the broker. Identity migrations are real
data-consistency events, so operators get a message for each one.
*/
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error
	PublishAccountLinked(ctx context.Context, evt AccountLinkedEvent) error
}

type UserRegisteredEvent struct {
	UserID string
	Email  string
}

type AccountLinkedEvent struct {
	OldUserID string
	NewUserID string
	Email     string
}
