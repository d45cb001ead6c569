package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/balekai/taskboard/internal/domain"
)

// ---- users ----

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> id

	getByIDErr    error
	getByEmailErr error
	createErr     error
	createCalls   int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (f *fakeUsers) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeUsers) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, userID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Name = name
	f.byID[userID] = u
	return nil
}

// ---- linker ----

// fakeLinker migrates the fake user map the way the real transaction
// migrates rows: the old id disappears, the new id takes over the row.
type fakeLinker struct {
	users *fakeUsers
	err   error
	calls int
}

func (l *fakeLinker) Link(ctx context.Context, oldID, newID string) error {
	l.users.mu.Lock()
	defer l.users.mu.Unlock()
	l.calls++
	if l.err != nil {
		return l.err
	}
	u, ok := l.users.byID[oldID]
	if !ok {
		return domain.ErrAlreadyLinked()
	}
	delete(l.users.byID, oldID)
	u.ID = newID
	l.users.byID[newID] = u
	l.users.byEmail[u.Email] = newID
	return nil
}

// ---- hasher ----

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (h *fakeHasher) Compare(hash, pw string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return domain.ErrInvalidCredentials()
	}
	return nil
}

// ---- token service ----

type fakeTokens struct {
	mu      sync.Mutex
	valid   map[string]LocalTokenClaims
	signErr error
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{valid: make(map[string]LocalTokenClaims)}
}

func (t *fakeTokens) accept(raw string, c LocalTokenClaims) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.valid[raw] = c
}

func (t *fakeTokens) SignAccessToken(subject string, ttl time.Duration) (string, error) {
	if t.signErr != nil {
		return "", t.signErr
	}
	raw := "access:" + subject
	t.accept(raw, LocalTokenClaims{
		Subject:   subject,
		Type:      TokenTypeAccess,
		ID:        "jti-" + subject,
		ExpiresAt: time.Now().Add(ttl),
	})
	return raw, nil
}

func (t *fakeTokens) SignRefreshToken(subject string, ttl time.Duration) (string, error) {
	if t.signErr != nil {
		return "", t.signErr
	}
	raw := "refresh:" + subject
	t.accept(raw, LocalTokenClaims{
		Subject:   subject,
		Type:      TokenTypeRefresh,
		ExpiresAt: time.Now().Add(ttl),
	})
	return raw, nil
}

func (t *fakeTokens) Verify(raw string) (LocalTokenClaims, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.valid[raw]
	if !ok {
		return LocalTokenClaims{}, domain.ErrTokenInvalid()
	}
	if time.Now().After(c.ExpiresAt) {
		return LocalTokenClaims{}, domain.ErrTokenExpired()
	}
	return c, nil
}

// ---- identity provider ----

type fakeProvider struct {
	mu         sync.Mutex
	identities map[string]FederatedIdentity
	err        error
	calls      int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{identities: make(map[string]FederatedIdentity)}
}

func (p *fakeProvider) accept(raw string, id FederatedIdentity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identities[raw] = id
}

func (p *fakeProvider) VerifyIDToken(ctx context.Context, raw string) (FederatedIdentity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return FederatedIdentity{}, p.err
	}
	id, ok := p.identities[raw]
	if !ok {
		return FederatedIdentity{}, domain.ErrFederatedVerificationFailed(nil)
	}
	return id, nil
}

// ---- revocations ----

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
	readErr error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]bool)}
}

func (r *fakeRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = true
	return nil
}

func (r *fakeRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return false, r.readErr
	}
	return r.revoked[jti], nil
}

// ---- publisher ----

type fakePublisher struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	linked     []AccountLinkedEvent
	err        error
}

func (p *fakePublisher) PublishUserRegistered(ctx context.Context, evt UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, evt)
	return nil
}

func (p *fakePublisher) PublishAccountLinked(ctx context.Context, evt AccountLinkedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.linked = append(p.linked, evt)
	return nil
}

// ---- fixture ----

type fixture struct {
	svc         *Service
	users       *fakeUsers
	linker      *fakeLinker
	hasher      *fakeHasher
	tokens      *fakeTokens
	provider    *fakeProvider
	revocations *fakeRevocations
	pub         *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newFakeUsers()
	linker := &fakeLinker{users: users}
	hasher := &fakeHasher{}
	tokens := newFakeTokens()
	provider := newFakeProvider()
	revocations := newFakeRevocations()
	pub := &fakePublisher{}

	svc := NewService(users, linker, hasher, tokens, provider, revocations, pub, Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})

	return &fixture{
		svc:         svc,
		users:       users,
		linker:      linker,
		hasher:      hasher,
		tokens:      tokens,
		provider:    provider,
		revocations: revocations,
		pub:         pub,
	}
}
