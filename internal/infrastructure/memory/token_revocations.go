package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

// TokenRevocations is the dev/test fallback when Redis is unreachable.
// Entries expire lazily on read.
type TokenRevocations struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewTokenRevocations() *TokenRevocations {
	return &TokenRevocations{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *TokenRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if jti == "" || ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expires[jti] = r.now().Add(ttl)
	return nil
}

func (r *TokenRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.expires[jti]
	if !ok {
		return false, nil
	}
	if r.now().After(exp) {
		delete(r.expires, jti)
		return false, nil
	}
	return true, nil
}
