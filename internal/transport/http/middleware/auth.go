package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/balekai/taskboard/internal/domain"
)

// Authenticator verifies a bearer credential (either scheme) and resolves it
// to a stored account.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth guards every route that is not explicitly public. It extracts the
// Authorization: Bearer credential, runs verification and resolution, and
// injects the resolved account into the request context. Requests without a
// usable credential never reach the handler.
func Auth(authn Authenticator, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflights carry no credentials.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			u, err := authn.Authenticate(r.Context(), raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			ctx := WithUser(r.Context(), u.ID, u.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
