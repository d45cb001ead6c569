package http_handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/balekai/taskboard/internal/application/auth"
	"github.com/balekai/taskboard/internal/domain"
	"github.com/balekai/taskboard/internal/infrastructure/memory"
	"github.com/balekai/taskboard/internal/infrastructure/security"
	"github.com/balekai/taskboard/internal/transport/http/dto"
)

// -------------------------
// Test wiring (pure unit)
// -------------------------

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[normEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = normEmail(u.Email)
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Name = name
	r.byID[userID] = u
	return nil
}

type noLinker struct{}

func (noLinker) Link(context.Context, string, string) error { return nil }

type noProvider struct{}

func (noProvider) VerifyIDToken(context.Context, string) (auth.FederatedIdentity, error) {
	return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(nil)
}

type noPublisher struct{}

func (noPublisher) PublishUserRegistered(context.Context, auth.UserRegisteredEvent) error {
	return nil
}
func (noPublisher) PublishAccountLinked(context.Context, auth.AccountLinkedEvent) error {
	return nil
}

func newAuthHandlerFixture(t *testing.T) *AuthHandler {
	t.Helper()

	svc := auth.NewService(
		newFakeUserRepo(),
		noLinker{},
		security.NewBcryptHasher(4),
		security.NewJWTSigner("test-secret", "taskboard"),
		noProvider{},
		memory.NewTokenRevocations(),
		noPublisher{},
		auth.Config{AccessTTL: time.Minute, RefreshTTL: time.Hour},
	)
	return NewAuthHandler(svc)
}

// -------------------------
// Tests
// -------------------------

func TestAuthHandler_RegisterThenLogin(t *testing.T) {
	h := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	}))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d body=%s", rec.Code, rec.Body.String())
	}
	var data dto.AuthData
	mustReadJSON(t, rec.Body, &data)
	if data.User.Email != "alice@example.com" || data.Tokens.AccessToken == "" {
		t.Fatalf("unexpected register data: %+v", data)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/v1/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	}))
	rec = httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login_WrongPassword_401(t *testing.T) {
	h := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})))

	req := httptest.NewRequest(http.MethodPost, "/auth/v1/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPass1",
	}))
	rec = httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid_credentials") {
		t.Fatalf("expected invalid_credentials, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_DuplicateEmail_409(t *testing.T) {
	h := newAuthHandlerFixture(t)

	body := dto.RegisterRequest{Email: "alice@example.com", Password: "Sup3rSecret"}
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, body)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Register_WeakPassword_400(t *testing.T) {
	h := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "weakpassword",
	})))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_RefreshRotatesPair(t *testing.T) {
	h := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})))
	var data dto.AuthData
	mustReadJSON(t, rec.Body, &data)

	req := httptest.NewRequest(http.MethodPost, "/auth/v1/refresh", mustJSONBody(t, dto.RefreshRequest{
		RefreshToken: data.Tokens.RefreshToken,
	}))
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d body=%s", rec.Code, rec.Body.String())
	}
	var refreshed dto.RefreshData
	mustReadJSON(t, rec.Body, &refreshed)
	if refreshed.Tokens.AccessToken == "" || refreshed.Tokens.RefreshToken == "" {
		t.Fatalf("expected new token pair, got %+v", refreshed)
	}
}

func TestAuthHandler_Refresh_AccessTokenRejected(t *testing.T) {
	h := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})))
	var data dto.AuthData
	mustReadJSON(t, rec.Body, &data)

	// An access token is not acceptable where a refresh token is required.
	req := httptest.NewRequest(http.MethodPost, "/auth/v1/refresh", mustJSONBody(t, dto.RefreshRequest{
		RefreshToken: data.Tokens.AccessToken,
	}))
	rec = httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "refresh_token_invalid") {
		t.Fatalf("expected refresh_token_invalid, got %s", rec.Body.String())
	}
}

func TestAuthHandler_MeAndUpdateMe(t *testing.T) {
	h := newAuthHandlerFixture(t)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})))
	var data dto.AuthData
	mustReadJSON(t, rec.Body, &data)

	req := withUserCtx(httptest.NewRequest(http.MethodGet, "/auth/v1/me", nil), data.User.ID, data.User.Email)
	rec = httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	var me dto.MeData
	mustReadJSON(t, rec.Body, &me)
	if me.User.Name != "Alice" {
		t.Fatalf("unexpected me: %+v", me)
	}

	req = withUserCtx(httptest.NewRequest(http.MethodPut, "/auth/v1/me", mustJSONBody(t, dto.UpdateProfileRequest{
		Name: "Alice B",
	})), data.User.ID, data.User.Email)
	rec = httptest.NewRecorder()
	h.UpdateMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update me status = %d body=%s", rec.Code, rec.Body.String())
	}
	mustReadJSON(t, rec.Body, &me)
	if me.User.Name != "Alice B" {
		t.Fatalf("profile not updated: %+v", me)
	}
}

func TestAuthHandler_Logout_AlwaysNoContent(t *testing.T) {
	h := newAuthHandlerFixture(t)

	// Without any token.
	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/logout", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout without token: %d", rec.Code)
	}

	// With a live token.
	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/v1/register", mustJSONBody(t, dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})))
	var data dto.AuthData
	mustReadJSON(t, rec.Body, &data)

	req := httptest.NewRequest(http.MethodPost, "/auth/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer "+data.Tokens.AccessToken)
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout with token: %d", rec.Code)
	}
}
