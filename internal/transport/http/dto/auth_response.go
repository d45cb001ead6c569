package dto

import (
	"github.com/balekai/taskboard/internal/application/auth"
	"github.com/balekai/taskboard/internal/domain"
)

// UserView is the standard user payload.
type UserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	HasPassword bool   `json:"has_password"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		HasPassword: u.HasPassword(),
	}
}

// TokensView is the standard token-pair payload.
type TokensView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

func NewTokensView(t auth.AuthTokens) TokensView {
	return TokensView{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresIn:    t.ExpiresIn,
	}
}

// AuthData is returned by register/login.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

// RefreshData is returned by refresh.
type RefreshData struct {
	Tokens TokensView `json:"tokens"`
}

// MeData is returned by /me.
type MeData struct {
	User UserView `json:"user"`
}
