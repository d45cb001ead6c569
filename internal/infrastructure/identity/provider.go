package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/balekai/taskboard/internal/application/auth"
	"github.com/balekai/taskboard/internal/domain"
)

// Provider verifies federated ID tokens against the identity provider's
// token-verification endpoint. The provider owns signature, expiry and
// revocation checks; we only trust its answer. Transient network failures
// count as verification failure and are never retried here.
type Provider struct {
	verifyURL  string
	apiKey     string
	httpClient *http.Client
}

func NewProvider(verifyURL, apiKey string) *Provider {
	return &Provider{
		verifyURL: verifyURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IsConfigured returns true if the provider endpoint is set.
func (p *Provider) IsConfigured() bool {
	return p.verifyURL != ""
}

type verifyRequest struct {
	IDToken string `json:"id_token"`
}

type verifyResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func (p *Provider) VerifyIDToken(ctx context.Context, token string) (auth.FederatedIdentity, error) {
	if !p.IsConfigured() {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(errors.New("identity provider not configured"))
	}

	payload, err := json.Marshal(verifyRequest{IDToken: token})
	if err != nil {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.verifyURL, strings.NewReader(string(payload)))
	if err != nil {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(fmt.Errorf("verification request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(fmt.Errorf("failed to read verification response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(fmt.Errorf("provider rejected token: status %d", resp.StatusCode))
	}

	var vr verifyResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(fmt.Errorf("failed to parse verification response: %w", err))
	}

	if vr.Sub == "" || vr.Email == "" {
		return auth.FederatedIdentity{}, domain.ErrFederatedVerificationFailed(errors.New("invalid verification response: missing sub or email"))
	}

	return auth.FederatedIdentity{
		SubjectID:   vr.Sub,
		Email:       vr.Email,
		DisplayName: vr.Name,
	}, nil
}
