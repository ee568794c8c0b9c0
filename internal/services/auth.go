package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/gitelweb/ossync/internal/shared"
)

// CredentialManager owns the client-credentials token lifecycle for the
// upstream API. Tokens expire server-side at any time, so holders must be
// prepared to see 401 and come back through [CredentialManager.Refresh].
//
// Grants are serialized behind a mutex and deduplicated with a generation
// counter: a caller presenting a stale generation gets the already-replaced
// token back instead of triggering another round trip, so a burst of 401s
// from a worker pool costs a single grant.
type CredentialManager struct {
	conf *clientcredentials.Config

	mu    sync.Mutex
	token *oauth2.Token
	gen   uint64
}

// NewCredentialManager builds a manager from config. No network traffic
// happens until the first [CredentialManager.Acquire].
func NewCredentialManager(creds shared.CredentialsConfig) (*CredentialManager, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, shared.ErrMissingCredentials
	}
	if creds.TokenURL == "" {
		return nil, fmt.Errorf("%w: token_url is required", shared.ErrInvalidConfig)
	}

	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	if creds.Scope != "" {
		conf.Scopes = []string{creds.Scope}
	}

	return &CredentialManager{conf: conf}, nil
}

// Acquire returns the current access token and its generation, performing
// the initial grant on first use. A failed grant is fatal for the caller:
// the credentials themselves are wrong, not the token.
func (m *CredentialManager) Acquire(ctx context.Context) (string, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.token.Valid() {
		return m.token.AccessToken, m.gen, nil
	}
	return m.grantLocked(ctx)
}

// Refresh replaces the token identified by seen with a fresh grant. When
// another caller already replaced that generation, the newer token is
// returned without hitting the token endpoint again.
func (m *CredentialManager) Refresh(ctx context.Context, seen uint64) (string, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != seen && m.token != nil {
		return m.token.AccessToken, m.gen, nil
	}
	return m.grantLocked(ctx)
}

// Current returns the cached token without any network traffic. ok is
// false before the first successful grant.
func (m *CredentialManager) Current() (token string, gen uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == nil {
		return "", m.gen, false
	}
	return m.token.AccessToken, m.gen, true
}

func (m *CredentialManager) grantLocked(ctx context.Context) (string, uint64, error) {
	tok, err := m.conf.Token(ctx)
	if err != nil {
		return "", m.gen, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	m.token = tok
	m.gen++
	return tok.AccessToken, m.gen, nil
}
