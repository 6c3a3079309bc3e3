package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/viazuri/concierge/internal/log"
)

// TokenProvider acquires and caches the supplier bearer token via the
// OAuth2 client-credentials grant.
//
// The cache is deliberately simple: the first successful fetch wins and the
// token is reused until Invalidate is called. The supplier token endpoint
// reports an expiry which is NOT honored here; long-running deployments must
// invalidate on 401 responses. Concurrent first access may perform redundant
// fetches; last write wins, the cached value is never corrupted.
type TokenProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       log.Logger

	mu    sync.Mutex
	token string
}

// NewTokenProvider creates a token provider. The HTTP client is injected so
// tests can point it at a fake endpoint.
func NewTokenProvider(baseURL, clientID, clientSecret string, httpClient *http.Client, logger log.Logger) *TokenProvider {
	return &TokenProvider{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// tokenResponse mirrors the supplier's credential-exchange payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns the cached bearer token, fetching it on first use.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	cached := p.token
	p.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	token, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.token = token
	p.mu.Unlock()

	p.logger.Info("supplier access token acquired")
	return token, nil
}

// Invalidate drops the cached token so the next call fetches a fresh one.
func (p *TokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = ""
	p.mu.Unlock()
}

func (p *TokenProvider) fetch(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
	}

	endpoint := p.baseURL + "/v1/security/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Operation: "token exchange", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Operation: "token exchange", Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access_token")
	}

	return tr.AccessToken, nil
}
