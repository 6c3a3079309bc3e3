// Package amadeus is a typed client for the travel supplier's REST API:
// flight offer search, flight inspiration search, offer pricing, flight
// order creation, hotel lookup, hotel sentiment ratings, hotel offers, and
// hotel order creation.
//
// All operations are bearer-authenticated through a cached TokenProvider
// and share one pooled HTTP client with a hard timeout. Supplier failures
// surface as *UpstreamError; input contract violations as ErrInvalidInput.
package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viazuri/concierge/internal/log"
)

// Outbound connection policy toward the supplier. The connection ceiling is
// the backpressure mechanism: when 50 calls are in flight, further requests
// queue on the pool instead of piling onto the upstream.
const (
	requestTimeout      = 30 * time.Second
	maxConnsPerHost     = 50
	maxIdleConnsPerHost = 20
)

// Config carries the settings the client needs from the application config.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// ReferenceDate anchors date normalization for search parameters.
	ReferenceDate time.Time

	// HTTPClient overrides the default pooled client. Tests inject an
	// httptest-backed client here.
	HTTPClient *http.Client
}

// Client calls the supplier API.
type Client struct {
	baseURL    string
	refDate    time.Time
	httpClient *http.Client
	tokens     *TokenProvider
	logger     log.Logger
}

// NewClient creates a supplier client with a tuned connection pool.
func NewClient(cfg Config, logger log.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxConnsPerHost:     maxConnsPerHost,
				MaxIdleConnsPerHost: maxIdleConnsPerHost,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL:    base,
		refDate:    cfg.ReferenceDate,
		httpClient: httpClient,
		tokens:     NewTokenProvider(base, cfg.ClientID, cfg.ClientSecret, httpClient, logger),
		logger:     logger,
	}
}

// Tokens exposes the token provider, primarily for explicit invalidation.
func (c *Client) Tokens() *TokenProvider {
	return c.tokens
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.do(ctx, op, http.MethodGet, endpoint, nil, out)
}

// post performs an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, c.baseURL+path, body, out)
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Operation: op, Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: unmarshaling response: %w", op, err)
		}
	}

	return nil
}
