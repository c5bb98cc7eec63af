package commercetools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/model"
	"catalog-proxy/internal/transport"
)

// =============================================================================
// COMMERCETOOLS API CLIENT
// =============================================================================
//
// commercetools uses OAuth2 client-credentials for authentication:
//   1. Exchange client_id/client_secret for an access token, scoped to the
//      first space-separated token of the configured scope string
//   2. Send "{token_type} {access_token}" as the Authorization header
//   3. Refresh before the token's reported expiry
//
// Token Management:
// The token is cached on the client behind a mutex with an explicit expiry,
// so concurrent requests share one token and at most one refresh is in
// flight at a time. There is no refresh-on-401; an upstream revocation
// surfaces as an unauthorized error to the caller.
// =============================================================================

const (
	oauthTokenPath = "/oauth/token"

	// tokenExpirySlack refreshes slightly before the reported expiry so an
	// in-flight request never carries a token that dies mid-call.
	tokenExpirySlack = 30 * time.Second

	userAgent = "catalog-proxy/1.0"
)

// Client is the commercetools REST API HTTP client.
type Client struct {
	httpClient *http.Client
	creds      codec.Credentials

	// now is stubbed in tests to drive token expiry.
	now func() time.Time

	mu         sync.Mutex
	authHeader string
	expiresAt  time.Time
}

// NewClient creates a commercetools client for one project's credentials.
func NewClient(creds codec.Credentials) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport.NewChromeTransport(30 * time.Second),
		},
		creds: creds,
		now:   time.Now,
	}
}

// baseURL is the project-scoped API root, trailing slash included.
func (c *Client) baseURL() string {
	return fmt.Sprintf("%s/%s/", strings.TrimSuffix(c.creds.APIURL, "/"), c.creds.Project)
}

// === OAuth Token Management ===

// ensureValidToken returns the cached Authorization header value, fetching
// a fresh token via the client-credentials grant when the cache is empty or
// inside the expiry window.
func (c *Client) ensureValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authHeader != "" && c.now().Add(tokenExpirySlack).Before(c.expiresAt) {
		return c.authHeader, nil
	}

	tokenURL := fmt.Sprintf("%s%s?grant_type=client_credentials&scope=%s",
		strings.TrimSuffix(c.creds.OAuthURL, "/"),
		oauthTokenPath,
		url.QueryEscape(firstScope(c.creds.Scope)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", model.NewUpstreamError("commercetools auth", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", model.NewUnauthorizedError(fmt.Sprintf("token request failed: status %d", resp.StatusCode))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", model.NewUnauthorizedError("empty access token from OAuth")
	}

	c.authHeader = tr.TokenType + " " + tr.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	return c.authHeader, nil
}

// firstScope returns the first space-separated token of a scope string;
// the token endpoint accepts only one scope per grant.
func firstScope(scope string) string {
	if i := strings.IndexByte(scope, ' '); i >= 0 {
		return scope[:i]
	}
	return scope
}

// === HTTP Helpers ===

// get issues an authenticated GET and decodes the response into result.
func (c *Client) get(ctx context.Context, rawURL string, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// post issues an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, rawURL string, body, result any) error {
	req, err := c.newRequest(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

// newRequest creates an HTTP request carrying the bearer token.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, err
	}

	auth, err := c.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", auth)

	return req, nil
}

// do executes the request and decodes the response.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("commercetools", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}

	return nil
}

// parseError converts commercetools API errors to model.APIError.
func parseError(statusCode int, body []byte) error {
	var ctErr errorResponse
	json.Unmarshal(body, &ctErr) // Best effort parse

	switch statusCode {
	case 401:
		return model.NewUnauthorizedError("commercetools authentication failed")
	case 403:
		return model.NewUnauthorizedError("commercetools access denied")
	case 404:
		return model.NewNotFoundError("resource")
	case 429:
		return model.NewRateLimitError("commercetools")
	case 400:
		msg := ctErr.Message
		if msg == "" {
			msg = "invalid request"
		}
		return model.NewValidationError("request", msg)
	default:
		return model.NewUpstreamError("commercetools",
			fmt.Errorf("status %d: %s", statusCode, ctErr.Message))
	}
}
