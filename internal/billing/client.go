package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/example/kudipay/internal/config"
)

const tokenRefreshLeeway = 30 * time.Second

// Client talks to the billing provider. Catalog and validation lookups use a
// service credential cached on the client; purchase, balance and PIN-status
// calls attach the caller's own bearer token instead.
type Client struct {
	baseURL string
	authURL string
	secret  string
	http    *http.Client

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewClient builds a Client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BillingBaseURL, "/"),
		authURL: strings.TrimRight(cfg.BillingAuthURL, "/"),
		secret:  cfg.BillingSecret,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

type authRequest struct {
	SecretToken string `json:"secret_token"`
}

type authResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"data"`
	Error any `json:"error,omitempty"`
}

// ServiceToken returns a cached provider access token, fetching a new one if
// needed.
func (c *Client) ServiceToken(ctx context.Context) (string, error) {
	return c.serviceToken(ctx, false)
}

func (c *Client) serviceToken(ctx context.Context, force bool) (string, error) {
	if !force {
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check again in case another goroutine refreshed while we waited for the lock.
	if !force {
		if token := c.currentTokenLocked(); token != "" {
			return token, nil
		}
	}

	if c.secret == "" {
		return "", errors.New("BILLING_API_SECRET_KEY is not configured")
	}

	payload, err := json.Marshal(authRequest{SecretToken: c.secret})
	if err != nil {
		return "", fmt.Errorf("marshal auth payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute auth request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider auth failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var auth authResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return "", fmt.Errorf("unmarshal auth response: %w", err)
	}

	if auth.Data.AccessToken == "" {
		return "", errors.New("provider auth response missing access_token")
	}

	c.token = auth.Data.AccessToken
	if auth.Data.ExpiresIn > 0 {
		c.tokenExpiry = time.Now().Add(time.Duration(auth.Data.ExpiresIn) * time.Second)
	} else {
		// Fallback to a short lifetime when expiry is not provided.
		c.tokenExpiry = time.Now().Add(5 * time.Minute)
	}

	return c.token, nil
}

func (c *Client) cachedToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token := c.currentTokenLocked()
	if token == "" {
		return "", false
	}
	return token, true
}

func (c *Client) currentTokenLocked() string {
	if c.token == "" {
		return ""
	}
	if c.tokenExpiry.IsZero() {
		return c.token
	}
	if time.Now().Add(tokenRefreshLeeway).After(c.tokenExpiry) {
		return ""
	}
	return c.token
}

// response bundles the upstream HTTP response metadata.
type response struct {
	Status int
	Body   []byte
}

func (c *Client) makeURL(path string, query map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse provider URL: %w", err)
	}

	if len(query) > 0 {
		values := u.Query()
		for k, v := range query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	return u.String(), nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query map[string]string, body any, token string) (*http.Request, error) {
	target, err := c.makeURL(path, query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) send(req *http.Request) (*response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Failure{Kind: FailNetworkUnreachable, Message: "network unreachable, please try again"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &response{Status: resp.StatusCode, Body: respBody}, nil
}

// doService performs a provider request under the service credential,
// refreshing and retrying once on 401.
func (c *Client) doService(ctx context.Context, method, path string, query map[string]string, body any) (*response, error) {
	token, err := c.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, method, path, query, body, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	if resp.Status != http.StatusUnauthorized {
		return resp, nil
	}

	// Credential likely expired; refresh and retry once.
	token, err = c.serviceToken(ctx, true)
	if err != nil {
		return nil, err
	}

	req, err = c.buildRequest(ctx, method, path, query, body, token)
	if err != nil {
		return nil, err
	}

	return c.send(req)
}

// doUser performs a provider request under the caller's bearer token. An
// empty token fails with AuthRequired before any network traffic.
func (c *Client) doUser(ctx context.Context, method, path string, query map[string]string, body any, token string) (*response, error) {
	if token == "" {
		return nil, &Failure{Kind: FailAuthRequired, Message: "sign in to continue"}
	}

	req, err := c.buildRequest(ctx, method, path, query, body, token)
	if err != nil {
		return nil, err
	}

	return c.send(req)
}

// envelope is the provider's standard response wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// decodeEnvelope parses the wrapper and converts failures into classified
// errors. A non-2xx status and a 2xx body with success=false are treated the
// same way.
func decodeEnvelope(resp *response, dest any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		if resp.Status >= 200 && resp.Status < 300 {
			return &Failure{Kind: FailServerError, Message: "provider returned an unreadable response", Status: resp.Status}
		}
		return classify(resp.Status, "")
	}

	if resp.Status < 200 || resp.Status >= 300 || !env.Success {
		return classify(resp.Status, env.Message)
	}

	if dest != nil {
		if err := json.Unmarshal(resp.Body, dest); err != nil {
			return &Failure{Kind: FailServerError, Message: "provider returned an unreadable response", Status: resp.Status}
		}
	}

	return nil
}
