package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/singlebase/authui"
)

// ErrNoEndpoint is returned when the client is constructed without a base URL.
var ErrNoEndpoint = errors.New("client: base URL required")

const defaultTimeout = 15 * time.Second

// Config configures a reference Client.
type Config struct {
	// BaseURL is the service root, e.g. "https://api.example.com/v1".
	BaseURL string
	// APIKey is sent as X-API-Key on every request when set.
	APIKey string
	// HTTPClient overrides the default client (15s timeout).
	HTTPClient *http.Client
	// Logger defaults to a no-op logger.
	Logger zerolog.Logger
}

// Client implements authui.Client over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger

	mu       sync.Mutex
	settings *authui.Settings
	token    string
}

// New creates a Client. Settings stays nil until Negotiate runs.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  cfg.Logger,
	}, nil
}

// Negotiate fetches the remote settings payload. It is idempotent; callers
// typically run it in the background while the widget initializes.
func (c *Client) Negotiate(ctx context.Context) error {
	res, err := c.call(ctx, http.MethodGet, "/auth/settings", nil)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("client: settings fetch rejected: %s", res.Code())
	}

	raw, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Errorf("client: re-encode settings: %w", err)
	}
	var settings authui.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return fmt.Errorf("client: decode settings: %w", err)
	}

	c.mu.Lock()
	c.settings = &settings
	c.mu.Unlock()
	return nil
}

// Settings returns the negotiated settings, nil before Negotiate completes.
func (c *Client) Settings() *authui.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetToken installs a bearer access token, e.g. one restored from storage.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the held access token, "" when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// IsAuthenticated reports whether a non-expired access token is held. The
// expiry claim is read without signature verification; the server remains
// the authority and will reject a forged token anyway.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	_ = ctx
	token := c.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// GetUser fetches the current user record, nil when not authenticated.
func (c *Client) GetUser(ctx context.Context) (authui.User, error) {
	if !c.IsAuthenticated(ctx) {
		return nil, nil
	}
	res, err := c.call(ctx, http.MethodGet, "/auth/user", nil)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, nil
	}
	return authui.User(res.Data), nil
}

// SignOut invalidates the session server-side and drops the held token.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodPost, "/auth/signout", map[string]any{})
	c.SetToken("")
	return err
}

// SignInWithPassword exchanges credentials for a session. A returned access
// token is retained for subsequent calls.
func (c *Client) SignInWithPassword(ctx context.Context, creds authui.Credentials) (authui.Result, error) {
	res, err := c.call(ctx, http.MethodPost, "/auth/signin", creds)
	if err != nil {
		return authui.Result{}, err
	}
	if res.OK {
		if token, ok := res.Data["access_token"].(string); ok {
			c.SetToken(token)
		}
	}
	return res, nil
}

// SignUpWithPassword creates an account.
func (c *Client) SignUpWithPassword(ctx context.Context, creds authui.Credentials) (authui.Result, error) {
	return c.call(ctx, http.MethodPost, "/auth/signup", creds)
}

// SendOTP asks the service to send a one-time password for an intent.
func (c *Client) SendOTP(ctx context.Context, req authui.OTPRequest) (authui.Result, error) {
	return c.call(ctx, http.MethodPost, "/auth/otp", req)
}

// UpdateAccount submits a verified account change (password, email).
func (c *Client) UpdateAccount(ctx context.Context, payload map[string]any) (authui.Result, error) {
	return c.call(ctx, http.MethodPost, "/auth/account", payload)
}

// UpdateProfile submits profile field changes.
func (c *Client) UpdateProfile(ctx context.Context, payload map[string]any) (authui.Result, error) {
	return c.call(ctx, http.MethodPost, "/auth/profile", payload)
}

// RefreshSession rotates the session. A returned access token replaces the
// held one.
func (c *Client) RefreshSession(ctx context.Context) (authui.Result, error) {
	res, err := c.call(ctx, http.MethodPost, "/auth/refresh", map[string]any{})
	if err != nil {
		return authui.Result{}, err
	}
	if res.OK {
		if token, ok := res.Data["access_token"].(string); ok {
			c.SetToken(token)
		}
	}
	return res, nil
}

// call performs one request and decodes the uniform result envelope.
func (c *Client) call(ctx context.Context, method, path string, payload any) (authui.Result, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return authui.Result{}, fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return authui.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return authui.Result{}, err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	var res authui.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return authui.Result{}, fmt.Errorf("client: decode response: %w", err)
	}
	return res, nil
}
