// internal/app/system/apiclient/client.go
package apiclient

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
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// maxBody caps how much of a response is read.
const maxBody = 16 << 20

// Config describes how to reach the TruePortMe API.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Client credentials for background calls made without a signed-in
	// user. All three must be set to enable the service token.
	ClientID     string
	ClientSecret string
	TokenURL     string

	UserAgent string

	// HTTPClient overrides the transport; tests point it at httptest.
	HTTPClient *http.Client
}

// Client talks JSON to the TruePortMe REST API.
// It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	service   oauth2.TokenSource
	userAgent string
	log       *zap.Logger
}

// New validates cfg and builds a client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL must be http or https, got %q", base.Scheme)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{
		base:      base,
		http:      hc,
		userAgent: cfg.UserAgent,
		log:       logger,
	}
	if c.userAgent == "" {
		c.userAgent = "trueportme-adminconsole"
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		// The token endpoint is hit with the same transport as the API.
		tctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		c.service = oauth2.ReuseTokenSource(nil, cc.TokenSource(tctx))
	}
	return c, nil
}

// HasServiceToken reports whether background calls can authenticate.
func (c *Client) HasServiceToken() bool { return c.service != nil }

// Get fetches path with optional query values.
func (c *Client) Get(ctx context.Context, path string, q url.Values) (Envelope, error) {
	return c.do(ctx, http.MethodGet, path, q, nil)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Ping checks that the API answers at all. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("/health", nil), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping api: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 500 {
		return &APIError{Status: resp.StatusCode, Method: http.MethodGet, Path: "/health", Message: resp.Status}
	}
	return nil
}

func (c *Client) resolve(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (Envelope, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, q), rdr)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("request_id", reqID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Status:    resp.StatusCode,
			Method:    method,
			Path:      path,
			RequestID: reqID,
			Message:   errorMessage(raw, resp.Status),
		}
		if resp.StatusCode >= 500 {
			c.log.Error("api error", zap.Error(apiErr), zap.String("request_id", reqID))
		}
		return nil, apiErr
	}

	env := Envelope{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return env, nil
}

// authorize attaches the caller's bearer token, falling back to the service
// token when the context carries none.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
		return nil
	}
	if c.service == nil || !usesService(ctx) {
		return nil
	}
	t, err := c.service.Token()
	if err != nil {
		return fmt.Errorf("service token: %w", err)
	}
	t.SetAuthHeader(req)
	return nil
}

func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}
