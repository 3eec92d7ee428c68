package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkorchagin/passwallet/internal/models"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token sends the request unauthenticated and lets the backend reject it.
type TokenSource func(ctx context.Context) string

// HTTPClient implements Client over the JSON/HTTP identity API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTokenSource installs the bearer token source for authenticated calls.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// NewHTTPClient builds a client for the API at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		tokens:  func(context.Context) string { return "" },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// RegisterUser creates an account via POST /auth/register.
func (c *HTTPClient) RegisterUser(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	var res RegisterResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CurrentUser fetches the authenticated account via GET /users/me.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateUser applies a partial update via PUT /users/me and returns the
// resulting profile of record.
func (c *HTTPClient) UpdateUser(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := c.do(ctx, http.MethodPut, "/users/me", upd, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckTag reports whether a tag is usable. 2xx and 404 mean available,
// 409 means taken; anything else is an error for the caller to interpret.
func (c *HTTPClient) CheckTag(ctx context.Context, tag string) (bool, error) {
	return c.check(ctx, "/auth/check-tag/"+url.PathEscape(tag))
}

// CheckEmail reports whether an email is usable, with the same convention
// as CheckTag.
func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	return c.check(ctx, "/auth/check-email/"+url.PathEscape(email))
}

func (c *HTTPClient) check(ctx context.Context, path string) (bool, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// The presence of a lookup result, not its content, is the signal.
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return true, nil
	case resp.StatusCode == http.StatusConflict:
		return false, nil
	default:
		return false, decodeAPIError(resp)
	}
}

// do sends a request and decodes a 2xx JSON body into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	resp, err := c.send(ctx, method, path, body, authed)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body any, authed bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	return resp, nil
}

// mapTransportError translates low-level transport failures into the typed
// taxonomy: deadline failures become ErrTimeout, everything else that never
// produced a response becomes ErrNoConnection.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNoConnection, err)
}

// decodeAPIError opportunistically decodes a structured error body with a
// message field; a body that does not decode falls back to a bare
// status-code error.
func decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return &APIError{Code: resp.StatusCode, Message: apiErr.Message}
	}
	return &HTTPError{Code: resp.StatusCode}
}
