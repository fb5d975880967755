// Package client is a typed Go client for the study-space booking API. It
// wraps every endpoint with a small resource service, decodes the API's
// error envelope into *Error values, and provides the view-side helpers a
// frontend needs: a paged list controller, a pagination window, and the
// door-unlock state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Error is the API's error envelope plus the HTTP status it arrived with.
type Error struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (%d %s)", e.Message, e.Status, e.Code)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Status == http.StatusNotFound
}

// Client talks to the API. It holds the session token and fires the
// OnUnauthorized hook exactly once per token when the server rejects it,
// so a UI can redirect to login without a storm of callbacks.
type Client struct {
	base string
	http *http.Client

	mu        sync.Mutex
	token     string
	expired   *sync.Once
	onExpired func()

	Auth       *AuthService
	Spaces     *SpacesService
	Utilities  *UtilitiesService
	Bookings   *BookingsService
	Penalties  *PenaltiesService
	Ratings    *RatingsService
	AdminUsers *AdminUsersService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken seeds a session token, e.g. one restored from storage.
func WithToken(token string) Option {
	return func(c *Client) { c.setToken(token) }
}

// OnUnauthorized registers the hook fired when a held token is rejected.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		expired: &sync.Once{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{c: c}
	c.Spaces = &SpacesService{c: c}
	c.Utilities = &UtilitiesService{c: c}
	c.Bookings = &BookingsService{c: c}
	c.Penalties = &PenaltiesService{c: c}
	c.Ratings = &RatingsService{c: c}
	c.AdminUsers = &AdminUsersService{c: c}
	return c
}

// Token returns the currently held session token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken replaces the session token and arms a fresh expiry notification.
func (c *Client) SetToken(token string) { c.setToken(token) }

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.expired = &sync.Once{} // new token, new single-fire expiry
	c.mu.Unlock()
}

// ClearToken drops the session without firing the unauthorized hook.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// tokenExpired clears the held token and fires the hook once per token.
func (c *Client) tokenExpired() {
	c.mu.Lock()
	once := c.expired
	c.token = ""
	c.mu.Unlock()
	once.Do(func() {
		if c.onExpired != nil {
			c.onExpired()
		}
	})
}

// Params are query parameters; empty values are omitted from the URL.
type Params map[string]string

func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	vals := url.Values{}
	for _, k := range keys {
		vals.Set(k, p[k])
	}
	return vals.Encode()
}

func (c *Client) get(ctx context.Context, path string, params Params, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params Params, body, out any) error {
	u := c.base + path
	if q := params.encode(); q != "" {
		u += "?" + q
	}

	var rd io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(bs)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	held := c.Token()
	if held != "" {
		req.Header.Set("Authorization", "Bearer "+held)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err := json.Unmarshal(bs, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
			apiErr.Message = strings.TrimSpace(string(bs))
		}
		// A rejected held token ends the session. A 401 from login or
		// register, where no token was sent, is a normal failure.
		if resp.StatusCode == http.StatusUnauthorized && held != "" {
			c.tokenExpired()
		}
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		bs, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		*raw = bs
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
