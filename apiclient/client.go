// Package apiclient is the HTTP client for the portal API. Every request is
// stamped with the active tenant and bearer token, and a 401 on an
// authenticated request clears the token and notifies subscribers that the
// session expired.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cunservicios/portal/apimodel"
	"github.com/cunservicios/portal/internal/signal"
	"github.com/cunservicios/portal/internal/tripper"
	"github.com/rs/zerolog"
)

// TokenStore is the credential state the client reads on every request.
type TokenStore interface {
	AuthToken() string
	ClearAuthToken()
	ActiveTenantID() string
}

// Client issues tenant-scoped, authenticated requests to the portal API.
// It does not retry, queue or deduplicate requests.
type Client struct {
	baseURL    string // API URL including the prefix, no trailing slash
	apiPrefix  string
	loginPath  string
	httpClient *http.Client
	store      TokenStore
	expired    *ExpiryNotifier
	middleware []tripper.Constructor
	log        zerolog.Logger
}

// DefaultAPIPrefix is appended to the base URL unless WithAPIPrefix is used.
const DefaultAPIPrefix = "/api/v1"

type Option func(*Client)

// WithAPIPrefix overrides the path prefix of every endpoint. An empty prefix
// addresses endpoints at the root of the base URL.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" && !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		c.apiPrefix = prefix
	}
}

// WithHTTPClient uses hc's settings (timeout, jar, transport) as the base.
// The client is copied; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.httpClient = &copied
		}
	}
}

// WithMiddleware adds round-tripper middleware between the response
// inspector and the transport.
func WithMiddleware(constructors ...tripper.Constructor) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, constructors...)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// New creates a Client for the API served at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, store TokenStore, options ...Option) *Client {
	c := &Client{
		apiPrefix:  DefaultAPIPrefix,
		httpClient: &http.Client{},
		store:      store,
		expired:    &ExpiryNotifier{sig: signal.New()},
		log:        zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.baseURL = strings.TrimRight(baseURL, "/") + c.apiPrefix

	c.loginPath = LoginPath
	if u, err := url.Parse(c.baseURL + LoginPath); err == nil {
		c.loginPath = u.Path
	}

	chain := tripper.NewChain(c.decorateRequest, c.logRequests, c.inspectResponse).Append(c.middleware...)
	c.httpClient.Transport = chain.Then(c.httpClient.Transport)
	c.log.Debug().Str("api", c.baseURL).Int("middleware", chain.Len()).Msg("api client ready")
	return c
}

// ExpiryNotifier delivers session-expired events. Each subscriber gets its
// own channel; events are coalesced for slow subscribers.
type ExpiryNotifier struct {
	sig *signal.Signal
}

// Subscribe returns a channel that receives an event each time an
// authenticated request is rejected with 401.
func (n *ExpiryNotifier) Subscribe() <-chan struct{} {
	return n.sig.Bind()
}

// Unsubscribe detaches and closes a channel returned by Subscribe.
func (n *ExpiryNotifier) Unsubscribe(ch <-chan struct{}) {
	n.sig.Unbind(ch)
}

func (n *ExpiryNotifier) notify() {
	n.sig.Broadcast()
}

// SessionExpired returns the client's expiry notifications.
func (c *Client) SessionExpired() *ExpiryNotifier {
	return c.expired
}

// HTTPClient returns the decorated client, for callers that need raw access
// with the same tenant/auth handling.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do performs a JSON request and decodes a 2xx body into out. Non-2xx
// responses are returned as *apimodel.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apimodel.NewAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}
