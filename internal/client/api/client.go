package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/easyflowhq/easyflow/internal/logging"
)

// TokenStore is the durable backing for the access token. A missing token
// loads as an empty string.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// Config carries the constructor parameters for Client.
type Config struct {
	BaseURL string
	APIKey  string

	// Tokens persists the access token across restarts. Optional: when nil
	// the token is held in memory only.
	Tokens TokenStore

	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client

	Logger logging.Logger
}

// Client talks to the EasyFlow backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger

	mu             sync.Mutex
	accessToken    string
	hydrated       bool
	onUnauthorized func(message string)
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		tokens:  cfg.Tokens,
		log:     log,
	}
}

// SetUnauthorizedHandler registers the callback invoked when the backend
// rejects a request with 401/403. At most one handler is active; registering
// replaces the previous one, nil clears it.
func (c *Client) SetUnauthorizedHandler(fn func(message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// SetAccessToken replaces the in-memory access token and synchronously
// mirrors the change to the durable store. An empty token removes the
// stored copy.
func (c *Client) SetAccessToken(ctx context.Context, token string) error {
	c.mu.Lock()
	c.accessToken = token
	c.hydrated = true
	c.mu.Unlock()

	if c.tokens == nil {
		return nil
	}
	if token == "" {
		return c.tokens.Delete(ctx)
	}
	return c.tokens.Save(ctx, token)
}

// AccessToken returns the current access token, hydrating from the durable
// store on first access.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.hydrated || c.tokens == nil {
		token := c.accessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, err := c.tokens.Load(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent SetAccessToken wins over the hydrated value.
	if !c.hydrated {
		c.accessToken = token
		c.hydrated = true
	}
	return c.accessToken, nil
}

func (c *Client) unauthorizedHandler() func(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onUnauthorized
}
