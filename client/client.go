// Package client implements the Miniflux REST API client used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/fluxreg/fluxreg/model"
)

const categoriesCacheKey = "categories"

// Config carries the connection settings for a Miniflux server.
type Config struct {
	ServerURL string
	APIKey    string

	Timeout           time.Duration
	HTTPClient        *http.Client
	RequestsPerSecond float64
	BurstCapacity     int

	CircuitBreakerEnabled          *bool
	CircuitBreakerMaxRequests      uint32
	CircuitBreakerInterval         time.Duration
	CircuitBreakerTimeout          time.Duration
	CircuitBreakerFailureThreshold uint32
}

// Client talks to a single Miniflux server. All calls are synchronous and
// authenticated with the configured API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker

	// Category list cache: resolving a name and listing categories in the
	// same invocation costs one GET. The ristretto backend is kept so its
	// admission buffers can be flushed with Wait.
	categoryCache  *cache.LoadableCache[[]model.Category]
	ristrettoCache *ristretto.Cache[string, any]
}

// RateLimitedTransport wraps an http.RoundTripper with rate limiting
type RateLimitedTransport struct {
	transport   http.RoundTripper
	rateLimiter *rate.Limiter
}

// RoundTrip implements the http.RoundTripper interface with rate limiting
func (r *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient(requestsPerSecond float64, burstCapacity int, timeout time.Duration) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstCapacity)

	return &http.Client{
		Transport: &RateLimitedTransport{
			transport:   http.DefaultTransport,
			rateLimiter: limiter,
		},
		Timeout: timeout,
	}
}

// New creates a Client for the given server. The server URL is normalized by
// stripping trailing slashes, so "https://host/" and "https://host" address
// identical endpoints.
func New(config Config) (*Client, error) {
	serverURL := strings.TrimSpace(config.ServerURL)
	if serverURL == "" {
		return nil, model.CreateConfigurationError("Miniflux server URL is required. Use --server or set MINIFLUX_URL environment variable.")
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, model.CreateConfigurationError("Miniflux API key is required. Use --api-key or set MINIFLUX_API_KEY environment variable.")
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2.0
	}
	if config.BurstCapacity <= 0 {
		config.BurstCapacity = 5
	}
	if config.CircuitBreakerMaxRequests == 0 {
		config.CircuitBreakerMaxRequests = 3
	}
	if config.CircuitBreakerInterval <= 0 {
		config.CircuitBreakerInterval = 60 * time.Second
	}
	if config.CircuitBreakerTimeout <= 0 {
		config.CircuitBreakerTimeout = 30 * time.Second
	}
	if config.CircuitBreakerFailureThreshold == 0 {
		config.CircuitBreakerFailureThreshold = 3
	}

	if config.HTTPClient == nil {
		config.HTTPClient = NewRateLimitedHTTPClient(config.RequestsPerSecond, config.BurstCapacity, config.Timeout)
	}

	c := &Client{
		baseURL:    strings.TrimRight(serverURL, "/"),
		apiKey:     config.APIKey,
		httpClient: config.HTTPClient,
	}

	// Enabled by default unless explicitly disabled
	if config.CircuitBreakerEnabled == nil || *config.CircuitBreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        fmt.Sprintf("miniflux-%s", c.baseURL),
			MaxRequests: config.CircuitBreakerMaxRequests,
			Interval:    config.CircuitBreakerInterval,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= config.CircuitBreakerFailureThreshold
			},
		})
	}

	ristrettoCache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, model.NewRegistrationErrorWithCause(model.ErrorTypeInternal, "Failed to initialize category cache", err)
	}
	c.ristrettoCache = ristrettoCache

	loadCategories := func(ctx context.Context, _ any) ([]model.Category, []store.Option, error) {
		var categories []model.Category
		if err := c.do(ctx, http.MethodGet, "/v1/categories", nil, &categories); err != nil {
			return nil, nil, err
		}
		return categories, nil, nil
	}

	c.categoryCache = cache.NewLoadable[[]model.Category](
		loadCategories,
		cache.New[[]model.Category](ristretto_store.NewRistretto(ristrettoCache)),
	)

	return c, nil
}

// BaseURL returns the normalized server URL the client addresses.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Categories lists all categories on the server in server-returned order.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := c.categoryCache.Get(ctx, categoriesCacheKey)
	if err != nil {
		var re *model.RegistrationError
		if errors.As(err, &re) {
			return nil, re
		}
		return nil, model.NewRegistrationErrorWithCause(model.ErrorTypeInternal, "Failed to load categories", err)
	}
	return categories, nil
}

// CreateFeed registers a feed on the server. The category id travels iff it
// is present in the request; an explicit id of 0 is transmitted, not dropped.
func (c *Client) CreateFeed(ctx context.Context, req model.FeedCreationRequest) (*model.Feed, error) {
	if strings.TrimSpace(req.FeedURL) == "" {
		return nil, model.CreateConfigurationError("Feed URL is required.")
	}

	var feed model.Feed
	if err := c.do(ctx, http.MethodPost, "/v1/feeds", req, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// do performs one authenticated API call, decoding a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	endpoint := c.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return model.NewRegistrationErrorWithCause(model.ErrorTypeInternal, "Failed to encode request body", err).WithURL(endpoint)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return model.CreateValidationError(model.ErrInvalidURL, endpoint)
	}
	req.Header.Set("X-Auth-Token", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	model.LogDebug("issuing API request", method, endpoint)

	resp, err := c.roundTrip(req, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.CreateNetworkError(err, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := model.CreateHTTPError(resp, data, endpoint)
		model.LogError("API request failed", method, endpoint, httpErr)
		return httpErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return model.CreateDecodeError(err, endpoint)
		}
	}

	return nil
}

// roundTrip sends the request, through the circuit breaker when one is
// configured.
func (c *Client) roundTrip(req *http.Request, endpoint string) (*http.Response, error) {
	if c.breaker == nil {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, model.CreateNetworkError(err, endpoint)
		}
		return resp, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, model.CreateCircuitBreakerError(endpoint, c.breaker.State().String())
		}
		return nil, model.CreateNetworkError(err, endpoint)
	}
	return result.(*http.Response), nil
}
