// Package pokeapi is the HTTP client for https://pokeapi.co.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/pokedex/internal/domain"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	defaultTimeout = 30 * time.Second
	userAgent      = "Pokedex/1.0"
)

// Client implements domain.PokemonClient for PokeAPI
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	// collapses concurrent species index loads into one request
	group singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new PokeAPI client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs a GET and returns the body of a 2xx response.
// Transport failures become *domain.NetworkError and other statuses
// *domain.HTTPError.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	c.logger.Debug("pokeapi request", "url", reqURL, "reqID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pokeapi request failed", "error", err, "reqID", reqID)
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("pokeapi request error", "status", resp.StatusCode, "url", reqURL, "reqID", reqID)
		return nil, &domain.HTTPError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	return body, nil
}

// GetPokemon returns the detail record for a dex number or name
func (c *Client) GetPokemon(ctx context.Context, id string) (*domain.Pokemon, error) {
	id = domain.NormalizeID(id)
	if id == "" {
		return nil, &domain.HTTPError{StatusCode: http.StatusNotFound, URL: c.baseURL + "/pokemon/"}
	}

	body, err := c.doRequest(ctx, "/pokemon/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var resp PokemonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, &domain.DecodeError{Err: err}
	}

	pokemon, err := MapPokemon(resp)
	if err != nil {
		return nil, &domain.DecodeError{Err: err}
	}
	return pokemon, nil
}

// ListSpecies returns the first limit entries of the species index.
// Concurrent calls with the same limit share one request.
func (c *Client) ListSpecies(ctx context.Context, limit int) ([]domain.SpeciesRef, error) {
	if limit <= 0 {
		limit = 500
	}
	key := "species:" + strconv.Itoa(limit)

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(limit))

		body, err := c.doRequest(ctx, "/pokemon", query)
		if err != nil {
			return nil, err
		}

		var resp ListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
			return nil, &domain.DecodeError{Err: err}
		}
		return MapSpecies(resp.Results), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("species request shared", "limit", limit)
	}

	refs := v.([]domain.SpeciesRef)
	out := make([]domain.SpeciesRef, len(refs))
	copy(out, refs)
	return out, nil
}
