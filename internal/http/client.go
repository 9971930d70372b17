package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the card search endpoint of the Pokémon TCG API.
	DefaultBaseURL = "https://api.pokemontcg.io/v2/cards"

	// DefaultUserAgent identifies the tracker to the API operators.
	DefaultUserAgent = "PokemonPortfolioTracker/3.0"
)

var (
	// ErrNotFound is returned when the API answers 404 for a search.
	ErrNotFound = errors.New("no matching cards")

	// ErrTransport wraps failures below the HTTP status level: DNS, refused
	// connections, timeouts, truncated bodies.
	ErrTransport = errors.New("transport failure")
)

// transientStatuses are the codes the API uses while throttling or
// recovering. A search that hits one is worth repeating after a pause.
var transientStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// StatusError reports a non-200, non-404 response.
type StatusError struct {
	Code      int
	Status    string
	Transient bool
}

func (e *StatusError) Error() string {
	if e.Transient {
		return fmt.Sprintf("HTTP %d (transient): %s", e.Code, e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// IsTransient reports whether err is a StatusError the API expects callers
// to retry.
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Transient
}

// Options configures a Client.
type Options struct {
	// BaseURL is the search endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// UserAgent is sent with every request. Defaults to DefaultUserAgent.
	UserAgent string

	// Timeout bounds a whole request including the body read.
	// Zero means no timeout.
	Timeout time.Duration
}

// Client wraps HTTP operations against the pricing API and its image CDN.
//
// Client provides:
//   - the client-identifying User-Agent header on every request
//   - card searches with status codes mapped to typed errors
//   - plain downloads for card images
//
// Example usage:
//
//	client := NewClient(Options{Timeout: 30 * time.Second}, log)
//
//	body, err := client.Search(ctx, `name:"Pikachu" number:"SWSH143"`)
//	switch {
//	case errors.Is(err, ErrNotFound):
//	    // try a looser search
//	case IsTransient(err):
//	    // back off and retry
//	}
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        zerolog.Logger
}

// NewClient creates a new Client. Empty options fall back to the defaults.
func NewClient(opts Options, log zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		log:       log.With().Str("component", "http").Logger(),
	}
}

// Search runs a card search with the given filter expression and returns the
// raw JSON body of a 200 response.
//
// Errors are classified so callers can decide what to do next:
//   - ErrNotFound for a 404
//   - *StatusError for any other non-200 status (Transient set for 429 and 5xx gateway codes)
//   - ErrTransport (wrapped) when the request or the body read fails
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	params := u.Query()
	params.Set("q", query)
	u.RawQuery = params.Encode()

	c.log.Debug().Str("q", query).Msg("Searching cards")

	resp, err := c.do(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{
			Code:      resp.StatusCode,
			Status:    resp.Status,
			Transient: transientStatuses[resp.StatusCode],
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	return body, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Use this for small files like card images. Any status other than
// 200 OK is returned as a *StatusError.
//
// Example:
//
//	data, err := client.Get(ctx, "https://images.pokemontcg.io/swsh4/44.png")
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Code:      resp.StatusCode,
			Status:    resp.Status,
			Transient: transientStatuses[resp.StatusCode],
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}
