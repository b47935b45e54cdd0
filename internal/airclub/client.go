// Package airclub implements the read-only Airline Club API client. The
// country and airport listings are served through a TTL cache; per-airport
// route listings are fetched fresh every time since competition is the one
// field expected to change between runs.
package airclub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/skyward-group/netscout/internal/cache"
)

// Options configures the Client.
type Options struct {
	BaseURL   string
	UserAgent string
	Cookie    string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit rate.Limit
	RateBurst int
}

// Client issues requests to the Airline Club API. It is safe for
// concurrent use; the caches it owns live for the process lifetime.
type Client struct {
	http      *http.Client
	opts      Options
	limiter   *rate.Limiter
	countries *cache.Cache[[]Country]
	airports  *cache.Cache[[]Airport]
}

// NewClient creates a Client with the given options, filling in defaults
// for anything unset.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.airline-club.com"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 600 * time.Second
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 10
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 10
	}
	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		opts:      opts,
		limiter:   rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		countries: cache.New[[]Country](),
		airports:  cache.New[[]Airport](),
	}
}

// FetchCountries returns the full country list, cached for the configured
// TTL.
func (c *Client) FetchCountries(ctx context.Context) ([]Country, error) {
	return c.countries.GetOrFetch(ctx, "/countries", c.opts.CacheTTL, func(ctx context.Context) ([]Country, error) {
		var out []Country
		if err := c.getJSON(ctx, "/countries", &out); err != nil {
			return nil, err
		}
		zap.L().Debug("airclub: fetched countries", zap.Int("count", len(out)))
		return out, nil
	})
}

// FetchAirports returns the full airport list, cached for the configured
// TTL. IATA codes are canonicalized and population/income clamped at this
// boundary.
func (c *Client) FetchAirports(ctx context.Context) ([]Airport, error) {
	return c.airports.GetOrFetch(ctx, "/airports", c.opts.CacheTTL, func(ctx context.Context) ([]Airport, error) {
		var out []Airport
		if err := c.getJSON(ctx, "/airports", &out); err != nil {
			return nil, err
		}
		for i := range out {
			out[i].sanitize()
		}
		zap.L().Debug("airclub: fetched airports", zap.Int("count", len(out)))
		return out, nil
	})
}

// FetchAirportLinks returns the routes touching one airport. Never cached.
func (c *Client) FetchAirportLinks(ctx context.Context, airportID int) ([]Link, error) {
	var out []Link
	if err := c.getJSON(ctx, fmt.Sprintf("/airports/%d/links", airportID), &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Capacity < 0 {
			out[i].Capacity = 0
		}
	}
	return out, nil
}

// Stats returns the counters of the country and airport caches.
func (c *Client) Stats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"countries": c.countries.Stats(),
		"airports":  c.airports.Stats(),
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "airclub: rate limiter wait")
	}

	url := c.opts.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "airclub: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Cookie != "" {
		req.Header.Set("Cookie", c.opts.Cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrapf(ErrUpstream, "GET %s: %v", endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("airclub: unexpected status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return eris.Wrapf(ErrUpstream, "GET %s: status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrapf(ErrUpstream, "GET %s: decode: %v", endpoint, err)
	}

	zap.L().Debug("airclub: request complete",
		zap.String("endpoint", endpoint),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
