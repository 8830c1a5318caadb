// Package yfinance fetches quotes, company profiles, financial statements,
// and valuation metrics from the Yahoo Finance quoteSummary API.
//
// Fields the feed omits stay nil and serialize as JSON null. A missing
// number is never reported as zero.
package yfinance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thepill/thepill/internal/infra"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"

	// Yahoo rejects requests without a browser-looking User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	quoteCacheTTL = 1 * time.Minute
)

// Client talks to the Yahoo Finance quoteSummary endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *infra.Cache
	limiter    *infra.RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Yahoo Finance endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Yahoo Finance client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      infra.NewCache(quoteCacheTTL),
		limiter:    infra.NewRateLimiter(5, time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.quoteSummary(ctx, "AAPL", "price"); err != nil {
		return fmt.Errorf("yfinance ping: %w", err)
	}
	return nil
}

func yfHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": userAgent,
	}
}

// quoteSummary fetches the requested modules for one symbol.
func (c *Client) quoteSummary(ctx context.Context, symbol, modules string) (*yfQuoteSummaryResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	var resp yfQuoteSummaryResponse
	if err := infra.DoGetJSON(ctx, c.httpClient, u, yfHeaders(), &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no data for %s", symbol)
	}
	return &resp.QuoteSummary.Result[0], nil
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// pick returns the first non-nil pointer.
func pick[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// strPtr returns a pointer to s, or nil when s is empty.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
