// Package sec implements the SEC EDGAR filing client.
// EDGAR provides free access to company filings, XBRL facts, and CIK
// mappings via REST APIs.
//
// No API key required. Requests must carry a descriptive User-Agent per
// SEC policy. Docs: https://www.sec.gov/edgar/sec-api-documentation
// Rate limit: 10 requests/second per user-agent.
package sec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/thepill/thepill/internal/infra"
)

const (
	defaultDataURL = "https://data.sec.gov"
	defaultWWWURL  = "https://www.sec.gov"

	defaultUserAgent = "ThePill/1.0 (Educational Stock Analysis Tool)"

	cikCacheTTL = 24 * time.Hour
	cikCacheKey = "cik-map"
)

// Client talks to SEC EDGAR.
type Client struct {
	userAgent  string
	dataURL    string
	wwwURL     string
	httpClient *http.Client
	limiter    *infra.RateLimiter
	cikCache   *infra.Cache
	feedParser *gofeed.Parser
}

// Option configures a Client.
type Option func(*Client)

// WithDataURL overrides the data.sec.gov endpoint, used in tests.
func WithDataURL(u string) Option {
	return func(c *Client) { c.dataURL = strings.TrimRight(u, "/") }
}

// WithWWWURL overrides the www.sec.gov endpoint, used in tests.
func WithWWWURL(u string) Option {
	return func(c *Client) { c.wwwURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates an EDGAR client. An empty userAgent falls back to the
// default; the ticker-to-CIK map is cached for a day.
func New(userAgent string, opts ...Option) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	c := &Client{
		userAgent:  userAgent,
		dataURL:    defaultDataURL,
		wwwURL:     defaultWWWURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    infra.NewRateLimiter(10, time.Second),
		cikCache:   infra.NewCache(cikCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.feedParser = gofeed.NewParser()
	c.feedParser.UserAgent = c.userAgent
	c.feedParser.Client = c.httpClient
	return c
}

// Ping checks connectivity to EDGAR using Apple's submissions file.
func (c *Client) Ping(ctx context.Context) error {
	var probe struct {
		CIK string `json:"cik"`
	}
	if err := c.getJSON(ctx, c.dataURL+"/submissions/CIK0000320193.json", &probe); err != nil {
		return fmt.Errorf("sec ping: %w", err)
	}
	return nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}
}

// getJSON performs a rate-limited GET and decodes the JSON body. Transport
// and HTTP failures read "Failed to fetch SEC data", decode failures read
// "Error processing SEC data"; both texts end up verbatim in tool output.
func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	body, _, err := infra.DoGet(ctx, c.httpClient, url, c.headers())
	if err != nil {
		return fmt.Errorf("Failed to fetch SEC data: %w", err)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return fmt.Errorf("Error processing SEC data: %w", err)
	}
	return nil
}

// getRaw performs a rate-limited GET and returns the body for callers that
// parse HTML or feeds themselves. The caller closes the body.
func (c *Client) getRaw(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := infra.DoGet(ctx, c.httpClient, url, c.headers())
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch SEC data: %w", err)
	}
	return body, nil
}

// padCIK pads a CIK number to 10 digits with leading zeros.
func padCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}
