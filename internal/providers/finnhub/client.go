// Package finnhub provides the real-time quote client and the live trade
// stream. The API key is optional service-wide: an unconfigured client
// fails fast with ErrNotConfigured before any network traffic, and the
// rest of the service keeps working without it.
package finnhub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thepill/thepill/internal/infra"
	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

const (
	defaultBaseURL = "https://finnhub.io/api/v1"
	defaultWSURL   = "wss://ws.finnhub.io"
)

// ErrNotConfigured is returned when no Finnhub API key was supplied. Its
// text is what the analysis model sees when the real-time tool degrades.
var ErrNotConfigured = errors.New("Finnhub API key not configured")

// Client talks to the Finnhub REST and websocket APIs.
type Client struct {
	apiKey     string
	baseURL    string
	wsURL      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the REST endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithWSURL overrides the websocket endpoint, used in tests.
func WithWSURL(u string) Option {
	return func(c *Client) { c.wsURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Finnhub client. An empty apiKey is allowed and produces an
// unconfigured client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		wsURL:      defaultWSURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// finnhubQuote is the /quote response. Finnhub sends every field, with
// zeros for unknown symbols; pointers keep anything it omits null.
type finnhubQuote struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	ChangePercent *float64 `json:"dp"`
	High          *float64 `json:"h"`
	Low           *float64 `json:"l"`
	Open          *float64 `json:"o"`
	PreviousClose *float64 `json:"pc"`
	Timestamp     int64    `json:"t"`
}

// Quote fetches the real-time snapshot for a ticker. Without an API key it
// returns ErrNotConfigured immediately; no request is made.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.RealTimeQuote, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	ticker = utils.NormalizeTicker(ticker)

	u := fmt.Sprintf("%s/quote?symbol=%s&token=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(c.apiKey))

	var q finnhubQuote
	if err := infra.DoGetJSON(ctx, c.httpClient, u, nil, &q); err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", ticker, err)
	}

	return &models.RealTimeQuote{
		Ticker:        ticker,
		Price:         q.Current,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		DayHigh:       q.High,
		DayLow:        q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
		Timestamp:     utils.Timestamp(),
		MarketStatus:  utils.MarketStatus(),
		Realtime:      true,
	}, nil
}
