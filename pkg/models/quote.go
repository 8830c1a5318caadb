// Package models defines the data records The Pill's tools return to the
// analysis model. Numeric fields are pointers: a value the upstream feed
// does not report stays null in our JSON, it is never collapsed to zero.
package models

// StockQuote is a point-in-time market snapshot for one ticker.
type StockQuote struct {
	Ticker            string   `json:"ticker"`
	Price             *float64 `json:"price"` // currentPrice, else regularMarketPrice
	PreviousClose     *float64 `json:"previous_close"`
	Open              *float64 `json:"open"`
	DayHigh           *float64 `json:"day_high"`
	DayLow            *float64 `json:"day_low"`
	Volume            *int64   `json:"volume"`
	AvgVolume         *int64   `json:"avg_volume"`
	MarketCap         *int64   `json:"market_cap"`
	SharesOutstanding *int64   `json:"shares_outstanding"`
	FloatShares       *int64   `json:"float_shares"`
	FiftyTwoWeekHigh  *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow   *float64 `json:"fifty_two_week_low"`
	Currency          string   `json:"currency"` // "USD" when the feed omits it
	Exchange          *string  `json:"exchange"`
	QuoteType         *string  `json:"quote_type"`
	Timestamp         string   `json:"timestamp"` // ISO-8601, time of fetch
}
