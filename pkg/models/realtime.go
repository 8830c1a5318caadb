package models

// RealTimeQuote is a low-latency price snapshot from the real-time feed.
// Realtime distinguishes it from the delayed StockQuote in tool output.
type RealTimeQuote struct {
	Ticker        string   `json:"ticker"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	DayHigh       *float64 `json:"day_high"`
	DayLow        *float64 `json:"day_low"`
	Open          *float64 `json:"open"`
	PreviousClose *float64 `json:"previous_close"`
	Timestamp     string   `json:"timestamp"`
	MarketStatus  string   `json:"market_status"`
	Realtime      bool     `json:"realtime"`
}

// Trade is a single print from the live trade stream.
type Trade struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}
