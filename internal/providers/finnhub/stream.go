package finnhub

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// TradeHandler receives each print from the live trade stream.
type TradeHandler func(models.Trade)

// wsMessage is one frame from the Finnhub trade socket. Type is "trade"
// for prints and "ping" for keepalives.
type wsMessage struct {
	Type string    `json:"type"`
	Data []wsTrade `json:"data"`
}

type wsTrade struct {
	Symbol    string  `json:"s"`
	Price     float64 `json:"p"`
	Timestamp int64   `json:"t"`
	Volume    float64 `json:"v"`
}

// StreamTrades subscribes to live trades for the given symbols and invokes
// handler for each print, blocking until ctx is canceled or the feed
// closes. Handler runs on the read loop, so it must not block.
func (c *Client) StreamTrades(ctx context.Context, symbols []string, handler TradeHandler) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL+"?token="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return fmt.Errorf("finnhub stream dial: %w", err)
	}
	defer conn.Close()

	for _, s := range symbols {
		sub := map[string]string{"type": "subscribe", "symbol": utils.NormalizeTicker(s)}
		if err := conn.WriteJSON(sub); err != nil {
			return fmt.Errorf("finnhub subscribe %s: %w", s, err)
		}
	}

	// Closing the conn is the only way to unblock ReadJSON on cancel.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("finnhub stream read: %w", err)
		}
		if msg.Type != "trade" {
			continue
		}
		for _, t := range msg.Data {
			handler(models.Trade{
				Symbol:    t.Symbol,
				Price:     t.Price,
				Volume:    t.Volume,
				Timestamp: t.Timestamp,
			})
		}
	}
}
