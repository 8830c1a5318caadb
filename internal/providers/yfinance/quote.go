package yfinance

import (
	"context"
	"fmt"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// Quote fetches the current market snapshot for a ticker. Price prefers
// financialData.currentPrice and falls back to the regular market price;
// the session fields prefer summaryDetail over the price module.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	ticker = utils.NormalizeTicker(ticker)
	symbol := utils.ToYahooSymbol(ticker)

	cacheKey := "quote:" + symbol
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*models.StockQuote), nil
	}

	result, err := c.quoteSummary(ctx, symbol, "price,summaryDetail,defaultKeyStatistics,financialData")
	if err != nil {
		return nil, fmt.Errorf("Failed to get quote for %s: %w", ticker, err)
	}

	p := result.Price
	sd := result.SummaryDetail
	dks := result.DefaultKeyStatistics
	fd := result.FinancialData

	quote := &models.StockQuote{
		Ticker:            ticker,
		Price:             pick(fd.CurrentPrice.val(), p.RegularMarketPrice.val()),
		PreviousClose:     pick(sd.PreviousClose.val(), p.RegularMarketPreviousClose.val()),
		Open:              pick(sd.Open.val(), p.RegularMarketOpen.val()),
		DayHigh:           pick(sd.DayHigh.val(), p.RegularMarketDayHigh.val()),
		DayLow:            pick(sd.DayLow.val(), p.RegularMarketDayLow.val()),
		Volume:            pick(sd.Volume.intVal(), p.RegularMarketVolume.intVal()),
		AvgVolume:         sd.AverageVolume.intVal(),
		MarketCap:         pick(p.MarketCap.intVal(), sd.MarketCap.intVal()),
		SharesOutstanding: dks.SharesOutstanding.intVal(),
		FloatShares:       dks.FloatShares.intVal(),
		FiftyTwoWeekHigh:  sd.FiftyTwoWeekHigh.val(),
		FiftyTwoWeekLow:   sd.FiftyTwoWeekLow.val(),
		Currency:          coalesce(p.Currency, "USD"),
		Exchange:          strPtr(p.ExchangeName),
		QuoteType:         strPtr(p.QuoteType),
		Timestamp:         utils.Timestamp(),
	}

	c.cache.Set(cacheKey, quote)
	return quote, nil
}
