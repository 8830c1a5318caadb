package yfinance

import (
	"context"
	"fmt"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// KeyMetrics fetches valuation, profitability, balance sheet and cash flow
// figures for a ticker. Levered free cash flow falls back to free cash flow
// when Yahoo omits it.
func (c *Client) KeyMetrics(ctx context.Context, ticker string) (*models.KeyMetrics, error) {
	ticker = utils.NormalizeTicker(ticker)
	symbol := utils.ToYahooSymbol(ticker)

	result, err := c.quoteSummary(ctx, symbol, "summaryDetail,defaultKeyStatistics,financialData,price")
	if err != nil {
		return nil, fmt.Errorf("Failed to get key metrics for %s: %w", ticker, err)
	}

	p := result.Price
	sd := result.SummaryDetail
	dks := result.DefaultKeyStatistics
	fd := result.FinancialData

	return &models.KeyMetrics{
		Ticker: ticker,
		Valuation: models.ValuationMetrics{
			MarketCap:       pick(p.MarketCap.intVal(), sd.MarketCap.intVal()),
			EnterpriseValue: dks.EnterpriseValue.intVal(),
			TrailingPE:      sd.TrailingPE.val(),
			ForwardPE:       pick(dks.ForwardPE.val(), sd.ForwardPE.val()),
			PEGRatio:        dks.PegRatio.val(),
			PriceToBook:     dks.PriceToBook.val(),
			PriceToSales:    sd.PriceToSalesTrailing12Months.val(),
			EVToRevenue:     dks.EnterpriseToRevenue.val(),
			EVToEBITDA:      dks.EnterpriseToEbitda.val(),
		},
		Profitability: models.ProfitabilityMetrics{
			ProfitMargin:    fd.ProfitMargins.val(),
			OperatingMargin: fd.OperatingMargins.val(),
			GrossMargin:     fd.GrossMargins.val(),
			ReturnOnAssets:  fd.ReturnOnAssets.val(),
			ReturnOnEquity:  fd.ReturnOnEquity.val(),
		},
		IncomeStatement: models.IncomeMetrics{
			Revenue:         fd.TotalRevenue.intVal(),
			RevenuePerShare: fd.RevenuePerShare.val(),
			GrossProfit:     fd.GrossProfits.intVal(),
			EBITDA:          fd.Ebitda.intVal(),
			NetIncome:       dks.NetIncomeToCommon.intVal(),
			EPSTrailing:     dks.TrailingEps.val(),
			EPSForward:      dks.ForwardEps.val(),
		},
		BalanceSheet: models.BalanceSheetMetrics{
			TotalCash:         fd.TotalCash.intVal(),
			TotalCashPerShare: fd.TotalCashPerShare.val(),
			TotalDebt:         fd.TotalDebt.intVal(),
			DebtToEquity:      fd.DebtToEquity.val(),
			CurrentRatio:      fd.CurrentRatio.val(),
			QuickRatio:        fd.QuickRatio.val(),
			BookValue:         dks.BookValue.val(),
		},
		CashFlow: models.CashFlowMetrics{
			OperatingCashFlow:   fd.OperatingCashflow.intVal(),
			FreeCashFlow:        fd.FreeCashflow.intVal(),
			LeveredFreeCashFlow: pick(fd.LeveredFreeCashflow.intVal(), fd.FreeCashflow.intVal()),
		},
		Dividends: models.DividendMetrics{
			DividendRate:   sd.DividendRate.val(),
			DividendYield:  sd.DividendYield.val(),
			PayoutRatio:    sd.PayoutRatio.val(),
			ExDividendDate: sd.ExDividendDate.intVal(),
		},
		Growth: models.GrowthMetrics{
			RevenueGrowth:           fd.RevenueGrowth.val(),
			EarningsGrowth:          fd.EarningsGrowth.val(),
			EarningsQuarterlyGrowth: fd.EarningsQuarterlyGrowth.val(),
		},
	}, nil
}
