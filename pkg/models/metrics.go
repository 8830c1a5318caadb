package models

// KeyMetrics groups valuation, profitability and cash generation figures
// the way the analysis consumes them.
type KeyMetrics struct {
	Ticker          string               `json:"ticker"`
	Valuation       ValuationMetrics     `json:"valuation"`
	Profitability   ProfitabilityMetrics `json:"profitability"`
	IncomeStatement IncomeMetrics        `json:"income_statement"`
	BalanceSheet    BalanceSheetMetrics  `json:"balance_sheet"`
	CashFlow        CashFlowMetrics      `json:"cash_flow"`
	Dividends       DividendMetrics      `json:"dividends"`
	Growth          GrowthMetrics        `json:"growth"`
}

// ValuationMetrics covers market pricing multiples.
type ValuationMetrics struct {
	MarketCap       *int64   `json:"market_cap"`
	EnterpriseValue *int64   `json:"enterprise_value"`
	TrailingPE      *float64 `json:"trailing_pe"`
	ForwardPE       *float64 `json:"forward_pe"`
	PEGRatio        *float64 `json:"peg_ratio"`
	PriceToBook     *float64 `json:"price_to_book"`
	PriceToSales    *float64 `json:"price_to_sales"`
	EVToRevenue     *float64 `json:"ev_to_revenue"`
	EVToEBITDA      *float64 `json:"ev_to_ebitda"`
}

// ProfitabilityMetrics covers margins and returns, as fractions (0.25 = 25%).
type ProfitabilityMetrics struct {
	ProfitMargin    *float64 `json:"profit_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	GrossMargin     *float64 `json:"gross_margin"`
	ReturnOnAssets  *float64 `json:"return_on_assets"`
	ReturnOnEquity  *float64 `json:"return_on_equity"`
}

// IncomeMetrics covers trailing income statement aggregates.
type IncomeMetrics struct {
	Revenue         *int64   `json:"revenue"`
	RevenuePerShare *float64 `json:"revenue_per_share"`
	GrossProfit     *int64   `json:"gross_profit"`
	EBITDA          *int64   `json:"ebitda"`
	NetIncome       *int64   `json:"net_income"`
	EPSTrailing     *float64 `json:"eps_trailing"`
	EPSForward      *float64 `json:"eps_forward"`
}

// BalanceSheetMetrics covers liquidity and leverage.
type BalanceSheetMetrics struct {
	TotalCash         *int64   `json:"total_cash"`
	TotalCashPerShare *float64 `json:"total_cash_per_share"`
	TotalDebt         *int64   `json:"total_debt"`
	DebtToEquity      *float64 `json:"debt_to_equity"`
	CurrentRatio      *float64 `json:"current_ratio"`
	QuickRatio        *float64 `json:"quick_ratio"`
	BookValue         *float64 `json:"book_value"`
}

// CashFlowMetrics covers trailing cash generation.
type CashFlowMetrics struct {
	OperatingCashFlow    *int64 `json:"operating_cash_flow"`
	FreeCashFlow         *int64 `json:"free_cash_flow"`
	LeveredFreeCashFlow  *int64 `json:"levered_free_cash_flow"` // falls back to free cash flow
}

// DividendMetrics covers shareholder distributions.
type DividendMetrics struct {
	DividendRate  *float64 `json:"dividend_rate"`
	DividendYield *float64 `json:"dividend_yield"`
	PayoutRatio   *float64 `json:"payout_ratio"`
	ExDividendDate *int64  `json:"ex_dividend_date"` // unix seconds, as reported
}

// GrowthMetrics covers year-over-year trends, as fractions.
type GrowthMetrics struct {
	RevenueGrowth           *float64 `json:"revenue_growth"`
	EarningsGrowth          *float64 `json:"earnings_growth"`
	EarningsQuarterlyGrowth *float64 `json:"earnings_quarterly_growth"`
}
