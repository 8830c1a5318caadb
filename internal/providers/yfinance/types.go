package yfinance

import (
	"encoding/json"
	"time"
)

// --- Yahoo Finance quoteSummary response types ---

// yfValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper. Raw is a
// pointer so a field Yahoo omits (or sends as {}) decodes to nil.
type yfValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// val returns the raw value, nil when the feed omitted the field.
func (v yfValue) val() *float64 { return v.Raw }

// intVal returns the raw value truncated to int64, nil when absent.
func (v yfValue) intVal() *int64 {
	if v.Raw == nil {
		return nil
	}
	n := int64(*v.Raw)
	return &n
}

type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

// yfQuoteSummaryResult holds whichever modules the request asked for.
// Modules are value structs: an absent module decodes to its zero value,
// whose yfValue fields are all nil.
type yfQuoteSummaryResult struct {
	Price                yfPrice                `json:"price"`
	SummaryDetail        yfSummaryDetail        `json:"summaryDetail"`
	AssetProfile         yfAssetProfile         `json:"assetProfile"`
	DefaultKeyStatistics yfDefaultKeyStatistics `json:"defaultKeyStatistics"`
	FinancialData        yfFinancialData        `json:"financialData"`

	IncomeStatementHistory            yfStatementContainer `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly   yfStatementContainer `json:"incomeStatementHistoryQuarterly"`
	BalanceSheetHistory               yfStatementContainer `json:"balanceSheetHistory"`
	BalanceSheetHistoryQuarterly      yfStatementContainer `json:"balanceSheetHistoryQuarterly"`
	CashflowStatementHistory          yfStatementContainer `json:"cashflowStatementHistory"`
	CashflowStatementHistoryQuarterly yfStatementContainer `json:"cashflowStatementHistoryQuarterly"`
}

type yfPrice struct {
	Symbol                     string  `json:"symbol"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
	Currency                   string  `json:"currency"`
	ExchangeName               string  `json:"exchangeName"`
	QuoteType                  string  `json:"quoteType"`
	RegularMarketPrice         yfValue `json:"regularMarketPrice"`
	RegularMarketPreviousClose yfValue `json:"regularMarketPreviousClose"`
	RegularMarketOpen          yfValue `json:"regularMarketOpen"`
	RegularMarketDayHigh       yfValue `json:"regularMarketDayHigh"`
	RegularMarketDayLow        yfValue `json:"regularMarketDayLow"`
	RegularMarketVolume        yfValue `json:"regularMarketVolume"`
	MarketCap                  yfValue `json:"marketCap"`
}

type yfSummaryDetail struct {
	PreviousClose                yfValue `json:"previousClose"`
	Open                         yfValue `json:"open"`
	DayLow                       yfValue `json:"dayLow"`
	DayHigh                      yfValue `json:"dayHigh"`
	Volume                       yfValue `json:"volume"`
	AverageVolume                yfValue `json:"averageVolume"`
	MarketCap                    yfValue `json:"marketCap"`
	FiftyTwoWeekLow              yfValue `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh             yfValue `json:"fiftyTwoWeekHigh"`
	TrailingPE                   yfValue `json:"trailingPE"`
	ForwardPE                    yfValue `json:"forwardPE"`
	PriceToSalesTrailing12Months yfValue `json:"priceToSalesTrailing12Months"`
	DividendRate                 yfValue `json:"dividendRate"`
	DividendYield                yfValue `json:"dividendYield"`
	ExDividendDate               yfValue `json:"exDividendDate"`
	PayoutRatio                  yfValue `json:"payoutRatio"`
}

type yfAssetProfile struct {
	Industry            string             `json:"industry"`
	Sector              string             `json:"sector"`
	LongBusinessSummary string             `json:"longBusinessSummary"`
	FullTimeEmployees   *int64             `json:"fullTimeEmployees"`
	City                string             `json:"city"`
	State               string             `json:"state"`
	Country             string             `json:"country"`
	Website             string             `json:"website"`
	CompanyOfficers     []yfCompanyOfficer `json:"companyOfficers"`
}

type yfCompanyOfficer struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Age      *int64  `json:"age"`
	YearBorn *int64  `json:"yearBorn"`
	TotalPay yfValue `json:"totalPay"`
}

type yfDefaultKeyStatistics struct {
	EnterpriseValue     yfValue `json:"enterpriseValue"`
	ForwardPE           yfValue `json:"forwardPE"`
	FloatShares         yfValue `json:"floatShares"`
	SharesOutstanding   yfValue `json:"sharesOutstanding"`
	BookValue           yfValue `json:"bookValue"`
	PriceToBook         yfValue `json:"priceToBook"`
	EnterpriseToRevenue yfValue `json:"enterpriseToRevenue"`
	EnterpriseToEbitda  yfValue `json:"enterpriseToEbitda"`
	PegRatio            yfValue `json:"pegRatio"`
	TrailingEps         yfValue `json:"trailingEps"`
	ForwardEps          yfValue `json:"forwardEps"`
	NetIncomeToCommon   yfValue `json:"netIncomeToCommon"`
}

type yfFinancialData struct {
	CurrentPrice            yfValue `json:"currentPrice"`
	TotalRevenue            yfValue `json:"totalRevenue"`
	RevenuePerShare         yfValue `json:"revenuePerShare"`
	GrossProfits            yfValue `json:"grossProfits"`
	Ebitda                  yfValue `json:"ebitda"`
	GrossMargins            yfValue `json:"grossMargins"`
	OperatingMargins        yfValue `json:"operatingMargins"`
	ProfitMargins           yfValue `json:"profitMargins"`
	ReturnOnAssets          yfValue `json:"returnOnAssets"`
	ReturnOnEquity          yfValue `json:"returnOnEquity"`
	TotalCash               yfValue `json:"totalCash"`
	TotalCashPerShare       yfValue `json:"totalCashPerShare"`
	TotalDebt               yfValue `json:"totalDebt"`
	DebtToEquity            yfValue `json:"debtToEquity"`
	CurrentRatio            yfValue `json:"currentRatio"`
	QuickRatio              yfValue `json:"quickRatio"`
	OperatingCashflow       yfValue `json:"operatingCashflow"`
	FreeCashflow            yfValue `json:"freeCashflow"`
	LeveredFreeCashflow     yfValue `json:"leveredFreeCashflow"`
	RevenueGrowth           yfValue `json:"revenueGrowth"`
	EarningsGrowth          yfValue `json:"earningsGrowth"`
	EarningsQuarterlyGrowth yfValue `json:"earningsQuarterlyGrowth"`
}

// yfStatementContainer wraps one statement-history module. The inner array
// key differs per family, so all three are declared and statements()
// returns whichever is populated.
type yfStatementContainer struct {
	IncomeStatements   []yfStatement `json:"incomeStatementHistory"`
	BalanceStatements  []yfStatement `json:"balanceSheetStatements"`
	CashflowStatements []yfStatement `json:"cashflowStatements"`
}

func (c yfStatementContainer) statements() []yfStatement {
	switch {
	case len(c.IncomeStatements) > 0:
		return c.IncomeStatements
	case len(c.BalanceStatements) > 0:
		return c.BalanceStatements
	default:
		return c.CashflowStatements
	}
}

// yfStatement is one reporting period: endDate plus line items. Values are
// kept raw because the map mixes {"raw":...} objects with plain numbers
// (maxAge) and empty objects for unreported items.
type yfStatement map[string]json.RawMessage

// endDate returns the period label, preferring Yahoo's formatted date.
func (s yfStatement) endDate() string {
	raw, ok := s["endDate"]
	if !ok {
		return ""
	}
	var v yfValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	if v.Fmt != "" {
		return v.Fmt
	}
	if v.Raw != nil {
		return time.Unix(int64(*v.Raw), 0).UTC().Format("2006-01-02")
	}
	return ""
}

// lineItems converts the period's reported values. Items Yahoo sends as
// empty objects stay nil.
func (s yfStatement) lineItems() map[string]*float64 {
	items := make(map[string]*float64, len(s))
	for key, raw := range s {
		if key == "endDate" || key == "maxAge" {
			continue
		}
		var v yfValue
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		items[key] = v.Raw
	}
	return items
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
