package yfinance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/thepill/thepill/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func fixtureHandler(t *testing.T, fixture string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, want a browser string", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fixture))
	}
}

func wantFloat(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %v", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", name, *got, want)
	}
}

func wantInt(t *testing.T, name string, got *int64, want int64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %d", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %d, want %d", name, *got, want)
	}
}

func wantStr(t *testing.T, name string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %q", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", name, *got, want)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Quote
// ═══════════════════════════════════════════════════════════════════════════

const quoteFixture = `{"quoteSummary":{"result":[{
	"price":{"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple","currency":"USD","exchangeName":"NasdaqGS","quoteType":"EQUITY",
		"regularMarketPrice":{"raw":189.90,"fmt":"189.90"},
		"regularMarketPreviousClose":{"raw":188.00},
		"regularMarketOpen":{"raw":188.40},
		"regularMarketDayHigh":{"raw":190.50},
		"regularMarketDayLow":{"raw":187.90},
		"regularMarketVolume":{"raw":52164730},
		"marketCap":{"raw":2950000000000}},
	"summaryDetail":{
		"previousClose":{"raw":188.06},
		"open":{"raw":188.45},
		"dayLow":{"raw":187.86},
		"dayHigh":{"raw":190.55},
		"volume":{"raw":52164700},
		"averageVolume":{"raw":58529120},
		"fiftyTwoWeekLow":{"raw":164.08},
		"fiftyTwoWeekHigh":{"raw":199.62}},
	"defaultKeyStatistics":{
		"sharesOutstanding":{"raw":15552800000},
		"floatShares":{"raw":15537300000}},
	"financialData":{
		"currentPrice":{"raw":189.84}}
}],"error":null}}`

func TestQuote(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, quoteFixture))

	q, err := client.Quote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	if q.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", q.Ticker)
	}
	wantFloat(t, "Price", q.Price, 189.84) // financialData wins over price module
	wantFloat(t, "PreviousClose", q.PreviousClose, 188.06)
	wantFloat(t, "Open", q.Open, 188.45)
	wantFloat(t, "DayHigh", q.DayHigh, 190.55)
	wantFloat(t, "DayLow", q.DayLow, 187.86)
	wantInt(t, "Volume", q.Volume, 52164700)
	wantInt(t, "AvgVolume", q.AvgVolume, 58529120)
	wantInt(t, "MarketCap", q.MarketCap, 2950000000000)
	wantInt(t, "SharesOutstanding", q.SharesOutstanding, 15552800000)
	wantInt(t, "FloatShares", q.FloatShares, 15537300000)
	wantFloat(t, "FiftyTwoWeekHigh", q.FiftyTwoWeekHigh, 199.62)
	wantFloat(t, "FiftyTwoWeekLow", q.FiftyTwoWeekLow, 164.08)
	if q.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", q.Currency)
	}
	wantStr(t, "Exchange", q.Exchange, "NasdaqGS")
	wantStr(t, "QuoteType", q.QuoteType, "EQUITY")
	if q.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}

const sparseQuoteFixture = `{"quoteSummary":{"result":[{
	"price":{"symbol":"SONY","shortName":"Sony Group","exchangeName":"NYSE","quoteType":"EQUITY",
		"regularMarketPrice":{"raw":85.10},
		"regularMarketPreviousClose":{"raw":84.55},
		"regularMarketVolume":{"raw":1204500}}
}],"error":null}}`

func TestQuoteFallbacks(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, sparseQuoteFixture))

	q, err := client.Quote(context.Background(), "SONY")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	wantFloat(t, "Price", q.Price, 85.10) // no financialData, regularMarketPrice used
	wantFloat(t, "PreviousClose", q.PreviousClose, 84.55)
	wantInt(t, "Volume", q.Volume, 1204500)
	if q.Currency != "USD" {
		t.Errorf("Currency = %q, want USD default", q.Currency)
	}
	if q.AvgVolume != nil {
		t.Errorf("AvgVolume = %d, want nil", *q.AvgVolume)
	}
	if q.MarketCap != nil {
		t.Errorf("MarketCap = %d, want nil", *q.MarketCap)
	}
}

func TestQuoteNullsSurviveSerialization(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, sparseQuoteFixture))

	q, err := client.Quote(context.Background(), "SONY")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	for _, want := range []string{`"avg_volume":null`, `"market_cap":null`, `"fifty_two_week_high":null`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("serialized quote missing %s:\n%s", want, data)
		}
	}
}

func TestQuoteCache(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(quoteFixture))
	})

	if _, err := client.Quote(context.Background(), "AAPL"); err != nil {
		t.Fatalf("first Quote() error: %v", err)
	}
	if _, err := client.Quote(context.Background(), "AAPL"); err != nil {
		t.Fatalf("second Quote() error: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (second call served from cache)", requests)
	}
}

func TestQuoteSymbolMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/BRK-B" {
			t.Errorf("path = %s, want /v10/finance/quoteSummary/BRK-B", r.URL.Path)
		}
		w.Write([]byte(sparseQuoteFixture))
	})

	q, err := client.Quote(context.Background(), "brk.b")
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if q.Ticker != "BRK.B" {
		t.Errorf("Ticker = %q, want BRK.B", q.Ticker)
	}
}

func TestQuoteAPIError(t *testing.T) {
	fixture := `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: ZZZZ"}}}`
	client := newTestClient(t, fixtureHandler(t, fixture))

	_, err := client.Quote(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Failed to get quote for ZZZZ") {
		t.Errorf("error = %q, want ticker in message", err)
	}
	if !strings.Contains(err.Error(), "Quote not found") {
		t.Errorf("error = %q, want upstream description", err)
	}
}

func TestQuoteNoData(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, `{"quoteSummary":{"result":[],"error":null}}`))

	_, err := client.Quote(context.Background(), "AAPL")
	if err == nil || !strings.Contains(err.Error(), "no data for AAPL") {
		t.Errorf("error = %v, want no data", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// CompanyInfo
// ═══════════════════════════════════════════════════════════════════════════

const profileFixture = `{"quoteSummary":{"result":[{
	"price":{"symbol":"AAPL","longName":"Apple Inc.","shortName":"Apple"},
	"assetProfile":{
		"industry":"Consumer Electronics",
		"sector":"Technology",
		"longBusinessSummary":"Apple Inc. designs, manufactures, and markets smartphones.",
		"fullTimeEmployees":161000,
		"city":"Cupertino","state":"CA","country":"United States",
		"website":"https://www.apple.com",
		"companyOfficers":[
			{"name":"Mr. Timothy D. Cook","title":"CEO & Director","age":62,"yearBorn":1961,"totalPay":{"raw":16239562}},
			{"name":"Mr. Luca Maestri","title":"CFO & Senior VP","age":59,"yearBorn":1964,"totalPay":{"raw":4612242}},
			{"name":"Mr. Jeffrey E. Williams","title":"Chief Operating Officer","age":59,"yearBorn":1964,"totalPay":{}},
			{"name":"Ms. Katherine L. Adams","title":"Senior VP & General Counsel","age":59,"yearBorn":1964},
			{"name":"Ms. Deirdre O'Brien","title":"Senior VP of Retail","age":57,"yearBorn":1966},
			{"name":"Mr. Chris Kondo","title":"Senior Director of Corporate Accounting"}
		]}
}],"error":null}}`

func TestCompanyInfo(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, profileFixture))

	p, err := client.CompanyInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("CompanyInfo() error: %v", err)
	}

	wantStr(t, "Name", p.Name, "Apple Inc.")
	wantStr(t, "Sector", p.Sector, "Technology")
	wantStr(t, "Industry", p.Industry, "Consumer Electronics")
	wantStr(t, "Website", p.Website, "https://www.apple.com")
	wantInt(t, "Employees", p.Employees, 161000)
	wantStr(t, "Headquarters.City", p.Headquarters.City, "Cupertino")
	wantStr(t, "Headquarters.State", p.Headquarters.State, "CA")
	wantStr(t, "Headquarters.Country", p.Headquarters.Country, "United States")

	if len(p.Officers) != 5 {
		t.Fatalf("len(Officers) = %d, want 5 (list capped)", len(p.Officers))
	}
	wantStr(t, "Officers[0].Name", p.Officers[0].Name, "Mr. Timothy D. Cook")
	wantInt(t, "Officers[0].TotalPay", p.Officers[0].TotalPay, 16239562)
	if p.Officers[2].TotalPay != nil {
		t.Errorf("Officers[2].TotalPay = %d, want nil for empty pay object", *p.Officers[2].TotalPay)
	}
}

func TestCompanyInfoNameFallback(t *testing.T) {
	fixture := `{"quoteSummary":{"result":[{
		"price":{"symbol":"SONY","shortName":"Sony Group"},
		"assetProfile":{"sector":"Technology"}
	}],"error":null}}`
	client := newTestClient(t, fixtureHandler(t, fixture))

	p, err := client.CompanyInfo(context.Background(), "SONY")
	if err != nil {
		t.Fatalf("CompanyInfo() error: %v", err)
	}
	wantStr(t, "Name", p.Name, "Sony Group")
	if p.Description != nil {
		t.Errorf("Description = %q, want nil", *p.Description)
	}
	if p.Employees != nil {
		t.Errorf("Employees = %d, want nil", *p.Employees)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// FinancialStatements
// ═══════════════════════════════════════════════════════════════════════════

const incomeFixture = `{"quoteSummary":{"result":[{
	"incomeStatementHistoryQuarterly":{"incomeStatementHistory":[
		{"maxAge":1,"endDate":{"raw":1719619200,"fmt":"2024-06-29"},"totalRevenue":{"raw":85777000000,"fmt":"85.78B"},"netIncome":{"raw":21448000000},"costOfRevenue":{}},
		{"maxAge":1,"endDate":{"raw":1711756800,"fmt":"2024-03-30"},"totalRevenue":{"raw":90753000000},"netIncome":{"raw":23636000000}}
	]},
	"incomeStatementHistory":{"incomeStatementHistory":[
		{"maxAge":1,"endDate":{"raw":1696032000},"totalRevenue":{"raw":383285000000},"netIncome":{"raw":96995000000}}
	]}
}],"error":null}}`

const balanceFixture = `{"quoteSummary":{"result":[{
	"balanceSheetHistoryQuarterly":{"balanceSheetStatements":[
		{"maxAge":1,"endDate":{"fmt":"2024-06-29"},"totalAssets":{"raw":331612000000},"totalLiab":{"raw":264904000000}}
	]},
	"balanceSheetHistory":{"balanceSheetStatements":[]}
}],"error":null}}`

const cashflowFixture = `{"quoteSummary":{"result":[{
	"cashflowStatementHistoryQuarterly":{"cashflowStatements":[
		{"maxAge":1,"endDate":{"fmt":"2024-06-29"},"totalCashFromOperatingActivities":{"raw":28858000000}}
	]},
	"cashflowStatementHistory":{"cashflowStatements":[
		{"maxAge":1,"endDate":{"fmt":"2023-09-30"},"totalCashFromOperatingActivities":{"raw":110543000000}}
	]}
}],"error":null}}`

func statementsHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		modules := r.URL.Query().Get("modules")
		switch {
		case strings.Contains(modules, "incomeStatement"):
			w.Write([]byte(incomeFixture))
		case strings.Contains(modules, "balanceSheet"):
			w.Write([]byte(balanceFixture))
		case strings.Contains(modules, "cashflowStatement"):
			w.Write([]byte(cashflowFixture))
		default:
			t.Errorf("unexpected modules %q", modules)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestFinancialStatementsAll(t *testing.T) {
	client := newTestClient(t, statementsHandler(t))

	fs, err := client.FinancialStatements(context.Background(), "AAPL", models.StatementAll)
	if err != nil {
		t.Fatalf("FinancialStatements() error: %v", err)
	}

	if fs.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", fs.Ticker)
	}

	quarterly := fs.QuarterlyIncomeStatement
	if len(quarterly) != 2 {
		t.Fatalf("quarterly income periods = %d, want 2", len(quarterly))
	}
	period, ok := quarterly["2024-06-29"]
	if !ok {
		t.Fatal("missing 2024-06-29 quarterly income period")
	}
	wantFloat(t, "totalRevenue", period["totalRevenue"], 85777000000)
	wantFloat(t, "netIncome", period["netIncome"], 21448000000)
	if v, ok := period["costOfRevenue"]; !ok || v != nil {
		t.Errorf("costOfRevenue = %v (present %v), want preserved null", v, ok)
	}
	if _, ok := period["maxAge"]; ok {
		t.Error("maxAge leaked into line items")
	}
	if _, ok := period["endDate"]; ok {
		t.Error("endDate leaked into line items")
	}

	// Annual period has no fmt, the raw epoch is formatted instead.
	if _, ok := fs.AnnualIncomeStatement["2023-09-30"]; !ok {
		t.Errorf("annual income keys = %v, want 2023-09-30", keysOf(fs.AnnualIncomeStatement))
	}

	if len(fs.QuarterlyBalanceSheet) != 1 {
		t.Errorf("quarterly balance periods = %d, want 1", len(fs.QuarterlyBalanceSheet))
	}
	if fs.AnnualBalanceSheet != nil {
		t.Errorf("AnnualBalanceSheet = %v, want nil for empty history", fs.AnnualBalanceSheet)
	}
	if len(fs.QuarterlyCashFlow) != 1 || len(fs.AnnualCashFlow) != 1 {
		t.Errorf("cash flow periods = %d/%d, want 1/1", len(fs.QuarterlyCashFlow), len(fs.AnnualCashFlow))
	}

	// Empty families disappear from the serialized bundle.
	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if strings.Contains(string(data), "annual_balance_sheet") {
		t.Errorf("serialized bundle contains empty family:\n%s", data)
	}
}

func TestFinancialStatementsSingleFamily(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Query().Get("modules"))
		mu.Unlock()
		w.Write([]byte(incomeFixture))
	})

	fs, err := client.FinancialStatements(context.Background(), "AAPL", models.StatementIncome)
	if err != nil {
		t.Fatalf("FinancialStatements() error: %v", err)
	}

	if len(requested) != 1 {
		t.Fatalf("requests = %d, want 1", len(requested))
	}
	if requested[0] != "incomeStatementHistoryQuarterly,incomeStatementHistory" {
		t.Errorf("modules = %q", requested[0])
	}
	if fs.QuarterlyBalanceSheet != nil || fs.QuarterlyCashFlow != nil {
		t.Error("unrequested families populated")
	}
}

func TestFinancialStatementsDefaultsToAll(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		statementsHandler(t)(w, r)
	})

	if _, err := client.FinancialStatements(context.Background(), "AAPL", ""); err != nil {
		t.Fatalf("FinancialStatements() error: %v", err)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3 for the full bundle", requests)
	}
}

func TestFinancialStatementsUnknownType(t *testing.T) {
	client := New()
	_, err := client.FinancialStatements(context.Background(), "AAPL", "weekly")
	if err == nil || !strings.Contains(err.Error(), "unknown statement type") {
		t.Errorf("error = %v, want unknown statement type", err)
	}
}

func keysOf(s models.Statement) []string {
	var keys []string
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// ═══════════════════════════════════════════════════════════════════════════
// KeyMetrics
// ═══════════════════════════════════════════════════════════════════════════

const metricsFixture = `{"quoteSummary":{"result":[{
	"price":{"symbol":"AAPL","marketCap":{"raw":2950000000000}},
	"summaryDetail":{
		"trailingPE":{"raw":29.5},
		"priceToSalesTrailing12Months":{"raw":7.3},
		"dividendRate":{"raw":0.96},
		"dividendYield":{"raw":0.0052},
		"exDividendDate":{"raw":1723161600,"fmt":"2024-08-09"},
		"payoutRatio":{"raw":0.147}},
	"defaultKeyStatistics":{
		"enterpriseValue":{"raw":3010000000000},
		"forwardPE":{"raw":27.1},
		"pegRatio":{"raw":2.4},
		"priceToBook":{"raw":45.2},
		"enterpriseToRevenue":{"raw":7.5},
		"enterpriseToEbitda":{"raw":21.3},
		"trailingEps":{"raw":6.43},
		"forwardEps":{"raw":7.01},
		"netIncomeToCommon":{"raw":100389000000},
		"bookValue":{"raw":4.38}},
	"financialData":{
		"totalRevenue":{"raw":385603000000},
		"revenuePerShare":{"raw":24.83},
		"grossProfits":{"raw":170782000000},
		"ebitda":{"raw":131781000000},
		"grossMargins":{"raw":0.4586},
		"operatingMargins":{"raw":0.3103},
		"profitMargins":{"raw":0.2631},
		"returnOnAssets":{"raw":0.2161},
		"returnOnEquity":{"raw":1.6059},
		"totalCash":{"raw":67150000000},
		"totalCashPerShare":{"raw":4.39},
		"totalDebt":{"raw":101304000000},
		"debtToEquity":{"raw":151.862},
		"currentRatio":{"raw":1.04},
		"quickRatio":{"raw":0.95},
		"operatingCashflow":{"raw":118254000000},
		"freeCashflow":{"raw":99584000000},
		"leveredFreeCashflow":{"raw":84726000000},
		"revenueGrowth":{"raw":0.049},
		"earningsGrowth":{"raw":0.111},
		"earningsQuarterlyGrowth":{"raw":0.079}}
}],"error":null}}`

func TestKeyMetrics(t *testing.T) {
	client := newTestClient(t, fixtureHandler(t, metricsFixture))

	m, err := client.KeyMetrics(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("KeyMetrics() error: %v", err)
	}

	if m.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", m.Ticker)
	}
	wantInt(t, "Valuation.MarketCap", m.Valuation.MarketCap, 2950000000000)
	wantInt(t, "Valuation.EnterpriseValue", m.Valuation.EnterpriseValue, 3010000000000)
	wantFloat(t, "Valuation.TrailingPE", m.Valuation.TrailingPE, 29.5)
	wantFloat(t, "Valuation.ForwardPE", m.Valuation.ForwardPE, 27.1)
	wantFloat(t, "Valuation.PEGRatio", m.Valuation.PEGRatio, 2.4)
	wantFloat(t, "Valuation.PriceToSales", m.Valuation.PriceToSales, 7.3)
	wantFloat(t, "Valuation.EVToEBITDA", m.Valuation.EVToEBITDA, 21.3)

	wantFloat(t, "Profitability.ProfitMargin", m.Profitability.ProfitMargin, 0.2631)
	wantFloat(t, "Profitability.ReturnOnEquity", m.Profitability.ReturnOnEquity, 1.6059)

	wantInt(t, "IncomeStatement.Revenue", m.IncomeStatement.Revenue, 385603000000)
	wantInt(t, "IncomeStatement.NetIncome", m.IncomeStatement.NetIncome, 100389000000)
	wantFloat(t, "IncomeStatement.EPSTrailing", m.IncomeStatement.EPSTrailing, 6.43)

	wantInt(t, "BalanceSheet.TotalCash", m.BalanceSheet.TotalCash, 67150000000)
	wantFloat(t, "BalanceSheet.DebtToEquity", m.BalanceSheet.DebtToEquity, 151.862)
	wantFloat(t, "BalanceSheet.BookValue", m.BalanceSheet.BookValue, 4.38)

	wantInt(t, "CashFlow.OperatingCashFlow", m.CashFlow.OperatingCashFlow, 118254000000)
	wantInt(t, "CashFlow.LeveredFreeCashFlow", m.CashFlow.LeveredFreeCashFlow, 84726000000)

	wantFloat(t, "Dividends.DividendYield", m.Dividends.DividendYield, 0.0052)
	wantInt(t, "Dividends.ExDividendDate", m.Dividends.ExDividendDate, 1723161600)

	wantFloat(t, "Growth.RevenueGrowth", m.Growth.RevenueGrowth, 0.049)
	wantFloat(t, "Growth.EarningsQuarterlyGrowth", m.Growth.EarningsQuarterlyGrowth, 0.079)
}

func TestKeyMetricsLeveredFreeCashFlowFallback(t *testing.T) {
	fixture := `{"quoteSummary":{"result":[{
		"financialData":{"freeCashflow":{"raw":99584000000}}
	}],"error":null}}`
	client := newTestClient(t, fixtureHandler(t, fixture))

	m, err := client.KeyMetrics(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("KeyMetrics() error: %v", err)
	}
	wantInt(t, "CashFlow.LeveredFreeCashFlow", m.CashFlow.LeveredFreeCashFlow, 99584000000)
	if m.Valuation.MarketCap != nil {
		t.Errorf("Valuation.MarketCap = %d, want nil", *m.Valuation.MarketCap)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Transport
// ═══════════════════════════════════════════════════════════════════════════

func TestQuoteHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Failed to get quote for AAPL") {
		t.Errorf("error = %q, want wrapped message", err)
	}
}
