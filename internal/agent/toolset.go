package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/thepill/thepill/internal/llm"
	"github.com/thepill/thepill/pkg/models"
)

// Tool names form the closed catalog the dispatcher accepts.
const (
	ToolStockQuote          = "get_stock_quote"
	ToolCompanyInfo         = "get_company_info"
	ToolFinancialStatements = "get_financial_statements"
	ToolSECFiling           = "get_sec_filing"
	ToolKeyMetrics          = "get_key_metrics"
	ToolRealtimeQuote       = "get_realtime_quote"
)

// QuoteClient provides delayed quote, profile, statement, and metric data.
type QuoteClient interface {
	Quote(ctx context.Context, ticker string) (*models.StockQuote, error)
	CompanyInfo(ctx context.Context, ticker string) (*models.CompanyProfile, error)
	FinancialStatements(ctx context.Context, ticker string, statementType models.StatementType) (*models.FinancialStatements, error)
	KeyMetrics(ctx context.Context, ticker string) (*models.KeyMetrics, error)
}

// RealtimeClient provides low-latency quotes.
type RealtimeClient interface {
	Quote(ctx context.Context, ticker string) (*models.RealTimeQuote, error)
}

// FilingClient provides SEC EDGAR filing data.
type FilingClient interface {
	Filing(ctx context.Context, ticker string, filingType models.FilingType) (*models.SECFiling, error)
}

// Toolset binds the tool catalog to concrete data clients. One Toolset is
// shared across requests; the clients it holds are safe for concurrent use.
type Toolset struct {
	quotes   QuoteClient
	realtime RealtimeClient
	filings  FilingClient
}

// NewToolset creates a Toolset over the three injected data clients.
func NewToolset(quotes QuoteClient, realtime RealtimeClient, filings FilingClient) *Toolset {
	return &Toolset{
		quotes:   quotes,
		realtime: realtime,
		filings:  filings,
	}
}

// Tools returns the catalog advertised to the model.
func (t *Toolset) Tools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        ToolStockQuote,
			Description: "Get the current stock price, market cap, and basic quote data for a ticker symbol",
			Parameters: llm.ObjectSchema("Stock quote parameters",
				map[string]*llm.JSONSchema{
					"ticker": llm.StringProp("The stock ticker symbol (e.g., AAPL, GOOGL, AMZN)"),
				},
				"ticker",
			),
		},
		{
			Name:        ToolCompanyInfo,
			Description: "Get basic company information including name, sector, industry, and description",
			Parameters: llm.ObjectSchema("Company info parameters",
				map[string]*llm.JSONSchema{
					"ticker": llm.StringProp("The stock ticker symbol"),
				},
				"ticker",
			),
		},
		{
			Name:        ToolFinancialStatements,
			Description: "Get income statement, balance sheet, and cash flow statement data for a company. Returns quarterly and annual data.",
			Parameters: llm.ObjectSchema("Financial statement parameters",
				map[string]*llm.JSONSchema{
					"ticker":         llm.StringProp("The stock ticker symbol"),
					"statement_type": llm.EnumProp("Type of financial statement to retrieve", "income", "balance", "cashflow", "all"),
				},
				"ticker", "statement_type",
			),
		},
		{
			Name:        ToolSECFiling,
			Description: "Get the latest SEC filing (10-K or 10-Q) for a company including shares outstanding and key financial data",
			Parameters: llm.ObjectSchema("SEC filing parameters",
				map[string]*llm.JSONSchema{
					"ticker":      llm.StringProp("The stock ticker symbol"),
					"filing_type": llm.EnumProp("Type of SEC filing", "10-K", "10-Q"),
				},
				"ticker", "filing_type",
			),
		},
		{
			Name:        ToolKeyMetrics,
			Description: "Get key financial metrics and ratios for a company including P/E, EV/EBITDA, margins, etc.",
			Parameters: llm.ObjectSchema("Key metrics parameters",
				map[string]*llm.JSONSchema{
					"ticker": llm.StringProp("The stock ticker symbol"),
				},
				"ticker",
			),
		},
		{
			Name:        ToolRealtimeQuote,
			Description: "Get the real-time stock price with intraday change, day range, and open for a ticker symbol",
			Parameters: llm.ObjectSchema("Real-time quote parameters",
				map[string]*llm.JSONSchema{
					"ticker": llm.StringProp("The stock ticker symbol"),
				},
				"ticker",
			),
		},
	}
}

// Dispatch routes one tool call to its data client and returns the result
// serialized for the tool_result content. Failures of any kind come back
// as {"error": ...} payloads so the conversation continues; only the six
// catalog names are accepted, everything else hits the default arm.
func (t *Toolset) Dispatch(ctx context.Context, name string, args json.RawMessage) string {
	var input struct {
		Ticker        string `json:"ticker"`
		StatementType string `json:"statement_type"`
		FilingType    string `json:"filing_type"`
	}
	// A malformed or empty argument payload leaves the fields blank, which
	// downstream treats like the keys being absent.
	_ = json.Unmarshal(args, &input)

	ticker := strings.ToUpper(input.Ticker)

	var (
		result any
		err    error
	)
	switch name {
	case ToolStockQuote:
		result, err = t.quotes.Quote(ctx, ticker)
	case ToolCompanyInfo:
		result, err = t.quotes.CompanyInfo(ctx, ticker)
	case ToolFinancialStatements:
		statementType := models.StatementType(input.StatementType)
		if statementType == "" {
			statementType = models.StatementAll
		}
		result, err = t.quotes.FinancialStatements(ctx, ticker, statementType)
	case ToolSECFiling:
		filingType := models.FilingType(input.FilingType)
		if filingType == "" {
			filingType = models.Filing10Q
		}
		result, err = t.filings.Filing(ctx, ticker, filingType)
	case ToolKeyMetrics:
		result, err = t.quotes.KeyMetrics(ctx, ticker)
	case ToolRealtimeQuote:
		result, err = t.realtime.Quote(ctx, ticker)
	default:
		return errorContent(fmt.Sprintf("Unknown tool: %s", name))
	}
	if err != nil {
		return errorContent(err.Error())
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorContent(err.Error())
	}
	return string(data)
}

// errorContent serializes a failure the same way successful results are
// serialized, so the model always reads well-formed JSON.
func errorContent(message string) string {
	data, _ := json.MarshalIndent(map[string]string{"error": message}, "", "  ")
	return string(data)
}
