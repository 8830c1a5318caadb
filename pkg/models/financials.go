package models

// StatementType selects which financial statements to fetch.
type StatementType string

const (
	StatementIncome   StatementType = "income"
	StatementBalance  StatementType = "balance"
	StatementCashflow StatementType = "cashflow"
	StatementAll      StatementType = "all"
)

// Statement maps period end dates ("YYYY-MM-DD") to line items. Line items
// the provider reports without a value are kept as nulls.
type Statement map[string]map[string]*float64

// FinancialStatements bundles the requested statement families for one
// ticker. A family the provider returns no periods for is omitted from the
// JSON entirely rather than serialized empty.
type FinancialStatements struct {
	Ticker                   string    `json:"ticker"`
	QuarterlyIncomeStatement Statement `json:"quarterly_income_statement,omitempty"`
	AnnualIncomeStatement    Statement `json:"annual_income_statement,omitempty"`
	QuarterlyBalanceSheet    Statement `json:"quarterly_balance_sheet,omitempty"`
	AnnualBalanceSheet       Statement `json:"annual_balance_sheet,omitempty"`
	QuarterlyCashFlow        Statement `json:"quarterly_cash_flow,omitempty"`
	AnnualCashFlow           Statement `json:"annual_cash_flow,omitempty"`
}
