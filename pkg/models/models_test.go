package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }

// ── Null preservation ──

func TestStockQuoteNullsSurviveMarshal(t *testing.T) {
	q := StockQuote{
		Ticker:   "AAPL",
		Price:    f64(189.95),
		Currency: "USD",
	}
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("json.Marshal(StockQuote) error: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}
	if raw["price"] != 189.95 {
		t.Errorf("price: got %v, want 189.95", raw["price"])
	}
	// Missing upstream numbers must serialize as null, never 0.
	for _, key := range []string{"previous_close", "volume", "market_cap", "shares_outstanding"} {
		v, ok := raw[key]
		if !ok {
			t.Errorf("%s: key missing, want explicit null", key)
			continue
		}
		if v != nil {
			t.Errorf("%s: got %v, want null", key, v)
		}
	}
}

func TestSECFilingNullFacts(t *testing.T) {
	f := SECFiling{
		Ticker:      "AAPL",
		CompanyName: "Apple Inc.",
		CIK:         "0000320193",
	}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("json.Marshal(SECFiling) error: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"latest_filing":null`, `"shares_outstanding":null`, `"total_assets":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("marshaled filing missing %s: %s", want, s)
		}
	}
}

// ── Statement bundling ──

func TestFinancialStatementsOmitsEmptyFamilies(t *testing.T) {
	fs := FinancialStatements{
		Ticker: "AAPL",
		QuarterlyIncomeStatement: Statement{
			"2025-09-30": {"totalRevenue": f64(94930000000), "grossProfit": nil},
		},
	}
	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("json.Marshal(FinancialStatements) error: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"quarterly_income_statement"`) {
		t.Error("populated family should be present")
	}
	if strings.Contains(s, "balance_sheet") || strings.Contains(s, "cash_flow") {
		t.Errorf("empty families should be omitted: %s", s)
	}
	if !strings.Contains(s, `"grossProfit":null`) {
		t.Errorf("null line item should survive: %s", s)
	}
}

// ── Constants ──

func TestStatementTypeConstants(t *testing.T) {
	types := map[StatementType]string{
		StatementIncome:   "income",
		StatementBalance:  "balance",
		StatementCashflow: "cashflow",
		StatementAll:      "all",
	}
	for st, expected := range types {
		if string(st) != expected {
			t.Errorf("StatementType %v: got %q, want %q", st, string(st), expected)
		}
	}
}

func TestFilingTypeConstants(t *testing.T) {
	if string(Filing10K) != "10-K" {
		t.Errorf("Filing10K: got %q, want %q", Filing10K, "10-K")
	}
	if string(Filing10Q) != "10-Q" {
		t.Errorf("Filing10Q: got %q, want %q", Filing10Q, "10-Q")
	}
}
