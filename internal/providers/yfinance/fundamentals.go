package yfinance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// FinancialStatements fetches the requested statement families, quarterly
// and annual. An empty statementType means all. Each family is fetched
// concurrently; a family with no reported periods is omitted from the
// result rather than serialized empty.
func (c *Client) FinancialStatements(ctx context.Context, ticker string, statementType models.StatementType) (*models.FinancialStatements, error) {
	ticker = utils.NormalizeTicker(ticker)
	symbol := utils.ToYahooSymbol(ticker)

	if statementType == "" {
		statementType = models.StatementAll
	}
	switch statementType {
	case models.StatementIncome, models.StatementBalance, models.StatementCashflow, models.StatementAll:
	default:
		return nil, fmt.Errorf("unknown statement type %q", statementType)
	}

	fs := &models.FinancialStatements{Ticker: ticker}

	g, gctx := errgroup.WithContext(ctx)

	if statementType == models.StatementIncome || statementType == models.StatementAll {
		g.Go(func() error {
			result, err := c.quoteSummary(gctx, symbol, "incomeStatementHistoryQuarterly,incomeStatementHistory")
			if err != nil {
				return err
			}
			fs.QuarterlyIncomeStatement = toStatement(result.IncomeStatementHistoryQuarterly)
			fs.AnnualIncomeStatement = toStatement(result.IncomeStatementHistory)
			return nil
		})
	}
	if statementType == models.StatementBalance || statementType == models.StatementAll {
		g.Go(func() error {
			result, err := c.quoteSummary(gctx, symbol, "balanceSheetHistoryQuarterly,balanceSheetHistory")
			if err != nil {
				return err
			}
			fs.QuarterlyBalanceSheet = toStatement(result.BalanceSheetHistoryQuarterly)
			fs.AnnualBalanceSheet = toStatement(result.BalanceSheetHistory)
			return nil
		})
	}
	if statementType == models.StatementCashflow || statementType == models.StatementAll {
		g.Go(func() error {
			result, err := c.quoteSummary(gctx, symbol, "cashflowStatementHistoryQuarterly,cashflowStatementHistory")
			if err != nil {
				return err
			}
			fs.QuarterlyCashFlow = toStatement(result.CashflowStatementHistoryQuarterly)
			fs.AnnualCashFlow = toStatement(result.CashflowStatementHistory)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Failed to get financials for %s: %w", ticker, err)
	}
	return fs, nil
}

// toStatement converts one statement-history module into period keyed line
// items. Periods without a parseable end date are skipped.
func toStatement(container yfStatementContainer) models.Statement {
	stmts := container.statements()
	if len(stmts) == 0 {
		return nil
	}
	out := make(models.Statement, len(stmts))
	for _, stmt := range stmts {
		date := stmt.endDate()
		if date == "" {
			continue
		}
		out[date] = stmt.lineItems()
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
