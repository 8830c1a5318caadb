package yfinance

import (
	"context"
	"fmt"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

const maxOfficers = 5

// CompanyInfo fetches the business profile for a ticker. The officer list
// is capped at the top five entries.
func (c *Client) CompanyInfo(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	ticker = utils.NormalizeTicker(ticker)
	symbol := utils.ToYahooSymbol(ticker)

	result, err := c.quoteSummary(ctx, symbol, "assetProfile,price")
	if err != nil {
		return nil, fmt.Errorf("Failed to get company info for %s: %w", ticker, err)
	}

	ap := result.AssetProfile
	p := result.Price

	profile := &models.CompanyProfile{
		Ticker:      ticker,
		Name:        strPtr(coalesce(p.LongName, p.ShortName)),
		Sector:      strPtr(ap.Sector),
		Industry:    strPtr(ap.Industry),
		Description: strPtr(ap.LongBusinessSummary),
		Website:     strPtr(ap.Website),
		Employees:   ap.FullTimeEmployees,
		Headquarters: models.Headquarters{
			City:    strPtr(ap.City),
			State:   strPtr(ap.State),
			Country: strPtr(ap.Country),
		},
	}

	officers := ap.CompanyOfficers
	if len(officers) > maxOfficers {
		officers = officers[:maxOfficers]
	}
	for _, o := range officers {
		profile.Officers = append(profile.Officers, models.CompanyOfficer{
			Name:     strPtr(o.Name),
			Title:    strPtr(o.Title),
			Age:      o.Age,
			YearBorn: o.YearBorn,
			TotalPay: o.TotalPay.intVal(),
		})
	}

	return profile, nil
}
