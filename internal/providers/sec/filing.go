package sec

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thepill/thepill/pkg/models"
	"github.com/thepill/thepill/pkg/utils"
)

// ResolveCIK maps a ticker to its zero-padded 10-digit CIK. The full
// ticker map is fetched once and cached for a day. Any failure, transport
// or lookup, reports the same not-found error; that text is what the
// analysis model sees.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	ticker = utils.NormalizeTicker(ticker)

	m, err := c.cikMap(ctx)
	if err != nil {
		return "", fmt.Errorf("Could not find CIK for %s", ticker)
	}
	cik, ok := m[ticker]
	if !ok {
		return "", fmt.Errorf("Could not find CIK for %s", ticker)
	}
	return cik, nil
}

func (c *Client) cikMap(ctx context.Context) (map[string]string, error) {
	if cached, ok := c.cikCache.Get(cikCacheKey); ok {
		return cached.(map[string]string), nil
	}

	var entries map[string]edgarTickerEntry
	if err := c.getJSON(ctx, c.wwwURL+"/files/company_tickers.json", &entries); err != nil {
		return nil, err
	}

	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[strings.ToUpper(e.Ticker)] = padCIK(strconv.FormatInt(e.CIKStr, 10))
	}
	c.cikCache.Set(cikCacheKey, m)
	return m, nil
}

// Filing returns the latest filing of the requested form plus headline
// XBRL facts. Submissions and company facts are fetched concurrently; a
// facts failure leaves the four headline numbers null and the rest of the
// result intact. An empty filingType means 10-Q.
func (c *Client) Filing(ctx context.Context, ticker string, filingType models.FilingType) (*models.SECFiling, error) {
	ticker = utils.NormalizeTicker(ticker)
	if filingType == "" {
		filingType = models.Filing10Q
	}

	cik, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	var (
		submissions edgarSubmissionsResponse
		facts       *CompanyFacts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, fmt.Sprintf("%s/submissions/CIK%s.json", c.dataURL, cik), &submissions)
	})
	g.Go(func() error {
		f, err := c.CompanyFacts(gctx, ticker)
		if err != nil {
			// Facts are best effort, many registrants have none.
			return nil
		}
		facts = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	companyName := submissions.Name
	if companyName == "" {
		companyName = ticker
	}

	filing := &models.SECFiling{
		Ticker:      ticker,
		CompanyName: companyName,
		CIK:         cik,
		SECURL: fmt.Sprintf("%s/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=%s",
			c.wwwURL, cik, filingType),
	}

	recent := submissions.Filings.Recent
	for i, form := range recent.Form {
		if form != string(filingType) {
			continue
		}
		ref := &models.FilingRef{Form: form}
		if i < len(recent.FilingDate) {
			ref.FilingDate = recent.FilingDate[i]
		}
		if i < len(recent.AccessionNumber) {
			ref.AccessionNumber = recent.AccessionNumber[i]
		}
		if i < len(recent.PrimaryDocument) {
			ref.PrimaryDocument = recent.PrimaryDocument[i]
		}
		filing.LatestFiling = ref
		break
	}

	if facts != nil {
		usGaap := facts.Facts["us-gaap"]
		filing.SharesOutstanding = latestValue(usGaap, "CommonStockSharesOutstanding", "shares")
		filing.TotalAssets = latestValue(usGaap, "Assets", "USD")
		filing.TotalLiabilities = latestValue(usGaap, "Liabilities", "USD")
		filing.StockholdersEquity = latestValue(usGaap, "StockholdersEquity", "USD")
	}

	return filing, nil
}

// CompanyFacts fetches the full XBRL facts payload for a ticker. Filing
// treats facts as best effort; here any resolution or fetch failure is
// returned to the caller.
func (c *Client) CompanyFacts(ctx context.Context, ticker string) (*CompanyFacts, error) {
	ticker = utils.NormalizeTicker(ticker)

	cik, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	var f CompanyFacts
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.dataURL, cik), &f); err != nil {
		return nil, fmt.Errorf("Failed to get company facts for %s: %w", ticker, err)
	}
	return &f, nil
}

// latestValue returns the most recent reported value for a concept,
// ordered by period end date.
func latestValue(concepts map[string]Fact, concept, unit string) *float64 {
	obs := concepts[concept].Units[unit]
	if len(obs) == 0 {
		return nil
	}
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].End > sorted[j].End })
	v := sorted[0].Val
	return &v
}
