package sec

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"

	"github.com/thepill/thepill/pkg/models"
)

var accessionPattern = regexp.MustCompile(`\d{10}-\d{2}-\d{6}`)

// RecentFilings lists a company's recent filings of one form type via the
// browse-edgar Atom feed. An empty filingType means 10-Q.
func (c *Client) RecentFilings(ctx context.Context, ticker string, filingType models.FilingType, count int) ([]models.FilingFeedEntry, error) {
	if filingType == "" {
		filingType = models.Filing10Q
	}
	if count <= 0 {
		count = 10
	}

	cik, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf("%s/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=%s&dateb=&owner=include&count=%d&output=atom",
		c.wwwURL, cik, url.QueryEscape(string(filingType)), count)

	feed, err := c.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch SEC data: %w", err)
	}

	entries := make([]models.FilingFeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		e := models.FilingFeedEntry{
			Title:           item.Title,
			Link:            item.Link,
			AccessionNumber: accessionFromLink(item.Link),
		}
		if item.UpdatedParsed != nil {
			e.FilingDate = item.UpdatedParsed.Format("2006-01-02")
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// accessionFromLink pulls the accession number out of an EDGAR index URL.
func accessionFromLink(link string) string {
	return accessionPattern.FindString(path.Base(link))
}
