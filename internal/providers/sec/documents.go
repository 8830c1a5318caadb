package sec

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/thepill/thepill/pkg/models"
)

// FilingIndex scrapes the document table from one filing's EDGAR index
// page. cik may be padded or not; accessionNumber keeps its dashes.
func (c *Client) FilingIndex(ctx context.Context, cik, accessionNumber string) ([]models.FilingDocument, error) {
	accClean := strings.ReplaceAll(accessionNumber, "-", "")
	indexURL := fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s-index.htm",
		c.wwwURL, strings.TrimLeft(cik, "0"), accClean, accessionNumber)

	body, err := c.getRaw(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("Error processing SEC data: %w", err)
	}

	var docs []models.FilingDocument
	doc.Find("table.tableFile").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return // header row
		}
		href, _ := cells.Eq(2).Find("a").Attr("href")
		if href != "" && strings.HasPrefix(href, "/") {
			href = c.wwwURL + href
		}
		docs = append(docs, models.FilingDocument{
			Seq:         strings.TrimSpace(cells.Eq(0).Text()),
			Description: strings.TrimSpace(cells.Eq(1).Text()),
			Document:    strings.TrimSpace(cells.Eq(2).Text()),
			Type:        strings.TrimSpace(cells.Eq(3).Text()),
			Size:        strings.TrimSpace(cells.Eq(4).Text()),
			URL:         href,
		})
	})

	return docs, nil
}
