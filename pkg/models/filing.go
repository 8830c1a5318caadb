package models

// FilingType selects which EDGAR form to look up.
type FilingType string

const (
	Filing10K FilingType = "10-K"
	Filing10Q FilingType = "10-Q"
)

// FilingRef identifies one EDGAR filing.
type FilingRef struct {
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	AccessionNumber string `json:"accession_number"`
	PrimaryDocument string `json:"primary_document"`
}

// SECFiling is the latest matching filing for a company plus headline XBRL
// facts. The facts stay null when the companyfacts endpoint has nothing
// usable; LatestFiling is null when no filing of the requested form exists.
type SECFiling struct {
	Ticker             string     `json:"ticker"`
	CompanyName        string     `json:"company_name"`
	CIK                string     `json:"cik"`
	LatestFiling       *FilingRef `json:"latest_filing"`
	SharesOutstanding  *float64   `json:"shares_outstanding"`
	TotalAssets        *float64   `json:"total_assets"`
	TotalLiabilities   *float64   `json:"total_liabilities"`
	StockholdersEquity *float64   `json:"stockholders_equity"`
	SECURL             string     `json:"sec_url"`
}

// FilingDocument is one row of a filing's EDGAR index page.
type FilingDocument struct {
	Seq         string `json:"seq"`
	Description string `json:"description"`
	Document    string `json:"document"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	URL         string `json:"url"`
}

// FilingFeedEntry is one entry of the EDGAR browse Atom feed.
type FilingFeedEntry struct {
	Title           string `json:"title"`
	FilingDate      string `json:"filing_date"`
	Link            string `json:"link"`
	AccessionNumber string `json:"accession_number,omitempty"`
}
