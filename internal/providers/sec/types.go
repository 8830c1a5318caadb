package sec

// --- CIK / ticker mapping ---

// edgarTickerEntry is one row of company_tickers.json, which maps index
// strings to entries: {"0": {"cik_str": 320193, "ticker": "AAPL", ...}}.
type edgarTickerEntry struct {
	CIKStr int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// --- Submissions (data.sec.gov/submissions) ---

type edgarSubmissionsResponse struct {
	CIK            string       `json:"cik"`
	EntityType     string       `json:"entityType"`
	SIC            string       `json:"sic"`
	SICDescription string       `json:"sicDescription"`
	Name           string       `json:"name"`
	Tickers        []string     `json:"tickers"`
	Exchanges      []string     `json:"exchanges"`
	Filings        edgarFilings `json:"filings"`
}

type edgarFilings struct {
	Recent edgarFilingSet `json:"recent"`
}

// edgarFilingSet holds the recent filings as parallel arrays; index i of
// each array describes the same filing.
type edgarFilingSet struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
	Description     []string `json:"primaryDocDescription"`
}

// --- Company facts (data.sec.gov/api/xbrl/companyfacts) ---

// CompanyFacts is the decoded XBRL company facts payload for one
// registrant, keyed by taxonomy ("us-gaap", "dei") and then concept.
type CompanyFacts struct {
	CIK        int64                      `json:"cik"`
	EntityName string                     `json:"entityName"`
	Facts      map[string]map[string]Fact `json:"facts"` // taxonomy -> concept
}

// Fact is one reported XBRL concept with its observations grouped by unit.
type Fact struct {
	Label string                   `json:"label"`
	Units map[string][]Observation `json:"units"` // unit ("USD", "shares") -> values
}

// Observation is a single dated value for a fact.
type Observation struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"`
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
}
