package models

// CompanyProfile describes the business behind a ticker.
type CompanyProfile struct {
	Ticker       string           `json:"ticker"`
	Name         *string          `json:"name"` // longName, else shortName
	Sector       *string          `json:"sector"`
	Industry     *string          `json:"industry"`
	Description  *string          `json:"description"`
	Website      *string          `json:"website"`
	Employees    *int64           `json:"employees"`
	Headquarters Headquarters     `json:"headquarters"`
	Officers     []CompanyOfficer `json:"officers"` // capped at five entries
}

// Headquarters is the company's principal location.
type Headquarters struct {
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
}

// CompanyOfficer is one executive from the provider's officer list.
type CompanyOfficer struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	Age      *int64  `json:"age,omitempty"`
	YearBorn *int64  `json:"year_born,omitempty"`
	TotalPay *int64  `json:"total_pay,omitempty"`
}
