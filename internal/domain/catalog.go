package domain

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Industry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IndustrySummary is an industry plus its aggregated company count.
type IndustrySummary struct {
	Industry
	CompanyCount int `json:"companyCount"`
}
