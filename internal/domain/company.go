package domain

type Company struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Logo         string `json:"logo"` // relative path on the API host
	IndustryID   int64  `json:"industryId"`
	StartupStage string `json:"startupStage"`
	StartupSize  string `json:"startupSize"`
	OpenToRemote bool   `json:"openToRemote"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Website      string `json:"website"`
	About        string `json:"about"`
}
