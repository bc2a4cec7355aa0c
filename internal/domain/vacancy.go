package domain

import "time"

type Vacancy struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	CategoryID          int64     `json:"categoryId"`
	CompanyID           int64     `json:"companyId"`
	CompanyName         string    `json:"companyName"`
	Logo                string    `json:"logo"` // relative path on the API host
	City                string    `json:"city"`
	State               string    `json:"state"`
	Country             string    `json:"country"`
	CountryCode         string    `json:"countryCode"`
	JobType             string    `json:"jobType"` // full-time/part-time/contract/intern
	SeniorityLevel      string    `json:"seniorityLevel"`
	Salary              int       `json:"salary"`
	IsRemote            bool      `json:"isRemote"`
	IsActive            bool      `json:"isActive"`
	Description         string    `json:"description"`
	JobOverview         string    `json:"jobOverview"`
	JobRole             string    `json:"jobRole"`
	JobResponsibilities string    `json:"jobResponsibilities"`
	YouHaveText         string    `json:"youHaveText"`
	CreatedAt           time.Time `json:"createdAt"`
}

// VacancyDraft is the writable subset sent on create/update.
type VacancyDraft struct {
	Title               string `json:"title"`
	CategoryID          int64  `json:"categoryId"`
	IsRemote            bool   `json:"isRemote"`
	IsActive            bool   `json:"isActive"`
	JobType             string `json:"jobType"`
	SeniorityLevel      string `json:"seniorityLevel"`
	City                string `json:"city"`
	State               string `json:"state"`
	Country             string `json:"country"`
	CountryCode         string `json:"countryCode"`
	Salary              int    `json:"salary"`
	Description         string `json:"description"`
	JobOverview         string `json:"jobOverview"`
	JobRole             string `json:"jobRole"`
	JobResponsibilities string `json:"jobResponsibilities"`
	YouHaveText         string `json:"youHaveText"`
}
