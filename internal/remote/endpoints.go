package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"jobdesk-engine/internal/domain"
)

// VacancyPage is the envelope returned by GET /vacancies/filter.
type VacancyPage struct {
	Data  []domain.Vacancy `json:"data"`
	Total int              `json:"total"`
}

// ApplicationPage is the Laravel-style paginator returned by GET /applications.
type ApplicationPage struct {
	Data        []domain.Application `json:"data"`
	Total       int                  `json:"total"`
	CurrentPage int                  `json:"current_page"`
	LastPage    int                  `json:"last_page"`
	PerPage     int                  `json:"per_page"`
}

// VacancyFilter mirrors the server-side filter dimensions of the jobs view.
// Zero values mean "no constraint on this dimension".
type VacancyFilter struct {
	Title          string
	Location       string
	CategoryID     int64
	JobType        string
	SeniorityLevel string
	SalaryMin      int
	SalaryMax      int
	IsRemote       bool
}

func (f VacancyFilter) params() Params {
	p := Params{
		"title":          f.Title,
		"location":       f.Location,
		"jobType":        f.JobType,
		"seniorityLevel": f.SeniorityLevel,
	}
	if f.CategoryID > 0 {
		p["categoryId"] = strconv.FormatInt(f.CategoryID, 10)
	}
	if f.SalaryMin > 0 {
		p["salaryMin"] = strconv.Itoa(f.SalaryMin)
	}
	if f.SalaryMax > 0 {
		p["salaryMax"] = strconv.Itoa(f.SalaryMax)
	}
	if f.IsRemote {
		p["isRemote"] = "true"
	}
	return p
}

// CompanySearch mirrors the startup-browse query surface.
type CompanySearch struct {
	Name           string
	VacancyName    string
	VacancyCity    string
	VacancyCountry string
	IndustryID     int64
	StartupStage   string
	StartupSize    string
	OpenToRemote   bool
	SortBy         string
}

func (s CompanySearch) params() Params {
	p := Params{
		"name":           s.Name,
		"vacancyName":    s.VacancyName,
		"vacancyCity":    s.VacancyCity,
		"vacancyCountry": s.VacancyCountry,
		"startupStage":   s.StartupStage,
		"startupSize":    s.StartupSize,
		"sortBy":         s.SortBy,
	}
	if s.IndustryID > 0 {
		p["industryId"] = strconv.FormatInt(s.IndustryID, 10)
	}
	if s.OpenToRemote {
		p["openToRemote"] = "true"
	}
	return p
}

func (c *Client) Blogs(ctx context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	if err := c.get(ctx, "/blogs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Blog(ctx context.Context, id int64) (domain.Blog, error) {
	var out domain.Blog
	err := c.get(ctx, fmt.Sprintf("/blogs/%d", id), nil, &out)
	return out, err
}

func (c *Client) UpdateBlog(ctx context.Context, id int64, b domain.Blog) (domain.Blog, error) {
	var out domain.Blog
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/blogs/%d", id), nil, b, &out)
	return out, err
}

func (c *Client) Companies(ctx context.Context, q CompanySearch) ([]domain.Company, error) {
	var out []domain.Company
	if err := c.get(ctx, "/companies", q.params(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Company(ctx context.Context, id int64) (domain.Company, error) {
	var out domain.Company
	err := c.get(ctx, fmt.Sprintf("/companies/%d", id), nil, &out)
	return out, err
}

// FilterVacancies is the server-side filtered + paginated jobs listing.
// Page is 1-based; size 0 asks the upstream for its default.
func (c *Client) FilterVacancies(ctx context.Context, f VacancyFilter, page, size int) (VacancyPage, error) {
	p := f.params()
	if page > 0 {
		p["page"] = strconv.Itoa(page)
	}
	if size > 0 {
		p["size"] = strconv.Itoa(size)
	}
	var out VacancyPage
	err := c.get(ctx, "/vacancies/filter", p, &out)
	return out, err
}

// CountVacancies asks the filter endpoint for a total only (no page data
// is consumed; the upstream includes it for free on every response).
func (c *Client) CountVacancies(ctx context.Context, f VacancyFilter) (int, error) {
	page, err := c.FilterVacancies(ctx, f, 0, 0)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

func (c *Client) Vacancy(ctx context.Context, id int64) (domain.Vacancy, error) {
	var out domain.Vacancy
	err := c.get(ctx, fmt.Sprintf("/vacancies/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateVacancy(ctx context.Context, d domain.VacancyDraft) (domain.Vacancy, error) {
	var out domain.Vacancy
	err := c.do(ctx, http.MethodPost, "/vacancies", nil, d, &out)
	return out, err
}

func (c *Client) UpdateVacancy(ctx context.Context, id int64, d domain.VacancyDraft) (domain.Vacancy, error) {
	var out domain.Vacancy
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/vacancies/%d", id), nil, d, &out)
	return out, err
}

func (c *Client) BlockVacancy(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/vacancies/%d/block", id), nil, nil, nil)
}

func (c *Client) UnblockVacancy(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/vacancies/%d/unblock", id), nil, nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id int64) (domain.Category, error) {
	var out domain.Category
	err := c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var out domain.Category
	err := c.do(ctx, http.MethodPost, "/categories", nil, map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) (domain.Category, error) {
	var out domain.Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil)
}

func (c *Client) Industries(ctx context.Context) ([]domain.Industry, error) {
	var out []domain.Industry
	if err := c.get(ctx, "/industries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateIndustry(ctx context.Context, name string) (domain.Industry, error) {
	var out domain.Industry
	err := c.do(ctx, http.MethodPost, "/admin/industries", nil, map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) UpdateIndustry(ctx context.Context, id int64, name string) (domain.Industry, error) {
	var out domain.Industry
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/industries/%d", id), nil, map[string]string{"name": name}, &out)
	return out, err
}

func (c *Client) DeleteIndustry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/industries/%d", id), nil, nil, nil)
}

// IndustryCompanyCount returns {total} for GET /industries/{id}/companies.
func (c *Client) IndustryCompanyCount(ctx context.Context, id int64) (int, error) {
	var out struct {
		Total int `json:"total"`
	}
	if err := c.get(ctx, fmt.Sprintf("/industries/%d/companies", id), nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// Applications lists applicants for the company dashboard. sortOrder and
// status are mutually exclusive upstream; pass the one that applies.
func (c *Client) Applications(ctx context.Context, sortOrder, status, search string) (ApplicationPage, error) {
	p := Params{
		"sort_order": sortOrder,
		"status":     status,
		"search":     search,
	}
	var out ApplicationPage
	err := c.get(ctx, "/applications", p, &out)
	return out, err
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/applications/%d", id), nil, body, nil)
}
