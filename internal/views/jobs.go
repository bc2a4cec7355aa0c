// Package views wires the listing screens to the list pipeline and the
// upstream client: jobs and applicants are server-filtered, blogs are
// filtered in memory, startups mix a server search with an aggregated
// industry panel.
package views

import (
	"context"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"jobdesk-engine/internal/detail"
	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/listview"
	"jobdesk-engine/internal/remote"
)

// Jobs filter dimensions. The free-text title search rides on the view's
// query; everything else is a radio dimension.
const (
	DimCategory  = "categoryId"
	DimSeniority = "seniorityLevel"
	DimJobType   = "jobType"
	DimRemote    = "isRemote"
	DimSalaryMin = "salaryMin"
	DimSalaryMax = "salaryMax"
	DimLocation  = "location"
)

type Jobs struct {
	client *remote.Client
	view   *listview.View[domain.Vacancy]
}

func NewJobs(client *remote.Client, pageSize int) *Jobs {
	j := &Jobs{client: client}
	j.view = listview.NewServerView(j.fetch, pageSize)
	return j
}

func (j *Jobs) View() *listview.View[domain.Vacancy] { return j.view }

func (j *Jobs) fetch(ctx context.Context, filters listview.Filters, query string, pager listview.Pager) ([]domain.Vacancy, int, error) {
	page, err := j.client.FilterVacancies(ctx, vacancyFilterFrom(filters, query), pager.Page, pager.Size)
	if err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func vacancyFilterFrom(filters listview.Filters, query string) remote.VacancyFilter {
	f := remote.VacancyFilter{
		Title:          query,
		Location:       filters[DimLocation],
		JobType:        filters[DimJobType],
		SeniorityLevel: filters[DimSeniority],
		IsRemote:       filters[DimRemote] == "true",
	}
	if v, err := strconv.ParseInt(filters[DimCategory], 10, 64); err == nil {
		f.CategoryID = v
	}
	if v, err := strconv.Atoi(filters[DimSalaryMin]); err == nil {
		f.SalaryMin = v
	}
	if v, err := strconv.Atoi(filters[DimSalaryMax]); err == nil {
		f.SalaryMax = v
	}
	return f
}

// Detail aggregates a vacancy with its company and category. The company
// or category going missing must not blank the vacancy pane.
func (j *Jobs) Detail(ctx context.Context, id int64) (detail.Result[domain.Vacancy], error) {
	loader := detail.Loader[domain.Vacancy]{
		Primary: j.client.Vacancy,
		Relations: []detail.Relation[domain.Vacancy]{
			{Name: "company", Fetch: func(ctx context.Context, v domain.Vacancy) (any, error) {
				return j.client.Company(ctx, v.CompanyID)
			}},
			{Name: "category", Fetch: func(ctx context.Context, v domain.Vacancy) (any, error) {
				return j.client.Category(ctx, v.CategoryID)
			}},
		},
	}
	return loader.Load(ctx, id)
}

// CategoryCounts fans out one count-only filter call per category for the
// sidebar badges. A category whose count call fails shows 0; the panel
// never fails as a whole.
func (j *Jobs) CategoryCounts(ctx context.Context) (map[int64]int, error) {
	cats, err := j.client.Categories(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(cats))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(4)

	for _, cat := range cats {
		cat := cat
		g.Go(func() error {
			n, err := j.client.CountVacancies(ctx, remote.VacancyFilter{CategoryID: cat.ID})
			if err != nil {
				log.Printf("[jobs] count category=%d err=%v", cat.ID, err)
				n = 0
			}
			mu.Lock()
			counts[cat.ID] = n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return counts, nil
}
