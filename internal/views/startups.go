package views

import (
	"context"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/listview"
	"jobdesk-engine/internal/remote"
)

// Startup browse dimensions. The search box feeds both the company name
// and vacancy title upstream, the location box feeds city and country.
const (
	DimIndustry     = "industryId"
	DimStartupStage = "startupStage"
	DimStartupSize  = "startupSize"
	DimOpenRemote   = "openToRemote"
	DimStartupLoc   = "location"
)

type Startups struct {
	client *remote.Client
	view   *listview.View[domain.Company]
}

func NewStartups(client *remote.Client, pageSize int) *Startups {
	s := &Startups{client: client}
	s.view = listview.NewServerView(s.fetch, pageSize)
	return s
}

func (s *Startups) View() *listview.View[domain.Company] { return s.view }

func (s *Startups) fetch(ctx context.Context, filters listview.Filters, query string, _ listview.Pager) ([]domain.Company, int, error) {
	search := remote.CompanySearch{
		Name:           query,
		VacancyName:    query,
		VacancyCity:    filters[DimStartupLoc],
		VacancyCountry: filters[DimStartupLoc],
		StartupStage:   filters[DimStartupStage],
		StartupSize:    filters[DimStartupSize],
		OpenToRemote:   filters[DimOpenRemote] == "true",
		SortBy:         "desc",
	}
	if v, err := strconv.ParseInt(filters[DimIndustry], 10, 64); err == nil {
		search.IndustryID = v
	}

	companies, err := s.client.Companies(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	return companies, len(companies), nil
}

// IndustriesWithCounts fetches the industry list, then fans out one
// count call per industry. A failed count renders as 0 rather than
// failing the panel.
func (s *Startups) IndustriesWithCounts(ctx context.Context) ([]domain.IndustrySummary, error) {
	industries, err := s.client.Industries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.IndustrySummary, len(industries))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(4)

	for i, ind := range industries {
		i, ind := i, ind
		g.Go(func() error {
			n, err := s.client.IndustryCompanyCount(ctx, ind.ID)
			if err != nil {
				log.Printf("[startups] industry=%d count err=%v", ind.ID, err)
				n = 0
			}
			mu.Lock()
			out[i] = domain.IndustrySummary{Industry: ind, CompanyCount: n}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}
