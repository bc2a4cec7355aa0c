package views

import (
	"context"
	"fmt"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/listview"
	"jobdesk-engine/internal/remote"
)

// Applicant dimensions: sort order (Newest/Oldest) and status are
// mutually exclusive upstream, so selecting one clears the other.
const (
	DimSortOrder = "sort_order" // asc | desc
	DimStatus    = "status"     // submitted | reviewed | interview | offer
)

type Applicants struct {
	client *remote.Client
	view   *listview.View[domain.Application]
}

func NewApplicants(client *remote.Client, pageSize int) *Applicants {
	a := &Applicants{client: client}
	a.view = listview.NewServerView(a.fetch, pageSize)
	return a
}

func (a *Applicants) View() *listview.View[domain.Application] { return a.view }

func (a *Applicants) fetch(ctx context.Context, filters listview.Filters, query string, _ listview.Pager) ([]domain.Application, int, error) {
	page, err := a.client.Applications(ctx, filters[DimSortOrder], filters[DimStatus], query)
	if err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

// SetSort selects Newest/Oldest ordering and clears any status filter.
func (a *Applicants) SetSort(order string) {
	a.view.SetFilter(DimStatus, "")
	a.view.SetFilter(DimSortOrder, order)
}

// SetStatus filters by pipeline stage and clears the sort selection.
func (a *Applicants) SetStatus(status string) {
	a.view.SetFilter(DimSortOrder, "")
	a.view.SetFilter(DimStatus, status)
}

// UpdateStatus writes the change upstream and, on success, patches the
// cached row so the list reflects it without a refetch.
func (a *Applicants) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidStatus(status) {
		return &remote.HTTPError{Message: fmt.Sprintf("invalid status %q", status)}
	}
	if err := a.client.UpdateApplicationStatus(ctx, id, status); err != nil {
		return err
	}
	a.view.Mutate(func(items []domain.Application) []domain.Application {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
			}
		}
		return items
	})
	return nil
}
