package httpapi

import (
	"database/sql"
	"log"
	"net/http"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/store"
	"jobdesk-engine/internal/views"
)

// listResponse is the envelope every listing endpoint returns to the UI.
type listResponse[T any] struct {
	Data       []T    `json:"data"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalPages int    `json:"totalPages"`
	State      string `json:"state"`
	Stale      bool   `json:"stale,omitempty"`
}

type JobsHandler struct {
	DB   *sql.DB
	Jobs *views.Jobs
}

var jobDimensions = []string{
	views.DimCategory,
	views.DimSeniority,
	views.DimJobType,
	views.DimSalaryMin,
	views.DimSalaryMax,
	views.DimLocation,
}

// List serves the server-filtered jobs page. Every query param mirrors a
// filter dimension; title is the free-text search. When the upstream is
// down the last snapshot is served instead, marked stale.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := h.Jobs.View()

	for _, dim := range jobDimensions {
		v.SetFilter(dim, q.Get(dim))
	}
	if q.Get("isRemote") == "true" {
		v.SetFilter(views.DimRemote, "true")
	} else {
		v.SetFilter(views.DimRemote, "")
	}
	v.SetQuery(q.Get("title"))

	// size first: a size change resets to page 1, an explicit page wins
	if size, ok := queryInt(r, "size"); ok {
		v.SetSize(size)
	}
	if page, ok := queryInt(r, "page"); ok {
		v.SetPage(page)
	}

	if err := v.Load(r.Context()); err != nil {
		log.Printf("[jobs] upstream list err=%v, serving snapshot", err)
		snap, serr := store.ListVacancies(r.Context(), h.DB)
		if serr != nil {
			WriteUpstreamError(w, r, err)
			return
		}
		writeJSON(w, listResponse[domain.Vacancy]{
			Data: snap, Total: len(snap), Page: 1, Size: len(snap),
			TotalPages: 1, State: v.State().String(), Stale: true,
		})
		return
	}

	pager := v.Pager()
	writeJSON(w, listResponse[domain.Vacancy]{
		Data:       v.Items(),
		Total:      pager.TotalCount,
		Page:       pager.Page,
		Size:       pager.Size,
		TotalPages: pager.TotalPages,
		State:      v.State().String(),
	})
}

// Counts serves the per-category badge numbers for the filter sidebar.
func (h JobsHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Jobs.CategoryCounts(r.Context())
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, counts)
}

// Detail serves the aggregated vacancy view: primary vacancy plus its
// company and category, with failed secondaries listed as missing.
func (h JobsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/jobs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	res, err := h.Jobs.Detail(r.Context(), id)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, res)
}
