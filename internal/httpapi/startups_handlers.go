package httpapi

import (
	"net/http"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/views"
)

type StartupsHandler struct {
	Startups *views.Startups
}

var startupDimensions = []string{
	views.DimIndustry,
	views.DimStartupStage,
	views.DimStartupSize,
	views.DimStartupLoc,
}

// List proxies the startup browse search; the upstream filters, we just
// carry the dimensions over.
func (h StartupsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := h.Startups.View()

	for _, dim := range startupDimensions {
		v.SetFilter(dim, q.Get(dim))
	}
	if q.Get("openToRemote") == "true" {
		v.SetFilter(views.DimOpenRemote, "true")
	} else {
		v.SetFilter(views.DimOpenRemote, "")
	}
	v.SetQuery(q.Get("q"))

	if err := v.Load(r.Context()); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	pager := v.Pager()
	writeJSON(w, listResponse[domain.Company]{
		Data:       v.Items(),
		Total:      pager.TotalCount,
		Page:       pager.Page,
		Size:       pager.Size,
		TotalPages: pager.TotalPages,
		State:      v.State().String(),
	})
}

// Industries serves the sidebar panel: every industry with its company
// count, failed counts rendered as 0.
func (h StartupsHandler) Industries(w http.ResponseWriter, r *http.Request) {
	out, err := h.Startups.IndustriesWithCounts(r.Context())
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, out)
}
