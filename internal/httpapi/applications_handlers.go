package httpapi

import (
	"encoding/json"
	"net/http"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/views"
)

type ApplicationsHandler struct {
	Applicants *views.Applicants
	Client     *remote.Client
	Hub        *events.Hub
}

// List serves the company dashboard's applicant list. sort_order and
// status are mutually exclusive; picking one clears the other, the way
// the dashboard's single filter dropdown behaves.
func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := h.Applicants.View()

	switch {
	case q.Get("sort_order") != "":
		h.Applicants.SetSort(q.Get("sort_order"))
	case q.Get("status") != "":
		status := q.Get("status")
		if !domain.ValidStatus(status) {
			WriteError(w, r, http.StatusBadRequest, "invalid_status", "unknown status "+status)
			return
		}
		h.Applicants.SetStatus(status)
	default:
		h.Applicants.SetSort("desc")
	}
	v.SetQuery(q.Get("search"))

	if err := v.Load(r.Context()); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	pager := v.Pager()
	writeJSON(w, listResponse[domain.Application]{
		Data:       v.Items(),
		Total:      pager.TotalCount,
		Page:       pager.Page,
		Size:       pager.Size,
		TotalPages: pager.TotalPages,
		State:      v.State().String(),
	})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves an applicant through the pipeline stages.
func (h ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/applications/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !domain.ValidStatus(req.Status) {
		WriteError(w, r, http.StatusBadRequest, "invalid_status", "unknown status "+req.Status)
		return
	}

	if err := h.Applicants.UpdateStatus(r.Context(), id, req.Status); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationMoved, 1,
		map[string]any{"id": id, "status": req.Status}))
	writeJSON(w, map[string]any{"ok": true, "id": id, "status": req.Status})
}

// Apply forwards the application form upstream as multipart. Validation
// happens locally first so a bad form never costs a round-trip; on
// failure the UI keeps the form open with the entered values.
func (h ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	const maxForm = 10 << 20 // CV uploads
	if err := r.ParseMultipartForm(maxForm); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_form", err.Error())
		return
	}

	vacancyID, _ := queryFormInt64(r, "vacancy_id")
	form := remote.ApplicationForm{
		VacancyID: vacancyID,
		FirstName: r.FormValue("first_name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		JobTitle:  r.FormValue("job_title"),
		LinkedIn:  r.FormValue("linkedin"),
	}

	file, header, err := r.FormFile("cv_file")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "missing_cv", "cv_file is required")
		return
	}
	defer file.Close()
	form.CVName = header.Filename

	if err := form.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_application", err.Error())
		return
	}

	if err := h.Client.SubmitApplication(r.Context(), form, file); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"ok": true})
}
