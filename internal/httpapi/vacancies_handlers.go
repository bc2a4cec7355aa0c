package httpapi

import (
	"encoding/json"
	"net/http"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/remote"
)

// VacanciesHandler is the admin side of vacancies: create, edit, block.
// Public reads go through /jobs and the view pipeline instead.
type VacanciesHandler struct {
	Client *remote.Client
	Hub    *events.Hub
}

func (h VacanciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d domain.VacancyDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	out, err := h.Client.CreateVacancy(r.Context(), d)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	h.publish(r, out.ID, "created")
	WriteJSON(w, http.StatusCreated, out)
}

func (h VacanciesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/vacancies/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var d domain.VacancyDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	out, err := h.Client.UpdateVacancy(r.Context(), id, d)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	h.publish(r, id, "updated")
	writeJSON(w, out)
}

// Action handles /vacancies/{id}/block and /vacancies/{id}/unblock.
func (h VacanciesHandler) Action(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathIDAction(r.URL.Path, "/vacancies/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_path", "expected /vacancies/{id}/{action}")
		return
	}

	var err error
	switch action {
	case "block":
		err = h.Client.BlockVacancy(r.Context(), id)
	case "unblock":
		err = h.Client.UnblockVacancy(r.Context(), id)
	default:
		WriteError(w, r, http.StatusNotFound, "unknown_action", "unknown action "+action)
		return
	}
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	h.publish(r, id, action)
	writeJSON(w, map[string]any{"ok": true, "id": id, "action": action})
}

func (h VacanciesHandler) publish(r *http.Request, id int64, change string) {
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeVacancyChanged, 1,
		map[string]any{"id": id, "change": change}))
}
